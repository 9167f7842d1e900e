package engine

import (
	"time"

	"github.com/ferateo/bizbot/internal/models"
)

// HoursPolicy decides whether a business is currently open. The engine only
// consults it when the config enables business-hours gating.
type HoursPolicy interface {
	WithinHours(profile *models.BusinessProfile, now time.Time) bool
}

// PermissiveHours always reports the business as open. It is the default
// until a timezone-aware calendar policy is supplied.
type PermissiveHours struct{}

func (PermissiveHours) WithinHours(*models.BusinessProfile, time.Time) bool {
	return true
}
