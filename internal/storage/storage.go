package storage

import (
	"context"
	"errors"

	"github.com/ferateo/bizbot/internal/models"
)

// ErrNotFound is returned when a profile, config or business does not exist.
var ErrNotFound = errors.New("not found")

// Storage persists business profiles, chatbot configs and chat
// interactions. Interactions are append-only.
type Storage interface {
	CreateBusinessProfile(ctx context.Context, profile *models.BusinessProfile) error
	GetBusinessProfile(ctx context.Context, id int64) (*models.BusinessProfile, error)
	UpdateBusinessProfile(ctx context.Context, profile *models.BusinessProfile) error

	UpsertChatbotConfig(ctx context.Context, config *models.ChatbotConfig) error
	GetChatbotConfig(ctx context.Context, businessID int64) (*models.ChatbotConfig, error)

	SaveInteraction(ctx context.Context, interaction *models.ChatInteraction) error
	GetInteractionsByBusiness(ctx context.Context, businessID int64) ([]*models.ChatInteraction, error)

	Close() error
}
