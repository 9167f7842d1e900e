package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/ferateo/bizbot/internal/models"
	"github.com/ferateo/bizbot/internal/prompt"
	"go.uber.org/zap"
)

// apologyFormat is returned whenever the generative backend fails. The
// error text is the only diagnostic that reaches the user; the full error
// goes to the log and the failure counter.
const apologyFormat = "I apologize, but I'm having trouble processing your request. Please try again or contact support. Error: %v"

// NoConfigReply is the hand-off message returned when a business has no
// chatbot config. The caller returns it without invoking any engine.
const NoConfigReply = "Hi there! Thanks for your interest in our business. I'll gladly assist you. However, based on the information provided, I'm unable to share any specific details about our business since the necessary information is missing. Would you like to connect with a human representative to get more information? If so, I can provide you with their contact details."

// BusinessEngine answers customer questions for one business. The context
// is built once at construction; turns are independent of each other, so an
// instance per request is the expected usage.
type BusinessEngine struct {
	profile   *models.BusinessProfile
	config    *models.ChatbotConfig
	context   string
	generator Generator
	hours     HoursPolicy
	metrics   *Metrics
	logger    *zap.Logger
}

func NewBusinessEngine(
	profile *models.BusinessProfile,
	config *models.ChatbotConfig,
	generator Generator,
	hours HoursPolicy,
	metrics *Metrics,
	logger *zap.Logger,
) *BusinessEngine {
	if hours == nil {
		hours = PermissiveHours{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &BusinessEngine{
		profile:   profile,
		config:    config,
		context:   prompt.Build(profile, config),
		generator: generator,
		hours:     hours,
		metrics:   metrics,
		logger:    logger,
	}
}

// Respond produces the bot reply for one user message. It never returns an
// error: backend failures degrade to the apology reply.
func (e *BusinessEngine) Respond(ctx context.Context, message string) string {
	if e.config.ShowBusinessHours && !e.hours.WithinHours(e.profile, time.Now()) {
		return e.config.OutOfHoursMessage
	}

	limit := e.config.MaxMessageLength
	if limit <= 0 {
		limit = models.DefaultMaxMessageLength
	}

	text, err := e.generator.Complete(ctx, e.context+"\n\nUser Question: "+message, limit)
	if err != nil {
		e.metrics.recordBackendFailure()
		e.logger.Error("Generative backend failure",
			zap.Error(err),
			zap.Int64("business_id", e.profile.ID))
		return fmt.Sprintf(apologyFormat, err)
	}

	return truncate(text, limit)
}

// truncate caps text at limit characters and appends an ellipsis marker.
func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
