package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/ferateo/bizbot/internal/models"
	"go.uber.org/zap"
)

// generalContext is the static preamble of the product assistant. No
// business data is involved.
const generalContext = `You are a friendly and helpful AI assistant for a platform called AI Chatbot.
Your goal is to tell users about the AI Chatbot Platform and its various features.
Be very helpful, polite, and answer the questions that they may have.
Keep your responses short, and use emojis when appropriate.`

// GeneralEngine answers questions about the platform itself. Unlike the
// business variant it keeps conversation history across turns, and applies
// neither hours gating nor length truncation.
type GeneralEngine struct {
	context   string
	session   *Session
	generator Generator
	metrics   *Metrics
	logger    *zap.Logger
}

func NewGeneralEngine(generator Generator, metrics *Metrics, logger *zap.Logger) *GeneralEngine {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &GeneralEngine{
		context:   generalContext,
		session:   NewSession(),
		generator: generator,
		metrics:   metrics,
		logger:    logger,
	}
}

// Session exposes the engine's conversation history.
func (e *GeneralEngine) Session() *Session {
	return e.session
}

// Respond produces the assistant reply for one user message, feeding the
// retained history into the prompt. On success the user and model turns are
// appended to the session; on backend failure only the user turn is kept,
// so the next call still has it for context.
func (e *GeneralEngine) Respond(ctx context.Context, message string) string {
	var b strings.Builder
	b.WriteString(e.context)
	if transcript := e.session.Transcript(); transcript != "" {
		b.WriteString("\n\n")
		b.WriteString(transcript)
	}
	b.WriteString("\n\nUser Question: ")
	b.WriteString(message)

	text, err := e.generator.Complete(ctx, b.String(), 0)
	if err != nil {
		e.metrics.recordBackendFailure()
		e.logger.Error("Generative backend failure", zap.Error(err))
		e.session.Append(models.RoleUser, message)
		return fmt.Sprintf(apologyFormat, err)
	}

	e.session.Append(models.RoleUser, message)
	e.session.Append(models.RoleModel, text)
	return text
}
