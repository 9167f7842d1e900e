package bot

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/ferateo/bizbot/internal/engine"
)

// Bot exposes the general-purpose platform assistant over Telegram. Each
// chat gets its own engine, so conversation history stays scoped to one
// chat and is lost on restart.
type Bot struct {
	api         *tgbotapi.BotAPI
	generator   engine.Generator
	metrics     *engine.Metrics
	logger      *zap.Logger
	chatTimeout time.Duration
	engines     map[int64]*engine.GeneralEngine
}

func New(token string, generator engine.Generator, metrics *engine.Metrics, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &Bot{
		api:         api,
		generator:   generator,
		metrics:     metrics,
		logger:      logger,
		chatTimeout: 30 * time.Second,
		engines:     make(map[int64]*engine.GeneralEngine),
	}, nil
}

// Start consumes updates until the update channel closes. Messages are
// handled sequentially so per-chat sessions are never mutated concurrently.
func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if update.Message == nil {
			continue
		}
		b.handleMessage(update.Message)
	}

	return nil
}

func (b *Bot) handleMessage(message *tgbotapi.Message) {
	if message.IsCommand() {
		b.handleCommand(message)
		return
	}

	text := message.Text
	if text == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.chatTimeout)
	defer cancel()

	reply := b.engineFor(message.Chat.ID).Respond(ctx, text)
	b.sendMessage(message.Chat.ID, reply)
}

func (b *Bot) engineFor(chatID int64) *engine.GeneralEngine {
	eng, exists := b.engines[chatID]
	if !exists {
		eng = engine.NewGeneralEngine(b.generator, b.metrics, b.logger)
		b.engines[chatID] = eng
	}
	return eng
}

func (b *Bot) handleCommand(message *tgbotapi.Message) {
	switch message.Command() {
	case "start":
		b.handleStart(message)
	case "help":
		b.handleHelp(message)
	case "reset":
		b.handleReset(message)
	default:
		b.sendMessage(message.Chat.ID, "Unknown command. Use /help to see available commands.")
	}
}

func (b *Bot) handleStart(message *tgbotapi.Message) {
	welcome := `Hi! 👋 I'm the AI Chatbot Platform assistant.

Ask me anything about the platform — building a branded chatbot for your
business, configuring its personality, or reviewing chat analytics.
Use /help to see all available commands.`

	b.sendMessage(message.Chat.ID, welcome)
}

func (b *Bot) handleHelp(message *tgbotapi.Message) {
	help := `Available commands:
/start - Start the assistant
/help - Show this help message
/reset - Forget our conversation so far

Just type a question and I'll answer it!`

	b.sendMessage(message.Chat.ID, help)
}

func (b *Bot) handleReset(message *tgbotapi.Message) {
	if eng, exists := b.engines[message.Chat.ID]; exists {
		eng.Session().Reset()
	}
	b.sendMessage(message.Chat.ID, "Done! I've forgotten our conversation. 🧹")
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
	}
}
