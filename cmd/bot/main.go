package main

import (
	"go.uber.org/zap"

	"github.com/ferateo/bizbot/internal/bot"
	"github.com/ferateo/bizbot/internal/engine"
	"github.com/ferateo/bizbot/pkg/config"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err), zap.String("path", "config.yaml"))
	}

	generator := engine.NewOpenAIGenerator(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.Temperature)
	metrics := engine.NewMetrics()

	// Initialize the Telegram channel for the general assistant
	b, err := bot.New(cfg.Telegram.Token, generator, metrics, logger)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	// Start the bot
	if err := b.Start(); err != nil {
		logger.Fatal("Bot error", zap.Error(err))
	}
}
