package telegram

import (
	"context"
	"fmt"

	"github.com/futig/storefront-ai/internal/config"
	"github.com/futig/storefront-ai/internal/telegram/bot"
	"github.com/futig/storefront-ai/internal/telegram/handlers"
	"github.com/futig/storefront-ai/internal/telegram/keyboard"
	"github.com/futig/storefront-ai/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Bot is the main telegram bot interface
type Bot interface {
	Start(ctx context.Context) error
	Stop() error
}

// NewBot connects to the Bot API and wires the storefront handlers
func NewBot(cfg *config.TelegramConfig, assistant handlers.AssistantUsecase, logger *zap.Logger) (Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID),
	)

	return newBot(api, cfg, assistant, logger), nil
}

func newBot(api bot.API, cfg *config.TelegramConfig, assistant handlers.AssistantUsecase, logger *zap.Logger) *bot.Bot {
	b := bot.New(api, cfg, logger)
	sender := b.Sender()

	reviews := handlers.NewReviewHandler(api, sender, assistant, logger)

	b.RegisterCommand("start", handlers.NewStaticHandler(sender, render.MsgWelcome))
	b.RegisterCommand("help", handlers.NewStaticHandler(sender, render.MsgHelp))
	b.RegisterCommand("review", reviews)
	b.RegisterCallback(keyboard.ActionReview, reviews)
	b.SetTextHandler(handlers.NewSuggestionHandler(api, sender, assistant, logger))

	logger.Info("telegram handlers registered")

	return b
}
