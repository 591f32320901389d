package handlers

import (
	"context"

	"github.com/futig/storefront-ai/internal/entity"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type AssistantUsecase interface {
	SuggestProducts(ctx context.Context, message string) (*entity.ProductSuggestion, error)
	SummarizeReviews(ctx context.Context, productID string) (*entity.ReviewAnalysis, error)
}

// Sender is the subset of *tgbotapi.BotAPI the handlers use
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}
