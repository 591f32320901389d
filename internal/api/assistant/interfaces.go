package assistant

import (
	"context"

	"github.com/futig/storefront-ai/internal/entity"
)

type AssistantUsecase interface {
	Generate(ctx context.Context, prompt string) (string, error)
	SummarizeReviews(ctx context.Context, productID string) (*entity.ReviewAnalysis, error)
	SuggestProducts(ctx context.Context, message string) (*entity.ProductSuggestion, error)
}
