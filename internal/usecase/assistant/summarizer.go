package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/futig/storefront-ai/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// ReviewSummarizer condenses a product's reviews into pros, cons and a sentiment score
type ReviewSummarizer struct {
	catalog    CatalogRepository
	completion CompletionConnector
}

func NewReviewSummarizer(catalog CatalogRepository, completion CompletionConnector) *ReviewSummarizer {
	return &ReviewSummarizer{catalog: catalog, completion: completion}
}

// Summarize returns ErrNoReviews for unknown products and products without reviews.
// Unlike the chat pipeline a summary missing any field is rejected with ErrSummaryParse.
func (s *ReviewSummarizer) Summarize(ctx context.Context, productID string) (*entity.ReviewAnalysis, error) {
	product, err := s.catalog.GetProductReviews(ctx, productID)
	if err != nil {
		if errors.Is(err, entity.ErrProductNotFound) {
			return nil, fmt.Errorf("%w: %v", entity.ErrNoReviews, err)
		}
		return nil, fmt.Errorf("get product reviews: %w", err)
	}
	if len(product.Reviews) == 0 {
		return nil, entity.ErrNoReviews
	}

	ctxzap.Info(ctx, "summarizing reviews",
		zap.String("product", product.ProductName),
		zap.Int("review_count", len(product.Reviews)),
	)

	result := s.completion.Complete(ctx, &entity.CompletionRequest{
		Prompt:       fmt.Sprintf(reviewSummaryPrompt, product.ProductName, reviewContext(product.Reviews)),
		OutputFormat: entity.OutputFormatJSON,
		Purpose:      entity.PurposeReviewSummary,
	})
	if err := result.Err(); err != nil {
		return nil, err
	}

	var summary entity.ReviewSummary
	if err := decodeModelJSON(result.RawText, &summary, "pros", "cons", "sentiment_score"); err != nil {
		ctxzap.Error(ctx, "invalid analysis format", zap.String("raw", result.RawText), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", entity.ErrSummaryParse, err)
	}
	summary.SentimentScore = min(max(summary.SentimentScore, 1), 5)

	return &entity.ReviewAnalysis{
		ProductName: product.ProductName,
		ReviewCount: len(product.Reviews),
		Summary:     &summary,
	}, nil
}

func reviewContext(reviews []entity.Review) string {
	var b strings.Builder
	for i, r := range reviews {
		comment := strings.TrimSpace(r.Comment)
		if comment == "" {
			comment = "No comment"
		}
		fmt.Fprintf(&b, "Review %d: %g stars - %q\n", i+1, r.Rating, comment)
	}
	return b.String()
}
