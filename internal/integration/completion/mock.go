package completion

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/futig/storefront-ai/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector returns canned output per completion purpose for running without a model server
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

var mockProductIDPattern = regexp.MustCompile(`ID: ([0-9a-fA-F-]{36})`)

func (m *MockConnector) Complete(ctx context.Context, req *entity.CompletionRequest) *entity.CompletionResult {
	ctxzap.Info(ctx, "[MOCK] requesting completion", zap.String("purpose", string(req.Purpose)))

	var text string
	switch req.Purpose {
	case entity.PurposeRequirements:
		text = `{"brand": null, "minPrice": null, "maxPrice": null, "features": [], "category": null, "minRating": null, "keywords": []}`
	case entity.PurposeRanking:
		// Score candidates in listing order so the mock output stays deterministic
		var b strings.Builder
		b.WriteString(`{"rankings": [`)
		for i, match := range mockProductIDPattern.FindAllStringSubmatch(req.Prompt, -1) {
			if i > 0 {
				b.WriteString(", ")
			}
			score := 0.9 - float64(i)*0.1
			if score < 0.1 {
				score = 0.1
			}
			b.WriteString(`{"id": "` + match[1] + `", "relevance": ` + strconv.FormatFloat(score, 'f', 1, 64) + `, "reason": "Mock relevance"}`)
		}
		b.WriteString(`]}`)
		text = b.String()
	case entity.PurposeComposition:
		text = "Here are a few products that match what you're looking for (MOCK). Let me know if you'd like me to narrow it down!"
	case entity.PurposeReviewSummary:
		text = `{"pros": ["Good build quality", "Fair price", "Fast delivery"], "cons": ["Short battery life", "Average packaging", "Few color options"], "sentiment_score": 4}`
	default:
		text = "This is a mock completion."
	}

	ctxzap.Info(ctx, "[MOCK] completion generated", zap.Int("output_length", len(text)))
	return entity.CompletionSucceeded(text)
}
