package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/futig/storefront-ai/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	maxPresentedProducts      = 3
	compositionDescriptionLen = 100
)

// ResponseComposer writes the shopper-facing reply for the top candidates
type ResponseComposer struct {
	completion CompletionConnector
}

func NewResponseComposer(completion CompletionConnector) *ResponseComposer {
	return &ResponseComposer{completion: completion}
}

// Compose always returns a usable reply. A non-nil error means the model reply could not
// be produced and the templated listing was returned instead.
func (c *ResponseComposer) Compose(ctx context.Context, message string, top []entity.CandidateProduct, totalMatches int) (string, error) {
	if len(top) == 0 {
		return noMatchesResponse, nil
	}
	if len(top) > maxPresentedProducts {
		top = top[:maxPresentedProducts]
	}

	var lines strings.Builder
	for i, p := range top {
		detail := p.MatchReason
		if detail == "" || detail == defaultMatchReason {
			detail = truncate(p.Description, compositionDescriptionLen)
		}
		fmt.Fprintf(&lines, compositionProductLine, i+1, p.Name, p.Brand, p.Price, p.Rating, p.NumReviews, detail)
	}

	result := c.completion.Complete(ctx, &entity.CompletionRequest{
		Prompt:       fmt.Sprintf(compositionPrompt, message, totalMatches, lines.String(), totalMatches),
		OutputFormat: entity.OutputFormatText,
		Purpose:      entity.PurposeComposition,
	})
	if err := result.Err(); err != nil {
		ctxzap.Warn(ctx, "composition failed, using templated reply", zap.Error(err))
		return templatedResponse(top, totalMatches), err
	}

	return strings.TrimSpace(result.RawText), nil
}

func templatedResponse(top []entity.CandidateProduct, totalMatches int) string {
	var b strings.Builder
	if totalMatches == 1 {
		b.WriteString("I found 1 product that matches your search:\n")
	} else {
		fmt.Fprintf(&b, "I found %d products that match your search. Here are the top picks:\n", totalMatches)
	}
	for i, p := range top {
		fmt.Fprintf(&b, "%d. %s - $%.2f (rated %.1f/5)\n", i+1, p.Name, p.Price, p.Rating)
	}
	b.WriteString("Would you like me to narrow these down further?")
	return b.String()
}
