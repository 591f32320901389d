package assistant

import (
	"context"
	"fmt"

	"github.com/futig/storefront-ai/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// RequirementExtractor turns a free-text shopping query into structured requirements
type RequirementExtractor struct {
	completion CompletionConnector
}

func NewRequirementExtractor(completion CompletionConnector) *RequirementExtractor {
	return &RequirementExtractor{completion: completion}
}

// Extract fails with ErrRequirementsParse when the model output is not a JSON object.
// Individual fields are optional and mistyped values are dropped.
func (e *RequirementExtractor) Extract(ctx context.Context, message string) (*entity.ExtractedRequirements, error) {
	result := e.completion.Complete(ctx, &entity.CompletionRequest{
		Prompt:       fmt.Sprintf(requirementsPrompt, message),
		OutputFormat: entity.OutputFormatJSON,
		Purpose:      entity.PurposeRequirements,
	})
	if err := result.Err(); err != nil {
		return nil, err
	}

	var fields map[string]any
	if err := decodeModelJSON(result.RawText, &fields); err != nil {
		ctxzap.Warn(ctx, "requirements output is not valid JSON",
			zap.String("raw", result.RawText),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", entity.ErrRequirementsParse, err)
	}

	req := requirementsFromFields(fields)

	ctxzap.Info(ctx, "requirements extracted", zap.Any("requirements", req))
	return req, nil
}

func requirementsFromFields(fields map[string]any) *entity.ExtractedRequirements {
	req := &entity.ExtractedRequirements{
		Features: asStringList(fields["features"]),
		Keywords: asStringList(fields["keywords"]),
	}

	if s, ok := asString(fields["brand"]); ok {
		req.Brand = &s
	}
	if s, ok := asString(fields["category"]); ok {
		req.Category = &s
	}
	if f, ok := asNumber(fields["minPrice"]); ok && f >= 0 {
		req.MinPrice = &f
	}
	if f, ok := asNumber(fields["maxPrice"]); ok && f > 0 {
		req.MaxPrice = &f
	}
	if f, ok := asNumber(fields["minRating"]); ok && f > 0 {
		req.MinRating = &f
	}

	return req
}
