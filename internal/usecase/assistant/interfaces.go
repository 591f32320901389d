package assistant

import (
	"context"

	"github.com/futig/storefront-ai/internal/entity"
)

// CompletionConnector sends one prompt to the completion backend. Implementations never
// return nil and report every failure through the result.
type CompletionConnector interface {
	Complete(ctx context.Context, req *entity.CompletionRequest) *entity.CompletionResult
}

type CatalogRepository interface {
	FindCandidates(ctx context.Context, filter entity.CatalogFilter, limit int) ([]entity.CandidateProduct, error)
	GetProductReviews(ctx context.Context, productID string) (*entity.ProductReviews, error)
}

type CategoryLookup interface {
	FindCategoryIDByName(ctx context.Context, name string) (string, error)
}
