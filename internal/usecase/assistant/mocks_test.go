package assistant_test

import (
	"context"
	"errors"

	"github.com/futig/storefront-ai/internal/entity"
)

// fakeCompletion implements assistant.CompletionConnector for testing.
type fakeCompletion struct {
	completeFn func(ctx context.Context, req *entity.CompletionRequest) *entity.CompletionResult
	requests   []*entity.CompletionRequest
	callCount  int
}

func (f *fakeCompletion) Complete(ctx context.Context, req *entity.CompletionRequest) *entity.CompletionResult {
	f.callCount++
	f.requests = append(f.requests, req)
	if f.completeFn != nil {
		return f.completeFn(ctx, req)
	}
	return entity.CompletionFailed(errors.New("fake not configured"))
}

// byPurpose answers each purpose with a fixed output; purposes not listed fail
func byPurpose(outputs map[entity.CompletionPurpose]string) func(context.Context, *entity.CompletionRequest) *entity.CompletionResult {
	return func(_ context.Context, req *entity.CompletionRequest) *entity.CompletionResult {
		if out, ok := outputs[req.Purpose]; ok {
			return entity.CompletionSucceeded(out)
		}
		return entity.CompletionFailed(errors.New("backend unavailable"))
	}
}

// fakeCatalog implements assistant.CatalogRepository for testing.
type fakeCatalog struct {
	findFn       func(ctx context.Context, filter entity.CatalogFilter, limit int) ([]entity.CandidateProduct, error)
	reviewsFn    func(ctx context.Context, productID string) (*entity.ProductReviews, error)
	lastFilter   entity.CatalogFilter
	lastLimit    int
	findCount    int
	reviewsCount int
}

func (f *fakeCatalog) FindCandidates(ctx context.Context, filter entity.CatalogFilter, limit int) ([]entity.CandidateProduct, error) {
	f.findCount++
	f.lastFilter = filter
	f.lastLimit = limit
	if f.findFn != nil {
		return f.findFn(ctx, filter, limit)
	}
	return nil, nil
}

func (f *fakeCatalog) GetProductReviews(ctx context.Context, productID string) (*entity.ProductReviews, error) {
	f.reviewsCount++
	if f.reviewsFn != nil {
		return f.reviewsFn(ctx, productID)
	}
	return nil, entity.ErrProductNotFound
}

// fakeCategories implements assistant.CategoryLookup for testing.
type fakeCategories struct {
	ids       map[string]string
	callCount int
}

func (f *fakeCategories) FindCategoryIDByName(_ context.Context, name string) (string, error) {
	f.callCount++
	if id, ok := f.ids[name]; ok {
		return id, nil
	}
	return "", entity.ErrCategoryNotFound
}

func ptr[T any](v T) *T { return &v }

func ids(products []entity.CandidateProduct) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}
