package assistant

import (
	"context"
	"strings"

	"github.com/futig/storefront-ai/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// QueryBuilder translates extracted requirements into a catalog filter
type QueryBuilder struct {
	categories CategoryLookup
}

func NewQueryBuilder(categories CategoryLookup) *QueryBuilder {
	return &QueryBuilder{categories: categories}
}

// Build never fails: an unresolvable category is demoted to a free-text term, and the
// free-text search is kept only when no structured predicate was set.
func (b *QueryBuilder) Build(ctx context.Context, req *entity.ExtractedRequirements) entity.CatalogFilter {
	var (
		filter entity.CatalogFilter
		terms  searchTerms
	)

	if req == nil {
		return filter
	}

	if req.Brand != nil && strings.TrimSpace(*req.Brand) != "" {
		brand := strings.TrimSpace(*req.Brand)
		filter.Brand = &brand
		terms.add(brand)
	}

	filter.MinPrice = req.MinPrice
	filter.MaxPrice = req.MaxPrice
	filter.MinRating = req.MinRating

	if req.Category != nil && strings.TrimSpace(*req.Category) != "" {
		category := strings.TrimSpace(*req.Category)
		id, err := b.categories.FindCategoryIDByName(ctx, category)
		if err != nil {
			ctxzap.Info(ctx, "category not resolved, searching it as text",
				zap.String("category", category),
				zap.Error(err),
			)
			terms.add(category)
		} else {
			filter.CategoryID = &id
		}
	}

	for _, feature := range req.Features {
		terms.add(feature)
	}
	for _, keyword := range req.Keywords {
		terms.add(keyword)
	}

	if !filter.HasStructuredPredicate() && len(terms) > 0 {
		filter.TextSearch = terms
	}

	ctxzap.Debug(ctx, "catalog filter built",
		zap.Bool("structured", filter.HasStructuredPredicate()),
		zap.Strings("text_search", filter.TextSearch),
	)

	return filter
}

// searchTerms keeps insertion order and drops blank and case-insensitive duplicate terms
type searchTerms []string

func (t *searchTerms) add(term string) {
	term = strings.TrimSpace(term)
	if term == "" {
		return
	}
	for _, existing := range *t {
		if strings.EqualFold(existing, term) {
			return
		}
	}
	*t = append(*t, term)
}
