package repository

import (
	"fmt"
	"strings"

	"github.com/futig/storefront-ai/internal/entity"
	"github.com/google/uuid"
)

const (
	selectCandidates = `SELECT p.id, p.name, p.brand, p.price, p.description, p.image, p.rating, p.num_reviews,
       COALESCE(c.name, '') AS category
FROM products p
LEFT JOIN categories c ON c.id = p.category_id`

	selectCategoryByName = `SELECT id FROM categories WHERE LOWER(name) = LOWER($1) LIMIT 1`

	selectProductName = `SELECT name FROM products WHERE id = $1`

	selectProductReviews = `SELECT name, rating, comment FROM reviews WHERE product_id = $1 ORDER BY created_at, id`
)

// buildCandidateQuery translates the filter into a parameterised SELECT.
// Structured predicates are ANDed; text search terms are ORed across name and description.
func buildCandidateQuery(filter entity.CatalogFilter, limit int) (string, []any) {
	var (
		conds []string
		args  []any
	)

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Brand != nil {
		conds = append(conds, "p.brand ILIKE "+arg(containsPattern(*filter.Brand))+` ESCAPE '\'`)
	}
	if filter.MinPrice != nil {
		conds = append(conds, "p.price >= "+arg(*filter.MinPrice))
	}
	if filter.MaxPrice != nil {
		conds = append(conds, "p.price <= "+arg(*filter.MaxPrice))
	}
	if filter.MinRating != nil {
		conds = append(conds, "p.rating >= "+arg(*filter.MinRating))
	}
	if filter.CategoryID != nil {
		// an unparsable id can match nothing
		categoryID, err := uuid.Parse(*filter.CategoryID)
		if err != nil {
			categoryID = uuid.Nil
		}
		conds = append(conds, "p.category_id = "+arg(categoryID))
	}

	if len(filter.TextSearch) > 0 {
		var terms []string
		for _, term := range filter.TextSearch {
			placeholder := arg(containsPattern(term))
			terms = append(terms,
				"p.name ILIKE "+placeholder+` ESCAPE '\'`,
				"p.description ILIKE "+placeholder+` ESCAPE '\'`,
			)
		}
		conds = append(conds, "("+strings.Join(terms, " OR ")+")")
	}

	var b strings.Builder
	b.WriteString(selectCandidates)
	if len(conds) > 0 {
		b.WriteString("\nWHERE ")
		b.WriteString(strings.Join(conds, "\n  AND "))
	}
	b.WriteString("\nORDER BY p.rating DESC, p.num_reviews DESC, p.id")
	b.WriteString("\nLIMIT " + arg(limit))

	return b.String(), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a case-insensitive substring pattern for ILIKE
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
