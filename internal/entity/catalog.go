package entity

type Review struct {
	Name    string
	Rating  float64
	Comment string
}

// ProductReviews is the review projection of a product
type ProductReviews struct {
	ProductID   string
	ProductName string
	Reviews     []Review
}

// CandidateProduct is a read-only projection of a catalog product plus ranking metadata
type CandidateProduct struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Brand       string  `json:"brand"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Rating      float64 `json:"rating"`
	NumReviews  int     `json:"numReviews"`
	Category    string  `json:"category"`

	Relevance   float64 `json:"relevance"`
	MatchReason string  `json:"matchReason,omitempty"`
}

// CatalogFilter is a conjunction of structured predicates. TextSearch is an OR-search over
// name and description and is only populated when no structured predicate is set.
type CatalogFilter struct {
	Brand      *string
	MinPrice   *float64
	MaxPrice   *float64
	MinRating  *float64
	CategoryID *string
	TextSearch []string
}

// HasStructuredPredicate reports whether brand, price, rating or category is constrained
func (f CatalogFilter) HasStructuredPredicate() bool {
	return f.Brand != nil || f.MinPrice != nil || f.MaxPrice != nil || f.MinRating != nil || f.CategoryID != nil
}

// MatchesAll reports whether the filter places no constraint at all
func (f CatalogFilter) MatchesAll() bool {
	return !f.HasStructuredPredicate() && len(f.TextSearch) == 0
}
