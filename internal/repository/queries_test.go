package repository

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/futig/storefront-ai/internal/entity"
	"github.com/google/uuid"
)

func ptr[T any](v T) *T { return &v }

var _ = Describe("buildCandidateQuery", func() {
	It("has no WHERE clause for an unconstrained filter", func() {
		query, args := buildCandidateQuery(entity.CatalogFilter{}, 20)

		Expect(query).NotTo(ContainSubstring("WHERE"))
		Expect(query).To(HaveSuffix("LIMIT $1"))
		Expect(args).To(Equal([]any{20}))
	})

	It("ANDs structured predicates with inclusive bounds", func() {
		categoryID := uuid.New()
		query, args := buildCandidateQuery(entity.CatalogFilter{
			Brand:      ptr("Sam"),
			MinPrice:   ptr(100.0),
			MaxPrice:   ptr(50000.0),
			MinRating:  ptr(4.0),
			CategoryID: ptr(categoryID.String()),
		}, 20)

		Expect(query).To(ContainSubstring("p.brand ILIKE $1"))
		Expect(query).To(ContainSubstring("p.price >= $2"))
		Expect(query).To(ContainSubstring("AND p.price <= $3"))
		Expect(query).To(ContainSubstring("AND p.rating >= $4"))
		Expect(query).To(ContainSubstring("AND p.category_id = $5"))
		Expect(args).To(Equal([]any{"%Sam%", 100.0, 50000.0, 4.0, categoryID, 20}))
	})

	It("ORs text terms across name and description", func() {
		query, args := buildCandidateQuery(entity.CatalogFilter{TextSearch: []string{"waterproof", "100%_cotton"}}, 5)

		Expect(query).To(ContainSubstring("(p.name ILIKE $1 ESCAPE '\\' OR p.description ILIKE $1 ESCAPE '\\' OR p.name ILIKE $2"))
		Expect(args).To(Equal([]any{"%waterproof%", `%100\%\_cotton%`, 5}))
	})

	It("maps an unparsable category id to the nil uuid", func() {
		_, args := buildCandidateQuery(entity.CatalogFilter{CategoryID: ptr("not-a-uuid")}, 20)

		Expect(args[0]).To(Equal(uuid.Nil))
	})
})
