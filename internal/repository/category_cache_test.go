package repository

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/futig/storefront-ai/internal/entity"
)

type fakeCategoryLookup struct {
	ids       map[string]string
	callCount int
}

func (f *fakeCategoryLookup) FindCategoryIDByName(_ context.Context, name string) (string, error) {
	f.callCount++
	if id, ok := f.ids[name]; ok {
		return id, nil
	}
	return "", entity.ErrCategoryNotFound
}

var _ = Describe("CategoryCache", func() {
	var (
		lookup *fakeCategoryLookup
		cache  *CategoryCache
		ctx    context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		lookup = &fakeCategoryLookup{ids: map[string]string{"Smartphone": "cat-1"}}
		cache = NewCategoryCache(lookup, time.Minute)
	})

	It("serves repeated lookups from the cache regardless of case", func() {
		id, err := cache.FindCategoryIDByName(ctx, "Smartphone")
		Expect(err).NotTo(HaveOccurred())
		Expect(id).To(Equal("cat-1"))

		id, err = cache.FindCategoryIDByName(ctx, " smartphone ")
		Expect(err).NotTo(HaveOccurred())
		Expect(id).To(Equal("cat-1"))
		Expect(lookup.callCount).To(Equal(1))
	})

	It("does not cache misses", func() {
		_, err := cache.FindCategoryIDByName(ctx, "Laptop")
		Expect(err).To(MatchError(entity.ErrCategoryNotFound))

		lookup.ids["Laptop"] = "cat-2"
		id, err := cache.FindCategoryIDByName(ctx, "Laptop")
		Expect(err).NotTo(HaveOccurred())
		Expect(id).To(Equal("cat-2"))
		Expect(lookup.callCount).To(Equal(2))
	})
})
