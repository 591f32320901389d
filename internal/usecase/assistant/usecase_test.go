package assistant_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/futig/storefront-ai/internal/entity"
	"github.com/futig/storefront-ai/internal/usecase/assistant"
)

var _ = Describe("AssistantUsecase", func() {
	var (
		completion *fakeCompletion
		catalog    *fakeCatalog
		categories *fakeCategories
		uc         *assistant.AssistantUsecase
		ctx        context.Context
		phones     []entity.CandidateProduct
	)

	BeforeEach(func() {
		ctx = context.Background()
		completion = &fakeCompletion{}
		catalog = &fakeCatalog{}
		categories = &fakeCategories{ids: map[string]string{"smartphone": "cat-phones"}}
		uc = assistant.NewUsecase(completion, catalog, categories, 20, zap.NewNop())
		phones = []entity.CandidateProduct{
			{ID: "1", Name: "Pixel 8", Price: 45999, Rating: 4.6},
			{ID: "2", Name: "Galaxy A55", Price: 38999, Rating: 4.3},
			{ID: "3", Name: "Nord 4", Price: 29999, Rating: 4.1},
			{ID: "4", Name: "Moto G", Price: 14999, Rating: 3.9},
		}
		catalog.findFn = func(context.Context, entity.CatalogFilter, int) ([]entity.CandidateProduct, error) {
			return phones, nil
		}
	})

	Describe("Generate", func() {
		It("returns the generated text", func() {
			completion.completeFn = byPurpose(map[entity.CompletionPurpose]string{entity.PurposeFreeform: "Hello!"})

			text, err := uc.Generate(ctx, "Say hello")

			Expect(err).NotTo(HaveOccurred())
			Expect(text).To(Equal("Hello!"))
		})

		It("rejects an empty prompt without calling the model", func() {
			_, err := uc.Generate(ctx, "  ")

			Expect(err).To(MatchError(entity.ErrMissingField))
			Expect(completion.callCount).To(Equal(0))
		})

		It("surfaces backend failures", func() {
			_, err := uc.Generate(ctx, "Say hello")

			Expect(err).To(MatchError(entity.ErrCompletionFailed))
		})
	})

	Describe("SuggestProducts", func() {
		It("answers 'Best smartphones under 50000' without ranking", func() {
			completion.completeFn = byPurpose(map[entity.CompletionPurpose]string{
				entity.PurposeRequirements: `{"brand": null, "maxPrice": 50000, "features": [], "category": "smartphone", "keywords": []}`,
				entity.PurposeComposition:  "Here are some great phones under 50000!",
			})

			suggestion, err := uc.SuggestProducts(ctx, "Best smartphones under 50000")

			Expect(err).NotTo(HaveOccurred())
			Expect(catalog.lastFilter.MaxPrice).To(HaveValue(BeNumerically("==", 50000)))
			Expect(catalog.lastFilter.CategoryID).To(HaveValue(Equal("cat-phones")))
			Expect(catalog.lastFilter.TextSearch).To(BeEmpty())
			Expect(catalog.lastLimit).To(Equal(20))

			Expect(suggestion.Response).To(Equal("Here are some great phones under 50000!"))
			Expect(suggestion.TotalMatches).To(Equal(4))
			Expect(ids(suggestion.Products)).To(Equal([]string{"1", "2", "3"}))
			Expect(suggestion.Products[0].Relevance).To(BeNumerically("==", 0.5))

			Expect(completion.callCount).To(Equal(2))
			Expect(completion.requests[0].Purpose).To(Equal(entity.PurposeRequirements))
			Expect(completion.requests[1].Purpose).To(Equal(entity.PurposeComposition))
		})

		It("searches the category as text when it cannot be resolved", func() {
			categories.ids = map[string]string{}
			completion.completeFn = byPurpose(map[entity.CompletionPurpose]string{
				entity.PurposeRequirements: `{"category": "smartphone"}`,
				entity.PurposeComposition:  "ok",
			})

			_, err := uc.SuggestProducts(ctx, "smartphones")

			Expect(err).NotTo(HaveOccurred())
			Expect(catalog.lastFilter.CategoryID).To(BeNil())
			Expect(catalog.lastFilter.TextSearch).To(Equal([]string{"smartphone"}))
		})

		It("ranks candidates when features are requested", func() {
			completion.completeFn = byPurpose(map[entity.CompletionPurpose]string{
				entity.PurposeRequirements: `{"features": ["great camera"]}`,
				entity.PurposeRanking:      `[{"id": "4", "relevance": 0.95, "reason": "Best camera for the price"}]`,
				entity.PurposeComposition:  "ok",
			})

			suggestion, err := uc.SuggestProducts(ctx, "phone with a great camera")

			Expect(err).NotTo(HaveOccurred())
			Expect(suggestion.Products[0].ID).To(Equal("4"))
			Expect(suggestion.Products[0].MatchReason).To(Equal("Best camera for the price"))
			Expect(completion.callCount).To(Equal(3))
		})

		It("still succeeds when ranking and composition fail", func() {
			completion.completeFn = byPurpose(map[entity.CompletionPurpose]string{
				entity.PurposeRequirements: `{"features": ["great camera"]}`,
				entity.PurposeRanking:      `not json`,
			})

			suggestion, err := uc.SuggestProducts(ctx, "phone with a great camera")

			Expect(err).NotTo(HaveOccurred())
			Expect(ids(suggestion.Products)).To(Equal([]string{"1", "2", "3"}))
			Expect(suggestion.Response).To(ContainSubstring("I found 4 products"))
			Expect(suggestion.Response).To(ContainSubstring("1. Pixel 8"))
		})

		It("replies with the refinement hint when nothing matches", func() {
			catalog.findFn = func(context.Context, entity.CatalogFilter, int) ([]entity.CandidateProduct, error) {
				return nil, nil
			}
			completion.completeFn = byPurpose(map[entity.CompletionPurpose]string{
				entity.PurposeRequirements: `{"brand": "Nokia"}`,
			})

			suggestion, err := uc.SuggestProducts(ctx, "nokia phones")

			Expect(err).NotTo(HaveOccurred())
			Expect(suggestion.TotalMatches).To(Equal(0))
			Expect(suggestion.Products).To(BeEmpty())
			Expect(suggestion.Response).To(ContainSubstring("couldn't find any products"))
			Expect(completion.callCount).To(Equal(1))
		})

		It("aborts when the requirements cannot be parsed", func() {
			completion.completeFn = byPurpose(map[entity.CompletionPurpose]string{
				entity.PurposeRequirements: "I think you want phones",
			})

			_, err := uc.SuggestProducts(ctx, "phones")

			Expect(err).To(MatchError(entity.ErrRequirementsParse))
			Expect(catalog.findCount).To(Equal(0))
		})

		It("aborts when the catalog query fails", func() {
			completion.completeFn = byPurpose(map[entity.CompletionPurpose]string{
				entity.PurposeRequirements: `{}`,
			})
			catalog.findFn = func(context.Context, entity.CatalogFilter, int) ([]entity.CandidateProduct, error) {
				return nil, errors.New("connection refused")
			}

			_, err := uc.SuggestProducts(ctx, "phones")

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("query"))
			Expect(completion.callCount).To(Equal(1))
		})

		It("rejects an empty message", func() {
			_, err := uc.SuggestProducts(ctx, "")

			Expect(err).To(MatchError(entity.ErrMissingField))
			Expect(completion.callCount).To(Equal(0))
		})
	})

	Describe("SummarizeReviews", func() {
		It("rejects an empty product id", func() {
			_, err := uc.SummarizeReviews(ctx, "")

			Expect(err).To(MatchError(entity.ErrMissingField))
			Expect(catalog.reviewsCount).To(Equal(0))
		})
	})
})
