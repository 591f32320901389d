package assistant_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/futig/storefront-ai/internal/entity"
	"github.com/futig/storefront-ai/internal/usecase/assistant"
)

var _ = Describe("ResponseComposer", func() {
	var (
		completion *fakeCompletion
		composer   *assistant.ResponseComposer
		ctx        context.Context
		top        []entity.CandidateProduct
	)

	BeforeEach(func() {
		ctx = context.Background()
		completion = &fakeCompletion{}
		composer = assistant.NewResponseComposer(completion)
		top = []entity.CandidateProduct{
			{ID: "1", Name: "Pixel 8", Brand: "Google", Price: 45999, Rating: 4.6, NumReviews: 12, MatchReason: "Great camera"},
			{ID: "2", Name: "Galaxy A55", Brand: "Samsung", Price: 38999, Rating: 4.3, NumReviews: 30, MatchReason: "Matches general criteria", Description: "AMOLED display"},
			{ID: "3", Name: "Nord 4", Brand: "OnePlus", Price: 29999, Rating: 4.1, NumReviews: 8},
			{ID: "4", Name: "Moto G", Brand: "Motorola", Price: 14999, Rating: 3.9, NumReviews: 5},
		}
	})

	It("returns the refinement hint without calling the model for no candidates", func() {
		reply, err := composer.Compose(ctx, "unicorn phone", nil, 0)

		Expect(err).NotTo(HaveOccurred())
		Expect(reply).To(ContainSubstring("couldn't find any products"))
		Expect(completion.callCount).To(Equal(0))
	})

	It("narrates the top three candidates", func() {
		completion.completeFn = byPurpose(map[entity.CompletionPurpose]string{
			entity.PurposeComposition: "  Here are three great phones!  ",
		})

		reply, err := composer.Compose(ctx, "Best smartphones under 50000", top, 7)

		Expect(err).NotTo(HaveOccurred())
		Expect(reply).To(Equal("Here are three great phones!"))

		prompt := completion.requests[0].Prompt
		Expect(completion.requests[0].OutputFormat).To(Equal(entity.OutputFormatText))
		Expect(prompt).To(ContainSubstring("Pixel 8"))
		Expect(prompt).To(ContainSubstring("Great camera"))
		Expect(prompt).To(ContainSubstring("AMOLED display"))
		Expect(prompt).To(ContainSubstring("Nord 4"))
		Expect(prompt).NotTo(ContainSubstring("Moto G"))
		Expect(prompt).To(ContainSubstring("We found 7 matching products"))
	})

	It("falls back to a templated listing when the model fails", func() {
		reply, err := composer.Compose(ctx, "phones", top[:2], 2)

		Expect(err).To(MatchError(entity.ErrCompletionFailed))
		Expect(reply).To(ContainSubstring("I found 2 products"))
		Expect(reply).To(ContainSubstring("1. Pixel 8 - $45999.00 (rated 4.6/5)"))
		Expect(reply).To(ContainSubstring("2. Galaxy A55 - $38999.00 (rated 4.3/5)"))
	})
})
