package assistant_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/futig/storefront-ai/internal/entity"
	"github.com/futig/storefront-ai/internal/usecase/assistant"
)

var _ = Describe("RelevanceRanker", func() {
	var (
		completion *fakeCompletion
		ranker     *assistant.RelevanceRanker
		ctx        context.Context
		candidates []entity.CandidateProduct
	)

	rankWith := func(output string) {
		completion.completeFn = byPurpose(map[entity.CompletionPurpose]string{entity.PurposeRanking: output})
	}

	BeforeEach(func() {
		ctx = context.Background()
		completion = &fakeCompletion{}
		ranker = assistant.NewRelevanceRanker(completion)
		candidates = []entity.CandidateProduct{
			{ID: "1", Name: "Phone A", Rating: 4, Price: 100, Description: "A phone"},
			{ID: "2", Name: "Phone B", Rating: 4, Price: 80, Description: "Another phone"},
		}
	})

	It("breaks relevance and rating ties by ascending price", func() {
		rankWith(`[{"id": "1", "relevance": 0.9, "reason": "good"}, {"id": "2", "relevance": 0.9, "reason": "good"}]`)

		ranked, err := ranker.Rank(ctx, candidates, []string{"camera"})

		Expect(err).NotTo(HaveOccurred())
		Expect(ids(ranked)).To(Equal([]string{"2", "1"}))
		Expect(ranked[0].Relevance).To(BeNumerically("==", 0.9))
	})

	It("orders by relevance, then rating, then price", func() {
		candidates = append(candidates,
			entity.CandidateProduct{ID: "3", Rating: 5, Price: 300},
			entity.CandidateProduct{ID: "4", Rating: 3, Price: 10},
		)
		rankWith(`{"rankings": [
			{"id": "1", "relevance": 0.2},
			{"id": "2", "relevance": 0.7},
			{"id": "3", "relevance": 0.7},
			{"id": "4", "relevance": 0.95}
		]}`)

		ranked, err := ranker.Rank(ctx, candidates, []string{"camera"})

		Expect(err).NotTo(HaveOccurred())
		Expect(ids(ranked)).To(Equal([]string{"4", "3", "2", "1"}))
	})

	It("lists every candidate with a truncated description in the prompt", func() {
		long := make([]byte, 300)
		for i := range long {
			long[i] = 'x'
		}
		candidates[0].Description = string(long)
		rankWith(`[]`)

		_, err := ranker.Rank(ctx, candidates, []string{"camera", "battery"})

		Expect(err).NotTo(HaveOccurred())
		prompt := completion.requests[0].Prompt
		Expect(prompt).To(ContainSubstring("ID: 1 |"))
		Expect(prompt).To(ContainSubstring("ID: 2 |"))
		Expect(prompt).To(ContainSubstring("camera, battery"))
		Expect(prompt).NotTo(ContainSubstring(string(long)))
		Expect(prompt).To(ContainSubstring(string(long[:200]) + "..."))
	})

	It("keeps the original order when the output fails to parse", func() {
		rankWith(`the best phone is Phone B`)

		ranked, err := ranker.Rank(ctx, candidates, []string{"camera"})

		Expect(err).To(MatchError(entity.ErrMalformedOutput))
		Expect(ids(ranked)).To(Equal([]string{"1", "2"}))
	})

	It("keeps the original order when the backend fails", func() {
		ranked, err := ranker.Rank(ctx, candidates, []string{"camera"})

		Expect(err).To(MatchError(entity.ErrCompletionFailed))
		Expect(ids(ranked)).To(Equal([]string{"1", "2"}))
	})

	It("leaves candidates at the default when the model returns unknown ids", func() {
		rankWith(`[{"id": "999", "relevance": 1.0, "reason": "made up"}, {"id": "2", "relevance": 0.3, "reason": "weak"}]`)

		ranked, err := ranker.Rank(ctx, candidates, []string{"camera"})

		Expect(err).NotTo(HaveOccurred())
		Expect(ids(ranked)).To(Equal([]string{"1", "2"}))
		Expect(ranked[0].Relevance).To(BeNumerically("==", 0.5))
		Expect(ranked[0].MatchReason).To(Equal("Matches general criteria"))
		Expect(ranked[1].MatchReason).To(Equal("weak"))
	})

	It("clamps scores into [0,1]", func() {
		rankWith(`[{"id": "1", "relevance": 7}, {"id": "2", "relevance": -1}]`)

		ranked, err := ranker.Rank(ctx, candidates, []string{"camera"})

		Expect(err).NotTo(HaveOccurred())
		Expect(ranked[0].Relevance).To(BeNumerically("==", 1))
		Expect(ranked[1].Relevance).To(BeNumerically("==", 0))
	})

	It("does not call the model without features", func() {
		ranked, err := ranker.Rank(ctx, candidates, nil)

		Expect(err).NotTo(HaveOccurred())
		Expect(ids(ranked)).To(Equal([]string{"1", "2"}))
		Expect(completion.callCount).To(Equal(0))
	})

	It("does not call the model for a single candidate", func() {
		_, err := ranker.Rank(ctx, candidates[:1], []string{"camera"})

		Expect(err).NotTo(HaveOccurred())
		Expect(completion.callCount).To(Equal(0))
	})

	It("does not modify the input slice", func() {
		rankWith(`[{"id": "2", "relevance": 0.9}]`)

		_, err := ranker.Rank(ctx, candidates, []string{"camera"})

		Expect(err).NotTo(HaveOccurred())
		Expect(ids(candidates)).To(Equal([]string{"1", "2"}))
		Expect(candidates[1].Relevance).To(BeZero())
	})
})
