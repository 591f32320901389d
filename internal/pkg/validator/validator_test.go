package validator_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/futig/storefront-ai/internal/config"
	"github.com/futig/storefront-ai/internal/entity"
	"github.com/futig/storefront-ai/internal/pkg/validator"
)

var _ = Describe("Validator", func() {
	var v *validator.Validator

	BeforeEach(func() {
		v = validator.NewValidator(config.InputConfig{MaxPromptLength: 10, MaxMessageLength: 5})
	})

	DescribeTable("ValidateGenerate",
		func(prompt string, expected error) {
			err := v.ValidateGenerate(&entity.GenerateRequest{Prompt: prompt})
			if expected == nil {
				Expect(err).NotTo(HaveOccurred())
			} else {
				Expect(err).To(MatchError(expected))
			}
		},
		Entry("valid prompt", "hello", nil),
		Entry("empty prompt", "", entity.ErrMissingField),
		Entry("blank prompt", "   ", entity.ErrMissingField),
		Entry("too long", strings.Repeat("a", 11), entity.ErrInvalidParameter),
	)

	DescribeTable("ValidateProductSuggestion",
		func(message string, expected error) {
			err := v.ValidateProductSuggestion(&entity.ProductSuggestionRequest{Message: message})
			if expected == nil {
				Expect(err).NotTo(HaveOccurred())
			} else {
				Expect(err).To(MatchError(expected))
			}
		},
		Entry("valid message", "phone", nil),
		Entry("counts runes, not bytes", "смарт", nil),
		Entry("empty message", "", entity.ErrMissingField),
		Entry("too long", "phones!", entity.ErrInvalidParameter),
	)

	It("rejects a blank product id", func() {
		Expect(v.ValidateProductID(" ")).To(MatchError(entity.ErrMissingField))
		Expect(v.ValidateProductID("abc")).To(Succeed())
	})
})

var _ = Describe("ValidateReportFormat", func() {
	v := validator.NewValidator(config.InputConfig{MaxPromptLength: 1, MaxMessageLength: 1})

	It("defaults to markdown", func() {
		Expect(v.ValidateReportFormat("")).To(Equal(entity.ReportMarkdown))
	})

	It("is case-insensitive", func() {
		Expect(v.ValidateReportFormat("PDF")).To(Equal(entity.ReportPDF))
	})

	It("rejects unknown formats", func() {
		_, err := v.ValidateReportFormat("xlsx")
		Expect(err).To(MatchError(entity.ErrInvalidFormat))
	})
})
