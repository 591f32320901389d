package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/futig/storefront-ai/internal/config"
	"github.com/futig/storefront-ai/internal/entity"
)

// Validator checks incoming assistant requests against the configured input limits
type Validator struct {
	cfg config.InputConfig
}

func NewValidator(cfg config.InputConfig) *Validator {
	return &Validator{cfg: cfg}
}

func (v *Validator) ValidateGenerate(req *entity.GenerateRequest) error {
	if strings.TrimSpace(req.Prompt) == "" {
		return fmt.Errorf("%w: prompt", entity.ErrMissingField)
	}

	if n := utf8.RuneCountInString(req.Prompt); n > v.cfg.MaxPromptLength {
		return fmt.Errorf("%w: prompt is %d characters (max %d)", entity.ErrInvalidParameter, n, v.cfg.MaxPromptLength)
	}

	return nil
}

func (v *Validator) ValidateProductSuggestion(req *entity.ProductSuggestionRequest) error {
	if strings.TrimSpace(req.Message) == "" {
		return fmt.Errorf("%w: message", entity.ErrMissingField)
	}

	if n := utf8.RuneCountInString(req.Message); n > v.cfg.MaxMessageLength {
		return fmt.Errorf("%w: message is %d characters (max %d)", entity.ErrInvalidParameter, n, v.cfg.MaxMessageLength)
	}

	return nil
}

// ValidateProductID only rejects blank ids; unknown ids surface as "no reviews"
func (v *Validator) ValidateProductID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: product id", entity.ErrMissingField)
	}
	return nil
}

// ValidateReportFormat defaults an empty format to markdown
func (v *Validator) ValidateReportFormat(raw string) (entity.ReportFormat, error) {
	if raw == "" {
		return entity.ReportMarkdown, nil
	}

	format := entity.ReportFormat(strings.ToLower(raw))
	if !format.IsValid() {
		return "", fmt.Errorf("%w: %q (expected markdown, docx or pdf)", entity.ErrInvalidFormat, raw)
	}
	return format, nil
}
