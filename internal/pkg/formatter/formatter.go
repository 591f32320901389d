package formatter

import (
	"fmt"
	"strconv"

	"github.com/futig/storefront-ai/internal/entity"
)

// Formatter renders a review analysis as a downloadable document
type Formatter interface {
	Format(analysis *entity.ReviewAnalysis) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ReportFormat) (Formatter, error) {
	switch format {
	case entity.ReportMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.ReportDOCX:
		return NewDOCXFormatter(), nil
	case entity.ReportPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported report format %q", entity.ErrInvalidFormat, format)
	}
}

type section struct {
	title string
	items []string
}

func reportTitle(a *entity.ReviewAnalysis) string {
	return "Review summary: " + a.ProductName
}

func reportSubtitle(a *entity.ReviewAnalysis) string {
	if a.ReviewCount == 1 {
		return "Based on 1 review"
	}
	return "Based on " + strconv.Itoa(a.ReviewCount) + " reviews"
}

func reportSections(a *entity.ReviewAnalysis) []section {
	if a.Summary == nil {
		return nil
	}
	return []section{
		{title: "Pros", items: a.Summary.Pros},
		{title: "Cons", items: a.Summary.Cons},
	}
}

func sentimentLine(a *entity.ReviewAnalysis) string {
	if a.Summary == nil {
		return ""
	}
	return fmt.Sprintf("Overall sentiment: %.1f / 5", a.Summary.SentimentScore)
}
