package formatter

import (
	"bytes"
	"fmt"

	"github.com/futig/storefront-ai/internal/entity"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (mf *MarkdownFormatter) Format(a *entity.ReviewAnalysis) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n_%s_\n", reportTitle(a), reportSubtitle(a))

	for _, s := range reportSections(a) {
		fmt.Fprintf(&buf, "\n## %s\n\n", s.title)
		for _, item := range s.items {
			fmt.Fprintf(&buf, "- %s\n", item)
		}
	}

	if line := sentimentLine(a); line != "" {
		fmt.Fprintf(&buf, "\n**%s**\n", line)
	}

	return buf.Bytes(), nil
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}
