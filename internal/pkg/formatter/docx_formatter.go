package formatter

import (
	"bytes"

	"github.com/futig/storefront-ai/internal/entity"
	"github.com/unidoc/unioffice/document"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

type DOCXFormatter struct{}

func NewDOCXFormatter() *DOCXFormatter {
	return &DOCXFormatter{}
}

func (df *DOCXFormatter) Format(a *entity.ReviewAnalysis) ([]byte, error) {
	doc := document.New()
	defer doc.Close()

	addStyled(doc, "Title", reportTitle(a))
	addStyled(doc, "Subtitle", reportSubtitle(a))

	for _, s := range reportSections(a) {
		addStyled(doc, "Heading2", s.title)
		for _, item := range s.items {
			addStyled(doc, "ListParagraph", "• "+item)
		}
	}

	if line := sentimentLine(a); line != "" {
		doc.AddParagraph()
		run := doc.AddParagraph().AddRun()
		run.Properties().SetBold(true)
		run.AddText(line)
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addStyled(doc *document.Document, style, text string) {
	par := doc.AddParagraph()
	par.SetStyle(style)
	par.AddRun().AddText(text)
}

func (df *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (df *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}
