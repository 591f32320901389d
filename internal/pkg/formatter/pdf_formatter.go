package formatter

import (
	"bytes"
	"os"

	"github.com/futig/storefront-ai/internal/entity"
	"github.com/jung-kurt/gofpdf"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"

	pdfFontName = "DejaVuSans"

	// Runtime layout copies fonts next to the binary; the source path works from the repo root
	pdfFontRuntimePath = "ttf/DejaVuSans.ttf"
	pdfFontSourcePath  = "internal/pkg/formatter/ttf/DejaVuSans.ttf"
)

type PDFFormatter struct{}

func NewPDFFormatter() *PDFFormatter {
	return &PDFFormatter{}
}

func resolveFontPath() string {
	for _, path := range []string{pdfFontRuntimePath, pdfFontSourcePath} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Format uses DejaVuSans when available for full UTF-8 support, and falls back to
// Helvetica with cp1252 translation otherwise.
func (pf *PDFFormatter) Format(a *entity.ReviewAnalysis) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	fontName := "Helvetica"
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if fontPath := resolveFontPath(); fontPath != "" {
		pdf.AddUTF8Font(pdfFontName, "", fontPath)
		pdf.AddUTF8Font(pdfFontName, "B", fontPath)
		fontName = pdfFontName
		tr = func(s string) string { return s }
	}

	pdf.SetFont(fontName, "B", 18)
	pdf.MultiCell(0, 9, tr(reportTitle(a)), "", "", false)
	pdf.SetFont(fontName, "", 11)
	pdf.Cell(0, 7, tr(reportSubtitle(a)))
	pdf.Ln(10)

	for _, s := range reportSections(a) {
		pdf.SetFont(fontName, "B", 14)
		pdf.Cell(0, 8, tr(s.title))
		pdf.Ln(9)

		pdf.SetFont(fontName, "", 12)
		_, lineHeight := pdf.GetFontSize()
		for _, item := range s.items {
			pdf.MultiCell(0, lineHeight*1.5, tr("- "+item), "", "", false)
		}
		pdf.Ln(3)
	}

	if line := sentimentLine(a); line != "" {
		pdf.SetFont(fontName, "B", 12)
		pdf.Cell(0, 8, tr(line))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (pf *PDFFormatter) ContentType() string {
	return pdfContentType
}

func (pf *PDFFormatter) FileExtension() string {
	return pdfFileExtension
}
