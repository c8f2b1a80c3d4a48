// Package pdf renders documents as A4 PDF files with core fonts only.
package pdf

import (
	"bytes"

	"shiptrack/internal/core/domain/services"

	"github.com/go-pdf/fpdf"
)

const (
	contentType = "application/pdf"

	fontFamily  = "Helvetica"
	pageMargin  = 15.0
	labelWidth  = 42.0
	lineHeight  = 6.0
	noteIndent  = 6.0
	sectionGap  = 4.0
	titleHeight = 10.0
)

// Renderer implements ports.DocumentRenderer.
type Renderer struct{}

func NewRenderer() Renderer {
	return Renderer{}
}

func (Renderer) ContentType() string {
	return contentType
}

func (Renderer) Render(doc services.Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle(doc.Title, true)
	pdf.AddPage()

	// Core fonts expect cp1252 bytes; document text is Latin-1 safe UTF-8.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont(fontFamily, "B", 16)
	pdf.CellFormat(0, titleHeight, tr(doc.Title), "", 1, "L", false, 0, "")
	pdf.SetFont(fontFamily, "", 10)
	pdf.CellFormat(0, lineHeight, tr(doc.GeneratedAt), "", 1, "L", false, 0, "")

	for _, section := range doc.Sections {
		pdf.Ln(sectionGap)
		pdf.SetFont(fontFamily, "B", 12)
		pdf.CellFormat(0, lineHeight+2, tr(section.Title), "", 1, "L", false, 0, "")

		for _, f := range section.Fields {
			pdf.SetFont(fontFamily, "B", 10)
			pdf.CellFormat(labelWidth, lineHeight, tr(f.Label+":"), "", 0, "L", false, 0, "")
			pdf.SetFont(fontFamily, "", 10)
			pdf.MultiCell(0, lineHeight, tr(f.Value), "", "L", false)
		}

		for _, l := range section.Lines {
			writeLine(pdf, tr, l)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeLine(pdf *fpdf.Fpdf, tr func(string) string, l services.Line) {
	left, _, _, _ := pdf.GetMargins()

	switch l.Kind {
	case services.LineNote:
		pdf.SetFont(fontFamily, "I", 10)
		pdf.SetX(left + noteIndent)
	case services.LineProof:
		pdf.SetFont(fontFamily, "", 10)
		pdf.SetX(left + noteIndent)
	default:
		pdf.SetFont(fontFamily, "", 10)
	}
	pdf.MultiCell(0, lineHeight, tr(l.Text), "", "L", false)
}
