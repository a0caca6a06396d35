package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/dejobratic/orderdesk/internal/orders/domain"
)

var columnWidths = []float64{50, 35, 55, 25, 25}

const utf8Family = "body"

// PDFGenerator lays the rows out as a bordered A4 table under a title.
// Without a UTF-8 font it uses the core Helvetica face, which only covers
// cp1252; other characters render as replacements.
type PDFGenerator struct {
	title      string
	compressed bool
	font       []byte
}

func (g *PDFGenerator) Generate(orders []domain.Order) (Artifact, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(g.compressed)

	family := "Helvetica"
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if len(g.font) > 0 {
		pdf.AddUTF8FontFromBytes(utf8Family, "", g.font)
		pdf.AddUTF8FontFromBytes(utf8Family, "B", g.font)
		if err := pdf.Error(); err != nil {
			return Artifact{}, fmt.Errorf("load report font: %w", err)
		}
		family = utf8Family
		tr = func(s string) string { return s }
	}

	pdf.AddPage()
	pdf.SetFont(family, "B", 14)
	pdf.CellFormat(0, 10, tr(g.title), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	rows := Rows(orders)

	pdf.SetFont(family, "B", 9)
	pdf.SetFillColor(255, 214, 153)
	for i, cell := range rows[0] {
		pdf.CellFormat(columnWidths[i], 7, tr(cell), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(family, "", 9)
	for _, row := range rows[1:] {
		for i, cell := range row {
			align := "L"
			if i == 3 {
				align = "R"
			}
			pdf.CellFormat(columnWidths[i], 7, tr(cell), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return Artifact{}, fmt.Errorf("render pdf report: %w", err)
	}

	return Artifact{
		Format:      FormatPDF,
		Filename:    "orders.pdf",
		ContentType: "application/pdf",
		Body:        buf.Bytes(),
	}, nil
}
