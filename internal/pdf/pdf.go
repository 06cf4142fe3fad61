// Package pdf renders customer-facing documents with direct drawing
// primitives. Renderers are stateless pure functions of their inputs and are
// safe to call concurrently.
package pdf

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/printshophq/printshop-backend/internal/modules/settings"
)

// money formats an amount with the configured currency symbol.
func money(symbol string, amount float64) string {
	return fmt.Sprintf("%s%.2f", symbol, amount)
}

// newDocument creates an A4 page with the company identity block drawn.
func newDocument(cfg *settings.CompanySettings, title string) *gofpdf.Fpdf {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	// Company block
	doc.SetFont("Helvetica", "B", 18)
	doc.Cell(120, 10, cfg.CompanyName)

	doc.SetFont("Helvetica", "B", 14)
	doc.CellFormat(60, 10, title, "", 1, "R", false, 0, "")

	doc.SetFont("Helvetica", "", 9)
	for _, line := range []string{cfg.Address, cfg.Phone, cfg.Email, cfg.Website} {
		if line == "" {
			continue
		}
		doc.CellFormat(0, 4.5, line, "", 1, "L", false, 0, "")
	}

	doc.Ln(4)
	x, y := doc.GetXY()
	doc.SetLineWidth(0.4)
	doc.Line(x, y, 200, y)
	doc.Ln(4)
	return doc
}

// footer draws the configured footer note at the bottom of the page.
func footer(doc *gofpdf.Fpdf, cfg *settings.CompanySettings) {
	if cfg.FooterNote == "" {
		return
	}
	doc.SetY(-20)
	doc.SetFont("Helvetica", "I", 8)
	doc.CellFormat(0, 5, cfg.FooterNote, "", 0, "C", false, 0, "")
}
