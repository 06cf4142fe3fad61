package pdf

import (
	"bytes"
	"fmt"

	"github.com/printshophq/printshop-backend/internal/modules/quote"
	"github.com/printshophq/printshop-backend/internal/modules/settings"
)

// RenderQuote renders a priced quote proposal. Quotes that have not been
// priced yet cannot be rendered.
func RenderQuote(q *quote.Quote, customerName, serviceName string, cfg *settings.CompanySettings) ([]byte, error) {
	if q == nil {
		return nil, fmt.Errorf("quote is required")
	}
	if q.QuotedPrice == nil {
		return nil, fmt.Errorf("quote has not been priced")
	}
	if cfg == nil {
		return nil, fmt.Errorf("company settings are required")
	}

	doc := newDocument(cfg, "QUOTE")
	doc.SetCreationDate(q.CreatedAt.UTC())

	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(0, 5, fmt.Sprintf("Quote ref: %s", q.ID.String()[:8]), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 5, fmt.Sprintf("Date: %s", q.CreatedAt.Format("2 Jan 2006")), "", 1, "L", false, 0, "")
	if customerName != "" {
		doc.CellFormat(0, 5, fmt.Sprintf("Prepared for: %s", customerName), "", 1, "L", false, 0, "")
	}
	if q.ValidUntil != nil {
		doc.CellFormat(0, 5, fmt.Sprintf("Valid until: %s", q.ValidUntil.Format("2 Jan 2006")), "", 1, "L", false, 0, "")
	}
	doc.Ln(4)

	doc.SetFont("Helvetica", "B", 10)
	doc.SetFillColor(235, 235, 235)
	doc.CellFormat(95, 7, "Service", "1", 0, "L", true, 0, "")
	doc.CellFormat(20, 7, "Qty", "1", 0, "R", true, 0, "")
	doc.CellFormat(70, 7, "Quoted price", "1", 1, "R", true, 0, "")

	doc.SetFont("Helvetica", "", 10)
	name := serviceName
	if name == "" {
		name = "Print service"
	}
	doc.CellFormat(95, 7, name, "1", 0, "L", false, 0, "")
	doc.CellFormat(20, 7, fmt.Sprintf("%d", q.Quantity), "1", 0, "R", false, 0, "")
	doc.CellFormat(70, 7, money(cfg.CurrencySymbol, *q.QuotedPrice), "1", 1, "R", false, 0, "")

	if q.Description != "" {
		doc.Ln(6)
		doc.SetFont("Helvetica", "", 9)
		doc.MultiCell(0, 5, q.Description, "", "L", false)
	}

	footer(doc, cfg)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render quote pdf: %w", err)
	}
	return buf.Bytes(), nil
}
