package pdf

import (
	"bytes"
	"fmt"

	"github.com/printshophq/printshop-backend/internal/modules/invoice"
	"github.com/printshophq/printshop-backend/internal/modules/settings"
)

// RenderInvoice renders an invoice document. Output is deterministic for
// identical inputs: the creation date is pinned to the invoice's own
// timestamp.
func RenderInvoice(inv *invoice.Invoice, customerName string, cfg *settings.CompanySettings) ([]byte, error) {
	if inv == nil {
		return nil, fmt.Errorf("invoice is required")
	}
	if inv.InvoiceNumber == "" {
		return nil, fmt.Errorf("invoice number is required")
	}
	if len(inv.LineItems) == 0 {
		return nil, fmt.Errorf("invoice has no line items")
	}
	if cfg == nil {
		return nil, fmt.Errorf("company settings are required")
	}

	doc := newDocument(cfg, "INVOICE")
	doc.SetCreationDate(inv.CreatedAt.UTC())

	// Meta block
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(0, 5, fmt.Sprintf("Invoice no: %s", inv.InvoiceNumber), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 5, fmt.Sprintf("Date: %s", inv.CreatedAt.Format("2 Jan 2006")), "", 1, "L", false, 0, "")
	if customerName != "" {
		doc.CellFormat(0, 5, fmt.Sprintf("Billed to: %s", customerName), "", 1, "L", false, 0, "")
	}
	if inv.DueDate != nil {
		doc.CellFormat(0, 5, fmt.Sprintf("Due: %s", inv.DueDate.Format("2 Jan 2006")), "", 1, "L", false, 0, "")
	}
	doc.Ln(4)

	// Line item table
	doc.SetFont("Helvetica", "B", 10)
	doc.SetFillColor(235, 235, 235)
	doc.CellFormat(95, 7, "Description", "1", 0, "L", true, 0, "")
	doc.CellFormat(20, 7, "Qty", "1", 0, "R", true, 0, "")
	doc.CellFormat(35, 7, "Unit price", "1", 0, "R", true, 0, "")
	doc.CellFormat(35, 7, "Amount", "1", 1, "R", true, 0, "")

	doc.SetFont("Helvetica", "", 10)
	for _, li := range inv.LineItems {
		doc.CellFormat(95, 7, li.Description, "1", 0, "L", false, 0, "")
		doc.CellFormat(20, 7, fmt.Sprintf("%d", li.Quantity), "1", 0, "R", false, 0, "")
		doc.CellFormat(35, 7, money(cfg.CurrencySymbol, li.UnitPrice), "1", 0, "R", false, 0, "")
		doc.CellFormat(35, 7, money(cfg.CurrencySymbol, li.Amount), "1", 1, "R", false, 0, "")
	}

	// Totals
	doc.Ln(2)
	totals := []struct {
		label string
		value float64
	}{
		{"Subtotal", inv.Subtotal},
		{fmt.Sprintf("Tax (%.0f%%)", inv.TaxRate*100), inv.Tax},
		{"Total", inv.Total},
	}
	for i, t := range totals {
		if i == len(totals)-1 {
			doc.SetFont("Helvetica", "B", 11)
		}
		doc.CellFormat(115, 6, "", "", 0, "L", false, 0, "")
		doc.CellFormat(35, 6, t.label, "", 0, "R", false, 0, "")
		doc.CellFormat(35, 6, money(cfg.CurrencySymbol, t.value), "", 1, "R", false, 0, "")
	}

	if inv.Notes != "" {
		doc.Ln(6)
		doc.SetFont("Helvetica", "", 9)
		doc.MultiCell(0, 5, inv.Notes, "", "L", false)
	}

	footer(doc, cfg)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}
