package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/printshophq/printshop-backend/internal/modules/invoice"
	"github.com/printshophq/printshop-backend/internal/modules/quote"
	"github.com/printshophq/printshop-backend/internal/modules/settings"
)

func testSettings() *settings.CompanySettings {
	return &settings.CompanySettings{
		CompanyName:    "Kwacha Prints",
		CurrencySymbol: "K",
		TaxRate:        0.16,
		Address:        "Plot 12, Cairo Road, Lusaka",
		FooterNote:     "Thank you for your business",
	}
}

func testInvoice() *invoice.Invoice {
	return &invoice.Invoice{
		ID:            uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
		InvoiceNumber: "INV-20260115-AB12",
		CustomerID:    uuid.MustParse("6ba7b811-9dad-11d1-80b4-00c04fd430c8"),
		LineItems: []invoice.LineItem{
			{Description: "A2 Posters", Quantity: 50, UnitPrice: 12, Amount: 600},
		},
		Subtotal:  600,
		TaxRate:   0.16,
		Tax:       96,
		Total:     696,
		Status:    invoice.StatusSent,
		CreatedAt: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestRenderInvoiceProducesPDF(t *testing.T) {
	data, err := RenderInvoice(testInvoice(), "Chanda Mwale", testSettings())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output does not look like a PDF")
	}
	if len(data) < 1000 {
		t.Fatalf("suspiciously small document: %d bytes", len(data))
	}
}

func TestRenderInvoiceIsDeterministic(t *testing.T) {
	cfg := testSettings()
	a, err := RenderInvoice(testInvoice(), "Chanda Mwale", cfg)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	b, err := RenderInvoice(testInvoice(), "Chanda Mwale", cfg)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("identical inputs must render identical bytes")
	}
}

func TestRenderInvoiceValidation(t *testing.T) {
	cfg := testSettings()

	if _, err := RenderInvoice(nil, "", cfg); err == nil {
		t.Fatalf("expected error for nil invoice")
	}

	inv := testInvoice()
	inv.InvoiceNumber = ""
	if _, err := RenderInvoice(inv, "", cfg); err == nil {
		t.Fatalf("expected error for missing invoice number")
	}

	inv = testInvoice()
	inv.LineItems = nil
	if _, err := RenderInvoice(inv, "", cfg); err == nil {
		t.Fatalf("expected error for empty line items")
	}

	if _, err := RenderInvoice(testInvoice(), "", nil); err == nil {
		t.Fatalf("expected error for missing settings")
	}
}

func TestRenderQuoteRequiresPrice(t *testing.T) {
	q := &quote.Quote{
		ID:         uuid.MustParse("6ba7b812-9dad-11d1-80b4-00c04fd430c8"),
		CustomerID: uuid.New(),
		Quantity:   100,
		Status:     quote.StatusRequested,
		CreatedAt:  time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC),
	}
	if _, err := RenderQuote(q, "", "", testSettings()); err == nil {
		t.Fatalf("expected error for unpriced quote")
	}

	price := 850.0
	q.QuotedPrice = &price
	q.Status = quote.StatusReviewed
	data, err := RenderQuote(q, "Acme Banners", "Vinyl banner", testSettings())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output does not look like a PDF")
	}
}

func TestMoneyUsesConfiguredSymbol(t *testing.T) {
	if got := money("K", 1234.5); got != "K1234.50" {
		t.Fatalf("money = %q", got)
	}
	if got := money("$", 0); got != "$0.00" {
		t.Fatalf("money = %q", got)
	}
}
