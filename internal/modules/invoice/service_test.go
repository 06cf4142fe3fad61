package invoice

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/printshophq/printshop-backend/internal/modules/settings"
)

type fakeRepo struct {
	invoices map[string]*Invoice
}

func newFakeRepo() *fakeRepo { return &fakeRepo{invoices: map[string]*Invoice{}} }

func (f *fakeRepo) Create(ctx context.Context, inv *Invoice) error {
	f.invoices[inv.ID.String()] = inv
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*Invoice, error) {
	inv, ok := f.invoices[id]
	if !ok {
		return nil, errors.New("no rows")
	}
	cp := *inv
	return &cp, nil
}

func (f *fakeRepo) GetByNumber(ctx context.Context, number string) (*Invoice, error) {
	for _, inv := range f.invoices {
		if inv.InvoiceNumber == number {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, errors.New("no rows")
}

func (f *fakeRepo) List(ctx context.Context, status, customerID string) ([]*Invoice, error) {
	var out []*Invoice
	for _, inv := range f.invoices {
		out = append(out, inv)
	}
	return out, nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, id string, status Status) error {
	f.invoices[id].Status = status
	return nil
}

func (f *fakeRepo) MarkPaid(ctx context.Context, id string) error {
	f.invoices[id].Status = StatusPaid
	return nil
}

func (f *fakeRepo) MarkOverdueStale(ctx context.Context) (int64, error) { return 0, nil }

type fakeSettings struct{ cfg settings.CompanySettings }

func (f *fakeSettings) Get(ctx context.Context) (*settings.CompanySettings, error) {
	cp := f.cfg
	return &cp, nil
}

func (f *fakeSettings) Update(ctx context.Context, req settings.UpdateSettingsRequest) (*settings.CompanySettings, error) {
	return nil, errors.New("not implemented")
}

func newTestService(taxRate float64) (Service, *fakeRepo) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeSettings{cfg: settings.CompanySettings{TaxRate: taxRate}})
	return svc, repo
}

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestCreateComputesTotals(t *testing.T) {
	svc, _ := newTestService(0.16)

	inv, err := svc.Create(context.Background(), CreateInvoiceRequest{
		CustomerID: uuid.New().String(),
		LineItems: []LineItem{
			{Description: "Business cards", Quantity: 500, UnitPrice: 0.35},
			{Description: "Design fee", Quantity: 1, UnitPrice: 120},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !almostEqual(inv.Subtotal, 295) {
		t.Fatalf("subtotal = %v, want 295", inv.Subtotal)
	}
	if !almostEqual(inv.Tax, 47.2) {
		t.Fatalf("tax = %v, want 47.2", inv.Tax)
	}
	if !almostEqual(inv.Total, 342.2) {
		t.Fatalf("total = %v, want 342.2", inv.Total)
	}
	if !almostEqual(inv.LineItems[0].Amount, 175) {
		t.Fatalf("line amount = %v, want 175", inv.LineItems[0].Amount)
	}
	if inv.TaxRate != 0.16 {
		t.Fatalf("expected tax rate frozen onto the invoice")
	}
	if inv.Status != StatusDraft {
		t.Fatalf("expected draft, got %q", inv.Status)
	}
	if !strings.HasPrefix(inv.InvoiceNumber, "INV-") {
		t.Fatalf("unexpected invoice number %q", inv.InvoiceNumber)
	}
}

func TestCreateRoundsToCents(t *testing.T) {
	svc, _ := newTestService(0.16)

	inv, err := svc.Create(context.Background(), CreateInvoiceRequest{
		CustomerID: uuid.New().String(),
		LineItems:  []LineItem{{Description: "Stickers", Quantity: 3, UnitPrice: 0.333}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !almostEqual(inv.LineItems[0].Amount, 1.00) {
		t.Fatalf("amount = %v, want 1.00", inv.LineItems[0].Amount)
	}
	if !almostEqual(inv.Tax, 0.16) {
		t.Fatalf("tax = %v, want 0.16", inv.Tax)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService(0)
	ctx := context.Background()
	customerID := uuid.New().String()

	if _, err := svc.Create(ctx, CreateInvoiceRequest{CustomerID: customerID}); err == nil {
		t.Fatalf("expected error for empty line items")
	}
	if _, err := svc.Create(ctx, CreateInvoiceRequest{
		CustomerID: customerID,
		LineItems:  []LineItem{{Description: " ", Quantity: 1, UnitPrice: 1}},
	}); err == nil {
		t.Fatalf("expected error for blank description")
	}
	if _, err := svc.Create(ctx, CreateInvoiceRequest{
		CustomerID: customerID,
		LineItems:  []LineItem{{Description: "x", Quantity: 0, UnitPrice: 1}},
	}); err == nil {
		t.Fatalf("expected error for zero quantity")
	}
	if _, err := svc.Create(ctx, CreateInvoiceRequest{
		CustomerID: customerID,
		LineItems:  []LineItem{{Description: "x", Quantity: 1, UnitPrice: -5}},
	}); err == nil {
		t.Fatalf("expected error for negative unit price")
	}
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusDraft, StatusSent, true},
		{StatusDraft, StatusPaid, false},
		{StatusSent, StatusPaid, true},
		{StatusSent, StatusOverdue, true},
		{StatusOverdue, StatusPaid, true},
		{StatusPaid, StatusCancelled, false},
		{StatusCancelled, StatusSent, false},
	}
	for _, c := range cases {
		if got := CanTransition(c.from, c.to); got != c.ok {
			t.Fatalf("CanTransition(%q, %q) = %v, want %v", c.from, c.to, got, c.ok)
		}
	}
}

func TestMarkPaidStampsPaidAt(t *testing.T) {
	svc, repo := newTestService(0)
	inv, err := svc.Create(context.Background(), CreateInvoiceRequest{
		CustomerID: uuid.New().String(),
		LineItems:  []LineItem{{Description: "Banner", Quantity: 1, UnitPrice: 300}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	repo.invoices[inv.ID.String()].Status = StatusSent

	got, err := svc.UpdateStatus(context.Background(), inv.ID.String(),
		UpdateStatusRequest{Status: "paid"})
	if err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	if got.Status != StatusPaid || got.PaidAt == nil {
		t.Fatalf("expected paid with timestamp, got %+v", got)
	}

	// Paid is terminal.
	if _, err := svc.UpdateStatus(context.Background(), inv.ID.String(),
		UpdateStatusRequest{Status: "sent"}); err == nil {
		t.Fatalf("expected transition out of paid to fail")
	}
}

func TestRoundingHandlesNegativeAmounts(t *testing.T) {
	// Credits and adjustments round toward the nearest cent, not toward zero.
	if got := round2(-1.239); got != -1.24 {
		t.Fatalf("round2(-1.239) = %v, want -1.24", got)
	}
	if got := round2(-10.501); got != -10.5 {
		t.Fatalf("round2(-10.501) = %v, want -10.5", got)
	}
	if got := round2(2.675000001); got != 2.68 {
		t.Fatalf("round2(2.675000001) = %v, want 2.68", got)
	}
}
