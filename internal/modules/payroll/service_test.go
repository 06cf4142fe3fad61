package payroll

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

type fakeRepo struct {
	records map[string]*Record
}

func newFakeRepo() *fakeRepo { return &fakeRepo{records: map[string]*Record{}} }

func (f *fakeRepo) Create(ctx context.Context, rec *Record) error {
	f.records[rec.ID.String()] = rec
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*Record, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, errors.New("no rows")
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeRepo) List(ctx context.Context, staffID, period string) ([]*Record, error) {
	var out []*Record
	for _, rec := range f.records {
		out = append(out, rec)
	}
	return out, nil
}

func (f *fakeRepo) Update(ctx context.Context, rec *Record) error {
	f.records[rec.ID.String()] = rec
	return nil
}

func TestCreateComputesNetPay(t *testing.T) {
	svc := NewService(newFakeRepo())

	rec, err := svc.Create(context.Background(), CreateRecordRequest{
		StaffID:    uuid.New().String(),
		Period:     "2026-08",
		BasePay:    4200,
		Bonus:      350.55,
		Deductions: 120,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.NetPay != 4430.55 {
		t.Fatalf("net = %v, want 4430.55", rec.NetPay)
	}
	if rec.Paid {
		t.Fatalf("new record must start unpaid")
	}
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateRecordRequest{StaffID: "nope", Period: "2026-08"}); err == nil {
		t.Fatalf("expected error for bad staff id")
	}
	if _, err := svc.Create(ctx, CreateRecordRequest{
		StaffID: uuid.New().String(), Period: "August 2026",
	}); !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
	if _, err := svc.Create(ctx, CreateRecordRequest{
		StaffID: uuid.New().String(), Period: "2026-08", BasePay: -1,
	}); err == nil {
		t.Fatalf("expected error for negative base pay")
	}
}

func TestMarkPaidIsTerminal(t *testing.T) {
	svc := NewService(newFakeRepo())

	rec, err := svc.Create(context.Background(), CreateRecordRequest{
		StaffID: uuid.New().String(), Period: "2026-07", BasePay: 3000,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	paid, err := svc.MarkPaid(context.Background(), rec.ID.String())
	if err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	if !paid.Paid || paid.PaidAt == nil {
		t.Fatalf("expected paid with timestamp, got %+v", paid)
	}

	if _, err := svc.MarkPaid(context.Background(), rec.ID.String()); !errors.Is(err, ErrAlreadyPaid) {
		t.Fatalf("expected ErrAlreadyPaid, got %v", err)
	}
	base := 3500.0
	if _, err := svc.Update(context.Background(), rec.ID.String(),
		UpdateRecordRequest{BasePay: &base}); !errors.Is(err, ErrAlreadyPaid) {
		t.Fatalf("expected edit of paid record to fail, got %v", err)
	}
}

func TestUpdateRecomputesNet(t *testing.T) {
	svc := NewService(newFakeRepo())

	rec, err := svc.Create(context.Background(), CreateRecordRequest{
		StaffID: uuid.New().String(), Period: "2026-08", BasePay: 3000, Bonus: 200,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	deductions := 450.0
	got, err := svc.Update(context.Background(), rec.ID.String(),
		UpdateRecordRequest{Deductions: &deductions})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.NetPay != 2750 {
		t.Fatalf("net = %v, want 2750", got.NetPay)
	}
}
