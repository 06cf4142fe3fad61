package invoice

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/printshophq/printshop-backend/internal/modules/settings"
)

// Service defines invoice business logic.
type Service interface {
	Create(ctx context.Context, req CreateInvoiceRequest) (*Invoice, error)
	Get(ctx context.Context, id string) (*Invoice, error)
	GetByNumber(ctx context.Context, number string) (*Invoice, error)
	List(ctx context.Context, status, customerID string) ([]*Invoice, error)
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Invoice, error)
	MarkOverdueStale(ctx context.Context) (int64, error)
}

type service struct {
	repo     Repository
	settings settings.Service
}

// NewService creates a new invoice service. The tax rate comes from company
// settings at creation time and is frozen onto the invoice.
func NewService(repo Repository, settingsService settings.Service) Service {
	return &service{repo: repo, settings: settingsService}
}

func (s *service) Create(ctx context.Context, req CreateInvoiceRequest) (*Invoice, error) {
	if len(req.LineItems) == 0 {
		return nil, fmt.Errorf("invoice must contain at least one line item")
	}
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("invalid customer_id: %w", err)
	}

	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	var items []LineItem
	var subtotal float64
	for _, li := range req.LineItems {
		if strings.TrimSpace(li.Description) == "" {
			return nil, fmt.Errorf("line item description is required")
		}
		if li.Quantity <= 0 {
			return nil, fmt.Errorf("line item quantity must be > 0")
		}
		if li.UnitPrice < 0 {
			return nil, fmt.Errorf("line item unit_price must not be negative")
		}
		amount := round2(li.UnitPrice * float64(li.Quantity))
		subtotal += amount
		items = append(items, LineItem{
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			Amount:      amount,
		})
	}

	tax := round2(subtotal * cfg.TaxRate)
	inv := &Invoice{
		ID:            uuid.New(),
		InvoiceNumber: generateInvoiceNumber(),
		CustomerID:    customerID,
		LineItems:     items,
		Subtotal:      round2(subtotal),
		TaxRate:       cfg.TaxRate,
		Tax:           tax,
		Total:         round2(subtotal + tax),
		Status:        StatusDraft,
		Notes:         req.Notes,
	}
	if req.JobID != "" {
		jid, err := uuid.Parse(req.JobID)
		if err != nil {
			return nil, fmt.Errorf("invalid job_id: %w", err)
		}
		inv.JobID = &jid
	}
	if req.DueDate != "" {
		due, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			return nil, fmt.Errorf("due_date must be YYYY-MM-DD")
		}
		inv.DueDate = &due
	}

	if err := s.repo.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("failed to persist invoice: %w", err)
	}
	return inv, nil
}

func (s *service) Get(ctx context.Context, id string) (*Invoice, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByNumber(ctx context.Context, number string) (*Invoice, error) {
	return s.repo.GetByNumber(ctx, number)
}

func (s *service) List(ctx context.Context, status, customerID string) ([]*Invoice, error) {
	return s.repo.List(ctx, status, customerID)
}

func (s *service) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Invoice, error) {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("invoice not found: %w", err)
	}

	newStatus := Status(strings.ToLower(req.Status))
	if !CanTransition(inv.Status, newStatus) {
		return nil, fmt.Errorf("cannot transition invoice from %s to %s", inv.Status, newStatus)
	}

	if newStatus == StatusPaid {
		if err := s.repo.MarkPaid(ctx, id); err != nil {
			return nil, err
		}
		now := time.Now()
		inv.PaidAt = &now
	} else {
		if err := s.repo.UpdateStatus(ctx, id, newStatus); err != nil {
			return nil, err
		}
	}
	inv.Status = newStatus
	return inv, nil
}

func (s *service) MarkOverdueStale(ctx context.Context) (int64, error) {
	return s.repo.MarkOverdueStale(ctx)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// generateInvoiceNumber creates a human-readable invoice number: INV-YYYYMMDD-XXXX
func generateInvoiceNumber() string {
	date := time.Now().UTC().Format("20060102")
	suffix := strings.ToUpper(uuid.New().String()[:4])
	return fmt.Sprintf("INV-%s-%s", date, suffix)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
