package quote

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service defines quote business logic.
type Service interface {
	Request(ctx context.Context, req RequestQuoteRequest) (*Quote, error)
	Get(ctx context.Context, id string) (*Quote, error)
	List(ctx context.Context, status, customerID string) ([]*Quote, error)
	Review(ctx context.Context, id string, req ReviewQuoteRequest) (*Quote, error)
	Approve(ctx context.Context, id string) (*Quote, error)
	Reject(ctx context.Context, id string) (*Quote, error)

	// Convert flips an approved quote to converted. It does not create a job;
	// staff place the order separately.
	Convert(ctx context.Context, id string) (*Quote, error)

	ExpireStale(ctx context.Context) (int64, error)
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) Request(ctx context.Context, req RequestQuoteRequest) (*Quote, error) {
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("invalid customer_id: %w", err)
	}
	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("invalid service_id: %w", err)
	}
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be > 0")
	}

	q := &Quote{
		ID:          uuid.New(),
		CustomerID:  customerID,
		ServiceID:   serviceID,
		Description: req.Description,
		Quantity:    req.Quantity,
		Status:      StatusRequested,
	}
	if err := s.repo.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("failed to create quote: %w", err)
	}
	return q, nil
}

func (s *service) Get(ctx context.Context, id string) (*Quote, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, status, customerID string) ([]*Quote, error) {
	return s.repo.List(ctx, status, customerID)
}

func (s *service) Review(ctx context.Context, id string, req ReviewQuoteRequest) (*Quote, error) {
	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("quote not found: %w", err)
	}
	if req.QuotedPrice <= 0 {
		return nil, fmt.Errorf("quoted_price must be > 0")
	}
	validDays := req.ValidDays
	if validDays <= 0 {
		validDays = 30
	}

	price := req.QuotedPrice
	validUntil := time.Now().AddDate(0, 0, validDays)
	q.QuotedPrice = &price
	q.ValidUntil = &validUntil
	q.Status = StatusReviewed

	if err := s.repo.UpdatePricing(ctx, q); err != nil {
		return nil, fmt.Errorf("failed to price quote: %w", err)
	}
	return q, nil
}

func (s *service) Approve(ctx context.Context, id string) (*Quote, error) {
	return s.transition(ctx, id, StatusApproved, StatusReviewed)
}

func (s *service) Reject(ctx context.Context, id string) (*Quote, error) {
	return s.transition(ctx, id, StatusRejected, StatusRequested, StatusReviewed, StatusApproved)
}

func (s *service) Convert(ctx context.Context, id string) (*Quote, error) {
	return s.transition(ctx, id, StatusConverted, StatusApproved)
}

func (s *service) ExpireStale(ctx context.Context) (int64, error) {
	return s.repo.ExpireStale(ctx)
}

func (s *service) transition(ctx context.Context, id string, to Status, from ...Status) (*Quote, error) {
	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("quote not found: %w", err)
	}
	allowed := false
	for _, f := range from {
		if q.Status == f {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("cannot move quote from %s to %s", q.Status, to)
	}
	if err := s.repo.UpdateStatus(ctx, id, to); err != nil {
		return nil, err
	}
	q.Status = to
	return q, nil
}
