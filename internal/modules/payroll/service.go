package payroll

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

var (
	ErrRecordNotFound = errors.New("payroll record not found")
	ErrAlreadyPaid    = errors.New("payroll record already paid")
	ErrInvalidPeriod  = errors.New("period must be YYYY-MM")
)

// Service manages staff pay records.
type Service interface {
	Create(ctx context.Context, req CreateRecordRequest) (*Record, error)
	Get(ctx context.Context, id string) (*Record, error)
	List(ctx context.Context, staffID, period string) ([]*Record, error)
	Update(ctx context.Context, id string, req UpdateRecordRequest) (*Record, error)
	MarkPaid(ctx context.Context, id string) (*Record, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) Create(ctx context.Context, req CreateRecordRequest) (*Record, error) {
	staffID, err := uuid.Parse(req.StaffID)
	if err != nil {
		return nil, errors.New("invalid staff_id")
	}
	if _, err := time.Parse("2006-01", req.Period); err != nil {
		return nil, ErrInvalidPeriod
	}
	if req.BasePay < 0 || req.Bonus < 0 || req.Deductions < 0 {
		return nil, errors.New("amounts must not be negative")
	}

	rec := &Record{
		ID:         uuid.New(),
		StaffID:    staffID,
		Period:     req.Period,
		BasePay:    req.BasePay,
		Bonus:      req.Bonus,
		Deductions: req.Deductions,
		NetPay:     netPay(req.BasePay, req.Bonus, req.Deductions),
		Notes:      req.Notes,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, rec.ID.String())
}

func (s *service) Get(ctx context.Context, id string) (*Record, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrRecordNotFound
	}
	return rec, nil
}

func (s *service) List(ctx context.Context, staffID, period string) ([]*Record, error) {
	return s.repo.List(ctx, staffID, period)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRecordRequest) (*Record, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrRecordNotFound
	}
	if rec.Paid {
		return nil, ErrAlreadyPaid
	}

	if req.BasePay != nil {
		rec.BasePay = *req.BasePay
	}
	if req.Bonus != nil {
		rec.Bonus = *req.Bonus
	}
	if req.Deductions != nil {
		rec.Deductions = *req.Deductions
	}
	if req.Notes != nil {
		rec.Notes = *req.Notes
	}
	if rec.BasePay < 0 || rec.Bonus < 0 || rec.Deductions < 0 {
		return nil, errors.New("amounts must not be negative")
	}
	rec.NetPay = netPay(rec.BasePay, rec.Bonus, rec.Deductions)

	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) MarkPaid(ctx context.Context, id string) (*Record, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrRecordNotFound
	}
	if rec.Paid {
		return nil, ErrAlreadyPaid
	}

	now := time.Now()
	rec.Paid = true
	rec.PaidAt = &now
	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func netPay(base, bonus, deductions float64) float64 {
	return round2(base + bonus - deductions)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
