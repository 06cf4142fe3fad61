package settings

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service defines company settings business logic.
type Service interface {
	Get(ctx context.Context) (*CompanySettings, error)
	Update(ctx context.Context, req UpdateSettingsRequest) (*CompanySettings, error)
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) Get(ctx context.Context) (*CompanySettings, error) {
	return s.repo.Get(ctx)
}

func (s *service) Update(ctx context.Context, req UpdateSettingsRequest) (*CompanySettings, error) {
	if req.CompanyName == "" {
		return nil, fmt.Errorf("company_name is required")
	}
	if req.CurrencySymbol == "" {
		return nil, fmt.Errorf("currency_symbol is required")
	}
	if req.TaxRate < 0 || req.TaxRate > 1 {
		return nil, fmt.Errorf("tax_rate must be between 0 and 1")
	}

	current, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	id := current.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	updated := &CompanySettings{
		ID:             id,
		CompanyName:    req.CompanyName,
		Address:        req.Address,
		Phone:          req.Phone,
		Email:          req.Email,
		Website:        req.Website,
		CurrencySymbol: req.CurrencySymbol,
		TaxRate:        req.TaxRate,
		LogoURL:        req.LogoURL,
		FooterNote:     req.FooterNote,
	}
	if err := s.repo.Upsert(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	return updated, nil
}
