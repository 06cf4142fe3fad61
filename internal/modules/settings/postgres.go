package settings

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Get(ctx context.Context) (*CompanySettings, error) {
	s := &CompanySettings{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, company_name, address, phone, email, website,
		       currency_symbol, tax_rate, logo_url, footer_note, updated_at
		FROM company_settings LIMIT 1`).Scan(
		&s.ID, &s.CompanyName, &s.Address, &s.Phone, &s.Email, &s.Website,
		&s.CurrencySymbol, &s.TaxRate, &s.LogoURL, &s.FooterNote, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return Defaults(), nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, s *CompanySettings) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO company_settings
		  (id, company_name, address, phone, email, website,
		   currency_symbol, tax_rate, logo_url, footer_note, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (id) DO UPDATE SET
		  company_name=$2, address=$3, phone=$4, email=$5, website=$6,
		  currency_symbol=$7, tax_rate=$8, logo_url=$9, footer_note=$10, updated_at=$11`,
		s.ID, s.CompanyName, s.Address, s.Phone, s.Email, s.Website,
		s.CurrencySymbol, s.TaxRate, s.LogoURL, s.FooterNote, time.Now())
	return err
}

// Defaults returns settings used before any row has been saved.
func Defaults() *CompanySettings {
	return &CompanySettings{
		ID:             uuid.Nil,
		CompanyName:    "Print Shop",
		CurrencySymbol: "$",
		TaxRate:        0.16,
	}
}
