package settings

import (
	"time"

	"github.com/google/uuid"
)

// CompanySettings is the single branding/configuration record for the shop.
// It feeds invoice math (tax rate) and document rendering (currency symbol,
// company identity block).
type CompanySettings struct {
	ID             uuid.UUID `json:"id"`
	CompanyName    string    `json:"company_name"`
	Address        string    `json:"address,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Email          string    `json:"email,omitempty"`
	Website        string    `json:"website,omitempty"`
	CurrencySymbol string    `json:"currency_symbol"`
	TaxRate        float64   `json:"tax_rate"`
	LogoURL        string    `json:"logo_url,omitempty"`
	FooterNote     string    `json:"footer_note,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UpdateSettingsRequest is the payload for replacing company settings.
type UpdateSettingsRequest struct {
	CompanyName    string  `json:"company_name"`
	Address        string  `json:"address,omitempty"`
	Phone          string  `json:"phone,omitempty"`
	Email          string  `json:"email,omitempty"`
	Website        string  `json:"website,omitempty"`
	CurrencySymbol string  `json:"currency_symbol"`
	TaxRate        float64 `json:"tax_rate"`
	LogoURL        string  `json:"logo_url,omitempty"`
	FooterNote     string  `json:"footer_note,omitempty"`
}
