package settings

import "context"

// Repository defines data access for company settings.
type Repository interface {
	// Get returns the settings row, or defaults if none has been saved yet.
	Get(ctx context.Context) (*CompanySettings, error)

	// Upsert replaces the settings row.
	Upsert(ctx context.Context, s *CompanySettings) error
}
