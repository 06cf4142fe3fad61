package payroll

import "context"

// Repository defines data access for payroll records.
type Repository interface {
	Create(ctx context.Context, rec *Record) error
	GetByID(ctx context.Context, id string) (*Record, error)

	// List returns records newest period first, optionally filtered by staff
	// member and/or period.
	List(ctx context.Context, staffID, period string) ([]*Record, error)

	Update(ctx context.Context, rec *Record) error
}
