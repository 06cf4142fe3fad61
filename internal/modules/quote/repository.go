package quote

import "context"

// Repository defines data access for quotes.
type Repository interface {
	Create(ctx context.Context, q *Quote) error
	GetByID(ctx context.Context, id string) (*Quote, error)
	List(ctx context.Context, status string, customerID string) ([]*Quote, error)

	// UpdatePricing sets the quoted price, validity, and status in one write.
	UpdatePricing(ctx context.Context, q *Quote) error

	// UpdateStatus sets the status only.
	UpdateStatus(ctx context.Context, id string, status Status) error

	// ExpireStale marks reviewed/approved quotes past their validity as
	// expired; returns the number of rows affected.
	ExpireStale(ctx context.Context) (int64, error)
}
