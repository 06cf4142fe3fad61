package invoice

import "context"

// Repository defines data access for invoices.
type Repository interface {
	Create(ctx context.Context, inv *Invoice) error
	GetByID(ctx context.Context, id string) (*Invoice, error)
	GetByNumber(ctx context.Context, number string) (*Invoice, error)
	List(ctx context.Context, status string, customerID string) ([]*Invoice, error)

	// UpdateStatus sets the status; paidAt set only for paid.
	UpdateStatus(ctx context.Context, id string, status Status) error
	MarkPaid(ctx context.Context, id string) error

	// MarkOverdueStale flips sent invoices past their due date to overdue;
	// returns the number of rows affected.
	MarkOverdueStale(ctx context.Context) (int64, error)
}
