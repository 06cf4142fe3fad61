package customer

import "context"

// Repository defines data access for customers.
type Repository interface {
	Create(ctx context.Context, c *Customer) error
	GetByID(ctx context.Context, id string) (*Customer, error)
	GetByDisplayID(ctx context.Context, displayID string) (*Customer, error)
	GetByUserID(ctx context.Context, userID string) (*Customer, error)

	// List returns all customers ordered by name.
	List(ctx context.Context) ([]*Customer, error)

	// Search returns customers whose name, email, or display id contains the
	// query, case-insensitive, ordered by name.
	Search(ctx context.Context, query string) ([]*Customer, error)

	Update(ctx context.Context, c *Customer) error
}
