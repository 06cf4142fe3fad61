package catalog

import "context"

// Repository defines data access for the print service catalog.
type Repository interface {
	Create(ctx context.Context, p *PrintService) error
	GetByID(ctx context.Context, id string) (*PrintService, error)
	List(ctx context.Context, category string, activeOnly bool) ([]*PrintService, error)
	Update(ctx context.Context, p *PrintService) error
	Deactivate(ctx context.Context, id string) error
}
