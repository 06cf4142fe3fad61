package showcase

import "context"

// Repository defines data access for showcase slides.
type Repository interface {
	Create(ctx context.Context, s *Slide) error
	GetByID(ctx context.Context, id string) (*Slide, error)

	// List returns slides ordered by sort order. When activeOnly is true,
	// hidden slides are skipped.
	List(ctx context.Context, activeOnly bool) ([]*Slide, error)

	Update(ctx context.Context, s *Slide) error
	Delete(ctx context.Context, id string) error
}
