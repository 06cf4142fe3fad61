package delivery

import (
	"context"

	"github.com/printshophq/printshop-backend/internal/modules/notification"
)

// Repository defines data access for delivery schedules.
type Repository interface {
	// Create persists the schedule and, when intent is non-nil, queues the
	// customer notification in the same transaction.
	Create(ctx context.Context, d *Schedule, intent *notification.Intent) error

	GetByID(ctx context.Context, id string) (*Schedule, error)
	List(ctx context.Context, status string, date string) ([]*Schedule, error)

	// UpdateStatus writes the status and queues the notification atomically.
	UpdateStatus(ctx context.Context, id string, status Status, intent *notification.Intent) error
}
