package job

import (
	"context"
	"time"

	"github.com/printshophq/printshop-backend/internal/modules/notification"
)

// Repository defines data access for jobs.
type Repository interface {
	// Create persists a new job; if intent is non-nil it queues the
	// submission notification in the same transaction.
	Create(ctx context.Context, j *Job, intent *notification.Intent) error

	GetByID(ctx context.Context, id string) (*Job, error)
	GetByTrackingCode(ctx context.Context, code string) (*Job, error)

	// List returns jobs newest first, optionally filtered by status and/or
	// customer.
	List(ctx context.Context, status string, customerID string) ([]*Job, error)

	// Update edits job details. The tracking code column is never written.
	Update(ctx context.Context, j *Job) error

	// UpdateStatus writes the status (and completedAt, when non-nil) and
	// queues the customer notification atomically. Last write wins; there is
	// no optimistic-concurrency check.
	UpdateStatus(ctx context.Context, id string, status Status, completedAt *time.Time, intent *notification.Intent) error

	// Delete removes a job permanently. Admin-only at the service layer.
	Delete(ctx context.Context, id string) error
}
