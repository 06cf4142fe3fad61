package analytics

import (
	"context"
	"time"
)

// Repository reads aggregate figures from the jobs table.
type Repository interface {
	// RevenueBetween sums final prices of jobs created in [from, to).
	// Jobs without a final price contribute nothing.
	RevenueBetween(ctx context.Context, from, to time.Time) (float64, error)

	// JobCountsByStatus counts jobs created in [from, to) grouped by status.
	JobCountsByStatus(ctx context.Context, from, to time.Time) (map[string]int, error)

	// CustomersCreated counts customer accounts created in [from, to).
	CustomersCreated(ctx context.Context, from, to time.Time) (int, error)

	// DailyBuckets returns per-day revenue and job counts for [from, to),
	// oldest day first. Days with no jobs are absent.
	DailyBuckets(ctx context.Context, from, to time.Time) ([]DayBucket, error)
}
