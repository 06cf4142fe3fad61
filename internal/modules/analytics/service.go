package analytics

import (
	"context"
	"errors"
	"time"

	"github.com/printshophq/printshop-backend/internal/modules/job"
)

var ErrUnknownWindow = errors.New("unknown window")

// Service computes dashboard summaries and report exports.
type Service interface {
	Summary(ctx context.Context, window Window) (*Summary, error)

	// ExportXLSX renders the jobs-in-window report as a spreadsheet.
	ExportXLSX(ctx context.Context, window Window) ([]byte, string, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

// windowBounds resolves a window to [from, now). Week and year snap to the
// calendar boundary, not a rolling span.
func (s *service) windowBounds(window Window) (from, to time.Time, err error) {
	now := s.now()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch window {
	case WindowToday:
		from = day
	case WindowWeek:
		// Week starts Monday.
		offset := (int(day.Weekday()) + 6) % 7
		from = day.AddDate(0, 0, -offset)
	case WindowMonth:
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case WindowYear:
		from = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	default:
		return time.Time{}, time.Time{}, ErrUnknownWindow
	}
	return from, now, nil
}

func (s *service) Summary(ctx context.Context, window Window) (*Summary, error) {
	from, to, err := s.windowBounds(window)
	if err != nil {
		return nil, err
	}

	revenue, err := s.repo.RevenueBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	counts, err := s.repo.JobCountsByStatus(ctx, from, to)
	if err != nil {
		return nil, err
	}
	customers, err := s.repo.CustomersCreated(ctx, from, to)
	if err != nil {
		return nil, err
	}
	daily, err := s.repo.DailyBuckets(ctx, from, to)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Window:       window,
		From:         from,
		To:           to,
		Revenue:      revenue,
		JobsByStatus: counts,
		Customers:    customers,
		Daily:        daily,
	}
	for status, n := range counts {
		summary.TotalJobs += n
		switch status {
		case string(job.StatusCompleted):
			summary.CompletedJobs += n
		case string(job.StatusCancelled):
			// Neither completed nor pending.
		default:
			summary.PendingJobs += n
		}
	}
	return summary, nil
}
