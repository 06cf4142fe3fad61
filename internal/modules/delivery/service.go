package delivery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/printshophq/printshop-backend/internal/modules/job"
	"github.com/printshophq/printshop-backend/internal/modules/notification"
)

var (
	ErrScheduleNotFound = errors.New("delivery schedule not found")
	ErrInvalidDate      = errors.New("scheduled_date must be YYYY-MM-DD")
	ErrInvalidStatus    = errors.New("invalid delivery status")
)

// Service manages delivery schedules for finished jobs.
type Service interface {
	Schedule(ctx context.Context, req CreateScheduleRequest) (*Schedule, error)
	Get(ctx context.Context, id string) (*Schedule, error)
	List(ctx context.Context, status, date string) ([]*Schedule, error)
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Schedule, error)
}

type service struct {
	repo Repository
	jobs job.Repository
}

func NewService(repo Repository, jobs job.Repository) Service {
	return &service{repo: repo, jobs: jobs}
}

func (s *service) Schedule(ctx context.Context, req CreateScheduleRequest) (*Schedule, error) {
	if req.JobID == "" {
		return nil, errors.New("job_id is required")
	}
	j, err := s.jobs.GetByID(ctx, req.JobID)
	if err != nil {
		return nil, fmt.Errorf("look up job: %w", err)
	}

	date, err := time.Parse("2006-01-02", req.ScheduledDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	d := &Schedule{
		ID:            uuid.New(),
		JobID:         j.ID,
		CustomerID:    j.CustomerID,
		ScheduledDate: date,
		Address:       req.Address,
		Fee:           req.Fee,
		Status:        StatusScheduled,
		Notes:         req.Notes,
	}
	if d.Address == "" {
		d.Address = j.DeliveryAddress
	}
	if req.StaffID != "" {
		staffID, err := uuid.Parse(req.StaffID)
		if err != nil {
			return nil, errors.New("invalid staff_id")
		}
		d.StaffID = &staffID
	}

	intent := &notification.Intent{
		CustomerID: j.CustomerID,
		Event:      "delivery_scheduled",
		Subject:    "Your delivery is scheduled",
		Message: fmt.Sprintf("Delivery for %q is scheduled on %s.",
			j.Title, date.Format("Jan 2, 2006")),
		Channel: notification.ChannelBoth,
	}
	if err := s.repo.Create(ctx, d, intent); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, d.ID.String())
}

func (s *service) Get(ctx context.Context, id string) (*Schedule, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrScheduleNotFound
	}
	return d, nil
}

func (s *service) List(ctx context.Context, status, date string) ([]*Schedule, error) {
	return s.repo.List(ctx, status, date)
}

func (s *service) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Schedule, error) {
	status := Status(req.Status)
	switch status {
	case StatusScheduled, StatusInTransit, StatusCompleted, StatusCancelled:
	default:
		return nil, ErrInvalidStatus
	}

	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrScheduleNotFound
	}

	var intent *notification.Intent
	switch status {
	case StatusInTransit:
		intent = &notification.Intent{
			CustomerID: d.CustomerID,
			Event:      "delivery_in_transit",
			Subject:    "Your order is on the way",
			Message:    "Your order is out for delivery.",
			Channel:    notification.ChannelBoth,
		}
	case StatusCompleted:
		intent = &notification.Intent{
			CustomerID: d.CustomerID,
			Event:      "delivery_completed",
			Subject:    "Your order has been delivered",
			Message:    "Your order was delivered. Thank you for your business!",
			Channel:    notification.ChannelBoth,
		}
	}

	if err := s.repo.UpdateStatus(ctx, id, status, intent); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}
