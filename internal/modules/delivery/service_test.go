package delivery

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/printshophq/printshop-backend/internal/modules/job"
	"github.com/printshophq/printshop-backend/internal/modules/notification"
)

type fakeRepo struct {
	schedules  map[string]*Schedule
	lastIntent *notification.Intent
}

func newFakeRepo() *fakeRepo { return &fakeRepo{schedules: map[string]*Schedule{}} }

func (f *fakeRepo) Create(ctx context.Context, d *Schedule, intent *notification.Intent) error {
	f.lastIntent = intent
	f.schedules[d.ID.String()] = d
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*Schedule, error) {
	d, ok := f.schedules[id]
	if !ok {
		return nil, errors.New("no rows")
	}
	cp := *d
	return &cp, nil
}

func (f *fakeRepo) List(ctx context.Context, status, date string) ([]*Schedule, error) {
	var out []*Schedule
	for _, d := range f.schedules {
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, id string, status Status, intent *notification.Intent) error {
	f.lastIntent = intent
	f.schedules[id].Status = status
	return nil
}

type fakeJobRepo struct {
	job.Repository
	j *job.Job
}

func (f *fakeJobRepo) GetByID(ctx context.Context, id string) (*job.Job, error) {
	if f.j == nil || f.j.ID.String() != id {
		return nil, errors.New("no rows")
	}
	cp := *f.j
	return &cp, nil
}

func readyJob() *job.Job {
	return &job.Job{
		ID:              uuid.New(),
		Title:           "Wedding invitations",
		CustomerID:      uuid.New(),
		Status:          job.StatusReady,
		DeliveryAddress: "14 Freedom Way",
	}
}

func TestScheduleDefaultsToJobAddress(t *testing.T) {
	repo := newFakeRepo()
	j := readyJob()
	svc := NewService(repo, &fakeJobRepo{j: j})

	d, err := svc.Schedule(context.Background(), CreateScheduleRequest{
		JobID:         j.ID.String(),
		ScheduledDate: "2026-09-02",
		Fee:           25,
	})
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if d.Status != StatusScheduled {
		t.Fatalf("expected scheduled, got %q", d.Status)
	}
	if d.Address != j.DeliveryAddress {
		t.Fatalf("expected job address fallback, got %q", d.Address)
	}
	if d.CustomerID != j.CustomerID {
		t.Fatalf("expected customer taken from the job")
	}
	if repo.lastIntent == nil || repo.lastIntent.Event != "delivery_scheduled" {
		t.Fatalf("expected delivery_scheduled intent")
	}
	if !d.ScheduledDate.Equal(time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date %v", d.ScheduledDate)
	}
}

func TestScheduleValidation(t *testing.T) {
	j := readyJob()
	svc := NewService(newFakeRepo(), &fakeJobRepo{j: j})
	ctx := context.Background()

	if _, err := svc.Schedule(ctx, CreateScheduleRequest{ScheduledDate: "2026-09-02"}); err == nil {
		t.Fatalf("expected error for missing job_id")
	}
	if _, err := svc.Schedule(ctx, CreateScheduleRequest{
		JobID: uuid.New().String(), ScheduledDate: "2026-09-02",
	}); err == nil {
		t.Fatalf("expected error for unknown job")
	}
	if _, err := svc.Schedule(ctx, CreateScheduleRequest{
		JobID: j.ID.String(), ScheduledDate: "02/09/2026",
	}); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestUpdateStatusNotifiesOnTransitAndCompletion(t *testing.T) {
	repo := newFakeRepo()
	j := readyJob()
	svc := NewService(repo, &fakeJobRepo{j: j})

	d, err := svc.Schedule(context.Background(), CreateScheduleRequest{
		JobID: j.ID.String(), ScheduledDate: "2026-09-02",
	})
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}

	got, err := svc.UpdateStatus(context.Background(), d.ID.String(),
		UpdateStatusRequest{Status: "in_transit"})
	if err != nil || got.Status != StatusInTransit {
		t.Fatalf("in_transit: %v, %+v", err, got)
	}
	if repo.lastIntent == nil || repo.lastIntent.Event != "delivery_in_transit" {
		t.Fatalf("expected in-transit intent")
	}

	got, err = svc.UpdateStatus(context.Background(), d.ID.String(),
		UpdateStatusRequest{Status: "completed"})
	if err != nil || got.Status != StatusCompleted {
		t.Fatalf("completed: %v, %+v", err, got)
	}
	if repo.lastIntent.Event != "delivery_completed" {
		t.Fatalf("expected completion intent, got %q", repo.lastIntent.Event)
	}

	// Cancelling is silent.
	repo.lastIntent = nil
	if _, err := svc.UpdateStatus(context.Background(), d.ID.String(),
		UpdateStatusRequest{Status: "cancelled"}); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if repo.lastIntent != nil {
		t.Fatalf("expected no intent on cancellation")
	}

	if _, err := svc.UpdateStatus(context.Background(), d.ID.String(),
		UpdateStatusRequest{Status: "teleported"}); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}
