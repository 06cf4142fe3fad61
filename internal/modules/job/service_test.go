package job

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/printshophq/printshop-backend/internal/modules/notification"
	"github.com/printshophq/printshop-backend/internal/offline"
)

type fakeRepo struct {
	jobs map[string]*Job

	createErr error
	listErr   error
	updateErr error

	lastStatus      Status
	lastCompletedAt *time.Time
	lastIntent      *notification.Intent
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{jobs: map[string]*Job{}}
}

func (f *fakeRepo) Create(ctx context.Context, j *Job, intent *notification.Intent) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.lastIntent = intent
	f.jobs[j.ID.String()] = j
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*Job, error) {
	j, ok := f.jobs[id]
	if !ok {
		return nil, errors.New("no rows")
	}
	cp := *j
	return &cp, nil
}

func (f *fakeRepo) GetByTrackingCode(ctx context.Context, code string) (*Job, error) {
	for _, j := range f.jobs {
		if j.TrackingCode == code {
			cp := *j
			return &cp, nil
		}
	}
	return nil, errors.New("no rows")
}

func (f *fakeRepo) List(ctx context.Context, status, customerID string) ([]*Job, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*Job
	for _, j := range f.jobs {
		cp := *j
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeRepo) Update(ctx context.Context, j *Job) error {
	f.jobs[j.ID.String()] = j
	return nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, id string, status Status, completedAt *time.Time, intent *notification.Intent) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.lastStatus = status
	f.lastCompletedAt = completedAt
	f.lastIntent = intent
	j := f.jobs[id]
	j.Status = status
	if completedAt != nil {
		j.CompletedAt = completedAt
	}
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	delete(f.jobs, id)
	return nil
}

func seedJob(f *fakeRepo, status Status) *Job {
	j := &Job{
		ID:           uuid.New(),
		Title:        "Business cards",
		Quantity:     500,
		CustomerID:   uuid.New(),
		Status:       status,
		TrackingCode: "PRT-TESTCODE",
	}
	f.jobs[j.ID.String()] = j
	return j
}

func testCache(t *testing.T) *offline.Store {
	t.Helper()
	store, err := offline.Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSubmitGeneratesTrackingCode(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	j, err := svc.Submit(context.Background(), SubmitJobRequest{
		Title:      "Flyers",
		Quantity:   100,
		ServiceID:  uuid.New().String(),
		CustomerID: uuid.New().String(),
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !strings.HasPrefix(j.TrackingCode, "PRT-") || len(j.TrackingCode) != 12 {
		t.Fatalf("unexpected tracking code %q", j.TrackingCode)
	}
	if j.Status != StatusPending {
		t.Fatalf("expected new job to be Pending, got %q", j.Status)
	}
	if repo.lastIntent == nil || repo.lastIntent.Event != "job_submitted" {
		t.Fatalf("expected a job_submitted notification intent")
	}
	if repo.lastIntent.Channel != notification.ChannelBoth {
		t.Fatalf("expected intent on both channels, got %q", repo.lastIntent.Channel)
	}
}

func TestSubmitRejectsBadInput(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)

	if _, err := svc.Submit(context.Background(), SubmitJobRequest{
		Title: " ", Quantity: 1, ServiceID: uuid.New().String(), CustomerID: uuid.New().String(),
	}); err == nil {
		t.Fatalf("expected error for blank title")
	}
	if _, err := svc.Submit(context.Background(), SubmitJobRequest{
		Title: "Posters", Quantity: 0, ServiceID: uuid.New().String(), CustomerID: uuid.New().String(),
	}); err == nil {
		t.Fatalf("expected error for zero quantity")
	}
}

func TestUpdateStatusCompletedStampsTimestamp(t *testing.T) {
	repo := newFakeRepo()
	j := seedJob(repo, StatusOutForDelivery)
	svc := NewService(repo, nil)

	updated, queued, err := svc.UpdateStatus(context.Background(), j.ID.String(),
		UpdateStatusRequest{Status: string(StatusCompleted)})
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if queued {
		t.Fatalf("expected direct write, got queued")
	}
	if repo.lastCompletedAt == nil || updated.CompletedAt == nil {
		t.Fatalf("expected Completed to stamp completion time")
	}
}

func TestUpdateStatusOtherStagesLeaveTimestampAlone(t *testing.T) {
	repo := newFakeRepo()
	done := time.Now().Add(-time.Hour)
	j := seedJob(repo, StatusCompleted)
	j.CompletedAt = &done
	svc := NewService(repo, nil)

	_, _, err := svc.UpdateStatus(context.Background(), j.ID.String(),
		UpdateStatusRequest{Status: string(StatusPrinting)})
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if repo.lastCompletedAt != nil {
		t.Fatalf("expected nil completedAt for non-Completed status")
	}
	if repo.jobs[j.ID.String()].CompletedAt == nil {
		t.Fatalf("existing completion timestamp must not be cleared")
	}
}

func TestUpdateStatusRejectsUnknown(t *testing.T) {
	repo := newFakeRepo()
	j := seedJob(repo, StatusPending)
	svc := NewService(repo, nil)

	_, _, err := svc.UpdateStatus(context.Background(), j.ID.String(),
		UpdateStatusRequest{Status: "Shipped"})
	if err == nil || !strings.Contains(err.Error(), "unknown status") {
		t.Fatalf("expected unknown status error, got %v", err)
	}
}

func TestUpdateStatusQueuesWhenDatabaseDown(t *testing.T) {
	repo := newFakeRepo()
	j := seedJob(repo, StatusPrinting)
	repo.updateErr = errors.New("connection refused")
	cache := testCache(t)
	svc := NewService(repo, cache)

	got, queued, err := svc.UpdateStatus(context.Background(), j.ID.String(),
		UpdateStatusRequest{Status: string(StatusFinishing)})
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if !queued {
		t.Fatalf("expected the write to be queued")
	}
	// The job keeps its prior status until the replay worker lands it.
	if got.Status != StatusPrinting {
		t.Fatalf("expected prior status, got %q", got.Status)
	}

	actions, err := cache.PendingActions(context.Background())
	if err != nil {
		t.Fatalf("pending actions: %v", err)
	}
	if len(actions) != 1 || actions[0].Action != "update_status" {
		t.Fatalf("expected one queued update_status action, got %+v", actions)
	}
}

func TestListFallsBackToCache(t *testing.T) {
	repo := newFakeRepo()
	seedJob(repo, StatusDesign)
	cache := testCache(t)
	svc := NewService(repo, cache)

	// Warm the snapshot while the database is reachable.
	jobs, stale, err := svc.List(context.Background(), "", "")
	if err != nil || stale || len(jobs) != 1 {
		t.Fatalf("warm list: jobs=%d stale=%v err=%v", len(jobs), stale, err)
	}

	repo.listErr = errors.New("connection refused")
	jobs, stale, err = svc.List(context.Background(), "", "")
	if err != nil {
		t.Fatalf("fallback list must not error: %v", err)
	}
	if !stale {
		t.Fatalf("expected stale result from cache")
	}
	if len(jobs) != 1 || jobs[0].Status != StatusDesign {
		t.Fatalf("expected cached job back, got %+v", jobs)
	}
}

func TestListEmptyCacheYieldsEmptyNotError(t *testing.T) {
	repo := newFakeRepo()
	repo.listErr = errors.New("connection refused")
	svc := NewService(repo, testCache(t))

	jobs, stale, err := svc.List(context.Background(), "", "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !stale || len(jobs) != 0 {
		t.Fatalf("expected empty stale result, got jobs=%d stale=%v", len(jobs), stale)
	}
}

func TestTrackReturnsPublicView(t *testing.T) {
	repo := newFakeRepo()
	j := seedJob(repo, StatusPrinting)
	svc := NewService(repo, nil)

	view, err := svc.Track(context.Background(), j.TrackingCode)
	if err != nil {
		t.Fatalf("track: %v", err)
	}
	if view.TrackingCode != j.TrackingCode || view.Status != StatusPrinting {
		t.Fatalf("unexpected view %+v", view)
	}
	if view.Progress < 44 || view.Progress > 45 {
		t.Fatalf("expected ≈44%% progress, got %v", view.Progress)
	}

	if _, err := svc.Track(context.Background(), "PRT-MISSING1"); err == nil {
		t.Fatalf("expected error for unknown tracking code")
	}
}

func TestReplayFailureKeepsActionQueued(t *testing.T) {
	repo := newFakeRepo()
	j := seedJob(repo, StatusPrinting)
	cache := testCache(t)
	svc := NewService(repo, cache).(*service)

	repo.updateErr = errors.New("connection refused")
	if _, queued, err := svc.UpdateStatus(context.Background(), j.ID.String(),
		UpdateStatusRequest{Status: string(StatusFinishing)}); err != nil || !queued {
		t.Fatalf("expected queued write, got queued=%v err=%v", queued, err)
	}

	actions, err := cache.PendingActions(context.Background())
	if err != nil {
		t.Fatalf("pending actions: %v", err)
	}
	if len(actions) != 1 {
		t.Fatalf("expected one queued action, got %d", len(actions))
	}

	// Database still down: the replay must surface the failure instead of
	// re-parking the write, so the action keeps its place at the head.
	if err := svc.applyQueued(context.Background(), actions[0].Action, actions[0].Payload); err == nil {
		t.Fatalf("expected replay to fail while the database is down")
	}
	after, err := cache.PendingActions(context.Background())
	if err != nil {
		t.Fatalf("pending actions: %v", err)
	}
	if len(after) != 1 || after[0].ID != actions[0].ID {
		t.Fatalf("expected the original action untouched, got %+v", after)
	}
}

func TestReplayAppliesQueuedStatus(t *testing.T) {
	repo := newFakeRepo()
	j := seedJob(repo, StatusPrinting)
	cache := testCache(t)
	svc := NewService(repo, cache).(*service)

	repo.updateErr = errors.New("connection refused")
	if _, _, err := svc.UpdateStatus(context.Background(), j.ID.String(),
		UpdateStatusRequest{Status: string(StatusFinishing)}); err != nil {
		t.Fatalf("update status: %v", err)
	}
	repo.updateErr = nil

	actions, _ := cache.PendingActions(context.Background())
	if err := svc.applyQueued(context.Background(), actions[0].Action, actions[0].Payload); err != nil {
		t.Fatalf("replay: %v", err)
	}
	if repo.lastStatus != StatusFinishing {
		t.Fatalf("expected Finishing landed, got %q", repo.lastStatus)
	}
	if repo.lastIntent == nil || repo.lastIntent.Event != "status_updated" {
		t.Fatalf("expected a status_updated intent on replay")
	}
}

func TestUpdateKeepsTrackingCode(t *testing.T) {
	repo := newFakeRepo()
	j := seedJob(repo, StatusPending)
	svc := NewService(repo, nil)

	got, err := svc.Update(context.Background(), j.ID.String(), UpdateJobRequest{
		Title:    "Business cards, matte finish",
		Quantity: 1000,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.TrackingCode != "PRT-TESTCODE" {
		t.Fatalf("tracking code changed on update: %q", got.TrackingCode)
	}
	if got.Title != "Business cards, matte finish" || got.Quantity != 1000 {
		t.Fatalf("update not applied: %+v", got)
	}
}
