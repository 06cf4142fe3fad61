package job

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/printshophq/printshop-backend/internal/metrics"
	"github.com/printshophq/printshop-backend/internal/modules/notification"
	"github.com/printshophq/printshop-backend/internal/offline"
)

// CacheEntity is the offline-store bucket for job snapshots.
const CacheEntity = "jobs"

// Service defines job business logic.
type Service interface {
	Submit(ctx context.Context, req SubmitJobRequest) (*Job, error)
	Get(ctx context.Context, id string) (*Job, error)
	Track(ctx context.Context, trackingCode string) (*TrackingView, error)
	List(ctx context.Context, status, customerID string) (jobs []*Job, stale bool, err error)
	Update(ctx context.Context, id string, req UpdateJobRequest) (*Job, error)

	// UpdateStatus assigns a status. queued is true when the database was
	// unreachable and the write was parked for replay.
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (j *Job, queued bool, err error)

	Delete(ctx context.Context, id string) error
}

type service struct {
	repo  Repository
	cache *offline.Store
}

// NewService creates a new job service. cache may be nil, which disables the
// offline fallback and queued status writes.
func NewService(repo Repository, cache *offline.Store) Service {
	return &service{repo: repo, cache: cache}
}

func (s *service) Submit(ctx context.Context, req SubmitJobRequest) (*Job, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("title is required")
	}
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be > 0")
	}
	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("invalid service_id: %w", err)
	}
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("invalid customer_id: %w", err)
	}

	j := &Job{
		ID:              uuid.New(),
		Title:           strings.TrimSpace(req.Title),
		Quantity:        req.Quantity,
		ServiceID:       serviceID,
		CustomerID:      customerID,
		Status:          StatusPending,
		QuotedPrice:     req.QuotedPrice,
		TrackingCode:    generateTrackingCode(),
		DeliveryMethod:  req.DeliveryMethod,
		DeliveryAddress: req.DeliveryAddress,
		Notes:           req.Notes,
	}
	if req.DueDate != "" {
		due, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			return nil, fmt.Errorf("due_date must be YYYY-MM-DD")
		}
		j.DueDate = &due
	}

	intent := &notification.Intent{
		CustomerID: customerID,
		Event:      "job_submitted",
		Subject:    fmt.Sprintf("Order received: %s", j.Title),
		Message: fmt.Sprintf("We received your order %q (x%d). Track it with code %s.",
			j.Title, j.Quantity, j.TrackingCode),
		Channel: notification.ChannelBoth,
	}

	if err := s.repo.Create(ctx, j, intent); err != nil {
		return nil, fmt.Errorf("failed to submit job: %w", err)
	}
	j.Progress = Progress(j.Status)
	return j, nil
}

func (s *service) Get(ctx context.Context, id string) (*Job, error) {
	j, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	j.Progress = Progress(j.Status)
	return j, nil
}

func (s *service) Track(ctx context.Context, trackingCode string) (*TrackingView, error) {
	j, err := s.repo.GetByTrackingCode(ctx, trackingCode)
	if err != nil {
		return nil, fmt.Errorf("no job found for tracking code %s", trackingCode)
	}
	return &TrackingView{
		TrackingCode: j.TrackingCode,
		Title:        j.Title,
		Status:       j.Status,
		Progress:     Progress(j.Status),
		DueDate:      j.DueDate,
		CompletedAt:  j.CompletedAt,
	}, nil
}

func (s *service) List(ctx context.Context, status, customerID string) ([]*Job, bool, error) {
	jobs, err := s.repo.List(ctx, status, customerID)
	if err != nil {
		return s.cachedList(ctx, status, customerID), true, nil
	}
	for _, j := range jobs {
		j.Progress = Progress(j.Status)
	}
	s.snapshot(ctx, jobs)
	return jobs, false, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateJobRequest) (*Job, error) {
	j, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("job not found: %w", err)
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("title is required")
	}
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be > 0")
	}

	j.Title = strings.TrimSpace(req.Title)
	j.Quantity = req.Quantity
	j.QuotedPrice = req.QuotedPrice
	j.FinalPrice = req.FinalPrice
	j.DeliveryMethod = req.DeliveryMethod
	j.DeliveryAddress = req.DeliveryAddress
	j.Notes = req.Notes
	if req.DueDate != "" {
		due, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			return nil, fmt.Errorf("due_date must be YYYY-MM-DD")
		}
		j.DueDate = &due
	}

	if err := s.repo.Update(ctx, j); err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	j.Progress = Progress(j.Status)
	return j, nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Job, bool, error) {
	newStatus := Status(strings.TrimSpace(req.Status))
	if !IsAssignable(newStatus) {
		return nil, false, fmt.Errorf("unknown status %q", req.Status)
	}

	j, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, false, fmt.Errorf("job not found: %w", err)
	}

	// Completed stamps the completion time; other statuses leave any
	// existing timestamp in place.
	var completedAt *time.Time
	if newStatus == StatusCompleted {
		now := time.Now()
		completedAt = &now
	}

	intent := statusIntent(j, newStatus)

	if err := s.repo.UpdateStatus(ctx, id, newStatus, completedAt, intent); err != nil {
		// Connectivity failure: park the write for the replay worker. The
		// job keeps its prior status until replayed.
		if s.cache != nil {
			payload, mErr := json.Marshal(map[string]string{"id": id, "status": string(newStatus)})
			if mErr == nil {
				if qErr := s.cache.Enqueue(ctx, CacheEntity, "update_status", payload); qErr == nil {
					return j, true, nil
				}
			}
		}
		return nil, false, fmt.Errorf("failed to update status: %w", err)
	}

	j.Status = newStatus
	if completedAt != nil {
		j.CompletedAt = completedAt
	}
	j.Progress = Progress(j.Status)
	return j, false, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func statusIntent(j *Job, newStatus Status) *notification.Intent {
	return &notification.Intent{
		CustomerID: j.CustomerID,
		Event:      "status_updated",
		Subject:    fmt.Sprintf("Order update: %s", j.Title),
		Message: fmt.Sprintf("Your order %q is now %s. Track it with code %s.",
			j.Title, newStatus, j.TrackingCode),
		Channel: notification.ChannelBoth,
	}
}

// applyQueued replays a queued mutation against the repository directly.
// It must not go through UpdateStatus: that path re-parks the write on
// failure and reports success, which would move the action to the queue
// tail and let an older status overtake a newer one. A failed replay
// returns the error so the drain stops with the action still at the head.
func (s *service) applyQueued(ctx context.Context, action string, payload []byte) error {
	switch action {
	case "update_status":
		var p struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		}
		if err := json.Unmarshal(payload, &p); err != nil {
			return err
		}
		newStatus := Status(p.Status)
		if !IsAssignable(newStatus) {
			return fmt.Errorf("unknown status %q", p.Status)
		}
		j, err := s.repo.GetByID(ctx, p.ID)
		if err != nil {
			return fmt.Errorf("job not found: %w", err)
		}
		var completedAt *time.Time
		if newStatus == StatusCompleted {
			now := time.Now()
			completedAt = &now
		}
		return s.repo.UpdateStatus(ctx, p.ID, newStatus, completedAt, statusIntent(j, newStatus))
	default:
		return fmt.Errorf("unknown queued job action %q", action)
	}
}

// RegisterReplay wires the job service into the offline replayer.
func RegisterReplay(r *offline.Replayer, s Service) {
	if impl, ok := s.(*service); ok {
		r.Register(CacheEntity, impl.applyQueued)
	}
}

func (s *service) snapshot(ctx context.Context, jobs []*Job) {
	if s.cache == nil {
		return
	}
	rows := make(map[string][]byte, len(jobs))
	for _, j := range jobs {
		payload, err := json.Marshal(j)
		if err != nil {
			continue
		}
		rows[j.ID.String()] = payload
	}
	_ = s.cache.Snapshot(ctx, CacheEntity, rows)
}

func (s *service) cachedList(ctx context.Context, status, customerID string) []*Job {
	jobs := []*Job{}
	if s.cache == nil {
		return jobs
	}
	metrics.OfflineFallbacks.Inc()
	payloads, _ := s.cache.List(ctx, CacheEntity)
	for _, raw := range payloads {
		j := &Job{}
		if err := json.Unmarshal(raw, j); err != nil {
			continue
		}
		if status != "" && string(j.Status) != status {
			continue
		}
		if customerID != "" && j.CustomerID.String() != customerID {
			continue
		}
		j.Progress = Progress(j.Status)
		jobs = append(jobs, j)
	}
	sort.Slice(jobs, func(i, k int) bool { return jobs[i].CreatedAt.After(jobs[k].CreatedAt) })
	return jobs
}

// generateTrackingCode creates a customer-facing tracking code: PRT-XXXXXXXX
func generateTrackingCode() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("PRT-%s", suffix)
}
