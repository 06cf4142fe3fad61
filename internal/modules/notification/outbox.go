package notification

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/printshophq/printshop-backend/internal/metrics"
)

// OutboxWorker drains pending outbox entries: poll, dispatch with retry,
// finalize. An entry is retried on later polls until its attempt budget is
// spent, then parked as failed. A failed dispatch never touches the state
// change that queued the intent.
type OutboxWorker struct {
	repo        Repository
	service     Service
	logger      *zap.Logger
	limiter     *rate.Limiter
	workers     int
	interval    time.Duration
	batchMax    int
	maxAttempts int
}

func NewOutboxWorker(repo Repository, service Service, logger *zap.Logger, workers, ratePerSec, batchMax, maxAttempts int, interval time.Duration) *OutboxWorker {
	return &OutboxWorker{
		repo:        repo,
		service:     service,
		logger:      logger,
		limiter:     rate.NewLimiter(rate.Limit(ratePerSec), ratePerSec),
		workers:     workers,
		interval:    interval,
		batchMax:    batchMax,
		maxAttempts: maxAttempts,
	}
}

// Run starts the poller and worker pool; both stop when ctx is cancelled.
func (w *OutboxWorker) Run(ctx context.Context, wg *sync.WaitGroup) {
	entries := make(chan *OutboxEntry, w.batchMax)

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(entries)
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.poll(ctx, entries)
			}
		}
	}()

	for i := 0; i < w.workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			w.logger.Info("outbox worker started", zap.Int("worker_id", id))
			for {
				select {
				case <-ctx.Done():
					w.logger.Info("outbox worker shutting down", zap.Int("worker_id", id))
					return
				case e, ok := <-entries:
					if !ok {
						return
					}
					if err := w.limiter.Wait(ctx); err != nil {
						return
					}
					w.dispatch(ctx, id, e)
				}
			}
		}(i)
	}
}

func (w *OutboxWorker) poll(ctx context.Context, entries chan<- *OutboxEntry) {
	pending, err := w.repo.PendingOutbox(ctx, w.batchMax)
	if err != nil {
		w.logger.Error("outbox poll failed", zap.Error(err))
		return
	}
	for _, e := range pending {
		select {
		case <-ctx.Done():
			return
		case entries <- e:
		}
	}
}

func (w *OutboxWorker) dispatch(ctx context.Context, workerID int, e *OutboxEntry) {
	result, err := w.service.DispatchEntry(ctx, e)
	if err == nil && result.Success {
		if err := w.repo.MarkDispatched(ctx, e.ID.String()); err != nil {
			w.logger.Error("failed to mark outbox entry dispatched",
				zap.String("entry_id", e.ID.String()),
				zap.Error(err),
			)
			return
		}
		metrics.OutboxDrained.Inc()
		w.logger.Info("outbox entry dispatched",
			zap.Int("worker_id", workerID),
			zap.String("entry_id", e.ID.String()),
			zap.String("event", e.Event),
		)
		return
	}

	lastError := "dispatch failed"
	if err != nil {
		lastError = err.Error()
	} else if len(result.Errors) > 0 {
		lastError = result.Errors[0]
	}

	if err := w.repo.MarkAttemptFailed(ctx, e.ID.String(), lastError, w.maxAttempts); err != nil {
		w.logger.Error("failed to record outbox attempt",
			zap.String("entry_id", e.ID.String()),
			zap.Error(err),
		)
		return
	}
	w.logger.Warn("outbox dispatch failed",
		zap.Int("worker_id", workerID),
		zap.String("entry_id", e.ID.String()),
		zap.String("event", e.Event),
		zap.Int("attempts", e.Attempts+1),
		zap.String("error", lastError),
	)
}
