package offline

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/printshophq/printshop-backend/internal/metrics"
)

// Applier executes one queued action against the live database.
// Conflicts resolve last-write-wins: the queued payload overwrites whatever
// is in the database at replay time.
type Applier func(ctx context.Context, action string, payload []byte) error

// Replayer drains the pending-action queue once the database is reachable
// again. Actions replay in insertion order; an action that fails is left at
// the head of the queue and retried on the next pass.
type Replayer struct {
	store    *Store
	db       *sql.DB
	logger   *zap.Logger
	interval time.Duration

	mu       sync.RWMutex
	appliers map[string]Applier
}

func NewReplayer(store *Store, db *sql.DB, logger *zap.Logger, interval time.Duration) *Replayer {
	return &Replayer{
		store:    store,
		db:       db,
		logger:   logger,
		interval: interval,
		appliers: make(map[string]Applier),
	}
}

// Register binds an applier to an entity name.
func (r *Replayer) Register(entity string, fn Applier) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appliers[entity] = fn
}

// Run polls until the context is cancelled.
func (r *Replayer) Run(ctx context.Context, wg *sync.WaitGroup) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.drain(ctx)
			}
		}
	}()
}

func (r *Replayer) drain(ctx context.Context) {
	if err := r.db.PingContext(ctx); err != nil {
		return // still offline
	}

	actions, err := r.store.PendingActions(ctx)
	if err != nil {
		r.logger.Error("read pending actions", zap.Error(err))
		return
	}

	for _, a := range actions {
		r.mu.RLock()
		apply, ok := r.appliers[a.Entity]
		r.mu.RUnlock()
		if !ok {
			r.logger.Warn("no applier for queued action, dropping",
				zap.String("entity", a.Entity),
				zap.String("action", a.Action),
			)
			if err := r.store.DeleteAction(ctx, a.ID); err != nil {
				r.logger.Error("drop queued action", zap.Error(err))
			}
			continue
		}

		if err := apply(ctx, a.Action, a.Payload); err != nil {
			r.logger.Warn("replay failed, will retry",
				zap.Int64("action_id", a.ID),
				zap.String("entity", a.Entity),
				zap.Error(err),
			)
			return // keep queue order, retry next pass
		}

		if err := r.store.DeleteAction(ctx, a.ID); err != nil {
			r.logger.Error("delete replayed action", zap.Error(err))
			return
		}
		metrics.ReplayedActions.Inc()
		r.logger.Info("replayed queued action",
			zap.Int64("action_id", a.ID),
			zap.String("entity", a.Entity),
			zap.String("action", a.Action),
		)
	}
}
