package realtime

import (
	"context"
	"sync"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// Channel is the Postgres NOTIFY channel the notification log trigger fires.
const Channel = "notification_log_insert"

// Hub fans Postgres NOTIFY payloads out to subscribed HTTP streams.
type Hub struct {
	listener *pq.Listener
	logger   *zap.Logger

	mu   sync.Mutex
	subs map[chan string]struct{}
}

func NewHub(dsn string, logger *zap.Logger) *Hub {
	h := &Hub{
		logger: logger,
		subs:   map[chan string]struct{}{},
	}
	h.listener = pq.NewListener(dsn, 10*time.Second, time.Minute,
		func(ev pq.ListenerEventType, err error) {
			if err != nil {
				logger.Warn("listener event", zap.Int("type", int(ev)), zap.Error(err))
			}
		})
	return h
}

// Subscribe registers a stream. The returned channel drops events when the
// consumer falls behind; call the cancel func when done.
func (h *Hub) Subscribe() (<-chan string, func()) {
	ch := make(chan string, 16)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	return ch, func() {
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
	}
}

func (h *Hub) publish(payload string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- payload:
		default:
		}
	}
}

// Run listens until ctx is cancelled.
func (h *Hub) Run(ctx context.Context, wg *sync.WaitGroup) error {
	if err := h.listener.Listen(Channel); err != nil {
		return err
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer h.listener.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case n := <-h.listener.Notify:
				if n == nil {
					// Reconnect; re-listen happens automatically.
					continue
				}
				h.publish(n.Extra)
			case <-time.After(90 * time.Second):
				// Keep the connection from going stale behind proxies.
				go h.listener.Ping()
			}
		}
	}()
	return nil
}
