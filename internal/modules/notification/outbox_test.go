package notification

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// outboxFakeRepo models the claim contract: a poll moves the returned
// entries to processing, a failed attempt puts them back to pending.
type outboxFakeRepo struct {
	Repository
	entries []*OutboxEntry
}

func (f *outboxFakeRepo) PendingOutbox(ctx context.Context, limit int) ([]*OutboxEntry, error) {
	var claimed []*OutboxEntry
	for _, e := range f.entries {
		if e.Status != OutboxPending {
			continue
		}
		e.Status = OutboxProcessing
		claimed = append(claimed, e)
		if len(claimed) == limit {
			break
		}
	}
	return claimed, nil
}

func (f *outboxFakeRepo) MarkDispatched(ctx context.Context, id string) error {
	for _, e := range f.entries {
		if e.ID.String() == id {
			e.Status = OutboxDispatched
		}
	}
	return nil
}

func (f *outboxFakeRepo) MarkAttemptFailed(ctx context.Context, id string, lastError string, maxAttempts int) error {
	for _, e := range f.entries {
		if e.ID.String() == id {
			e.Attempts++
			e.LastError = lastError
			if e.Attempts >= maxAttempts {
				e.Status = OutboxFailed
			} else {
				e.Status = OutboxPending
			}
		}
	}
	return nil
}

func outboxEntry(event string) *OutboxEntry {
	return &OutboxEntry{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		Event:      event,
		Message:    "hello",
		Channel:    ChannelSMS,
		Status:     OutboxPending,
	}
}

func TestPollClaimsEntriesOnce(t *testing.T) {
	repo := &outboxFakeRepo{entries: []*OutboxEntry{
		outboxEntry("job_submitted"),
		outboxEntry("status_updated"),
	}}
	w := NewOutboxWorker(repo, nil, zap.NewNop(), 1, 10, 50, 3, time.Second)

	ch := make(chan *OutboxEntry, 50)
	w.poll(context.Background(), ch)
	// A second tick while the first batch is still in flight must not
	// hand out the same entries again.
	w.poll(context.Background(), ch)

	seen := map[string]int{}
	close(ch)
	for e := range ch {
		seen[e.ID.String()]++
	}
	if len(seen) != 2 {
		t.Fatalf("expected 2 distinct entries polled, got %d", len(seen))
	}
	for id, n := range seen {
		if n != 1 {
			t.Fatalf("entry %s polled %d times", id, n)
		}
	}
}

func TestFailedAttemptReturnsEntryToPending(t *testing.T) {
	e := outboxEntry("job_submitted")
	repo := &outboxFakeRepo{entries: []*OutboxEntry{e}}

	ch := make(chan *OutboxEntry, 1)
	w := NewOutboxWorker(repo, nil, zap.NewNop(), 1, 10, 50, 3, time.Second)
	w.poll(context.Background(), ch)
	if len(ch) != 1 || e.Status != OutboxProcessing {
		t.Fatalf("expected entry claimed as processing, got %q", e.Status)
	}

	if err := repo.MarkAttemptFailed(context.Background(), e.ID.String(), "smtp down", 3); err != nil {
		t.Fatalf("mark failed: %v", err)
	}
	if e.Status != OutboxPending || e.Attempts != 1 {
		t.Fatalf("expected retryable entry back to pending, got %q attempts=%d", e.Status, e.Attempts)
	}

	// Drain the channel, the retry is visible on the next poll.
	<-ch
	w.poll(context.Background(), ch)
	if len(ch) != 1 {
		t.Fatalf("expected the retried entry to be re-polled")
	}
}
