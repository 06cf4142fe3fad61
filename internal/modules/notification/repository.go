package notification

import (
	"context"
	"database/sql"
)

// Repository defines data access for notification logs and the outbox.
type Repository interface {
	// InsertLog appends one attempt record. Logs are never updated.
	InsertLog(ctx context.Context, l *Log) error

	// ListLogs returns the most recent attempt records.
	ListLogs(ctx context.Context, limit int) ([]*Log, error)

	// PendingOutbox claims up to limit queued intents, oldest first. Claimed
	// entries move to processing so a later poll cannot pick them up again;
	// a failed attempt puts them back to pending for retry.
	PendingOutbox(ctx context.Context, limit int) ([]*OutboxEntry, error)

	// MarkDispatched finalizes a delivered outbox entry.
	MarkDispatched(ctx context.Context, id string) error

	// MarkAttemptFailed bumps the attempt count; once maxAttempts is reached
	// the entry moves to failed and is no longer picked up.
	MarkAttemptFailed(ctx context.Context, id string, lastError string, maxAttempts int) error
}

// InsertOutboxTx persists an intent inside the caller's transaction, so the
// notification queues atomically with the state change that triggered it.
func InsertOutboxTx(ctx context.Context, tx *sql.Tx, e *OutboxEntry) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO notification_outbox
		  (id, customer_id, event, subject, message, channel, status, attempts)
		VALUES ($1,$2,$3,$4,$5,$6,$7,0)`,
		e.ID, e.CustomerID, e.Event, e.Subject, e.Message, e.Channel, OutboxPending)
	return err
}
