package notification

import (
	"context"
	"database/sql"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) InsertLog(ctx context.Context, l *Log) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notifications_log
		  (id, customer_id, type, event, recipient, subject, message, status, error_detail)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		l.ID, l.CustomerID, l.Type, l.Event, l.Recipient, l.Subject,
		l.Message, l.Status, l.ErrorDetail)
	return err
}

func (r *postgresRepo) ListLogs(ctx context.Context, limit int) ([]*Log, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, customer_id, type, event, recipient, subject, message, status, error_detail, created_at
		FROM notifications_log ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*Log
	for rows.Next() {
		l := &Log{}
		if err := rows.Scan(&l.ID, &l.CustomerID, &l.Type, &l.Event, &l.Recipient,
			&l.Subject, &l.Message, &l.Status, &l.ErrorDetail, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, nil
}

// PendingOutbox claims up to limit pending entries by flipping them to
// processing in the same statement. Without the claim, a poll tick that
// fires while a batch is still draining would re-select the in-flight tail
// and dispatch those intents twice. SKIP LOCKED keeps concurrent pollers
// from claiming the same rows.
func (r *postgresRepo) PendingOutbox(ctx context.Context, limit int) ([]*OutboxEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		UPDATE notification_outbox SET status=$1
		WHERE id IN (
			SELECT id FROM notification_outbox
			WHERE status=$2 ORDER BY created_at ASC LIMIT $3
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, customer_id, event, subject, message, channel, status, attempts, last_error, created_at`,
		OutboxProcessing, OutboxPending, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*OutboxEntry
	for rows.Next() {
		e := &OutboxEntry{}
		var lastError sql.NullString
		if err := rows.Scan(&e.ID, &e.CustomerID, &e.Event, &e.Subject, &e.Message,
			&e.Channel, &e.Status, &e.Attempts, &lastError, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.LastError = lastError.String
		entries = append(entries, e)
	}
	return entries, nil
}

func (r *postgresRepo) MarkDispatched(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE notification_outbox SET status=$1 WHERE id=$2`,
		OutboxDispatched, id)
	return err
}

func (r *postgresRepo) MarkAttemptFailed(ctx context.Context, id string, lastError string, maxAttempts int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE notification_outbox
		SET attempts = attempts + 1,
		    last_error = $1,
		    status = CASE WHEN attempts + 1 >= $2 THEN $3 ELSE $4 END
		WHERE id=$5`,
		lastError, maxAttempts, OutboxFailed, OutboxPending, id)
	return err
}
