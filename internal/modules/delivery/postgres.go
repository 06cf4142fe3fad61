package delivery

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/printshophq/printshop-backend/internal/modules/notification"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const scheduleColumns = `id, job_id, customer_id, staff_id, scheduled_date, address,
       fee, status, notes, created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, d *Schedule, intent *notification.Intent) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO delivery_schedules
		  (id, job_id, customer_id, staff_id, scheduled_date, address, fee, status, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		d.ID, d.JobID, d.CustomerID, d.StaffID, d.ScheduledDate, d.Address,
		d.Fee, d.Status, d.Notes)
	if err != nil {
		return fmt.Errorf("insert delivery schedule: %w", err)
	}

	if intent != nil {
		if err := insertIntent(ctx, tx, intent); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func scanSchedule(scan func(...interface{}) error) (*Schedule, error) {
	d := &Schedule{}
	var staffID sql.NullString
	err := scan(&d.ID, &d.JobID, &d.CustomerID, &staffID, &d.ScheduledDate,
		&d.Address, &d.Fee, &d.Status, &d.Notes, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if staffID.Valid {
		uid, _ := uuid.Parse(staffID.String)
		d.StaffID = &uid
	}
	return d, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Schedule, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRowContext(ctx,
		`SELECT `+scheduleColumns+` FROM delivery_schedules WHERE id=$1`, uid)
	return scanSchedule(row.Scan)
}

func (r *postgresRepo) List(ctx context.Context, status string, date string) ([]*Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM delivery_schedules WHERE 1=1`
	args := []interface{}{}
	n := 1
	if status != "" {
		query += fmt.Sprintf(` AND status=$%d`, n)
		args = append(args, status)
		n++
	}
	if date != "" {
		query += fmt.Sprintf(` AND scheduled_date::date=$%d`, n)
		args = append(args, date)
		n++
	}
	query += ` ORDER BY scheduled_date ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []*Schedule
	for rows.Next() {
		d, err := scanSchedule(rows.Scan)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, d)
	}
	return schedules, nil
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, status Status, intent *notification.Intent) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`UPDATE delivery_schedules SET status=$1, updated_at=$2 WHERE id=$3`,
		status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("update delivery status: %w", err)
	}

	if intent != nil {
		if err := insertIntent(ctx, tx, intent); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func insertIntent(ctx context.Context, tx *sql.Tx, intent *notification.Intent) error {
	entry := &notification.OutboxEntry{
		ID:         uuid.New(),
		CustomerID: intent.CustomerID,
		Event:      intent.Event,
		Subject:    intent.Subject,
		Message:    intent.Message,
		Channel:    intent.Channel,
	}
	if err := notification.InsertOutboxTx(ctx, tx, entry); err != nil {
		return fmt.Errorf("queue notification: %w", err)
	}
	return nil
}
