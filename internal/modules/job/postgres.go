package job

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

const jobColumns = `id, title, quantity, service_id, customer_id, status,
       quoted_price, final_price, tracking_code, delivery_method, delivery_address,
       notes, due_date, completed_at, created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, j *Job, intent *notification.Intent) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO jobs
		  (id, title, quantity, service_id, customer_id, status,
		   quoted_price, final_price, tracking_code, delivery_method, delivery_address,
		   notes, due_date)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		j.ID, j.Title, j.Quantity, j.ServiceID, j.CustomerID, j.Status,
		j.QuotedPrice, j.FinalPrice, j.TrackingCode, j.DeliveryMethod, j.DeliveryAddress,
		j.Notes, j.DueDate)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}

	if intent != nil {
		if err := insertIntent(ctx, tx, intent); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func scanJob(scan func(...interface{}) error) (*Job, error) {
	j := &Job{}
	var quoted, final sql.NullFloat64
	var due, completed sql.NullTime
	err := scan(&j.ID, &j.Title, &j.Quantity, &j.ServiceID, &j.CustomerID, &j.Status,
		&quoted, &final, &j.TrackingCode, &j.DeliveryMethod, &j.DeliveryAddress,
		&j.Notes, &due, &completed, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if quoted.Valid {
		j.QuotedPrice = &quoted.Float64
	}
	if final.Valid {
		j.FinalPrice = &final.Float64
	}
	if due.Valid {
		j.DueDate = &due.Time
	}
	if completed.Valid {
		j.CompletedAt = &completed.Time
	}
	return j, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Job, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRowContext(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id=$1`, uid)
	return scanJob(row.Scan)
}

func (r *postgresRepo) GetByTrackingCode(ctx context.Context, code string) (*Job, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE tracking_code=$1`, code)
	return scanJob(row.Scan)
}

func (r *postgresRepo) List(ctx context.Context, status string, customerID string) ([]*Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE 1=1`
	args := []interface{}{}
	n := 1
	if status != "" {
		query += fmt.Sprintf(` AND status=$%d`, n)
		args = append(args, status)
		n++
	}
	if customerID != "" {
		query += fmt.Sprintf(` AND customer_id=$%d`, n)
		args = append(args, customerID)
		n++
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []*Job
	for rows.Next() {
		j, err := scanJob(rows.Scan)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

func (r *postgresRepo) Update(ctx context.Context, j *Job) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE jobs
		SET title=$1, quantity=$2, quoted_price=$3, final_price=$4,
		    delivery_method=$5, delivery_address=$6, notes=$7, due_date=$8,
		    updated_at=$9
		WHERE id=$10`,
		j.Title, j.Quantity, j.QuotedPrice, j.FinalPrice,
		j.DeliveryMethod, j.DeliveryAddress, j.Notes, j.DueDate,
		time.Now(), j.ID)
	return err
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, status Status, completedAt *time.Time, intent *notification.Intent) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if completedAt != nil {
		_, err = tx.ExecContext(ctx,
			`UPDATE jobs SET status=$1, completed_at=$2, updated_at=$3 WHERE id=$4`,
			status, completedAt, time.Now(), id)
	} else {
		// completed_at deliberately untouched: a previously completed job
		// keeps its timestamp when moved to another stage.
		_, err = tx.ExecContext(ctx,
			`UPDATE jobs SET status=$1, updated_at=$2 WHERE id=$3`,
			status, time.Now(), id)
	}
	if err != nil {
		return fmt.Errorf("update job status: %w", err)
	}

	if intent != nil {
		if err := insertIntent(ctx, tx, intent); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id=$1`, id)
	return err
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
