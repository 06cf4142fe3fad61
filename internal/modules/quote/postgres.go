package quote

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const quoteColumns = `id, customer_id, service_id, description, quantity,
       quoted_price, status, valid_until, created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, q *Quote) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO quotes (id, customer_id, service_id, description, quantity, quoted_price, status, valid_until)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		q.ID, q.CustomerID, q.ServiceID, q.Description, q.Quantity,
		q.QuotedPrice, q.Status, q.ValidUntil)
	return err
}

func scanQuote(scan func(...interface{}) error) (*Quote, error) {
	q := &Quote{}
	var price sql.NullFloat64
	var validUntil sql.NullTime
	err := scan(&q.ID, &q.CustomerID, &q.ServiceID, &q.Description, &q.Quantity,
		&price, &q.Status, &validUntil, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if price.Valid {
		q.QuotedPrice = &price.Float64
	}
	if validUntil.Valid {
		q.ValidUntil = &validUntil.Time
	}
	return q, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Quote, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRowContext(ctx,
		`SELECT `+quoteColumns+` FROM quotes WHERE id=$1`, uid)
	return scanQuote(row.Scan)
}

func (r *postgresRepo) List(ctx context.Context, status string, customerID string) ([]*Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE 1=1`
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

	var quotes []*Quote
	for rows.Next() {
		q, err := scanQuote(rows.Scan)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

func (r *postgresRepo) UpdatePricing(ctx context.Context, q *Quote) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE quotes
		SET quoted_price=$1, valid_until=$2, status=$3, updated_at=$4
		WHERE id=$5`,
		q.QuotedPrice, q.ValidUntil, q.Status, time.Now(), q.ID)
	return err
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, status Status) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE quotes SET status=$1, updated_at=$2 WHERE id=$3`,
		status, time.Now(), id)
	return err
}

func (r *postgresRepo) ExpireStale(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE quotes SET status=$1, updated_at=$2
		WHERE status IN ($3,$4) AND valid_until IS NOT NULL AND valid_until < $2`,
		StatusExpired, time.Now(), StatusReviewed, StatusApproved)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
