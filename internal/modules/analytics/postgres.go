package analytics

import (
	"context"
	"database/sql"
	"time"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) RevenueBetween(ctx context.Context, from, to time.Time) (float64, error) {
	var revenue float64
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(final_price), 0)
		FROM jobs
		WHERE created_at >= $1 AND created_at < $2 AND final_price IS NOT NULL`,
		from, to).Scan(&revenue)
	return revenue, err
}

func (r *postgresRepo) JobCountsByStatus(ctx context.Context, from, to time.Time) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT status, COUNT(*)
		FROM jobs
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY status`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func (r *postgresRepo) CustomersCreated(ctx context.Context, from, to time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM customers
		WHERE created_at >= $1 AND created_at < $2`, from, to).Scan(&n)
	return n, err
}

func (r *postgresRepo) DailyBuckets(ctx context.Context, from, to time.Time) ([]DayBucket, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT to_char(created_at::date, 'YYYY-MM-DD'),
		       COALESCE(SUM(final_price), 0),
		       COUNT(*)
		FROM jobs
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY created_at::date
		ORDER BY created_at::date ASC`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buckets []DayBucket
	for rows.Next() {
		var b DayBucket
		if err := rows.Scan(&b.Date, &b.Revenue, &b.JobCount); err != nil {
			return nil, err
		}
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}
