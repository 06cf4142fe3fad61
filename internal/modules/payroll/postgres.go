package payroll

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const recordColumns = `id, staff_id, period, base_pay, bonus, deductions, net_pay,
       paid, paid_at, notes, created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, rec *Record) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO payroll_records
		  (id, staff_id, period, base_pay, bonus, deductions, net_pay, paid, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		rec.ID, rec.StaffID, rec.Period, rec.BasePay, rec.Bonus,
		rec.Deductions, rec.NetPay, rec.Paid, rec.Notes)
	if err != nil {
		return fmt.Errorf("insert payroll record: %w", err)
	}
	return nil
}

func scanRecord(scan func(...interface{}) error) (*Record, error) {
	rec := &Record{}
	var paidAt sql.NullTime
	err := scan(&rec.ID, &rec.StaffID, &rec.Period, &rec.BasePay, &rec.Bonus,
		&rec.Deductions, &rec.NetPay, &rec.Paid, &paidAt, &rec.Notes,
		&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if paidAt.Valid {
		rec.PaidAt = &paidAt.Time
	}
	return rec, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Record, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM payroll_records WHERE id=$1`, uid)
	return scanRecord(row.Scan)
}

func (r *postgresRepo) List(ctx context.Context, staffID, period string) ([]*Record, error) {
	query := `SELECT ` + recordColumns + ` FROM payroll_records WHERE 1=1`
	args := []interface{}{}
	n := 1
	if staffID != "" {
		query += fmt.Sprintf(` AND staff_id=$%d`, n)
		args = append(args, staffID)
		n++
	}
	if period != "" {
		query += fmt.Sprintf(` AND period=$%d`, n)
		args = append(args, period)
		n++
	}
	query += ` ORDER BY period DESC, created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func (r *postgresRepo) Update(ctx context.Context, rec *Record) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE payroll_records
		SET base_pay=$1, bonus=$2, deductions=$3, net_pay=$4,
		    paid=$5, paid_at=$6, notes=$7, updated_at=$8
		WHERE id=$9`,
		rec.BasePay, rec.Bonus, rec.Deductions, rec.NetPay,
		rec.Paid, rec.PaidAt, rec.Notes, time.Now(), rec.ID)
	if err != nil {
		return fmt.Errorf("update payroll record: %w", err)
	}
	return nil
}
