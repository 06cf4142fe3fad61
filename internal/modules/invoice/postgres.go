package invoice

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const invoiceColumns = `id, invoice_number, customer_id, job_id, line_items,
       subtotal, tax_rate, tax, total, status, due_date, paid_at, notes, created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, inv *Invoice) error {
	items, err := json.Marshal(inv.LineItems)
	if err != nil {
		return fmt.Errorf("marshal line items: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO invoices
		  (id, invoice_number, customer_id, job_id, line_items,
		   subtotal, tax_rate, tax, total, status, due_date, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		inv.ID, inv.InvoiceNumber, inv.CustomerID, inv.JobID, items,
		inv.Subtotal, inv.TaxRate, inv.Tax, inv.Total, inv.Status, inv.DueDate, inv.Notes)
	return err
}

func scanInvoice(scan func(...interface{}) error) (*Invoice, error) {
	inv := &Invoice{}
	var jobID sql.NullString
	var items []byte
	var due, paid sql.NullTime
	err := scan(&inv.ID, &inv.InvoiceNumber, &inv.CustomerID, &jobID, &items,
		&inv.Subtotal, &inv.TaxRate, &inv.Tax, &inv.Total, &inv.Status,
		&due, &paid, &inv.Notes, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if jobID.Valid {
		uid, _ := uuid.Parse(jobID.String)
		inv.JobID = &uid
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &inv.LineItems); err != nil {
			return nil, fmt.Errorf("unmarshal line items: %w", err)
		}
	}
	if due.Valid {
		inv.DueDate = &due.Time
	}
	if paid.Valid {
		inv.PaidAt = &paid.Time
	}
	return inv, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Invoice, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRowContext(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE id=$1`, uid)
	return scanInvoice(row.Scan)
}

func (r *postgresRepo) GetByNumber(ctx context.Context, number string) (*Invoice, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE invoice_number=$1`, number)
	return scanInvoice(row.Scan)
}

func (r *postgresRepo) List(ctx context.Context, status string, customerID string) ([]*Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE 1=1`
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

	var invoices []*Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows.Scan)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, status Status) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE invoices SET status=$1, updated_at=$2 WHERE id=$3`,
		status, time.Now(), id)
	return err
}

func (r *postgresRepo) MarkPaid(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE invoices SET status=$1, paid_at=$2, updated_at=$2 WHERE id=$3`,
		StatusPaid, time.Now(), id)
	return err
}

func (r *postgresRepo) MarkOverdueStale(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE invoices SET status=$1, updated_at=$2
		WHERE status=$3 AND due_date IS NOT NULL AND due_date < $2`,
		StatusOverdue, time.Now(), StatusSent)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
