package customer

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const customerColumns = `id, display_id, name, email, phone, address, user_id, created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, c *Customer) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO customers (id, display_id, name, email, phone, address, user_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		c.ID, c.DisplayID, c.Name, c.Email, c.Phone, c.Address, c.UserID)
	return err
}

func scanCustomer(scan func(...interface{}) error) (*Customer, error) {
	c := &Customer{}
	var userID sql.NullString
	err := scan(&c.ID, &c.DisplayID, &c.Name, &c.Email, &c.Phone, &c.Address,
		&userID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if userID.Valid {
		uid, _ := uuid.Parse(userID.String)
		c.UserID = &uid
	}
	return c, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Customer, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRowContext(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id=$1`, uid)
	return scanCustomer(row.Scan)
}

func (r *postgresRepo) GetByDisplayID(ctx context.Context, displayID string) (*Customer, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE display_id=$1`, displayID)
	return scanCustomer(row.Scan)
}

func (r *postgresRepo) GetByUserID(ctx context.Context, userID string) (*Customer, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE user_id=$1`, userID)
	return scanCustomer(row.Scan)
}

func (r *postgresRepo) List(ctx context.Context) ([]*Customer, error) {
	return r.queryCustomers(ctx,
		`SELECT `+customerColumns+` FROM customers ORDER BY name ASC`)
}

// likeEscaper neutralizes LIKE metacharacters so a query term such as "%"
// matches literally instead of every row.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *postgresRepo) Search(ctx context.Context, query string) ([]*Customer, error) {
	pattern := "%" + likeEscaper.Replace(query) + "%"
	return r.queryCustomers(ctx, `
		SELECT `+customerColumns+` FROM customers
		WHERE name ILIKE $1 OR email ILIKE $1 OR display_id ILIKE $1
		ORDER BY name ASC`, pattern)
}

func (r *postgresRepo) Update(ctx context.Context, c *Customer) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE customers
		SET name=$1, email=$2, phone=$3, address=$4, updated_at=$5
		WHERE id=$6`,
		c.Name, c.Email, c.Phone, c.Address, time.Now(), c.ID)
	return err
}

func (r *postgresRepo) queryCustomers(ctx context.Context, query string, args ...interface{}) ([]*Customer, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*Customer
	for rows.Next() {
		c, err := scanCustomer(rows.Scan)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, nil
}
