package user

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) CreateUser(ctx context.Context, u *User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, first_name, last_name, role)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Role)
	return err
}

func scanUser(scan func(...interface{}) error) (*User, error) {
	u := &User{}
	err := scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *postgresRepo) GetUserByID(ctx context.Context, id string) (*User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, first_name, last_name, role, created_at, updated_at
		FROM users WHERE id=$1`, uid)
	return scanUser(row.Scan)
}

func (r *postgresRepo) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, first_name, last_name, role, created_at, updated_at
		FROM users WHERE email=$1`, email)
	return scanUser(row.Scan)
}

func (r *postgresRepo) ListUsers(ctx context.Context, role string) ([]*User, error) {
	query := `SELECT id, email, password_hash, first_name, last_name, role, created_at, updated_at
	          FROM users`
	args := []interface{}{}
	if role != "" {
		query += ` WHERE role=$1`
		args = append(args, role)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u, err := scanUser(rows.Scan)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

func (r *postgresRepo) UpdateRole(ctx context.Context, id string, role string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET role=$1, updated_at=$2 WHERE id=$3`,
		role, time.Now(), id)
	return err
}
