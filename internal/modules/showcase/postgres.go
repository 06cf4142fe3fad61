package showcase

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const slideColumns = `id, title, description, image_name, sort_order, active,
       created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, s *Slide) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO showcase_slides
		  (id, title, description, image_name, sort_order, active)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		s.ID, s.Title, s.Description, s.ImageName, s.SortOrder, s.Active)
	if err != nil {
		return fmt.Errorf("insert slide: %w", err)
	}
	return nil
}

func scanSlide(scan func(...interface{}) error) (*Slide, error) {
	s := &Slide{}
	err := scan(&s.ID, &s.Title, &s.Description, &s.ImageName, &s.SortOrder,
		&s.Active, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Slide, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRowContext(ctx,
		`SELECT `+slideColumns+` FROM showcase_slides WHERE id=$1`, uid)
	return scanSlide(row.Scan)
}

func (r *postgresRepo) List(ctx context.Context, activeOnly bool) ([]*Slide, error) {
	query := `SELECT ` + slideColumns + ` FROM showcase_slides`
	if activeOnly {
		query += ` WHERE active=true`
	}
	query += ` ORDER BY sort_order ASC, created_at ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slides []*Slide
	for rows.Next() {
		s, err := scanSlide(rows.Scan)
		if err != nil {
			return nil, err
		}
		slides = append(slides, s)
	}
	return slides, nil
}

func (r *postgresRepo) Update(ctx context.Context, s *Slide) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE showcase_slides
		SET title=$1, description=$2, image_name=$3, sort_order=$4, active=$5,
		    updated_at=$6
		WHERE id=$7`,
		s.Title, s.Description, s.ImageName, s.SortOrder, s.Active,
		time.Now(), s.ID)
	if err != nil {
		return fmt.Errorf("update slide: %w", err)
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM showcase_slides WHERE id=$1`, id)
	return err
}
