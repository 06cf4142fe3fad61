package catalog

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

func (r *postgresRepo) Create(ctx context.Context, p *PrintService) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO print_services
		  (id, name, description, category, base_price,
		   paper_types, paper_weights, finishing_options, image_url, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		p.ID, p.Name, p.Description, p.Category, p.BasePrice,
		marshalOptions(p.PaperTypes), marshalOptions(p.PaperWeights),
		marshalOptions(p.FinishingOptions), p.ImageURL, p.IsActive)
	return err
}

func scanService(scan func(...interface{}) error) (*PrintService, error) {
	p := &PrintService{}
	var paperTypes, paperWeights, finishing []byte
	err := scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.BasePrice,
		&paperTypes, &paperWeights, &finishing, &p.ImageURL, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.PaperTypes = unmarshalOptions(paperTypes)
	p.PaperWeights = unmarshalOptions(paperWeights)
	p.FinishingOptions = unmarshalOptions(finishing)
	return p, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*PrintService, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRowContext(ctx, `
		SELECT id,name,description,category,base_price,paper_types,paper_weights,finishing_options,image_url,is_active,created_at,updated_at
		FROM print_services WHERE id=$1`, uid)
	return scanService(row.Scan)
}

func (r *postgresRepo) List(ctx context.Context, category string, activeOnly bool) ([]*PrintService, error) {
	query := `SELECT id,name,description,category,base_price,paper_types,paper_weights,finishing_options,image_url,is_active,created_at,updated_at
	          FROM print_services WHERE 1=1`
	args := []interface{}{}
	n := 1
	if category != "" {
		query += fmt.Sprintf(` AND category=$%d`, n)
		args = append(args, category)
		n++
	}
	if activeOnly {
		query += ` AND is_active=true`
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []*PrintService
	for rows.Next() {
		p, err := scanService(rows.Scan)
		if err != nil {
			return nil, err
		}
		services = append(services, p)
	}
	return services, nil
}

func (r *postgresRepo) Update(ctx context.Context, p *PrintService) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE print_services
		SET name=$1, description=$2, category=$3, base_price=$4,
		    paper_types=$5, paper_weights=$6, finishing_options=$7,
		    image_url=$8, is_active=$9, updated_at=$10
		WHERE id=$11`,
		p.Name, p.Description, p.Category, p.BasePrice,
		marshalOptions(p.PaperTypes), marshalOptions(p.PaperWeights),
		marshalOptions(p.FinishingOptions), p.ImageURL, p.IsActive,
		time.Now(), p.ID)
	return err
}

func (r *postgresRepo) Deactivate(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE print_services SET is_active=false, updated_at=$1 WHERE id=$2`,
		time.Now(), id)
	return err
}

func marshalOptions(opts []string) interface{} {
	if len(opts) == 0 {
		return nil
	}
	b, err := json.Marshal(opts)
	if err != nil {
		return nil
	}
	return b
}

func unmarshalOptions(b []byte) []string {
	if len(b) == 0 {
		return nil
	}
	var opts []string
	if err := json.Unmarshal(b, &opts); err != nil {
		return nil
	}
	return opts
}
