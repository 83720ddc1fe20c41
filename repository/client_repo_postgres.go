package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"platerental/models"
)

type PostgresClientRepo struct {
	DB *sql.DB
}

func NewPostgresClientRepo(db *sql.DB) *PostgresClientRepo {
	return &PostgresClientRepo{DB: db}
}

func (r *PostgresClientRepo) CreateClient(ctx context.Context, c *models.Client) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO client(name,site,phone,created_at)
		VALUES($1,$2,$3,$4)
		RETURNING id
	`, c.Name, c.Site, c.Phone, c.CreatedAt).Scan(&c.ID)
}

// GetClient returns nil, nil when no client has id.
func (r *PostgresClientRepo) GetClient(ctx context.Context, id int64) (*models.Client, error) {
	c := &models.Client{}
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, site, phone, created_at FROM client WHERE id=$1
	`, id).Scan(&c.ID, &c.Name, &c.Site, &c.Phone, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func (r *PostgresClientRepo) ListClients(ctx context.Context) ([]*models.Client, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name, site, phone, created_at FROM client ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Client
	for rows.Next() {
		var c models.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Site, &c.Phone, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}
