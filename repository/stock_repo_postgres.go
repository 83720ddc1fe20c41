package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"platerental/models"
)

type PostgresStockRepo struct {
	DB *sql.DB
}

func NewPostgresStockRepo(db *sql.DB) *PostgresStockRepo {
	return &PostgresStockRepo{DB: db}
}

func (r *PostgresStockRepo) GetStock(ctx context.Context) ([]models.StockLevel, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT size, total, available, updated_at FROM stock ORDER BY size`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.StockLevel
	for rows.Next() {
		var s models.StockLevel
		if err := rows.Scan(&s.Size, &s.Total, &s.Available, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PostgresStockRepo) SetStockTotal(ctx context.Context, size models.Size, total int) error {
	if !size.Valid() {
		return fmt.Errorf("invalid size %d", size)
	}
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO stock(size,total,available,updated_at)
		VALUES($1,$2,$2,$3)
		ON CONFLICT(size) DO UPDATE SET
			available = stock.available + (EXCLUDED.total - stock.total),
			total = EXCLUDED.total,
			updated_at = EXCLUDED.updated_at
	`, int(size), total, time.Now().UTC())
	return err
}
