package repository

import (
	"context"

	"platerental/models"
)

type StockRepository interface {
	GetStock(ctx context.Context) ([]models.StockLevel, error)
	// SetStockTotal changes the owned total of a size; available moves by
	// the same difference.
	SetStockTotal(ctx context.Context, size models.Size, total int) error
}
