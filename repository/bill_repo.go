package repository

import (
	"context"

	"platerental/ledger"
	"platerental/models"
)

type BillRepository interface {
	ledger.BillStore
	ListBills(ctx context.Context, clientID int64) ([]*models.Bill, error)
}
