package ledger

import (
	"context"
	"fmt"

	"platerental/models"
)

// ChallanSource is the storage read the ledger needs.
type ChallanSource interface {
	ListChallans(ctx context.Context, clientID int64, t models.ChallanType) ([]models.ChallanRecord, error)
}

// LoadTransactions reads both challan lists of a client and aggregates them.
func LoadTransactions(ctx context.Context, src ChallanSource, clientID int64) ([]models.Transaction, error) {
	udhar, err := src.ListChallans(ctx, clientID, models.Udhar)
	if err != nil {
		return nil, fmt.Errorf("list udhar challans: %w", err)
	}
	jama, err := src.ListChallans(ctx, clientID, models.Jama)
	if err != nil {
		return nil, fmt.Errorf("list jama challans: %w", err)
	}
	return Aggregate(udhar, jama), nil
}
