package repository

import (
	"context"
	"fmt"
	"time"

	"platerental/models"
)

// ChallanRepository stores challans. A challan header and its item row are
// always written together, along with the stock movement they cause.
type ChallanRepository interface {
	CreateChallan(ctx context.Context, rec *models.ChallanRecord) error
	ListChallans(ctx context.Context, clientID int64, t models.ChallanType) ([]models.ChallanRecord, error)
	DeleteChallan(ctx context.Context, t models.ChallanType, number string) error
}

// stockDelta is the change in available main stock caused by a challan.
// Borrowed plates belong to a third party and never move owned stock.
func stockDelta(t models.ChallanType, q models.SizeQuantity) int {
	if t == models.Udhar {
		return -q.Qty
	}
	return q.Qty
}

// stockDeltas lists the change in available stock per size, index Size-1.
// sign is 1 to apply a challan and -1 to reverse it.
func stockDeltas(t models.ChallanType, q *models.ItemQuantities, sign int) [models.NumSizes]int {
	var out [models.NumSizes]int
	for _, s := range models.AllSizes() {
		out[s-1] = sign * stockDelta(t, q.Get(s))
	}
	return out
}

// applyStockDeltas applies deltas one size at a time through inc. When a
// size fails, the sizes already applied are reverted before returning, so
// stock is either fully moved or left as it was.
func applyStockDeltas(ctx context.Context, deltas [models.NumSizes]int, inc func(context.Context, models.Size, int) error) error {
	var applied []models.Size
	for _, s := range models.AllSizes() {
		d := deltas[s-1]
		if d == 0 {
			continue
		}
		if err := inc(ctx, s, d); err != nil {
			undo, cancel := detached(ctx)
			defer cancel()
			for _, a := range applied {
				if uerr := inc(undo, a, -deltas[a-1]); uerr != nil {
					return fmt.Errorf("size %d: %w (undo of size %d failed: %v)", s, err, a, uerr)
				}
			}
			return fmt.Errorf("size %d: %w", s, err)
		}
		applied = append(applied, s)
	}
	return nil
}

// detached returns a context for cleanup writes that outlives a cancelled
// request but keeps its values.
func detached(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
}
