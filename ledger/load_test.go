package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"platerental/models"
)

type stubSource struct {
	lists map[models.ChallanType][]models.ChallanRecord
	err   error
}

func (s stubSource) ListChallans(_ context.Context, _ int64, t models.ChallanType) ([]models.ChallanRecord, error) {
	if s.err != nil && t == models.Jama {
		return nil, s.err
	}
	return s.lists[t], nil
}

func TestLoadTransactions(t *testing.T) {
	src := stubSource{lists: map[models.ChallanType][]models.ChallanRecord{
		models.Udhar: {record("U-1", "2024-03-02", items(2, 5, 0))},
		models.Jama:  {record("J-1", "2024-03-01", items(2, 1, 0))},
	}}

	txs, err := LoadTransactions(context.Background(), src, 7)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "J-1", txs[0].ChallanNumber)
	assert.Equal(t, models.Jama, txs[0].Type)
	assert.Equal(t, "U-1", txs[1].ChallanNumber)
}

func TestLoadTransactions_Error(t *testing.T) {
	boom := errors.New("timeout")
	_, err := LoadTransactions(context.Background(), stubSource{err: boom}, 7)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "jama")
}
