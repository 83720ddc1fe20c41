package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"platerental/models"
)

// fakeStock records available stock per size and fails on a chosen size.
type fakeStock struct {
	available map[models.Size]int
	failOn    models.Size
	calls     int
}

func (f *fakeStock) inc(_ context.Context, s models.Size, delta int) error {
	f.calls++
	if s == f.failOn && delta < 0 {
		return errors.New("write conflict")
	}
	f.available[s] += delta
	return nil
}

func udharItems() *models.ItemQuantities {
	q := &models.ItemQuantities{}
	q.Set(1, models.SizeQuantity{Qty: 10, Borrowed: 4})
	q.Set(3, models.SizeQuantity{Qty: 5})
	q.Set(7, models.SizeQuantity{Qty: 2})
	return q
}

func TestStockDeltas(t *testing.T) {
	q := udharItems()

	out := stockDeltas(models.Udhar, q, 1)
	assert.Equal(t, -10, out[0])
	assert.Equal(t, -5, out[2])
	assert.Equal(t, -2, out[6])
	assert.Zero(t, out[1])

	back := stockDeltas(models.Udhar, q, -1)
	assert.Equal(t, 10, back[0])

	jama := stockDeltas(models.Jama, q, 1)
	assert.Equal(t, 5, jama[2])
}

func TestApplyStockDeltas_AllSizes(t *testing.T) {
	st := &fakeStock{available: map[models.Size]int{}}

	err := applyStockDeltas(context.Background(), stockDeltas(models.Udhar, udharItems(), 1), st.inc)
	require.NoError(t, err)

	assert.Equal(t, -10, st.available[1])
	assert.Equal(t, -5, st.available[3])
	assert.Equal(t, -2, st.available[7])
	assert.Equal(t, 3, st.calls)
}

func TestApplyStockDeltas_FailureUndoesAppliedSizes(t *testing.T) {
	st := &fakeStock{
		available: map[models.Size]int{1: 50, 3: 50, 7: 50},
		failOn:    7,
	}

	err := applyStockDeltas(context.Background(), stockDeltas(models.Udhar, udharItems(), 1), st.inc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write conflict")

	assert.Equal(t, map[models.Size]int{1: 50, 3: 50, 7: 50}, st.available)
}

func TestApplyStockDeltas_UndoSurvivesCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	st := &fakeStock{available: map[models.Size]int{}, failOn: 3}

	inc := func(c context.Context, s models.Size, d int) error {
		if s == 1 && d < 0 {
			cancel()
		} else if c.Err() != nil {
			return c.Err()
		}
		return st.inc(c, s, d)
	}

	err := applyStockDeltas(ctx, stockDeltas(models.Udhar, udharItems(), 1), inc)
	require.Error(t, err)
	assert.Zero(t, st.available[1])
}

func TestApplyStockDeltas_NothingToMove(t *testing.T) {
	st := &fakeStock{available: map[models.Size]int{}}

	var zero [models.NumSizes]int
	require.NoError(t, applyStockDeltas(context.Background(), zero, st.inc))
	assert.Zero(t, st.calls)
}
