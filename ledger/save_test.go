package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"platerental/models"
)

// fakeBillStore keeps bills in memory and can be told to fail.
type fakeBillStore struct {
	bills     map[string]*models.Bill
	creates   int
	createErr error
	existsErr error
}

func newFakeBillStore() *fakeBillStore {
	return &fakeBillStore{bills: map[string]*models.Bill{}}
}

func (f *fakeBillStore) BillNumberExists(ctx context.Context, number string) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	_, ok := f.bills[number]
	return ok, nil
}

func (f *fakeBillStore) CreateBill(ctx context.Context, bill *models.Bill, extras []models.ExtraCost, discounts []models.Discount, payments []models.Payment) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.creates++
	cp := *bill
	f.bills[bill.BillNumber] = &cp
	return nil
}

func (f *fakeBillStore) GetBill(ctx context.Context, number string) (*models.Bill, error) {
	b, ok := f.bills[number]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBillStore) UpdateBillStatus(ctx context.Context, number string, status models.BillStatus) error {
	b, ok := f.bills[number]
	if !ok {
		return ErrBillNotFound
	}
	b.Status = status
	return nil
}

func draftBill(number string) *models.Bill {
	return &models.Bill{
		BillNumber: number,
		ClientID:   3,
		FromDate:   "2024-01-01",
		ToDate:     "2024-01-31",
		DailyRent:  dec("2.5"),
	}
}

func TestSaveBill_Success(t *testing.T) {
	store := newFakeBillStore()
	saver := NewSaver(store, nil)

	res := saver.SaveBill(context.Background(), draftBill("B-001"),
		[]models.ExtraCost{{Date: "2024-01-31", Note: "transport", Total: dec("200")}}, nil,
		[]models.Payment{{Date: "2024-01-15", Amount: dec("100")}})

	require.True(t, res.Success, res.Error)
	assert.Equal(t, models.BillGenerated, res.Bill.Status)
	assert.False(t, res.Bill.CreatedAt.IsZero())
	assert.Equal(t, 1, store.creates)
	assert.Len(t, res.Bill.ExtraCosts, 1)
}

func TestSaveBill_DuplicateNumber(t *testing.T) {
	store := newFakeBillStore()
	saver := NewSaver(store, nil)

	first := saver.SaveBill(context.Background(), draftBill("B-002"), nil, nil, nil)
	require.True(t, first.Success)

	second := saver.SaveBill(context.Background(), draftBill("B-002"), nil, nil, nil)

	assert.False(t, second.Success)
	assert.Equal(t, "Bill number already exists", second.Error)
	assert.Equal(t, 1, store.creates)
}

func TestSaveBill_DuplicateFromConstraintRace(t *testing.T) {
	store := newFakeBillStore()
	store.createErr = ErrDuplicateBillNumber

	res := NewSaver(store, nil).SaveBill(context.Background(), draftBill("B-003"), nil, nil, nil)

	assert.False(t, res.Success)
	assert.Equal(t, "Bill number already exists", res.Error)
}

func TestSaveBill_ValidationFailuresWriteNothing(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(b *models.Bill)
		field  string
	}{
		{"missing number", func(b *models.Bill) { b.BillNumber = "" }, "bill_number"},
		{"missing client", func(b *models.Bill) { b.ClientID = 0 }, "client_id"},
		{"bad from date", func(b *models.Bill) { b.FromDate = "01-01-2024" }, "from_date"},
		{"impossible to date", func(b *models.Bill) { b.ToDate = "2024-02-31" }, "to_date"},
		{"inverted period", func(b *models.Bill) { b.ToDate = "2023-12-31" }, "to_date"},
		{"negative rent", func(b *models.Bill) { b.DailyRent = dec("-1") }, "daily_rent"},
		{"rent below a paisa", func(b *models.Bill) { b.DailyRent = dec("12.345") }, "daily_rent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeBillStore()
			b := draftBill("B-100")
			tt.mutate(b)

			res := NewSaver(store, nil).SaveBill(context.Background(), b, nil, nil, nil)

			assert.False(t, res.Success)
			assert.Equal(t, tt.field, res.Field)
			assert.Contains(t, res.Error, tt.field)
			assert.Zero(t, store.creates)
		})
	}
}

func TestSaveBill_BadAdjustmentDate(t *testing.T) {
	store := newFakeBillStore()

	res := NewSaver(store, nil).SaveBill(context.Background(), draftBill("B-101"), nil, nil,
		[]models.Payment{{Date: "2024-01-05"}, {Date: "5 Jan"}})

	assert.False(t, res.Success)
	assert.Equal(t, "payments[1].date", res.Field)
	assert.Zero(t, store.creates)
}

func TestSaveBill_BadAdjustmentMoney(t *testing.T) {
	tests := []struct {
		name      string
		extras    []models.ExtraCost
		discounts []models.Discount
		payments  []models.Payment
		field     string
	}{
		{"negative discount total", nil, []models.Discount{{Total: dec("-100")}}, nil, "discounts[0].total"},
		{"negative discount pieces", nil, []models.Discount{{Pieces: -3}}, nil, "discounts[0].pieces"},
		{"negative extra rate", []models.ExtraCost{{Rate: dec("-2"), Total: dec("10")}}, nil, nil, "extra_costs[0].rate"},
		{"extra total in fractions of a paisa", []models.ExtraCost{{Total: dec("10")}, {Total: dec("0.125")}}, nil, nil, "extra_costs[1].total"},
		{"negative payment", nil, nil, []models.Payment{{Amount: dec("-50")}}, "payments[0].amount"},
		{"payment below a paisa", nil, nil, []models.Payment{{Amount: dec("0.001")}}, "payments[0].amount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeBillStore()

			res := NewSaver(store, nil).SaveBill(context.Background(), draftBill("B-102"), tt.extras, tt.discounts, tt.payments)

			assert.False(t, res.Success)
			assert.Equal(t, tt.field, res.Field)
			assert.Contains(t, res.Error, tt.field)
			assert.Zero(t, store.creates)
		})
	}
}

func TestSaveBill_UnknownClient(t *testing.T) {
	store := newFakeBillStore()
	store.createErr = &ValidationError{Field: "client_id", Reason: "does not exist"}

	res := NewSaver(store, nil).SaveBill(context.Background(), draftBill("B-103"), nil, nil, nil)

	assert.False(t, res.Success)
	assert.Equal(t, "client_id", res.Field)
	assert.Empty(t, res.Step)
	assert.Contains(t, res.Error, "does not exist")
}

func TestValidateBillingContext(t *testing.T) {
	bc := BillingContext{FromDate: "2024-01-01", ToDate: "2024-01-31", DailyRent: dec("2.5")}
	require.NoError(t, ValidateBillingContext(bc))

	neg := bc
	neg.Pieces[4] = -5
	var verr *ValidationError
	require.ErrorAs(t, ValidateBillingContext(neg), &verr)
	assert.Equal(t, "pieces[4]", verr.Field)

	rent := bc
	rent.DailyRent = dec("2.505")
	require.ErrorAs(t, ValidateBillingContext(rent), &verr)
	assert.Equal(t, "daily_rent", verr.Field)

	disc := bc
	disc.Discounts = []models.Discount{{Total: dec("-1")}}
	require.ErrorAs(t, ValidateBillingContext(disc), &verr)
	assert.Equal(t, "discounts[0].total", verr.Field)
}

func TestSaveBill_PartialWriteReported(t *testing.T) {
	store := newFakeBillStore()
	store.createErr = &PartialWriteError{Step: "payments", Compensated: true, Err: errors.New("connection reset")}
	rep := &RecordingReporter{}

	res := NewSaver(store, rep).SaveBill(context.Background(), draftBill("B-004"), nil, nil, nil)

	assert.False(t, res.Success)
	assert.Equal(t, "payments", res.Step)
	assert.Contains(t, res.Error, "payments")
	assert.Equal(t, 1, rep.Count(AnomalyPartialWrite))
}

func TestSaveBill_StoreCheckFails(t *testing.T) {
	store := newFakeBillStore()
	store.existsErr = errors.New("timeout")

	res := NewSaver(store, nil).SaveBill(context.Background(), draftBill("B-005"), nil, nil, nil)

	assert.False(t, res.Success)
	assert.Equal(t, "check", res.Step)
	assert.Zero(t, store.creates)
}

func TestSaveBill_OnlyDraftsGenerate(t *testing.T) {
	b := draftBill("B-006")
	b.Status = models.BillCancelled

	res := NewSaver(newFakeBillStore(), nil).SaveBill(context.Background(), b, nil, nil, nil)

	assert.False(t, res.Success)
	assert.Equal(t, "status", res.Field)
}

func TestCancelBill(t *testing.T) {
	store := newFakeBillStore()
	saver := NewSaver(store, nil)
	require.True(t, saver.SaveBill(context.Background(), draftBill("B-007"), nil, nil, nil).Success)

	require.NoError(t, saver.CancelBill(context.Background(), "B-007"))
	assert.Equal(t, models.BillCancelled, store.bills["B-007"].Status)

	err := saver.CancelBill(context.Background(), "B-007")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	assert.ErrorIs(t, saver.CancelBill(context.Background(), "missing"), ErrBillNotFound)
}

func TestBillStatusTransitions(t *testing.T) {
	assert.True(t, models.BillDraft.CanTransition(models.BillGenerated))
	assert.True(t, models.BillGenerated.CanTransition(models.BillCancelled))
	assert.False(t, models.BillDraft.CanTransition(models.BillCancelled))
	assert.False(t, models.BillCancelled.CanTransition(models.BillGenerated))
	assert.False(t, models.BillCancelled.CanTransition(models.BillDraft))
	assert.False(t, models.BillGenerated.CanTransition(models.BillDraft))
}
