package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"platerental/models"
)

// BillStore is the persistence a Saver needs. CreateBill must write the
// header and all adjustment rows together, or return *PartialWriteError.
// A bill for an unknown client is a *ValidationError on client_id.
type BillStore interface {
	BillNumberExists(ctx context.Context, number string) (bool, error)
	CreateBill(ctx context.Context, bill *models.Bill, extras []models.ExtraCost, discounts []models.Discount, payments []models.Payment) error
	GetBill(ctx context.Context, number string) (*models.Bill, error)
	UpdateBillStatus(ctx context.Context, number string, status models.BillStatus) error
}

type SaveResult struct {
	Success bool         `json:"success"`
	Error   string       `json:"error,omitempty"`
	Field   string       `json:"field,omitempty"`
	Step    string       `json:"step,omitempty"`
	Bill    *models.Bill `json:"bill,omitempty"`
}

type Saver struct {
	Store    BillStore
	Reporter Reporter
	clock    func() time.Time
}

func NewSaver(store BillStore, r Reporter) *Saver {
	return &Saver{Store: store, Reporter: orNop(r), clock: time.Now}
}

// SaveBill validates a draft bill and stores it as generated.
// Validation and duplicate failures perform no writes.
func (s *Saver) SaveBill(ctx context.Context, bill *models.Bill, extras []models.ExtraCost, discounts []models.Discount, payments []models.Payment) SaveResult {
	if bill != nil && bill.Status == "" {
		bill.Status = models.BillDraft
	}
	if bill != nil && !bill.Status.CanTransition(models.BillGenerated) {
		return SaveResult{Error: "only a draft bill can be generated", Field: "status"}
	}
	if err := ValidateBill(bill, extras, discounts, payments); err != nil {
		var verr *ValidationError
		errors.As(err, &verr)
		return SaveResult{Error: err.Error(), Field: verr.Field}
	}

	exists, err := s.Store.BillNumberExists(ctx, bill.BillNumber)
	if err != nil {
		return SaveResult{Error: fmt.Sprintf("failed to check bill number: %v", err), Step: "check"}
	}
	if exists {
		return SaveResult{Error: ErrDuplicateBillNumber.Error(), Field: "bill_number"}
	}

	bill.Status = models.BillGenerated
	if bill.CreatedAt.IsZero() {
		bill.CreatedAt = s.now().UTC()
	}

	if err := s.Store.CreateBill(ctx, bill, extras, discounts, payments); err != nil {
		bill.Status = models.BillDraft
		if errors.Is(err, ErrDuplicateBillNumber) {
			return SaveResult{Error: ErrDuplicateBillNumber.Error(), Field: "bill_number"}
		}
		var verr *ValidationError
		if errors.As(err, &verr) {
			return SaveResult{Error: verr.Error(), Field: verr.Field}
		}
		var perr *PartialWriteError
		if errors.As(err, &perr) {
			orNop(s.Reporter).Report(AnomalyPartialWrite, map[string]interface{}{
				"bill_number": bill.BillNumber,
				"step":        perr.Step,
				"compensated": perr.Compensated,
				"error":       perr.Err.Error(),
			})
			return SaveResult{Error: perr.Error(), Step: perr.Step}
		}
		return SaveResult{Error: fmt.Sprintf("failed to save bill: %v", err), Step: "bill"}
	}

	bill.ExtraCosts, bill.Discounts, bill.Payments = extras, discounts, payments
	return SaveResult{Success: true, Bill: bill}
}

// CancelBill moves a generated bill to cancelled.
func (s *Saver) CancelBill(ctx context.Context, number string) error {
	bill, err := s.Store.GetBill(ctx, number)
	if err != nil {
		return err
	}
	if bill == nil {
		return ErrBillNotFound
	}
	if !bill.Status.CanTransition(models.BillCancelled) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, bill.Status, models.BillCancelled)
	}
	return s.Store.UpdateBillStatus(ctx, number, models.BillCancelled)
}

func (s *Saver) now() time.Time {
	if s.clock == nil {
		return time.Now()
	}
	return s.clock()
}
