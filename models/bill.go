package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type BillStatus string

const (
	BillDraft     BillStatus = "draft"
	BillGenerated BillStatus = "generated"
	BillCancelled BillStatus = "cancelled"
)

// CanTransition reports whether a bill may move from s to next.
// draft -> generated -> cancelled; cancelled is terminal.
func (s BillStatus) CanTransition(next BillStatus) bool {
	switch s {
	case BillDraft:
		return next == BillGenerated
	case BillGenerated:
		return next == BillCancelled
	default:
		return false
	}
}

// ExtraCost is a charge on top of rent, e.g. transport or damaged plates.
type ExtraCost struct {
	ID     int64           `json:"id,omitempty" db:"id"`
	BillID int64           `json:"bill_id,omitempty" db:"bill_id"`
	Date   string          `json:"date" db:"date" validate:"omitempty,ymd"`
	Note   string          `json:"note" db:"note"`
	Pieces int             `json:"pieces" db:"pieces" validate:"gte=0"`
	Rate   decimal.Decimal `json:"rate" db:"rate"`
	Total  decimal.Decimal `json:"total" db:"total"`
}

// Discount is a reduction of the bill, entered the same way as an extra cost.
type Discount struct {
	ID     int64           `json:"id,omitempty" db:"id"`
	BillID int64           `json:"bill_id,omitempty" db:"bill_id"`
	Date   string          `json:"date" db:"date" validate:"omitempty,ymd"`
	Note   string          `json:"note" db:"note"`
	Pieces int             `json:"pieces" db:"pieces" validate:"gte=0"`
	Rate   decimal.Decimal `json:"rate" db:"rate"`
	Total  decimal.Decimal `json:"total" db:"total"`
}

type Payment struct {
	ID     int64           `json:"id,omitempty" db:"id"`
	BillID int64           `json:"bill_id,omitempty" db:"bill_id"`
	Date   string          `json:"date" db:"date" validate:"omitempty,ymd"`
	Note   string          `json:"note" db:"note"`
	Amount decimal.Decimal `json:"amount" db:"amount"`
}

// Bill is a persisted bill summary for one client and period.
type Bill struct {
	ID              int64           `json:"id" db:"id"`
	BillNumber      string          `json:"bill_number" db:"bill_number" validate:"required"`
	ClientID        int64           `json:"client_id" db:"client_id" validate:"required,gt=0"`
	FromDate        string          `json:"from_date" db:"from_date" validate:"required,ymd"`
	ToDate          string          `json:"to_date" db:"to_date" validate:"required,ymd"`
	DailyRent       decimal.Decimal `json:"daily_rent" db:"daily_rent"`
	Days            int             `json:"days" db:"days" validate:"gte=0"`
	TotalRent       decimal.Decimal `json:"total_rent" db:"total_rent"`
	TotalExtraCosts decimal.Decimal `json:"total_extra_costs" db:"total_extra_costs"`
	TotalDiscounts  decimal.Decimal `json:"total_discounts" db:"total_discounts"`
	GrandTotal      decimal.Decimal `json:"grand_total" db:"grand_total"`
	TotalPayments   decimal.Decimal `json:"total_payments" db:"total_payments"`
	DuePayment      decimal.Decimal `json:"due_payment" db:"due_payment"`
	Status          BillStatus      `json:"status" db:"status"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       *time.Time      `json:"updated_at,omitempty" db:"updated_at"`

	ExtraCosts []ExtraCost `json:"extra_costs,omitempty"`
	Discounts  []Discount  `json:"discounts,omitempty"`
	Payments   []Payment   `json:"payments,omitempty"`
}
