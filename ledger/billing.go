package ledger

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"platerental/models"
)

// BillingContext is everything needed to price one billing period.
type BillingContext struct {
	FromDate   string               `json:"from_date"`
	ToDate     string               `json:"to_date"`
	DailyRent  decimal.Decimal      `json:"daily_rent"`
	Pieces     [models.NumSizes]int `json:"pieces"`
	ExtraCosts []models.ExtraCost   `json:"extra_costs"`
	Discounts  []models.Discount    `json:"discounts"`
	Payments   []models.Payment     `json:"payments"`
}

type BillSummary struct {
	Days            int             `json:"days"`
	TotalRent       decimal.Decimal `json:"total_rent"`
	TotalExtraCosts decimal.Decimal `json:"total_extra_costs"`
	TotalDiscounts  decimal.Decimal `json:"total_discounts"`
	GrandTotal      decimal.Decimal `json:"grand_total"`
	TotalPayments   decimal.Decimal `json:"total_payments"`
	DuePayment      decimal.Decimal `json:"due_payment"`
}

// Days counts the billable days from..to, both ends included. It returns
// 0 when either date does not parse; callers must check their input
// before treating 0 as a real period.
func Days(from, to string) int {
	f, err := ParseDate(from)
	if err != nil {
		return 0
	}
	t, err := ParseDate(to)
	if err != nil {
		return 0
	}
	return DaysBetween(f, t)
}

// DaysBetween is Days over parsed dates. An inverted range yields 0.
func DaysBetween(from, to time.Time) int {
	// whole days between UTC midnights; avoids time.Duration overflow
	days := (CalendarDay(to).Unix()-CalendarDay(from).Unix())/86400 + 1
	if days < 0 {
		return 0
	}
	return int(days)
}

// round2 rounds to paise, halves away from zero.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// RentForSize prices pieces held for days at dailyRent per piece per day.
func RentForSize(pieces, days int, dailyRent decimal.Decimal) decimal.Decimal {
	return round2(decimal.NewFromInt(int64(pieces)).
		Mul(decimal.NewFromInt(int64(days))).
		Mul(dailyRent))
}

func TotalRent(pieces [models.NumSizes]int, days int, dailyRent decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, p := range pieces {
		total = total.Add(RentForSize(p, days, dailyRent))
	}
	return total
}

func TotalExtraCosts(list []models.ExtraCost) decimal.Decimal {
	total := decimal.Zero
	for _, c := range list {
		total = total.Add(c.Total)
	}
	return total
}

func TotalDiscounts(list []models.Discount) decimal.Decimal {
	total := decimal.Zero
	for _, d := range list {
		total = total.Add(d.Total)
	}
	return total
}

func TotalPayments(list []models.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range list {
		total = total.Add(p.Amount)
	}
	return total
}

// ParseAmount reads a money value from user input. Anything that is not a
// finite number counts as zero.
func ParseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseCount reads a piece count from user input, zero when not numeric.
func ParseCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// Calculator turns a BillingContext into a BillSummary.
type Calculator struct {
	Reporter Reporter
}

func NewCalculator(r Reporter) *Calculator {
	return &Calculator{Reporter: orNop(r)}
}

func (c *Calculator) GetBillSummary(bc BillingContext) BillSummary {
	days := c.days(bc.FromDate, bc.ToDate)

	rent := TotalRent(bc.Pieces, days, bc.DailyRent)
	extras := TotalExtraCosts(bc.ExtraCosts)
	discounts := TotalDiscounts(bc.Discounts)
	payments := TotalPayments(bc.Payments)
	grand := round2(rent.Add(extras).Sub(discounts))

	return BillSummary{
		Days:            days,
		TotalRent:       rent,
		TotalExtraCosts: extras,
		TotalDiscounts:  discounts,
		GrandTotal:      grand,
		TotalPayments:   payments,
		DuePayment:      round2(grand.Sub(payments)),
	}
}

func (c *Calculator) days(from, to string) int {
	rep := orNop(c.Reporter)
	f, ferr := ParseDate(from)
	t, terr := ParseDate(to)
	if ferr != nil || terr != nil {
		rep.Report(AnomalyBadPeriod, map[string]interface{}{"from_date": from, "to_date": to})
		return 0
	}
	if t.Before(f) {
		rep.Report(AnomalyInvertedPeriod, map[string]interface{}{"from_date": from, "to_date": to})
		return 0
	}
	return DaysBetween(f, t)
}
