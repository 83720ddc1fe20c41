package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"platerental/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

func TestDays(t *testing.T) {
	tests := []struct {
		from, to string
		want     int
	}{
		{"2024-01-01", "2024-01-01", 1},
		{"2024-01-01", "2024-01-10", 10},
		{"2024-02-28", "2024-03-01", 3},
		{"2023-12-31", "2024-01-01", 2},
		{"2024-01-10", "2024-01-01", 0},
		{"", "2024-01-01", 0},
		{"2024-01-01", "not a date", 0},
		{"2024-03-09T23:30:00+05:30", "2024-03-10", 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Days(tt.from, tt.to), "%s..%s", tt.from, tt.to)
	}
}

func TestDaysBetween_LongSpans(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

	// a Gregorian cycle is 146097 days, longer than a time.Duration can hold
	assert.Equal(t, 146097, DaysBetween(day(1600, 1, 1), day(1999, 12, 31)))
	assert.Equal(t, 146097, DaysBetween(day(1, 1, 1), day(400, 12, 31)))
	assert.Equal(t, 2*146097, DaysBetween(day(1601, 1, 1), day(2400, 12, 31)))
	assert.Zero(t, DaysBetween(day(2400, 12, 31), day(1601, 1, 1)))
	assert.Equal(t, 1, DaysBetween(day(2024, 2, 29), day(2024, 2, 29).Add(23*time.Hour)))
}

func TestRentForSize(t *testing.T) {
	assertDec(t, "1000.00", RentForSize(5, 10, dec("20")))
	assertDec(t, "0", RentForSize(0, 10, dec("20")))
	assertDec(t, "3.77", RentForSize(1, 3, dec("1.255")))
	assertDec(t, "0.01", RentForSize(1, 1, dec("0.005")))
}

func TestTotalRent_Scenario(t *testing.T) {
	var pieces [models.NumSizes]int
	pieces[0] = 8

	assertDec(t, "720.00", TotalRent(pieces, 6, dec("15")))
}

func TestAdjustmentTotals(t *testing.T) {
	assertDec(t, "0", TotalExtraCosts(nil))
	assertDec(t, "0", TotalDiscounts(nil))
	assertDec(t, "0", TotalPayments(nil))

	assertDec(t, "150.50", TotalExtraCosts([]models.ExtraCost{{Total: dec("100")}, {Total: dec("50.50")}}))
	assertDec(t, "20", TotalDiscounts([]models.Discount{{Total: dec("20")}, {}}))
	assertDec(t, "700", TotalPayments([]models.Payment{{Amount: dec("500")}, {Amount: dec("200")}}))
}

func TestParseAmountAndCount(t *testing.T) {
	assertDec(t, "12.5", ParseAmount(" 12.5 "))
	assertDec(t, "0", ParseAmount("abc"))
	assertDec(t, "0", ParseAmount(""))
	assert.Equal(t, 7, ParseCount("7"))
	assert.Equal(t, 0, ParseCount("seven"))
}

func TestGetBillSummary_NoAdjustments(t *testing.T) {
	var pieces [models.NumSizes]int
	pieces[0], pieces[3] = 8, 2

	s := NewCalculator(nil).GetBillSummary(BillingContext{
		FromDate:  "2024-01-01",
		ToDate:    "2024-01-06",
		DailyRent: dec("15"),
		Pieces:    pieces,
	})

	assert.Equal(t, 6, s.Days)
	assertDec(t, "900", s.TotalRent)
	assertDec(t, "900", s.GrandTotal)
	assert.True(t, s.DuePayment.Equal(s.TotalRent))
}

func TestGetBillSummary_WithAdjustments(t *testing.T) {
	var pieces [models.NumSizes]int
	pieces[0] = 8

	s := NewCalculator(nil).GetBillSummary(BillingContext{
		FromDate:   "2024-01-01",
		ToDate:     "2024-01-06",
		DailyRent:  dec("15"),
		Pieces:     pieces,
		ExtraCosts: []models.ExtraCost{{Pieces: 2, Rate: dec("40"), Total: dec("80")}},
		Discounts:  []models.Discount{{Total: dec("0.50")}},
		Payments:   []models.Payment{{Amount: dec("300")}},
	})

	assertDec(t, "720", s.TotalRent)
	assertDec(t, "80", s.TotalExtraCosts)
	assertDec(t, "0.50", s.TotalDiscounts)
	assertDec(t, "799.50", s.GrandTotal)
	assertDec(t, "300", s.TotalPayments)
	assertDec(t, "499.50", s.DuePayment)
}

func TestGetBillSummary_OverpaidIsNegative(t *testing.T) {
	var pieces [models.NumSizes]int
	pieces[1] = 1

	s := NewCalculator(nil).GetBillSummary(BillingContext{
		FromDate:  "2024-01-01",
		ToDate:    "2024-01-01",
		DailyRent: dec("10"),
		Pieces:    pieces,
		Payments:  []models.Payment{{Amount: dec("25")}},
	})

	assertDec(t, "-15", s.DuePayment)
	assert.True(t, s.DuePayment.IsNegative())
}

func TestGetBillSummary_BadPeriodReported(t *testing.T) {
	var pieces [models.NumSizes]int
	pieces[0] = 3
	rep := &RecordingReporter{}
	calc := NewCalculator(rep)

	s := calc.GetBillSummary(BillingContext{FromDate: "01/01/2024", ToDate: "2024-01-05", DailyRent: dec("10"), Pieces: pieces})
	assert.Equal(t, 0, s.Days)
	assertDec(t, "0", s.TotalRent)
	assert.Equal(t, 1, rep.Count(AnomalyBadPeriod))

	s = calc.GetBillSummary(BillingContext{FromDate: "2024-01-05", ToDate: "2024-01-01", DailyRent: dec("10"), Pieces: pieces})
	assert.Equal(t, 0, s.Days)
	assert.Equal(t, 1, rep.Count(AnomalyInvertedPeriod))
}
