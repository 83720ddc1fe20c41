package ledger

import (
	"sort"

	"platerental/models"
)

// ToTransaction converts a stored challan header and its item row into a
// Transaction. A nil items row is replaced by zero quantities.
func ToTransaction(ch models.Challan, items *models.ItemQuantities, t models.ChallanType) models.Transaction {
	tx := models.Transaction{
		Type:          t,
		ChallanNumber: ch.ChallanNumber,
		ClientID:      ch.ClientID,
		Site:          deref(ch.Site),
		Phone:         deref(ch.Phone),
		Driver:        deref(ch.Driver),
	}
	if ch.Date != nil && !ch.Date.IsZero() {
		tx.Date = CalendarDay(*ch.Date)
	}
	if items != nil {
		tx.Items = *items
		tx.Items.Normalize()
		tx.HasItems = true
	}
	tx.GrandTotal = tx.Items.GrandTotal()
	return tx
}

// Aggregate merges udhar and jama records into one list ordered by date.
// The sort is stable over udhar-then-jama input order, so same-day
// transactions keep that order. Undated transactions go last.
func Aggregate(udhar, jama []models.ChallanRecord) []models.Transaction {
	out := make([]models.Transaction, 0, len(udhar)+len(jama))
	for _, r := range udhar {
		out = append(out, ToTransaction(r.Challan, r.Items, models.Udhar))
	}
	for _, r := range jama {
		out = append(out, ToTransaction(r.Challan, r.Items, models.Jama))
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.HasDate() || !b.HasDate() {
			return a.HasDate() && !b.HasDate()
		}
		return a.Date.Before(b.Date)
	})
	return out
}

// LedgerRow is one line of the client ledger with the outstanding piece
// count after applying it.
type LedgerRow struct {
	Transaction models.Transaction `json:"transaction"`
	Balance     int                `json:"balance"`
}

// LedgerTotals summarizes a ledger in pieces.
type LedgerTotals struct {
	TotalRented    int `json:"total_rented"`
	TotalReturned  int `json:"total_returned"`
	NetOutstanding int `json:"net_outstanding"`
}

// RunningLedger walks txs in order and attaches the running outstanding
// balance to each row. The running value is not clamped; a negative value
// shows exactly where a history stops adding up.
func RunningLedger(txs []models.Transaction) []LedgerRow {
	rows := make([]LedgerRow, 0, len(txs))
	balance := 0
	for _, tx := range txs {
		switch tx.Type {
		case models.Udhar:
			balance += tx.GrandTotal
		case models.Jama:
			balance -= tx.GrandTotal
		}
		rows = append(rows, LedgerRow{Transaction: tx, Balance: balance})
	}
	return rows
}

func Totals(txs []models.Transaction) LedgerTotals {
	var t LedgerTotals
	for _, tx := range txs {
		switch tx.Type {
		case models.Udhar:
			t.TotalRented += tx.GrandTotal
		case models.Jama:
			t.TotalReturned += tx.GrandTotal
		}
	}
	t.NetOutstanding = t.TotalRented - t.TotalReturned
	return t
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
