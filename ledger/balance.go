package ledger

import (
	"time"

	"platerental/models"
)

// SizeBalance is the outstanding count of one size held by a client.
type SizeBalance struct {
	Main     int `json:"main"`
	Borrowed int `json:"borrowed"`
	Total    int `json:"total"`
}

// Balances is indexed by Size-1.
type Balances [models.NumSizes]SizeBalance

func (b Balances) Get(s models.Size) SizeBalance {
	if !s.Valid() {
		return SizeBalance{}
	}
	return b[s-1]
}

// Pieces returns the per-size totals, the snapshot billing works from.
func (b Balances) Pieces() [models.NumSizes]int {
	var out [models.NumSizes]int
	for i := range b {
		out[i] = b[i].Total
	}
	return out
}

func (b Balances) TotalPieces() int {
	n := 0
	for i := range b {
		n += b[i].Total
	}
	return n
}

// Accumulator replays a client's transactions into per-size balances.
type Accumulator struct {
	Reporter Reporter
}

func NewAccumulator(r Reporter) *Accumulator {
	return &Accumulator{Reporter: orNop(r)}
}

// ComputeBalance replays every transaction dated on or before cutoff.
// Order does not matter. Undated transactions and transactions without an
// item row are skipped and reported. Running sums may dip below zero;
// only the final values are clamped, and each clamp is reported.
func (a *Accumulator) ComputeBalance(txs []models.Transaction, cutoff time.Time) Balances {
	rep := orNop(a.Reporter)
	cut := CalendarDay(cutoff)

	var main, borrowed [models.NumSizes]int
	for _, tx := range txs {
		if !tx.HasDate() {
			rep.Report(AnomalyMissingDate, txFields(tx))
			continue
		}
		if !tx.HasItems {
			rep.Report(AnomalyMissingItems, txFields(tx))
			continue
		}
		if CalendarDay(tx.Date).After(cut) {
			continue
		}

		sign := 0
		switch tx.Type {
		case models.Udhar:
			sign = 1
		case models.Jama:
			sign = -1
		default:
			continue
		}
		for _, s := range models.AllSizes() {
			q := tx.Items.Get(s)
			main[s-1] += sign * q.Qty
			borrowed[s-1] += sign * q.Borrowed
		}
	}

	var out Balances
	for _, s := range models.AllSizes() {
		m, br := main[s-1], borrowed[s-1]
		if m < 0 || br < 0 {
			rep.Report(AnomalyNegativeBalance, map[string]interface{}{
				"size":     int(s),
				"main":     m,
				"borrowed": br,
				"cutoff":   FormatDate(cut),
			})
		}
		m, br = max(m, 0), max(br, 0)
		out[s-1] = SizeBalance{Main: m, Borrowed: br, Total: m + br}
	}
	return out
}

// EarliestRelevantDate returns the earliest dated udhar transaction's date,
// or nil when there is none.
func EarliestRelevantDate(txs []models.Transaction) *time.Time {
	var earliest *time.Time
	for _, tx := range txs {
		if tx.Type != models.Udhar || !tx.HasDate() {
			continue
		}
		d := CalendarDay(tx.Date)
		if earliest == nil || d.Before(*earliest) {
			earliest = &d
		}
	}
	return earliest
}

func txFields(tx models.Transaction) map[string]interface{} {
	return map[string]interface{}{
		"type":           string(tx.Type),
		"challan_number": tx.ChallanNumber,
		"client_id":      tx.ClientID,
	}
}
