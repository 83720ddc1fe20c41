package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"platerental/ledger"
	"platerental/models"
	"platerental/repository"
)

// LedgerHandler serves the per-client ledger: aggregated transactions,
// balances and bill summaries. Everything is recomputed from challans on
// each request.
type LedgerHandler struct {
	Challans    repository.ChallanRepository
	Accumulator *ledger.Accumulator
	Calculator  *ledger.Calculator
}

func NewLedgerHandler(challans repository.ChallanRepository, r ledger.Reporter) *LedgerHandler {
	return &LedgerHandler{
		Challans:    challans,
		Accumulator: ledger.NewAccumulator(r),
		Calculator:  ledger.NewCalculator(r),
	}
}

func (h *LedgerHandler) transactions(ctx context.Context, clientID int64) ([]models.Transaction, error) {
	return ledger.LoadTransactions(ctx, h.Challans, clientID)
}

// cutoffParam reads ?cutoff=YYYY-MM-DD, defaulting to today.
func cutoffParam(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	raw := r.URL.Query().Get("cutoff")
	if raw == "" {
		return ledger.CalendarDay(time.Now()), true
	}
	t, err := ledger.ParseDate(raw)
	if err != nil {
		writeFail(w, http.StatusBadRequest, "invalid cutoff, expected YYYY-MM-DD")
		return time.Time{}, false
	}
	return t, true
}

type sizeBalanceView struct {
	Size models.Size `json:"size"`
	ledger.SizeBalance
}

func balanceView(b ledger.Balances) []sizeBalanceView {
	out := make([]sizeBalanceView, 0, models.NumSizes)
	for _, s := range models.AllSizes() {
		out = append(out, sizeBalanceView{Size: s, SizeBalance: b.Get(s)})
	}
	return out
}

func (h *LedgerHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	clientID, ok := queryID(w, r, "client_id")
	if !ok {
		return
	}
	txs, err := h.transactions(r.Context(), clientID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, http.StatusOK, "", map[string]interface{}{
		"rows":   ledger.RunningLedger(txs),
		"totals": ledger.Totals(txs),
	})
}

func (h *LedgerHandler) Balance(w http.ResponseWriter, r *http.Request) {
	clientID, ok := queryID(w, r, "client_id")
	if !ok {
		return
	}
	cutoff, ok := cutoffParam(w, r)
	if !ok {
		return
	}
	txs, err := h.transactions(r.Context(), clientID)
	if err != nil {
		writeError(w, err)
		return
	}

	bal := h.Accumulator.ComputeBalance(txs, cutoff)
	var earliest string
	if d := ledger.EarliestRelevantDate(txs); d != nil {
		earliest = ledger.FormatDate(*d)
	}
	writeOK(w, http.StatusOK, "", map[string]interface{}{
		"cutoff":        ledger.FormatDate(cutoff),
		"balances":      balanceView(bal),
		"total_pieces":  bal.TotalPieces(),
		"earliest_date": earliest,
	})
}

type summaryRequest struct {
	ClientID   int64                 `json:"client_id"`
	FromDate   string                `json:"from_date"`
	ToDate     string                `json:"to_date"`
	DailyRent  decimal.Decimal       `json:"daily_rent"`
	Pieces     *[models.NumSizes]int `json:"pieces,omitempty"`
	ExtraCosts []models.ExtraCost    `json:"extra_costs"`
	Discounts  []models.Discount     `json:"discounts"`
	Payments   []models.Payment      `json:"payments"`
}

// billingContext snapshots the client's balance as of the period end,
// unless the caller supplied per-size pieces.
func (h *LedgerHandler) billingContext(ctx context.Context, req summaryRequest) (ledger.BillingContext, error) {
	bc := ledger.BillingContext{
		FromDate:   req.FromDate,
		ToDate:     req.ToDate,
		DailyRent:  req.DailyRent,
		ExtraCosts: req.ExtraCosts,
		Discounts:  req.Discounts,
		Payments:   req.Payments,
	}
	switch cutoff, err := ledger.ParseDate(req.ToDate); {
	case req.Pieces != nil:
		bc.Pieces = *req.Pieces
	case err == nil && req.ClientID > 0:
		txs, err := h.transactions(ctx, req.ClientID)
		if err != nil {
			return bc, err
		}
		bc.Pieces = h.Accumulator.ComputeBalance(txs, cutoff).Pieces()
	}
	return bc, ledger.ValidateBillingContext(bc)
}

func (h *LedgerHandler) Summary(w http.ResponseWriter, r *http.Request) {
	var req summaryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	bc, err := h.billingContext(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, http.StatusOK, "", map[string]interface{}{
		"pieces":  bc.Pieces,
		"summary": h.Calculator.GetBillSummary(bc),
	})
}
