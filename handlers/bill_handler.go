package handlers

import (
	"net/http"
	"strings"

	"platerental/ledger"
	"platerental/models"
	"platerental/repository"
)

type BillHandler struct {
	Saver  *ledger.Saver
	Repo   repository.BillRepository
	Ledger *LedgerHandler
}

type billRequest struct {
	summaryRequest
	BillNumber string `json:"bill_number"`
}

// SaveBill computes the summary server-side and stores the bill as generated.
func (h *BillHandler) SaveBill(w http.ResponseWriter, r *http.Request) {
	var req billRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	bc, err := h.Ledger.billingContext(r.Context(), req.summaryRequest)
	if err != nil {
		writeError(w, err)
		return
	}
	sum := h.Ledger.Calculator.GetBillSummary(bc)

	bill := &models.Bill{
		BillNumber:      strings.TrimSpace(req.BillNumber),
		ClientID:        req.ClientID,
		FromDate:        req.FromDate,
		ToDate:          req.ToDate,
		DailyRent:       req.DailyRent,
		Days:            sum.Days,
		TotalRent:       sum.TotalRent,
		TotalExtraCosts: sum.TotalExtraCosts,
		TotalDiscounts:  sum.TotalDiscounts,
		GrandTotal:      sum.GrandTotal,
		TotalPayments:   sum.TotalPayments,
		DuePayment:      sum.DuePayment,
	}

	res := h.Saver.SaveBill(r.Context(), bill, req.ExtraCosts, req.Discounts, req.Payments)
	switch {
	case res.Success:
		writeOK(w, http.StatusCreated, "Bill saved", res.Bill)
	case res.Error == ledger.ErrDuplicateBillNumber.Error():
		writeJSON(w, http.StatusConflict, ApiResponse{Message: res.Error, Data: res})
	case res.Step != "":
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Message: res.Error, Data: res})
	default:
		writeJSON(w, http.StatusBadRequest, ApiResponse{Message: res.Error, Data: res})
	}
}

func (h *BillHandler) CancelBill(w http.ResponseWriter, r *http.Request) {
	number := strings.TrimSpace(r.URL.Query().Get("bill_number"))
	if number == "" {
		writeFail(w, http.StatusBadRequest, "missing bill_number")
		return
	}
	if err := h.Saver.CancelBill(r.Context(), number); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, http.StatusOK, "Bill cancelled", nil)
}

func (h *BillHandler) GetBill(w http.ResponseWriter, r *http.Request, number string) {
	bill, err := h.Repo.GetBill(r.Context(), number)
	if err == nil && bill == nil {
		err = ledger.ErrBillNotFound
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, http.StatusOK, "", bill)
}

func (h *BillHandler) ListBills(w http.ResponseWriter, r *http.Request) {
	clientID, ok := queryID(w, r, "client_id")
	if !ok {
		return
	}
	bills, err := h.Repo.ListBills(r.Context(), clientID)
	if err != nil {
		writeError(w, err)
		return
	}
	if bills == nil {
		bills = []*models.Bill{}
	}
	writeOK(w, http.StatusOK, "", bills)
}
