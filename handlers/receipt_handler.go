package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"platerental/ledger"
	"platerental/logger"
	"platerental/models"
	"platerental/repository"
	"platerental/utils"
)

type ReceiptRenderer interface {
	Render(ctx context.Context, data models.LedgerReceiptData, format utils.ReceiptFormat) ([]byte, error)
}

type ReceiptUploader interface {
	Upload(ctx context.Context, data []byte, key, contentType string) (string, error)
}

// ReceiptHandler exports a client ledger as PDF or PNG. Files are kept in
// SavePath and, when Uploader is set, also pushed to object storage.
type ReceiptHandler struct {
	Clients  repository.ClientRepository
	Bills    repository.BillRepository
	Ledger   *LedgerHandler
	Renderer ReceiptRenderer
	Uploader ReceiptUploader
	SavePath string
}

func (h *ReceiptHandler) LedgerReceipt(w http.ResponseWriter, r *http.Request) {
	clientID, ok := queryID(w, r, "client_id")
	if !ok {
		return
	}
	format, err := utils.ParseReceiptFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeFail(w, http.StatusBadRequest, err.Error())
		return
	}
	cutoff, ok := cutoffParam(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	client, err := h.Clients.GetClient(ctx, clientID)
	if err == nil && client == nil {
		err = repository.ErrClientNotFound
	}
	if err != nil {
		writeError(w, err)
		return
	}

	var bill *models.Bill
	if number := strings.TrimSpace(r.URL.Query().Get("bill_number")); number != "" {
		bill, err = h.Bills.GetBill(ctx, number)
		if err == nil && (bill == nil || bill.ClientID != clientID) {
			err = ledger.ErrBillNotFound
		}
		if err != nil {
			writeError(w, err)
			return
		}
	}

	txs, err := h.Ledger.transactions(ctx, clientID)
	if err != nil {
		writeError(w, err)
		return
	}
	now := time.Now()
	data := utils.BuildReceiptData(client, ledger.RunningLedger(txs), ledger.Totals(txs),
		h.Ledger.Accumulator.ComputeBalance(txs, cutoff), cutoff, bill, now)

	out, err := h.Renderer.Render(ctx, data, format)
	if err != nil {
		writeFail(w, http.StatusInternalServerError, "failed to render receipt: "+err.Error())
		return
	}

	saveDir := h.SavePath
	if saveDir == "" {
		saveDir = "./receipts"
	}
	filename, err := utils.SaveReceipt(saveDir, clientID, format, out, now)
	if err != nil {
		writeFail(w, http.StatusInternalServerError, "failed to save receipt: "+err.Error())
		return
	}

	resp := map[string]string{"file": filename}
	if h.Uploader != nil {
		url, err := h.Uploader.Upload(ctx, out, filename, format.ContentType())
		if err != nil {
			// the local copy is still there
			log := logger.WithComponent("receipt")
			log.Error().Err(err).Str("file", filename).Msg("receipt upload failed")
		} else {
			resp["url"] = url
		}
	}
	writeOK(w, http.StatusOK, "Receipt generated", resp)
}
