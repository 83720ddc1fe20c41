package handlers

import (
	"net/http"
	"strings"

	"platerental/ledger"
	"platerental/models"
	"platerental/repository"
)

type ChallanHandler struct {
	Repo repository.ChallanRepository
}

type challanRequest struct {
	ClientID      int64                  `json:"client_id"`
	Type          models.ChallanType     `json:"type"`
	ChallanNumber string                 `json:"challan_number"`
	Date          string                 `json:"date"`
	Site          string                 `json:"site"`
	Phone         string                 `json:"phone"`
	Driver        string                 `json:"driver"`
	Items         *models.ItemQuantities `json:"items"`
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func (req challanRequest) toRecord() (*models.ChallanRecord, error) {
	if req.ClientID <= 0 {
		return nil, &ledger.ValidationError{Field: "client_id", Reason: "is required"}
	}
	if !req.Type.Valid() {
		return nil, &ledger.ValidationError{Field: "type", Reason: "must be udhar or jama"}
	}
	if strings.TrimSpace(req.ChallanNumber) == "" {
		return nil, &ledger.ValidationError{Field: "challan_number", Reason: "is required"}
	}
	date, err := ledger.ParseDate(req.Date)
	if err != nil {
		return nil, &ledger.ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}
	if req.Items == nil {
		return nil, &ledger.ValidationError{Field: "items", Reason: "is required"}
	}
	return &models.ChallanRecord{
		Challan: models.Challan{
			ClientID:      req.ClientID,
			Type:          req.Type,
			ChallanNumber: strings.TrimSpace(req.ChallanNumber),
			Date:          &date,
			Site:          optional(req.Site),
			Phone:         optional(req.Phone),
			Driver:        optional(req.Driver),
		},
		Items: req.Items,
	}, nil
}

func (h *ChallanHandler) CreateChallan(w http.ResponseWriter, r *http.Request) {
	var req challanRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	rec, err := req.toRecord()
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Repo.CreateChallan(r.Context(), rec); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, http.StatusCreated, "Challan saved", ledger.ToTransaction(rec.Challan, rec.Items, rec.Type))
}

// ListChallans returns raw challans of one client, optionally of one type.
func (h *ChallanHandler) ListChallans(w http.ResponseWriter, r *http.Request) {
	clientID, ok := queryID(w, r, "client_id")
	if !ok {
		return
	}
	types := []models.ChallanType{models.Udhar, models.Jama}
	if t := models.ChallanType(r.URL.Query().Get("type")); t != "" {
		if !t.Valid() {
			writeFail(w, http.StatusBadRequest, "invalid type")
			return
		}
		types = []models.ChallanType{t}
	}

	out := []models.ChallanRecord{}
	for _, t := range types {
		list, err := h.Repo.ListChallans(r.Context(), clientID, t)
		if err != nil {
			writeError(w, err)
			return
		}
		out = append(out, list...)
	}
	writeOK(w, http.StatusOK, "", out)
}

func (h *ChallanHandler) DeleteChallan(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	t := models.ChallanType(q.Get("type"))
	number := strings.TrimSpace(q.Get("challan_number"))
	if !t.Valid() || number == "" {
		writeFail(w, http.StatusBadRequest, "type and challan_number are required")
		return
	}
	if err := h.Repo.DeleteChallan(r.Context(), t, number); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, http.StatusOK, "Challan deleted", nil)
}
