package handlers

import (
	"net/http"

	"platerental/models"
	"platerental/repository"
)

type StockHandler struct {
	Repo repository.StockRepository
}

func (h *StockHandler) GetStock(w http.ResponseWriter, r *http.Request) {
	levels, err := h.Repo.GetStock(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, http.StatusOK, "", levels)
}

// SetStock takes a list of {size, total} and updates each owned total.
func (h *StockHandler) SetStock(w http.ResponseWriter, r *http.Request) {
	var req []struct {
		Size  models.Size `json:"size"`
		Total int         `json:"total"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	for _, s := range req {
		if !s.Size.Valid() || s.Total < 0 {
			writeFail(w, http.StatusBadRequest, "size must be 1-9 and total not negative")
			return
		}
	}
	for _, s := range req {
		if err := h.Repo.SetStockTotal(r.Context(), s.Size, s.Total); err != nil {
			writeError(w, err)
			return
		}
	}
	h.GetStock(w, r)
}
