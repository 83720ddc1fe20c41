package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"platerental/auth"
	"platerental/ledger"
	"platerental/repository"
)

type ApiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, resp ApiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func writeOK(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, ApiResponse{Success: true, Message: message, Data: data})
}

func writeFail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ApiResponse{Success: false, Message: message})
}

// writeError maps domain errors to a status code.
func writeError(w http.ResponseWriter, err error) {
	var verr *ledger.ValidationError
	switch {
	case errors.As(err, &verr):
		writeFail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrClientNotFound),
		errors.Is(err, repository.ErrChallanNotFound),
		errors.Is(err, ledger.ErrBillNotFound):
		writeFail(w, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrChallanExists),
		errors.Is(err, repository.ErrUserExists),
		errors.Is(err, ledger.ErrDuplicateBillNumber),
		errors.Is(err, ledger.ErrInvalidTransition):
		writeFail(w, http.StatusConflict, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeFail(w, http.StatusUnauthorized, err.Error())
	default:
		writeFail(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeFail(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return false
	}
	return true
}

func methodNotAllowed(w http.ResponseWriter) {
	writeFail(w, http.StatusMethodNotAllowed, "Invalid request method")
}

// queryID reads a positive int64 query parameter, writing a 400 when it is
// missing or malformed.
func queryID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		writeFail(w, http.StatusBadRequest, "missing "+name)
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeFail(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}
