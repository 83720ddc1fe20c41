package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"platerental/handlers"
)

func TestWithCORS_Preflight(t *testing.T) {
	called := false
	h := withCORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/bills", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.False(t, called)
}

func TestHandle_MethodDispatch(t *testing.T) {
	mux := http.NewServeMux()
	handle(mux, "/ping", methods{http.MethodGet: func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}})

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/ping", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestByID(t *testing.T) {
	var got string
	h := byID("/bills/", func(w http.ResponseWriter, r *http.Request, id string) { got = id })

	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/bills/B-12", nil))
	assert.Equal(t, "B-12", got)

	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodGet, "/bills/", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSetupRoutes_Registers(t *testing.T) {
	mux := http.NewServeMux()
	SetupRoutes(mux, Handlers{
		User:    &handlers.UserHandler{},
		Client:  &handlers.ClientHandler{},
		Challan: &handlers.ChallanHandler{},
		Stock:   &handlers.StockHandler{},
		Ledger:  &handlers.LedgerHandler{},
		Bill:    &handlers.BillHandler{},
		Receipt: &handlers.ReceiptHandler{},
	})

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/ledger/balance", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
