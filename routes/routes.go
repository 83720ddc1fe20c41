package routes

import (
	"net/http"
	"strings"

	"platerental/handlers"
)

// CORS middleware
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight request
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type Handlers struct {
	User    *handlers.UserHandler
	Client  *handlers.ClientHandler
	Challan *handlers.ChallanHandler
	Stock   *handlers.StockHandler
	Ledger  *handlers.LedgerHandler
	Bill    *handlers.BillHandler
	Receipt *handlers.ReceiptHandler
}

// methods dispatches on the request method; anything else is a 405.
type methods map[string]http.HandlerFunc

func handle(mux *http.ServeMux, pattern string, m methods) {
	mux.Handle(pattern, withCORS(handlers.RecoverWrapper(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := m[r.Method]; ok {
			h(w, r)
			return
		}
		w.WriteHeader(http.StatusMethodNotAllowed)
	})))
}

// byID serves pattern-prefixed paths like /bills/{number}.
func byID(prefix string, fn func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, prefix)
		if id == "" || strings.Contains(id, "/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fn(w, r, id)
	}
}

func SetupRoutes(mux *http.ServeMux, h Handlers) {
	// User routes
	handle(mux, "/signup", methods{http.MethodPost: h.User.Signup})
	handle(mux, "/login", methods{http.MethodPost: h.User.Login})

	handle(mux, "/clients", methods{
		http.MethodPost: h.Client.CreateClient,
		http.MethodGet:  h.Client.ListClients,
	})
	handle(mux, "/clients/", methods{http.MethodGet: byID("/clients/", h.Client.GetClient)})

	handle(mux, "/challans", methods{
		http.MethodPost:   h.Challan.CreateChallan,
		http.MethodGet:    h.Challan.ListChallans,
		http.MethodDelete: h.Challan.DeleteChallan,
	})

	handle(mux, "/stock", methods{
		http.MethodGet: h.Stock.GetStock,
		http.MethodPut: h.Stock.SetStock,
	})

	// Ledger routes
	handle(mux, "/ledger/transactions", methods{http.MethodGet: h.Ledger.Transactions})
	handle(mux, "/ledger/balance", methods{http.MethodGet: h.Ledger.Balance})
	handle(mux, "/ledger/summary", methods{http.MethodPost: h.Ledger.Summary})
	handle(mux, "/ledger/receipt", methods{http.MethodGet: h.Receipt.LedgerReceipt})

	// Bill routes
	handle(mux, "/bills", methods{
		http.MethodPost: h.Bill.SaveBill,
		http.MethodGet:  h.Bill.ListBills,
	})
	handle(mux, "/bills/cancel", methods{http.MethodPost: h.Bill.CancelBill})
	handle(mux, "/bills/", methods{http.MethodGet: byID("/bills/", h.Bill.GetBill)})
}
