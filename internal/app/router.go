package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/internal/expenses"
	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/internal/finance"
	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/internal/masterdata/customers"
	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/internal/masterdata/products"
	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/internal/masterdata/salespeople"
	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/internal/masterdata/suppliers"
	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/internal/reports"
	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/internal/sales"
	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/internal/tenders"
	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger *slog.Logger
	Config *Config

	SalesHandler       *sales.Handler
	TendersHandler     *tenders.Handler
	ExpensesHandler    *expenses.Handler
	FinanceHandler     *finance.Handler
	ReportsHandler     *reports.Handler
	CustomersHandler   *customers.Handler
	ProductsHandler    *products.Handler
	SalespeopleHandler *salespeople.Handler
	SuppliersHandler   *suppliers.Handler
	JobsHandler        *jobs.Handler
}

// NewRouter constructs the chi.Router with the service defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(params.Config) {
		r.Use(mw)
	}
	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(api chi.Router) {
		params.SalesHandler.MountRoutes(api)
		params.TendersHandler.MountRoutes(api)
		params.ExpensesHandler.MountRoutes(api)
		params.FinanceHandler.MountRoutes(api)
		params.ReportsHandler.MountRoutes(api)
		params.CustomersHandler.MountRoutes(api)
		params.ProductsHandler.MountRoutes(api)
		params.SalespeopleHandler.MountRoutes(api)
		params.SuppliersHandler.MountRoutes(api)
		if params.JobsHandler != nil {
			api.Route("/jobs", params.JobsHandler.MountRoutes)
		}
	})

	return r
}
