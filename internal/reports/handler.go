package reports

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/internal/platform/httpx"
)

// Handler exposes the report endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers the report routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Get("/general", h.general)
		r.Get("/filters", h.filters)
	})
}

func (h *Handler) general(w http.ResponseWriter, r *http.Request) {
	qv := r.URL.Query()
	q := Query{
		Segment:     qv.Get("segment"),
		Salesperson: qv.Get("salesperson"),
		City:        qv.Get("city"),
	}

	// Default window: the current month.
	now := time.Now().UTC()
	q.DateFrom = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	q.DateTo = q.DateFrom.AddDate(0, 1, 0)

	if raw := qv.Get("date_from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "date_from must be YYYY-MM-DD")
			return
		}
		q.DateFrom = t
	}
	if raw := qv.Get("date_to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "date_to must be YYYY-MM-DD")
			return
		}
		// Inclusive end date: the window runs to the end of that day.
		q.DateTo = t.AddDate(0, 0, 1)
	}

	report, err := h.service.Generate(r.Context(), q)
	if err != nil {
		h.logger.Error("generate report", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) filters(w http.ResponseWriter, r *http.Request) {
	opts, err := h.service.Filters(r.Context())
	if err != nil {
		h.logger.Error("report filters", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, opts)
}
