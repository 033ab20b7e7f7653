package finance

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/internal/platform/httpx"
)

const movementHistoryLimit = 20

// Handler exposes the cashbox endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler builds a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// MountRoutes registers the finance routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/finance/cashbox", func(r chi.Router) {
		r.Get("/", h.balance)
		r.Post("/movements", h.record)
	})
}

func (h *Handler) balance(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Balance(r.Context(), movementHistoryLimit)
	if err != nil {
		h.logger.Error("cashbox balance", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}

func (h *Handler) record(w http.ResponseWriter, r *http.Request) {
	var req MovementRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	box, err := h.service.Record(r.Context(), req)
	if err != nil {
		h.logger.Error("cashbox movement", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, box)
}
