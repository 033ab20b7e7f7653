package expenses

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/internal/platform/httpx"
)

// Handler exposes the expense endpoints.
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

// MountRoutes registers the expense routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/expenses", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
		r.Put("/{id}/status", h.updateStatus)
	})
}

func (h *Handler) parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	req := ListExpensesRequest{
		Category: r.URL.Query().Get("category"),
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		st := Status(raw)
		if !st.Valid() {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "unknown expense status")
			return
		}
		req.Status = &st
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		req.Limit, _ = strconv.Atoi(raw)
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		req.Offset, _ = strconv.Atoi(raw)
	}

	list, total, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("list expenses", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"expenses": list, "total": total})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateExpenseRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	expense, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.logger.Error("create expense", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, expense)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid expense id")
		return
	}
	expense, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, expense)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid expense id")
		return
	}
	var req UpdateExpenseRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	expense, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.logger.Error("update expense", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, expense)
}

type statusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending paid"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid expense id")
		return
	}
	var req statusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	expense, err := h.service.UpdateStatus(r.Context(), id, Status(req.Status))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, expense)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid expense id")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
