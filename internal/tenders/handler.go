package tenders

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/internal/platform/httpx"
)

// Handler exposes tender participation endpoints.
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

// MountRoutes registers the tender routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/tenders", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
		r.Put("/{id}/status", h.updateStatus)
		r.Post("/{id}/events", h.addEvent)
		r.Put("/{id}/events/{eventID}/status", h.updateEventStatus)
		r.Delete("/{id}/events/{eventID}", h.removeEvent)
	})
}

func (h *Handler) parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	req := ListTendersRequest{
		City: r.URL.Query().Get("city"),
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		st := Status(raw)
		if !st.Valid() {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "unknown tender status")
			return
		}
		req.Status = &st
	}
	if raw := r.URL.Query().Get("date_from"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			req.DateFrom = t
		}
	}
	if raw := r.URL.Query().Get("date_to"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			req.DateTo = t
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		req.Limit, _ = strconv.Atoi(raw)
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		req.Offset, _ = strconv.Atoi(raw)
	}

	tenders, total, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("list tenders", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"tenders": tenders, "total": total})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateTenderRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	tender, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.logger.Error("create tender", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, tender)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid tender id")
		return
	}
	tender, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, tender)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid tender id")
		return
	}
	var req UpdateTenderRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	tender, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.logger.Error("update tender", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, tender)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid tender id")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid tender id")
		return
	}
	var req statusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	st := Status(req.Status)
	if !st.Valid() {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "unknown tender status")
		return
	}

	tender, err := h.service.UpdateStatus(r.Context(), id, st)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, tender)
}

func (h *Handler) addEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid tender id")
		return
	}
	var req AddEventRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	tender, err := h.service.AddEvent(r.Context(), id, req)
	if err != nil {
		h.logger.Error("add tender event", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, tender)
}

func (h *Handler) updateEventStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid tender id")
		return
	}
	eventID := chi.URLParam(r, "eventID")
	var req statusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}

	tender, err := h.service.UpdateEventStatus(r.Context(), id, eventID, EventStatus(req.Status))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, tender)
}

func (h *Handler) removeEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid tender id")
		return
	}
	eventID := chi.URLParam(r, "eventID")

	tender, err := h.service.RemoveEvent(r.Context(), id, eventID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, tender)
}
