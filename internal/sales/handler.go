package sales

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/internal/platform/httpx"
)

// Handler exposes order and quote endpoints.
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

// MountRoutes registers the sales routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.listOrders)
		r.Post("/", h.createOrder)
		r.Get("/{id}", h.getOrder)
		r.Put("/{id}", h.updateOrder)
		r.Delete("/{id}", h.deleteOrder)
		r.Put("/{id}/status", h.updateOrderStatus)
		r.Get("/{id}/receipt", h.orderReceipt)
	})
	r.Route("/quotes", func(r chi.Router) {
		r.Get("/", h.listQuotes)
		r.Post("/", h.createQuote)
		r.Get("/{id}", h.getQuote)
		r.Put("/{id}", h.updateQuote)
		r.Delete("/{id}", h.deleteQuote)
		r.Post("/{id}/convert", h.convertQuote)
		r.Get("/{id}/receipt", h.quoteReceipt)
	})
}

func (h *Handler) parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

func parseDate(raw string) time.Time {
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	req := ListOrdersRequest{
		DateFrom: parseDate(r.URL.Query().Get("date_from")),
		DateTo:   parseDate(r.URL.Query().Get("date_to")),
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		st := OrderStatus(raw)
		if !st.Valid() {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "unknown order status")
			return
		}
		req.Status = &st
	}
	if raw := r.URL.Query().Get("channel"); raw != "" {
		ch := Channel(raw)
		if !ch.Valid() {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "unknown channel")
			return
		}
		req.Channel = &ch
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		req.Limit, _ = strconv.Atoi(raw)
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		req.Offset, _ = strconv.Atoi(raw)
	}

	orders, total, err := h.service.ListOrders(r.Context(), req)
	if err != nil {
		h.logger.Error("list orders", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"orders": orders, "total": total})
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	order, err := h.service.CreateOrder(r.Context(), req)
	if err != nil {
		h.logger.Error("create order", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, order)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid order id")
		return
	}
	order, err := h.service.GetOrder(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

func (h *Handler) updateOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid order id")
		return
	}
	var req UpdateOrderRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	order, err := h.service.UpdateOrder(r.Context(), id, req)
	if err != nil {
		h.logger.Error("update order", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid order id")
		return
	}
	if err := h.service.DeleteOrder(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid order id")
		return
	}
	var req statusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	st := OrderStatus(req.Status)
	if !st.Valid() {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "unknown order status")
		return
	}

	order, err := h.service.UpdateOrderStatus(r.Context(), id, st)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

func (h *Handler) orderReceipt(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid order id")
		return
	}
	order, err := h.service.GetOrder(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, BuildOrderReceipt(order))
}

func (h *Handler) listQuotes(w http.ResponseWriter, r *http.Request) {
	req := ListQuotesRequest{
		DateFrom: parseDate(r.URL.Query().Get("date_from")),
		DateTo:   parseDate(r.URL.Query().Get("date_to")),
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		st := QuoteStatus(raw)
		if !st.Valid() {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "unknown quote status")
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

	quotes, total, err := h.service.ListQuotes(r.Context(), req)
	if err != nil {
		h.logger.Error("list quotes", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"quotes": quotes, "total": total})
}

func (h *Handler) createQuote(w http.ResponseWriter, r *http.Request) {
	var req CreateQuoteRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	quote, err := h.service.CreateQuote(r.Context(), req)
	if err != nil {
		h.logger.Error("create quote", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, quote)
}

func (h *Handler) getQuote(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid quote id")
		return
	}
	quote, err := h.service.GetQuote(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, quote)
}

func (h *Handler) updateQuote(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid quote id")
		return
	}
	var req UpdateQuoteRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	quote, err := h.service.UpdateQuote(r.Context(), id, req)
	if err != nil {
		h.logger.Error("update quote", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, quote)
}

func (h *Handler) deleteQuote(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid quote id")
		return
	}
	if err := h.service.DeleteQuote(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) convertQuote(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid quote id")
		return
	}
	var req ConvertQuoteRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	order, err := h.service.ConvertQuote(r.Context(), id, req)
	if err != nil {
		h.logger.Error("convert quote", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, order)
}

func (h *Handler) quoteReceipt(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid quote id")
		return
	}
	quote, err := h.service.GetQuote(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, BuildQuoteReceipt(quote))
}
