package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/smartdrive/voicebot-backend/internal/service"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
	log          *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, log *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		log:          log,
	}
}

// Interpret handles POST /api/nlu
func (h *OrderHandler) Interpret(w http.ResponseWriter, r *http.Request) {
	var req NLURequest
	if err := decodeRequest(w, r, &req); err != nil {
		h.log.Warn("failed to decode nlu request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	result, err := h.orderService.Interpret(r.Context(), *req.Utterance)
	if err != nil {
		h.log.Error("failed to interpret utterance", "error", err)
		WriteError(w, http.StatusServiceUnavailable, "Order service unavailable", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, result, h.log)
}

// Submit handles POST /api/pos/order
func (h *OrderHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req OrderRequest
	if err := decodeRequest(w, r, &req); err != nil {
		h.log.Warn("failed to decode order request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	ticket, err := h.orderService.Submit(r.Context(), *req.Order)
	if err != nil {
		var rejection *service.RejectionError
		switch {
		case errors.As(err, &rejection):
			WriteErrors(w, http.StatusUnprocessableEntity, rejection.Violations.Strings(), h.log)
		case errors.Is(err, service.ErrStockUnavailable):
			h.log.Error("failed to submit order", "error", err)
			WriteError(w, http.StatusServiceUnavailable, "Order service unavailable", h.log)
		case errors.Is(err, service.ErrPOSFailure):
			h.log.Error("failed to submit order", "error", err)
			WriteError(w, http.StatusBadGateway, "Point of sale unavailable", h.log)
		default:
			h.log.Error("failed to submit order", "error", err)
			WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		}
		return
	}

	WriteJSON(w, http.StatusOK, ticket, h.log)
}
