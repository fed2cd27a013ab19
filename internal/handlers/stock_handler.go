package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/smartdrive/voicebot-backend/internal/stock"
)

// StockHandler handles HTTP requests for out-of-stock administration
type StockHandler struct {
	store stock.Store
	log   *slog.Logger
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(store stock.Store, log *slog.Logger) *StockHandler {
	return &StockHandler{
		store: store,
		log:   log,
	}
}

type stockResponse struct {
	OK  bool     `json:"ok"`
	OOS []string `json:"oos"`
}

// List handles GET /api/oos
func (h *StockHandler) List(w http.ResponseWriter, r *http.Request) {
	snap, err := h.store.Snapshot(r.Context())
	if err != nil {
		h.log.Error("failed to read out-of-stock set", "error", err)
		WriteError(w, http.StatusServiceUnavailable, "Stock service unavailable", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, stockResponse{OK: true, OOS: snap.Sorted()}, h.log)
}

// MarkUnavailable handles POST /api/oos/{sku}
func (h *StockHandler) MarkUnavailable(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, h.store.MarkUnavailable, "sku marked unavailable")
}

// MarkAvailable handles DELETE /api/oos/{sku}
func (h *StockHandler) MarkAvailable(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, h.store.MarkAvailable, "sku marked available")
}

func (h *StockHandler) update(w http.ResponseWriter, r *http.Request, op func(context.Context, string) ([]string, error), msg string) {
	sku := chi.URLParam(r, "sku")

	oos, err := op(r.Context(), sku)
	if err != nil {
		if errors.Is(err, stock.ErrEmptySKU) {
			WriteError(w, http.StatusBadRequest, "Invalid SKU supplied", h.log)
			return
		}
		h.log.Error("failed to update out-of-stock set", "sku", sku, "error", err)
		WriteError(w, http.StatusServiceUnavailable, "Stock service unavailable", h.log)
		return
	}

	h.log.Info(msg, "sku", stock.Normalize(sku))
	WriteJSON(w, http.StatusOK, stockResponse{OK: true, OOS: oos}, h.log)
}
