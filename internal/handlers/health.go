package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/smartdrive/voicebot-backend/internal/stock"
)

// menuCounter reports the size of the loaded catalog
type menuCounter interface {
	Len() int
}

// HealthHandler reports whether the catalog is loaded and the out-of-stock store answers
type HealthHandler struct {
	logger       *slog.Logger
	menu         menuCounter
	stock        stock.Store
	stockBackend string
}

// NewHealthHandler creates a new health handler. stockBackend names the store in reports.
func NewHealthHandler(logger *slog.Logger, menu menuCounter, store stock.Store, stockBackend string) *HealthHandler {
	return &HealthHandler{
		logger:       logger,
		menu:         menu,
		stock:        store,
		stockBackend: stockBackend,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status       string    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
	MenuItems    int       `json:"menu_items"`
	StockBackend string    `json:"stock_backend"`
	OutOfStock   int       `json:"out_of_stock"`
	StockError   string    `json:"stock_error,omitempty"`
}

// ServeHTTP handles GET /health. An empty catalog or an unreachable store answers 503.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:       "healthy",
		Timestamp:    time.Now().UTC(),
		MenuItems:    h.menu.Len(),
		StockBackend: h.stockBackend,
	}
	status := http.StatusOK

	snap, err := h.stock.Snapshot(r.Context())
	if err != nil {
		h.logger.Warn("health check: out-of-stock store unreachable", "backend", h.stockBackend, "error", err)
		resp.Status = "degraded"
		resp.StockError = err.Error()
		status = http.StatusServiceUnavailable
	} else {
		resp.OutOfStock = len(snap)
	}

	if resp.MenuItems == 0 {
		resp.Status = "degraded"
		status = http.StatusServiceUnavailable
	}

	WriteJSON(w, status, resp, h.logger)
}

// Ping handles liveness probes from the drive-through frontend
func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]bool{"ok": true}, h.logger)
}
