package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/smartdrive/voicebot-backend/internal/models"
	"github.com/smartdrive/voicebot-backend/internal/service"
)

// MenuHandler handles menu-related HTTP requests
type MenuHandler struct {
	service *service.MenuService
	logger  *slog.Logger
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(service *service.MenuService, logger *slog.Logger) *MenuHandler {
	return &MenuHandler{
		service: service,
		logger:  logger,
	}
}

// ListItems handles GET /api/menu
// Accepts an optional ?category= filter
func (h *MenuHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListItems(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		h.logger.Error("failed to list menu items", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}
	if items == nil {
		items = []models.MenuItem{}
	}

	WriteJSON(w, http.StatusOK, items, h.logger)
}

// GetItem handles GET /api/menu/{sku}
func (h *MenuHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	sku := chi.URLParam(r, "sku")
	if sku == "" {
		WriteError(w, http.StatusBadRequest, "Invalid SKU supplied", h.logger)
		return
	}

	item, err := h.service.GetItem(r.Context(), sku)
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			h.logger.Info("menu item not found", "sku", sku)
			WriteError(w, http.StatusNotFound, "Item not found", h.logger)
			return
		}

		h.logger.Error("failed to get menu item", "sku", sku, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, item, h.logger)
}

// Drinks handles GET /api/menu/drinks
func (h *MenuHandler) Drinks(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"drinks": h.service.Drinks(r.Context()),
	}, h.logger)
}
