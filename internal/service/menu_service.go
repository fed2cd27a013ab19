package service

import (
	"context"
	"errors"
	"strings"

	"github.com/smartdrive/voicebot-backend/internal/models"
)

var ErrItemNotFound = errors.New("menu item not found")

// Catalog is the read-only menu view backing MenuService
type Catalog interface {
	Items() []models.MenuItem
	Item(sku string) (models.MenuItem, bool)
	Category(category string) []models.MenuItem
	Drinks() []string
}

// MenuService handles business logic for the menu catalog
type MenuService struct {
	catalog Catalog
}

// NewMenuService creates a new menu service
func NewMenuService(catalog Catalog) *MenuService {
	return &MenuService{
		catalog: catalog,
	}
}

// ListItems returns the catalog, restricted to category when one is given
func (s *MenuService) ListItems(ctx context.Context, category string) ([]models.MenuItem, error) {
	if category == "" {
		return s.catalog.Items(), nil
	}
	return s.catalog.Category(strings.ToLower(category)), nil
}

// GetItem returns an item by SKU
func (s *MenuService) GetItem(ctx context.Context, sku string) (*models.MenuItem, error) {
	item, ok := s.catalog.Item(strings.ToUpper(sku))
	if !ok {
		return nil, ErrItemNotFound
	}
	return &item, nil
}

// Drinks returns the drink names offered to customers
func (s *MenuService) Drinks(ctx context.Context) []string {
	return s.catalog.Drinks()
}
