package menu

import (
	"sort"
	"strings"

	"github.com/smartdrive/voicebot-backend/internal/models"
)

// requiredOptionOrder lists the options that must be resolved before a line is valid, by priority
var requiredOptionOrder = []string{"size", "drink", "fries"}

const maxDrinkNames = 30

// Index provides read-only lookups over a menu snapshot.
// It is safe for concurrent use once built.
type Index struct {
	items           []models.MenuItem
	bySKU           map[string]models.MenuItem
	byName          map[string]models.MenuItem
	byCategory      map[string][]models.MenuItem
	requiredOptions map[string][]string
}

// Build indexes items by SKU, lowercased name and category.
// Items without a SKU are skipped.
func Build(items []models.MenuItem) *Index {
	idx := &Index{
		items:           make([]models.MenuItem, 0, len(items)),
		bySKU:           make(map[string]models.MenuItem, len(items)),
		byName:          make(map[string]models.MenuItem, len(items)),
		byCategory:      make(map[string][]models.MenuItem),
		requiredOptions: make(map[string][]string),
	}

	for _, it := range items {
		if it.SKU == "" {
			continue
		}
		idx.items = append(idx.items, it)
		idx.bySKU[it.SKU] = it
		idx.byName[strings.ToLower(it.Name)] = it
		idx.byCategory[it.Category] = append(idx.byCategory[it.Category], it)

		var req []string
		for _, opt := range requiredOptionOrder {
			if _, ok := it.Options[opt]; ok {
				req = append(req, opt)
			}
		}
		if len(req) > 0 {
			idx.requiredOptions[it.SKU] = req
		}
	}

	return idx
}

// Item returns the item with the given SKU
func (i *Index) Item(sku string) (models.MenuItem, bool) {
	it, ok := i.bySKU[sku]
	return it, ok
}

// Has reports whether sku exists in the catalog
func (i *Index) Has(sku string) bool {
	_, ok := i.bySKU[sku]
	return ok
}

// CategoryOf returns the category of sku, or "" when unknown
func (i *Index) CategoryOf(sku string) string {
	return i.bySKU[sku].Category
}

// ItemByName looks an item up by its case-insensitive display name
func (i *Index) ItemByName(name string) (models.MenuItem, bool) {
	it, ok := i.byName[strings.ToLower(name)]
	return it, ok
}

// Category returns the items of a category in catalog order
func (i *Index) Category(category string) []models.MenuItem {
	return append([]models.MenuItem(nil), i.byCategory[category]...)
}

// RequiredOptions returns the options that must be chosen for sku
func (i *Index) RequiredOptions(sku string) []string {
	return append([]string(nil), i.requiredOptions[sku]...)
}

// Items returns all indexed items in catalog order
func (i *Index) Items() []models.MenuItem {
	return append([]models.MenuItem(nil), i.items...)
}

// Len returns the number of indexed items
func (i *Index) Len() int {
	return len(i.items)
}

// Drinks returns the sorted, de-duplicated names of cold and hot drinks
func (i *Index) Drinks() []string {
	seen := make(map[string]bool)
	var names []string
	for _, cat := range []string{models.CategoryColdDrinks, models.CategoryHotDrinks} {
		for _, it := range i.byCategory[cat] {
			if it.Name == "" || seen[it.Name] {
				continue
			}
			seen[it.Name] = true
			names = append(names, it.Name)
		}
	}
	sort.Strings(names)
	if len(names) > maxDrinkNames {
		names = names[:maxDrinkNames]
	}
	return names
}
