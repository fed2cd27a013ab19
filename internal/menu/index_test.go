package menu

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smartdrive/voicebot-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	items := []models.MenuItem{
		{
			SKU:      "GIANT_MENU",
			Name:     "Giant Menu",
			Category: models.CategoryMenus,
			Options: map[string]models.OptionSpec{
				"fries": {Type: models.OptionEnum, Values: []string{"M", "L"}},
				"drink": {Type: models.OptionEnum, Values: []string{"Eau"}},
				"size":  {Type: models.OptionEnum, Values: []string{"M", "L", "XL"}},
			},
		},
		{
			SKU:      "KIDS_MENU",
			Name:     "Menu Kids",
			Category: models.CategoryKids,
			Options: map[string]models.OptionSpec{
				"toy":   {Type: models.OptionBool, Default: true},
				"drink": {Type: models.OptionEnum, Values: []string{"Eau"}},
			},
		},
		{SKU: "", Name: "Menus", Category: models.CategoryMenus},
		{SKU: "BROWNIE", Name: "Brownie", Category: models.CategoryDesserts},
		{SKU: "SUNDAE", Name: "Sundae", Category: models.CategoryDesserts},
	}

	idx := Build(items)

	t.Run("items without sku are skipped", func(t *testing.T) {
		assert.Equal(t, 4, idx.Len())
		_, ok := idx.ItemByName("menus")
		assert.False(t, ok)
	})

	t.Run("required options follow fixed priority", func(t *testing.T) {
		assert.Equal(t, []string{"size", "drink", "fries"}, idx.RequiredOptions("GIANT_MENU"))
		assert.Equal(t, []string{"drink"}, idx.RequiredOptions("KIDS_MENU"))
		assert.Empty(t, idx.RequiredOptions("BROWNIE"))
	})

	t.Run("every required sku is indexed", func(t *testing.T) {
		for sku := range idx.requiredOptions {
			assert.True(t, idx.Has(sku), sku)
		}
	})

	t.Run("lookup by name is case insensitive", func(t *testing.T) {
		it, ok := idx.ItemByName("GIANT menu")
		require.True(t, ok)
		assert.Equal(t, "GIANT_MENU", it.SKU)
	})

	t.Run("category keeps catalog order", func(t *testing.T) {
		desserts := idx.Category(models.CategoryDesserts)
		require.Len(t, desserts, 2)
		assert.Equal(t, "BROWNIE", desserts[0].SKU)
		assert.Equal(t, "SUNDAE", desserts[1].SKU)
		assert.Equal(t, models.CategoryDesserts, idx.CategoryOf("SUNDAE"))
		assert.Equal(t, "", idx.CategoryOf("NOPE"))
	})

	t.Run("returned slices are copies", func(t *testing.T) {
		req := idx.RequiredOptions("GIANT_MENU")
		req[0] = "mutated"
		assert.Equal(t, "size", idx.RequiredOptions("GIANT_MENU")[0])
	})
}

func TestDefault(t *testing.T) {
	idx, err := Default()
	require.NoError(t, err)

	for _, sku := range []string{"GIANT", "GIANT_MENU", "WATER", "COKE_M", "FANTA", "FRIES_M", "SALAD_CHICKEN", "BROWNIE"} {
		assert.True(t, idx.Has(sku), "default catalog should contain %s", sku)
	}
	assert.Equal(t, []string{"size", "drink", "fries"}, idx.RequiredOptions("GIANT_MENU"))
	assert.Contains(t, idx.Drinks(), "Coca-Cola")
	assert.Contains(t, idx.Drinks(), "Café")
	assert.IsIncreasing(t, idx.Drinks())
}

func TestLoad(t *testing.T) {
	t.Run("invalid json", func(t *testing.T) {
		_, err := Load(strings.NewReader("{not json"))
		assert.Error(t, err)
	})

	t.Run("from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "menu.json")
		body := `{"items":[{"sku":"WATER","name":"Eau","category":"cold_drinks"}]}`
		require.NoError(t, os.WriteFile(path, []byte(body), 0644))

		idx, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"Eau"}, idx.Drinks())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile("/non/existent/menu.json")
		assert.Error(t, err)
	})
}
