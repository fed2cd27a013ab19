package models

// Menu categories
const (
	CategoryMenus      = "menus"
	CategoryKids       = "kids"
	CategoryBurgers    = "burgers"
	CategorySalads     = "salads"
	CategoryFries      = "fries"
	CategoryFinger     = "finger"
	CategoryDesserts   = "desserts"
	CategoryColdDrinks = "cold_drinks"
	CategoryHotDrinks  = "hot_drinks"
)

// Option types
const (
	OptionEnum = "enum"
	OptionBool = "bool"
)

// Menu is a catalog snapshot as produced by the menu authoring tools
type Menu struct {
	Items []MenuItem `json:"items"`
}

// MenuItem represents a catalog entry available for order
type MenuItem struct {
	SKU      string                `json:"sku"`
	Name     string                `json:"name"`
	Category string                `json:"category"`
	Options  map[string]OptionSpec `json:"options,omitempty"`
}

// OptionSpec describes a customization an item accepts
type OptionSpec struct {
	Type    string   `json:"type"`
	Values  []string `json:"values,omitempty"`
	Default any      `json:"default,omitempty"`
}

// Allows reports whether value is one of the enumerated values of the option
func (o OptionSpec) Allows(value string) bool {
	for _, v := range o.Values {
		if v == value {
			return true
		}
	}
	return false
}

// Option returns the named option spec of the item
func (m MenuItem) Option(name string) (OptionSpec, bool) {
	spec, ok := m.Options[name]
	return spec, ok
}
