package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

var (
	ErrInvalidSKU      = errors.New("sku must be an uppercase token")
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

var skuPattern = regexp.MustCompile(`^[A-Z0-9_]+$`)

// Mods maps an option name to the chosen value.
// JSON booleans and numbers are accepted and stored in their text form.
type Mods map[string]string

// UnmarshalJSON implements json.Unmarshaler
func (m *Mods) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*m = nil
		return nil
	}
	mods := make(Mods, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case nil:
			mods[k] = ""
		case string:
			mods[k] = val
		case bool:
			mods[k] = strconv.FormatBool(val)
		case float64:
			mods[k] = strconv.FormatFloat(val, 'f', -1, 64)
		default:
			return fmt.Errorf("mod %q: unsupported value type %T", k, v)
		}
	}
	*m = mods
	return nil
}

// OrderLine represents a single item in an order draft
type OrderLine struct {
	SKU  string `json:"sku"`
	Qty  int    `json:"qty"`
	Mods Mods   `json:"mods"`
}

// NewOrderLine creates a line for sku, rejecting malformed SKUs and non-positive quantities
func NewOrderLine(sku string, qty int) (OrderLine, error) {
	if !skuPattern.MatchString(sku) {
		return OrderLine{}, fmt.Errorf("%w: %q", ErrInvalidSKU, sku)
	}
	if qty <= 0 {
		return OrderLine{}, fmt.Errorf("%w: %d", ErrInvalidQuantity, qty)
	}
	return OrderLine{SKU: sku, Qty: qty, Mods: Mods{}}, nil
}

// UnmarshalJSON defaults a missing quantity to 1
func (l *OrderLine) UnmarshalJSON(data []byte) error {
	type line OrderLine
	decoded := line{Qty: 1}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*l = OrderLine(decoded)
	return nil
}

// OrderDraft is the order produced from one customer turn
type OrderDraft struct {
	Lines []OrderLine `json:"lines"`
	Notes []string    `json:"notes"`
}

// NewOrderDraft returns an empty draft with non-nil slices
func NewOrderDraft() OrderDraft {
	return OrderDraft{
		Lines: []OrderLine{},
		Notes: []string{},
	}
}

// AddNote appends a note unless it is already present
func (d *OrderDraft) AddNote(note string) {
	if note == "" {
		return
	}
	for _, n := range d.Notes {
		if n == note {
			return
		}
	}
	d.Notes = append(d.Notes, note)
}

// TotalItems sums line quantities, counting non-positive quantities as zero.
// The sum saturates at math.MaxInt.
func (d OrderDraft) TotalItems() int {
	total := 0
	for _, l := range d.Lines {
		if l.Qty <= 0 {
			continue
		}
		if total > math.MaxInt-l.Qty {
			return math.MaxInt
		}
		total += l.Qty
	}
	return total
}

// Ticket is the confirmation returned by the point-of-sale system
type Ticket struct {
	TicketID string `json:"ticket_id"`
	Items    int    `json:"items"`
}
