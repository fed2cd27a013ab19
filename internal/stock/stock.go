// Package stock tracks which SKUs are temporarily unavailable.
package stock

import (
	"context"
	"errors"
	"sort"
	"strings"
)

var ErrEmptySKU = errors.New("sku is required")

// Store holds the process-wide out-of-stock set
type Store interface {
	MarkUnavailable(ctx context.Context, sku string) ([]string, error)
	MarkAvailable(ctx context.Context, sku string) ([]string, error)
	Snapshot(ctx context.Context) (Set, error)
}

// Set is an immutable snapshot of unavailable SKUs
type Set map[string]struct{}

// NewSet builds a set from normalized SKUs
func NewSet(skus ...string) Set {
	s := make(Set, len(skus))
	for _, sku := range skus {
		if n := Normalize(sku); n != "" {
			s[n] = struct{}{}
		}
	}
	return s
}

// IsUnavailable reports whether sku is out of stock
func (s Set) IsUnavailable(sku string) bool {
	_, ok := s[sku]
	return ok
}

// Sorted returns the SKUs in lexical order
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for sku := range s {
		out = append(out, sku)
	}
	sort.Strings(out)
	return out
}

// Normalize upper-cases and trims a SKU
func Normalize(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}
