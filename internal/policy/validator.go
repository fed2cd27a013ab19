// Package policy enforces the business rules an order must satisfy before it
// can reach the point of sale.
package policy

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/smartdrive/voicebot-backend/internal/models"
)

// Default limits
const (
	DefaultMaxQtyPerLine = 10
	DefaultMaxTotalItems = 30
)

// DefaultProfanity is the French list of abusive terms
var DefaultProfanity = []string{
	"connard", "conne", "fdp", "nique ta", "salope", "va te faire", "merde",
	"pute", "enculé", "encule", "ta gueule", "gros con",
}

var bigNumberRe = regexp.MustCompile(`\b(\d{3,})\b`)

// Limits bounds order quantities
type Limits struct {
	MaxQtyPerLine int
	MaxTotalItems int
}

// MenuIndex is the catalog view needed for validation
type MenuIndex interface {
	Has(sku string) bool
	RequiredOptions(sku string) []string
}

// StockView answers whether a SKU is currently out of stock
type StockView interface {
	IsUnavailable(sku string) bool
}

// Validator checks drafts against the configured limits. It holds no mutable state.
type Validator struct {
	limits    Limits
	profanity []string
}

// New creates a validator; zero limits fall back to the defaults
func New(limits Limits) *Validator {
	if limits.MaxQtyPerLine <= 0 {
		limits.MaxQtyPerLine = DefaultMaxQtyPerLine
	}
	if limits.MaxTotalItems <= 0 {
		limits.MaxTotalItems = DefaultMaxTotalItems
	}
	return &Validator{
		limits:    limits,
		profanity: DefaultProfanity,
	}
}

// AnalyzeUtteranceFlags raises advisory flags on the raw utterance
func (v *Validator) AnalyzeUtteranceFlags(utterance string) []Flag {
	return AnalyzeUtteranceFlags(utterance, v.limits.MaxQtyPerLine, v.profanity)
}

// Validate returns every hard violation of draft. Nothing passed in is modified.
func (v *Validator) Validate(draft models.OrderDraft, index MenuIndex, stock StockView) Violations {
	return Validate(draft, index, stock, v.limits)
}

// AnalyzeUtteranceFlags flags profanity and the first standalone number of three
// or more digits that exceeds maxQtyPerLine
func AnalyzeUtteranceFlags(utterance string, maxQtyPerLine int, profanity []string) []Flag {
	var flags []Flag
	u := strings.ToLower(utterance)

	for _, term := range profanity {
		if strings.Contains(u, term) {
			flags = append(flags, Flag{Kind: FlagAbuse})
			break
		}
	}

	for _, m := range bigNumberRe.FindAllStringSubmatch(u, -1) {
		n, err := strconv.Atoi(m[1])
		if errors.Is(err, strconv.ErrRange) {
			flags = append(flags, Flag{Kind: FlagQtyAbsurd, Value: math.MaxInt, Digits: m[1]})
			break
		}
		if err != nil {
			continue
		}
		if n > maxQtyPerLine {
			flags = append(flags, Flag{Kind: FlagQtyAbsurd, Value: n})
			break
		}
	}

	return flags
}

// Validate checks every line independently, accumulating violations, then the order total
func Validate(draft models.OrderDraft, index MenuIndex, stock StockView, limits Limits) Violations {
	var out Violations

	for _, l := range draft.Lines {
		sku := strings.ToUpper(l.SKU)
		if !index.Has(sku) {
			out = append(out, Violation{Kind: KindSKUUnknown, SKU: sku})
			continue
		}

		if l.Qty <= 0 {
			out = append(out, Violation{Kind: KindQtyInvalid, SKU: sku, Qty: l.Qty})
		}
		if l.Qty > limits.MaxQtyPerLine {
			out = append(out, Violation{Kind: KindQtyTooHigh, SKU: sku, Qty: l.Qty, Limit: limits.MaxQtyPerLine})
		}
		if stock != nil && stock.IsUnavailable(sku) {
			out = append(out, Violation{Kind: KindOutOfStock, SKU: sku})
		}

		for _, opt := range index.RequiredOptions(sku) {
			if strings.TrimSpace(l.Mods[opt]) == "" {
				out = append(out, Violation{Kind: KindClarifyOption, SKU: sku, Option: opt})
			}
		}
	}

	if total := draft.TotalItems(); total > limits.MaxTotalItems {
		out = append(out, Violation{Kind: KindTotalTooHigh, Total: total, Limit: limits.MaxTotalItems})
	}

	return out
}
