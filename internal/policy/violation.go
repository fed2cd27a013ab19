package policy

import (
	"fmt"
	"strconv"
)

// Kind identifies a hard policy violation
type Kind string

const (
	KindSKUUnknown    Kind = "POLICY_SKU_UNKNOWN"
	KindQtyInvalid    Kind = "POLICY_QTY_INVALID"
	KindQtyTooHigh    Kind = "POLICY_QTY_TOO_HIGH"
	KindOutOfStock    Kind = "POLICY_OOS"
	KindClarifyOption Kind = "POLICY_CLARIFY_OPTION"
	KindTotalTooHigh  Kind = "POLICY_TOTAL_TOO_HIGH"
)

// Violation is a structured hard error. Only the fields relevant to its Kind are set.
type Violation struct {
	Kind   Kind
	SKU    string
	Option string
	Qty    int
	Total  int
	Limit  int
}

// String renders the wire form KIND:payload
func (v Violation) String() string {
	switch v.Kind {
	case KindQtyTooHigh:
		return fmt.Sprintf("%s:%s:%d (max %d)", v.Kind, v.SKU, v.Qty, v.Limit)
	case KindClarifyOption:
		return fmt.Sprintf("%s:%s.%s", v.Kind, v.SKU, v.Option)
	case KindTotalTooHigh:
		return fmt.Sprintf("%s:%d (max %d)", v.Kind, v.Total, v.Limit)
	default:
		return fmt.Sprintf("%s:%s", v.Kind, v.SKU)
	}
}

// Error implements error
func (v Violation) Error() string {
	return v.String()
}

// MarshalText encodes the violation in its wire form
func (v Violation) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Recoverable reports whether the customer can resolve the violation by answering a question
func (v Violation) Recoverable() bool {
	return v.Kind == KindClarifyOption
}

// Violations is the result of a validation pass
type Violations []Violation

// Strings returns the wire form of every violation
func (vs Violations) Strings() []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.String())
	}
	return out
}

// Has reports whether any violation is of kind k
func (vs Violations) Has(k Kind) bool {
	for _, v := range vs {
		if v.Kind == k {
			return true
		}
	}
	return false
}

// FlagKind identifies an advisory flag raised on the raw utterance
type FlagKind string

const (
	FlagAbuse     FlagKind = "ABUSE_DETECTED"
	FlagQtyAbsurd FlagKind = "QTY_ABSURD"
)

// Flag is an informational signal that never blocks submission
type Flag struct {
	Kind  FlagKind
	Value int
	// Digits holds the spoken number when it does not fit in Value
	Digits string
}

// String renders the note form of the flag
func (f Flag) String() string {
	if f.Kind != FlagQtyAbsurd {
		return string(f.Kind)
	}
	if f.Digits != "" {
		return string(f.Kind) + "_" + f.Digits
	}
	return string(f.Kind) + "_" + strconv.Itoa(f.Value)
}

// MarshalText encodes the flag as a note
func (f Flag) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}
