package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/smartdrive/voicebot-backend/internal/models"
	"github.com/smartdrive/voicebot-backend/internal/policy"
	"github.com/smartdrive/voicebot-backend/internal/stock"
)

var (
	ErrOrderRejected    = errors.New("order rejected by policy")
	ErrStockUnavailable = errors.New("out-of-stock set unavailable")
	ErrPOSFailure       = errors.New("point of sale failure")
)

// RejectionError carries the violations that blocked a submission
type RejectionError struct {
	Violations policy.Violations
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("%s: %d violation(s)", ErrOrderRejected, len(e.Violations))
}

func (e *RejectionError) Unwrap() error {
	return ErrOrderRejected
}

// Parser turns utterances into drafts
type Parser interface {
	Parse(utterance string) models.OrderDraft
	Validate(draft models.OrderDraft) ([]string, error)
}

// PolicyValidator applies the order rules
type PolicyValidator interface {
	AnalyzeUtteranceFlags(utterance string) []policy.Flag
	Validate(draft models.OrderDraft, index policy.MenuIndex, stock policy.StockView) policy.Violations
}

// StockReader provides the current out-of-stock snapshot
type StockReader interface {
	Snapshot(ctx context.Context) (stock.Set, error)
}

// POSAdapter creates tickets
type POSAdapter interface {
	CreateOrder(ctx context.Context, draft models.OrderDraft) (*models.Ticket, error)
}

// Interpretation is the outcome of one customer turn
type Interpretation struct {
	Order      models.OrderDraft `json:"order"`
	Errors     []string          `json:"errors"`
	Violations policy.Violations `json:"-"`
}

// OrderService handles order business logic
type OrderService struct {
	parser    Parser
	validator PolicyValidator
	index     policy.MenuIndex
	stock     StockReader
	pos       POSAdapter
	log       *slog.Logger
}

// NewOrderService creates a new order service
func NewOrderService(parser Parser, validator PolicyValidator, index policy.MenuIndex, stock StockReader, pos POSAdapter, log *slog.Logger) *OrderService {
	return &OrderService{
		parser:    parser,
		validator: validator,
		index:     index,
		stock:     stock,
		pos:       pos,
		log:       log,
	}
}

// Interpret parses utterance into a draft and reports hard and soft errors
func (s *OrderService) Interpret(ctx context.Context, utterance string) (*Interpretation, error) {
	draft := s.parser.Parse(utterance)
	for _, f := range s.validator.AnalyzeUtteranceFlags(utterance) {
		draft.AddNote(f.String())
	}

	oos, err := s.stock.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStockUnavailable, err)
	}

	hard := s.validator.Validate(draft, s.index, oos)

	soft, err := s.parser.Validate(draft)
	if err != nil {
		s.log.Error("soft validation failed", "error", err)
		soft = nil
	}

	result := &Interpretation{
		Order:      draft,
		Errors:     dedupe(append(hard.Strings(), soft...)),
		Violations: hard,
	}

	s.log.Debug("utterance interpreted",
		"lines", len(draft.Lines),
		"notes", len(draft.Notes),
		"errors", len(result.Errors),
	)

	return result, nil
}

// Submit forwards draft to the POS when it has no hard violations
func (s *OrderService) Submit(ctx context.Context, draft models.OrderDraft) (*models.Ticket, error) {
	oos, err := s.stock.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStockUnavailable, err)
	}

	if violations := s.validator.Validate(draft, s.index, oos); len(violations) > 0 {
		s.log.Info("order rejected", "violations", violations.Strings())
		return nil, &RejectionError{Violations: violations}
	}

	ticket, err := s.pos.CreateOrder(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPOSFailure, err)
	}

	s.log.Info("order submitted", "ticket_id", ticket.TicketID, "items", ticket.Items)
	return ticket, nil
}

// dedupe removes repeated entries, keeping first occurrences
func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
