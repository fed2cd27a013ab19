package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"strconv"
	"testing"

	"github.com/smartdrive/voicebot-backend/internal/brain"
	"github.com/smartdrive/voicebot-backend/internal/lexicon"
	"github.com/smartdrive/voicebot-backend/internal/menu"
	"github.com/smartdrive/voicebot-backend/internal/models"
	"github.com/smartdrive/voicebot-backend/internal/policy"
	"github.com/smartdrive/voicebot-backend/internal/pos"
	"github.com/smartdrive/voicebot-backend/internal/stock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStock struct{}

func (failingStock) Snapshot(ctx context.Context) (stock.Set, error) {
	return nil, errors.New("connection refused")
}

type brokenParser struct {
	Parser
}

func (brokenParser) Validate(models.OrderDraft) ([]string, error) {
	return nil, brain.ErrNoMenuIndex
}

type recordingPOS struct {
	calls int
	err   error
}

func (r *recordingPOS) CreateOrder(ctx context.Context, draft models.OrderDraft) (*models.Ticket, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return &models.Ticket{TicketID: "SIM-TEST", Items: draft.TotalItems()}, nil
}

type fixture struct {
	svc    *OrderService
	stock  *stock.MemoryStore
	pos    *recordingPOS
	parser *brain.Parser
	index  *menu.Index
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	idx, err := menu.Default()
	require.NoError(t, err)

	f := &fixture{
		stock:  stock.NewMemoryStore(),
		pos:    &recordingPOS{},
		parser: brain.New(idx, lexicon.Default()),
		index:  idx,
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	validator := policy.New(policy.Limits{MaxQtyPerLine: 10, MaxTotalItems: 30})
	f.svc = NewOrderService(f.parser, validator, idx, f.stock, f.pos, log)
	return f
}

func TestOrderService_Interpret(t *testing.T) {
	ctx := context.Background()

	t.Run("combo needs clarification", func(t *testing.T) {
		f := newFixture(t)

		res, err := f.svc.Interpret(ctx, "deux giant menu avec coca et sans oignons")
		require.NoError(t, err)

		require.Len(t, res.Order.Lines, 1)
		assert.Equal(t, []string{
			"POLICY_CLARIFY_OPTION:GIANT_MENU.size",
			"POLICY_CLARIFY_OPTION:GIANT_MENU.fries",
		}, res.Errors)
		for _, v := range res.Violations {
			assert.True(t, v.Recoverable())
		}
	})

	t.Run("absurd quantity raises note and error", func(t *testing.T) {
		f := newFixture(t)

		res, err := f.svc.Interpret(ctx, "999 giant")
		require.NoError(t, err)

		assert.Contains(t, res.Order.Notes, "QTY_ABSURD_999")
		assert.Contains(t, res.Errors, "POLICY_QTY_TOO_HIGH:GIANT:999 (max 10)")
		assert.Contains(t, res.Errors, "POLICY_TOTAL_TOO_HIGH:999 (max 30)")
	})

	t.Run("quantity beyond int range is still rejected", func(t *testing.T) {
		f := newFixture(t)

		res, err := f.svc.Interpret(ctx, "99999999999999999999 giant")
		require.NoError(t, err)

		assert.Contains(t, res.Order.Notes, "QTY_ABSURD_99999999999999999999")
		assert.Contains(t, res.Errors, "POLICY_QTY_TOO_HIGH:GIANT:"+strconv.Itoa(math.MaxInt)+" (max 10)")
		assert.True(t, res.Violations.Has(policy.KindTotalTooHigh))
	})

	t.Run("out of stock item", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.stock.MarkUnavailable(ctx, "salad_chicken")
		require.NoError(t, err)

		res, err := f.svc.Interpret(ctx, "une salade poulet et une eau")
		require.NoError(t, err)

		assert.Equal(t, []string{"POLICY_OOS:SALAD_CHICKEN"}, res.Errors)
	})

	t.Run("abuse flag is a note, not an error", func(t *testing.T) {
		f := newFixture(t)

		res, err := f.svc.Interpret(ctx, "un brownie, merde")
		require.NoError(t, err)

		assert.Contains(t, res.Order.Notes, "ABUSE_DETECTED")
		assert.Empty(t, res.Errors)
	})

	t.Run("soft validation failure is not fatal", func(t *testing.T) {
		f := newFixture(t)
		f.svc.parser = brokenParser{Parser: f.parser}

		res, err := f.svc.Interpret(ctx, "un brownie")
		require.NoError(t, err)
		assert.Empty(t, res.Errors)
	})

	t.Run("stock unavailable", func(t *testing.T) {
		f := newFixture(t)
		f.svc.stock = failingStock{}

		_, err := f.svc.Interpret(ctx, "un brownie")
		assert.ErrorIs(t, err, ErrStockUnavailable)
	})
}

func TestOrderService_Submit(t *testing.T) {
	ctx := context.Background()
	valid := models.OrderDraft{Lines: []models.OrderLine{
		{SKU: "GIANT_MENU", Qty: 2, Mods: models.Mods{"size": "XL", "drink": "Coca-Cola", "fries": "L"}},
		{SKU: "BROWNIE", Qty: 1},
	}}

	t.Run("valid order reaches the POS", func(t *testing.T) {
		f := newFixture(t)

		ticket, err := f.svc.Submit(ctx, valid)
		require.NoError(t, err)

		assert.Equal(t, 3, ticket.Items)
		assert.Equal(t, 1, f.pos.calls)
	})

	t.Run("hard errors block submission", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.stock.MarkUnavailable(ctx, "BROWNIE")
		require.NoError(t, err)

		_, err = f.svc.Submit(ctx, valid)

		require.ErrorIs(t, err, ErrOrderRejected)
		var rejection *RejectionError
		require.ErrorAs(t, err, &rejection)
		assert.Equal(t, []string{"POLICY_OOS:BROWNIE"}, rejection.Violations.Strings())
		assert.Zero(t, f.pos.calls)
	})

	t.Run("missing options block submission", func(t *testing.T) {
		f := newFixture(t)
		draft := models.OrderDraft{Lines: []models.OrderLine{{SKU: "KIDS_MENU", Qty: 1}}}

		_, err := f.svc.Submit(ctx, draft)

		var rejection *RejectionError
		require.ErrorAs(t, err, &rejection)
		assert.True(t, rejection.Violations.Has(policy.KindClarifyOption))
	})

	t.Run("pos failure is wrapped", func(t *testing.T) {
		f := newFixture(t)
		f.pos.err = errors.New("timeout")

		_, err := f.svc.Submit(ctx, valid)
		assert.ErrorIs(t, err, ErrPOSFailure)
	})

	t.Run("simulated adapter", func(t *testing.T) {
		f := newFixture(t)
		f.svc.pos = pos.NewSimulatedAdapter()

		ticket, err := f.svc.Submit(ctx, valid)
		require.NoError(t, err)
		assert.Contains(t, ticket.TicketID, pos.TicketPrefix)
	})
}

func TestMenuService(t *testing.T) {
	ctx := context.Background()
	idx, err := menu.Default()
	require.NoError(t, err)
	svc := NewMenuService(idx)

	all, err := svc.ListItems(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, idx.Len())

	desserts, err := svc.ListItems(ctx, "DESSERTS")
	require.NoError(t, err)
	for _, it := range desserts {
		assert.Equal(t, models.CategoryDesserts, it.Category)
	}

	item, err := svc.GetItem(ctx, "giant_menu")
	require.NoError(t, err)
	assert.Equal(t, "Giant Menu", item.Name)

	_, err = svc.GetItem(ctx, "PIZZA")
	assert.ErrorIs(t, err, ErrItemNotFound)

	assert.NotEmpty(t, svc.Drinks(ctx))
}

func TestDedupe(t *testing.T) {
	got := dedupe([]string{"A", "B", "A", "C", "B"})
	assert.Equal(t, []string{"A", "B", "C"}, got)
}
