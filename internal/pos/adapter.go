// Package pos forwards validated orders to the point-of-sale system.
package pos

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/smartdrive/voicebot-backend/internal/models"
)

// TicketPrefix marks tickets issued by the simulated adapter
const TicketPrefix = "SIM-"

// Adapter creates tickets on the point of sale
type Adapter interface {
	CreateOrder(ctx context.Context, draft models.OrderDraft) (*models.Ticket, error)
}

// SimulatedAdapter stands in for the restaurant's POS write API
type SimulatedAdapter struct{}

// NewSimulatedAdapter creates a simulated adapter
func NewSimulatedAdapter() *SimulatedAdapter {
	return &SimulatedAdapter{}
}

// CreateOrder issues a ticket for draft
func (a *SimulatedAdapter) CreateOrder(ctx context.Context, draft models.OrderDraft) (*models.Ticket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &models.Ticket{
		TicketID: generateTicketID(),
		Items:    draft.TotalItems(),
	}, nil
}

// generateTicketID generates a short unique ticket ID using UUID
func generateTicketID() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return TicketPrefix + id[:12]
}
