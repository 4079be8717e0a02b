package engine

import (
	"context"

	"github.com/godilite/ticket-triage/internal/repository/models"
)

// DatasetRepository defines the interface for dataset sources consumed by the
// engine: a snapshot of the roster and ticket queue in, one result out.
type DatasetRepository interface {
	ListAgents(ctx context.Context) ([]models.Agent, error)
	ListTickets(ctx context.Context) ([]models.Ticket, error)
	SaveResult(ctx context.Context, result Result) error
}
