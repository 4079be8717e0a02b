package mocks

import (
	"context"
	"errors"

	"github.com/godilite/ticket-triage/internal/engine"
	"github.com/godilite/ticket-triage/internal/repository/models"
)

// MockDatasetRepository is a mock implementation of the DatasetRepository
// interface for testing the engine service.
type MockDatasetRepository struct {
	ListAgentsFunc  func(ctx context.Context) ([]models.Agent, error)
	ListTicketsFunc func(ctx context.Context) ([]models.Ticket, error)
	SaveResultFunc  func(ctx context.Context, result engine.Result) error
}

// ListAgents implements the DatasetRepository interface.
func (m *MockDatasetRepository) ListAgents(ctx context.Context) ([]models.Agent, error) {
	if m.ListAgentsFunc != nil {
		return m.ListAgentsFunc(ctx)
	}
	return nil, errors.New("ListAgentsFunc not implemented")
}

// ListTickets implements the DatasetRepository interface.
func (m *MockDatasetRepository) ListTickets(ctx context.Context) ([]models.Ticket, error) {
	if m.ListTicketsFunc != nil {
		return m.ListTicketsFunc(ctx)
	}
	return nil, errors.New("ListTicketsFunc not implemented")
}

// SaveResult implements the DatasetRepository interface.
func (m *MockDatasetRepository) SaveResult(ctx context.Context, result engine.Result) error {
	if m.SaveResultFunc != nil {
		return m.SaveResultFunc(ctx, result)
	}
	return errors.New("SaveResultFunc not implemented")
}
