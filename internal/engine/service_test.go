package engine_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/godilite/ticket-triage/internal/engine"
	"github.com/godilite/ticket-triage/internal/engine/mocks"
	"github.com/godilite/ticket-triage/internal/repository/models"
	"github.com/godilite/ticket-triage/internal/taxonomy"
)

func testAllocator(t *testing.T) *engine.Allocator {
	t.Helper()
	tax, err := taxonomy.New(
		map[string][]string{"Networking": {"router", "network"}},
		taxonomy.PriorityCues{Critical: []string{"outage"}},
	)
	require.NoError(t, err)
	return engine.NewAllocator(tax, zap.NewNop())
}

func TestNewService(t *testing.T) {
	t.Run("nil storage panics", func(t *testing.T) {
		assert.Panics(t, func() {
			engine.NewService(nil, testAllocator(t), zap.NewNop())
		})
	})

	t.Run("nil allocator panics", func(t *testing.T) {
		assert.Panics(t, func() {
			engine.NewService(&mocks.MockDatasetRepository{}, nil, zap.NewNop())
		})
	})

	t.Run("nil logger gets default", func(t *testing.T) {
		svc := engine.NewService(&mocks.MockDatasetRepository{}, testAllocator(t), nil)
		assert.NotNil(t, svc)
	})
}

func TestServiceRun(t *testing.T) {
	ctx := context.Background()

	agents := []models.Agent{
		{ID: "A1", Name: "Ada", Skills: map[string]float64{"Networking": 9}, ExperienceLevel: 5, Available: true},
		{ID: "A2", Name: "Ben", Skills: map[string]float64{"Networking": 2}, ExperienceLevel: 1, Available: true},
	}
	tickets := []models.Ticket{
		{ID: "T1", Title: "router outage"},
		{ID: "T2", Title: "network slow"},
	}

	t.Run("successful run saves and returns the result", func(t *testing.T) {
		var saved *engine.Result
		repo := &mocks.MockDatasetRepository{
			ListAgentsFunc: func(ctx context.Context) ([]models.Agent, error) {
				return agents, nil
			},
			ListTicketsFunc: func(ctx context.Context) ([]models.Ticket, error) {
				return tickets, nil
			},
			SaveResultFunc: func(ctx context.Context, result engine.Result) error {
				saved = &result
				return nil
			},
		}

		svc := engine.NewService(repo, testAllocator(t), zap.NewNop())
		result, err := svc.Run(ctx)

		require.NoError(t, err)
		assert.NotEmpty(t, result.RunID)
		assert.False(t, result.GeneratedAt.IsZero())
		assert.Len(t, result.Assignments, 2)

		total := 0
		for _, n := range result.Distribution {
			total += n
		}
		assert.Equal(t, 2, total)

		require.NotNil(t, saved)
		assert.Equal(t, result.RunID, saved.RunID)
	})

	t.Run("agent load failure", func(t *testing.T) {
		repo := &mocks.MockDatasetRepository{
			ListAgentsFunc: func(ctx context.Context) ([]models.Agent, error) {
				return nil, errors.New("disk on fire")
			},
			ListTicketsFunc: func(ctx context.Context) ([]models.Ticket, error) {
				return tickets, nil
			},
		}

		svc := engine.NewService(repo, testAllocator(t), zap.NewNop())
		_, err := svc.Run(ctx)

		assert.ErrorIs(t, err, engine.ErrStorageFailure)
		assert.Contains(t, err.Error(), "disk on fire")
	})

	t.Run("validation failure is not a storage failure", func(t *testing.T) {
		repo := &mocks.MockDatasetRepository{
			ListAgentsFunc: func(ctx context.Context) ([]models.Agent, error) {
				return nil, nil
			},
			ListTicketsFunc: func(ctx context.Context) ([]models.Ticket, error) {
				return tickets, nil
			},
		}

		svc := engine.NewService(repo, testAllocator(t), zap.NewNop())
		_, err := svc.Run(ctx)

		assert.ErrorIs(t, err, engine.ErrValidation)
		assert.NotErrorIs(t, err, engine.ErrStorageFailure)
	})

	t.Run("save failure surfaces", func(t *testing.T) {
		repo := &mocks.MockDatasetRepository{
			ListAgentsFunc: func(ctx context.Context) ([]models.Agent, error) {
				return agents, nil
			},
			ListTicketsFunc: func(ctx context.Context) ([]models.Ticket, error) {
				return tickets, nil
			},
			SaveResultFunc: func(ctx context.Context, result engine.Result) error {
				return errors.New("read-only filesystem")
			},
		}

		svc := engine.NewService(repo, testAllocator(t), zap.NewNop())
		_, err := svc.Run(ctx)

		assert.ErrorIs(t, err, engine.ErrStorageFailure)
	})

	t.Run("empty ticket set is a trivial success", func(t *testing.T) {
		repo := &mocks.MockDatasetRepository{
			ListAgentsFunc: func(ctx context.Context) ([]models.Agent, error) {
				return agents, nil
			},
			ListTicketsFunc: func(ctx context.Context) ([]models.Ticket, error) {
				return nil, nil
			},
			SaveResultFunc: func(ctx context.Context, result engine.Result) error {
				return nil
			},
		}

		svc := engine.NewService(repo, testAllocator(t), zap.NewNop())
		result, err := svc.Run(ctx)

		require.NoError(t, err)
		assert.Empty(t, result.Assignments)
	})
}
