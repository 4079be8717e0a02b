package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/godilite/ticket-triage/internal/metrics"
	"github.com/godilite/ticket-triage/internal/repository/models"
)

const loadTimeout = 5 * time.Second

// ErrStorageFailure wraps dataset source errors.
var ErrStorageFailure = errors.New("storage failure")

// Service runs the full triage pass: load the snapshot, allocate every
// ticket, persist the result.
type Service struct {
	storage   DatasetRepository
	allocator *Allocator
	logger    *zap.Logger
}

// NewService creates a new triage Service instance.
func NewService(storage DatasetRepository, allocator *Allocator, logger *zap.Logger) *Service {
	if storage == nil {
		panic("storage must not be nil")
	}
	if allocator == nil {
		panic("allocator must not be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		storage:   storage,
		allocator: allocator,
		logger:    logger,
	}
}

// Run executes one allocation over the current snapshot and saves the result.
// Agents and tickets are fetched concurrently; the allocation itself is a
// single sequential pass.
func (s *Service) Run(ctx context.Context) (Result, error) {
	loadCtx, cancel := context.WithTimeout(ctx, loadTimeout)
	defer cancel()

	var (
		agents  []models.Agent
		tickets []models.Ticket
	)
	g, gctx := errgroup.WithContext(loadCtx)
	g.Go(func() error {
		var err error
		agents, err = s.storage.ListAgents(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		tickets, err = s.storage.ListTickets(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	started := time.Now()
	assignments, err := s.allocator.Assign(agents, tickets)
	if err != nil {
		return Result{}, err
	}
	metrics.AllocatorDurationSeconds.Observe(time.Since(started).Seconds())

	metrics.ResetRunGauges()
	metrics.TicketsProcessed.Set(float64(len(assignments)))
	metrics.AgentsInRoster.Set(float64(len(agents)))
	for _, a := range assignments {
		metrics.AssignmentsByPriority.WithLabelValues(fmt.Sprint(a.Priority)).Inc()
		metrics.AssignmentScores.Observe(a.Score.TotalScore)
		if a.Score.SkillScore == 0 {
			metrics.GeneralistFallbacksTotal.Inc()
		}
	}

	result := BuildResult(uuid.NewString(), time.Now(), assignments)

	if err := s.storage.SaveResult(ctx, result); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	s.logger.Info("allocation run complete",
		zap.String("run_id", result.RunID),
		zap.Int("tickets", len(assignments)),
		zap.Int("agents", len(agents)),
		zap.Any("distribution", result.Distribution))

	return result, nil
}
