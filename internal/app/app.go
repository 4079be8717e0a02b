package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/prometheus/client_golang/prometheus/push"
	"go.uber.org/zap"

	"github.com/godilite/ticket-triage/internal/config"
	"github.com/godilite/ticket-triage/internal/engine"
	"github.com/godilite/ticket-triage/internal/metrics"
	"github.com/godilite/ticket-triage/internal/repository"
	"github.com/godilite/ticket-triage/internal/taxonomy"
	"github.com/godilite/ticket-triage/pkg/cache"
	dbbuilder "github.com/godilite/ticket-triage/pkg/database"
)

const pushJobName = "ticket_triage"

// App wires the dataset source, the triage engine, and the optional result
// publishing sinks for a single one-shot run.
type App struct {
	cfg     *config.Config
	logger  *zap.Logger
	dbPool  *sql.DB
	cache   *cache.Cache
	service *engine.Service
}

func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	tax, err := loadTaxonomy(cfg)
	if err != nil {
		return nil, fmt.Errorf("taxonomy init failed: %w", err)
	}
	logger.Info("Taxonomy loaded", zap.Int("categories", len(tax.Categories())))

	a := &App{cfg: cfg, logger: logger}

	var repo engine.DatasetRepository
	switch cfg.Source {
	case "sqlite":
		dbPool, err := dbbuilder.New(
			dbbuilder.WithDriver(cfg.DBDriver),
			dbbuilder.WithDataSource(cfg.DBPath),
		)
		if err != nil {
			return nil, fmt.Errorf("database init failed: %w", err)
		}
		logger.Info("Database pool initialized", zap.String("path", cfg.DBPath))

		sqliteRepo := repository.NewSQLiteDatasetRepository(dbPool)
		if err := sqliteRepo.EnsureSchema(ctx); err != nil {
			dbPool.Close()
			return nil, err
		}
		a.dbPool = dbPool
		repo = sqliteRepo
	default:
		repo = repository.NewFileDatasetRepository(cfg.DatasetPath, cfg.OutputPath)
		logger.Info("File dataset source initialized",
			zap.String("dataset", cfg.DatasetPath),
			zap.String("output", cfg.OutputPath))
	}

	if cfg.RedisAddr != "" {
		cacheClient, err := cache.New(ctx, cache.WithAddress(cfg.RedisAddr))
		if err != nil {
			a.close()
			return nil, fmt.Errorf("cache init failed: %w", err)
		}
		logger.Info("Cache client initialized", zap.String("addr", cfg.RedisAddr))
		a.cache = cacheClient
	}

	allocator := engine.NewAllocator(tax, logger.Named("allocator"))
	a.service = engine.NewService(repo, allocator, logger.Named("engine"))
	return a, nil
}

func loadTaxonomy(cfg *config.Config) (*taxonomy.Taxonomy, error) {
	if cfg.TaxonomyPath != "" {
		return taxonomy.LoadFile(cfg.TaxonomyPath)
	}
	return taxonomy.Default()
}

// Run executes one allocation pass and publishes the result to the
// configured sinks. The returned result covers every input ticket.
func (a *App) Run(ctx context.Context) (engine.Result, error) {
	defer a.close()

	result, err := a.service.Run(ctx)
	if err != nil {
		return engine.Result{}, err
	}

	if a.cache != nil {
		if err := a.cache.Set(ctx, "triage:run:"+result.RunID, result, a.cfg.ResultTTL); err != nil {
			a.logger.Error("result publish failed", zap.Error(err))
		}
		if err := a.cache.Set(ctx, "triage:latest", result, a.cfg.ResultTTL); err != nil {
			a.logger.Error("latest-run publish failed", zap.Error(err))
		}
	}

	if a.cfg.MetricsPushURL != "" {
		if err := push.New(a.cfg.MetricsPushURL, pushJobName).Gatherer(metrics.Registry).Push(); err != nil {
			a.logger.Error("metrics push failed", zap.Error(err))
		}
	}

	return result, nil
}

func (a *App) close() {
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Error("cache shutdown error", zap.Error(err))
		}
		a.cache = nil
	}
	if a.dbPool != nil {
		if err := a.dbPool.Close(); err != nil {
			a.logger.Error("database shutdown error", zap.Error(err))
		}
		a.dbPool = nil
	}
}
