package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/godilite/ticket-triage/internal/app"
	"github.com/godilite/ticket-triage/internal/config"
)

func main() {
	_ = godotenv.Load(".env")

	configPath := pflag.String("config", "", "Path to a YAML config file (overrides TRIAGE_CONFIG)")
	dataset := pflag.String("dataset", "", "Path to the JSON dataset file (file source)")
	output := pflag.String("output", "", "Path for the assignment output file (file source)")
	pushURL := pflag.String("push-url", "", "Pushgateway URL to push run metrics to")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *dataset != "" {
		cfg.DatasetPath = *dataset
	}
	if *output != "" {
		cfg.OutputPath = *output
	}
	if *pushURL != "" {
		cfg.MetricsPushURL = *pushURL
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	application, err := app.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize application", zap.Error(err))
	}

	result, err := application.Run(ctx)
	if err != nil {
		logger.Fatal("Allocation run failed", zap.Error(err))
	}

	logger.Info("Run finished",
		zap.String("run_id", result.RunID),
		zap.Int("assignments", len(result.Assignments)))
}
