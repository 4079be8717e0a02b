package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

// Config holds all configuration for the application.
type Config struct {
	AppEnv string `koanf:"app_env"`

	// Source selects the dataset backend: "file" or "sqlite".
	Source string `koanf:"source"`

	// DatasetPath and OutputPath are used by the file source.
	DatasetPath string `koanf:"dataset_path"`
	OutputPath  string `koanf:"output_path"`

	// DBDriver and DBPath are used by the sqlite source.
	DBDriver string `koanf:"db_driver"`
	DBPath   string `koanf:"db_path"`

	// TaxonomyPath optionally replaces the embedded skill taxonomy.
	TaxonomyPath string `koanf:"taxonomy_path"`

	// RedisAddr enables result publishing when non-empty.
	RedisAddr string        `koanf:"redis_addr"`
	ResultTTL time.Duration `koanf:"result_ttl"`

	// MetricsPushURL enables a Pushgateway push after the run when non-empty.
	MetricsPushURL string `koanf:"metrics_push_url"`
}

func defaults() *Config {
	return &Config{
		AppEnv:      "development",
		Source:      "file",
		DatasetPath: "dataset.json",
		OutputPath:  "output_result.json",
		DBDriver:    "sqlite3",
		DBPath:      "./data/triage.db",
		ResultTTL:   24 * time.Hour,
	}
}

// Load builds a Config by layering defaults, an optional YAML file, and env
// vars. Order of precedence (low -> high):
//  1. defaults
//  2. file (YAML) if configPath or TRIAGE_CONFIG is set
//  3. env (prefix TRIAGE_)
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if configPath == "" {
		configPath = os.Getenv("TRIAGE_CONFIG")
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Environment variables: TRIAGE_DATASET_PATH -> dataset_path, ...
	envProvider := env.Provider("TRIAGE_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "triage_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := defaults()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	switch cfg.Source {
	case "file":
		if cfg.DatasetPath == "" || cfg.OutputPath == "" {
			return nil, errors.New("file source requires dataset_path and output_path")
		}
	case "sqlite":
		if cfg.DBPath == "" {
			return nil, errors.New("sqlite source requires db_path")
		}
	default:
		return nil, errors.New("source must be \"file\" or \"sqlite\"")
	}
	return cfg, nil
}

// NewLogger creates a new Zap logger based on the config.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	if cfg.AppEnv == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
