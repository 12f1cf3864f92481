package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"retail-bi/internal/dataset"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	// DataPath holds dataset snapshots. Logging resolves LOGS_FOLDER on its own.
	DataPath string

	// Snapshot names a dataset file under DataPath. Empty means generate.
	Snapshot  string
	Generator dataset.GeneratorConfig

	// DashboardYear selects the dashboard's monthly series; 0 means the latest year in the data.
	DashboardYear int

	HTTPAddr            string
	EnableMermaidCharts bool
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// The binary's directory wins, then the working directory.
	exeDir := ""
	if exePath, err := os.Executable(); err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	return FromEnv(exeDir)
}

// FromEnv builds the configuration from the process environment alone.
// baseDir is the fallback for DATA_PATH.
func FromEnv(baseDir string) (*AppConfig, error) {
	dataPath := getEnv("DATA_PATH", "")
	if dataPath == "" {
		dataPath = baseDir
	}
	if dataPath == "" {
		dataPath = "."
	}

	gen := dataset.DefaultGeneratorConfig()
	var err error
	if gen.Seed, err = getEnvInt64("DATASET_SEED", gen.Seed); err != nil {
		return nil, err
	}
	if v := getEnv("DATASET_START", ""); v != "" {
		start, err := time.Parse(dataset.DateLayout, v)
		if err != nil {
			return nil, fmt.Errorf("invalid DATASET_START %q: %w", v, err)
		}
		gen.Start = start
	}
	if gen.Days, err = getEnvInt("DATASET_DAYS", gen.Days); err != nil {
		return nil, err
	}
	if gen.Orders, err = getEnvInt("DATASET_ORDERS", gen.Orders); err != nil {
		return nil, err
	}
	if gen.InventoryRows, err = getEnvInt("DATASET_INVENTORY", gen.InventoryRows); err != nil {
		return nil, err
	}
	year, err := getEnvInt("DASHBOARD_YEAR", 0)
	if err != nil {
		return nil, err
	}

	return &AppConfig{
		DataPath:            dataPath,
		Snapshot:            getEnv("DATASET_SNAPSHOT", ""),
		Generator:           gen,
		DashboardYear:       year,
		HTTPAddr:            getEnv("HTTP_ADDR", ":8080"),
		EnableMermaidCharts: getEnvBool("ENABLE_MERMAID_CHARTS", false),
	}, nil
}

// OpenDataset loads the configured snapshot, or generates a dataset when none is set.
func (c *AppConfig) OpenDataset() (*dataset.Dataset, error) {
	var ds *dataset.Dataset
	if c.Snapshot != "" {
		loaded, err := dataset.Load(c.DataPath, c.Snapshot)
		if err != nil {
			return nil, err
		}
		ds = loaded
	} else {
		start := time.Now()
		ds = dataset.Generate(c.Generator)
		log.Info().
			Int64("seed", c.Generator.Seed).
			Int("orders", len(ds.Orders)).
			Int("inventory", len(ds.Inventory)).
			Dur("elapsed", time.Since(start)).
			Msg("Generated dataset")
	}

	if refs := ds.Dangling(); len(refs) > 0 {
		log.Warn().Int("count", len(refs)).Str("first", refs[0].String()).Msg("Dataset has unresolved references")
	}
	return ds, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}

func getEnvInt64(key string, fallback int64) (int64, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}
