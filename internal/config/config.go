package config

import (
	"os"
	"strconv"

	"darksiren/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Catalog    CatalogConfig
	Cosmology  CosmologyConfig
	Simulation SimulationConfig
	Analysis   AnalysisConfig
	Database   DatabaseConfig
}

// CatalogConfig holds galaxy catalog input settings
type CatalogConfig struct {
	// File is the xlsx/csv catalog path; empty means a synthetic catalog.
	File string
	// SyntheticSize and SyntheticMaxZ shape the fallback evenly spaced
	// synthetic catalog used when no file is configured.
	SyntheticSize int
	SyntheticMaxZ float64
}

// CosmologyConfig holds the reference cosmology parameters
type CosmologyConfig struct {
	H0Ref  float64
	OmegaM float64
}

// SimulationConfig holds event simulation settings
type SimulationConfig struct {
	NDet        int
	SigmaDL     float64
	DLThreshold float64
	ZCutRate    float64
	Seed        int64
	PoolSize    int
}

// AnalysisConfig holds posterior analysis settings
type AnalysisConfig struct {
	H0Min          float64
	H0Max          float64
	H0Steps        int
	Variant        string
	NoVolumeWeight bool
	TH21Events     bool
}

// DatabaseConfig holds run persistence settings
type DatabaseConfig struct {
	// URL is the Postgres connection string; empty selects the in-memory
	// repository.
	URL string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Catalog: CatalogConfig{
			File:          getEnvOrDefault("CATALOG_FILE", ""),
			SyntheticSize: getEnvIntOrDefault("CATALOG_SYNTHETIC_SIZE", 50),
			SyntheticMaxZ: getEnvFloatOrDefault("CATALOG_SYNTHETIC_MAX_Z", 0.5),
		},
		Cosmology: CosmologyConfig{
			H0Ref:  getEnvFloatOrDefault("H0_REF", 70),
			OmegaM: getEnvFloatOrDefault("OMEGA_M", 0.25),
		},
		Simulation: SimulationConfig{
			NDet:        getEnvIntOrDefault("N_DET", 100),
			SigmaDL:     getEnvFloatOrDefault("SIGMA_DL", 0.1),
			DLThreshold: getEnvFloatOrDefault("DL_THR", 1000),
			ZCutRate:    getEnvFloatOrDefault("ZCUT_RATE", 0.5),
			Seed:        getEnvInt64OrDefault("SEED", 42),
			PoolSize:    getEnvIntOrDefault("POOL_SIZE", 0),
		},
		Analysis: AnalysisConfig{
			H0Min:          getEnvFloatOrDefault("H0_MIN", 50),
			H0Max:          getEnvFloatOrDefault("H0_MAX", 140),
			H0Steps:        getEnvIntOrDefault("H0_STEPS", 91),
			Variant:        getEnvOrDefault("VARIANT", "photo_redshift"),
			NoVolumeWeight: getEnvBoolOrDefault("NO_VOLUME_WEIGHT", false),
			TH21Events:     getEnvBoolOrDefault("TH21_EVENTS", false),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Cosmology.H0Ref <= 0 {
		return errors.ConfigInvalid("H0_REF must be positive")
	}
	if config.Cosmology.OmegaM < 0 || config.Cosmology.OmegaM > 1 {
		return errors.ConfigInvalid("OMEGA_M must lie in [0, 1]")
	}
	if config.Simulation.NDet <= 0 {
		return errors.ConfigInvalid("N_DET must be positive")
	}
	if config.Simulation.SigmaDL <= 0 {
		return errors.ConfigInvalid("SIGMA_DL must be positive")
	}
	if config.Simulation.DLThreshold <= 0 {
		return errors.ConfigInvalid("DL_THR must be positive")
	}
	if config.Analysis.H0Min <= 0 || config.Analysis.H0Max <= config.Analysis.H0Min {
		return errors.ConfigInvalid("H0 grid bounds must satisfy 0 < H0_MIN < H0_MAX")
	}
	if config.Analysis.H0Steps < 2 {
		return errors.ConfigInvalid("H0_STEPS must be at least 2")
	}
	if config.Catalog.File == "" && config.Catalog.SyntheticSize <= 0 {
		return errors.ConfigInvalid("CATALOG_SYNTHETIC_SIZE must be positive when no catalog file is set")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
