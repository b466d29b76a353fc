// ABOUTME: Centralized configuration for the risk prediction toolkit
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/adrg/xdg"
)

// Config holds all configuration for the risk prediction pipeline
type Config struct {
	// Storage settings
	ModelsDir string
	DBPath    string

	// Training settings
	Engine string // auto, dense, or naive
	Seed   int64

	// Export settings
	MinDMFT       int
	RiskThreshold float64
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		ModelsDir:     getEnv("RISKML_MODELS_DIR", defaultModelsDir()),
		DBPath:        getEnv("RISKML_DB", defaultDBPath()),
		Engine:        getEnv("RISKML_ENGINE", "auto"),
		Seed:          getEnvInt64("RISKML_SEED", 42),
		MinDMFT:       getEnvInt("RISKML_MIN_DMFT", 0),
		RiskThreshold: getEnvFloat("RISKML_RISK_THRESHOLD", 0),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	switch c.Engine {
	case "auto", "dense", "naive":
	default:
		return fmt.Errorf("RISKML_ENGINE must be auto, dense, or naive, got %q", c.Engine)
	}
	if c.MinDMFT < 0 {
		return fmt.Errorf("RISKML_MIN_DMFT must be non-negative, got %d", c.MinDMFT)
	}
	if c.RiskThreshold < 0 {
		return fmt.Errorf("RISKML_RISK_THRESHOLD must be non-negative, got %f", c.RiskThreshold)
	}
	return nil
}

func dataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "riskml")
	}
	return filepath.Join(xdg.DataHome, "riskml")
}

func defaultModelsDir() string {
	return filepath.Join(dataDir(), "models")
}

func defaultDBPath() string {
	return filepath.Join(dataDir(), "screenings.db")
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvInt64(key string, defaultVal int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
