// ABOUTME: Shared utility functions for CLI commands
// ABOUTME: Config resolution, engine selection, and output formatting helpers
package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/joho/godotenv"

	"github.com/oralsmart/riskml/internal/config"
	"github.com/oralsmart/riskml/internal/neural"
)

// loadConfig loads .env then the environment-backed configuration.
func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	return cfg, nil
}

// pickEngine maps an engine name to a math engine. "auto" prefers dense.
func pickEngine(name string) (neural.Engine, error) {
	switch name {
	case "", "auto", "dense":
		return neural.NewDenseEngine(), nil
	case "naive":
		return neural.NewNaiveEngine(), nil
	default:
		return nil, fmt.Errorf("unknown engine %q (want auto, dense, or naive)", name)
	}
}

// jsonOutput reports whether --format selects JSON.
func jsonOutput() bool {
	return format == "json"
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}
