// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents like Claude to use risk prediction via stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/oralsmart/riskml/internal/artifacts"
	"github.com/oralsmart/riskml/internal/mcp"
)

var mcpModelsDir string

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs riskml as an MCP (Model Context Protocol) server, exposing
risk prediction, DMFT scoring, and model info tools via stdio.

Configure in Claude Desktop's config file to enable the tools.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by Claude Desktop)
  riskml mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "riskml": {
  #       "command": "riskml",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	cmd.Flags().StringVar(&mcpModelsDir, "models-dir", "", "Artifact directory (default from RISKML_MODELS_DIR)")

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if mcpModelsDir == "" {
		mcpModelsDir = cfg.ModelsDir
	}

	store := artifacts.NewStore(mcpModelsDir)
	if !store.Exists() && !quiet {
		log.Println("Warning: no trained model found; predict_risk and model_info will fail until riskml train runs")
	}

	server := mcpserver.NewMCPServer(
		"OralSmart Risk Prediction",
		versionInfo.Version,
	)
	mcp.RegisterTools(server, store, cfg.Engine)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("riskml MCP server starting on stdio...")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, shutting down")
		}
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
