// ABOUTME: MCP tool definitions and registration for the risk prediction server
// ABOUTME: Defines JSON schemas for the prediction, scoring, and info tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/oralsmart/riskml/internal/artifacts"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, store *artifacts.Store, engine string) *Handlers {
	handlers := &Handlers{
		store:  store,
		engine: engine,
	}

	// 1. predict_risk - Classify a screening into a caries risk level
	server.AddTool(mcp.Tool{
		Name:        "predict_risk",
		Description: "Predict a child's caries risk level from dental and dietary screening data. Returns the risk level, class probabilities, and top contributing features.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"dental": map[string]interface{}{
					"type":        "object",
					"description": "Dental screening observation as JSON. Yes/no answers plus a teeth_data map of tooth status codes.",
				},
				"dietary": map[string]interface{}{
					"type":        "object",
					"description": "Dietary screening observation as JSON. Yes/no habit flags plus frequency and timing answers.",
				},
			},
		},
	}, handlers.PredictRisk)

	// 2. dmft_score - Compute a DMFT index from tooth status codes
	server.AddTool(mcp.Tool{
		Name:        "dmft_score",
		Description: "Compute the decayed/missing/filled teeth (DMFT) index from a map of tooth identifiers to status codes.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"teeth_data": map[string]interface{}{
					"type":        "object",
					"description": "Map from tooth identifier to status code (1/B decayed, 2/C filled, 3/4/D/E missing).",
				},
			},
			Required: []string{"teeth_data"},
		},
	}, handlers.DMFTScore)

	// 3. model_info - Describe the currently trained model
	server.AddTool(mcp.Tool{
		Name:        "model_info",
		Description: "Describe the currently trained model: accuracy, feature count, engine, and training metadata.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ModelInfo)

	return handlers
}
