// ABOUTME: MCP tool handler implementations for the risk prediction server
// ABOUTME: Contains handler implementations with proper error handling for all 3 tools
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/oralsmart/riskml/internal/artifacts"
	"github.com/oralsmart/riskml/internal/features"
	"github.com/oralsmart/riskml/internal/models"
	"github.com/oralsmart/riskml/internal/predictor"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	store  *artifacts.Store
	engine string
}

// PredictRisk handles the predict_risk tool
func (h *Handlers) PredictRisk(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]any)

	dental, err := decodeObservation[models.DentalObservation](args, "dental")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid dental observation: %v", err)), nil
	}
	dietary, err := decodeObservation[models.DietaryObservation](args, "dietary")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid dietary observation: %v", err)), nil
	}
	if dental == nil && dietary == nil {
		return mcp.NewToolResultError("at least one of dental or dietary is required"), nil
	}

	p, err := predictor.Load(h.store, h.engine)
	if err != nil {
		if errors.Is(err, predictor.ErrNotTrained) {
			return mcp.NewToolResultError("no trained model found; run riskml train first"), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("loading model: %v", err)), nil
	}

	pred, err := p.Predict(dental, dietary)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("prediction failed: %v", err)), nil
	}

	responseJSON, err := json.Marshal(pred.ToMap())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to serialize response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// DMFTScore handles the dmft_score tool
func (h *Handlers) DMFTScore(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]any)
	if !ok {
		return mcp.NewToolResultError("teeth_data argument is required"), nil
	}

	raw, ok := args["teeth_data"]
	if !ok {
		return mcp.NewToolResultError("teeth_data argument is required"), nil
	}
	rawMap, ok := raw.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("teeth_data must be an object of tooth status codes"), nil
	}

	teeth := make(map[string]string, len(rawMap))
	for tooth, status := range rawMap {
		teeth[tooth] = fmt.Sprintf("%v", status)
	}

	score := features.ScoreDMFT(teeth)
	responseJSON, err := json.Marshal(score)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to serialize response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// ModelInfo handles the model_info tool
func (h *Handlers) ModelInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := predictor.Load(h.store, h.engine)
	if err != nil {
		if errors.Is(err, predictor.ErrNotTrained) {
			return mcp.NewToolResultError("no trained model found; run riskml train first"), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("loading model: %v", err)), nil
	}

	meta := p.Metadata()
	response := map[string]interface{}{
		"run_id":           meta.RunID,
		"trained_at":       meta.TrainedAt,
		"model_type":       meta.ModelType,
		"engine":           meta.Engine,
		"feature_count":    meta.FeatureCount,
		"selection_method": meta.SelectionMethod,
		"train_accuracy":   meta.TrainAccuracy,
		"test_accuracy":    meta.TestAccuracy,
		"cv_mean":          meta.CVMean,
		"cv_std":           meta.CVStd,
		"samples":          meta.Samples,
		"feature_names":    p.FeatureNames(),
	}
	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to serialize response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// decodeObservation pulls an optional object argument into a typed observation.
func decodeObservation[T any](args map[string]any, key string) (*T, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return nil, nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var obs T
	if err := json.Unmarshal(data, &obs); err != nil {
		return nil, err
	}
	return &obs, nil
}
