package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ironsheep/image-crop-mcp/internal/batch"
	"github.com/ironsheep/image-crop-mcp/internal/imaging"
	"github.com/ironsheep/image-crop-mcp/internal/metrics"
	"github.com/ironsheep/image-crop-mcp/internal/worker"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "crop_images", "get_image_info").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// paramsError marks a failure caused by the caller's arguments rather than
// by the image work itself. It maps to JSON-RPC -32602.
type paramsError struct {
	msg string
}

func (e *paramsError) Error() string { return e.msg }

func invalidParams(format string, args ...interface{}) error {
	return &paramsError{msg: fmt.Sprintf(format, args...)}
}

// toolNames bounds the metrics label set to tools that exist.
var toolNames = func() map[string]bool {
	names := make(map[string]bool)
	for _, t := range GetToolDefinitions() {
		names[t.Name] = true
	}
	return names
}()

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The tool runs on the worker pool, off the goroutine reading requests. The
// response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<result>"}]
//	}
//
// String results are passed through as-is; everything else is rendered as
// indented JSON. Argument problems return -32602, tool execution errors
// return -32000 with the error text as data.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	label := params.Name
	if !toolNames[label] {
		label = "unknown"
	}
	log := s.logger.With("tool", params.Name, "id", req.ID)

	start := time.Now()
	result, err := worker.Do(ctx, s.pool, params.Name, func() (interface{}, error) {
		return s.executeTool(log, params.Name, params.Arguments)
	})
	metrics.ObserveToolCall(label, start, err)

	if err != nil {
		var perr *paramsError
		if errors.As(err, &perr) {
			log.Warn("invalid tool arguments", "error", err)
			return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
		}

		var fault *worker.FaultError
		if errors.As(err, &fault) {
			log.Error("tool panicked", "error", err, "stack", string(fault.Stack))
		} else {
			log.Warn("tool call failed", "error", err, "duration", time.Since(start))
		}
		if params.Name != "crop_images" {
			metrics.ObserveError(imaging.ErrorKind(err))
		}
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}

	log.Debug("tool call finished", "duration", time.Since(start))
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": resultText(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(log *slog.Logger, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "crop_images":
		return s.handleCropImages(log, args)
	case "get_image_info":
		return s.handleGetImageInfo(args)
	case "get_preview_data":
		return s.handleGetPreviewData(args)
	case "get_crop_guide":
		return s.handleGetCropGuide(args)
	case "detect_margins":
		return s.handleDetectMargins(args)
	case "list_presets":
		return imaging.Presets(), nil
	default:
		return nil, invalidParams("unknown tool: %s", name)
	}
}

// decodeArgs unmarshals tool arguments. Missing arguments decode as an empty
// object.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return invalidParams("invalid arguments: %v", err)
	}
	return nil
}

// resolveSpec picks the crop to apply. A named preset wins over explicit
// settings; with neither, nothing is cropped.
func resolveSpec(settings *imaging.CropSpec, preset string) (imaging.CropSpec, error) {
	if preset != "" {
		p, ok := imaging.LookupPreset(preset)
		if !ok {
			return imaging.CropSpec{}, invalidParams("unknown preset: %q", preset)
		}
		return p.Settings, nil
	}
	if settings != nil {
		return *settings, nil
	}
	return imaging.CropSpec{}, nil
}

// resultText converts a tool result to the text content returned to clients.
func resultText(v interface{}) string {
	if str, ok := v.(string); ok {
		return str
	}
	return mustMarshalJSON(v)
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Crop ===

type cropImagesArgs struct {
	Paths     []string          `json:"paths"`
	Settings  *imaging.CropSpec `json:"settings"`
	Preset    string            `json:"preset"`
	OutputDir string            `json:"output_dir"`
}

func (s *Server) handleCropImages(log *slog.Logger, args json.RawMessage) (interface{}, error) {
	var a cropImagesArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Paths == nil {
		return nil, invalidParams("paths is required")
	}
	spec, err := resolveSpec(a.Settings, a.Preset)
	if err != nil {
		return nil, err
	}

	batchID := uuid.NewString()
	log = log.With("batch", batchID)
	log.Info("crop batch started", "files", len(a.Paths), "settings", spec, "output_dir", a.OutputDir)

	outcomes := batch.Crop(a.Paths, spec, batch.Options{
		OutputDir: a.OutputDir,
		Encode:    s.cfg.EncodeOptions(),
	})

	for _, o := range outcomes {
		metrics.ObserveCrop(o.Success, imaging.ErrorKind(o.Err))
		if !o.Success {
			log.Warn("crop failed", "input", o.InputPath, "error", o.Err)
		}
	}

	summary := batch.Summarize(outcomes)
	log.Info("crop batch finished", "succeeded", summary.Succeeded, "failed", summary.Failed)
	return outcomes, nil
}

// === Inspection ===

type imagePathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleGetImageInfo(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, invalidParams("path is required")
	}
	return imaging.Inspect(a.Path)
}

type previewArgs struct {
	Path     string            `json:"path"`
	Settings *imaging.CropSpec `json:"settings"`
	Preset   string            `json:"preset"`
	MaxSize  *uint32           `json:"max_size"`
}

func (s *Server) handleGetPreviewData(args json.RawMessage) (interface{}, error) {
	var a previewArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, invalidParams("path is required")
	}
	spec, err := resolveSpec(a.Settings, a.Preset)
	if err != nil {
		return nil, err
	}

	img, err := imaging.Load(a.Path)
	if err != nil {
		return nil, err
	}
	preview, err := imaging.RenderPreview(img, spec, s.previewSize(a.MaxSize))
	if err != nil {
		return nil, err
	}
	return preview.DataURI, nil
}

// previewSize returns the requested bound, or the configured default when
// the request omits it or passes zero.
func (s *Server) previewSize(requested *uint32) int {
	if requested != nil && *requested > 0 {
		return int(*requested)
	}
	return s.cfg.PreviewMaxSize
}

type cropGuideArgs struct {
	Path     string            `json:"path"`
	Settings *imaging.CropSpec `json:"settings"`
	Preset   string            `json:"preset"`
	MaxSize  *uint32           `json:"max_size"`
	Color    string            `json:"color"`
	Labels   *bool             `json:"labels"`
}

func (s *Server) handleGetCropGuide(args json.RawMessage) (interface{}, error) {
	var a cropGuideArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, invalidParams("path is required")
	}
	spec, err := resolveSpec(a.Settings, a.Preset)
	if err != nil {
		return nil, err
	}

	opts := imaging.GuideOptions{
		MaxSize: s.previewSize(a.MaxSize),
		Color:   a.Color,
		Labels:  a.Labels == nil || *a.Labels,
	}

	img, err := imaging.Load(a.Path)
	if err != nil {
		return nil, err
	}
	guide, err := imaging.RenderCropGuide(img, spec, opts)
	if err != nil {
		return nil, err
	}
	return guide.DataURI, nil
}

type detectMarginsArgs struct {
	Path         string  `json:"path"`
	Tolerance    float64 `json:"tolerance"`
	SmoothRadius float64 `json:"smooth_radius"`
}

func (s *Server) handleDetectMargins(args json.RawMessage) (interface{}, error) {
	var a detectMarginsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, invalidParams("path is required")
	}

	img, err := imaging.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.DetectMargins(img, imaging.MarginOptions{
		Tolerance:    a.Tolerance,
		SmoothRadius: a.SmoothRadius,
	}), nil
}
