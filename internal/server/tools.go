package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// cropSettingsSchema describes a CropSpec argument.
func cropSettingsSchema(description string) map[string]interface{} {
	margin := func(edge string) map[string]interface{} {
		return map[string]interface{}{
			"type":        "integer",
			"minimum":     0,
			"description": "Pixels to remove from the " + edge + " edge",
		}
	}
	return map[string]interface{}{
		"type":        "object",
		"description": description,
		"properties": map[string]interface{}{
			"top":    margin("top"),
			"bottom": margin("bottom"),
			"left":   margin("left"),
			"right":  margin("right"),
		},
	}
}

func presetSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Name of a built-in preset (see list_presets). Takes precedence over settings.",
	}
}

func pathSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name: "crop_images",
			Description: "Crop the same pixel margins from every image in paths and write each result as <name>_cropped.<ext>. " +
				"Files are processed independently; one failure does not stop the rest. Returns one outcome per input, in order.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"paths": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Absolute paths of the images to crop",
					},
					"settings": cropSettingsSchema("Margins to remove. Defaults to all zeros."),
					"preset":   presetSchema(),
					"output_dir": map[string]interface{}{
						"type":        "string",
						"description": "Directory for the cropped files. Created if missing. Defaults to each input's directory.",
					},
				},
				"required": []string{"paths"},
			},
		},
		{
			Name:        "get_image_info",
			Description: "Decode an image and return its width, height, format, color depth, alpha and file size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathSchema(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name: "get_preview_data",
			Description: "Apply crop margins to an image in memory, shrink it to fit max_size, and return it as a " +
				"data:image/png;base64 URI. Nothing is written to disk.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":     pathSchema(),
					"settings": cropSettingsSchema("Margins to remove before previewing. Defaults to all zeros."),
					"preset":   presetSchema(),
					"max_size": map[string]interface{}{
						"type":        "integer",
						"minimum":     0,
						"description": "Longest side of the preview in pixels. Smaller images are not enlarged. Default 600",
						"default":     600,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name: "get_crop_guide",
			Description: "Render the full image with the crop drawn on top: removed margins are shaded and the kept region is outlined. " +
				"Returned as a data:image/png;base64 URI. Use it to check settings before running crop_images.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":     pathSchema(),
					"settings": cropSettingsSchema("Margins to visualize. Defaults to all zeros."),
					"preset":   presetSchema(),
					"max_size": map[string]interface{}{
						"type":        "integer",
						"minimum":     0,
						"description": "Longest side of the rendered guide in pixels. Default 600",
						"default":     600,
					},
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Outline color as hex (#RRGGBB or #RRGGBBAA). Default #FF0000",
						"default":     "#FF0000",
					},
					"labels": map[string]interface{}{
						"type":        "boolean",
						"description": "Print each margin's pixel count inside its band. Default true",
						"default":     true,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name: "detect_margins",
			Description: "Suggest crop settings by finding uniform borders (letterbox or pillarbox bars) on each edge. " +
				"The result can be passed as settings to crop_images or get_preview_data.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathSchema(),
					"tolerance": map[string]interface{}{
						"type":        "number",
						"description": "Maximum CIE-Lab distance from the edge color that still counts as border. Default 0.05",
						"default":     0.05,
					},
					"smooth_radius": map[string]interface{}{
						"type":        "number",
						"description": "Box blur radius applied before scanning, for noisy captures. Default 0 (off)",
						"default":     0,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "list_presets",
			Description: "List the built-in crop presets with the capture size each was made for.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
