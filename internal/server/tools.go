package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// renderProperties are the input properties shared by the tools that render text.
func renderProperties() map[string]interface{} {
	return map[string]interface{}{
		"text": map[string]interface{}{
			"type":        "string",
			"description": "Text to render",
		},
		"font_path": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to a TrueType or OpenType font. Defaults to Go Regular.",
		},
		"size": map[string]interface{}{
			"type":        "number",
			"description": "Font size in pixels",
			"default":     48,
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	layoutProps := renderProperties()
	layoutProps["show_index"] = map[string]interface{}{
		"type":        "boolean",
		"description": "Label each char box with its index",
		"default":     false,
	}
	layoutProps["box_color"] = map[string]interface{}{
		"type":        "string",
		"description": "Box outline color as hex (e.g. #FF000080)",
	}

	generateProps := renderProperties()
	generateProps["samples"] = map[string]interface{}{
		"type":        "array",
		"items":       map[string]interface{}{"type": "integer", "minimum": 0},
		"minItems":    3,
		"maxItems":    3,
		"description": "Char, text and background variants per stage. Defaults to the configured counts.",
	}
	generateProps["seed"] = map[string]interface{}{
		"type":        "integer",
		"description": "Random seed. Defaults to the configured seed.",
	}

	return []Tool{
		// Rendering
		{
			Name:        "synth_layout",
			Description: "Render a text and lay its glyphs out into one word image. Returns the char boxes and a PNG with the boxes drawn on.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": layoutProps,
				"required":   []string{"text"},
			},
		},
		{
			Name:        "synth_generate",
			Description: "Run the configured char, text and background stages over a rendered text and return the samples as base64 PNGs.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": generateProps,
				"required":   []string{"text"},
			},
		},

		// Background Scoring
		{
			Name:        "synth_background_distance",
			Description: "Score how distinguishable a foreground word image is from a background image. Backgrounds at or above the threshold are accepted.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"foreground": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the foreground image with a transparent background",
					},
					"background": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the background image",
					},
					"threshold": map[string]interface{}{
						"type":        "number",
						"description": "Acceptance threshold. Defaults to the configured threshold.",
					},
					"num_color": map[string]interface{}{
						"type":        "integer",
						"description": "Number of gray-level histogram bins. Defaults to the configured count.",
					},
					"reload": map[string]interface{}{
						"type":        "boolean",
						"description": "Decode both files again instead of using cached copies.",
					},
				},
				"required": []string{"foreground", "background"},
			},
		},

		// OCR
		{
			Name:        "synth_ocr",
			Description: "Read a sample image back with Tesseract. For files named like written samples the label and character accuracy are included.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"language": map[string]interface{}{
						"type":        "string",
						"description": "Tesseract language code",
						"default":     "eng",
					},
				},
				"required": []string{"path"},
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
