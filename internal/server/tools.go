package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

// pixelSourceProperties are shared by every tool that resolves pixels.
func pixelSourceProperties() map[string]interface{} {
	return map[string]interface{}{
		"image":  pathProperty("Absolute path to the image file"),
		"colors": pathProperty("Absolute path to the color definition file (.json, .toml, .yaml, optionally .zst). Omit to use the built-in CSS color names"),
		"lenient": map[string]interface{}{
			"type":        "boolean",
			"description": "Skip color entries that fail to decode instead of failing. Default false",
			"default":     false,
		},
	}
}

func withProperties(base map[string]interface{}, extra map[string]interface{}) map[string]interface{} {
	for k, v := range extra {
		base[k] = v
	}
	return base
}

func coordinateProperties() map[string]interface{} {
	return map[string]interface{}{
		"x": map[string]interface{}{
			"type":        "integer",
			"description": "X coordinate (0-based, column)",
			"minimum":     0,
		},
		"y": map[string]interface{}{
			"type":        "integer",
			"description": "Y coordinate (0-based, row)",
			"minimum":     0,
		},
	}
}

func formatProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"enum":        []string{"rgb", "hex"},
		"description": "Output as [r,g,b] arrays or \"0xRRGGBB\" strings. Default rgb",
		"default":     "rgb",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and file size. The decoded image is cached for subsequent operations.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_evict",
			Description: "Release a cached image and the pixel lookups bound to it. Without a path, every cached image is released. Color definition files stay cached.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Path of the image to release, as given to earlier calls"),
				},
			},
		},

		// Pixel Resolution
		{
			Name:        "pixel_lookup",
			Description: "Resolve the pixel at (x, y) to its RGBA sample and color name. Colors missing from the registry resolve to \"UNKNOWN\".",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": withProperties(pixelSourceProperties(), coordinateProperties()),
				"required":   []string{"image", "x", "y"},
			},
		},
		{
			Name:        "pixel_hash",
			Description: "Return the stable 64-bit content hash (XXH64 of x, y, r, g, b, a) of the pixel at (x, y). The color name does not affect the hash.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": withProperties(pixelSourceProperties(), coordinateProperties()),
				"required":   []string{"image", "x", "y"},
			},
		},
		{
			Name:        "pixel_scan",
			Description: "Resolve every pixel in row-major order (row 0 left to right, then row 1, ...). Use limit to cap the result and unknown_only to list only unnamed pixels.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(pixelSourceProperties(), map[string]interface{}{
					"limit": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum number of pixels to return. Default 1000, 0 means no limit",
						"default":     1000,
						"minimum":     0,
					},
					"unknown_only": map[string]interface{}{
						"type":        "boolean",
						"description": "Only return pixels whose color is not in the registry. Default false",
						"default":     false,
					},
				}),
				"required": []string{"image"},
			},
		},

		// Registry Queries
		{
			Name:        "registry_colors",
			Description: "List every color defined in a color registry after duplicate resolution.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"colors": pathProperty("Absolute path to the color definition file. Omit to use the built-in CSS color names"),
					"format": formatProperty(),
					"lenient": map[string]interface{}{
						"type":        "boolean",
						"description": "Skip entries that fail to decode. Default false",
						"default":     false,
					},
				},
			},
		},
		{
			Name:        "registry_names",
			Description: "List every color name defined in a color registry after duplicate resolution.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"colors": pathProperty("Absolute path to the color definition file. Omit to use the built-in CSS color names"),
					"lenient": map[string]interface{}{
						"type":        "boolean",
						"description": "Skip entries that fail to decode. Default false",
						"default":     false,
					},
				},
			},
		},

		// Image Color Analysis
		{
			Name:        "image_unique_colors",
			Description: "List the distinct RGB values present in an image, in channel order. Pixels that differ only in alpha count once.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image":  pathProperty("Absolute path to the image file"),
					"format": formatProperty(),
				},
				"required": []string{"image"},
			},
		},
		{
			Name:        "image_color_census",
			Description: "Count every distinct RGBA sample in an image, most frequent first.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image": pathProperty("Absolute path to the image file"),
					"limit": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum number of colors to return. Default 10, 0 means no limit",
						"default":     10,
						"minimum":     0,
					},
				},
				"required": []string{"image"},
			},
		},
		{
			Name:        "image_coverage",
			Description: "Count how many pixels resolve to each color name, UNKNOWN included, most common first.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": pixelSourceProperties(),
				"required":   []string{"image"},
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
