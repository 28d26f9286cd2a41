package server

import (
	"encoding/json"
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	if len(tools) == 0 {
		t.Fatal("GetToolDefinitions returned empty slice")
	}

	expectedTools := []string{
		"image_load",
		"image_dimensions",
		"image_evict",
		"pixel_lookup",
		"pixel_hash",
		"pixel_scan",
		"registry_colors",
		"registry_names",
		"image_unique_colors",
		"image_color_census",
		"image_coverage",
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		if _, dup := toolMap[tool.Name]; dup {
			t.Errorf("Tool %s defined twice", tool.Name)
		}
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
	if len(tools) != len(expectedTools) {
		t.Errorf("tool count: got %d, want %d", len(tools), len(expectedTools))
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	tools := GetToolDefinitions()

	for _, tool := range tools {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}

			schema := tool.InputSchema
			if schema["type"] != "object" {
				t.Errorf("schema type: got %v, want object", schema["type"])
			}

			props, ok := schema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("schema properties should be a map")
			}

			// Every required field must be a declared property.
			if required, ok := schema["required"].([]string); ok {
				for _, r := range required {
					if _, ok := props[r]; !ok {
						t.Errorf("required field %s is not a property", r)
					}
				}
			}
		})
	}
}

func TestToolDefinitions_Executable(t *testing.T) {
	s := New(nil)

	// Every advertised tool must be known to executeTool: calling it with
	// empty arguments may fail, but never with "unknown tool".
	for _, tool := range GetToolDefinitions() {
		_, err := s.executeTool(tool.Name, json.RawMessage(`{}`))
		if err != nil && err.Error() == "unknown tool: "+tool.Name {
			t.Errorf("tool %s is listed but not dispatched", tool.Name)
		}
	}
}

func TestToolDefinitions_PixelTools(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		switch tool.Name {
		case "pixel_lookup", "pixel_hash":
		default:
			continue
		}

		props := tool.InputSchema["properties"].(map[string]interface{})
		for _, key := range []string{"image", "colors", "lenient", "x", "y"} {
			if _, ok := props[key]; !ok {
				t.Errorf("%s: missing property %s", tool.Name, key)
			}
		}
	}
}

func TestToolDefinitions_JSON(t *testing.T) {
	data, err := json.Marshal(GetToolDefinitions())
	if err != nil {
		t.Fatalf("Failed to marshal tools: %v", err)
	}

	var decoded []map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal tools: %v", err)
	}
	for _, tool := range decoded {
		if _, ok := tool["inputSchema"]; !ok {
			t.Errorf("tool %v: missing inputSchema key", tool["name"])
		}
	}
}
