package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ironsheep/imgdata/internal/errdefs"
	"github.com/ironsheep/imgdata/internal/imaging"
	"github.com/ironsheep/imgdata/internal/lookup"
	"github.com/ironsheep/imgdata/internal/manager"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "pixel_lookup", "registry_names").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Debug("tool failed", "tool", params.Name, "error", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads the image, registry and lookup table from cache as needed
//  4. Calls the appropriate manager or imaging function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_evict":
		return s.handleImageEvict(args)

	// Pixel Resolution
	case "pixel_lookup":
		return s.handlePixelLookup(args)
	case "pixel_hash":
		return s.handlePixelHash(args)
	case "pixel_scan":
		return s.handlePixelScan(args)

	// Registry Queries
	case "registry_colors":
		return s.handleRegistryColors(args)
	case "registry_names":
		return s.handleRegistryNames(args)

	// Image Color Analysis
	case "image_unique_colors":
		return s.handleImageUniqueColors(args)
	case "image_color_census":
		return s.handleImageColorCensus(args)
	case "image_coverage":
		return s.handleImageCoverage(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

var errImageRequired = errors.New("image path is required")

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.images, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.images, a.Path)
}

// EvictResult reports what image_evict released and what stays cached.
type EvictResult struct {
	Path            string `json:"path,omitempty"`
	ManagersEvicted int    `json:"managers_evicted"`
	ImagesCached    int    `json:"images_cached"`
}

func (s *Server) handleImageEvict(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	n := s.evict(a.Path)
	s.logger.Debug("evicted", "path", a.Path, "managers", n)
	return EvictResult{Path: a.Path, ManagersEvicted: n, ImagesCached: s.images.Len()}, nil
}

// === Pixel Resolution Handlers ===

// pixelSourceArgs names the image and registry a query runs against.
type pixelSourceArgs struct {
	Image   string `json:"image"`
	Colors  string `json:"colors"`
	Lenient bool   `json:"lenient"`
}

func (s *Server) resolver(a pixelSourceArgs) (*manager.Manager, error) {
	if a.Image == "" {
		return nil, errImageRequired
	}
	return s.loadManager(a.Image, a.Colors, a.Lenient)
}

type pixelArgs struct {
	pixelSourceArgs
	X int64 `json:"x"`
	Y int64 `json:"y"`
}

// coords converts JSON integers to pixel coordinates, rejecting values a
// uint32 cannot hold.
func (a pixelArgs) coords() (uint32, uint32, error) {
	if a.X < 0 || a.Y < 0 || a.X > int64(^uint32(0)) || a.Y > int64(^uint32(0)) {
		return 0, 0, fmt.Errorf("%w: (%d, %d)", errdefs.ErrIndexOutOfRange, a.X, a.Y)
	}
	return uint32(a.X), uint32(a.Y), nil
}

type pixelLookupResult struct {
	manager.PixelData
	Hex string `json:"hex"` // "0xRRGGBBAA"
}

func (s *Server) handlePixelLookup(args json.RawMessage) (interface{}, error) {
	var a pixelArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	x, y, err := a.coords()
	if err != nil {
		return nil, err
	}
	m, err := s.resolver(a.pixelSourceArgs)
	if err != nil {
		return nil, err
	}

	p, err := m.Get(x, y)
	if err != nil {
		return nil, err
	}
	return pixelLookupResult{PixelData: p, Hex: "0x" + p.Color.HexA()}, nil
}

// PixelHashResult carries the digest as text; JSON numbers lose precision
// above 2^53.
type PixelHashResult struct {
	X    uint32 `json:"x"`
	Y    uint32 `json:"y"`
	Hash string `json:"hash"` // decimal
	Hex  string `json:"hex"`  // "0x" + 16 hex digits
}

func (s *Server) handlePixelHash(args json.RawMessage) (interface{}, error) {
	var a pixelArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	x, y, err := a.coords()
	if err != nil {
		return nil, err
	}
	m, err := s.resolver(a.pixelSourceArgs)
	if err != nil {
		return nil, err
	}

	h, err := m.Hash(x, y)
	if err != nil {
		return nil, err
	}
	return &PixelHashResult{
		X:    x,
		Y:    y,
		Hash: fmt.Sprintf("%d", h),
		Hex:  fmt.Sprintf("0x%016X", h),
	}, nil
}

type pixelScanArgs struct {
	pixelSourceArgs
	Limit       *int `json:"limit"`
	UnknownOnly bool `json:"unknown_only"`
}

// PixelScanResult is a row-major slice of resolved pixels.
type PixelScanResult struct {
	Width     int                 `json:"width"`
	Height    int                 `json:"height"`
	Pixels    []manager.PixelData `json:"pixels"`
	Truncated bool                `json:"truncated"` // More pixels matched than limit allowed
}

const defaultScanLimit = 1000

func (s *Server) handlePixelScan(args json.RawMessage) (interface{}, error) {
	var a pixelScanArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	limit := defaultScanLimit
	if a.Limit != nil {
		limit = *a.Limit
	}
	if limit < 0 {
		return nil, fmt.Errorf("limit must be non-negative, got %d", limit)
	}
	m, err := s.resolver(a.pixelSourceArgs)
	if err != nil {
		return nil, err
	}

	result := &PixelScanResult{
		Width:  m.Width(),
		Height: m.Height(),
		Pixels: []manager.PixelData{},
	}
	for p := range m.Pixels() {
		if a.UnknownOnly && p.ColorName != lookup.Unknown {
			continue
		}
		if limit > 0 && len(result.Pixels) == limit {
			result.Truncated = true
			break
		}
		result.Pixels = append(result.Pixels, p)
	}
	return result, nil
}

// === Registry Query Handlers ===

type registryArgs struct {
	Colors  string `json:"colors"`
	Format  string `json:"format"`
	Lenient bool   `json:"lenient"`
}

func (s *Server) lookupTable(a registryArgs) (*lookup.Table, error) {
	_, t, err := s.loadTable(a.Colors, a.Lenient)
	return t, err
}

// ColorsResult lists colors in exactly one of the two formats.
type ColorsResult struct {
	Count int        `json:"count"`
	RGB   [][3]uint8 `json:"rgb,omitempty"`
	Hex   []string   `json:"hex,omitempty"`
}

func checkFormat(format string) (string, error) {
	switch format {
	case "", "rgb":
		return "rgb", nil
	case "hex":
		return "hex", nil
	default:
		return "", fmt.Errorf("invalid format %q: must be rgb or hex", format)
	}
}

func (s *Server) handleRegistryColors(args json.RawMessage) (interface{}, error) {
	var a registryArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	format, err := checkFormat(a.Format)
	if err != nil {
		return nil, err
	}
	t, err := s.lookupTable(a)
	if err != nil {
		return nil, err
	}

	colors := t.SortedColors()
	result := &ColorsResult{Count: len(colors)}
	for _, c := range colors {
		if format == "hex" {
			result.Hex = append(result.Hex, "0x"+c.Hex())
		} else {
			result.RGB = append(result.RGB, c.RGB())
		}
	}
	return result, nil
}

// NamesResult lists registry names.
type NamesResult struct {
	Count int      `json:"count"`
	Names []string `json:"names"`
}

func (s *Server) handleRegistryNames(args json.RawMessage) (interface{}, error) {
	var a registryArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	t, err := s.lookupTable(a)
	if err != nil {
		return nil, err
	}

	names := t.Names()
	return &NamesResult{Count: len(names), Names: names}, nil
}

// === Image Color Analysis Handlers ===

type uniqueColorsArgs struct {
	Image  string `json:"image"`
	Format string `json:"format"`
}

func (s *Server) handleImageUniqueColors(args json.RawMessage) (interface{}, error) {
	var a uniqueColorsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	format, err := checkFormat(a.Format)
	if err != nil {
		return nil, err
	}
	m, err := s.resolver(pixelSourceArgs{Image: a.Image})
	if err != nil {
		return nil, err
	}

	if format == "hex" {
		hexes, err := m.UniqueColorsHex()
		if err != nil {
			return nil, err
		}
		return &ColorsResult{Count: len(hexes), Hex: hexes}, nil
	}
	rgbs, err := m.UniqueColorsRGB()
	if err != nil {
		return nil, err
	}
	return &ColorsResult{Count: len(rgbs), RGB: rgbs}, nil
}

type censusArgs struct {
	Image string `json:"image"`
	Limit *int   `json:"limit"`
}

func (s *Server) handleImageColorCensus(args json.RawMessage) (interface{}, error) {
	var a censusArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Image == "" {
		return nil, errImageRequired
	}
	limit := 10
	if a.Limit != nil {
		limit = *a.Limit
	}
	raster, err := s.images.Load(a.Image)
	if err != nil {
		return nil, err
	}
	return imaging.Census(raster, limit)
}

// CoverageResult is the per-name pixel count of an image.
type CoverageResult struct {
	Pixels   int                 `json:"pixels"`
	Coverage []manager.NameCount `json:"coverage"`
}

func (s *Server) handleImageCoverage(args json.RawMessage) (interface{}, error) {
	var a pixelSourceArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	m, err := s.resolver(a)
	if err != nil {
		return nil, err
	}
	return &CoverageResult{
		Pixels:   m.Width() * m.Height(),
		Coverage: m.Coverage(),
	}, nil
}
