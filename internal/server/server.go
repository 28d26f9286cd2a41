package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/ironsheep/imgdata/internal/imaging"
	"github.com/ironsheep/imgdata/internal/lookup"
	"github.com/ironsheep/imgdata/internal/manager"
	"github.com/ironsheep/imgdata/internal/registry"
)

// Server handles MCP protocol communication
type Server struct {
	images *imaging.ImageCache
	logger *slog.Logger

	mu         sync.RWMutex
	registries map[string]*registry.Registry
	tables     map[tableKey]*lookup.Table
	managers   map[managerKey]*manager.Manager
}

type tableKey struct {
	colors  string
	lenient bool
}

type managerKey struct {
	image string
	tableKey
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a new MCP server instance. A nil logger means slog.Default().
func New(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		images:     imaging.NewImageCache(),
		logger:     logger,
		registries: make(map[string]*registry.Registry),
		tables:     make(map[tableKey]*lookup.Table),
		managers:   make(map[managerKey]*manager.Manager),
	}
}

// Serve reads one JSON-RPC request per line from r and writes responses to w.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for large requests
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	encoder := json.NewEncoder(w)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.logger.Warn("failed to parse request", "error", err)
			continue
		}

		resp := s.handleRequest(&req)
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				s.logger.Error("failed to encode response", "error", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	s.logger.Debug("request", "method", req.Method, "id", req.ID)

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "imgdata",
				"version": Version,
			},
		},
	}
}

// Version is reported in the initialize handshake. The CLI overrides it with
// its ldflags build version.
var Version = "0.1.0"

// loadRegistry returns a cached registry or reads it from disk. An empty path
// selects the built-in CSS color names.
func (s *Server) loadRegistry(path string) (*registry.Registry, error) {
	s.mu.RLock()
	reg, ok := s.registries[path]
	s.mu.RUnlock()
	if ok {
		return reg, nil
	}

	if path == "" {
		reg = registry.Builtin()
	} else {
		var err error
		if reg, err = registry.Load(path); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	s.registries[path] = reg
	s.mu.Unlock()
	return reg, nil
}

// loadTable returns the lookup table for a registry path, building and
// caching it on first use. Lenient skip warnings are logged once per table.
func (s *Server) loadTable(colorsPath string, lenient bool) (*registry.Registry, *lookup.Table, error) {
	reg, err := s.loadRegistry(colorsPath)
	if err != nil {
		return nil, nil, err
	}
	key := tableKey{colors: colorsPath, lenient: lenient}

	s.mu.RLock()
	t, ok := s.tables[key]
	s.mu.RUnlock()
	if ok {
		return reg, t, nil
	}

	t, err = lookup.Build(reg, lookup.Options{Lenient: lenient, Logger: s.logger})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build lookup table: %w", err)
	}

	s.mu.Lock()
	if existing, ok := s.tables[key]; ok {
		t = existing
	} else {
		s.tables[key] = t
	}
	s.mu.Unlock()
	return reg, t, nil
}

// loadManager returns the manager for an image/registry pair, building and
// caching it on first use.
func (s *Server) loadManager(imagePath, colorsPath string, lenient bool) (*manager.Manager, error) {
	key := managerKey{image: imagePath, tableKey: tableKey{colors: colorsPath, lenient: lenient}}

	s.mu.RLock()
	m, ok := s.managers[key]
	s.mu.RUnlock()
	if ok {
		return m, nil
	}

	reg, table, err := s.loadTable(colorsPath, lenient)
	if err != nil {
		return nil, err
	}
	raster, err := s.images.Load(imagePath)
	if err != nil {
		return nil, err
	}
	m = manager.NewFromTable(raster, reg, table)

	s.mu.Lock()
	s.managers[key] = m
	s.mu.Unlock()
	return m, nil
}

// evict drops a cached image and every manager bound to it. An empty path
// drops all images and managers. Registries and tables stay cached.
// It returns the number of managers removed.
func (s *Server) evict(imagePath string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if imagePath == "" {
		n := len(s.managers)
		s.managers = make(map[managerKey]*manager.Manager)
		s.images.Clear()
		return n
	}

	n := 0
	for key := range s.managers {
		if key.image == imagePath {
			delete(s.managers, key)
			n++
		}
	}
	s.images.Evict(imagePath)
	return n
}
