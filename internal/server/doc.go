// Package server implements the MCP (Model Context Protocol) server for pixel
// color queries.
//
// The server speaks JSON-RPC 2.0 over stdio and exposes the manager package's
// queries as tools, so an MCP client can ask which named color sits at a
// coordinate without decoding the image itself.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//   - image_evict: Release a cached image, or all of them
//
// Pixel Resolution:
//   - pixel_lookup: Sample and color name at (x, y)
//   - pixel_hash: Content hash of (x, y, color)
//   - pixel_scan: Every pixel in row-major order, optionally only UNKNOWN ones
//
// Registry Queries:
//   - registry_colors: Registry colors as [r,g,b] or "0xRRGGBB"
//   - registry_names: Registry names
//
// Image Color Analysis:
//   - image_unique_colors: Distinct RGB values in the image
//   - image_color_census: Pixel count per exact RGBA sample
//   - image_coverage: Pixel count per resolved name
//
// Tools that resolve names take an "image" path and an optional "colors"
// path. Without "colors" the built-in CSS color names are used.
//
// # Caching
//
// Decoded images, parsed registries and built lookup tables are cached by
// path. Files changed on disk after their first use are not reloaded until
// image_evict releases them; registries and tables stay for the lifetime of
// the process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string, which names the failure kind
//     ("source unreadable", "malformed source", "invalid color encoding",
//     "index out of range")
//
// # Usage
//
//	srv := server.New(logger)
//	if err := srv.Serve(os.Stdin, os.Stdout); err != nil {
//	    return err
//	}
package server
