// Package server implements the MCP (Model Context Protocol) server for batch
// image cropping.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Notifications (requests without an id) are never answered. A request line
// longer than DefaultMaxRequestSize is discarded and answered with -32600 and
// a null id; the session continues.
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - crop_images: Remove the same margins from many files, writing <stem>_cropped.<ext>
//   - get_image_info: Dimensions, format, color depth, alpha and file size
//   - get_preview_data: Cropped, downscaled PNG as a data URI
//   - get_crop_guide: Full image with the margins shaded and outlined
//   - detect_margins: Suggest margins from uniform border bars
//   - list_presets: Built-in margin presets
//
// Crop, preview and guide accept either explicit settings or a preset name. The
// preset wins when both are given.
//
// # Concurrency
//
// The goroutine reading stdin never decodes or encodes images. Each
// tools/call is handed to a bounded worker pool and answered when it
// finishes, so responses can arrive in a different order than their requests.
// Clients correlate them by id. A crop batch itself runs sequentially inside
// one job.
//
// # Error Handling
//
// Tool errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure), -32602 (bad arguments, unknown
//     tool or preset) or -32601 (unknown method)
//   - message: Human-readable error description
//   - data: The Go error string
//
// A crop batch never fails as a whole. Per-file failures are reported in that
// file's outcome with success=false and the error text.
//
// # Usage
//
//	cfg, _ := config.Load()
//	srv := server.New(cfg, logging.New(os.Stderr, cfg.LogFormat, cfg.LogLevel))
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
