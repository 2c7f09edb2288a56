package server

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/ironsheep/image-crop-mcp/internal/config"
	"github.com/ironsheep/image-crop-mcp/internal/worker"
)

// Version is reported in the initialize handshake. main overrides it with
// the build version.
var Version = "0.1.0"

// Server handles MCP protocol communication
type Server struct {
	cfg    config.Config
	logger *slog.Logger
	pool   *worker.Pool

	// maxRequestSize caps a single request line. Longer lines are discarded
	// and answered with an invalid-request error.
	maxRequestSize int

	// mu serializes response writes; tool calls finish out of order.
	mu sync.Mutex
	// inflight tracks tools/call goroutines so Serve can drain them.
	inflight sync.WaitGroup
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

// JSON-RPC error codes used by the server.
const (
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeToolFailed     = -32000
)

// New creates a new MCP server instance
func New(cfg config.Config, logger *slog.Logger) *Server {
	return &Server{
		cfg:    cfg,
		logger: logger,
		pool:   worker.NewPool(cfg.Workers),

		maxRequestSize: DefaultMaxRequestSize,
	}
}

// DefaultMaxRequestSize bounds one request line. A crop_images batch of tens
// of thousands of paths fits comfortably.
const DefaultMaxRequestSize = 64 * 1024 * 1024

// Run starts the MCP server, reading from stdin and writing to stdout
func (s *Server) Run(ctx context.Context) error {
	return s.Serve(ctx, os.Stdin, os.Stdout)
}

// Serve reads newline-delimited requests from r and writes responses to w.
// tools/call requests run concurrently on the worker pool; everything else
// is answered inline. Serve returns once r is exhausted and every in-flight
// call has written its response.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	reader := bufio.NewReaderSize(r, 64*1024)
	encoder := json.NewEncoder(w)
	defer s.inflight.Wait()

	for {
		line, oversized, err := readLine(reader, s.maxRequestSize)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read request: %w", err)
		}

		if oversized {
			s.logger.Warn("request too large", "limit", s.maxRequestSize)
			s.write(encoder, s.errorResponse(nil, codeInvalidRequest, "Invalid Request",
				fmt.Sprintf("request exceeds %d bytes", s.maxRequestSize)))
			continue
		}

		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.logger.Warn("failed to parse request", "error", err)
			continue
		}

		if req.Method == "tools/call" {
			s.inflight.Add(1)
			go func() {
				defer s.inflight.Done()
				s.write(encoder, s.handleRequest(ctx, &req))
			}()
			continue
		}

		s.write(encoder, s.handleRequest(ctx, &req))
	}
}

// readLine returns the next line from br, newline included. A line longer
// than limit is consumed up to its newline without being kept, and reported
// as oversized. io.EOF is returned only once no bytes remain.
func readLine(br *bufio.Reader, limit int) ([]byte, bool, error) {
	var line []byte
	oversized := false
	read := 0
	for {
		chunk, err := br.ReadSlice('\n')
		read += len(chunk)
		if !oversized {
			if len(line)+len(chunk) > limit {
				oversized = true
				line = nil
			} else {
				line = append(line, chunk...)
			}
		}

		switch {
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF) && read > 0:
			return line, oversized, nil
		default:
			return line, oversized, err
		}
	}
}

func (s *Server) write(encoder *json.Encoder, resp *MCPResponse) {
	if resp == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := encoder.Encode(resp); err != nil {
		s.logger.Error("failed to encode response", "id", resp.ID, "error", err)
	}
}

// handleRequest routes requests to appropriate handlers. Notifications,
// which carry no id, never get a response.
func (s *Server) handleRequest(ctx context.Context, req *MCPRequest) *MCPResponse {
	if req.ID == nil || strings.HasPrefix(req.Method, "notifications/") {
		s.logger.Debug("notification", "method", req.Method)
		return nil
	}

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return s.errorResponse(req.ID, codeMethodNotFound, fmt.Sprintf("Method not found: %s", req.Method), "")
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
				"name":    "image-crop-mcp",
				"version": Version,
			},
		},
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
// Empty data is omitted.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	mcpErr := &MCPError{
		Code:    code,
		Message: message,
	}
	if data != "" {
		mcpErr.Data = data
	}
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   mcpErr,
	}
}
