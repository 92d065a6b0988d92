package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/textchunk-mcp/internal/processor"
	"github.com/dshills/textchunk-mcp/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams      = -32602 // Invalid method parameters
	ErrorCodeInternalError      = -32603 // Internal JSON-RPC error
	ErrorCodeEmptyContent       = -32001 // Content parameter is empty or whitespace
	ErrorCodeInvalidConfig      = -32002 // Chunking configuration violates its invariants
	ErrorCodeUnsupportedContent = -32003 // Strategy cannot process the given content
)

// handleChunkContent handles the chunk_content tool invocation
func (s *Server) handleChunkContent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	content, ok := args["content"].(string)
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "content parameter is required", map[string]interface{}{
			"param":  "content",
			"reason": "missing",
		})
	}

	config := types.DefaultConfig()
	config.CacheTTL = s.cacheTTL
	config.MaxChunkSize = getIntDefault(args, "max_chunk_size", config.MaxChunkSize)
	config.MinChunkSize = getIntDefault(args, "min_chunk_size", config.MinChunkSize)
	config.Overlap = getIntDefault(args, "overlap", config.Overlap)
	config.PreserveContext = getBoolDefault(args, "preserve_context", config.PreserveContext)
	config.EnableCaching = getBoolDefault(args, "enable_caching", config.EnableCaching)
	config.Unit = types.SizeUnit(getStringDefault(args, "size_unit", string(config.Unit)))

	req := processor.Request{
		Content:     content,
		ContentType: types.ContentType(getStringDefault(args, "content_type", "")),
		Config:      &config,
	}

	resp, err := s.processor.ChunkContent(req)
	if err != nil {
		return nil, chunkingError(err)
	}

	chunks := make([]map[string]interface{}, len(resp.Chunks))
	for i, c := range resp.Chunks {
		chunks[i] = map[string]interface{}{
			"text":          c.Text,
			"index":         c.Metadata.Index,
			"content_type":  string(c.Metadata.ContentType),
			"start_offset":  c.Metadata.StartOffset,
			"end_offset":    c.Metadata.EndOffset,
			"quality_score": c.Metadata.QualityScore,
			"quality_flags": c.Metadata.QualityFlags,
			"merged_from":   c.Metadata.MergedFrom,
			"fingerprint":   c.Fingerprint,
		}
	}

	response := map[string]interface{}{
		"chunks":       chunks,
		"chunk_count":  len(chunks),
		"content_type": string(resp.ContentType),
		"detected":     resp.Detected,
		"cache_hit":    resp.CacheHit,
		"duration_ms":  resp.Duration.Milliseconds(),
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleDetectContentType handles the detect_content_type tool invocation
func (s *Server) handleDetectContentType(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	content, ok := args["content"].(string)
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "content parameter is required", map[string]interface{}{
			"param":  "content",
			"reason": "missing",
		})
	}

	response := map[string]interface{}{
		"content_type": string(s.processor.DetectContentType(content)),
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleCacheStats handles the cache_stats tool invocation
func (s *Server) handleCacheStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	response := map[string]interface{}{
		"entries": s.processor.CacheLen(),
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleClearCache handles the clear_cache tool invocation
func (s *Server) handleClearCache(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.processor.ClearCache()
	response := map[string]interface{}{
		"cleared": true,
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// Helper functions

// chunkingError maps engine errors onto MCP error codes.
func chunkingError(err error) error {
	switch {
	case errors.Is(err, types.ErrEmptyContent):
		return newMCPError(ErrorCodeEmptyContent, "content is empty", map[string]interface{}{
			"error": err.Error(),
		})
	case errors.Is(err, types.ErrInvalidConfig), errors.Is(err, types.ErrUnknownContentType):
		return newMCPError(ErrorCodeInvalidConfig, "invalid chunking configuration", map[string]interface{}{
			"error": err.Error(),
		})
	case errors.Is(err, types.ErrUnsupportedContent):
		return newMCPError(ErrorCodeUnsupportedContent, "unsupported content", map[string]interface{}{
			"error": err.Error(),
		})
	default:
		return newMCPError(ErrorCodeInternalError, "chunking failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getBoolDefault extracts a boolean parameter with a default value
func getBoolDefault(args map[string]interface{}, key string, defaultValue bool) bool {
	if val, ok := args[key].(bool); ok {
		return val
	}
	return defaultValue
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok && val != "" {
		return val
	}
	return defaultValue
}
