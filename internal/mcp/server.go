package mcp

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/dshills/textchunk-mcp/internal/processor"
)

const (
	// ServerName is the MCP server name
	ServerName = "textchunk-mcp"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"

	// DefaultCacheTTL applies when the deployment does not set one. The
	// engine mandates only a finite TTL; the value is a serving-layer
	// concern.
	DefaultCacheTTL = 15 * time.Minute
)

// Config holds the deployment-level settings for the server.
type Config struct {
	// CacheSize bounds the chunk cache entry count (<= 0 uses the
	// engine default).
	CacheSize int
	// CacheTTL is the default time-to-live for cached chunk sequences.
	CacheTTL time.Duration
}

// Server wraps the MCP server with the chunking engine. All chunking
// logic lives behind the processor; this layer only marshals tool
// requests in and chunk sequences out.
type Server struct {
	mcp       *server.MCPServer
	processor *processor.Processor
	cacheTTL  time.Duration
}

// NewServer creates a new MCP server instance.
func NewServer(cfg Config) *Server {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}

	s := &Server{
		mcp:       server.NewMCPServer(ServerName, ServerVersion),
		processor: processor.New(cfg.CacheSize),
		cacheTTL:  cfg.CacheTTL,
	}
	s.registerTools()
	return s
}

// Serve starts the MCP server on stdio and blocks until shutdown.
func (s *Server) Serve(ctx context.Context) error {
	_ = ctx
	return server.ServeStdio(s.mcp)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcp.AddTool(chunkContentTool(), s.handleChunkContent)
	s.mcp.AddTool(detectContentTypeTool(), s.handleDetectContentType)
	s.mcp.AddTool(cacheStatsTool(), s.handleCacheStats)
	s.mcp.AddTool(clearCacheTool(), s.handleClearCache)
}
