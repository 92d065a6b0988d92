// Package mcp implements the Model Context Protocol (MCP) server for
// TextChunk.
//
// The server exposes four tools to MCP clients:
//   - chunk_content: split text into bounded-size chunks with quality metadata
//   - detect_content_type: classify text without chunking it
//   - cache_stats: report memoized result count
//   - clear_cache: drop every memoized result
//
// # Protocol Overview
//
// MCP is a JSON-RPC 2.0 protocol over stdio transport. The server reads
// requests from stdin and writes responses to stdout; all logging goes
// to stderr.
//
// # Tool: chunk_content
//
//	Request:
//	{
//	  "name": "chunk_content",
//	  "arguments": {
//	    "content": "...",
//	    "content_type": "document",
//	    "max_chunk_size": 512,
//	    "min_chunk_size": 50,
//	    "overlap": 50
//	  }
//	}
//
//	Response: JSON with a chunks array (text, offsets, quality score and
//	flags, merge lineage, fingerprint), the resolved content type,
//	whether it was detected, and whether the result was a cache hit.
//
// Error codes follow JSON-RPC conventions: -32602 invalid params,
// -32603 internal, plus -32001 empty content, -32002 invalid config,
// -32003 unsupported content.
package mcp
