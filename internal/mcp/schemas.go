package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// chunkContentTool returns the tool definition for chunk_content
func chunkContentTool() mcp.Tool {
	return mcp.Tool{
		Name:        "chunk_content",
		Description: "Split text content into bounded-size chunks suitable for embedding and vector search",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"content": map[string]interface{}{
					"type":        "string",
					"description": "Decoded text content to chunk",
				},
				"content_type": map[string]interface{}{
					"type":        "string",
					"description": "Explicit content type, bypassing detection",
					"enum": []string{
						"plain_text", "code", "document", "meeting",
						"git_commit", "slack_message", "email",
					},
				},
				"max_chunk_size": map[string]interface{}{
					"type":        "integer",
					"description": "Hard ceiling on chunk size in the configured unit",
					"default":     512,
					"minimum":     1,
				},
				"min_chunk_size": map[string]interface{}{
					"type":        "integer",
					"description": "Floor below which chunks are merged with a neighbor",
					"default":     50,
					"minimum":     1,
				},
				"overlap": map[string]interface{}{
					"type":        "integer",
					"description": "Trailing units of each chunk repeated at the head of the next",
					"default":     50,
					"minimum":     0,
				},
				"preserve_context": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, carry trailing context into the next chunk",
					"default":     true,
				},
				"enable_caching": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, memoize the result keyed by content and configuration",
					"default":     true,
				},
				"size_unit": map[string]interface{}{
					"type":        "string",
					"description": "Unit for sizes and overlap: chars or estimated tokens",
					"enum":        []string{"chars", "tokens"},
					"default":     "chars",
				},
			},
			Required: []string{"content"},
		},
	}
}

// detectContentTypeTool returns the tool definition for detect_content_type
func detectContentTypeTool() mcp.Tool {
	return mcp.Tool{
		Name:        "detect_content_type",
		Description: "Classify text content into one of the supported content types without chunking it",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"content": map[string]interface{}{
					"type":        "string",
					"description": "Decoded text content to classify",
				},
			},
			Required: []string{"content"},
		},
	}
}

// cacheStatsTool returns the tool definition for cache_stats
func cacheStatsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "cache_stats",
		Description: "Report the number of memoized chunking results",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}

// clearCacheTool returns the tool definition for clear_cache
func clearCacheTool() mcp.Tool {
	return mcp.Tool{
		Name:        "clear_cache",
		Description: "Drop every memoized chunking result",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}
