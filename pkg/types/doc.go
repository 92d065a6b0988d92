// Package types provides shared type definitions for the TextChunk MCP server.
//
// This package defines the domain types used across the chunking engine:
// content types, chunking configuration, chunks with their quality and
// lineage metadata, and the domain error taxonomy.
//
// # Core Types
//
// ContentType is a closed enumeration of the content kinds the engine
// understands:
//
//	types.ContentPlainText
//	types.ContentCode
//	types.ContentDocument
//	types.ContentMeeting
//	types.ContentGitCommit
//	types.ContentSlack
//	types.ContentEmail
//
// ChunkingConfig holds the size, overlap, and caching budget for a run:
//
//	config := types.DefaultConfig()
//	config.MaxChunkSize = 1024
//	if err := config.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
// Chunk is one bounded segment of source content:
//
//	chunk := &types.Chunk{
//	    Text: payload,
//	    Metadata: types.ChunkMetadata{
//	        ContentType: types.ContentPlainText,
//	        StartOffset: 0,
//	        EndOffset:   len(payload),
//	    },
//	}
//	chunk.ComputeFingerprint()
//
// # Quality Flags
//
// Imperfections are annotated, never silently repaired by dropping content:
//
//	chunk.Metadata.HasFlag(types.FlagExceedsMaxSize)
//	chunk.Metadata.HasFlag(types.FlagTooSmall)
//
// # Error Taxonomy
//
// Four sentinel errors cover every failure mode of the engine:
//
//	types.ErrEmptyContent       // nothing to chunk, never retried
//	types.ErrInvalidConfig      // caller must fix configuration
//	types.ErrUnsupportedContent // caller may retry as plain_text
//	types.ErrUnknownContentType // type outside the closed set
//
// Wrapped errors classify with errors.Is:
//
//	if errors.Is(err, types.ErrInvalidConfig) {
//	    // fix configuration
//	}
package types
