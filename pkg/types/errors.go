package types

import "errors"

// Domain errors surfaced by the chunking engine. Every failure is local to
// one call; nothing here is fatal to the process.
var (
	// ErrEmptyContent indicates empty or whitespace-only input. Never
	// retried: there is nothing to chunk.
	ErrEmptyContent = errors.New("content is empty")

	// ErrInvalidConfig indicates a chunking configuration that violates
	// its invariants. The caller must fix the configuration.
	ErrInvalidConfig = errors.New("invalid chunking config")

	// ErrUnsupportedContent indicates a strategy cannot process the given
	// content at all. Callers may retry with ContentPlainText as a
	// fallback policy; the engine never falls back on its own.
	ErrUnsupportedContent = errors.New("unsupported content")

	// ErrUnknownContentType indicates a content type outside the closed set.
	ErrUnknownContentType = errors.New("unknown content type")
)
