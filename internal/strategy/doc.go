// Package strategy implements the content-type-specific splitting
// algorithms of the chunking engine.
//
// One strategy exists per content type, behind the shared Strategy
// interface, selected by lookup:
//
//	s, err := strategy.ForContentType(types.ContentCode)
//	chunks, err := s.Split(content, config)
//
// The set is closed: content types are fixed and finite, and lookup
// resolves over package-level singletons. There is no registration API.
//
// # Atomic Units
//
// Each strategy scans its content into atomic units: the smallest span
// it refuses to split mid-way:
//
//	semantic:   word (sentences preferred, paragraphs most preferred)
//	code:       statement/block (top-level definitions preferred)
//	document:   header + paragraph
//	meeting:    full speaker turn
//	git_commit: commit trailer line, message paragraph, per-file diff
//	slack:      full message
//	email:      full header field, body paragraph
//
// Units are then packed greedily into chunks within the size budget. A
// single unit exceeding MaxChunkSize on its own is either rescanned at a
// finer granularity (the strategy's fallback scanner) or emitted as one
// oversized chunk flagged exceeds_max_size, never truncated, because
// losing content is worse than producing an imperfect chunk.
//
// # Overlap
//
// When PreserveContext is set, each chunk after the first starts up to
// Overlap units before the previous chunk's end, snapped to a word
// boundary. Chunks are packed against a reduced budget so the ceiling
// still holds after the overlap prefix is applied; a chunk built from a
// unit larger than that budget takes a shortened prefix instead of
// breaching the ceiling.
//
// # Failure Modes
//
// Split fails with types.ErrInvalidConfig when the config violates its
// invariants (defense in depth; the processor validates first) and with
// types.ErrUnsupportedContent on empty content; an empty call is a
// contract violation, not a silent zero-chunk result.
package strategy
