package types

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
	"unicode/utf8"
)

// SizeUnit selects the unit used for chunk size and overlap measurement.
// One unit applies uniformly across all strategies within a run.
type SizeUnit string

const (
	// UnitChars measures size in Unicode code points.
	UnitChars SizeUnit = "chars"
	// UnitTokens measures size in estimated model tokens (chars/4).
	UnitTokens SizeUnit = "tokens"
)

const (
	// TokensPerChar is the heuristic for estimating tokens (chars/4)
	TokensPerChar = 4

	// DefaultMaxChunkSize is the default chunk size ceiling.
	DefaultMaxChunkSize = 512
	// DefaultMinChunkSize is the default chunk size floor.
	DefaultMinChunkSize = 50
	// DefaultOverlap is the default trailing-context overlap.
	DefaultOverlap = 50
)

// ChunkingConfig holds the size, overlap, and caching budget for one
// chunking run. The zero value is not usable; construct via DefaultConfig
// and adjust, then Validate before use.
type ChunkingConfig struct {
	// MaxChunkSize is a hard ceiling on produced chunk length, in SizeUnit.
	MaxChunkSize int
	// MinChunkSize is the floor below which chunks are merge candidates.
	MinChunkSize int
	// Overlap is the count of trailing units of chunk i repeated at the
	// head of chunk i+1 when PreserveContext is set.
	Overlap int
	// PreserveContext carries trailing context into the next chunk.
	PreserveContext bool
	// EnableCaching memoizes results keyed by content and config.
	EnableCaching bool
	// CacheTTL bounds how long a cached result stays valid. The engine
	// mandates only that it is finite; deployments tune the value.
	CacheTTL time.Duration
	// Unit selects chars or estimated tokens for size and overlap.
	Unit SizeUnit
}

// DefaultConfig returns the standard configuration budget.
func DefaultConfig() ChunkingConfig {
	return ChunkingConfig{
		MaxChunkSize:    DefaultMaxChunkSize,
		MinChunkSize:    DefaultMinChunkSize,
		Overlap:         DefaultOverlap,
		PreserveContext: true,
		EnableCaching:   true,
		CacheTTL:        15 * time.Minute,
		Unit:            UnitChars,
	}
}

// Validate checks the config invariants. All violations wrap
// ErrInvalidConfig so callers can classify with errors.Is.
func (c ChunkingConfig) Validate() error {
	if c.MaxChunkSize <= 0 {
		return fmt.Errorf("%w: max chunk size %d must be positive", ErrInvalidConfig, c.MaxChunkSize)
	}
	if c.MinChunkSize <= 0 {
		return fmt.Errorf("%w: min chunk size %d must be positive", ErrInvalidConfig, c.MinChunkSize)
	}
	if c.MinChunkSize > c.MaxChunkSize {
		return fmt.Errorf("%w: min chunk size %d exceeds max chunk size %d",
			ErrInvalidConfig, c.MinChunkSize, c.MaxChunkSize)
	}
	if c.Overlap < 0 {
		return fmt.Errorf("%w: overlap %d cannot be negative", ErrInvalidConfig, c.Overlap)
	}
	if c.Overlap >= c.MaxChunkSize {
		return fmt.Errorf("%w: overlap %d must be smaller than max chunk size %d",
			ErrInvalidConfig, c.Overlap, c.MaxChunkSize)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("%w: cache TTL cannot be negative", ErrInvalidConfig)
	}
	switch c.Unit {
	case UnitChars, UnitTokens:
	case "":
		// Unit defaults to chars when unset.
	default:
		return fmt.Errorf("%w: unknown size unit %q", ErrInvalidConfig, c.Unit)
	}
	return nil
}

// Measure returns the size of text in the configured unit.
func (c ChunkingConfig) Measure(text string) int {
	runes := utf8.RuneCountInString(text)
	if c.Unit == UnitTokens {
		return runes / TokensPerChar
	}
	return runes
}

// Fingerprint returns a stable hash of every configuration field, used as
// the config half of the cache key so the same content under a different
// configuration is never conflated.
func (c ChunkingConfig) Fingerprint() string {
	canonical := fmt.Sprintf("max=%d|min=%d|overlap=%d|ctx=%t|cache=%t|ttl=%d|unit=%s",
		c.MaxChunkSize, c.MinChunkSize, c.Overlap,
		c.PreserveContext, c.EnableCaching, c.CacheTTL.Nanoseconds(), c.Unit)
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:16])
}
