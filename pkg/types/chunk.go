package types

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
)

// Quality flags attached by strategies, the validator, and the merger.
// Flags annotate imperfections without removing a chunk from the output:
// losing content is worse than producing an imperfect chunk.
const (
	FlagTooSmall              = "too_small"
	FlagExceedsMaxSize        = "exceeds_max_size"
	FlagSplitMidSentence      = "split_mid_sentence"
	FlagOverlapMismatch       = "overlap_mismatch"
	FlagUnmergeableUndersized = "unmergeable_undersized"
	FlagMerged                = "merged"
)

// ChunkMetadata carries quality and lineage information for one chunk.
type ChunkMetadata struct {
	// ContentType is the type the chunk was produced under.
	ContentType ContentType
	// Index is the ordinal position within the produced sequence.
	Index int
	// StartOffset and EndOffset locate the chunk in the original content
	// as a half-open byte interval [StartOffset, EndOffset).
	StartOffset int
	EndOffset   int
	// QualityScore is in [0,1]; higher is better.
	QualityScore float64
	// QualityFlags lists detected imperfections; additive, may be empty.
	QualityFlags []string
	// MergedFrom records the ordinal indices of the pre-merge chunks this
	// chunk was assembled from. Plain index list, no live references.
	MergedFrom []int
}

// HasFlag reports whether the metadata carries the given quality flag.
func (m *ChunkMetadata) HasFlag(flag string) bool {
	for _, f := range m.QualityFlags {
		if f == flag {
			return true
		}
	}
	return false
}

// AddFlag appends a quality flag if not already present.
func (m *ChunkMetadata) AddFlag(flag string) {
	if !m.HasFlag(flag) {
		m.QualityFlags = append(m.QualityFlags, flag)
	}
}

// Chunk is one bounded, contiguous segment of source content plus its
// metadata. Chunks are immutable once handed out by the processor.
type Chunk struct {
	// Text is the chunk payload, including any configured overlap prefix.
	Text string
	// Metadata describes type, position, quality, and lineage.
	Metadata ChunkMetadata
	// Fingerprint is a stable hash of payload and offsets, used as cache
	// sub-key and for deduplication.
	Fingerprint string
}

// ComputeFingerprint derives the chunk fingerprint from its payload and
// offsets and stores it on the chunk.
func (c *Chunk) ComputeFingerprint() string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%d:%d:%s",
		c.Metadata.StartOffset, c.Metadata.EndOffset, c.Text))
	c.Fingerprint = hex.EncodeToString(sum[:16])
	return c.Fingerprint
}

// Size returns the chunk's length in the configured unit.
func (c *Chunk) Size(config ChunkingConfig) int {
	return config.Measure(c.Text)
}

// Validate performs comprehensive validation of the chunk.
func (c *Chunk) Validate() error {
	if c.Text == "" {
		return errors.New("chunk text cannot be empty")
	}
	if err := c.Metadata.ContentType.Validate(); err != nil {
		return err
	}
	if c.Metadata.Index < 0 {
		return errors.New("chunk index cannot be negative")
	}
	if c.Metadata.StartOffset < 0 || c.Metadata.EndOffset < c.Metadata.StartOffset {
		return errors.New("chunk offsets must form a valid half-open interval")
	}
	if c.Metadata.QualityScore < 0 || c.Metadata.QualityScore > 1 {
		return errors.New("quality score must be between 0 and 1")
	}
	if c.Fingerprint == "" {
		return errors.New("chunk fingerprint must be computed")
	}
	return nil
}

// ContentFingerprint returns a stable hash of a raw content blob, used as
// the content half of the cache key.
func ContentFingerprint(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:16])
}
