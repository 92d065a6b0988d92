// Package merger combines adjacent undersized chunks so minimum-size
// constraints hold without ever violating the maximum-size invariant.
package merger

import (
	"github.com/dshills/textchunk-mcp/internal/validator"
	"github.com/dshills/textchunk-mcp/pkg/types"
)

// Merger repairs undersized chunks by combining them with a neighbor.
// It owns the only repair action in the engine; the validator annotates
// but never restructures.
type Merger struct{}

// New creates a new Merger instance.
func New() *Merger {
	return &Merger{}
}

// Merge scans the sequence once, left to right. An undersized chunk is
// merged with its immediate successor, or with its predecessor when no
// successor exists, provided the merged size stays within MaxChunkSize.
// When neither neighbor fits, the chunk is left standing and flagged
// unmergeable_undersized: violating the max-size invariant would be
// worse than an undersized chunk.
//
// Chunks that already carry merge lineage are never merged again, which
// makes Merge idempotent.
func (m *Merger) Merge(chunks []types.Chunk, config types.ChunkingConfig) []types.Chunk {
	out := make([]types.Chunk, 0, len(chunks))
	i := 0
	for i < len(chunks) {
		c := chunks[i]
		if len(c.Metadata.MergedFrom) > 0 || c.Size(config) >= config.MinChunkSize {
			out = append(out, c)
			i++
			continue
		}

		// Successor preferred.
		if i+1 < len(chunks) {
			next := chunks[i+1]
			if fits(c, next, config) {
				out = append(out, m.combine(c, next, prevOf(out), config))
				i += 2
				continue
			}
		}
		// Predecessor as last resort, for the final chunk only.
		if i+1 >= len(chunks) && len(out) > 0 {
			prev := out[len(out)-1]
			if fits(prev, c, config) {
				out[len(out)-1] = m.combine(prev, c, prevOf(out[:len(out)-1]), config)
				i++
				continue
			}
		}

		c.Metadata.AddFlag(types.FlagUnmergeableUndersized)
		out = append(out, c)
		i++
	}

	for idx := range out {
		out[idx].Metadata.Index = idx
	}
	return out
}

func prevOf(out []types.Chunk) *types.Chunk {
	if len(out) == 0 {
		return nil
	}
	return &out[len(out)-1]
}

func fits(a, b types.Chunk, config types.ChunkingConfig) bool {
	return config.Measure(joinPayloads(a, b)) <= config.MaxChunkSize
}

// joinPayloads concatenates two adjacent payloads in order, dropping the
// portion of b that duplicates a's trailing overlap region.
func joinPayloads(a, b types.Chunk) string {
	dup := a.Metadata.EndOffset - b.Metadata.StartOffset
	if dup < 0 {
		dup = 0
	}
	if dup > len(b.Text) {
		dup = len(b.Text)
	}
	return a.Text + b.Text[dup:]
}

// combine builds the merged chunk: union of the offset spans, payloads
// concatenated in order, quality recomputed fresh from the merged result
// rather than averaged, and lineage recorded as plain source indices.
func (m *Merger) combine(a, b types.Chunk, prev *types.Chunk, config types.ChunkingConfig) types.Chunk {
	merged := types.Chunk{
		Text: joinPayloads(a, b),
		Metadata: types.ChunkMetadata{
			ContentType: a.Metadata.ContentType,
			Index:       a.Metadata.Index,
			StartOffset: minInt(a.Metadata.StartOffset, b.Metadata.StartOffset),
			EndOffset:   maxInt(a.Metadata.EndOffset, b.Metadata.EndOffset),
			MergedFrom:  lineage(a, b),
		},
	}
	score, flags := validator.Score(merged, prev, config)
	merged.Metadata.QualityScore = score
	merged.Metadata.QualityFlags = flags
	merged.Metadata.AddFlag(types.FlagMerged)
	merged.ComputeFingerprint()
	return merged
}

// lineage unions the source ordinal indices of both inputs, falling back
// to each input's own pre-merge index.
func lineage(a, b types.Chunk) []int {
	var src []int
	for _, c := range []types.Chunk{a, b} {
		if len(c.Metadata.MergedFrom) > 0 {
			src = append(src, c.Metadata.MergedFrom...)
		} else {
			src = append(src, c.Metadata.Index)
		}
	}
	return src
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
