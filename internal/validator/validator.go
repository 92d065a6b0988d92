// Package validator scores produced chunks and annotates quality flags
// without mutating or dropping content.
package validator

import (
	"unicode"
	"unicode/utf8"

	"github.com/dshills/textchunk-mcp/pkg/types"
)

// Score component weights. Size closeness dominates; boundary quality and
// overlap consistency refine.
const (
	weightSize     = 0.5
	weightBoundary = 0.3
	weightOverlap  = 0.2
)

// Validator scores produced chunks and flags rule violations. It is a
// pure annotator: payload text is never mutated, and no chunk is dropped
// or re-split here. Repair (merging) belongs to the merger so the two
// concerns stay independently testable.
type Validator struct{}

// New creates a new Validator instance.
func New() *Validator {
	return &Validator{}
}

// Validate returns the chunk sequence with quality scores and flags
// populated. Existing flags set by the producing strategy are kept.
func (v *Validator) Validate(chunks []types.Chunk, config types.ChunkingConfig) []types.Chunk {
	out := make([]types.Chunk, len(chunks))
	for i := range chunks {
		out[i] = chunks[i]
		var prev *types.Chunk
		if i > 0 {
			prev = &chunks[i-1]
		}
		score, flags := Score(out[i], prev, config)
		out[i].Metadata.QualityScore = score
		for _, f := range flags {
			out[i].Metadata.AddFlag(f)
		}
	}
	return out
}

// Score computes the quality score and flags for one chunk against its
// predecessor. Exported so the merger can recompute a fresh score for a
// merged chunk instead of averaging the originals.
func Score(chunk types.Chunk, prev *types.Chunk, config types.ChunkingConfig) (float64, []string) {
	var flags []string

	size := chunk.Size(config)
	sizeScore := sizeCloseness(size, config)
	if size < config.MinChunkSize {
		flags = append(flags, types.FlagTooSmall)
	}
	if size > config.MaxChunkSize {
		flags = append(flags, types.FlagExceedsMaxSize)
	}

	boundaryScore, midSentence := boundaryQuality(chunk.Text, chunk.Metadata.ContentType)
	if midSentence {
		flags = append(flags, types.FlagSplitMidSentence)
	}

	overlapScore, mismatch := overlapConsistency(chunk, prev, config)
	if mismatch {
		flags = append(flags, types.FlagOverlapMismatch)
	}

	score := weightSize*sizeScore + weightBoundary*boundaryScore + weightOverlap*overlapScore
	return clamp01(score), flags
}

// sizeCloseness scores how near the chunk size is to the target size
// (max+min)/2. A chunk exactly on target scores 1.
func sizeCloseness(size int, config types.ChunkingConfig) float64 {
	target := float64(config.MaxChunkSize+config.MinChunkSize) / 2
	if target <= 0 {
		return 0
	}
	diff := float64(size) - target
	if diff < 0 {
		diff = -diff
	}
	return clamp01(1 - diff/target)
}

// boundaryQuality inspects the chunk's edge characters. Prose that stops
// mid-sentence (trailing letter with no terminal punctuation) is the main
// penalty; code boundaries are judged by block-closing characters.
func boundaryQuality(text string, ct types.ContentType) (float64, bool) {
	last, _ := utf8.DecodeLastRuneInString(text)
	first, _ := utf8.DecodeRuneInString(text)
	if last == utf8.RuneError || first == utf8.RuneError {
		return 0, false
	}

	score := 1.0
	midSentence := false

	switch ct {
	case types.ContentCode, types.ContentGitCommit:
		// Block or statement closers end cleanly; anything else is a
		// weak statement boundary at worst.
		if !isCodeCloser(last) {
			score -= 0.3
		}
	default:
		if unicode.IsLetter(last) || unicode.IsDigit(last) || last == ',' {
			score -= 0.5
			midSentence = true
		}
		if unicode.IsLower(first) {
			score -= 0.2
		}
	}
	return clamp01(score), midSentence
}

func isCodeCloser(r rune) bool {
	switch r {
	case '}', ')', ']', ';', '>':
		return true
	}
	return unicode.IsDigit(r) || r == '"' || r == '\'' || r == '`'
}

// overlapConsistency checks the chunk's span against its predecessor:
// configured overlap should be present, and no overlap should appear when
// none is configured.
func overlapConsistency(chunk types.Chunk, prev *types.Chunk, config types.ChunkingConfig) (float64, bool) {
	if prev == nil {
		return 1, false
	}
	actual := prev.Metadata.EndOffset - chunk.Metadata.StartOffset
	expectOverlap := config.PreserveContext && config.Overlap > 0
	switch {
	case expectOverlap && actual <= 0:
		// Oversized atomic units legitimately skip the overlap prefix.
		if chunk.Metadata.HasFlag(types.FlagExceedsMaxSize) || prev.Metadata.HasFlag(types.FlagExceedsMaxSize) {
			return 1, false
		}
		return 0.5, true
	case !expectOverlap && actual > 0:
		return 0, true
	default:
		return 1, false
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
