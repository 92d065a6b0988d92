package merger

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/textchunk-mcp/pkg/types"
)

func testConfig(maxSize, minSize int) types.ChunkingConfig {
	config := types.DefaultConfig()
	config.MaxChunkSize = maxSize
	config.MinChunkSize = minSize
	config.Overlap = 0
	config.PreserveContext = false
	return config
}

// seq builds an adjacent chunk sequence with the given payload sizes.
func seq(sizes ...int) []types.Chunk {
	chunks := make([]types.Chunk, len(sizes))
	offset := 0
	for i, n := range sizes {
		text := strings.Repeat(string(rune('a'+i%26)), n)
		chunks[i] = types.Chunk{
			Text: text,
			Metadata: types.ChunkMetadata{
				ContentType: types.ContentPlainText,
				Index:       i,
				StartOffset: offset,
				EndOffset:   offset + n,
			},
		}
		chunks[i].ComputeFingerprint()
		offset += n + 1
	}
	return chunks
}

func sizesOf(chunks []types.Chunk, config types.ChunkingConfig) []int {
	out := make([]int, len(chunks))
	for i := range chunks {
		out[i] = chunks[i].Size(config)
	}
	return out
}

func TestMergeCombinesAdjacentUndersized(t *testing.T) {
	config := testConfig(600, 50)
	merged := New().Merge(seq(10, 10, 500), config)

	require.Len(t, merged, 2)
	assert.Equal(t, []int{20, 500}, sizesOf(merged, config))
	assert.Equal(t, []int{0, 1}, merged[0].Metadata.MergedFrom)
	assert.True(t, merged[0].Metadata.HasFlag(types.FlagMerged))
	assert.Empty(t, merged[1].Metadata.MergedFrom)

	for i, c := range merged {
		assert.Equal(t, i, c.Metadata.Index, "output is reindexed")
	}
}

func TestMergeIsIdempotent(t *testing.T) {
	config := testConfig(600, 50)
	m := New()

	once := m.Merge(seq(10, 10, 500), config)
	twice := m.Merge(once, config)

	assert.Equal(t, once, twice)
}

func TestMergePrefersSuccessor(t *testing.T) {
	config := testConfig(200, 50)
	merged := New().Merge(seq(100, 10, 100), config)

	require.Len(t, merged, 2)
	// The undersized middle chunk joins its successor, not predecessor.
	assert.Equal(t, []int{100, 110}, sizesOf(merged, config))
	assert.Equal(t, []int{1, 2}, merged[1].Metadata.MergedFrom)
}

func TestMergeFinalChunkUsesPredecessor(t *testing.T) {
	config := testConfig(200, 50)
	merged := New().Merge(seq(100, 10), config)

	require.Len(t, merged, 1)
	assert.Equal(t, 110, merged[0].Size(config))
	assert.Equal(t, []int{0, 1}, merged[0].Metadata.MergedFrom)
}

func TestMergeFlagsUnmergeable(t *testing.T) {
	config := testConfig(100, 50)
	merged := New().Merge(seq(95, 10, 95), config)

	require.Len(t, merged, 3)
	assert.True(t, merged[1].Metadata.HasFlag(types.FlagUnmergeableUndersized))
	assert.LessOrEqual(t, merged[1].Size(config), 100, "max size is never violated to fix min size")
	assert.Empty(t, merged[1].Metadata.MergedFrom)
}

func TestMergeFlagsUnmergeableFinalChunk(t *testing.T) {
	config := testConfig(100, 50)
	merged := New().Merge(seq(95, 10), config)

	require.Len(t, merged, 2)
	assert.True(t, merged[1].Metadata.HasFlag(types.FlagUnmergeableUndersized))
}

func TestMergeRecomputesQualityAndFingerprint(t *testing.T) {
	config := testConfig(600, 50)
	in := seq(10, 10, 500)
	in[0].Metadata.QualityScore = 0.1
	in[1].Metadata.QualityScore = 0.9

	merged := New().Merge(in, config)
	require.Len(t, merged, 2)

	avg := (0.1 + 0.9) / 2
	assert.NotEqual(t, avg, merged[0].Metadata.QualityScore, "score is recomputed, not averaged")
	assert.NotEmpty(t, merged[0].Fingerprint)
	assert.NotEqual(t, in[0].Fingerprint, merged[0].Fingerprint)
	assert.Equal(t, in[0].Metadata.StartOffset, merged[0].Metadata.StartOffset)
	assert.Equal(t, in[1].Metadata.EndOffset, merged[0].Metadata.EndOffset)
}

func TestMergeDropsDuplicatedOverlapBytes(t *testing.T) {
	config := testConfig(600, 50)
	a := types.Chunk{
		Text:     "shared tail",
		Metadata: types.ChunkMetadata{ContentType: types.ContentPlainText, Index: 0, StartOffset: 0, EndOffset: 11},
	}
	b := types.Chunk{
		Text:     "tail and more text to read",
		Metadata: types.ChunkMetadata{ContentType: types.ContentPlainText, Index: 1, StartOffset: 7, EndOffset: 33},
	}
	a.ComputeFingerprint()
	b.ComputeFingerprint()

	merged := New().Merge([]types.Chunk{a, b}, config)
	require.Len(t, merged, 1)
	assert.Equal(t, "shared tail and more text to read", merged[0].Text)
	assert.Equal(t, 0, merged[0].Metadata.StartOffset)
	assert.Equal(t, 33, merged[0].Metadata.EndOffset)
}

func TestMergeEmptyAndSingle(t *testing.T) {
	config := testConfig(100, 50)
	m := New()

	assert.Empty(t, m.Merge(nil, config))

	single := m.Merge(seq(10), config)
	require.Len(t, single, 1)
	assert.True(t, single[0].Metadata.HasFlag(types.FlagUnmergeableUndersized),
		"a lone undersized chunk has no merge partner")
}
