package processor

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/textchunk-mcp/pkg/types"
)

const sampleProse = "The deploy finished ahead of schedule. Nothing paged overnight. " +
	"The team reviewed the dashboards in the morning and closed out the change ticket."

func smallConfig() *types.ChunkingConfig {
	config := types.DefaultConfig()
	config.MaxChunkSize = 80
	config.MinChunkSize = 10
	config.Overlap = 0
	config.PreserveContext = false
	return &config
}

func TestChunkContentRejectsEmptyInput(t *testing.T) {
	p := New(0)
	for _, content := range []string{"", "   ", "\n\t\n"} {
		_, err := p.ChunkContent(Request{Content: content})
		assert.ErrorIs(t, err, types.ErrEmptyContent, "content %q", content)
	}
}

func TestChunkContentRejectsInvalidConfig(t *testing.T) {
	p := New(0)
	config := types.DefaultConfig()
	config.MinChunkSize = config.MaxChunkSize + 1

	_, err := p.ChunkContent(Request{Content: sampleProse, Config: &config})
	assert.ErrorIs(t, err, types.ErrInvalidConfig)
}

func TestChunkContentRejectsUnknownContentType(t *testing.T) {
	p := New(0)
	_, err := p.ChunkContent(Request{Content: sampleProse, ContentType: "spreadsheet"})
	assert.ErrorIs(t, err, types.ErrUnknownContentType)
}

func TestChunkContentDetectsWhenTypeOmitted(t *testing.T) {
	p := New(0)
	resp, err := p.ChunkContent(Request{Content: sampleProse, Config: smallConfig()})
	require.NoError(t, err)

	assert.True(t, resp.Detected)
	assert.Equal(t, types.ContentPlainText, resp.ContentType)
	assert.NotEmpty(t, resp.Chunks)
}

func TestChunkContentSuppliedTypeWins(t *testing.T) {
	p := New(0)
	resp, err := p.ChunkContent(Request{
		Content:     sampleProse,
		ContentType: types.ContentDocument,
		Config:      smallConfig(),
	})
	require.NoError(t, err)

	assert.False(t, resp.Detected)
	assert.Equal(t, types.ContentDocument, resp.ContentType)
	for _, c := range resp.Chunks {
		assert.Equal(t, types.ContentDocument, c.Metadata.ContentType)
	}
}

func TestChunkContentCachedRunsAreIdentical(t *testing.T) {
	p := New(10)
	req := Request{Content: sampleProse, Config: smallConfig()}

	first, err := p.ChunkContent(req)
	require.NoError(t, err)
	assert.False(t, first.CacheHit)

	second, err := p.ChunkContent(req)
	require.NoError(t, err)
	assert.True(t, second.CacheHit)
	assert.Equal(t, first.Chunks, second.Chunks, "cached and computed output must be byte-identical")
}

func TestChunkContentUncachedMatchesCached(t *testing.T) {
	cached := New(10)
	uncachedConfig := *smallConfig()
	uncachedConfig.EnableCaching = false

	a, err := cached.ChunkContent(Request{Content: sampleProse, Config: smallConfig()})
	require.NoError(t, err)
	b, err := New(10).ChunkContent(Request{Content: sampleProse, Config: &uncachedConfig})
	require.NoError(t, err)

	assert.Equal(t, a.Chunks, b.Chunks)
}

func TestChunkContentHonorsSizeBounds(t *testing.T) {
	p := New(0)
	config := smallConfig()
	resp, err := p.ChunkContent(Request{Content: sampleProse, Config: config})
	require.NoError(t, err)

	for _, c := range resp.Chunks {
		if c.Metadata.HasFlag(types.FlagExceedsMaxSize) {
			continue
		}
		assert.LessOrEqual(t, c.Size(*config), config.MaxChunkSize)
		require.NoError(t, c.Validate())
	}
}

func TestCacheManagement(t *testing.T) {
	p := New(10)
	req := Request{Content: sampleProse, Config: smallConfig()}

	_, err := p.ChunkContent(req)
	require.NoError(t, err)
	assert.Equal(t, 1, p.CacheLen())

	p.InvalidateCache(sampleProse, *smallConfig())
	assert.Zero(t, p.CacheLen())

	_, err = p.ChunkContent(req)
	require.NoError(t, err)
	p.ClearCache()
	assert.Zero(t, p.CacheLen())
}

func TestDetectContentType(t *testing.T) {
	p := New(0)
	ct := p.DetectContentType("func main() {\n\tfmt.Println(\"hi\")\n}\n")
	assert.Equal(t, types.ContentCode, ct)
}

func TestChunkBatch(t *testing.T) {
	p := New(10)
	reqs := []Request{
		{Content: sampleProse, Config: smallConfig()},
		{Content: "Short note about the rollout for the on-call handoff.", Config: smallConfig()},
		{Content: strings.Repeat("status update. ", 30), Config: smallConfig()},
	}

	responses, err := p.ChunkBatch(context.Background(), reqs)
	require.NoError(t, err)
	require.Len(t, responses, len(reqs))

	for i, resp := range responses {
		require.NotNil(t, resp, "response %d", i)
		assert.NotEmpty(t, resp.Chunks)
	}

	// Results align with request order.
	single, err := p.ChunkContent(reqs[1])
	require.NoError(t, err)
	assert.Equal(t, single.Chunks, responses[1].Chunks)
}

func TestChunkBatchPropagatesFailure(t *testing.T) {
	p := New(10)
	reqs := []Request{
		{Content: sampleProse, Config: smallConfig()},
		{Content: "   "},
	}

	_, err := p.ChunkBatch(context.Background(), reqs)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrEmptyContent)
}
