package strategy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/textchunk-mcp/pkg/types"
)

const shortThread = `alice [9:41 AM]
deploy is out, watching the dashboards now
bob.smith [9:43 AM]
latency p99 looks flat, nice work
carol [9:45 AM]
rolling the canary to 100%
`

func TestThreadSplitsAtMessageBoundaries(t *testing.T) {
	s := &ThreadAware{}
	chunks, err := s.Split(shortThread, testConfig(70, 5, 0))
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	assert.True(t, strings.HasPrefix(chunks[0].Text, "alice [9:41 AM]"))
	assert.True(t, strings.HasPrefix(chunks[1].Text, "bob.smith [9:43 AM]"))
	assert.True(t, strings.HasPrefix(chunks[2].Text, "carol [9:45 AM]"))
	for _, c := range chunks {
		assert.Equal(t, types.ContentSlack, c.Metadata.ContentType)
	}
}

func TestThreadGroupsMessagesUnderBudget(t *testing.T) {
	s := &ThreadAware{}
	chunks, err := s.Split(shortThread, testConfig(400, 5, 0))
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, stripSpace(shortThread), stripSpace(chunks[0].Text))
}

func TestThreadOversizedMessageFallsBackToWords(t *testing.T) {
	content := "alice [9:41 AM]\n" + strings.Repeat("update ", 30) + "end\n"
	config := testConfig(60, 5, 0)
	s := &ThreadAware{}
	chunks, err := s.Split(content, config)
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)

	for _, c := range chunks {
		assert.LessOrEqual(t, c.Size(config), 60)
		assert.False(t, c.Metadata.HasFlag(types.FlagExceedsMaxSize))
	}
	assert.Equal(t, stripSpace(content), stripSpace(joinTexts(chunks)))
}
