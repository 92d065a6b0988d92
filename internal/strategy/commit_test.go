package strategy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const commitBlob = `Fix race in session refresh

The refresh goroutine could observe a stale token under load.

Signed-off-by: Dev One <dev@example.com>
Reviewed-by: Dev Two <two@example.com>

diff --git a/session.go b/session.go
index 1111111..2222222 100644
--- a/session.go
+++ b/session.go
@@ -10,6 +10,7 @@ func (s *Session) refresh() {
+	s.mu.Lock()
 	tok := s.token
`

func TestCommitSeparatesMessageFromDiff(t *testing.T) {
	s := &CommitAware{}
	chunks, err := s.Split(commitBlob, testConfig(140, 5, 0))
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)

	assert.True(t, strings.HasPrefix(chunks[0].Text, "Fix race"))
	var diffChunks int
	for _, c := range chunks {
		if strings.HasPrefix(c.Text, "diff --git") {
			diffChunks++
		}
	}
	assert.Equal(t, 1, diffChunks, "diff should start its own chunk")
}

func TestCommitKeepsTrailerLinesWhole(t *testing.T) {
	s := &CommitAware{}
	chunks, err := s.Split(commitBlob, testConfig(80, 5, 0))
	require.NoError(t, err)

	trailers := []string{
		"Signed-off-by: Dev One <dev@example.com>",
		"Reviewed-by: Dev Two <two@example.com>",
	}
	for _, trailer := range trailers {
		var hits int
		for _, c := range chunks {
			if strings.Contains(c.Text, trailer) {
				hits++
			}
		}
		assert.Equal(t, 1, hits, "trailer %q should land whole in one chunk", trailer)
	}
}

func TestCommitOversizedDiffFallsBackToLines(t *testing.T) {
	var b strings.Builder
	b.WriteString("Add generated table\n\n")
	b.WriteString("diff --git a/table.go b/table.go\n")
	for i := 0; i < 20; i++ {
		b.WriteString("+	{Key: \"entry\", Value: 1},\n")
	}
	content := b.String()

	config := testConfig(100, 5, 0)
	s := &CommitAware{}
	chunks, err := s.Split(content, config)
	require.NoError(t, err)
	require.Greater(t, len(chunks), 2)

	for _, c := range chunks {
		assert.LessOrEqual(t, c.Size(config), 100)
		// Diff lines stay whole.
		for _, line := range strings.Split(c.Text, "\n") {
			if line == "" {
				continue
			}
			assert.Contains(t, content, line+"\n")
		}
	}
}

func TestCommitMessageOnly(t *testing.T) {
	content := "Bump dependency versions\n\nRoutine monthly update.\n"
	s := &CommitAware{}
	chunks, err := s.Split(content, testConfig(200, 5, 0))
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, strings.TrimRight(content, "\n"), chunks[0].Text)
}
