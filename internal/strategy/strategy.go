package strategy

import (
	"fmt"
	"strings"

	"github.com/dshills/textchunk-mcp/pkg/types"
)

// Strategy splits content of one type into candidate chunks. Candidate
// chunks leave here pre-validation: quality scoring and merge repair are
// the validator's and merger's jobs. Strategies are stateless and safe to
// share across concurrent invocations.
type Strategy interface {
	// ContentType returns the type this strategy handles.
	ContentType() types.ContentType

	// Split produces the ordered candidate chunk sequence. It respects
	// MaxChunkSize as a hard ceiling and never splits inside an atomic
	// unit; a lone atomic unit exceeding the ceiling is emitted flagged
	// rather than truncated. Fails with types.ErrInvalidConfig on a bad
	// config and types.ErrUnsupportedContent on empty content.
	Split(content string, config types.ChunkingConfig) ([]types.Chunk, error)
}

// The strategy set is closed: one implementation per content type,
// selected by lookup. Instances are stateless package-level singletons.
// Plain text routes to the semantic chunker; FixedSize remains available
// directly and serves as the oversized-unit fallback for the other
// strategies.
var registry = map[types.ContentType]Strategy{
	types.ContentPlainText: &SemanticChunker{},
	types.ContentCode:      &CodeAware{},
	types.ContentDocument:  &DocumentAware{},
	types.ContentMeeting:   &MeetingAware{},
	types.ContentGitCommit: &CommitAware{},
	types.ContentSlack:     &ThreadAware{},
	types.ContentEmail:     &EmailAware{},
}

// ForContentType returns the strategy registered for the given type.
func ForContentType(ct types.ContentType) (Strategy, error) {
	s, ok := registry[ct]
	if !ok {
		return nil, fmt.Errorf("no strategy for content type %q: %w", ct, types.ErrUnknownContentType)
	}
	return s, nil
}

// checkInput applies the shared Split preconditions. The processor
// validates the config before dispatch, but a strategy invoked directly
// must not trust its caller.
func checkInput(content string, config types.ChunkingConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("cannot split empty content: %w", types.ErrUnsupportedContent)
	}
	return nil
}
