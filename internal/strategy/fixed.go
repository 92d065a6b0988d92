package strategy

import "github.com/dshills/textchunk-mcp/pkg/types"

// FixedSize walks fixed unit windows over the content, cutting only at
// word boundaries. It is the simplest member of the strategy set and the
// subdivision fallback the chat-like strategies use for oversized units.
type FixedSize struct{}

func (s *FixedSize) ContentType() types.ContentType {
	return types.ContentPlainText
}

func (s *FixedSize) Split(content string, config types.ChunkingConfig) ([]types.Chunk, error) {
	if err := checkInput(content, config); err != nil {
		return nil, err
	}
	words := scanWords(content, 0, len(content))
	p := packer{content: content, config: config}
	return assemble(content, p.packAll(words), types.ContentPlainText, config), nil
}
