package strategy

import (
	"regexp"
	"strings"

	"github.com/dshills/textchunk-mcp/pkg/types"
)

// Message openers like "alice [9:41 AM]" or "bob.smith [14:02]".
var messageHeaderPattern = regexp.MustCompile(`^[\w.-]+\s+\[\d{1,2}:\d{2}(\s?(AM|PM))?\]`)

// ThreadAware splits chat threads at message boundaries. A full message
// (header line plus its body) is the atomic unit; one oversized message
// is repacked at word granularity.
type ThreadAware struct{}

func (s *ThreadAware) ContentType() types.ContentType {
	return types.ContentSlack
}

func (s *ThreadAware) Split(content string, config types.ChunkingConfig) ([]types.Chunk, error) {
	if err := checkInput(content, config); err != nil {
		return nil, err
	}
	messages := scanMessages(content)
	p := packer{content: content, config: config, fallback: scanWords}
	return assemble(content, p.packAll(messages), types.ContentSlack, config), nil
}

// scanMessages tiles the content into per-message units. Threads without
// recognizable message headers degrade to paragraph units.
func scanMessages(content string) []unit {
	var starts []int
	offset := 0
	for _, line := range strings.SplitAfter(content, "\n") {
		if messageHeaderPattern.MatchString(line) {
			starts = append(starts, offset)
		}
		offset += len(line)
	}
	if len(starts) == 0 {
		return scanParagraphs(content, 0, len(content))
	}
	if starts[0] > 0 {
		starts = append([]int{0}, starts...)
	}
	units := make([]unit, 0, len(starts))
	for i, s := range starts {
		end := len(content)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		msgStart := skipLeftWhitespace(content, s, end)
		msgEnd := trimRightWhitespace(content[:end], end)
		if msgStart < msgEnd {
			units = append(units, unit{start: msgStart, end: msgEnd, strongBreak: true})
		}
	}
	return units
}
