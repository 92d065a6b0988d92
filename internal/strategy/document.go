package strategy

import (
	"regexp"
	"strings"

	"github.com/dshills/textchunk-mcp/pkg/types"
)

var markdownHeaderPattern = regexp.MustCompile(`^#{1,6}\s+\S`)

// DocumentAware splits structured documents at header boundaries first,
// subdividing an oversized section by paragraph. The atomic unit is a
// header together with one paragraph; a lone paragraph larger than the
// ceiling is emitted flagged rather than split mid-paragraph.
type DocumentAware struct{}

func (s *DocumentAware) ContentType() types.ContentType {
	return types.ContentDocument
}

func (s *DocumentAware) Split(content string, config types.ChunkingConfig) ([]types.Chunk, error) {
	if err := checkInput(content, config); err != nil {
		return nil, err
	}
	sections := scanSections(content)
	p := packer{
		content:            content,
		config:             config,
		fallback:           scanParagraphs,
		preferStrongBreaks: true,
	}
	return assemble(content, p.packAll(sections), types.ContentDocument, config), nil
}

// scanSections tiles the content into header-delimited sections. Content
// before the first header forms its own section.
func scanSections(content string) []unit {
	var starts []int
	offset := 0
	for _, line := range strings.SplitAfter(content, "\n") {
		if markdownHeaderPattern.MatchString(line) {
			starts = append(starts, offset)
		}
		offset += len(line)
	}
	if len(starts) == 0 || starts[0] > 0 {
		starts = append([]int{0}, starts...)
	}
	units := make([]unit, 0, len(starts))
	for i, s := range starts {
		end := len(content)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		secStart := skipLeftWhitespace(content, s, end)
		secEnd := trimRightWhitespace(content[:end], end)
		if secStart < secEnd {
			units = append(units, unit{start: secStart, end: secEnd, strongBreak: true})
		}
	}
	return units
}
