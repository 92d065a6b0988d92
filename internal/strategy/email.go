package strategy

import (
	"regexp"
	"strings"

	"github.com/dshills/textchunk-mcp/pkg/types"
)

var headerFieldPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-]*:\s?`)

// EmailAware splits email at the header/body seam: each header field
// (including folded continuation lines) is one atomic unit, and the body
// splits at paragraph boundaries. One oversized unit is repacked at word
// granularity.
type EmailAware struct{}

func (s *EmailAware) ContentType() types.ContentType {
	return types.ContentEmail
}

func (s *EmailAware) Split(content string, config types.ChunkingConfig) ([]types.Chunk, error) {
	if err := checkInput(content, config); err != nil {
		return nil, err
	}
	units := scanEmailUnits(content)
	p := packer{content: content, config: config, fallback: scanWords}
	return assemble(content, p.packAll(units), types.ContentEmail, config), nil
}

// scanEmailUnits tiles the content into header-field units followed by
// body paragraph units. The header block ends at the first blank line;
// content that does not open with a header field is all body.
func scanEmailUnits(content string) []unit {
	if !headerFieldPattern.MatchString(content) {
		return scanParagraphs(content, 0, len(content))
	}

	var units []unit
	offset := 0
	bodyStart := len(content)
	fieldStart := -1
	fieldEnd := -1

	flushField := func() {
		if fieldStart >= 0 && fieldStart < fieldEnd {
			units = append(units, unit{start: fieldStart, end: fieldEnd})
		}
		fieldStart = -1
	}

	for _, line := range strings.SplitAfter(content, "\n") {
		trimmed := strings.TrimRight(line, "\r\n")
		switch {
		case trimmed == "":
			// Blank line ends the header block; the rest is body.
			flushField()
			bodyStart = offset + len(line)
		case headerFieldPattern.MatchString(trimmed):
			flushField()
			fieldStart = offset
			fieldEnd = offset + len(trimmed)
		case strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t"):
			// Folded continuation belongs to the current field.
			fieldEnd = offset + len(trimmed)
		default:
			// Malformed header area: treat from here on as body.
			flushField()
			bodyStart = offset
		}
		if fieldStart < 0 {
			break
		}
		offset += len(line)
	}
	flushField()
	if len(units) > 0 {
		units[len(units)-1].strongBreak = true
	}
	if bodyStart < len(content) {
		units = append(units, scanParagraphs(content, bodyStart, len(content))...)
	}
	return units
}
