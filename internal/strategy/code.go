package strategy

import (
	"regexp"
	"strings"

	"github.com/dshills/textchunk-mcp/pkg/types"
)

// topLevelDeclPattern matches lines that begin a top-level definition in
// the common curly-brace and indentation-based languages. Only lines at
// column zero qualify; nested definitions stay inside their parent block.
var topLevelDeclPattern = regexp.MustCompile(
	`^(func|fn|fun|def|class|type|interface|struct|impl|trait|enum|module|package|public|private|protected|static|async|export)\b`)

// CodeAware splits source code at top-level function and type boundaries,
// falling back to statement (line) boundaries inside a single definition
// that exceeds the size ceiling on its own.
type CodeAware struct{}

func (s *CodeAware) ContentType() types.ContentType {
	return types.ContentCode
}

func (s *CodeAware) Split(content string, config types.ChunkingConfig) ([]types.Chunk, error) {
	if err := checkInput(content, config); err != nil {
		return nil, err
	}
	blocks := scanCodeBlocks(content)
	p := packer{
		content:            content,
		config:             config,
		fallback:           scanLines,
		preferStrongBreaks: true,
	}
	return assemble(content, p.packAll(blocks), types.ContentCode, config), nil
}

// scanCodeBlocks tiles the content into top-level definition blocks. Any
// preamble before the first definition (package clause, imports, file
// comments) forms its own block. Every block boundary is strong.
func scanCodeBlocks(content string) []unit {
	var starts []int
	offset := 0
	for _, line := range strings.SplitAfter(content, "\n") {
		if topLevelDeclPattern.MatchString(line) {
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
		blockStart := skipLeftWhitespace(content, s, end)
		trimmedEnd := trimRightWhitespace(content[:end], end)
		if blockStart < trimmedEnd {
			units = append(units, unit{start: blockStart, end: trimmedEnd, strongBreak: true})
		}
	}
	return units
}
