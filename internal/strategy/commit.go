package strategy

import (
	"regexp"
	"strings"

	"github.com/dshills/textchunk-mcp/pkg/types"
)

var (
	diffHeaderPattern    = regexp.MustCompile(`^diff --git a/`)
	commitTrailerPattern = regexp.MustCompile(`^(Signed-off-by|Co-authored-by|Reviewed-by|Acked-by|Tested-by|Reported-by|Fixes|Closes|Refs|See-also|Cc):\s`)
)

// CommitAware splits commit messages and their diffs. The message part
// splits at paragraph boundaries with each trailer line kept as its own
// atomic unit; the diff part splits at per-file `diff --git` boundaries.
// A single oversized unit (typically one large file diff) is repacked at
// line granularity so diff lines stay whole.
type CommitAware struct{}

func (s *CommitAware) ContentType() types.ContentType {
	return types.ContentGitCommit
}

func (s *CommitAware) Split(content string, config types.ChunkingConfig) ([]types.Chunk, error) {
	if err := checkInput(content, config); err != nil {
		return nil, err
	}
	units := scanCommitUnits(content)
	p := packer{content: content, config: config, fallback: scanLines}
	return assemble(content, p.packAll(units), types.ContentGitCommit, config), nil
}

// scanCommitUnits tiles a commit blob into message paragraphs, trailer
// lines, and per-file diff sections, in source order.
func scanCommitUnits(content string) []unit {
	diffStart := len(content)
	offset := 0
	for _, line := range strings.SplitAfter(content, "\n") {
		if diffHeaderPattern.MatchString(line) {
			diffStart = offset
			break
		}
		offset += len(line)
	}

	var units []unit
	for _, para := range scanParagraphs(content, 0, diffStart) {
		units = append(units, splitTrailerParagraph(content, para)...)
	}
	units = append(units, scanDiffSections(content, diffStart)...)
	return units
}

// splitTrailerParagraph breaks a paragraph made of commit trailers into
// one unit per trailer line. Mixed or ordinary paragraphs pass through
// as a single unit.
func splitTrailerParagraph(content string, para unit) []unit {
	lines := scanLines(content, para.start, para.end)
	if len(lines) < 1 {
		return []unit{para}
	}
	for _, ln := range lines {
		if !commitTrailerPattern.MatchString(content[ln.start:ln.end]) {
			return []unit{para}
		}
	}
	for i := range lines {
		lines[i].strongBreak = i == len(lines)-1
	}
	return lines
}

// scanDiffSections tiles [start, len) into per-file diff units.
func scanDiffSections(content string, start int) []unit {
	if start >= len(content) {
		return nil
	}
	var starts []int
	offset := start
	for _, line := range strings.SplitAfter(content[start:], "\n") {
		if diffHeaderPattern.MatchString(line) {
			starts = append(starts, offset)
		}
		offset += len(line)
	}
	if len(starts) == 0 {
		starts = []int{start}
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
