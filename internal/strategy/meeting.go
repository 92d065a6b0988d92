package strategy

import (
	"regexp"
	"strings"

	"github.com/dshills/textchunk-mcp/pkg/types"
)

// Speaker-turn openers: "[00:12:34] Alice:", "12:04 Bob:", "Carol (00:12):".
var turnOpenerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\[?\d{1,2}:\d{2}(:\d{2})?\]?\s+[\p{L}][\p{L} .'-]{0,40}:\s`),
	regexp.MustCompile(`^[\p{L}][\p{L} .'-]{0,40}\s\(\d{1,2}:\d{2}(:\d{2})?\):\s?`),
	regexp.MustCompile(`^[\p{L}][\p{L} .'-]{0,40}:\s`),
}

// MeetingAware splits transcripts at speaker-turn boundaries. A full
// speaker turn is the atomic unit; a single turn exceeding the ceiling is
// repacked at word granularity.
type MeetingAware struct{}

func (s *MeetingAware) ContentType() types.ContentType {
	return types.ContentMeeting
}

func (s *MeetingAware) Split(content string, config types.ChunkingConfig) ([]types.Chunk, error) {
	if err := checkInput(content, config); err != nil {
		return nil, err
	}
	turns := scanSpeakerTurns(content)
	p := packer{content: content, config: config, fallback: scanWords}
	return assemble(content, p.packAll(turns), types.ContentMeeting, config), nil
}

// scanSpeakerTurns tiles the content into speaker turns. Transcripts
// without recognizable turn openers degrade to paragraph units.
func scanSpeakerTurns(content string) []unit {
	var starts []int
	offset := 0
	for _, line := range strings.SplitAfter(content, "\n") {
		if isTurnOpener(line) {
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
		turnStart := skipLeftWhitespace(content, s, end)
		turnEnd := trimRightWhitespace(content[:end], end)
		if turnStart < turnEnd {
			units = append(units, unit{start: turnStart, end: turnEnd, strongBreak: true})
		}
	}
	return units
}

func isTurnOpener(line string) bool {
	for _, p := range turnOpenerPatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}
