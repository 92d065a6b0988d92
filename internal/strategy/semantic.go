package strategy

import (
	"unicode"
	"unicode/utf8"

	"github.com/dshills/textchunk-mcp/pkg/types"
)

// SemanticChunker splits prose at sentence boundaries, preferring to end
// chunks at paragraph breaks. Boundary preference is ranked: a paragraph
// break scores highest, a sentence break next, and a plain word boundary
// lowest (the word-granularity fallback for a single oversized sentence).
type SemanticChunker struct{}

func (s *SemanticChunker) ContentType() types.ContentType {
	return types.ContentPlainText
}

func (s *SemanticChunker) Split(content string, config types.ChunkingConfig) ([]types.Chunk, error) {
	if err := checkInput(content, config); err != nil {
		return nil, err
	}
	sentences := scanSentences(content, 0, len(content))
	p := packer{
		content:            content,
		config:             config,
		fallback:           scanWords,
		preferStrongBreaks: true,
	}
	return assemble(content, p.packAll(sentences), types.ContentPlainText, config), nil
}

// sentence-terminating and trailing-closer rune sets
func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isCloser(r rune) bool {
	return r == '"' || r == '\'' || r == ')' || r == ']' || r == '”'
}

// scanSentences tiles [start, end) into sentence units. A sentence ends
// at a terminator run followed by whitespace or end of input. Sentences
// followed by a blank line are marked as strong (paragraph) breaks.
func scanSentences(content string, start, end int) []unit {
	var units []unit
	pos := start
	for pos < end {
		// Skip inter-sentence whitespace.
		for pos < end {
			r, size := utf8.DecodeRuneInString(content[pos:end])
			if !unicode.IsSpace(r) {
				break
			}
			pos += size
		}
		if pos >= end {
			break
		}
		sentStart := pos
		sentEnd := -1
		for pos < end {
			r, size := utf8.DecodeRuneInString(content[pos:end])
			pos += size
			if !isTerminator(r) {
				continue
			}
			// Consume the full terminator/closer run.
			for pos < end {
				r2, s2 := utf8.DecodeRuneInString(content[pos:end])
				if !isTerminator(r2) && !isCloser(r2) {
					break
				}
				pos += s2
			}
			if pos >= end {
				sentEnd = pos
				break
			}
			if r2, _ := utf8.DecodeRuneInString(content[pos:end]); unicode.IsSpace(r2) {
				sentEnd = pos
				break
			}
		}
		if sentEnd < 0 {
			// Trailing text without a terminator is one sentence.
			sentEnd = trimRightWhitespace(content[:pos], pos)
		}
		units = append(units, unit{
			start:       sentStart,
			end:         sentEnd,
			strongBreak: followedByBlankLine(content, sentEnd, end),
		})
		pos = sentEnd
	}
	return units
}

// followedByBlankLine reports whether the whitespace run after pos
// contains at least two newlines, i.e. a paragraph break.
func followedByBlankLine(content string, pos, end int) bool {
	newlines := 0
	for pos < end {
		r, size := utf8.DecodeRuneInString(content[pos:end])
		if !unicode.IsSpace(r) {
			return false
		}
		if r == '\n' {
			newlines++
			if newlines >= 2 {
				return true
			}
		}
		pos += size
	}
	// End of input counts as the strongest possible break.
	return true
}
