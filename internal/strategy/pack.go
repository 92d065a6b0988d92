package strategy

import (
	"unicode"
	"unicode/utf8"

	"github.com/dshills/textchunk-mcp/pkg/types"
)

// unit is an atomic span of the source content: the smallest piece the
// owning strategy refuses to split mid-way. Units never include leading
// or trailing whitespace; the gaps between consecutive units are pure
// whitespace separators.
type unit struct {
	start int
	end   int
	// strongBreak marks a paragraph-grade boundary following this unit.
	// The packer prefers cutting chunks at strong breaks.
	strongBreak bool
}

// span is a packed chunk span prior to chunk assembly.
type span struct {
	start int
	end   int
	flags []string
}

// packer groups atomic units into chunk spans within the size budget.
type packer struct {
	content string
	config  types.ChunkingConfig
	// fallback rescans an oversized unit at finer granularity (words for
	// chat-like content, statement lines for code, paragraphs for
	// documents). When nil, or when even a fallback unit exceeds the
	// ceiling, the unit is emitted flagged exceeds_max_size: truncation
	// would corrupt semantics, so the size violation is deferred to the
	// validator and merger.
	fallback func(content string, start, end int) []unit
	// preferStrongBreaks backtracks a forced cut to the most recent
	// paragraph-grade boundary when enough content remains.
	preferStrongBreaks bool
}

func (p *packer) measure(start, end int) int {
	return p.config.Measure(p.content[start:end])
}

// budget is the per-chunk fill target. When overlap context is carried,
// every chunk reserves room for the overlap prefix so the hard ceiling
// still holds after assembly.
func (p *packer) budget() int {
	if p.config.PreserveContext && p.config.Overlap > 0 {
		return p.config.MaxChunkSize - p.config.Overlap
	}
	return p.config.MaxChunkSize
}

func (p *packer) pack(units []unit) []span {
	var spans []span
	budget := p.budget()
	i := 0
	for i < len(units) {
		if p.measure(units[i].start, units[i].end) > p.config.MaxChunkSize {
			spans = append(spans, p.oversized(units[i]))
			i++
			continue
		}
		// Greedy fill: extend through the last unit that keeps the
		// chunk within budget.
		cut := i
		for j := i + 1; j < len(units); j++ {
			if p.measure(units[i].start, units[j].end) > budget {
				break
			}
			cut = j
		}
		// Boundary preference: when the fill stopped mid-sequence at a
		// weak boundary, retreat to the nearest strong break that still
		// leaves a chunk of at least minimum size.
		if p.preferStrongBreaks && cut+1 < len(units) && !units[cut].strongBreak {
			for m := cut - 1; m > i; m-- {
				if units[m].strongBreak {
					if p.measure(units[i].start, units[m].end) >= p.config.MinChunkSize {
						cut = m
					}
					break
				}
			}
		}
		spans = append(spans, span{start: units[i].start, end: units[cut].end})
		i = cut + 1
	}
	return spans
}

// oversized flags a unit that exceeds the ceiling on its own. Fallback
// subdivision is handled before pack sees the unit (see packAll).
func (p *packer) oversized(u unit) span {
	return span{start: u.start, end: u.end, flags: []string{types.FlagExceedsMaxSize}}
}

// packAll packs units, rescanning oversized units through the fallback
// scanner when one is set. This is the entry point strategies use; pack
// handles one homogeneous run.
func (p *packer) packAll(units []unit) []span {
	if p.fallback == nil {
		return p.pack(units)
	}
	var spans []span
	run := make([]unit, 0, len(units))
	flush := func() {
		if len(run) > 0 {
			spans = append(spans, p.pack(run)...)
			run = run[:0]
		}
	}
	for _, u := range units {
		if p.measure(u.start, u.end) > p.config.MaxChunkSize {
			flush()
			finer := p.fallback(p.content, u.start, u.end)
			sub := packer{content: p.content, config: p.config}
			spans = append(spans, sub.pack(finer)...)
			continue
		}
		run = append(run, u)
	}
	flush()
	return spans
}

// assemble turns packed spans into ordered candidate chunks, applying the
// overlap prefix and computing offsets and fingerprints.
func assemble(content string, spans []span, ct types.ContentType, config types.ChunkingConfig) []types.Chunk {
	chunks := make([]types.Chunk, 0, len(spans))
	for idx, sp := range spans {
		start := sp.start
		if idx > 0 && config.PreserveContext && config.Overlap > 0 && len(sp.flags) == 0 {
			start = overlapStart(content, spans[idx-1].start, sp.start, sp.end, config)
		}
		c := types.Chunk{
			Text: content[start:sp.end],
			Metadata: types.ChunkMetadata{
				ContentType:  ct,
				Index:        idx,
				StartOffset:  start,
				EndOffset:    sp.end,
				QualityFlags: append([]string(nil), sp.flags...),
			},
		}
		c.ComputeFingerprint()
		chunks = append(chunks, c)
	}
	return chunks
}

// overlapStart moves a chunk's start backward by the configured overlap,
// clamped to the previous span, capped at the headroom the span leaves
// under MaxChunkSize, and snapped to a word boundary so the overlap
// prefix never begins mid-word.
func overlapStart(content string, prevStart, curStart, curEnd int, config types.ChunkingConfig) int {
	want := config.Overlap
	room := config.MaxChunkSize
	if config.Unit == types.UnitTokens {
		want *= types.TokensPerChar
		room *= types.TokensPerChar
	}
	// A span filled past the reduced budget cannot take the full prefix.
	room -= utf8.RuneCountInString(content[curStart:curEnd])
	if want > room {
		want = room
	}
	if want <= 0 {
		return curStart
	}
	pos := curStart
	for want > 0 && pos > prevStart {
		_, size := utf8.DecodeLastRuneInString(content[prevStart:pos])
		pos -= size
		want--
	}
	if pos == prevStart {
		return pos
	}
	// Landed mid-word: advance past the partial word.
	prev, _ := utf8.DecodeLastRuneInString(content[:pos])
	if !unicode.IsSpace(prev) {
		for pos < curStart {
			r, size := utf8.DecodeRuneInString(content[pos:])
			pos += size
			if unicode.IsSpace(r) {
				break
			}
		}
	}
	for pos < curStart {
		r, size := utf8.DecodeRuneInString(content[pos:])
		if !unicode.IsSpace(r) {
			break
		}
		pos += size
	}
	return pos
}

// scanWords tiles [start, end) into whitespace-delimited word units.
func scanWords(content string, start, end int) []unit {
	var units []unit
	pos := start
	for pos < end {
		r, size := utf8.DecodeRuneInString(content[pos:end])
		if unicode.IsSpace(r) {
			pos += size
			continue
		}
		wordStart := pos
		for pos < end {
			r, size = utf8.DecodeRuneInString(content[pos:end])
			if unicode.IsSpace(r) {
				break
			}
			pos += size
		}
		units = append(units, unit{start: wordStart, end: pos})
	}
	return units
}

// scanParagraphs tiles [start, end) into blank-line-separated paragraph
// units. Every paragraph is marked a strong break.
func scanParagraphs(content string, start, end int) []unit {
	var units []unit
	region := content[start:end]
	pos := 0
	for pos < len(region) {
		// Skip leading whitespace between paragraphs.
		next := pos
		for next < len(region) {
			r, size := utf8.DecodeRuneInString(region[next:])
			if !unicode.IsSpace(r) {
				break
			}
			next += size
		}
		if next >= len(region) {
			break
		}
		paraStart := next
		paraEnd := paraStart
		for paraEnd < len(region) {
			nl := indexNewline(region, paraEnd)
			if nl < 0 {
				paraEnd = len(region)
				break
			}
			lineEnd := nl
			// A blank line ends the paragraph.
			if isBlankUntilNewline(region, nl+1) {
				paraEnd = lineEnd
				break
			}
			paraEnd = nl + 1
		}
		units = append(units, unit{
			start:       start + paraStart,
			end:         start + trimRightWhitespace(region, paraEnd),
			strongBreak: true,
		})
		pos = paraEnd + 1
	}
	return units
}

func indexNewline(s string, from int) int {
	for i := from; i < len(s); i++ {
		if s[i] == '\n' {
			return i
		}
	}
	return -1
}

// isBlankUntilNewline reports whether s[from:] is whitespace up to and
// including the next newline (or end of string).
func isBlankUntilNewline(s string, from int) bool {
	for i := from; i < len(s); i++ {
		if s[i] == '\n' {
			return true
		}
		if s[i] != ' ' && s[i] != '\t' && s[i] != '\r' {
			return false
		}
	}
	return true
}

// skipLeftWhitespace returns the first offset in [start, end) holding a
// non-whitespace rune, or end when none exists.
func skipLeftWhitespace(s string, start, end int) int {
	for start < end {
		r, size := utf8.DecodeRuneInString(s[start:end])
		if !unicode.IsSpace(r) {
			break
		}
		start += size
	}
	return start
}

// trimRightWhitespace returns the end offset of s[:end] with trailing
// whitespace removed.
func trimRightWhitespace(s string, end int) int {
	for end > 0 {
		r, size := utf8.DecodeLastRuneInString(s[:end])
		if !unicode.IsSpace(r) {
			break
		}
		end -= size
	}
	return end
}

// scanLines tiles [start, end) into non-blank line units. Used as the
// statement-granularity fallback for oversized code blocks.
func scanLines(content string, start, end int) []unit {
	var units []unit
	pos := start
	for pos < end {
		nl := indexNewline(content[:end], pos)
		lineEnd := end
		if nl >= 0 {
			lineEnd = nl
		}
		trimmedStart := pos
		for trimmedStart < lineEnd {
			r, size := utf8.DecodeRuneInString(content[trimmedStart:lineEnd])
			if !unicode.IsSpace(r) {
				break
			}
			trimmedStart += size
		}
		trimmedEnd := trimRightWhitespace(content[:lineEnd], lineEnd)
		if trimmedStart < trimmedEnd {
			units = append(units, unit{start: trimmedStart, end: trimmedEnd})
		}
		if nl < 0 {
			break
		}
		pos = nl + 1
	}
	return units
}
