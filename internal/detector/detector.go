package detector

import (
	"regexp"
	"strings"

	"github.com/dshills/textchunk-mcp/pkg/types"
)

// minConfidence is the score floor below which detection falls back to
// plain text. Scores are normalized to [0,1] per heuristic.
const minConfidence = 0.2

// maxSampleLines bounds how much of the input the heuristics scan.
// Structural markers cluster near the top of real documents.
const maxSampleLines = 200

var (
	emailHeaderPattern   = regexp.MustCompile(`(?m)^(From|To|Subject|Cc|Date|Reply-To|Message-ID):\s`)
	diffPattern          = regexp.MustCompile(`(?m)^diff --git a/`)
	commitLinePattern    = regexp.MustCompile(`(?m)^commit [0-9a-f]{7,40}\b`)
	trailerPattern       = regexp.MustCompile(`(?m)^(Signed-off-by|Co-authored-by|Reviewed-by|Fixes|Closes|Refs):\s`)
	speakerTurnPattern   = regexp.MustCompile(`(?m)^\[?\d{1,2}:\d{2}(:\d{2})?\]?\s+[\p{L}][\p{L} .'-]{0,40}:\s`)
	bareSpeakerPattern   = regexp.MustCompile(`(?m)^[\p{L}][\p{L} .'-]{0,40}\s\(\d{1,2}:\d{2}(:\d{2})?\):\s?`)
	slackHeaderPattern   = regexp.MustCompile(`(?m)^[\w.-]+\s+\[\d{1,2}:\d{2}(\s?(AM|PM))?\]`)
	slackMarkerPattern   = regexp.MustCompile(`(?m)(^#[\w-]+\b|<@[A-Z0-9]+>|:\w+:|replied to a thread)`)
	headerLinePattern    = regexp.MustCompile(`(?m)^#{1,6}\s+\S`)
	codeSignaturePattern = regexp.MustCompile(`(?m)^\s*(func\s+\w+|def\s+\w+|class\s+\w+|public\s+(static\s+)?\w+|fn\s+\w+|(var|let|const)\s+\w+\s*=|import\s|#include\s|package\s+\w+)`)
	codePunctPattern     = regexp.MustCompile(`[{};]\s*$`)
)

// Detector classifies raw content into a ContentType using structural
// heuristics. Detection is deterministic and side-effect-free: the same
// content always yields the same type, and ambiguous input resolves to
// plain text rather than failing.
type Detector struct{}

// New creates a new Detector instance.
func New() *Detector {
	return &Detector{}
}

// Detect classifies content. It never fails; plain text is the universal
// fallback. Callers that already know the type should bypass detection by
// supplying it explicitly, which always takes precedence.
func (d *Detector) Detect(content string) types.ContentType {
	lines := sampleLines(content)
	if len(lines) == 0 {
		return types.ContentPlainText
	}
	sample := strings.Join(lines, "\n")

	// Fixed evaluation order keeps ties deterministic: more specific
	// formats are scored before more general ones.
	scores := []struct {
		contentType types.ContentType
		score       float64
	}{
		{types.ContentGitCommit, scoreGitCommit(sample, lines)},
		{types.ContentEmail, scoreEmail(sample, lines)},
		{types.ContentMeeting, scoreMeeting(sample, lines)},
		{types.ContentSlack, scoreSlack(sample, lines)},
		{types.ContentCode, scoreCode(sample, lines)},
		{types.ContentDocument, scoreDocument(sample, lines)},
	}

	best := types.ContentPlainText
	bestScore := minConfidence
	for _, s := range scores {
		if s.score > bestScore {
			best = s.contentType
			bestScore = s.score
		}
	}
	return best
}

// sampleLines caps the input at its first maxSampleLines raw lines.
// Blank lines stay in; the per-line scorers count them in their
// denominators.
func sampleLines(content string) []string {
	all := strings.Split(content, "\n")
	if len(all) > maxSampleLines {
		all = all[:maxSampleLines]
	}
	return all
}

func scoreGitCommit(content string, lines []string) float64 {
	score := 0.0
	if diffPattern.MatchString(content) {
		score += 0.8
	}
	if commitLinePattern.MatchString(content) {
		score += 0.5
	}
	if trailerPattern.MatchString(content) {
		score += 0.4
	}
	return clamp01(score)
}

func scoreEmail(content string, lines []string) float64 {
	// Email is recognized by a header block at the top of the content,
	// not by header-like lines buried mid-document.
	headBlock := lines
	if len(headBlock) > 20 {
		headBlock = headBlock[:20]
	}
	matches := 0
	for _, line := range headBlock {
		if emailHeaderPattern.MatchString(line) {
			matches++
		}
	}
	if matches == 0 {
		return 0
	}
	hasFrom := false
	hasSubject := false
	for _, line := range headBlock {
		if strings.HasPrefix(line, "From:") {
			hasFrom = true
		}
		if strings.HasPrefix(line, "Subject:") {
			hasSubject = true
		}
	}
	score := float64(matches) * 0.2
	if hasFrom && hasSubject {
		score += 0.4
	}
	return clamp01(score)
}

func scoreMeeting(content string, lines []string) float64 {
	turns := 0
	for _, line := range lines {
		if speakerTurnPattern.MatchString(line) || bareSpeakerPattern.MatchString(line) {
			turns++
		}
	}
	if turns < 2 {
		return 0
	}
	return clamp01(float64(turns) / float64(max(len(lines)/3, 2)))
}

func scoreSlack(content string, lines []string) float64 {
	score := 0.0
	headers := 0
	for _, line := range lines {
		if slackHeaderPattern.MatchString(line) {
			headers++
		}
	}
	if headers >= 2 {
		score += 0.6
	}
	markers := len(slackMarkerPattern.FindAllString(content, 6))
	score += float64(markers) * 0.1
	return clamp01(score)
}

func scoreCode(content string, lines []string) float64 {
	signatures := len(codeSignaturePattern.FindAllString(content, 10))
	punct := 0
	for _, line := range lines {
		if codePunctPattern.MatchString(line) {
			punct++
		}
	}
	score := float64(signatures)*0.15 + float64(punct)/float64(max(len(lines), 1))*0.5
	return clamp01(score)
}

func scoreDocument(content string, lines []string) float64 {
	headers := 0
	for _, line := range lines {
		if headerLinePattern.MatchString(line) {
			headers++
		}
	}
	if headers == 0 {
		return 0
	}
	return clamp01(0.3 + float64(headers)*0.15)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
