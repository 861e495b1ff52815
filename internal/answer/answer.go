// Package answer derives deterministic signals from candidate answer text.
// Everything here is pure string analysis; the follow-up heuristic and the
// scoring engine are built on these predicates and must stay reproducible,
// so the pattern lists are fixed and carry no tunable state.
package answer

import (
	"regexp"
	"strings"
)

// SkipMarker is the literal the client sends when the candidate skips a
// question instead of answering it.
const SkipMarker = "[Question skipped]"

// Substantive-answer thresholds. An answer below either bound is treated as
// "very short" by the quality check and penalized by the scoring engine.
const (
	MinSubstantiveChars = 20
	MinSubstantiveWords = 4
)

var noAnswerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\s*\[question skipped\]\s*$`),
	regexp.MustCompile(`(?i)^\s*skip(?:ped)?\s*$`),
	regexp.MustCompile(`(?i)^\s*pass\s*$`),
	regexp.MustCompile(`(?i)^\s*next\s*$`),
	regexp.MustCompile(`(?i)^\s*i\s*don'?t\s*know\s*\.?$`),
	regexp.MustCompile(`(?i)^\s*idk\s*\.?$`),
	regexp.MustCompile(`(?i)^\s*dunno\s*\.?$`),
	regexp.MustCompile(`(?i)^\s*no\s*idea\s*\.?$`),
	regexp.MustCompile(`(?i)^\s*not\s*sure\s*\.?$`),
	regexp.MustCompile(`(?i)^\s*i'?m\s*not\s*sure\s*\.?$`),
	regexp.MustCompile(`(?i)^\s*i\s*have\s*no\s*idea\s*\.?$`),
	regexp.MustCompile(`(?i)^\s*don'?t\s*know\s*\.?$`),
	regexp.MustCompile(`(?i)^\s*no\s*clue\s*\.?$`),
	regexp.MustCompile(`(?i)^\s*unsure\s*\.?$`),
	regexp.MustCompile(`(?i)^\s*unknown\s*\.?$`),
	regexp.MustCompile(`(?i)^\s*maybe\s*\.?$`),
	regexp.MustCompile(`(?i)^\s*perhaps\s*\.?$`),
	regexp.MustCompile(`(?i)^\s*possibly\s*\.?$`),
	regexp.MustCompile(`(?i)^\s*i\s*think\s*\.?$`),
	regexp.MustCompile(`(?i)^\s*not\s*really\s*\.?$`),
	regexp.MustCompile(`(?i)^\s*kind\s*of\s*\.?$`),
	regexp.MustCompile(`(?i)^\s*sort\s*of\s*\.?$`),
	regexp.MustCompile(`(?i)^\s*um+\s*\.?$`),
	regexp.MustCompile(`(?i)^\s*uh+\s*\.?$`),
	regexp.MustCompile(`(?i)^\s*er+\s*\.?$`),
	regexp.MustCompile(`(?i)^\s*hmm+\s*\.?$`),
	regexp.MustCompile(`(?i)^\s*well+\s*\.?$`),
	regexp.MustCompile(`^\s*\.+\s*$`),
	regexp.MustCompile(`^\s*\?+\s*$`),
}

var gibberishPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[^a-zA-Z0-9\s]{5,}$`),
	regexp.MustCompile(`(?i)^\s*lol+\s*$`),
	regexp.MustCompile(`(?i)^\s*haha+\s*$`),
	regexp.MustCompile(`(?i)^\s*ok+\s*$`),
	regexp.MustCompile(`(?i)^\s*okay+\s*$`),
	regexp.MustCompile(`(?i)^\s*yes\s*$`),
	regexp.MustCompile(`(?i)^\s*no\s*$`),
	regexp.MustCompile(`(?i)^\s*nope\s*$`),
	regexp.MustCompile(`(?i)^\s*yep\s*$`),
	regexp.MustCompile(`(?i)^\s*sure\s*$`),
	regexp.MustCompile(`(?i)^\s*fine\s*$`),
	regexp.MustCompile(`(?i)^\s*whatever\s*$`),
	regexp.MustCompile(`^[0-9]+$`),
	regexp.MustCompile(`^[a-z]$`),
}

var (
	codeExampleRe = regexp.MustCompile("```|function|class|const|let|var|\\{|\\}")
	explanationRe = regexp.MustCompile(`(?i)because|reason|why|how|when|since|due to`)
	technologyRe  = regexp.MustCompile(`(?i)react|javascript|typescript|node|python|sql|api|database`)
)

// Quality is the lightweight answer-quality verdict used by the scoring
// engine and session aggregation.
type Quality struct {
	IsNoAnswer  bool
	IsGibberish bool
	IsVeryShort bool
	WordCount   int
	CharCount   int
}

// AssessQuality classifies an answer as no-answer, gibberish, or very short.
// The categories are not exclusive; callers check them in that order.
func AssessQuality(text string) Quality {
	content := strings.TrimSpace(text)
	words := strings.Fields(content)

	q := Quality{
		WordCount: len(words),
		CharCount: len(content),
	}
	q.IsNoAnswer = matchesAny(content, noAnswerPatterns)
	q.IsGibberish = isRepeatedRune(content) || matchesAny(content, gibberishPatterns)
	q.IsVeryShort = q.CharCount < MinSubstantiveChars || q.WordCount < MinSubstantiveWords
	return q
}

// Characteristics are the signals the follow-up heuristic and scoring engine
// combine. Length is the trimmed byte length, matching how the thresholds
// were calibrated.
type Characteristics struct {
	HasCodeExample     bool
	HasExplanation     bool
	MentionsTechnology bool
	Length             int
	QualityIndicators  int
}

// Analyze extracts characteristics from an answer.
func Analyze(text string) Characteristics {
	c := Characteristics{
		HasCodeExample:     codeExampleRe.MatchString(text),
		HasExplanation:     explanationRe.MatchString(text),
		MentionsTechnology: technologyRe.MatchString(text),
		Length:             len(strings.TrimSpace(text)),
	}
	if c.HasCodeExample {
		c.QualityIndicators += 2
	}
	if c.HasExplanation {
		c.QualityIndicators += 2
	}
	if c.MentionsTechnology {
		c.QualityIndicators++
	}
	if c.Length >= 100 && c.Length <= 500 {
		c.QualityIndicators += 2
	}
	return c
}

// IsUnknown reports whether an answer signals lack of knowledge or an
// explicit skip. Unlike AssessQuality it matches anywhere in the text, so
// "I don't know much about that, but..." still counts.
func IsUnknown(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "don't know") ||
		strings.Contains(lower, "not sure") ||
		strings.Contains(lower, "idk") ||
		strings.Contains(lower, "no idea") ||
		text == SkipMarker
}

func matchesAny(content string, patterns []*regexp.Regexp) bool {
	for _, re := range patterns {
		if re.MatchString(content) {
			return true
		}
	}
	return false
}

// isRepeatedRune reports whether the text is a single rune repeated six or
// more times ("aaaaaa", "......").
func isRepeatedRune(content string) bool {
	runes := []rune(content)
	if len(runes) < 6 {
		return false
	}
	for _, r := range runes[1:] {
		if r != runes[0] {
			return false
		}
	}
	return true
}
