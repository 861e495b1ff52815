package usecase

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/blairify/interview-engine/internal/domain"
	"github.com/blairify/interview-engine/pkg/textx"
)

// Generated-text bounds. Overlong text is truncated rather than rejected;
// text over the sentence cap keeps its first six sentences.
const (
	minGeneratedLength = 10
	maxGeneratedLength = 2000
	truncateAt         = 1800
	maxSentences       = 8
	keepSentences      = 6
)

// Refusal phrasings that must never reach the candidate.
var refusalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)I cannot help with that`),
	regexp.MustCompile(`(?i)I'm not able to assist`),
	regexp.MustCompile(`(?i)This violates`),
	regexp.MustCompile(`(?i)I can't provide`),
	regexp.MustCompile(`(?i)As an AI`),
}

var (
	interviewerCueRe = regexp.MustCompile(`(?i)let's|can you|what|how|why|tell me|describe|explain`)
	codingContextRe  = regexp.MustCompile(`(?i)code|function|algorithm|implement|solution|programming`)
)

// Validation is the verdict on one generated reply. Sanitized carries a
// reformatted variant when the text is valid but needed cleanup.
type Validation struct {
	IsValid   bool
	Reason    string
	Sanitized string
}

// ValidateGenerated checks one generated reply before it is shown to the
// candidate. On rejection the caller substitutes a fixed fallback; generation
// is never retried.
func ValidateGenerated(text string, cfg domain.InterviewConfig, isFollowUp bool) Validation {
	if strings.TrimSpace(text) == "" {
		return Validation{Reason: "empty response"}
	}
	if len(text) < minGeneratedLength {
		return Validation{Reason: "response too short"}
	}
	if len(text) > maxGeneratedLength {
		cut := truncateAt
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		return Validation{
			IsValid:   true,
			Sanitized: text[:cut] + "... [Response truncated for clarity]",
		}
	}

	for _, re := range refusalPatterns {
		if re.MatchString(text) {
			return Validation{Reason: "contains refusal phrasing"}
		}
	}

	if !cfg.DemoMode && !isFollowUp {
		if !strings.Contains(text, "?") {
			return Validation{Reason: "main interview response should contain a question"}
		}
		if !interviewerCueRe.MatchString(text) {
			return Validation{Reason: "response lacks interviewer voice"}
		}
	}

	if cfg.InterviewStyle == domain.InterviewCoding && !cfg.DemoMode && !codingContextRe.MatchString(text) {
		return Validation{Reason: "coding interview should reference programming concepts"}
	}

	if sentences := textx.SplitSentences(text); len(sentences) > maxSentences {
		return Validation{
			IsValid:   true,
			Sanitized: strings.Join(sentences[:keepSentences], ". ") + ". [Question continued...]",
		}
	}

	return Validation{IsValid: true}
}

// Fallback returns the deterministic substitute used whenever generation
// fails or validation rejects the reply.
func Fallback(cfg domain.InterviewConfig, isFollowUp bool) string {
	if cfg.DemoMode {
		return "That's interesting! Let me ask you another question to help you explore our interview system. What interests you most about this field?"
	}
	if isFollowUp {
		return "Thank you for that explanation. Let's move on to the next question."
	}
	return "Let me ask you a fundamental question about your experience. Can you describe your approach to solving technical problems?"
}
