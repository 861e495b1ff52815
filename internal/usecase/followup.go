package usecase

import (
	"strings"

	"github.com/blairify/interview-engine/internal/answer"
	"github.com/blairify/interview-engine/internal/domain"
)

// Follow-up decision constants. The weight table below is calibrated against
// real sessions; changing any weight shifts follow-up frequency globally.
const (
	followUpThreshold      = 2
	maxConsecutiveFollowUp = 2
)

// ShouldFollowUp decides whether the next interviewer turn probes deeper into
// the current answer instead of advancing to a fresh question. It is a pure
// function of its arguments.
func ShouldFollowUp(answerText string, history []domain.ConversationTurn, cfg domain.InterviewConfig, questionCount int) bool {
	if len(strings.TrimSpace(answerText)) < 10 {
		return false
	}
	if questionCount >= cfg.TotalQuestions {
		return false
	}
	if answer.IsUnknown(answerText) {
		return false
	}

	c := answer.Analyze(answerText)

	score := 0

	switch {
	case c.Length >= 100 && c.Length <= 500:
		score += 2
	case c.Length > 500:
		score++
	case c.Length < 50:
		score--
	}

	score += c.QualityIndicators

	if recentFollowUps(history) >= maxConsecutiveFollowUp {
		score -= 2
	}

	if cfg.InterviewStyle == domain.InterviewCoding && c.HasCodeExample {
		score++
	}
	if cfg.InterviewStyle == domain.InterviewSystemDesign && c.Length > 200 {
		score++
	}
	if cfg.InterviewStyle == domain.InterviewRapidFire && c.Length > 150 {
		score--
	}

	if cfg.Seniority == domain.SenioritySenior && c.Length < 100 {
		score++
	}
	if cfg.Seniority == domain.SeniorityJunior && c.Length > 300 {
		score++
	}

	return score >= followUpThreshold
}

// recentFollowUps counts follow-up interviewer turns among the trailing four.
func recentFollowUps(history []domain.ConversationTurn) int {
	start := len(history) - 4
	if start < 0 {
		start = 0
	}
	n := 0
	for _, turn := range history[start:] {
		if turn.Role == domain.RoleInterviewer && turn.IsFollowUp {
			n++
		}
	}
	return n
}

// ShouldComplete reports whether the session is over after answering a
// non-follow-up turn. Follow-up turns never complete a session.
func ShouldComplete(questionCount, totalQuestions int, isFollowUp bool) bool {
	if isFollowUp {
		return false
	}
	return questionCount >= totalQuestions
}

// CompletionMessage is the fixed closing line for naturally finished sessions.
func CompletionMessage(demoMode bool) string {
	if demoMode {
		return "Great job exploring the demo! You've seen how our AI interview system works - it's conversational, supportive, and designed to help you showcase your best self. When you're ready for a full interview, just head back to the configure page. Thanks for trying out!"
	}
	return "Excellent work! That concludes our interview session. You've demonstrated strong knowledge and problem-solving skills. I'll now analyze your responses and prepare detailed feedback. Thank you for your time!"
}
