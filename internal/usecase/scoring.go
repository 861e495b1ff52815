package usecase

import (
	"fmt"
	"math"
	"strings"

	obsadapter "github.com/blairify/interview-engine/internal/adapter/observability"
	"github.com/blairify/interview-engine/internal/answer"
	"github.com/blairify/interview-engine/internal/domain"
	"github.com/blairify/interview-engine/internal/observability"
)

// ScoreResponse derives the four-dimension score tuple from one answer.
// Empty, no-answer, and gibberish answers score zero across the board.
func ScoreResponse(text string) domain.ResponseScore {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return domain.ResponseScore{}
	}

	q := answer.AssessQuality(trimmed)
	if q.IsNoAnswer || q.IsGibberish {
		return domain.ResponseScore{}
	}

	c := answer.Analyze(trimmed)

	communication := pick(c.HasExplanation, 45, 15) + lengthBand(c.Length, 80, 30)
	technical := pick(c.MentionsTechnology, 35, 10) + pick(c.HasCodeExample, 35, 0) + pick(c.HasExplanation, 20, 10)
	problemSolving := pick(c.HasExplanation, 40, 10) + pick(c.HasCodeExample, 35, 0) + lengthBand(c.Length, 120, 60)

	penalty := 0
	if q.IsVeryShort {
		penalty = 25
	}

	communication = clampScore(float64(communication - penalty))
	technical = clampScore(float64(technical - penalty))
	problemSolving = clampScore(float64(problemSolving - penalty))

	// Identical bars read as a rendering bug, so nudge tied dimensions apart
	// according to which signals were present.
	if communication == technical && technical == problemSolving {
		switch {
		case c.HasCodeExample:
			communication = clampScore(float64(communication + 2))
			technical = clampScore(float64(technical + 1))
			problemSolving = clampScore(float64(problemSolving - 3))
		case c.HasExplanation:
			communication = clampScore(float64(communication + 1))
			technical = clampScore(float64(technical + 2))
			problemSolving = clampScore(float64(problemSolving - 3))
		default:
			communication = clampScore(float64(communication + 1))
			technical = clampScore(float64(technical - 1))
		}
	}

	return domain.ResponseScore{
		Overall:        clampScore(float64(technical+communication+problemSolving) / 3),
		Technical:      technical,
		Communication:  communication,
		ProblemSolving: problemSolving,
	}
}

// ScoreSession averages per-dimension scores over responses whose overall is
// non-zero. It returns nil when no response qualifies so that "no score" is
// distinguishable from a true zero.
func ScoreSession(scores []domain.ResponseScore) *domain.ResponseScore {
	var sum domain.ResponseScore
	n := 0
	for _, s := range scores {
		if s.Overall == 0 {
			continue
		}
		sum.Overall += s.Overall
		sum.Technical += s.Technical
		sum.Communication += s.Communication
		sum.ProblemSolving += s.ProblemSolving
		n++
	}
	if n == 0 {
		return nil
	}
	return &domain.ResponseScore{
		Overall:        clampScore(float64(sum.Overall) / float64(n)),
		Technical:      clampScore(float64(sum.Technical) / float64(n)),
		Communication:  clampScore(float64(sum.Communication) / float64(n)),
		ProblemSolving: clampScore(float64(sum.ProblemSolving) / float64(n)),
	}
}

func pick(cond bool, yes, no int) int {
	if cond {
		return yes
	}
	return no
}

// lengthBand awards 25 at or above the high bound, 15 at or above the low
// bound, 5 otherwise.
func lengthBand(length, high, low int) int {
	switch {
	case length >= high:
		return 25
	case length >= low:
		return 15
	default:
		return 5
	}
}

func clampScore(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	r := int(math.Round(v))
	if r < 0 {
		return 0
	}
	if r > 100 {
		return 100
	}
	return r
}

// Scorer is the worker-side service: it loads a session's responses, scores
// each, and persists per-response and session-level results.
type Scorer struct {
	sessions domain.SessionRepository
}

func NewScorer(sessions domain.SessionRepository) *Scorer {
	return &Scorer{sessions: sessions}
}

// ScoreSessionByID processes one queued scoring task.
func (s *Scorer) ScoreSessionByID(ctx domain.Context, sessionID string) error {
	log := observability.LoggerFromContext(ctx).With("session_id", sessionID)

	responses, err := s.sessions.ListResponses(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("op=scorer.list_responses: %w", err)
	}

	scores := make([]domain.ResponseScore, 0, len(responses))
	for _, r := range responses {
		score := ScoreResponse(r.Text)
		scores = append(scores, score)
		if err := s.sessions.UpdateResponseScore(ctx, r.ID, score); err != nil {
			return fmt.Errorf("op=scorer.update_response: %w", err)
		}
	}

	aggregate := ScoreSession(scores)
	if err := s.sessions.UpdateSessionScore(ctx, sessionID, aggregate); err != nil {
		return fmt.Errorf("op=scorer.update_session: %w", err)
	}

	if aggregate != nil {
		obsadapter.SessionScoreHistogram.Observe(float64(aggregate.Overall))
		log.Info("session scored", "responses", len(responses), "overall", aggregate.Overall)
	} else {
		log.Info("session scored", "responses", len(responses), "overall", "none")
	}
	return nil
}
