package usecase

import (
	"strings"
	"time"

	obsadapter "github.com/blairify/interview-engine/internal/adapter/observability"
	"github.com/blairify/interview-engine/internal/domain"
	"github.com/blairify/interview-engine/internal/observability"
)

// difficultyBySeniority maps a candidate tier to the question difficulties it
// may draw from. A tier pulls from its own band plus the adjacent one.
var difficultyBySeniority = map[string][]string{
	domain.SeniorityEntry:  {"entry"},
	domain.SeniorityJunior: {"entry", "junior"},
	domain.SeniorityMid:    {"junior", "middle"},
	domain.SenioritySenior: {"middle", "senior"},
}

// topicsByStyle is the per-style topic allow-list applied to a question's
// primary topic.
var topicsByStyle = map[string][]string{
	domain.InterviewTechnical: {
		"algorithms", "data-structures", "frontend", "backend", "database",
		"performance", "testing", "debugging", "api-design", "architecture",
		"cloud", "devops",
	},
	domain.InterviewSystemDesign: {
		"system-design", "scalability", "architecture", "cloud", "devops",
		"performance", "database", "api-design",
	},
	domain.InterviewCoding: {
		"algorithms", "data-structures", "frontend", "backend", "testing",
		"debugging", "performance",
	},
	domain.InterviewRapidFire: {
		"behavioral", "leadership", "communication", "problem-solving",
		"code-review", "debugging",
	},
}

// QuestionSelector picks bank questions matching an interview configuration.
// Repository or cache failures degrade to an empty selection; the caller
// always has the generation fallback.
type QuestionSelector struct {
	repo  domain.QuestionRepository
	cache domain.UsageCache
	limit int

	// test seams
	now  func() time.Time
	seed func() int64
}

func NewQuestionSelector(repo domain.QuestionRepository, cache domain.UsageCache, poolLimit int) *QuestionSelector {
	return &QuestionSelector{
		repo:  repo,
		cache: cache,
		limit: poolLimit,
		now:   time.Now,
		seed:  func() int64 { return time.Now().UnixMilli() },
	}
}

// Select returns up to count eligible questions, shuffled with a time-seeded
// shuffle, and marks each returned question as recently used. Zero matches is
// a valid outcome, not an error.
func (s *QuestionSelector) Select(ctx domain.Context, cfg domain.InterviewConfig, count int) []domain.Question {
	log := observability.LoggerFromContext(ctx)

	pool, err := s.repo.ListPublished(ctx, "", cfg.Position, s.limit)
	if err != nil {
		log.Warn("question fetch failed, selecting none", "error", err)
		return nil
	}

	eligible := make([]domain.Question, 0, len(pool))
	for _, q := range pool {
		if s.cache.WasRecentlyUsed(ctx, q.ID) {
			continue
		}
		if !matchesSeniority(q, cfg.Seniority) || !matchesStyle(q, cfg.InterviewStyle) {
			continue
		}
		if !matchesTechStack(q, cfg.Technologies) || !matchesPosition(q, cfg.Position) {
			continue
		}
		eligible = append(eligible, q)
	}

	obsadapter.QuestionsSelected.Observe(float64(len(eligible)))

	shuffleSeeded(eligible, s.seed())
	if count < len(eligible) {
		eligible = eligible[:count]
	}

	for _, q := range eligible {
		s.cache.MarkUsed(ctx, q.ID)
	}

	log.Debug("question selection done",
		"pool", len(pool), "selected", len(eligible), "requested", count)
	return eligible
}

// SelectOne picks a single eligible question for the next interviewer turn,
// skipping the ids in exclude on top of the recently-used cache. The second
// return is false when nothing in the bank qualifies.
func (s *QuestionSelector) SelectOne(ctx domain.Context, cfg domain.InterviewConfig, exclude []string) (domain.Question, bool) {
	log := observability.LoggerFromContext(ctx)

	pool, err := s.repo.ListPublished(ctx, "", cfg.Position, s.limit)
	if err != nil {
		log.Warn("question fetch failed, selecting none", "error", err)
		return domain.Question{}, false
	}

	excluded := make(map[string]struct{}, len(exclude))
	for _, id := range exclude {
		excluded[id] = struct{}{}
	}

	eligible := make([]domain.Question, 0, len(pool))
	for _, q := range pool {
		if _, skip := excluded[q.ID]; skip {
			continue
		}
		if s.cache.WasRecentlyUsed(ctx, q.ID) {
			continue
		}
		if !matchesSeniority(q, cfg.Seniority) || !matchesStyle(q, cfg.InterviewStyle) {
			continue
		}
		if !matchesTechStack(q, cfg.Technologies) || !matchesPosition(q, cfg.Position) {
			continue
		}
		eligible = append(eligible, q)
	}
	if len(eligible) == 0 {
		log.Debug("no eligible question for turn", "pool", len(pool), "excluded", len(exclude))
		return domain.Question{}, false
	}

	shuffleSeeded(eligible, s.seed())
	q := eligible[0]
	s.cache.MarkUsed(ctx, q.ID)
	return q, true
}

func matchesSeniority(q domain.Question, seniority string) bool {
	for _, d := range difficultyBySeniority[seniority] {
		if q.Difficulty == d {
			return true
		}
	}
	return false
}

func matchesStyle(q domain.Question, style string) bool {
	for _, topic := range topicsByStyle[style] {
		if q.Topic == topic {
			return true
		}
	}
	return false
}

// matchesTechStack passes automatically when the config names no
// technologies; otherwise at least one substring overlap is required, in
// either direction, case-insensitively.
func matchesTechStack(q domain.Question, technologies []string) bool {
	if len(technologies) == 0 {
		return true
	}
	for _, want := range technologies {
		w := strings.ToLower(want)
		for _, have := range q.TechStack {
			h := strings.ToLower(have)
			if strings.Contains(h, w) || strings.Contains(w, h) {
				return true
			}
		}
	}
	return false
}

// matchesPosition passes when no role is configured; otherwise the question's
// topic or declared position list must contain the role.
func matchesPosition(q domain.Question, position string) bool {
	if position == "" {
		return true
	}
	pos := strings.ToLower(position)
	if strings.Contains(strings.ToLower(q.Topic), pos) {
		return true
	}
	for _, p := range q.Positions {
		lp := strings.ToLower(p)
		if strings.Contains(lp, pos) || strings.Contains(pos, lp) {
			return true
		}
	}
	return false
}

// shuffleSeeded is a Fisher-Yates shuffle driven by a small LCG so the same
// seed always produces the same order.
func shuffleSeeded(questions []domain.Question, seed int64) {
	current := seed
	next := func() float64 {
		current = (current*9301 + 49297) % 233280
		if current < 0 {
			current = -current
		}
		return float64(current) / 233280
	}
	for i := len(questions) - 1; i > 0; i-- {
		j := int(next() * float64(i+1))
		questions[i], questions[j] = questions[j], questions[i]
	}
}
