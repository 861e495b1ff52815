package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blairify/interview-engine/internal/domain"
)

func bankQuestion(id, topic, difficulty string) domain.Question {
	return domain.Question{
		ID:         id,
		Title:      "Question " + id,
		Topic:      topic,
		Difficulty: difficulty,
		Prompt:     "Explain " + topic + ".",
		TechStack:  []string{"react", "node"},
		Positions:  []string{"frontend", "fullstack"},
		Status:     domain.QuestionStatusPublished,
	}
}

func selectorCfg() domain.InterviewConfig {
	return domain.InterviewConfig{
		Position:       "Frontend Developer",
		Seniority:      domain.SeniorityMid,
		InterviewStyle: domain.InterviewTechnical,
		Technologies:   []string{"React"},
		TotalQuestions: 8,
	}
}

func newTestSelector(repo *fakeQuestionRepo, cache *fakeCache, seed int64) *QuestionSelector {
	s := NewQuestionSelector(repo, cache, 100)
	s.seed = func() int64 { return seed }
	return s
}

func TestSelectFiltersConjunctively(t *testing.T) {
	t.Parallel()
	good := bankQuestion("good", "algorithms", "junior")

	wrongTier := bankQuestion("wrong-tier", "algorithms", "senior")
	wrongTopic := bankQuestion("wrong-topic", "behavioral", "junior")
	wrongStack := bankQuestion("wrong-stack", "algorithms", "middle")
	wrongStack.TechStack = []string{"rust", "elixir"}
	wrongRole := bankQuestion("wrong-role", "algorithms", "middle")
	wrongRole.Positions = []string{"data-engineer"}

	repo := &fakeQuestionRepo{questions: []domain.Question{good, wrongTier, wrongTopic, wrongStack, wrongRole}}
	got := newTestSelector(repo, newFakeCache(), 7).Select(context.Background(), selectorCfg(), 10)

	require.Len(t, got, 1)
	assert.Equal(t, "good", got[0].ID)
}

func TestSelectAdjacentDifficultyBands(t *testing.T) {
	t.Parallel()
	repo := &fakeQuestionRepo{questions: []domain.Question{
		bankQuestion("a", "backend", "entry"),
		bankQuestion("b", "backend", "junior"),
		bankQuestion("c", "backend", "middle"),
		bankQuestion("d", "backend", "senior"),
	}}
	cfg := selectorCfg()
	cfg.Position = ""
	cfg.Technologies = nil

	got := newTestSelector(repo, newFakeCache(), 7).Select(context.Background(), cfg, 10)
	ids := make(map[string]bool, len(got))
	for _, q := range got {
		ids[q.ID] = true
	}
	assert.Equal(t, map[string]bool{"b": true, "c": true}, ids,
		"mid candidates draw from junior and middle only")
}

func TestSelectExcludesRecentlyUsedAndMarksReturned(t *testing.T) {
	t.Parallel()
	repo := &fakeQuestionRepo{questions: []domain.Question{
		bankQuestion("q1", "algorithms", "junior"),
		bankQuestion("q2", "algorithms", "junior"),
	}}
	cache := newFakeCache()
	cache.MarkUsed(context.Background(), "q1")

	got := newTestSelector(repo, cache, 7).Select(context.Background(), selectorCfg(), 10)
	require.Len(t, got, 1)
	assert.Equal(t, "q2", got[0].ID)
	assert.True(t, cache.WasRecentlyUsed(context.Background(), "q2"),
		"returned questions are marked used")
}

func TestSelectShuffleIsSeedDeterministic(t *testing.T) {
	t.Parallel()
	questions := make([]domain.Question, 0, 12)
	for i := 0; i < 12; i++ {
		questions = append(questions, bankQuestion(fmt.Sprintf("q%02d", i), "algorithms", "junior"))
	}

	run := func(seed int64) []string {
		repo := &fakeQuestionRepo{questions: questions}
		return idsOf(newTestSelector(repo, newFakeCache(), seed).Select(context.Background(), selectorCfg(), 5))
	}

	first := run(42)
	second := run(42)
	require.Len(t, first, 5, "selection truncates to the requested count")
	assert.Equal(t, first, second, "same seed yields the same order")
}

func idsOf(questions []domain.Question) []string {
	out := make([]string, len(questions))
	for i, q := range questions {
		out[i] = q.ID
	}
	return out
}

func TestSelectOneSkipsExcludedAndCachedIDs(t *testing.T) {
	t.Parallel()
	repo := &fakeQuestionRepo{questions: []domain.Question{
		bankQuestion("asked-1", "algorithms", "junior"),
		bankQuestion("asked-2", "algorithms", "junior"),
		bankQuestion("cached", "algorithms", "junior"),
		bankQuestion("fresh", "algorithms", "junior"),
	}}
	cache := newFakeCache()
	cache.MarkUsed(context.Background(), "cached")

	q, ok := newTestSelector(repo, cache, 7).SelectOne(context.Background(), selectorCfg(),
		[]string{"asked-1", "asked-2"})
	require.True(t, ok)
	assert.Equal(t, "fresh", q.ID)
	assert.True(t, cache.WasRecentlyUsed(context.Background(), "fresh"),
		"the picked question is marked used")
}

func TestSelectOneIsSeedDeterministic(t *testing.T) {
	t.Parallel()
	questions := make([]domain.Question, 0, 10)
	for i := 0; i < 10; i++ {
		questions = append(questions, bankQuestion(fmt.Sprintf("q%02d", i), "algorithms", "junior"))
	}

	run := func() string {
		repo := &fakeQuestionRepo{questions: questions}
		q, ok := newTestSelector(repo, newFakeCache(), 42).SelectOne(context.Background(), selectorCfg(), nil)
		require.True(t, ok)
		return q.ID
	}
	assert.Equal(t, run(), run())
}

func TestSelectOneEmptyPoolReportsNone(t *testing.T) {
	t.Parallel()
	repo := &fakeQuestionRepo{questions: []domain.Question{
		bankQuestion("only", "algorithms", "junior"),
	}}
	_, ok := newTestSelector(repo, newFakeCache(), 7).SelectOne(context.Background(), selectorCfg(),
		[]string{"only"})
	assert.False(t, ok)
}

func TestSelectRepositoryFailureSelectsNone(t *testing.T) {
	t.Parallel()
	repo := &fakeQuestionRepo{err: errors.New("pool exhausted")}
	got := newTestSelector(repo, newFakeCache(), 7).Select(context.Background(), selectorCfg(), 5)
	assert.Empty(t, got)
}
