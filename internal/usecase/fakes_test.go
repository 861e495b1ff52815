package usecase

import (
	"errors"
	"sync"

	"github.com/blairify/interview-engine/internal/domain"
)

type fakeQuestionRepo struct {
	questions []domain.Question
	err       error
}

func (f *fakeQuestionRepo) ListPublished(_ domain.Context, _, _ string, limit int) ([]domain.Question, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.questions) {
		return f.questions[:limit], nil
	}
	return f.questions, nil
}

func (f *fakeQuestionRepo) GetByID(_ domain.Context, id string) (domain.Question, error) {
	for _, q := range f.questions {
		if q.ID == id {
			return q, nil
		}
	}
	return domain.Question{}, domain.ErrNotFound
}

type fakeCache struct {
	mu   sync.Mutex
	used map[string]bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{used: make(map[string]bool)}
}

func (f *fakeCache) WasRecentlyUsed(_ domain.Context, id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.used[id]
}

func (f *fakeCache) MarkUsed(_ domain.Context, id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.used[id] = true
}

type fakeSessionRepo struct {
	mu             sync.Mutex
	responses      []domain.SessionResponse
	responseScores map[string]domain.ResponseScore
	sessionScore   *domain.ResponseScore
	scoreUpdated   bool
	status         string
	warningCount   int
	listErr        error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{responseScores: make(map[string]domain.ResponseScore)}
}

func (f *fakeSessionRepo) Create(_ domain.Context, s domain.Session) (string, error) {
	return "session-1", nil
}

func (f *fakeSessionRepo) Get(_ domain.Context, id string) (domain.Session, error) {
	return domain.Session{ID: id, Status: f.status}, nil
}

func (f *fakeSessionRepo) AppendResponse(_ domain.Context, r domain.SessionResponse) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, r)
	return "resp-1", nil
}

func (f *fakeSessionRepo) ListResponses(_ domain.Context, _ string) ([]domain.SessionResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.responses, nil
}

func (f *fakeSessionRepo) UpdateStatus(_ domain.Context, _, status string, warningCount, _ int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = status
	f.warningCount = warningCount
	return nil
}

func (f *fakeSessionRepo) UpdateResponseScore(_ domain.Context, id string, score domain.ResponseScore) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responseScores[id] = score
	return nil
}

func (f *fakeSessionRepo) UpdateSessionScore(_ domain.Context, _ string, score *domain.ResponseScore) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessionScore = score
	f.scoreUpdated = true
	return nil
}

type fakeQueue struct {
	mu       sync.Mutex
	payloads []domain.ScoreTaskPayload
	err      error
}

func (f *fakeQueue) EnqueueScore(_ domain.Context, p domain.ScoreTaskPayload) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.payloads = append(f.payloads, p)
	return "task-1", nil
}

type fakeGenerator struct {
	content  string
	success  bool
	err      error
	calls    int
	lastUser string
}

func (f *fakeGenerator) Chat(_ domain.Context, _, user string) (domain.GenResult, error) {
	f.calls++
	f.lastUser = user
	if f.err != nil {
		return domain.GenResult{}, f.err
	}
	return domain.GenResult{Content: f.content, Success: f.success}, nil
}

var errStorage = errors.New("storage unavailable")
