package ai

import (
	"sync/atomic"

	"github.com/blairify/interview-engine/internal/domain"
)

// Stub is a deterministic generator for dev environments without an API key.
// It cycles through canned interviewer questions.
type Stub struct{ counter int64 }

// NewStub constructs a Stub generator.
func NewStub() *Stub { return &Stub{} }

var stubReplies = []string{
	"Thanks for sharing that. Can you explain how you would profile a slow endpoint in production?",
	"Interesting approach. What trade-offs did you consider when choosing that data structure?",
	"Let's go deeper. How would you test the failure path of that code without flaky sleeps?",
	"Good context. Can you describe how you would design the caching layer for this workload?",
}

// Chat returns the next canned reply. It never fails.
func (s *Stub) Chat(_ domain.Context, _, _ string) (domain.GenResult, error) {
	i := atomic.AddInt64(&s.counter, 1)
	return domain.GenResult{
		Content: stubReplies[int(i)%len(stubReplies)],
		Success: true,
	}, nil
}
