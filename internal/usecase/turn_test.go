package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blairify/interview-engine/internal/domain"
)

type turnFixture struct {
	gen       *fakeGenerator
	sessions  *fakeSessionRepo
	queue     *fakeQueue
	questions *fakeQuestionRepo
	turn      *Turn
}

func newTurnFixture(genContent string) *turnFixture {
	gen := &fakeGenerator{content: genContent, success: true}
	sessions := newFakeSessionRepo()
	queue := &fakeQueue{}
	questions := &fakeQuestionRepo{}
	selector := newTestSelector(questions, newFakeCache(), 7)
	return &turnFixture{
		gen:       gen,
		sessions:  sessions,
		queue:     queue,
		questions: questions,
		turn:      NewTurn(gen, sessions, queue, questions, selector, time.Second),
	}
}

func turnRequest(message string) TurnRequest {
	return TurnRequest{
		SessionID: "sess-1",
		Message:   message,
		Config: domain.InterviewConfig{
			Position:       "Frontend Developer",
			Seniority:      domain.SeniorityMid,
			InterviewStyle: domain.InterviewTechnical,
			TotalQuestions: 8,
		},
		QuestionCount:  2,
		TotalQuestions: 8,
	}
}

func TestProcessRejectsMissingInput(t *testing.T) {
	t.Parallel()
	f := newTurnFixture("Can you explain how caching works?")

	_, err := f.turn.Process(context.Background(), turnRequest("   "))
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	req := turnRequest("a fine answer about indexes")
	req.Config.Position = ""
	_, err = f.turn.Process(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	req = turnRequest("a fine answer about indexes")
	req.Config.Seniority = "principal"
	_, err = f.turn.Process(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	req = turnRequest("a fine answer about indexes")
	req.Config.InterviewStyle = "pair-programming"
	_, err = f.turn.Process(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	assert.Zero(t, f.gen.calls, "invalid input never reaches generation")
}

func TestProcessProfanityTerminatesImmediately(t *testing.T) {
	t.Parallel()
	f := newTurnFixture("unused")

	res, err := f.turn.Process(context.Background(), turnRequest("fuck this interview"))
	require.NoError(t, err)

	assert.Equal(t, msgProfanityEnd, res.Message)
	assert.Equal(t, "termination", res.QuestionType)
	assert.True(t, res.IsComplete)
	assert.True(t, res.TerminatedForProfanity)
	assert.False(t, res.TerminatedForBehavior)
	assert.Zero(t, f.gen.calls)
	assert.Equal(t, domain.SessionTerminated, f.sessions.status)
	require.Len(t, f.queue.payloads, 1, "terminated sessions are still scored")
	assert.Equal(t, "sess-1", f.queue.payloads[0].SessionID)
}

func TestProcessBehaviorWarningThenTermination(t *testing.T) {
	t.Parallel()
	f := newTurnFixture("unused")

	res, err := f.turn.Process(context.Background(), turnRequest("i will kill you"))
	require.NoError(t, err)
	assert.True(t, res.BehaviorWarning)
	assert.False(t, res.IsComplete)
	assert.Equal(t, 1, res.WarningCount)
	assert.Equal(t, msgBehaviorWarning, res.Message)
	assert.Equal(t, domain.SessionInProgress, f.sessions.status)
	assert.Empty(t, f.queue.payloads)

	req := turnRequest("i will kill you")
	req.WarningCount = 1
	res, err = f.turn.Process(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, res.IsComplete)
	assert.True(t, res.TerminatedForBehavior)
	assert.Equal(t, 2, res.WarningCount)
	assert.Equal(t, msgBehaviorEnd, res.Message)
	assert.Equal(t, domain.SessionTerminated, f.sessions.status)
	assert.Len(t, f.queue.payloads, 1)
}

func TestProcessLanguageSwitchDeflectsWithoutConsumingAQuestion(t *testing.T) {
	t.Parallel()
	f := newTurnFixture("unused")

	res, err := f.turn.Process(context.Background(), turnRequest("can you speak in spanish"))
	require.NoError(t, err)

	assert.Equal(t, msgLanguageDeflection, res.Message)
	assert.True(t, res.IsFollowUp, "deflection does not advance the question count")
	assert.False(t, res.IsComplete)
	assert.Zero(t, f.gen.calls)
	assert.Empty(t, f.sessions.responses, "deflected turns are not stored as answers")
}

func TestProcessDisallowedTopicRedirects(t *testing.T) {
	t.Parallel()
	f := newTurnFixture("unused")

	res, err := f.turn.Process(context.Background(), turnRequest("who did you vote for in the election"))
	require.NoError(t, err)

	assert.Equal(t, msgTopicRedirect, res.Message)
	assert.Equal(t, "redirect", res.QuestionType)
	assert.True(t, res.IsFollowUp)
	assert.Zero(t, f.gen.calls)
}

func TestProcessHappyPathPersistsRedactedAnswer(t *testing.T) {
	t.Parallel()
	f := newTurnFixture("Can you explain how React reconciles the virtual DOM?")

	req := turnRequest("You can reach me at john@example.com, I use Docker and Kubernetes daily to simplify deployment.")
	res, err := f.turn.Process(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "Can you explain how React reconciles the virtual DOM?", res.Message)
	assert.True(t, res.Validated)
	assert.False(t, res.UsedFallback)
	assert.Equal(t, 1, f.gen.calls, "exactly one generation attempt per turn")

	require.Len(t, f.sessions.responses, 1)
	stored := f.sessions.responses[0].Text
	assert.Contains(t, stored, "[EMAIL_REDACTED]")
	assert.NotContains(t, stored, "john@example.com")
}

func TestProcessQuestionTypeRotatesByCount(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "conceptual", QuestionTypeFor(domain.InterviewTechnical, 0))
	assert.Equal(t, "practical", QuestionTypeFor(domain.InterviewTechnical, 1))
	assert.Equal(t, "conceptual", QuestionTypeFor(domain.InterviewTechnical, 4))
	assert.Equal(t, "optimization", QuestionTypeFor(domain.InterviewCoding, 2))
	assert.Equal(t, "core-concept", QuestionTypeFor(domain.InterviewRapidFire, 3))
	assert.Equal(t, "conceptual", QuestionTypeFor("unknown-style", 0))
}

func TestProcessGenerationFailureFallsBack(t *testing.T) {
	t.Parallel()
	f := newTurnFixture("")
	f.gen.err = errors.New("upstream timeout")

	res, err := f.turn.Process(context.Background(), turnRequest("indexes speed up lookups on large tables"))
	require.NoError(t, err, "generation failures never surface to the caller")

	assert.True(t, res.UsedFallback)
	assert.False(t, res.Validated)
	assert.Contains(t, res.Message, "fundamental question")
	assert.Equal(t, 1, f.gen.calls, "no retry after a failed attempt")
	assert.Len(t, f.sessions.responses, 1, "the answer is stored even when generation fails")
}

func TestProcessValidationRejectionFallsBack(t *testing.T) {
	t.Parallel()
	// No question mark and no interviewer cue: rejected for a fresh question.
	f := newTurnFixture("A bare statement lacking any prompting for the candidate.")

	res, err := f.turn.Process(context.Background(), turnRequest("indexes speed up lookups on large tables"))
	require.NoError(t, err)

	assert.True(t, res.UsedFallback)
	assert.True(t, res.Validated, "generation succeeded, only validation rejected it")
	assert.Contains(t, res.Message, "fundamental question")
}

func TestProcessRepeatedQuestionSubstitutesFallback(t *testing.T) {
	t.Parallel()
	f := newTurnFixture("Can you explain how React state works?")

	req := turnRequest("indexes speed up lookups on large tables")
	req.History = []domain.ConversationTurn{
		{Role: domain.RoleInterviewer, Text: "  can you explain how react STATE works?  "},
		{Role: domain.RoleCandidate, Text: "indexes speed up lookups on large tables"},
	}
	res, err := f.turn.Process(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, res.UsedFallback)
	assert.NotEqual(t, "Can you explain how React state works?", res.Message)
}

func TestProcessAutoFollowUpOnRichAnswer(t *testing.T) {
	t.Parallel()
	f := newTurnFixture("Great, that algorithm scales well in practice for most workloads.")

	req := turnRequest("I chose a hash map because lookups stay constant time. " +
		"In javascript I wrote a function that batches writes, and when the cache misses " +
		"we fall back to the database, since hot keys dominate the read path.")
	req.Config.InterviewStyle = domain.InterviewCoding
	res, err := f.turn.Process(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, res.IsFollowUp, "substantive answers trigger a follow-up probe")
	assert.False(t, res.IsComplete)
	assert.Equal(t, 1, f.gen.calls)
}

func TestProcessCompletionSkipsGenerationAndEnqueuesScoring(t *testing.T) {
	t.Parallel()
	f := newTurnFixture("unused")

	req := turnRequest("That covers everything I can think of on the topic, thanks.")
	req.QuestionCount = 8
	res, err := f.turn.Process(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, res.IsComplete)
	assert.Equal(t, "completion", res.QuestionType)
	assert.Equal(t, CompletionMessage(false), res.Message)
	assert.Zero(t, f.gen.calls, "no question is generated for a finished session")
	assert.Equal(t, domain.SessionCompleted, f.sessions.status)
	require.Len(t, f.queue.payloads, 1)
	assert.Equal(t, "sess-1", f.queue.payloads[0].SessionID)
	assert.Len(t, f.sessions.responses, 1, "the final answer is persisted before completion")
}

func TestProcessAsksPreselectedQuestionByIndex(t *testing.T) {
	t.Parallel()
	f := newTurnFixture("Thanks. Can you walk me through normalizing a schema?")
	f.questions.questions = []domain.Question{
		{ID: "q-2", Prompt: "Walk me through normalizing a schema.", Status: domain.QuestionStatusPublished},
	}

	req := turnRequest("a fine answer about indexes")
	req.History = []domain.ConversationTurn{
		{Role: domain.RoleInterviewer, Text: "What does an index change about lookups?"},
		{Role: domain.RoleCandidate, Text: "a fine answer about indexes"},
	}
	req.QuestionIDs = []string{"q-0", "q-1", "q-2"}

	res, err := f.turn.Process(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, res.Validated)
	assert.Contains(t, f.gen.lastUser, "Walk me through normalizing a schema.",
		"the id at the current question index drives the prompt")
}

func TestProcessDrawsReplacementWhenIDsRunOut(t *testing.T) {
	t.Parallel()
	f := newTurnFixture("Thanks. Can you describe a hard debugging session you led?")
	f.questions.questions = []domain.Question{
		bankQuestion("asked", "algorithms", "junior"),
		bankQuestion("fresh", "debugging", "middle"),
	}

	req := turnRequest("a fine answer about indexes")
	req.History = []domain.ConversationTurn{
		{Role: domain.RoleInterviewer, Text: "What does an index change about lookups?"},
		{Role: domain.RoleCandidate, Text: "a fine answer about indexes"},
	}
	req.QuestionIDs = []string{"asked"}

	_, err := f.turn.Process(context.Background(), req)
	require.NoError(t, err)
	assert.Contains(t, f.gen.lastUser, "Explain debugging.",
		"already-asked ids are excluded from the replacement draw")
}

func TestProcessStorageFailureDoesNotBreakTheReply(t *testing.T) {
	t.Parallel()
	gen := &fakeGenerator{content: "Can you explain how HTTP caching headers interact?", success: true}
	turn := NewTurn(gen, errStorageSessions{}, &fakeQueue{}, &fakeQuestionRepo{}, nil, time.Second)

	res, err := turn.Process(context.Background(), turnRequest("etags let the client revalidate cached entries"))
	require.NoError(t, err)
	assert.True(t, res.Validated)
	assert.False(t, res.UsedFallback)
}

// errStorageSessions fails every write; reads behave as empty.
type errStorageSessions struct{}

func (errStorageSessions) Create(domain.Context, domain.Session) (string, error) {
	return "", errStorage
}

func (errStorageSessions) Get(domain.Context, string) (domain.Session, error) {
	return domain.Session{}, errStorage
}

func (errStorageSessions) AppendResponse(domain.Context, domain.SessionResponse) (string, error) {
	return "", errStorage
}

func (errStorageSessions) ListResponses(domain.Context, string) ([]domain.SessionResponse, error) {
	return nil, errStorage
}

func (errStorageSessions) UpdateStatus(domain.Context, string, string, int, int) error {
	return errStorage
}

func (errStorageSessions) UpdateResponseScore(domain.Context, string, domain.ResponseScore) error {
	return errStorage
}

func (errStorageSessions) UpdateSessionScore(domain.Context, string, *domain.ResponseScore) error {
	return errStorage
}
