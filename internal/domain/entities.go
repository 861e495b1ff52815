// Package domain defines the core entities and ports of the interview
// pipeline. It stays free of transport and storage concerns; adapters and
// usecases depend on it, never the other way around.
package domain

import (
	"context"
	"errors"
	"time"
)

// Error taxonomy (sentinels)
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrRateLimited     = errors.New("rate limited")
	ErrUpstreamTimeout = errors.New("upstream timeout")
	ErrUpstreamError   = errors.New("upstream error")
	ErrInternal        = errors.New("internal error")
)

// Seniority tiers accepted by the pipeline.
const (
	SeniorityEntry  = "entry"
	SeniorityJunior = "junior"
	SeniorityMid    = "mid"
	SenioritySenior = "senior"
)

// Interview styles accepted by the pipeline.
const (
	InterviewTechnical    = "technical"
	InterviewCoding       = "coding"
	InterviewSystemDesign = "system-design"
	InterviewRapidFire    = "rapid-fire"
)

// Turn roles.
const (
	RoleInterviewer = "interviewer"
	RoleCandidate   = "candidate"
)

// InterviewConfig is immutable per session and supplied by the caller on
// every turn. The pipeline only reads it.
type InterviewConfig struct {
	Position       string   `json:"position"`
	Seniority      string   `json:"seniority"`
	InterviewStyle string   `json:"interviewStyle"`
	Technologies   []string `json:"technologies"`
	Company        string   `json:"company,omitempty"`
	TotalQuestions int      `json:"totalQuestions"`
	DemoMode       bool     `json:"demoMode"`
}

// DefaultTotalQuestions returns the per-style question budget applied when
// the caller does not supply one.
func DefaultTotalQuestions(style string, demoMode bool) int {
	if demoMode {
		return 3
	}
	switch style {
	case InterviewCoding:
		return 6
	case InterviewSystemDesign:
		return 5
	case InterviewRapidFire:
		return 3
	default:
		return 8
	}
}

// ConversationTurn is one interviewer-or-candidate exchange. The transcript is
// append-only; the pipeline reads only the trailing window plus counts.
type ConversationTurn struct {
	Role         string `json:"role"`
	Text         string `json:"text"`
	TurnIndex    int    `json:"turnIndex"`
	IsFollowUp   bool   `json:"isFollowUp"`
	QuestionType string `json:"questionType,omitempty"`
}

// ModerationKind enumerates moderation outcomes in evaluation priority order.
type ModerationKind int

// Moderation outcome kinds. First match wins; later checks are skipped.
const (
	ModerationClean ModerationKind = iota
	ModerationLanguageSwitch
	ModerationProfanity
	ModerationDisallowedTopic
	ModerationInappropriate
)

func (k ModerationKind) String() string {
	switch k {
	case ModerationClean:
		return "clean"
	case ModerationLanguageSwitch:
		return "language_switch"
	case ModerationProfanity:
		return "profanity"
	case ModerationDisallowedTopic:
		return "disallowed_topic"
	case ModerationInappropriate:
		return "inappropriate"
	default:
		return "unknown"
	}
}

// ModerationOutcome is computed fresh per message and never persisted; the
// warning counter is session-scoped and threaded by the caller.
type ModerationOutcome struct {
	Kind         ModerationKind
	Rule         string // pattern family that matched, for audit logs
	WarningCount int    // updated count for ModerationInappropriate
}

// Question is a published question-bank record. Immutable to the pipeline.
type Question struct {
	ID             string
	Title          string
	Topic          string
	Difficulty     string
	Prompt         string
	Tags           []string
	TechStack      []string
	Positions      []string
	InterviewTypes []string
	Status         string
	CreatedAt      time.Time
}

// QuestionStatusPublished is the only status the pipeline selects from.
const QuestionStatusPublished = "published"

// ResponseScore holds per-answer sub-scores, each clamped to [0,100].
type ResponseScore struct {
	Overall        int `json:"overall"`
	Technical      int `json:"technical"`
	Communication  int `json:"communication"`
	ProblemSolving int `json:"problemSolving"`
}

// IsZero reports whether every dimension is zero.
func (s ResponseScore) IsZero() bool {
	return s.Overall == 0 && s.Technical == 0 && s.Communication == 0 && s.ProblemSolving == 0
}

// SessionResponse is one persisted candidate answer, the unit the scoring
// worker operates on.
type SessionResponse struct {
	ID         string
	SessionID  string
	QuestionID string
	Text       string
	TurnIndex  int
	IsFollowUp bool
	Score      *ResponseScore
	CreatedAt  time.Time
}

// Session is the durable record downstream display components consume.
// Score stays nil until the scoring worker has run, and remains nil when no
// response qualifies for an aggregate (distinct from a true zero).
type Session struct {
	ID            string
	Config        InterviewConfig
	Status        string
	WarningCount  int
	QuestionCount int
	Score         *ResponseScore
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Session statuses.
const (
	SessionInProgress = "in_progress"
	SessionCompleted  = "completed"
	SessionTerminated = "terminated"
)

// GenResult is the generation collaborator's reply shape. The pipeline never
// inspects provider metadata beyond this.
type GenResult struct {
	Content string
	Success bool
}

// ScoreTaskPayload travels over the queue from the turn pipeline to the
// scoring worker.
type ScoreTaskPayload struct {
	SessionID string `json:"session_id"`
}

// Repositories (ports)

// QuestionRepository reads from the published question bank. Implementations
// must never write.
type QuestionRepository interface {
	ListPublished(ctx Context, topic, position string, limit int) ([]Question, error)
	GetByID(ctx Context, id string) (Question, error)
}

// SessionRepository persists sessions, their responses, and computed scores.
type SessionRepository interface {
	Create(ctx Context, s Session) (string, error)
	Get(ctx Context, id string) (Session, error)
	AppendResponse(ctx Context, r SessionResponse) (string, error)
	ListResponses(ctx Context, sessionID string) ([]SessionResponse, error)
	UpdateStatus(ctx Context, sessionID, status string, warningCount, questionCount int) error
	UpdateResponseScore(ctx Context, responseID string, score ResponseScore) error
	UpdateSessionScore(ctx Context, sessionID string, score *ResponseScore) error
}

// Generator (port) is the external text-generation collaborator. One call per
// turn; failures degrade to deterministic fallbacks, never retries.
type Generator interface {
	Chat(ctx Context, systemPrompt, userPrompt string) (GenResult, error)
}

// UsageCache (port) is the soft anti-repetition memory for question
// selection. Approximate correctness under concurrency is acceptable, and so
// is losing the cache on restart.
type UsageCache interface {
	WasRecentlyUsed(ctx Context, questionID string) bool
	MarkUsed(ctx Context, questionID string)
}

// Queue (port) carries score-session tasks to the background worker.
type Queue interface {
	EnqueueScore(ctx Context, payload ScoreTaskPayload) (string, error)
}

// Context is an alias to context.Context so domain signatures stay compact;
// adapters and usecases pass standard contexts through.
type Context = context.Context
