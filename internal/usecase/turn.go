package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	obsadapter "github.com/blairify/interview-engine/internal/adapter/observability"
	"github.com/blairify/interview-engine/internal/domain"
	"github.com/blairify/interview-engine/internal/moderation"
	"github.com/blairify/interview-engine/internal/observability"
	"github.com/blairify/interview-engine/internal/prompt"
)

// Fixed candidate-facing messages for short-circuited turns. These are part
// of the product surface; wording changes are visible to every session.
const (
	msgLanguageDeflection = "I appreciate your question! Currently, I can only conduct interviews in English. This helps ensure consistency and accuracy in our assessment process. Let's continue with your interview in English - I'm here to help you showcase your skills!"
	msgProfanityEnd       = "I understand you may be frustrated, but professional language is expected during interviews. This type of language is not appropriate for a professional setting. Unfortunately, I need to end this interview session now. Your final score is 0."
	msgTopicRedirect      = "I appreciate your engagement, but let's keep our conversation focused on technical topics relevant to the interview. I'm here to help assess your programming skills and experience. Could you please share your thoughts on the technical question I asked?"
	msgBehaviorWarning    = "I notice some inappropriate language in your response. Professional interviews require respectful communication. This is your warning - please maintain professional conduct. If this behavior continues, I'll need to end the interview. Let's refocus on the technical discussion."
	msgBehaviorEnd        = "I've already warned you about inappropriate behavior. Professional conduct is required in interviews. Since this behavior has continued, I'm ending this interview session now. Your final score is 0."
)

// questionTypesByStyle drives the rotating question-type label returned with
// every turn.
var questionTypesByStyle = map[string][]string{
	domain.InterviewTechnical:    {"conceptual", "practical", "architectural", "debugging"},
	domain.InterviewCoding:       {"algorithms", "data-structures", "optimization", "implementation"},
	domain.InterviewSystemDesign: {"architecture", "scalability", "trade-offs", "components"},
	domain.InterviewRapidFire:    {"core-concept", "quick-assessment", "essential-skill"},
}

// TurnRequest carries everything the pipeline needs for one exchange; the
// caller re-supplies conversation state on every call.
type TurnRequest struct {
	SessionID      string
	Message        string
	History        []domain.ConversationTurn
	Config         domain.InterviewConfig
	QuestionIDs    []string
	QuestionCount  int
	IsFollowUp     bool
	TotalQuestions int
	WarningCount   int
}

// TurnResult is the pipeline's reply for one exchange.
type TurnResult struct {
	Message                string
	QuestionType           string
	Validated              bool
	IsFollowUp             bool
	IsComplete             bool
	TerminatedForProfanity bool
	TerminatedForBehavior  bool
	BehaviorWarning        bool
	WarningCount           int
	UsedFallback           bool
}

// Turn orchestrates one conversation exchange: moderation, redaction,
// follow-up decision, prompt construction, generation, validation, and
// completion bookkeeping.
type Turn struct {
	gen        domain.Generator
	sessions   domain.SessionRepository
	queue      domain.Queue
	questions  domain.QuestionRepository
	selector   *QuestionSelector
	genTimeout time.Duration
}

func NewTurn(gen domain.Generator, sessions domain.SessionRepository, queue domain.Queue, questions domain.QuestionRepository, selector *QuestionSelector, genTimeout time.Duration) *Turn {
	return &Turn{gen: gen, sessions: sessions, queue: queue, questions: questions, selector: selector, genTimeout: genTimeout}
}

// Process runs the full turn pipeline. It returns an error only for missing
// required input; every downstream failure degrades to fallback content.
func (t *Turn) Process(ctx domain.Context, req TurnRequest) (TurnResult, error) {
	log := observability.LoggerFromContext(ctx)

	if strings.TrimSpace(req.Message) == "" {
		return TurnResult{}, fmt.Errorf("op=turn.process: message is required: %w", domain.ErrInvalidArgument)
	}
	if err := validateConfig(req.Config); err != nil {
		return TurnResult{}, err
	}

	total := req.TotalQuestions
	if total <= 0 {
		total = req.Config.TotalQuestions
	}
	cfg := req.Config
	cfg.TotalQuestions = total

	if res, done := t.moderate(ctx, req); done {
		return res, nil
	}

	processed, redacted := moderation.Redact(req.Message)
	if redacted {
		log.Info("privacy redaction applied",
			"original_len", len(req.Message), "sanitized_len", len(processed))
	}

	autoFollowUp := !req.IsFollowUp && !cfg.DemoMode &&
		ShouldFollowUp(processed, req.History, cfg, req.QuestionCount)
	effectiveFollowUp := req.IsFollowUp || autoFollowUp

	if ShouldComplete(req.QuestionCount, total, effectiveFollowUp) {
		return t.complete(ctx, req, processed)
	}

	questionPrompt := ""
	if !effectiveFollowUp && !cfg.DemoMode {
		questionPrompt = t.resolveQuestionPrompt(ctx, cfg, req)
	}

	p := prompt.Build(cfg, req.History, processed, req.QuestionCount, effectiveFollowUp, questionPrompt)

	message, validated, usedFallback := t.generate(ctx, cfg, p, req.IsFollowUp, effectiveFollowUp)

	if !usedFallback && !effectiveFollowUp && !cfg.DemoMode && isRepeatQuestion(message, req.History) {
		log.Warn("repeated interviewer question detected, substituting fallback")
		obsadapter.ObserveFallback("repeat_question")
		message = Fallback(cfg, false)
		usedFallback = true
	}

	t.persistResponse(ctx, req, processed, effectiveFollowUp)

	return TurnResult{
		Message:      message,
		QuestionType: QuestionTypeFor(cfg.InterviewStyle, req.QuestionCount),
		Validated:    validated,
		IsFollowUp:   effectiveFollowUp,
		WarningCount: req.WarningCount,
		UsedFallback: usedFallback,
	}, nil
}

// moderate runs the safety filter and returns a short-circuit result when any
// family matches. Termination paths persist session state and enqueue scoring
// so a terminated session still reaches the worker.
func (t *Turn) moderate(ctx domain.Context, req TurnRequest) (TurnResult, bool) {
	outcome := moderation.Classify(req.Message)
	if outcome.Kind == domain.ModerationClean {
		return TurnResult{}, false
	}
	obsadapter.ObserveModeration(outcome.Kind.String(), outcome.Rule)
	log := observability.LoggerFromContext(ctx)
	log.Info("moderation triggered", "kind", outcome.Kind.String(), "rule", outcome.Rule)

	switch outcome.Kind {
	case domain.ModerationLanguageSwitch:
		return TurnResult{
			Message:      msgLanguageDeflection,
			QuestionType: "clarification",
			Validated:    true,
			IsFollowUp:   true,
			WarningCount: req.WarningCount,
		}, true

	case domain.ModerationProfanity:
		t.terminate(ctx, req, req.WarningCount)
		return TurnResult{
			Message:                msgProfanityEnd,
			QuestionType:           "termination",
			Validated:              true,
			IsComplete:             true,
			TerminatedForProfanity: true,
			WarningCount:           req.WarningCount,
		}, true

	case domain.ModerationDisallowedTopic:
		return TurnResult{
			Message:      msgTopicRedirect,
			QuestionType: "redirect",
			Validated:    true,
			IsFollowUp:   true,
			WarningCount: req.WarningCount,
		}, true

	default: // inappropriate behavior
		newCount := req.WarningCount + 1
		if newCount >= 2 {
			t.terminate(ctx, req, newCount)
			return TurnResult{
				Message:               msgBehaviorEnd,
				QuestionType:          "termination",
				Validated:             true,
				IsComplete:            true,
				TerminatedForBehavior: true,
				WarningCount:          newCount,
			}, true
		}
		t.persistWarning(ctx, req, newCount)
		return TurnResult{
			Message:         msgBehaviorWarning,
			QuestionType:    "warning",
			Validated:       true,
			IsFollowUp:      true,
			BehaviorWarning: true,
			WarningCount:    newCount,
		}, true
	}
}

// complete closes a naturally finished session: persists the final answer,
// marks the session completed, and enqueues the scoring task.
func (t *Turn) complete(ctx domain.Context, req TurnRequest, processed string) (TurnResult, error) {
	t.persistResponse(ctx, req, processed, false)

	if req.SessionID != "" {
		log := observability.LoggerFromContext(ctx)
		if err := t.sessions.UpdateStatus(ctx, req.SessionID, domain.SessionCompleted, req.WarningCount, req.QuestionCount); err != nil {
			log.Error("failed to mark session completed", "session_id", req.SessionID, "error", err)
		}
		t.enqueueScoring(ctx, req.SessionID)
	}

	return TurnResult{
		Message:      CompletionMessage(req.Config.DemoMode),
		QuestionType: "completion",
		Validated:    true,
		IsComplete:   true,
		WarningCount: req.WarningCount,
	}, nil
}

// generate performs the single generation attempt and applies validation.
// Any failure substitutes the deterministic fallback; there is no retry.
// resolveQuestionPrompt returns the bank question text the next turn should
// ask, or "" for free generation. Sessions that carry pre-selected question
// ids advance through them by question count; when the list runs out or a
// lookup fails, a fresh question is drawn from the bank instead.
func (t *Turn) resolveQuestionPrompt(ctx domain.Context, cfg domain.InterviewConfig, req TurnRequest) string {
	if len(req.QuestionIDs) == 0 {
		return ""
	}
	log := observability.LoggerFromContext(ctx)

	if idx := req.QuestionCount; t.questions != nil && idx >= 0 && idx < len(req.QuestionIDs) {
		q, err := t.questions.GetByID(ctx, req.QuestionIDs[idx])
		if err == nil {
			return q.Prompt
		}
		log.Warn("bank question lookup failed, drawing a replacement",
			"question_id", req.QuestionIDs[idx], "error", err)
	}

	if t.selector == nil {
		return ""
	}
	if q, ok := t.selector.SelectOne(ctx, cfg, req.QuestionIDs); ok {
		return q.Prompt
	}
	return ""
}

func (t *Turn) generate(ctx domain.Context, cfg domain.InterviewConfig, p prompt.Pair, requestedFollowUp, effectiveFollowUp bool) (message string, validated, usedFallback bool) {
	log := observability.LoggerFromContext(ctx)

	genCtx, cancel := context.WithTimeout(ctx, t.genTimeout)
	defer cancel()

	result, err := t.gen.Chat(genCtx, p.System, p.User)
	if err != nil || !result.Success || result.Content == "" {
		log.Warn("generation failed, using fallback", "error", err)
		obsadapter.ObserveFallback("generation_error")
		return Fallback(cfg, requestedFollowUp), false, true
	}

	v := ValidateGenerated(result.Content, cfg, effectiveFollowUp)
	if !v.IsValid {
		log.Warn("generated reply rejected", "reason", v.Reason)
		obsadapter.ObserveFallback("validation_rejected")
		return Fallback(cfg, requestedFollowUp), true, true
	}
	if v.Sanitized != "" {
		return v.Sanitized, true, false
	}
	return result.Content, true, false
}

func (t *Turn) terminate(ctx domain.Context, req TurnRequest, warningCount int) {
	if req.SessionID == "" {
		return
	}
	log := observability.LoggerFromContext(ctx)
	if err := t.sessions.UpdateStatus(ctx, req.SessionID, domain.SessionTerminated, warningCount, req.QuestionCount); err != nil {
		log.Error("failed to mark session terminated", "session_id", req.SessionID, "error", err)
	}
	t.enqueueScoring(ctx, req.SessionID)
}

func (t *Turn) persistWarning(ctx domain.Context, req TurnRequest, warningCount int) {
	if req.SessionID == "" {
		return
	}
	if err := t.sessions.UpdateStatus(ctx, req.SessionID, domain.SessionInProgress, warningCount, req.QuestionCount); err != nil {
		observability.LoggerFromContext(ctx).Error("failed to persist warning count",
			"session_id", req.SessionID, "error", err)
	}
}

// persistResponse stores the candidate's redacted answer. Persistence is
// best-effort: a storage failure must not break the candidate-facing reply.
func (t *Turn) persistResponse(ctx domain.Context, req TurnRequest, processed string, isFollowUp bool) {
	if req.SessionID == "" {
		return
	}
	_, err := t.sessions.AppendResponse(ctx, domain.SessionResponse{
		SessionID:  req.SessionID,
		Text:       processed,
		TurnIndex:  len(req.History),
		IsFollowUp: isFollowUp,
	})
	if err != nil {
		observability.LoggerFromContext(ctx).Error("failed to persist response",
			"session_id", req.SessionID, "error", err)
	}
}

func (t *Turn) enqueueScoring(ctx domain.Context, sessionID string) {
	log := observability.LoggerFromContext(ctx)
	if _, err := t.queue.EnqueueScore(ctx, domain.ScoreTaskPayload{SessionID: sessionID}); err != nil {
		log.Error("failed to enqueue scoring task", "session_id", sessionID, "error", err)
		return
	}
	obsadapter.ScoreTasksEnqueuedTotal.Inc()
}

// QuestionTypeFor rotates through the style's question-type labels.
func QuestionTypeFor(style string, questionCount int) string {
	types, ok := questionTypesByStyle[style]
	if !ok || len(types) == 0 {
		return "conceptual"
	}
	return types[questionCount%len(types)]
}

// isRepeatQuestion reports whether the generated text exactly repeats any
// prior interviewer turn, ignoring case and surrounding whitespace.
func isRepeatQuestion(message string, history []domain.ConversationTurn) bool {
	normalized := strings.ToLower(strings.TrimSpace(message))
	for _, turn := range history {
		if turn.Role != domain.RoleInterviewer {
			continue
		}
		if strings.ToLower(strings.TrimSpace(turn.Text)) == normalized {
			return true
		}
	}
	return false
}

func validateConfig(cfg domain.InterviewConfig) error {
	if cfg.Position == "" {
		return fmt.Errorf("op=turn.process: position is required: %w", domain.ErrInvalidArgument)
	}
	switch cfg.Seniority {
	case domain.SeniorityEntry, domain.SeniorityJunior, domain.SeniorityMid, domain.SenioritySenior:
	default:
		return fmt.Errorf("op=turn.process: invalid seniority %q: %w", cfg.Seniority, domain.ErrInvalidArgument)
	}
	switch cfg.InterviewStyle {
	case domain.InterviewTechnical, domain.InterviewCoding, domain.InterviewSystemDesign, domain.InterviewRapidFire:
	default:
		return fmt.Errorf("op=turn.process: invalid interview style %q: %w", cfg.InterviewStyle, domain.ErrInvalidArgument)
	}
	return nil
}
