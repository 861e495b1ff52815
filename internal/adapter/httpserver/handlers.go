package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/blairify/interview-engine/internal/config"
	"github.com/blairify/interview-engine/internal/domain"
	"github.com/blairify/interview-engine/internal/prompt"
	"github.com/blairify/interview-engine/internal/usecase"
)

// Server aggregates handler dependencies.
type Server struct {
	Cfg        config.Config
	Turn       *usecase.Turn
	Selector   *usecase.QuestionSelector
	Sessions   domain.SessionRepository
	DBCheck    func(ctx context.Context) error
	CacheCheck func(ctx context.Context) error
}

// NewServer constructs a Server with all handlers wired.
func NewServer(cfg config.Config, turn *usecase.Turn, selector *usecase.QuestionSelector, sessions domain.SessionRepository, dbCheck, cacheCheck func(context.Context) error) *Server {
	return &Server{Cfg: cfg, Turn: turn, Selector: selector, Sessions: sessions, DBCheck: dbCheck, CacheCheck: cacheCheck}
}

var (
	vldOnce sync.Once
	vld     *validator.Validate
)

func getValidator() *validator.Validate {
	vldOnce.Do(func() { vld = validator.New() })
	return vld
}

type configDTO struct {
	Position       string   `json:"position" validate:"required,max=120"`
	Seniority      string   `json:"seniority" validate:"required,oneof=entry junior mid senior"`
	InterviewStyle string   `json:"interviewStyle" validate:"required,oneof=technical coding system-design rapid-fire"`
	Technologies   []string `json:"technologies" validate:"max=20,dive,max=60"`
	Company        string   `json:"company" validate:"max=120"`
	TotalQuestions int      `json:"totalQuestions" validate:"min=0,max=50"`
	DemoMode       bool     `json:"demoMode"`
}

func (d configDTO) toDomain() domain.InterviewConfig {
	cfg := domain.InterviewConfig{
		Position:       d.Position,
		Seniority:      d.Seniority,
		InterviewStyle: d.InterviewStyle,
		Technologies:   d.Technologies,
		Company:        d.Company,
		TotalQuestions: d.TotalQuestions,
		DemoMode:       d.DemoMode,
	}
	if cfg.TotalQuestions == 0 {
		cfg.TotalQuestions = domain.DefaultTotalQuestions(cfg.InterviewStyle, cfg.DemoMode)
	}
	return cfg
}

type historyTurnDTO struct {
	Role       string `json:"role" validate:"required,oneof=interviewer candidate"`
	Content    string `json:"content" validate:"required,max=10000"`
	IsFollowUp bool   `json:"isFollowUp"`
}

type messageRequest struct {
	SessionID     string           `json:"sessionId" validate:"omitempty,max=100"`
	Message       string           `json:"message" validate:"required,max=10000"`
	Config        configDTO        `json:"config"`
	History       []historyTurnDTO `json:"history" validate:"max=500,dive"`
	QuestionIDs   []string         `json:"questionIds" validate:"max=100,dive,max=100"`
	QuestionCount int              `json:"questionCount" validate:"min=0,max=100"`
	IsFollowUp    bool             `json:"isFollowUp"`
	WarningCount  int              `json:"warningCount" validate:"min=0,max=10"`
}

type messageResponse struct {
	SessionID              string `json:"sessionId"`
	Message                string `json:"message"`
	QuestionType           string `json:"questionType"`
	Validated              bool   `json:"validated"`
	IsFollowUp             bool   `json:"isFollowUp"`
	IsComplete             bool   `json:"isComplete"`
	TerminatedForProfanity bool   `json:"terminatedForProfanity,omitempty"`
	TerminatedForBehavior  bool   `json:"terminatedForBehavior,omitempty"`
	BehaviorWarning        bool   `json:"behaviorWarning,omitempty"`
	WarningCount           int    `json:"warningCount"`
	UsedFallback           bool   `json:"usedFallback,omitempty"`
}

// MessageHandler runs one conversation turn. The first turn of a session may
// omit sessionId; the handler then creates the session record.
func (s *Server) MessageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req messageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, r, fmt.Errorf("%w: malformed JSON body", domain.ErrInvalidArgument), nil)
			return
		}
		if err := getValidator().Struct(req); err != nil {
			writeError(w, r, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err), nil)
			return
		}

		cfg := req.Config.toDomain()
		sessionID := req.SessionID
		if sessionID == "" {
			id, err := s.Sessions.Create(r.Context(), domain.Session{Config: cfg})
			if err != nil {
				writeError(w, r, err, nil)
				return
			}
			sessionID = id
		}

		history := make([]domain.ConversationTurn, 0, len(req.History))
		for _, h := range req.History {
			history = append(history, domain.ConversationTurn{Role: h.Role, Text: h.Content, IsFollowUp: h.IsFollowUp})
		}

		result, err := s.Turn.Process(r.Context(), usecase.TurnRequest{
			SessionID:      sessionID,
			Message:        req.Message,
			History:        history,
			Config:         cfg,
			QuestionIDs:    req.QuestionIDs,
			QuestionCount:  req.QuestionCount,
			IsFollowUp:     req.IsFollowUp,
			TotalQuestions: cfg.TotalQuestions,
			WarningCount:   req.WarningCount,
		})
		if err != nil {
			writeError(w, r, err, nil)
			return
		}

		writeJSON(w, http.StatusOK, messageResponse{
			SessionID:              sessionID,
			Message:                result.Message,
			QuestionType:           result.QuestionType,
			Validated:              result.Validated,
			IsFollowUp:             result.IsFollowUp,
			IsComplete:             result.IsComplete,
			TerminatedForProfanity: result.TerminatedForProfanity,
			TerminatedForBehavior:  result.TerminatedForBehavior,
			BehaviorWarning:        result.BehaviorWarning,
			WarningCount:           result.WarningCount,
			UsedFallback:           result.UsedFallback,
		})
	}
}

type questionsRequest struct {
	Config configDTO `json:"config"`
	Count  int       `json:"count" validate:"min=0,max=20"`
}

type questionDTO struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Topic      string `json:"topic"`
	Difficulty string `json:"difficulty"`
	Prompt     string `json:"prompt"`
}

type questionsResponse struct {
	Questions     []questionDTO `json:"questions"`
	PromptSection string        `json:"promptSection"`
	Strict        bool          `json:"strict"`
}

// QuestionsHandler selects bank questions for a configuration and returns
// them with the prompt section generation uses. Zero matches is a valid
// response; generation then falls back to its own guidelines.
func (s *Server) QuestionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req questionsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, r, fmt.Errorf("%w: malformed JSON body", domain.ErrInvalidArgument), nil)
			return
		}
		if err := getValidator().Struct(req); err != nil {
			writeError(w, r, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err), nil)
			return
		}

		cfg := req.Config.toDomain()
		count := req.Count
		if count == 0 {
			count = cfg.TotalQuestions
		}

		selected := s.Selector.Select(r.Context(), cfg, count)
		section := prompt.QuestionBank(cfg, selected, count)

		out := make([]questionDTO, 0, len(selected))
		for _, q := range selected {
			out = append(out, questionDTO{
				ID: q.ID, Title: q.Title, Topic: q.Topic, Difficulty: q.Difficulty, Prompt: q.Prompt,
			})
		}
		writeJSON(w, http.StatusOK, questionsResponse{
			Questions:     out,
			PromptSection: section,
			Strict:        len(selected) > 0,
		})
	}
}

type sessionResponseDTO struct {
	ID         string                `json:"id"`
	TurnIndex  int                   `json:"turnIndex"`
	IsFollowUp bool                  `json:"isFollowUp"`
	Score      *domain.ResponseScore `json:"score,omitempty"`
}

type sessionResponseBody struct {
	ID            string                `json:"id"`
	Status        string                `json:"status"`
	WarningCount  int                   `json:"warningCount"`
	QuestionCount int                   `json:"questionCount"`
	Score         *domain.ResponseScore `json:"score,omitempty"`
	Responses     []sessionResponseDTO  `json:"responses"`
}

// SessionHandler returns a session's state and its per-answer scores. The
// answer text itself is not exposed; it may contain redacted-but-sensitive
// fragments the client has no need for.
func (s *Server) SessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			writeError(w, r, fmt.Errorf("%w: session id is required", domain.ErrInvalidArgument), nil)
			return
		}
		sess, err := s.Sessions.Get(r.Context(), id)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		responses, err := s.Sessions.ListResponses(r.Context(), id)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}

		out := sessionResponseBody{
			ID:            sess.ID,
			Status:        sess.Status,
			WarningCount:  sess.WarningCount,
			QuestionCount: sess.QuestionCount,
			Score:         sess.Score,
			Responses:     make([]sessionResponseDTO, 0, len(responses)),
		}
		for _, resp := range responses {
			out.Responses = append(out.Responses, sessionResponseDTO{
				ID: resp.ID, TurnIndex: resp.TurnIndex, IsFollowUp: resp.IsFollowUp, Score: resp.Score,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// ReadyzHandler reports readiness of the hard dependencies. A cache outage
// is reported but never fails readiness; selection works without it.
func (s *Server) ReadyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{}
		healthy := true

		if s.DBCheck != nil {
			if err := s.DBCheck(r.Context()); err != nil {
				checks["db"] = err.Error()
				healthy = false
			} else {
				checks["db"] = "ok"
			}
		}
		if s.CacheCheck != nil {
			if err := s.CacheCheck(r.Context()); err != nil {
				checks["cache"] = err.Error()
			} else {
				checks["cache"] = "ok"
			}
		}

		status := http.StatusOK
		if !healthy {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, map[string]any{"checks": checks})
	}
}
