package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"

	"github.com/blairify/interview-engine/internal/domain"
)

// SessionRepo persists sessions, their responses, and computed scores.
// Config and score columns are JSONB; a NULL session score means the scoring
// worker found nothing to aggregate, which is distinct from a zero score.
type SessionRepo struct{ Pool PgxPool }

// NewSessionRepo constructs a SessionRepo with the given pool.
func NewSessionRepo(p PgxPool) *SessionRepo { return &SessionRepo{Pool: p} }

// Create inserts a new session and returns its id.
func (r *SessionRepo) Create(ctx domain.Context, s domain.Session) (string, error) {
	tracer := otel.Tracer("repo.sessions")
	ctx, span := tracer.Start(ctx, "sessions.Create")
	defer span.End()

	id := s.ID
	if id == "" {
		id = uuid.New().String()
	}
	status := s.Status
	if status == "" {
		status = domain.SessionInProgress
	}
	cfgJSON, err := json.Marshal(s.Config)
	if err != nil {
		return "", fmt.Errorf("op=session.create: marshal config: %w", err)
	}
	now := time.Now().UTC()
	q := `INSERT INTO sessions (id, config, status, warning_count, question_count, created_at, updated_at)
	      VALUES ($1,$2,$3,$4,$5,$6,$7)`
	if _, err := r.Pool.Exec(ctx, q, id, cfgJSON, status, s.WarningCount, s.QuestionCount, now, now); err != nil {
		return "", fmt.Errorf("op=session.create: %w", err)
	}
	return id, nil
}

// Get loads one session by id.
func (r *SessionRepo) Get(ctx domain.Context, id string) (domain.Session, error) {
	tracer := otel.Tracer("repo.sessions")
	ctx, span := tracer.Start(ctx, "sessions.Get")
	defer span.End()

	q := `SELECT id, config, status, warning_count, question_count, score, created_at, updated_at
	      FROM sessions WHERE id=$1`
	row := r.Pool.QueryRow(ctx, q, id)
	var (
		s         domain.Session
		cfgJSON   []byte
		scoreJSON []byte
	)
	if err := row.Scan(&s.ID, &cfgJSON, &s.Status, &s.WarningCount, &s.QuestionCount, &scoreJSON, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return domain.Session{}, fmt.Errorf("op=session.get: %w", domain.ErrNotFound)
		}
		return domain.Session{}, fmt.Errorf("op=session.get: %w", err)
	}
	if err := json.Unmarshal(cfgJSON, &s.Config); err != nil {
		return domain.Session{}, fmt.Errorf("op=session.get: unmarshal config: %w", err)
	}
	if len(scoreJSON) > 0 {
		var sc domain.ResponseScore
		if err := json.Unmarshal(scoreJSON, &sc); err != nil {
			return domain.Session{}, fmt.Errorf("op=session.get: unmarshal score: %w", err)
		}
		s.Score = &sc
	}
	return s, nil
}

// AppendResponse stores one candidate answer and returns its id.
func (r *SessionRepo) AppendResponse(ctx domain.Context, resp domain.SessionResponse) (string, error) {
	tracer := otel.Tracer("repo.sessions")
	ctx, span := tracer.Start(ctx, "sessions.AppendResponse")
	defer span.End()

	id := resp.ID
	if id == "" {
		id = uuid.New().String()
	}
	q := `INSERT INTO session_responses (id, session_id, question_id, text, turn_index, is_follow_up, created_at)
	      VALUES ($1,$2,$3,$4,$5,$6,$7)`
	_, err := r.Pool.Exec(ctx, q, id, resp.SessionID, resp.QuestionID, resp.Text, resp.TurnIndex, resp.IsFollowUp, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("op=session.append_response: %w", err)
	}
	return id, nil
}

// ListResponses returns a session's answers in turn order.
func (r *SessionRepo) ListResponses(ctx domain.Context, sessionID string) ([]domain.SessionResponse, error) {
	tracer := otel.Tracer("repo.sessions")
	ctx, span := tracer.Start(ctx, "sessions.ListResponses")
	defer span.End()

	q := `SELECT id, session_id, COALESCE(question_id,''), text, turn_index, is_follow_up, score, created_at
	      FROM session_responses WHERE session_id=$1 ORDER BY turn_index ASC`
	rows, err := r.Pool.Query(ctx, q, sessionID)
	if err != nil {
		return nil, fmt.Errorf("op=session.list_responses: %w", err)
	}
	defer rows.Close()

	var out []domain.SessionResponse
	for rows.Next() {
		var (
			resp      domain.SessionResponse
			scoreJSON []byte
		)
		if err := rows.Scan(&resp.ID, &resp.SessionID, &resp.QuestionID, &resp.Text,
			&resp.TurnIndex, &resp.IsFollowUp, &scoreJSON, &resp.CreatedAt); err != nil {
			return nil, fmt.Errorf("op=session.list_responses: scan: %w", err)
		}
		if len(scoreJSON) > 0 {
			var sc domain.ResponseScore
			if err := json.Unmarshal(scoreJSON, &sc); err != nil {
				return nil, fmt.Errorf("op=session.list_responses: unmarshal score: %w", err)
			}
			resp.Score = &sc
		}
		out = append(out, resp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("op=session.list_responses: rows: %w", err)
	}
	return out, nil
}

// UpdateStatus updates a session's lifecycle state and counters.
func (r *SessionRepo) UpdateStatus(ctx domain.Context, sessionID, status string, warningCount, questionCount int) error {
	tracer := otel.Tracer("repo.sessions")
	ctx, span := tracer.Start(ctx, "sessions.UpdateStatus")
	defer span.End()

	q := `UPDATE sessions SET status=$2, warning_count=$3, question_count=$4, updated_at=$5 WHERE id=$1`
	tag, err := r.Pool.Exec(ctx, q, sessionID, status, warningCount, questionCount, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("op=session.update_status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("op=session.update_status: %w", domain.ErrNotFound)
	}
	return nil
}

// UpdateResponseScore stores one answer's computed sub-scores.
func (r *SessionRepo) UpdateResponseScore(ctx domain.Context, responseID string, score domain.ResponseScore) error {
	tracer := otel.Tracer("repo.sessions")
	ctx, span := tracer.Start(ctx, "sessions.UpdateResponseScore")
	defer span.End()

	scoreJSON, err := json.Marshal(score)
	if err != nil {
		return fmt.Errorf("op=session.update_response_score: marshal: %w", err)
	}
	q := `UPDATE session_responses SET score=$2 WHERE id=$1`
	tag, err := r.Pool.Exec(ctx, q, responseID, scoreJSON)
	if err != nil {
		return fmt.Errorf("op=session.update_response_score: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("op=session.update_response_score: %w", domain.ErrNotFound)
	}
	return nil
}

// UpdateSessionScore stores the aggregate score; nil writes NULL.
func (r *SessionRepo) UpdateSessionScore(ctx domain.Context, sessionID string, score *domain.ResponseScore) error {
	tracer := otel.Tracer("repo.sessions")
	ctx, span := tracer.Start(ctx, "sessions.UpdateSessionScore")
	defer span.End()

	var scoreJSON []byte
	if score != nil {
		b, err := json.Marshal(score)
		if err != nil {
			return fmt.Errorf("op=session.update_session_score: marshal: %w", err)
		}
		scoreJSON = b
	}
	q := `UPDATE sessions SET score=$2, updated_at=$3 WHERE id=$1`
	tag, err := r.Pool.Exec(ctx, q, sessionID, scoreJSON, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("op=session.update_session_score: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("op=session.update_session_score: %w", domain.ErrNotFound)
	}
	return nil
}
