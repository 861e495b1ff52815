package postgres

import (
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"

	"github.com/blairify/interview-engine/internal/domain"
)

// QuestionRepo reads the published question bank from PostgreSQL. The turn
// pipeline never writes questions; only the seed command does.
type QuestionRepo struct{ Pool PgxPool }

// NewQuestionRepo constructs a QuestionRepo with the given pool.
func NewQuestionRepo(p PgxPool) *QuestionRepo { return &QuestionRepo{Pool: p} }

const questionColumns = `id, title, topic, difficulty, prompt, tags, tech_stack, positions, interview_types, status, created_at`

// ListPublished returns up to limit published questions, optionally narrowed
// by topic. The position argument is accepted for symmetry with the port but
// filtering on it happens in the selector, which needs substring semantics.
func (r *QuestionRepo) ListPublished(ctx domain.Context, topic, _ string, limit int) ([]domain.Question, error) {
	tracer := otel.Tracer("repo.questions")
	ctx, span := tracer.Start(ctx, "questions.ListPublished")
	defer span.End()

	q := `SELECT ` + questionColumns + ` FROM questions WHERE status=$1`
	args := []any{domain.QuestionStatusPublished}
	if topic != "" {
		q += ` AND topic=$2`
		args = append(args, topic)
	}
	q += fmt.Sprintf(` ORDER BY created_at DESC LIMIT %d`, limit)

	rows, err := r.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("op=question.list_published: %w", err)
	}
	defer rows.Close()

	var out []domain.Question
	for rows.Next() {
		var qu domain.Question
		if err := rows.Scan(&qu.ID, &qu.Title, &qu.Topic, &qu.Difficulty, &qu.Prompt,
			&qu.Tags, &qu.TechStack, &qu.Positions, &qu.InterviewTypes, &qu.Status, &qu.CreatedAt); err != nil {
			return nil, fmt.Errorf("op=question.list_published: scan: %w", err)
		}
		out = append(out, qu)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("op=question.list_published: rows: %w", err)
	}
	return out, nil
}

// GetByID loads one question by id.
func (r *QuestionRepo) GetByID(ctx domain.Context, id string) (domain.Question, error) {
	tracer := otel.Tracer("repo.questions")
	ctx, span := tracer.Start(ctx, "questions.GetByID")
	defer span.End()

	q := `SELECT ` + questionColumns + ` FROM questions WHERE id=$1`
	row := r.Pool.QueryRow(ctx, q, id)
	var qu domain.Question
	err := row.Scan(&qu.ID, &qu.Title, &qu.Topic, &qu.Difficulty, &qu.Prompt,
		&qu.Tags, &qu.TechStack, &qu.Positions, &qu.InterviewTypes, &qu.Status, &qu.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Question{}, fmt.Errorf("op=question.get: %w", domain.ErrNotFound)
		}
		return domain.Question{}, fmt.Errorf("op=question.get: %w", err)
	}
	return qu, nil
}
