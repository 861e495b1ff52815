package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blairify/interview-engine/internal/domain"
)

// fakePool records statements and replays canned results.
type fakePool struct {
	execSQL  []string
	execArgs [][]any
	execTag  pgconn.CommandTag
	execErr  error

	row  pgx.Row
	rows pgx.Rows
	err  error
}

func (f *fakePool) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execSQL = append(f.execSQL, sql)
	f.execArgs = append(f.execArgs, args)
	return f.execTag, f.execErr
}

func (f *fakePool) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	f.execSQL = append(f.execSQL, sql)
	return f.row
}

func (f *fakePool) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	f.execSQL = append(f.execSQL, sql)
	return f.rows, f.err
}

// scanRow runs a canned scan func.
type scanRow struct{ scan func(dest ...any) error }

func (r scanRow) Scan(dest ...any) error { return r.scan(dest...) }

func TestSessionRepoCreateGeneratesID(t *testing.T) {
	t.Parallel()
	pool := &fakePool{execTag: pgconn.NewCommandTag("INSERT 0 1")}
	repo := NewSessionRepo(pool)

	id, err := repo.Create(context.Background(), domain.Session{
		Config: domain.InterviewConfig{Position: "Backend Developer", Seniority: domain.SeniorityMid},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	require.Len(t, pool.execArgs, 1)
	assert.Equal(t, domain.SessionInProgress, pool.execArgs[0][2], "new sessions start in progress")
}

func TestSessionRepoCreatePropagatesError(t *testing.T) {
	t.Parallel()
	pool := &fakePool{execErr: assert.AnError}
	repo := NewSessionRepo(pool)

	_, err := repo.Create(context.Background(), domain.Session{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "op=session.create")
}

func TestSessionRepoUpdateStatusNotFound(t *testing.T) {
	t.Parallel()
	pool := &fakePool{execTag: pgconn.NewCommandTag("UPDATE 0")}
	repo := NewSessionRepo(pool)

	err := repo.UpdateStatus(context.Background(), "missing", domain.SessionCompleted, 0, 8)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionRepoUpdateSessionScoreWritesNullForNil(t *testing.T) {
	t.Parallel()
	pool := &fakePool{execTag: pgconn.NewCommandTag("UPDATE 1")}
	repo := NewSessionRepo(pool)

	require.NoError(t, repo.UpdateSessionScore(context.Background(), "sess-1", nil))
	require.Len(t, pool.execArgs, 1)
	assert.Nil(t, pool.execArgs[0][1], "nil aggregate persists as NULL, not zero")
}

func TestSessionRepoGetMapsNoRows(t *testing.T) {
	t.Parallel()
	pool := &fakePool{row: scanRow{scan: func(...any) error { return pgx.ErrNoRows }}}
	repo := NewSessionRepo(pool)

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestQuestionRepoGetByIDMapsNoRows(t *testing.T) {
	t.Parallel()
	pool := &fakePool{row: scanRow{scan: func(...any) error { return pgx.ErrNoRows }}}
	repo := NewQuestionRepo(pool)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestQuestionRepoGetByIDScans(t *testing.T) {
	t.Parallel()
	now := time.Now().UTC()
	pool := &fakePool{row: scanRow{scan: func(dest ...any) error {
		*(dest[0].(*string)) = "q-1"
		*(dest[1].(*string)) = "Indexes"
		*(dest[2].(*string)) = "database"
		*(dest[3].(*string)) = "middle"
		*(dest[4].(*string)) = "Explain when a covering index helps."
		*(dest[5].(*[]string)) = []string{"sql"}
		*(dest[6].(*[]string)) = []string{"postgres"}
		*(dest[7].(*[]string)) = []string{"backend"}
		*(dest[8].(*[]string)) = []string{"technical"}
		*(dest[9].(*string)) = domain.QuestionStatusPublished
		*(dest[10].(*time.Time)) = now
		return nil
	}}}
	repo := NewQuestionRepo(pool)

	q, err := repo.GetByID(context.Background(), "q-1")
	require.NoError(t, err)
	assert.Equal(t, "database", q.Topic)
	assert.Equal(t, []string{"postgres"}, q.TechStack)
}

func TestQuestionRepoListPublishedFiltersByTopic(t *testing.T) {
	t.Parallel()
	pool := &fakePool{err: assert.AnError}
	repo := NewQuestionRepo(pool)

	_, err := repo.ListPublished(context.Background(), "backend", "", 50)
	require.Error(t, err)
	require.Len(t, pool.execSQL, 1)
	assert.Contains(t, pool.execSQL[0], "AND topic=$2")
	assert.Contains(t, pool.execSQL[0], "LIMIT 50")
}
