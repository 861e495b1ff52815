// Command seed creates the interview-engine schema and loads question bank
// YAML files into the questions table.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/blairify/interview-engine/internal/adapter/observability"
	"github.com/blairify/interview-engine/internal/adapter/repo/postgres"
	"github.com/blairify/interview-engine/internal/config"
	"github.com/blairify/interview-engine/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS questions (
	id              TEXT PRIMARY KEY,
	title           TEXT NOT NULL,
	topic           TEXT NOT NULL,
	difficulty      TEXT NOT NULL,
	prompt          TEXT NOT NULL,
	tags            TEXT[] NOT NULL DEFAULT '{}',
	tech_stack      TEXT[] NOT NULL DEFAULT '{}',
	positions       TEXT[] NOT NULL DEFAULT '{}',
	interview_types TEXT[] NOT NULL DEFAULT '{}',
	status          TEXT NOT NULL DEFAULT 'draft',
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS questions_status_topic_idx ON questions (status, topic);

CREATE TABLE IF NOT EXISTS sessions (
	id             TEXT PRIMARY KEY,
	config         JSONB NOT NULL,
	status         TEXT NOT NULL,
	warning_count  INT NOT NULL DEFAULT 0,
	question_count INT NOT NULL DEFAULT 0,
	score          JSONB,
	created_at     TIMESTAMPTZ NOT NULL,
	updated_at     TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS session_responses (
	id           TEXT PRIMARY KEY,
	session_id   TEXT NOT NULL REFERENCES sessions(id),
	question_id  TEXT,
	text         TEXT NOT NULL,
	turn_index   INT NOT NULL,
	is_follow_up BOOLEAN NOT NULL DEFAULT FALSE,
	score        JSONB,
	created_at   TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS session_responses_session_idx ON session_responses (session_id, turn_index);
`

type questionYAML struct {
	Questions []questionYAMLItem `yaml:"questions"`
}

type questionYAMLItem struct {
	ID             string   `yaml:"id"`
	Title          string   `yaml:"title"`
	Topic          string   `yaml:"topic"`
	Difficulty     string   `yaml:"difficulty"`
	Prompt         string   `yaml:"prompt"`
	Tags           []string `yaml:"tags"`
	TechStack      []string `yaml:"techStack"`
	Positions      []string `yaml:"positions"`
	InterviewTypes []string `yaml:"interviewTypes"`
	Status         string   `yaml:"status"`
}

func loadQuestions(path string) ([]questionYAMLItem, error) {
	b, err := os.ReadFile(path) //nolint:gosec // Operator-supplied seed path.
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var doc questionYAML
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("yaml parse %s: %w", path, err)
	}
	if len(doc.Questions) == 0 {
		// Also accept a bare list at the document root.
		var items []questionYAMLItem
		if err := yaml.Unmarshal(b, &items); err == nil {
			doc.Questions = items
		}
	}
	out := make([]questionYAMLItem, 0, len(doc.Questions))
	for _, q := range doc.Questions {
		if strings.TrimSpace(q.Prompt) == "" {
			continue
		}
		if q.ID == "" {
			q.ID = uuid.New().String()
		}
		if q.Status == "" {
			q.Status = domain.QuestionStatusPublished
		}
		out = append(out, q)
	}
	return out, nil
}

func main() {
	var dir string
	flag.StringVar(&dir, "dir", "seed", "directory of question YAML files")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DBURL, cfg.ConnectMaxElapsedTime)
	if err != nil {
		slog.Error("db connect failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, schema); err != nil {
		slog.Error("schema create failed", slog.Any("error", err))
		os.Exit(1)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		slog.Error("glob failed", slog.Any("error", err))
		os.Exit(1)
	}
	if len(matches) == 0 {
		slog.Warn("no seed files found", slog.String("dir", dir))
	}

	total := 0
	for _, path := range matches {
		items, err := loadQuestions(path)
		if err != nil {
			slog.Error("seed file failed", slog.String("path", path), slog.Any("error", err))
			os.Exit(1)
		}
		for _, q := range items {
			_, err := pool.Exec(ctx, `
				INSERT INTO questions (id, title, topic, difficulty, prompt, tags, tech_stack, positions, interview_types, status, created_at)
				VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,now())
				ON CONFLICT (id) DO UPDATE SET
					title=EXCLUDED.title, topic=EXCLUDED.topic, difficulty=EXCLUDED.difficulty,
					prompt=EXCLUDED.prompt, tags=EXCLUDED.tags, tech_stack=EXCLUDED.tech_stack,
					positions=EXCLUDED.positions, interview_types=EXCLUDED.interview_types, status=EXCLUDED.status`,
				q.ID, q.Title, q.Topic, q.Difficulty, q.Prompt,
				q.Tags, q.TechStack, q.Positions, q.InterviewTypes, q.Status)
			if err != nil {
				slog.Error("insert failed", slog.String("id", q.ID), slog.Any("error", err))
				os.Exit(1)
			}
			total++
		}
		slog.Info("seeded file", slog.String("path", path), slog.Int("questions", len(items)))
	}
	slog.Info("seed complete", slog.Int("questions", total))
}
