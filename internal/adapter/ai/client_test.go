package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blairify/interview-engine/internal/config"
	"github.com/blairify/interview-engine/internal/domain"
)

func testConfig(baseURL string) config.Config {
	return config.Config{
		MistralAPIKey:  "test-key",
		MistralBaseURL: baseURL,
		MistralModel:   "mistral-large-latest",
		GenTimeout:     5 * time.Second,
		GenMaxTokens:   800,
		GenTemperature: 0.7,
	}
}

func TestChatParsesCompletion(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "Can you explain how indexes work?"}, "finish_reason": "stop"},
			},
		})
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL))
	res, err := c.Chat(context.Background(), "system prompt", "user prompt")
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, "Can you explain how indexes work?", res.Content)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "mistral-large-latest", gotReq.Model)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, "user", gotReq.Messages[1].Role)
}

func TestChatMissingAPIKey(t *testing.T) {
	c := New(config.Config{MistralBaseURL: "http://localhost:0"})
	_, err := c.Chat(context.Background(), "s", "u")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestChatMapsRateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL))
	_, err := c.Chat(context.Background(), "s", "u")
	assert.ErrorIs(t, err, domain.ErrRateLimited)
}

func TestChatMapsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL))
	_, err := c.Chat(context.Background(), "s", "u")
	assert.ErrorIs(t, err, domain.ErrUpstreamError)
}

func TestChatEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL))
	_, err := c.Chat(context.Background(), "s", "u")
	assert.ErrorIs(t, err, domain.ErrUpstreamError)
}

func TestChatTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server detects client disconnect and cancels
		// the request context; otherwise Close deadlocks on this handler.
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL))
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := c.Chat(ctx, "s", "u")
	assert.ErrorIs(t, err, domain.ErrUpstreamTimeout)
}

func TestStubCyclesReplies(t *testing.T) {
	t.Parallel()
	s := NewStub()
	seen := make(map[string]bool)
	for i := 0; i < 8; i++ {
		res, err := s.Chat(context.Background(), "", "")
		require.NoError(t, err)
		assert.True(t, res.Success)
		seen[res.Content] = true
	}
	assert.Len(t, seen, len(stubReplies))
}
