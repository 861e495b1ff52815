// Package ai implements the generation collaborator against the Mistral
// chat-completions API (OpenAI-compatible). One attempt per turn; every
// failure surfaces as an error so the pipeline can substitute its fallback.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/blairify/interview-engine/internal/adapter/ai/tokencount"
	obsadapter "github.com/blairify/interview-engine/internal/adapter/observability"
	"github.com/blairify/interview-engine/internal/config"
	"github.com/blairify/interview-engine/internal/domain"
	"github.com/blairify/interview-engine/internal/observability"
)

const providerName = "mistral"

// Client implements domain.Generator against Mistral's chat completions.
type Client struct {
	cfg     config.Config
	hc      *http.Client
	counter *tokencount.Counter
}

// New constructs a Client. The HTTP timeout sits above the per-call context
// deadline so the pipeline's timeout is the one that fires.
func New(cfg config.Config) *Client {
	transport := otelhttp.NewTransport(http.DefaultTransport,
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return fmt.Sprintf("Generate %s %s", r.Method, r.URL.Host)
		}),
	)
	return &Client{
		cfg: cfg,
		hc: &http.Client{
			Timeout:   cfg.GenTimeout + 5*time.Second,
			Transport: transport,
		},
		counter: tokencount.NewCounter(),
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Messages    []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// Chat performs a single chat-completion call. No retries: the caller falls
// back to deterministic content on any error.
func (c *Client) Chat(ctx domain.Context, systemPrompt, userPrompt string) (domain.GenResult, error) {
	log := observability.LoggerFromContext(ctx)
	if c.cfg.MistralAPIKey == "" {
		return domain.GenResult{}, fmt.Errorf("op=ai.chat: MISTRAL_API_KEY missing: %w", domain.ErrInvalidArgument)
	}

	body, err := json.Marshal(chatRequest{
		Model:       c.cfg.MistralModel,
		Temperature: c.cfg.GenTemperature,
		MaxTokens:   c.cfg.GenMaxTokens,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	})
	if err != nil {
		return domain.GenResult{}, fmt.Errorf("op=ai.chat: marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.MistralBaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return domain.GenResult{}, fmt.Errorf("op=ai.chat: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.MistralAPIKey)

	start := time.Now()
	resp, err := c.hc.Do(req)
	obsadapter.GenRequestDuration.WithLabelValues(providerName).Observe(time.Since(start).Seconds())
	if err != nil {
		obsadapter.GenRequestsTotal.WithLabelValues(providerName, "transport_error").Inc()
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return domain.GenResult{}, fmt.Errorf("op=ai.chat: %w", domain.ErrUpstreamTimeout)
		}
		return domain.GenResult{}, fmt.Errorf("op=ai.chat: %w: %v", domain.ErrUpstreamError, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		obsadapter.GenRequestsTotal.WithLabelValues(providerName, fmt.Sprintf("http_%d", resp.StatusCode)).Inc()
		log.Warn("generation call failed",
			"status", resp.StatusCode, "body", string(snippet))
		if resp.StatusCode == http.StatusTooManyRequests {
			return domain.GenResult{}, fmt.Errorf("op=ai.chat: status %d: %w", resp.StatusCode, domain.ErrRateLimited)
		}
		return domain.GenResult{}, fmt.Errorf("op=ai.chat: status %d: %w", resp.StatusCode, domain.ErrUpstreamError)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		obsadapter.GenRequestsTotal.WithLabelValues(providerName, "decode_error").Inc()
		return domain.GenResult{}, fmt.Errorf("op=ai.chat: decode: %w", err)
	}
	if len(parsed.Choices) == 0 {
		obsadapter.GenRequestsTotal.WithLabelValues(providerName, "empty_choices").Inc()
		return domain.GenResult{}, fmt.Errorf("op=ai.chat: no choices: %w", domain.ErrUpstreamError)
	}

	content := parsed.Choices[0].Message.Content
	obsadapter.GenRequestsTotal.WithLabelValues(providerName, "ok").Inc()
	log.Debug("generation call completed",
		"model", c.cfg.MistralModel,
		"prompt_tokens", c.counter.Count(systemPrompt)+c.counter.Count(userPrompt),
		"completion_tokens", c.counter.Count(content),
		"finish_reason", parsed.Choices[0].FinishReason,
		"duration_ms", time.Since(start).Milliseconds())

	return domain.GenResult{Content: content, Success: content != ""}, nil
}
