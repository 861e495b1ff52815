package redpanda

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/plugin/kotel"
	"go.opentelemetry.io/otel"

	obsadapter "github.com/blairify/interview-engine/internal/adapter/observability"
	"github.com/blairify/interview-engine/internal/domain"
	"github.com/blairify/interview-engine/internal/observability"
)

// ScoreHandler processes one scoring task. A returned error marks the task
// failed; the record is committed either way since scoring is idempotent and
// can be re-enqueued by a later turn.
type ScoreHandler func(ctx context.Context, payload domain.ScoreTaskPayload) error

// Consumer polls the score topic within a consumer group and dispatches each
// task to the handler.
type Consumer struct {
	client  *kgo.Client
	handler ScoreHandler
	topic   string
	groupID string
}

// NewConsumer joins the consumer group and ensures the topic exists.
func NewConsumer(brokers []string, groupID string, handler ScoreHandler) (*Consumer, error) {
	return newConsumerWithTopic(brokers, groupID, TopicScore, handler)
}

func newConsumerWithTopic(brokers []string, groupID, topic string, handler ScoreHandler) (*Consumer, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("op=queue.new_consumer: no seed brokers")
	}
	if groupID == "" {
		return nil, fmt.Errorf("op=queue.new_consumer: group id is required")
	}

	kotelService := kotel.NewKotel(kotel.WithTracer(
		kotel.NewTracer(kotel.TracerProvider(otel.GetTracerProvider())),
	))
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ConsumerGroup(groupID),
		kgo.ConsumeTopics(topic),
		kgo.WithHooks(kotelService.Hooks()...),
		kgo.DisableAutoCommit(),
	)
	if err != nil {
		return nil, fmt.Errorf("op=queue.new_consumer: %w", err)
	}

	if err := createTopicIfNotExists(context.Background(), client, topic, 4, 1); err != nil {
		slog.Warn("topic creation failed, continuing",
			slog.String("topic", topic), slog.Any("error", err))
	}
	return &Consumer{client: client, handler: handler, topic: topic, groupID: groupID}, nil
}

// Run polls until the context is cancelled. Fetch errors are logged and
// polling continues; only context cancellation stops the loop.
func (c *Consumer) Run(ctx context.Context) error {
	slog.Info("scoring consumer started",
		slog.String("topic", c.topic), slog.String("group_id", c.groupID))

	for {
		fetches := c.client.PollFetches(ctx)
		if fetches.IsClientClosed() || ctx.Err() != nil {
			slog.Info("scoring consumer stopping")
			return ctx.Err()
		}
		fetches.EachError(func(topic string, partition int32, err error) {
			slog.Error("fetch error", slog.String("topic", topic),
				slog.Int("partition", int(partition)), slog.Any("error", err))
		})
		fetches.EachRecord(func(rec *kgo.Record) {
			c.processRecord(ctx, rec)
		})
		if err := c.client.CommitUncommittedOffsets(ctx); err != nil {
			slog.Error("offset commit failed", slog.Any("error", err))
		}
	}
}

// processRecord decodes and handles one task. Malformed records are dropped
// after logging; redelivering them cannot succeed.
func (c *Consumer) processRecord(ctx context.Context, rec *kgo.Record) {
	for _, h := range rec.Headers {
		if h.Key == "request_id" && len(h.Value) > 0 {
			ctx = observability.ContextWithRequestID(ctx, string(h.Value))
		}
	}
	log := observability.LoggerFromContext(ctx)

	var payload domain.ScoreTaskPayload
	if err := json.Unmarshal(rec.Value, &payload); err != nil {
		obsadapter.ScoreTasksCompletedTotal.WithLabelValues("malformed").Inc()
		log.Error("dropping malformed scoring task",
			"offset", rec.Offset, "error", err)
		return
	}

	if err := c.handler(ctx, payload); err != nil {
		obsadapter.ScoreTasksCompletedTotal.WithLabelValues("failed").Inc()
		log.Error("scoring task failed",
			"session_id", payload.SessionID, "error", err)
		return
	}
	obsadapter.ScoreTasksCompletedTotal.WithLabelValues("ok").Inc()
	log.Info("scoring task completed", "session_id", payload.SessionID)
}

// Close leaves the group and closes the client.
func (c *Consumer) Close() {
	c.client.Close()
}
