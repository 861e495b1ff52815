package redpanda

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/blairify/interview-engine/internal/domain"
)

func TestScorePayloadRoundTrip(t *testing.T) {
	t.Parallel()
	b, err := json.Marshal(domain.ScoreTaskPayload{SessionID: "sess-42"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"session_id":"sess-42"}`, string(b))

	var got domain.ScoreTaskPayload
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "sess-42", got.SessionID)
}

func TestProcessRecordDispatchesToHandler(t *testing.T) {
	t.Parallel()
	var handled []domain.ScoreTaskPayload
	c := &Consumer{handler: func(_ context.Context, p domain.ScoreTaskPayload) error {
		handled = append(handled, p)
		return nil
	}}

	c.processRecord(context.Background(), &kgo.Record{
		Value: []byte(`{"session_id":"sess-1"}`),
		Headers: []kgo.RecordHeader{
			{Key: "task_id", Value: []byte("task-1")},
			{Key: "request_id", Value: []byte("req-1")},
		},
	})

	require.Len(t, handled, 1)
	assert.Equal(t, "sess-1", handled[0].SessionID)
}

func TestProcessRecordDropsMalformedPayload(t *testing.T) {
	t.Parallel()
	called := false
	c := &Consumer{handler: func(context.Context, domain.ScoreTaskPayload) error {
		called = true
		return nil
	}}

	c.processRecord(context.Background(), &kgo.Record{Value: []byte("not json")})
	assert.False(t, called, "malformed records never reach the handler")
}

func TestProcessRecordSurvivesHandlerError(t *testing.T) {
	t.Parallel()
	c := &Consumer{handler: func(context.Context, domain.ScoreTaskPayload) error {
		return errors.New("storage down")
	}}

	// Must not panic; the error is recorded in metrics and logs only.
	c.processRecord(context.Background(), &kgo.Record{Value: []byte(`{"session_id":"sess-1"}`)})
}

func TestNewProducerRequiresBrokers(t *testing.T) {
	t.Parallel()
	_, err := NewProducer(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no seed brokers")
}

func TestNewConsumerRequiresGroup(t *testing.T) {
	t.Parallel()
	_, err := NewConsumer([]string{"localhost:19092"}, "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "group id is required")
}
