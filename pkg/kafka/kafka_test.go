package kafka

import (
	"context"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/pkg/logger"
)

type payload struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

func TestBuildMessage(t *testing.T) {
	ctx := logger.WithRequestID(context.Background(), "req-42")
	msg, err := buildMessage(ctx, Event{Key: "k", Value: payload{ID: "a", Score: 0.5}})
	require.NoError(t, err)

	assert.Equal(t, []byte("k"), msg.Key)
	assert.JSONEq(t, `{"id":"a","score":0.5}`, string(msg.Value))
	assert.Equal(t, "req-42", headerValue(msg.Headers, requestIDHeader))
}

func TestBuildMessage_NoRequestID(t *testing.T) {
	msg, err := buildMessage(context.Background(), Event{Key: "k", Value: 1})
	require.NoError(t, err)
	assert.Empty(t, msg.Headers)
}

func TestBuildMessage_Unmarshalable(t *testing.T) {
	_, err := buildMessage(context.Background(), Event{Key: "k", Value: make(chan int)})
	assert.Error(t, err)
}

func TestDecodeJSON(t *testing.T) {
	got, err := DecodeJSON[payload]([]byte(`{"id":"x","score":1}`))
	require.NoError(t, err)
	assert.Equal(t, payload{ID: "x", Score: 1}, got)

	_, err = DecodeJSON[payload]([]byte(`not json`))
	assert.Error(t, err)
}

func TestHeaderValue(t *testing.T) {
	headers := []kafka.Header{{Key: "a", Value: []byte("1")}, {Key: requestIDHeader, Value: []byte("r")}}
	assert.Equal(t, "r", headerValue(headers, requestIDHeader))
	assert.Empty(t, headerValue(nil, requestIDHeader))
}
