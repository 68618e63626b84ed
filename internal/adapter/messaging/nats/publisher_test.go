package nats

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestNewMsg_EncodesPayloadAndTraceContext(t *testing.T) {
	otel.SetTextMapPropagator(propagation.TraceContext{})
	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()

	ctx, span := tp.Tracer("test").Start(context.Background(), "parent")
	defer span.End()

	msg, err := newMsg(ctx, "member.verified", map[string]string{"uid": "u1"})
	require.NoError(t, err)

	assert.Equal(t, "member.verified", msg.Subject)
	var body map[string]string
	require.NoError(t, json.Unmarshal(msg.Data, &body))
	assert.Equal(t, "u1", body["uid"])
	assert.NotEmpty(t, msg.Header.Get("traceparent"))
}

func TestNewMsg_RejectsUnencodable(t *testing.T) {
	_, err := newMsg(context.Background(), "member.verified", make(chan int))
	assert.Error(t, err)
}

func TestHeaderCarrier(t *testing.T) {
	c := HeaderCarrier{}
	c.Set("traceparent", "abc")
	assert.Equal(t, "abc", c.Get("traceparent"))
	assert.Equal(t, []string{"traceparent"}, c.Keys())
}

func TestNoopPublisher(t *testing.T) {
	assert.NoError(t, NoopPublisher{}.Publish(context.Background(), "any", nil))
}
