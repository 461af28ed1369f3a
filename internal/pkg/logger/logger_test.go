package logger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestInit(t *testing.T) {
	prev := L()
	t.Cleanup(func() { Set(prev) })

	require.NoError(t, Init("dev"))
	assert.NotNil(t, L())
	require.NoError(t, Init("production"))
	assert.NotNil(t, L())
}

func TestWithContext_AddsRequestID(t *testing.T) {
	prev := L()
	t.Cleanup(func() { Set(prev) })

	core, logs := observer.New(zap.DebugLevel)
	Set(zap.New(core))

	ctx := ContextWithRequestID(context.Background(), "req-1")
	Info(ctx, "hello")
	Warn(context.Background(), "plain")
	LogRequest(ctx, "GET", "/health", 200, time.Millisecond, "127.0.0.1")

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "req-1", entries[0].ContextMap()[RequestIDKey])
	assert.NotContains(t, entries[1].ContextMap(), RequestIDKey)
	assert.Equal(t, int64(200), entries[2].ContextMap()["status"])
}

func TestWithContext_NilContext(t *testing.T) {
	var ctx context.Context
	assert.NotNil(t, WithContext(ctx))
}
