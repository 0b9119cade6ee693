package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLoggerCarriesRequestID(t *testing.T) {
	prev := log.Logger
	defer func() { log.Logger = prev }()

	var buf bytes.Buffer
	Init(Config{Level: "info", Environment: "test", Output: &buf})

	ctx := WithRequestID(context.Background(), "req-42")
	FromContext(ctx).Info().Msg("order placed")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-42", entry["request_id"])
	assert.Equal(t, "order placed", entry["message"])
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestFromContextFallsBackToGlobal(t *testing.T) {
	assert.Equal(t, &log.Logger, FromContext(context.Background()))
}
