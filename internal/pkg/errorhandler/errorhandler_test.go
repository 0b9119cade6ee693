package errorhandler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/topupstore/topup-api/internal/pkg/logger"
)

func TestInternalLogsAndHidesCause(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf)
	ctx := logger.WithContext(context.Background(), &l)

	rec := httptest.NewRecorder()
	Internal(ctx, rec, "place order", errors.New("connection reset"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection reset")
	assert.Contains(t, buf.String(), "connection reset")
	assert.Contains(t, buf.String(), `"op":"place order"`)
}

func TestValidation(t *testing.T) {
	rec := httptest.NewRecorder()
	Validation(context.Background(), rec, map[string]string{"game_uid": "This field is required"})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "game_uid")
}
