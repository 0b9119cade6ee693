package errorhandler

import (
	"context"
	"net/http"

	"github.com/topupstore/topup-api/internal/pkg/logger"
	"github.com/topupstore/topup-api/internal/pkg/response"
)

// Internal logs an unexpected error with the request logger and answers 500
func Internal(ctx context.Context, w http.ResponseWriter, op string, err error) {
	logger.FromContext(ctx).Error().
		Err(err).
		Str("op", op).
		Msg("Request failed")

	response.InternalError(w)
}

// Validation logs rejected input at debug level and answers 422
func Validation(ctx context.Context, w http.ResponseWriter, details map[string]string) {
	logger.FromContext(ctx).Debug().
		Interface("fields", details).
		Msg("Validation failed")

	response.ValidationError(w, details)
}
