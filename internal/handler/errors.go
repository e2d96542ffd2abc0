package handler

import (
	"log/slog"
	"net/http"

	"github.com/taskdeck/taskdeck/internal/apperr"
	"github.com/taskdeck/taskdeck/internal/handler/dto"
	"github.com/taskdeck/taskdeck/internal/middleware"
)

// statusFor is the single mapping from error kind to HTTP status.
// Every handler funnels service failures through writeServiceError so
// the mapping lives in exactly one place.
func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindAuthenticationFailed:
		return http.StatusUnauthorized
	case apperr.KindAccessDenied:
		return http.StatusForbidden
	case apperr.KindProjectNotFound, apperr.KindTaskNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError translates a service error into an HTTP response.
// Internal failures are logged with the request id and masked with a
// generic message; tagged kinds pass their message through verbatim.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	kind := apperr.KindOf(err)
	status := statusFor(kind)

	message := apperr.MessageOf(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
			slog.String("path", r.URL.Path),
		)
		message = "Unexpected error occurred"
	}

	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  string(kind),
	})
}

// writeValidationError responds 400 with a VALIDATION_ERROR envelope.
func writeValidationError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{
		Error: message,
		Code:  string(apperr.KindValidation),
	})
}
