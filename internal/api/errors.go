package api

import (
	"errors"
	"net/http"

	"github.com/BoneTheDeveloper/learning-newword-project/internal/api/shared"
	"github.com/BoneTheDeveloper/learning-newword-project/internal/domain"
	"github.com/BoneTheDeveloper/learning-newword-project/internal/domain/srs"
	"github.com/BoneTheDeveloper/learning-newword-project/internal/service/auth"
	"github.com/BoneTheDeveloper/learning-newword-project/internal/service/review"
	"github.com/BoneTheDeveloper/learning-newword-project/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, review.ErrSessionNotFound),
		errors.Is(err, review.ErrCardNotFound),
		errors.Is(err, store.ErrCardNotFound),
		errors.Is(err, store.ErrSchedulingStateNotFound),
		errors.Is(err, store.ErrStudySessionNotFound):
		return http.StatusNotFound

	// Conflict: answering a finished session
	case errors.Is(err, review.ErrSessionComplete):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, review.ErrInvalidAnswer),
		errors.Is(err, srs.ErrInvalidDays),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidQuality),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Special cases
	case errors.Is(err, review.ErrNoCardsDue):
		return http.StatusNoContent

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid token"

	case errors.Is(err, domain.ErrUnauthorized):
		return "Unauthorized"

	case errors.Is(err, review.ErrSessionNotFound):
		return "Review session not found"

	case errors.Is(err, review.ErrCardNotFound),
		errors.Is(err, store.ErrCardNotFound),
		errors.Is(err, store.ErrSchedulingStateNotFound):
		return "Card not found"

	case errors.Is(err, store.ErrStudySessionNotFound):
		return "Study session not found"

	case errors.Is(err, review.ErrSessionComplete):
		return "Review session is already complete"

	case errors.Is(err, review.ErrInvalidAnswer),
		errors.Is(err, domain.ErrInvalidQuality):
		return "Invalid answer"

	case errors.Is(err, srs.ErrInvalidDays):
		return "Postpone days must be at least 1"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			return "Invalid " + validationErr.Field
		}
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps err to a status code and safe message and writes the
// response. An empty userMessage falls back to GetSafeErrorMessage. A
// no-content mapping writes a bare 204 with no body.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, userMessage string) {
	status := MapErrorToStatusCode(err)

	if status == http.StatusNoContent {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if userMessage == "" {
		userMessage = GetSafeErrorMessage(err)
	}

	shared.RespondWithErrorAndLog(w, r, status, userMessage, err)
}
