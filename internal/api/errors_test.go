package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BoneTheDeveloper/learning-newword-project/internal/domain"
	"github.com/BoneTheDeveloper/learning-newword-project/internal/domain/srs"
	"github.com/BoneTheDeveloper/learning-newword-project/internal/service/auth"
	"github.com/BoneTheDeveloper/learning-newword-project/internal/service/review"
	"github.com/BoneTheDeveloper/learning-newword-project/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"session not found", review.ErrSessionNotFound, http.StatusNotFound},
		{"card not found", review.ErrCardNotFound, http.StatusNotFound},
		{"state not found", store.ErrSchedulingStateNotFound, http.StatusNotFound},
		{"session complete", review.ErrSessionComplete, http.StatusConflict},
		{"invalid answer", review.ErrInvalidAnswer, http.StatusBadRequest},
		{"invalid postpone days", srs.ErrInvalidDays, http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"no cards due", review.ErrNoCardsDue, http.StatusNoContent},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
		{
			"wrapped sentinel",
			fmt.Errorf("loading state: %w", store.ErrCardNotFound),
			http.StatusNotFound,
		},
		{
			"validation error wraps sentinel",
			domain.NewValidationError("id", "has invalid format", domain.ErrInvalidID),
			http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil error", nil, "An unexpected error occurred"},
		{"expired token", auth.ErrExpiredToken, "Token expired"},
		{"session not found", review.ErrSessionNotFound, "Review session not found"},
		{"card not found", review.ErrCardNotFound, "Card not found"},
		{"session complete", review.ErrSessionComplete, "Review session is already complete"},
		{"invalid answer", review.ErrInvalidAnswer, "Invalid answer"},
		{
			"internal details are hidden",
			errors.New("pq: duplicate key value violates unique constraint"),
			"An unexpected error occurred",
		},
		{
			"validation error names the field",
			domain.NewValidationError("collection_id", "has invalid format", domain.ErrInvalidID),
			"Invalid collection_id",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, GetSafeErrorMessage(tc.err))
		})
	}
}
