// Package review coordinates the spaced-repetition study flow: selecting due
// cards, running interactive study sessions, and persisting the scheduling
// consequences of each answer.
package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/BoneTheDeveloper/learning-newword-project/internal/domain"
	"github.com/BoneTheDeveloper/learning-newword-project/internal/domain/session"
)

// Common error types for ReviewService
var (
	// ErrNoCardsDue indicates that the user has no cards due for review.
	ErrNoCardsDue = errors.New("no cards due for review")

	// ErrSessionNotFound indicates that no active session exists with the
	// given ID for the requesting user.
	ErrSessionNotFound = errors.New("review session not found")

	// ErrSessionComplete indicates the session has already consumed all its cards.
	ErrSessionComplete = errors.New("review session is already complete")

	// ErrCardNotFound indicates that the card or its scheduling state does not exist.
	ErrCardNotFound = errors.New("card not found")

	// ErrInvalidAnswer indicates an invalid answer was provided.
	ErrInvalidAnswer = errors.New("invalid answer")
)

// ReviewAnswer represents a user's answer to a card under review. Exactly one
// of Quality or Button is used: Button, when non-empty, is translated through
// domain.ParseReviewButton.
type ReviewAnswer struct {
	Quality domain.ReviewQuality `json:"quality"`
	Button  string               `json:"button,omitempty"`
}

// SubmitResult bundles the outcome of answering one card: the advanced
// session and the card's updated scheduling state.
type SubmitResult struct {
	Session session.Session
	State   *domain.SchedulingState
}

// UpcomingCounts summarizes how many cards come due per horizon. The week
// count includes today and tomorrow, matching how the buckets are shown.
type UpcomingCounts struct {
	Today    int `json:"today"`
	Tomorrow int `json:"tomorrow"`
	Week     int `json:"week"`
}

// ReviewService drives the study workflow end to end.
type ReviewService interface {
	// GetDueCards returns the user's cards due for review right now,
	// most overdue first, truncated to the configured limit. An empty
	// slice means the user is caught up; that is not an error.
	GetDueCards(
		ctx context.Context,
		userID uuid.UUID,
		collectionID *uuid.UUID,
	) ([]domain.ReviewCard, error)

	// UpcomingCounts reports how many cards come due today, tomorrow, and
	// within the configured week horizon.
	UpcomingCounts(
		ctx context.Context,
		userID uuid.UUID,
		collectionID *uuid.UUID,
	) (UpcomingCounts, error)

	// StartSession snapshots the user's current due cards into a new
	// session and records its summary row.
	// Returns ErrNoCardsDue when nothing is due.
	StartSession(
		ctx context.Context,
		userID uuid.UUID,
		collectionID *uuid.UUID,
	) (session.Session, error)

	// GetSession retrieves an active or completed session owned by the user.
	// Returns ErrSessionNotFound for unknown IDs and for sessions owned by
	// someone else.
	GetSession(ctx context.Context, userID, sessionID uuid.UUID) (session.Session, error)

	// SubmitAnswer grades the session's current card, persists the card's
	// new scheduling state, advances the session cursor, and finalizes the
	// session summary when the last card is answered.
	// Returns ErrSessionComplete when every card has already been answered
	// and ErrInvalidAnswer for out-of-range quality ratings.
	SubmitAnswer(
		ctx context.Context,
		userID, sessionID uuid.UUID,
		answer ReviewAnswer,
	) (*SubmitResult, error)

	// SkipCard advances past the session's current card, rescheduling it
	// as a lapse.
	SkipCard(ctx context.Context, userID, sessionID uuid.UUID) (*SubmitResult, error)

	// RecentSessions returns the user's most recent session summaries,
	// newest first.
	RecentSessions(ctx context.Context, userID uuid.UUID, limit int) ([]domain.StudySession, error)

	// PostponeCard pushes a card's next review forward by the given number
	// of days without touching its ease factor or repetition streak.
	PostponeCard(
		ctx context.Context,
		userID, cardID uuid.UUID,
		days int,
	) (*domain.SchedulingState, error)
}

// ServiceError wraps errors from the review service with additional context.
// This allows consumers to differentiate between different types of service
// errors using errors.As instead of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "start_session", "submit_answer")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// newServiceError returns a new ServiceError for the given operation.
func newServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
