package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/BoneTheDeveloper/learning-newword-project/internal/domain"
)

// StudySessionStore defines the interface for study session summary persistence.
type StudySessionStore interface {
	// Create records a new session summary row at session start, with only
	// the identifiers and StartedAt populated.
	Create(ctx context.Context, session *domain.StudySession) error

	// Complete marks the session finished with its final counters.
	// Returns ErrStudySessionNotFound if the session does not exist.
	Complete(
		ctx context.Context,
		id uuid.UUID,
		completedAt time.Time,
		cardsReviewed, cardsCorrect int,
	) error

	// ListRecent returns the user's most recent sessions, newest first,
	// truncated to limit.
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]domain.StudySession, error)

	// WithTx returns a new StudySessionStore instance that uses the
	// provided transaction.
	WithTx(tx *sql.Tx) StudySessionStore
}
