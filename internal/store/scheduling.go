package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/BoneTheDeveloper/learning-newword-project/internal/domain"
)

// SchedulingStateStore defines the interface for scheduling state persistence.
// The SM-2 engine computes new states; this store makes them durable.
type SchedulingStateStore interface {
	// Create saves a new scheduling state for a user/card pairing.
	// Returns ErrSchedulingStateExists if one already exists for the pairing,
	// and validation errors from the domain if the data is invalid.
	Create(ctx context.Context, state *domain.SchedulingState) error

	// Get retrieves the scheduling state for a user/card pairing.
	// Returns ErrSchedulingStateNotFound if the state does not exist.
	// No row locking is taken; do not use this when you intend to update
	// the row under concurrency.
	Get(ctx context.Context, userID, cardID uuid.UUID) (*domain.SchedulingState, error)

	// GetForUpdate retrieves the scheduling state with a row-level lock
	// (SELECT ... FOR UPDATE). Use within a transaction for the
	// read-modify-write cycle of a review submission, so two concurrent
	// answers against the same row cannot interleave.
	// Returns ErrSchedulingStateNotFound if the state does not exist.
	GetForUpdate(ctx context.Context, userID, cardID uuid.UUID) (*domain.SchedulingState, error)

	// Update persists an engine-computed state over the existing row.
	// Returns ErrSchedulingStateNotFound if no row exists for the pairing,
	// and validation errors from the domain if the data is invalid.
	Update(ctx context.Context, state *domain.SchedulingState) error

	// ListByUser returns all scheduling states for a user, optionally scoped
	// to a collection, ordered by NextReviewAt ascending.
	ListByUser(
		ctx context.Context,
		userID uuid.UUID,
		collectionID *uuid.UUID,
	) ([]domain.SchedulingState, error)

	// WithTx returns a new SchedulingStateStore instance that uses the
	// provided transaction.
	WithTx(tx *sql.Tx) SchedulingStateStore
}
