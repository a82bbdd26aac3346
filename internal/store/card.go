package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/BoneTheDeveloper/learning-newword-project/internal/domain"
)

// CardStore defines the interface for vocabulary card persistence.
type CardStore interface {
	// Create saves a new card. Definitions are serialized to JSONB.
	// Returns validation errors if the card data is invalid.
	Create(ctx context.Context, card *domain.Card) error

	// GetByID retrieves a card by its unique ID.
	// Returns ErrCardNotFound if the card does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)

	// Delete removes a card from the store by its ID.
	// Returns ErrCardNotFound if the card does not exist.
	//
	// The card's scheduling state is removed with it through the
	// ON DELETE CASCADE constraint on srs_progress; the state is owned by
	// the card and never outlives it.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListReviewCards returns every card belonging to the user joined with
	// its scheduling state as ReviewCard projections, optionally scoped to
	// a collection. Due filtering and ordering are the caller's concern
	// (see the srs package); this method returns the full snapshot.
	ListReviewCards(
		ctx context.Context,
		userID uuid.UUID,
		collectionID *uuid.UUID,
	) ([]domain.ReviewCard, error)

	// WithTx returns a new CardStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller,
	// typically through store.RunInTransaction.
	WithTx(tx *sql.Tx) CardStore
}
