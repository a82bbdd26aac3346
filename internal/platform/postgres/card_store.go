package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/BoneTheDeveloper/learning-newword-project/internal/domain"
	"github.com/BoneTheDeveloper/learning-newword-project/internal/store"
)

// PostgresCardStore implements the store.CardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the CardStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresCardStore(db store.DBTX, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure PostgresCardStore implements store.CardStore interface
var _ store.CardStore = (*PostgresCardStore)(nil)

// Create implements store.CardStore.Create
func (s *PostgresCardStore) Create(ctx context.Context, card *domain.Card) error {
	if err := card.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	definitions, err := json.Marshal(card.Definitions)
	if err != nil {
		return fmt.Errorf("failed to marshal definitions: %w", err)
	}

	query := `
		INSERT INTO cards (id, user_id, collection_id, word, part_of_speech, phonetic, context, definitions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = s.db.ExecContext(ctx, query,
		card.ID,
		card.UserID,
		card.CollectionID,
		card.Word,
		card.PartOfSpeech,
		card.Phonetic,
		card.Context,
		definitions,
		card.CreatedAt,
		card.UpdatedAt,
	)
	if err != nil {
		return MapError(err)
	}

	return nil
}

// GetByID implements store.CardStore.GetByID
// Returns store.ErrCardNotFound if the card does not exist.
func (s *PostgresCardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	query := `
		SELECT id, user_id, collection_id, word, part_of_speech, phonetic, context, definitions, created_at, updated_at
		FROM cards
		WHERE id = $1
	`

	var card domain.Card
	var definitions []byte
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&card.ID,
		&card.UserID,
		&card.CollectionID,
		&card.Word,
		&card.PartOfSpeech,
		&card.Phonetic,
		&card.Context,
		&definitions,
		&card.CreatedAt,
		&card.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrCardNotFound
		}
		return nil, MapError(err)
	}

	if err := json.Unmarshal(definitions, &card.Definitions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal definitions: %w", err)
	}

	return &card, nil
}

// Delete implements store.CardStore.Delete
// The scheduling state row is removed by ON DELETE CASCADE.
func (s *PostgresCardStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM cards WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "card"); err != nil {
		return store.ErrCardNotFound
	}

	return nil
}

// ListReviewCards implements store.CardStore.ListReviewCards
// It joins cards with their scheduling state into ReviewCard projections,
// ordered by next review time so the most overdue cards come first.
func (s *PostgresCardStore) ListReviewCards(
	ctx context.Context,
	userID uuid.UUID,
	collectionID *uuid.UUID,
) ([]domain.ReviewCard, error) {
	query := `
		SELECT c.id, c.word, c.part_of_speech, c.phonetic, c.context, c.definitions,
		       p.ease_factor, p.interval_days, p.repetitions, p.next_review_at
		FROM cards c
		JOIN srs_progress p ON p.card_id = c.id AND p.user_id = c.user_id
		WHERE c.user_id = $1
		  AND ($2::uuid IS NULL OR c.collection_id = $2)
		ORDER BY p.next_review_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID, collectionID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			s.logger.Warn("failed to close rows", slog.String("error", cerr.Error()))
		}
	}()

	var cards []domain.ReviewCard
	for rows.Next() {
		var card domain.ReviewCard
		var definitions []byte
		if err := rows.Scan(
			&card.CardID,
			&card.Word,
			&card.PartOfSpeech,
			&card.Phonetic,
			&card.Context,
			&definitions,
			&card.EaseFactor,
			&card.Interval,
			&card.Repetitions,
			&card.NextReviewAt,
		); err != nil {
			return nil, MapError(err)
		}

		if err := json.Unmarshal(definitions, &card.Definitions); err != nil {
			return nil, fmt.Errorf("failed to unmarshal definitions: %w", err)
		}

		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return cards, nil
}

// WithTx implements store.CardStore.WithTx
func (s *PostgresCardStore) WithTx(tx *sql.Tx) store.CardStore {
	return &PostgresCardStore{
		db:     tx,
		logger: s.logger,
	}
}
