package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/BoneTheDeveloper/learning-newword-project/internal/domain"
	"github.com/BoneTheDeveloper/learning-newword-project/internal/store"
)

// PostgresSchedulingStateStore implements the store.SchedulingStateStore
// interface using a PostgreSQL database as the storage backend.
type PostgresSchedulingStateStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSchedulingStateStore creates a new PostgreSQL implementation of
// the SchedulingStateStore interface. It accepts a database connection or
// transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresSchedulingStateStore(db store.DBTX, logger *slog.Logger) *PostgresSchedulingStateStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSchedulingStateStore{
		db:     db,
		logger: logger.With(slog.String("component", "scheduling_state_store")),
	}
}

// Ensure PostgresSchedulingStateStore implements store.SchedulingStateStore interface
var _ store.SchedulingStateStore = (*PostgresSchedulingStateStore)(nil)

const schedulingStateColumns = `
	user_id, card_id, ease_factor, interval_days, repetitions,
	last_review_at, next_review_at,
	total_reviews, correct_reviews, incorrect_reviews,
	created_at, updated_at`

// Create implements store.SchedulingStateStore.Create
func (s *PostgresSchedulingStateStore) Create(ctx context.Context, state *domain.SchedulingState) error {
	if err := state.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO srs_progress (` + schedulingStateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := s.db.ExecContext(ctx, query,
		state.UserID,
		state.CardID,
		state.EaseFactor,
		state.Interval,
		state.Repetitions,
		state.LastReviewAt,
		state.NextReviewAt,
		state.TotalReviews,
		state.CorrectReviews,
		state.IncorrectReviews,
		state.CreatedAt,
		state.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return store.ErrSchedulingStateExists
		}
		return MapError(err)
	}

	return nil
}

// Get implements store.SchedulingStateStore.Get
func (s *PostgresSchedulingStateStore) Get(
	ctx context.Context,
	userID, cardID uuid.UUID,
) (*domain.SchedulingState, error) {
	query := `
		SELECT ` + schedulingStateColumns + `
		FROM srs_progress
		WHERE user_id = $1 AND card_id = $2
	`
	return s.scanOne(s.db.QueryRowContext(ctx, query, userID, cardID))
}

// GetForUpdate implements store.SchedulingStateStore.GetForUpdate
// The row lock is only meaningful when s.db is a transaction.
func (s *PostgresSchedulingStateStore) GetForUpdate(
	ctx context.Context,
	userID, cardID uuid.UUID,
) (*domain.SchedulingState, error) {
	query := `
		SELECT ` + schedulingStateColumns + `
		FROM srs_progress
		WHERE user_id = $1 AND card_id = $2
		FOR UPDATE
	`
	return s.scanOne(s.db.QueryRowContext(ctx, query, userID, cardID))
}

func (s *PostgresSchedulingStateStore) scanOne(row *sql.Row) (*domain.SchedulingState, error) {
	var state domain.SchedulingState
	err := row.Scan(
		&state.UserID,
		&state.CardID,
		&state.EaseFactor,
		&state.Interval,
		&state.Repetitions,
		&state.LastReviewAt,
		&state.NextReviewAt,
		&state.TotalReviews,
		&state.CorrectReviews,
		&state.IncorrectReviews,
		&state.CreatedAt,
		&state.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrSchedulingStateNotFound
		}
		return nil, MapError(err)
	}

	return &state, nil
}

// Update implements store.SchedulingStateStore.Update
func (s *PostgresSchedulingStateStore) Update(ctx context.Context, state *domain.SchedulingState) error {
	if err := state.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE srs_progress
		SET ease_factor = $3,
		    interval_days = $4,
		    repetitions = $5,
		    last_review_at = $6,
		    next_review_at = $7,
		    total_reviews = $8,
		    correct_reviews = $9,
		    incorrect_reviews = $10,
		    updated_at = $11
		WHERE user_id = $1 AND card_id = $2
	`
	result, err := s.db.ExecContext(ctx, query,
		state.UserID,
		state.CardID,
		state.EaseFactor,
		state.Interval,
		state.Repetitions,
		state.LastReviewAt,
		state.NextReviewAt,
		state.TotalReviews,
		state.CorrectReviews,
		state.IncorrectReviews,
		state.UpdatedAt,
	)
	if err != nil {
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "scheduling state"); err != nil {
		return store.ErrSchedulingStateNotFound
	}

	return nil
}

// ListByUser implements store.SchedulingStateStore.ListByUser
func (s *PostgresSchedulingStateStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	collectionID *uuid.UUID,
) ([]domain.SchedulingState, error) {
	query := `
		SELECT ` + schedulingStateColumns + `
		FROM srs_progress p
		WHERE p.user_id = $1
		  AND ($2::uuid IS NULL OR EXISTS (
		      SELECT 1 FROM cards c
		      WHERE c.id = p.card_id AND c.collection_id = $2
		  ))
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

	var states []domain.SchedulingState
	for rows.Next() {
		var state domain.SchedulingState
		if err := rows.Scan(
			&state.UserID,
			&state.CardID,
			&state.EaseFactor,
			&state.Interval,
			&state.Repetitions,
			&state.LastReviewAt,
			&state.NextReviewAt,
			&state.TotalReviews,
			&state.CorrectReviews,
			&state.IncorrectReviews,
			&state.CreatedAt,
			&state.UpdatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		states = append(states, state)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return states, nil
}

// CountDue reports how many scheduling states are due at the given time,
// across all users. Used by the background scheduler for its daily summary.
func (s *PostgresSchedulingStateStore) CountDue(ctx context.Context, before time.Time) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM srs_progress WHERE next_review_at <= $1`,
		before,
	).Scan(&count)
	if err != nil {
		return 0, MapError(err)
	}

	return count, nil
}

// WithTx implements store.SchedulingStateStore.WithTx
func (s *PostgresSchedulingStateStore) WithTx(tx *sql.Tx) store.SchedulingStateStore {
	return &PostgresSchedulingStateStore{
		db:     tx,
		logger: s.logger,
	}
}
