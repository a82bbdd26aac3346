package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/BoneTheDeveloper/learning-newword-project/internal/domain"
	"github.com/BoneTheDeveloper/learning-newword-project/internal/store"
)

// defaultRecentSessionLimit caps ListRecent when the caller passes a
// non-positive limit.
const defaultRecentSessionLimit = 20

// PostgresStudySessionStore implements the store.StudySessionStore interface
// using a PostgreSQL database as the storage backend.
type PostgresStudySessionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresStudySessionStore creates a new PostgreSQL implementation of the
// StudySessionStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresStudySessionStore(db store.DBTX, logger *slog.Logger) *PostgresStudySessionStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresStudySessionStore{
		db:     db,
		logger: logger.With(slog.String("component", "study_session_store")),
	}
}

// Ensure PostgresStudySessionStore implements store.StudySessionStore interface
var _ store.StudySessionStore = (*PostgresStudySessionStore)(nil)

// Create implements store.StudySessionStore.Create
func (s *PostgresStudySessionStore) Create(ctx context.Context, session *domain.StudySession) error {
	if err := session.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO study_sessions (id, user_id, collection_id, started_at, completed_at, cards_reviewed, cards_correct)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		session.ID,
		session.UserID,
		session.CollectionID,
		session.StartedAt,
		session.CompletedAt,
		session.CardsReviewed,
		session.CardsCorrect,
	)
	if err != nil {
		return MapError(err)
	}

	return nil
}

// Complete implements store.StudySessionStore.Complete
func (s *PostgresStudySessionStore) Complete(
	ctx context.Context,
	id uuid.UUID,
	completedAt time.Time,
	cardsReviewed, cardsCorrect int,
) error {
	query := `
		UPDATE study_sessions
		SET completed_at = $2, cards_reviewed = $3, cards_correct = $4
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query, id, completedAt, cardsReviewed, cardsCorrect)
	if err != nil {
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "study session"); err != nil {
		return store.ErrStudySessionNotFound
	}

	return nil
}

// ListRecent implements store.StudySessionStore.ListRecent
func (s *PostgresStudySessionStore) ListRecent(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]domain.StudySession, error) {
	if limit <= 0 {
		limit = defaultRecentSessionLimit
	}

	query := `
		SELECT id, user_id, collection_id, started_at, completed_at, cards_reviewed, cards_correct
		FROM study_sessions
		WHERE user_id = $1
		ORDER BY started_at DESC
		LIMIT $2
	`

	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			s.logger.Warn("failed to close rows", slog.String("error", cerr.Error()))
		}
	}()

	var sessions []domain.StudySession
	for rows.Next() {
		var session domain.StudySession
		if err := rows.Scan(
			&session.ID,
			&session.UserID,
			&session.CollectionID,
			&session.StartedAt,
			&session.CompletedAt,
			&session.CardsReviewed,
			&session.CardsCorrect,
		); err != nil {
			return nil, MapError(err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return sessions, nil
}

// WithTx implements store.StudySessionStore.WithTx
func (s *PostgresStudySessionStore) WithTx(tx *sql.Tx) store.StudySessionStore {
	return &PostgresStudySessionStore{
		db:     tx,
		logger: s.logger,
	}
}
