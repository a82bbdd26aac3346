package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/BoneTheDeveloper/learning-newword-project/internal/domain"
	"github.com/BoneTheDeveloper/learning-newword-project/internal/domain/session"
	"github.com/BoneTheDeveloper/learning-newword-project/internal/domain/srs"
	"github.com/BoneTheDeveloper/learning-newword-project/internal/platform/logger"
	"github.com/BoneTheDeveloper/learning-newword-project/internal/store"
)

// Verify interface compliance at compile time
var _ ReviewService = (*reviewServiceImpl)(nil)

// Options tunes queue and forecast behavior.
type Options struct {
	// DueLimit caps the number of cards per due query and session.
	DueLimit int
	// UpcomingHorizonDays bounds the week bucket of UpcomingCounts.
	UpcomingHorizonDays int
}

// reviewServiceImpl implements the ReviewService interface.
type reviewServiceImpl struct {
	db           *sql.DB
	cardStore    store.CardStore
	stateStore   store.SchedulingStateStore
	summaryStore store.StudySessionStore
	sessions     ActiveSessionStore
	srsService   srs.Service
	opts         Options
	timeFunc     func() time.Time // Injectable for testing
	runTx        func(ctx context.Context, fn store.TxFn) error
	logger       *slog.Logger
}

// NewReviewService creates a new ReviewService implementation.
// The db handle is used to open transactions for answer submissions; the
// stores must be bound to the same database.
func NewReviewService(
	db *sql.DB,
	cardStore store.CardStore,
	stateStore store.SchedulingStateStore,
	summaryStore store.StudySessionStore,
	sessions ActiveSessionStore,
	srsService srs.Service,
	opts Options,
	log *slog.Logger,
) ReviewService {
	if cardStore == nil {
		panic("cardStore cannot be nil")
	}
	if stateStore == nil {
		panic("stateStore cannot be nil")
	}
	if summaryStore == nil {
		panic("summaryStore cannot be nil")
	}
	if sessions == nil {
		panic("sessions cannot be nil")
	}
	if srsService == nil {
		panic("srsService cannot be nil")
	}

	if opts.DueLimit <= 0 {
		opts.DueLimit = srs.DefaultDueLimit
	}
	if opts.UpcomingHorizonDays <= 0 {
		opts.UpcomingHorizonDays = 7
	}

	if log == nil {
		log = slog.Default()
	}

	svc := &reviewServiceImpl{
		db:           db,
		cardStore:    cardStore,
		stateStore:   stateStore,
		summaryStore: summaryStore,
		sessions:     sessions,
		srsService:   srsService,
		opts:         opts,
		timeFunc:     time.Now,
		logger:       log.With(slog.String("component", "review_service")),
	}
	svc.runTx = func(ctx context.Context, fn store.TxFn) error {
		return store.RunInTransaction(ctx, svc.db, fn)
	}
	return svc
}

// GetDueCards implements ReviewService.GetDueCards.
func (s *reviewServiceImpl) GetDueCards(
	ctx context.Context,
	userID uuid.UUID,
	collectionID *uuid.UUID,
) ([]domain.ReviewCard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cards, err := s.cardStore.ListReviewCards(ctx, userID, collectionID)
	if err != nil {
		log.Error("failed to list review cards",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, newServiceError("get_due_cards", "failed to list review cards", err)
	}

	due := srs.SelectDue(cards, s.timeFunc(), s.opts.DueLimit)

	log.Debug("selected due cards",
		slog.String("user_id", userID.String()),
		slog.Int("total", len(cards)),
		slog.Int("due", len(due)))
	return due, nil
}

// UpcomingCounts implements ReviewService.UpcomingCounts.
func (s *reviewServiceImpl) UpcomingCounts(
	ctx context.Context,
	userID uuid.UUID,
	collectionID *uuid.UUID,
) (UpcomingCounts, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	states, err := s.stateStore.ListByUser(ctx, userID, collectionID)
	if err != nil {
		log.Error("failed to list scheduling states",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return UpcomingCounts{}, newServiceError("upcoming_counts", "failed to list scheduling states", err)
	}

	upcoming := srs.PartitionUpcoming(states, s.timeFunc(), s.opts.UpcomingHorizonDays)

	return UpcomingCounts{
		Today:    len(upcoming.Today),
		Tomorrow: len(upcoming.Tomorrow),
		Week:     len(upcoming.Week),
	}, nil
}

// StartSession implements ReviewService.StartSession.
func (s *reviewServiceImpl) StartSession(
	ctx context.Context,
	userID uuid.UUID,
	collectionID *uuid.UUID,
) (session.Session, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	due, err := s.GetDueCards(ctx, userID, collectionID)
	if err != nil {
		return session.Session{}, err
	}
	if len(due) == 0 {
		log.Debug("no cards due for session", slog.String("user_id", userID.String()))
		return session.Session{}, ErrNoCardsDue
	}

	now := s.timeFunc()
	sess, err := session.New(userID, collectionID, due, now)
	if err != nil {
		return session.Session{}, newServiceError("start_session", "failed to create session", err)
	}

	summary := &domain.StudySession{
		ID:           sess.ID,
		UserID:       userID,
		CollectionID: collectionID,
		StartedAt:    now,
	}
	if err := s.summaryStore.Create(ctx, summary); err != nil {
		log.Error("failed to record session summary",
			slog.String("error", err.Error()),
			slog.String("session_id", sess.ID.String()))
		return session.Session{}, newServiceError("start_session", "failed to record session summary", err)
	}

	s.sessions.Put(sess)

	log.Info("study session started",
		slog.String("user_id", userID.String()),
		slog.String("session_id", sess.ID.String()),
		slog.Int("cards", len(due)))
	return sess, nil
}

// GetSession implements ReviewService.GetSession.
func (s *reviewServiceImpl) GetSession(
	ctx context.Context,
	userID, sessionID uuid.UUID,
) (session.Session, error) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok || sess.UserID != userID {
		// Sessions owned by other users look identical to missing ones.
		return session.Session{}, ErrSessionNotFound
	}
	return sess, nil
}

// SubmitAnswer implements ReviewService.SubmitAnswer.
// The scheduling state update and, on the final card, the session summary
// update run in a single transaction; the in-memory session only advances
// after that transaction commits.
func (s *reviewServiceImpl) SubmitAnswer(
	ctx context.Context,
	userID, sessionID uuid.UUID,
	answer ReviewAnswer,
) (*SubmitResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	sess, err := s.GetSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	card := sess.CurrentCard()
	if card == nil {
		return nil, ErrSessionComplete
	}

	quality := answer.Quality
	if answer.Button != "" {
		quality, err = domain.ParseReviewButton(answer.Button)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAnswer, err)
		}
	}
	if !quality.IsValid() {
		log.Warn("invalid review quality",
			slog.String("session_id", sessionID.String()),
			slog.Int("quality", int(quality)))
		return nil, ErrInvalidAnswer
	}

	now := s.timeFunc()

	// Advance the session first; this is pure and validates the transition
	// before any storage is touched.
	nextSess, err := sess.SubmitResponse(quality, now)
	if err != nil {
		if errors.Is(err, session.ErrSessionComplete) {
			return nil, ErrSessionComplete
		}
		return nil, ErrInvalidAnswer
	}

	var newState *domain.SchedulingState
	err = s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		stateStore := s.stateStore.WithTx(tx)

		state, err := stateStore.GetForUpdate(ctx, userID, card.CardID)
		if err != nil {
			if errors.Is(err, store.ErrSchedulingStateNotFound) {
				return ErrCardNotFound
			}
			return fmt.Errorf("failed to load scheduling state: %w", err)
		}

		newState, err = s.srsService.CalculateNextReview(state, quality, now)
		if err != nil {
			return fmt.Errorf("failed to calculate next review: %w", err)
		}

		if err := stateStore.Update(ctx, newState); err != nil {
			return fmt.Errorf("failed to update scheduling state: %w", err)
		}

		if nextSess.IsComplete() {
			stats := nextSess.Stats()
			summaryStore := s.summaryStore.WithTx(tx)
			if err := summaryStore.Complete(
				ctx, nextSess.ID, now, stats.CardsReviewed, stats.CorrectAnswers,
			); err != nil {
				return fmt.Errorf("failed to finalize session summary: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrCardNotFound) {
			return nil, ErrCardNotFound
		}
		log.Error("failed to process answer",
			slog.String("error", err.Error()),
			slog.String("session_id", sessionID.String()),
			slog.String("card_id", card.CardID.String()))
		return nil, newServiceError("submit_answer", "failed to process answer", err)
	}

	s.sessions.Put(nextSess)

	if nextSess.IsComplete() {
		log.Info("study session completed",
			slog.String("user_id", userID.String()),
			slog.String("session_id", nextSess.ID.String()),
			slog.Int("cards_reviewed", nextSess.CurrentIndex),
			slog.Int("correct", nextSess.CorrectAnswers))
	}

	return &SubmitResult{Session: nextSess, State: newState}, nil
}

// SkipCard implements ReviewService.SkipCard. A skipped card is graded as a
// lapse so it comes back quickly.
func (s *reviewServiceImpl) SkipCard(
	ctx context.Context,
	userID, sessionID uuid.UUID,
) (*SubmitResult, error) {
	return s.SubmitAnswer(ctx, userID, sessionID, ReviewAnswer{
		Quality: domain.QualityIncorrectRecalled,
	})
}

// RecentSessions implements ReviewService.RecentSessions.
func (s *reviewServiceImpl) RecentSessions(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]domain.StudySession, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	sessions, err := s.summaryStore.ListRecent(ctx, userID, limit)
	if err != nil {
		log.Error("failed to list recent sessions",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, newServiceError("recent_sessions", "failed to list recent sessions", err)
	}

	return sessions, nil
}

// PostponeCard implements ReviewService.PostponeCard.
func (s *reviewServiceImpl) PostponeCard(
	ctx context.Context,
	userID, cardID uuid.UUID,
	days int,
) (*domain.SchedulingState, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	now := s.timeFunc()

	var newState *domain.SchedulingState
	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		stateStore := s.stateStore.WithTx(tx)

		state, err := stateStore.GetForUpdate(ctx, userID, cardID)
		if err != nil {
			if errors.Is(err, store.ErrSchedulingStateNotFound) {
				return ErrCardNotFound
			}
			return fmt.Errorf("failed to load scheduling state: %w", err)
		}

		newState, err = s.srsService.PostponeReview(state, days, now)
		if err != nil {
			return err
		}

		if err := stateStore.Update(ctx, newState); err != nil {
			return fmt.Errorf("failed to update scheduling state: %w", err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrCardNotFound) || errors.Is(err, srs.ErrInvalidDays) {
			return nil, err
		}
		log.Error("failed to postpone card",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("card_id", cardID.String()))
		return nil, newServiceError("postpone_card", "failed to postpone card", err)
	}

	log.Debug("card postponed",
		slog.String("user_id", userID.String()),
		slog.String("card_id", cardID.String()),
		slog.Int("days", days))
	return newState, nil
}
