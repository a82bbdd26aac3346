// Package session drives a single study sitting: an ordered snapshot of due
// cards, a cursor, and a completion summary. A Session is a plain value
// updated by replacement - every transition returns a new Session rather
// than mutating the receiver, so stale references held across callbacks can
// never observe a half-applied update.
package session

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/BoneTheDeveloper/learning-newword-project/internal/domain"
)

// Session errors
var (
	// ErrNoCards is returned when starting a session with no due cards.
	// An empty due set is the normal "all caught up" state, not a session.
	ErrNoCards = errors.New("cannot start a review session with no cards")

	// ErrSessionComplete is returned when submitting to a finished session.
	ErrSessionComplete = errors.New("review session is already complete")
)

// Status is the lifecycle position of a session.
type Status string

// Session lifecycle. Transitions only move forward; a "restart" is a brand
// new session, never a reset of an old one.
const (
	StatusActive   Status = "active"
	StatusComplete Status = "complete"
)

// Session is one bounded sitting of sequential card reviews. The card list
// is snapshotted at session start and never changes afterwards; only the
// cursor and counters advance.
type Session struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	CollectionID *uuid.UUID

	Cards          []domain.ReviewCard
	CurrentIndex   int
	CorrectAnswers int

	StartedAt   time.Time
	CompletedAt time.Time // zero until the cursor reaches the end
}

// Stats summarizes a session. Mid-session it reflects progress as of the
// cards processed so far; at completion it is the final summary.
type Stats struct {
	TotalCards     int     `json:"total_cards"`
	CardsReviewed  int     `json:"cards_reviewed"`
	CorrectAnswers int     `json:"correct_answers"`
	Accuracy       float64 `json:"accuracy"`
	AvgEaseFactor  float64 `json:"avg_ease_factor"`
}

// New builds an active session over a snapshot of the given due cards.
// Returns ErrNoCards for an empty list: callers are expected to check for
// the all-caught-up state before starting a session.
func New(
	userID uuid.UUID,
	collectionID *uuid.UUID,
	cards []domain.ReviewCard,
	now time.Time,
) (Session, error) {
	if len(cards) == 0 {
		return Session{}, ErrNoCards
	}

	snapshot := make([]domain.ReviewCard, len(cards))
	copy(snapshot, cards)

	return Session{
		ID:           uuid.New(),
		UserID:       userID,
		CollectionID: collectionID,
		Cards:        snapshot,
		CurrentIndex: 0,
		StartedAt:    now,
	}, nil
}

// Status returns the session's lifecycle position.
func (s Session) Status() Status {
	if s.IsComplete() {
		return StatusComplete
	}
	return StatusActive
}

// IsComplete reports whether the cursor has consumed every card.
func (s Session) IsComplete() bool {
	return s.CurrentIndex >= len(s.Cards)
}

// CurrentCard returns the card under the cursor, or nil once the session
// is complete.
func (s Session) CurrentCard() *domain.ReviewCard {
	if s.IsComplete() {
		return nil
	}
	card := s.Cards[s.CurrentIndex]
	return &card
}

// SubmitResponse records a quality rating for the current card and advances
// the cursor. Quality >= 3 counts as a correct answer. When the cursor
// reaches the end the session transitions to complete and CompletedAt is
// set, exactly once.
//
// The scheduling update for the card itself is the caller's job: invoke the
// SM-2 engine and persist the new SchedulingState before or alongside this
// call. The session tracks progression only.
func (s Session) SubmitResponse(quality domain.ReviewQuality, now time.Time) (Session, error) {
	if s.IsComplete() {
		return s, ErrSessionComplete
	}

	if !quality.IsValid() {
		return s, domain.ErrInvalidQuality
	}

	next := s
	next.CurrentIndex++
	if quality.IsCorrect() {
		next.CorrectAnswers++
	}

	if next.IsComplete() {
		next.CompletedAt = now
	}

	return next, nil
}

// Skip advances past the current card, scoring it as the lowest non-zero
// failing quality - a skipped card is rescheduled like a lapse.
func (s Session) Skip(now time.Time) (Session, error) {
	return s.SubmitResponse(domain.QualityIncorrectRecalled, now)
}

// Stats computes the session summary. Accuracy is 0 for an empty card list
// rather than NaN. AvgEaseFactor averages the ease factors the cards
// entered the session with - the snapshot taken at session start - not
// their post-review values.
func (s Session) Stats() Stats {
	totalCards := len(s.Cards)

	stats := Stats{
		TotalCards:     totalCards,
		CardsReviewed:  s.CurrentIndex,
		CorrectAnswers: s.CorrectAnswers,
		AvgEaseFactor:  2.5,
	}

	if totalCards == 0 {
		return stats
	}

	stats.Accuracy = float64(s.CorrectAnswers) / float64(totalCards) * 100

	var sum float64
	for _, card := range s.Cards {
		sum += card.EaseFactor
	}
	stats.AvgEaseFactor = sum / float64(totalCards)

	return stats
}
