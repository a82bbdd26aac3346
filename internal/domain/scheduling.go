package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for SchedulingState
var (
	ErrEmptyStateUserID  = errors.New("scheduling state user ID cannot be empty")
	ErrEmptyStateCardID  = errors.New("scheduling state card ID cannot be empty")
	ErrInvalidInterval   = errors.New("interval must be greater than or equal to 0")
	ErrInvalidEaseFactor = errors.New("ease factor must be at least 1.3")
	ErrInvalidRepetition = errors.New("repetitions must be greater than or equal to 0")
)

// SchedulingState tracks a user's spaced-repetition progress for a single
// card. There is exactly one state per user/card pairing; it is created when
// the card first enters the schedule and mutated only by the SM-2 engine
// after each review. The state is owned by the card and deleted with it.
type SchedulingState struct {
	UserID           uuid.UUID `json:"user_id"`
	CardID           uuid.UUID `json:"card_id"`
	EaseFactor       float64   `json:"ease_factor"`       // Interval growth multiplier, never below 1.3
	Interval         int       `json:"interval"`          // Days until the next review; 0 means never reviewed
	Repetitions      int       `json:"repetitions"`       // Consecutive successful reviews
	LastReviewAt     time.Time `json:"last_review_at"`    // Zero time before the first review
	NextReviewAt     time.Time `json:"next_review_at"`    // Card is due when now >= this
	TotalReviews     int       `json:"total_reviews"`     // Lifetime review count
	CorrectReviews   int       `json:"correct_reviews"`   // Lifetime reviews with quality >= 3
	IncorrectReviews int       `json:"incorrect_reviews"` // Lifetime reviews with quality < 3
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewSchedulingState creates the initial schedule for a card: default ease
// factor, zero interval, due immediately. The caller supplies now so the
// result is deterministic under test.
func NewSchedulingState(userID, cardID uuid.UUID, now time.Time) (*SchedulingState, error) {
	state := &SchedulingState{
		UserID:       userID,
		CardID:       cardID,
		EaseFactor:   2.5,
		Interval:     0,
		Repetitions:  0,
		LastReviewAt: time.Time{},
		NextReviewAt: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := state.Validate(); err != nil {
		return nil, err
	}

	return state, nil
}

// Validate checks the SchedulingState invariants.
// Returns an error if any field fails validation.
func (s *SchedulingState) Validate() error {
	if s.UserID == uuid.Nil {
		return ErrEmptyStateUserID
	}

	if s.CardID == uuid.Nil {
		return ErrEmptyStateCardID
	}

	if s.Interval < 0 {
		return ErrInvalidInterval
	}

	if s.Repetitions < 0 {
		return ErrInvalidRepetition
	}

	if s.EaseFactor < 1.3 {
		return ErrInvalidEaseFactor
	}

	return nil
}
