package srs

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/BoneTheDeveloper/learning-newword-project/internal/domain"
)

// Common errors
var (
	ErrNilState       = errors.New("scheduling state cannot be nil")
	ErrInvalidQuality = errors.New("review quality must be between 0 and 5")
	ErrInvalidDays    = errors.New("postpone days must be at least 1")
)

// Service defines the interface for SM-2 scheduling operations.
// All methods are pure: they return new state and never touch storage,
// so invoking them concurrently across cards or users is safe.
type Service interface {
	// CalculateNextReview computes the updated scheduling state for a
	// review with the given quality rating. The caller persists the result.
	CalculateNextReview(
		state *domain.SchedulingState,
		quality domain.ReviewQuality,
		now time.Time,
	) (*domain.SchedulingState, error)

	// InitializeState creates the schedule for a card entering the system:
	// default ease factor, zero interval, due immediately.
	InitializeState(
		userID, cardID uuid.UUID,
		now time.Time,
	) (*domain.SchedulingState, error)

	// PostponeReview pushes the next review time forward by a number of days
	// without altering the ease factor or repetition streak.
	PostponeReview(
		state *domain.SchedulingState,
		days int,
		now time.Time,
	) (*domain.SchedulingState, error)
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new SRS service with the classic SM-2 parameters.
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new SRS service with custom parameters
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

// CalculateNextReview implements the Service interface for calculating updated state.
func (s *defaultService) CalculateNextReview(
	state *domain.SchedulingState,
	quality domain.ReviewQuality,
	now time.Time,
) (*domain.SchedulingState, error) {
	if state == nil {
		return nil, ErrNilState
	}

	if !quality.IsValid() {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidQuality, quality)
	}

	return calculateNextState(state, quality, now, s.params), nil
}

// InitializeState implements the Service interface for new cards.
func (s *defaultService) InitializeState(
	userID, cardID uuid.UUID,
	now time.Time,
) (*domain.SchedulingState, error) {
	state, err := domain.NewSchedulingState(userID, cardID, now)
	if err != nil {
		return nil, err
	}
	state.EaseFactor = s.params.InitialEaseFactor
	return state, nil
}

// PostponeReview implements the Service interface for postponing reviews.
func (s *defaultService) PostponeReview(
	state *domain.SchedulingState,
	days int,
	now time.Time,
) (*domain.SchedulingState, error) {
	if state == nil {
		return nil, ErrNilState
	}

	if days < 1 {
		return nil, ErrInvalidDays
	}

	newState := *state
	newState.NextReviewAt = state.NextReviewAt.AddDate(0, 0, days)
	newState.UpdatedAt = now

	return &newState, nil
}
