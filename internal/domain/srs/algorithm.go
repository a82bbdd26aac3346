package srs

import (
	"math"
	"time"

	"github.com/BoneTheDeveloper/learning-newword-project/internal/domain"
)

// calculateNewEaseFactor applies the SM-2 ease-factor update:
//
//	EF' = EF + (0.1 - (5-q)*(0.08 + (5-q)*0.02))
//
// The adjustment is applied on every review, pass or fail, and the result
// is clamped to params.MinEaseFactor. There is no upper bound: a card
// answered perfectly forever keeps getting easier.
func calculateNewEaseFactor(
	currentEF float64,
	quality domain.ReviewQuality,
	params *Params,
) float64 {
	q := float64(quality)
	newEF := currentEF + (0.1 - (5-q)*(0.08+(5-q)*0.02))

	if newEF < params.MinEaseFactor {
		newEF = params.MinEaseFactor
	}

	return newEF
}

// calculateNewInterval determines the next interval in days given the
// repetition count after this review.
//
// Failures (quality < 3) always return params.FailureInterval regardless of
// prior progress. Successes walk the SM-2 ladder: first success 1 day,
// second 6 days, and from the third onward round(interval * easeFactor).
//
// The ease factor used here is the one the card entered the review with,
// not the freshly adjusted one. The growth step sees the pre-update value;
// the new ease factor only affects the following review.
func calculateNewInterval(
	currentInterval int,
	repetitions int,
	easeFactor float64,
	quality domain.ReviewQuality,
	params *Params,
) int {
	if !quality.IsCorrect() {
		return params.FailureInterval
	}

	switch repetitions {
	case 1:
		return params.FirstInterval
	case 2:
		return params.SecondInterval
	default:
		return int(math.Round(float64(currentInterval) * easeFactor))
	}
}

// calculateNextState computes the full scheduling transition for one review.
// It never mutates the input; callers persist the returned copy. Same inputs
// always produce the same outputs, so a caller-level retry is safe.
func calculateNextState(
	state *domain.SchedulingState,
	quality domain.ReviewQuality,
	now time.Time,
	params *Params,
) *domain.SchedulingState {
	newState := &domain.SchedulingState{
		UserID:           state.UserID,
		CardID:           state.CardID,
		EaseFactor:       state.EaseFactor,
		Interval:         state.Interval,
		Repetitions:      state.Repetitions,
		LastReviewAt:     state.LastReviewAt,
		NextReviewAt:     state.NextReviewAt,
		TotalReviews:     state.TotalReviews,
		CorrectReviews:   state.CorrectReviews,
		IncorrectReviews: state.IncorrectReviews,
		CreatedAt:        state.CreatedAt,
		UpdatedAt:        state.UpdatedAt,
	}

	if quality.IsCorrect() {
		newState.Repetitions = state.Repetitions + 1
		newState.CorrectReviews++
	} else {
		// Any failure resets the streak and schedules a next-day retry.
		newState.Repetitions = 0
		newState.IncorrectReviews++
	}

	newState.Interval = calculateNewInterval(
		state.Interval,
		newState.Repetitions,
		state.EaseFactor,
		quality,
		params,
	)

	newState.EaseFactor = calculateNewEaseFactor(state.EaseFactor, quality, params)

	newState.TotalReviews++
	newState.LastReviewAt = now
	newState.NextReviewAt = now.AddDate(0, 0, newState.Interval)
	newState.UpdatedAt = now

	return newState
}

// IsDue reports whether the card is due for review at the given time.
// A card is due the moment now reaches NextReviewAt, inclusive.
func IsDue(state *domain.SchedulingState, now time.Time) bool {
	return !now.Before(state.NextReviewAt)
}

// DaysUntilDue returns the number of whole days until the card comes due,
// rounding partial days up and flooring at 0 for cards already due.
func DaysUntilDue(state *domain.SchedulingState, now time.Time) int {
	remaining := state.NextReviewAt.Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int(math.Ceil(remaining.Hours() / 24))
}
