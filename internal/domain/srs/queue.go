package srs

import (
	"sort"
	"time"

	"github.com/BoneTheDeveloper/learning-newword-project/internal/domain"
)

// DefaultDueLimit caps how many cards a single due query hands to the UI.
const DefaultDueLimit = 50

// SelectDue filters the snapshot to cards due at now, ordered most-overdue
// first so cards that have waited longest are never starved, and truncated
// to limit. A limit <= 0 falls back to DefaultDueLimit. Pure: the input
// slice is not modified.
func SelectDue(cards []domain.ReviewCard, now time.Time, limit int) []domain.ReviewCard {
	if limit <= 0 {
		limit = DefaultDueLimit
	}

	due := make([]domain.ReviewCard, 0, len(cards))
	for _, card := range cards {
		if !now.Before(card.NextReviewAt) {
			due = append(due, card)
		}
	}

	sort.SliceStable(due, func(i, j int) bool {
		return due[i].NextReviewAt.Before(due[j].NextReviewAt)
	})

	if len(due) > limit {
		due = due[:limit]
	}

	return due
}

// Upcoming groups scheduling states by review horizon for dashboard display.
//
// The buckets overlap on purpose: Week is a superset that also contains
// everything in Today and Tomorrow. This mirrors how the dashboard presents
// the numbers ("due today" vs "due this week") and is NOT a disjoint
// partition - summing the bucket sizes double-counts.
type Upcoming struct {
	Today    []domain.SchedulingState
	Tomorrow []domain.SchedulingState
	Week     []domain.SchedulingState
}

// PartitionUpcoming buckets states by when they come due relative to now:
// Today within the remainder of the current calendar day, Tomorrow within
// the next calendar day (excluding Today), and Week within horizonDays
// (including both of the other buckets, see Upcoming).
func PartitionUpcoming(states []domain.SchedulingState, now time.Time, horizonDays int) Upcoming {
	endOfToday := endOfDay(now)
	endOfTomorrow := endOfDay(now.AddDate(0, 0, 1))
	endOfHorizon := endOfDay(now.AddDate(0, 0, horizonDays))

	var upcoming Upcoming
	for _, state := range states {
		switch {
		case !state.NextReviewAt.After(endOfToday):
			upcoming.Today = append(upcoming.Today, state)
		case !state.NextReviewAt.After(endOfTomorrow):
			upcoming.Tomorrow = append(upcoming.Tomorrow, state)
		}

		if !state.NextReviewAt.After(endOfHorizon) {
			upcoming.Week = append(upcoming.Week, state)
		}
	}

	return upcoming
}

// endOfDay returns the last instant of t's calendar day in t's location.
func endOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
