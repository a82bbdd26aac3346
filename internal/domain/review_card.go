package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReviewCard is the read-only projection handed to the review flow: a card's
// display fields joined with the scheduling fields needed to order and score
// it. The authoritative mutable state remains the SchedulingState row, which
// is updated independently by the SM-2 engine.
type ReviewCard struct {
	CardID       uuid.UUID    `json:"card_id"`
	Word         string       `json:"word"`
	PartOfSpeech string       `json:"part_of_speech,omitempty"`
	Phonetic     string       `json:"phonetic,omitempty"`
	Context      string       `json:"context,omitempty"`
	Definitions  []Definition `json:"definitions"`

	EaseFactor   float64   `json:"ease_factor"`
	Interval     int       `json:"interval"`
	Repetitions  int       `json:"repetitions"`
	NextReviewAt time.Time `json:"next_review_at"`
}

// NewReviewCard builds the projection from a card and its scheduling state.
func NewReviewCard(card *Card, state *SchedulingState) ReviewCard {
	return ReviewCard{
		CardID:       card.ID,
		Word:         card.Word,
		PartOfSpeech: card.PartOfSpeech,
		Phonetic:     card.Phonetic,
		Context:      card.Context,
		Definitions:  card.Definitions,
		EaseFactor:   state.EaseFactor,
		Interval:     state.Interval,
		Repetitions:  state.Repetitions,
		NextReviewAt: state.NextReviewAt,
	}
}
