package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// StudySession validation errors
var (
	ErrSessionIDEmpty     = errors.New("study session ID cannot be empty")
	ErrSessionUserIDEmpty = errors.New("study session user ID cannot be empty")
)

// StudySession is the persisted summary of one study sitting. The live
// session state machine is ephemeral (see the session package); only this
// summary row survives it: when it started, when it finished, and how the
// user did.
type StudySession struct {
	ID           uuid.UUID  `json:"id"`
	UserID       uuid.UUID  `json:"user_id"`
	CollectionID *uuid.UUID `json:"collection_id,omitempty"`

	StartedAt     time.Time  `json:"started_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	CardsReviewed int        `json:"cards_reviewed"`
	CardsCorrect  int        `json:"cards_correct"`
}

// Validate checks if the StudySession has valid data.
func (s *StudySession) Validate() error {
	if s.ID == uuid.Nil {
		return ErrSessionIDEmpty
	}

	if s.UserID == uuid.Nil {
		return ErrSessionUserIDEmpty
	}

	return nil
}
