package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Card-specific validation errors
var (
	// ErrCardIDEmpty is returned when a card ID is empty or nil.
	ErrCardIDEmpty = errors.New("card ID cannot be empty")

	// ErrCardUserIDEmpty is returned when a card's user ID is empty or nil.
	ErrCardUserIDEmpty = errors.New("card user ID cannot be empty")

	// ErrCardWordEmpty is returned when a card has no word.
	ErrCardWordEmpty = errors.New("card word cannot be empty")

	// ErrCardNoDefinitions is returned when a card has no definitions.
	ErrCardNoDefinitions = errors.New("card must have at least one definition")
)

// Definition is a single sense of a vocabulary word together with
// example sentences showing it in use.
type Definition struct {
	Text     string   `json:"text"`
	Examples []string `json:"examples,omitempty"`
}

// Card represents a vocabulary flashcard. Definitions are stored as a
// JSONB structure, allowing flexible sense lists without schema churn.
type Card struct {
	ID           uuid.UUID    `json:"id"`
	UserID       uuid.UUID    `json:"user_id"`
	CollectionID *uuid.UUID   `json:"collection_id,omitempty"`
	Word         string       `json:"word"`
	PartOfSpeech string       `json:"part_of_speech,omitempty"`
	Phonetic     string       `json:"phonetic,omitempty"`
	Context      string       `json:"context,omitempty"`
	Definitions  []Definition `json:"definitions"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// NewCard creates a new Card owned by the given user.
// It generates a new UUID for the card ID and sets the creation/update timestamps.
// Returns an error if validation fails.
func NewCard(userID uuid.UUID, word string, definitions []Definition) (*Card, error) {
	now := time.Now().UTC()
	card := &Card{
		ID:          uuid.New(),
		UserID:      userID,
		Word:        word,
		Definitions: definitions,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
// Returns an error if any field fails validation.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}

	if c.UserID == uuid.Nil {
		return ErrCardUserIDEmpty
	}

	if strings.TrimSpace(c.Word) == "" {
		return ErrCardWordEmpty
	}

	if len(c.Definitions) == 0 {
		return ErrCardNoDefinitions
	}

	return nil
}
