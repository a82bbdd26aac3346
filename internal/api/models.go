package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/BoneTheDeveloper/learning-newword-project/internal/domain"
	"github.com/BoneTheDeveloper/learning-newword-project/internal/domain/session"
	"github.com/BoneTheDeveloper/learning-newword-project/internal/service/review"
)

// StartSessionRequest defines the payload for starting a study session.
type StartSessionRequest struct {
	// CollectionID optionally scopes the session to one collection.
	CollectionID *uuid.UUID `json:"collection_id,omitempty"`
}

// SubmitAnswerRequest defines the payload for answering the current card.
// Clients send either a raw quality rating (0-5) or one of the review
// buttons; the button takes precedence when both are present.
type SubmitAnswerRequest struct {
	Quality *int   `json:"quality,omitempty" validate:"omitempty,gte=0,lte=5"`
	Button  string `json:"button,omitempty"  validate:"omitempty,oneof=again hard good easy"`
}

// PostponeRequest defines the payload for postponing a card's next review.
type PostponeRequest struct {
	Days int `json:"days" validate:"required,gt=0"`
}

// DueCardsResponse wraps the due queue with its size.
type DueCardsResponse struct {
	Cards []domain.ReviewCard `json:"cards"`
	Count int                 `json:"count"`
}

// SessionResponse represents a study session's live state.
type SessionResponse struct {
	ID             uuid.UUID          `json:"id"`
	Status         session.Status     `json:"status"`
	TotalCards     int                `json:"total_cards"`
	CurrentIndex   int                `json:"current_index"`
	CorrectAnswers int                `json:"correct_answers"`
	StartedAt      time.Time          `json:"started_at"`
	CompletedAt    *time.Time         `json:"completed_at,omitempty"`
	CurrentCard    *domain.ReviewCard `json:"current_card,omitempty"`
}

// sessionToResponse transforms a session into its API representation.
func sessionToResponse(sess session.Session) SessionResponse {
	resp := SessionResponse{
		ID:             sess.ID,
		Status:         sess.Status(),
		TotalCards:     len(sess.Cards),
		CurrentIndex:   sess.CurrentIndex,
		CorrectAnswers: sess.CorrectAnswers,
		StartedAt:      sess.StartedAt,
		CurrentCard:    sess.CurrentCard(),
	}

	if !sess.CompletedAt.IsZero() {
		completedAt := sess.CompletedAt
		resp.CompletedAt = &completedAt
	}

	return resp
}

// SubmitAnswerResponse bundles the advanced session with the answered card's
// new schedule.
type SubmitAnswerResponse struct {
	Session SessionResponse         `json:"session"`
	State   *domain.SchedulingState `json:"state"`
	Stats   *session.Stats          `json:"stats,omitempty"` // Final stats, present once complete
}

// submitResultToResponse transforms a service submit result.
func submitResultToResponse(result *review.SubmitResult) SubmitAnswerResponse {
	resp := SubmitAnswerResponse{
		Session: sessionToResponse(result.Session),
		State:   result.State,
	}

	if result.Session.IsComplete() {
		stats := result.Session.Stats()
		resp.Stats = &stats
	}

	return resp
}

// RecentSessionsResponse wraps the user's latest session summaries.
type RecentSessionsResponse struct {
	Sessions []domain.StudySession `json:"sessions"`
	Count    int                   `json:"count"`
}
