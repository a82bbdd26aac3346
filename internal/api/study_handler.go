package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/BoneTheDeveloper/learning-newword-project/internal/api/shared"
	"github.com/BoneTheDeveloper/learning-newword-project/internal/domain"
	"github.com/BoneTheDeveloper/learning-newword-project/internal/platform/logger"
	"github.com/BoneTheDeveloper/learning-newword-project/internal/service/review"
)

// StudyHandler handles the study workflow endpoints: the due queue, the
// upcoming forecast, and interactive study sessions.
type StudyHandler struct {
	reviewService review.ReviewService
	logger        *slog.Logger
}

// NewStudyHandler creates a new StudyHandler.
func NewStudyHandler(reviewService review.ReviewService, log *slog.Logger) *StudyHandler {
	if reviewService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("reviewService cannot be nil for StudyHandler")
	}
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for StudyHandler")
	}

	return &StudyHandler{
		reviewService: reviewService,
		logger:        log.With(slog.String("component", "study_handler")),
	}
}

// GetDueCards handles GET /study/due requests.
// An empty due queue is a normal 200 with an empty list, not an error.
func (h *StudyHandler) GetDueCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	collectionID, err := getCollectionIDQuery(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	cards, err := h.reviewService.GetDueCards(r.Context(), userID, collectionID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), "Failed to get due cards", err)
		return
	}

	if cards == nil {
		cards = []domain.ReviewCard{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DueCardsResponse{
		Cards: cards,
		Count: len(cards),
	})
}

// GetUpcoming handles GET /study/upcoming requests.
func (h *StudyHandler) GetUpcoming(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	collectionID, err := getCollectionIDQuery(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	counts, err := h.reviewService.UpcomingCounts(r.Context(), userID, collectionID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), "Failed to get upcoming reviews", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, counts)
}

// StartSession handles POST /study/sessions requests.
// Responds 204 when the user has nothing due.
func (h *StudyHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	var req StartSessionRequest
	if r.ContentLength > 0 {
		if err := shared.DecodeJSON(r, &req); err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	sess, err := h.reviewService.StartSession(r.Context(), userID, req.CollectionID)
	if err != nil {
		if errors.Is(err, review.ErrNoCardsDue) {
			log.Debug("no cards due for session", slog.String("user_id", userID.String()))
			w.WriteHeader(http.StatusNoContent)
			return
		}
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), "Failed to start session", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, sessionToResponse(sess))
}

// GetCurrentCard handles GET /study/sessions/{id}/card requests.
// Responds 204 once the session is complete.
func (h *StudyHandler) GetCurrentCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, sessionID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	sess, err := h.reviewService.GetSession(r.Context(), userID, sessionID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	card := sess.CurrentCard()
	if card == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, card)
}

// SubmitAnswer handles POST /study/sessions/{id}/answer requests.
func (h *StudyHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, sessionID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req SubmitAnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid answer")
		return
	}
	if req.Quality == nil && req.Button == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Either quality or button is required")
		return
	}

	answer := review.ReviewAnswer{Button: req.Button}
	if req.Quality != nil {
		answer.Quality = domain.ReviewQuality(*req.Quality)
	}

	result, err := h.reviewService.SubmitAnswer(r.Context(), userID, sessionID, answer)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, submitResultToResponse(result))
}

// SkipCard handles POST /study/sessions/{id}/skip requests.
func (h *StudyHandler) SkipCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, sessionID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	result, err := h.reviewService.SkipCard(r.Context(), userID, sessionID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, submitResultToResponse(result))
}

// GetSessionStats handles GET /study/sessions/{id}/stats requests.
func (h *StudyHandler) GetSessionStats(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, sessionID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	sess, err := h.reviewService.GetSession(r.Context(), userID, sessionID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, sess.Stats())
}

// GetRecentSessions handles GET /study/sessions/recent requests.
func (h *StudyHandler) GetRecentSessions(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	sessions, err := h.reviewService.RecentSessions(r.Context(), userID, limit)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), "Failed to get recent sessions", err)
		return
	}

	if sessions == nil {
		sessions = []domain.StudySession{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, RecentSessionsResponse{
		Sessions: sessions,
		Count:    len(sessions),
	})
}
