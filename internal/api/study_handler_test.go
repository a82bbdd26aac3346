package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BoneTheDeveloper/learning-newword-project/internal/api/shared"
	"github.com/BoneTheDeveloper/learning-newword-project/internal/domain"
	"github.com/BoneTheDeveloper/learning-newword-project/internal/domain/session"
	"github.com/BoneTheDeveloper/learning-newword-project/internal/service/review"
)

// mockReviewService is a configurable stand-in for the review service.
type mockReviewService struct {
	dueCards []domain.ReviewCard
	dueErr   error

	counts    review.UpcomingCounts
	countsErr error

	session  session.Session
	startErr error
	getErr   error

	submitResult *review.SubmitResult
	submitErr    error

	recent    []domain.StudySession
	recentErr error

	postponeState *domain.SchedulingState
	postponeErr   error
	postponeDays  int
}

var _ review.ReviewService = (*mockReviewService)(nil)

func (m *mockReviewService) GetDueCards(
	ctx context.Context, userID uuid.UUID, collectionID *uuid.UUID,
) ([]domain.ReviewCard, error) {
	return m.dueCards, m.dueErr
}

func (m *mockReviewService) UpcomingCounts(
	ctx context.Context, userID uuid.UUID, collectionID *uuid.UUID,
) (review.UpcomingCounts, error) {
	return m.counts, m.countsErr
}

func (m *mockReviewService) StartSession(
	ctx context.Context, userID uuid.UUID, collectionID *uuid.UUID,
) (session.Session, error) {
	return m.session, m.startErr
}

func (m *mockReviewService) GetSession(
	ctx context.Context, userID, sessionID uuid.UUID,
) (session.Session, error) {
	return m.session, m.getErr
}

func (m *mockReviewService) SubmitAnswer(
	ctx context.Context, userID, sessionID uuid.UUID, answer review.ReviewAnswer,
) (*review.SubmitResult, error) {
	return m.submitResult, m.submitErr
}

func (m *mockReviewService) SkipCard(
	ctx context.Context, userID, sessionID uuid.UUID,
) (*review.SubmitResult, error) {
	return m.submitResult, m.submitErr
}

func (m *mockReviewService) RecentSessions(
	ctx context.Context, userID uuid.UUID, limit int,
) ([]domain.StudySession, error) {
	return m.recent, m.recentErr
}

func (m *mockReviewService) PostponeCard(
	ctx context.Context, userID, cardID uuid.UUID, days int,
) (*domain.SchedulingState, error) {
	m.postponeDays = days
	return m.postponeState, m.postponeErr
}

// newTestRouter mounts the study and card handlers behind a middleware that
// injects the given user ID, mirroring what the auth middleware does.
func newTestRouter(svc review.ReviewService, userID uuid.UUID) http.Handler {
	studyHandler := NewStudyHandler(svc, slog.Default())
	cardHandler := NewCardHandler(svc, slog.Default())

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if userID != uuid.Nil {
				ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
				req = req.WithContext(ctx)
			}
			next.ServeHTTP(w, req)
		})
	})

	r.Get("/study/due", studyHandler.GetDueCards)
	r.Get("/study/upcoming", studyHandler.GetUpcoming)
	r.Post("/study/sessions", studyHandler.StartSession)
	r.Get("/study/sessions/recent", studyHandler.GetRecentSessions)
	r.Get("/study/sessions/{id}/card", studyHandler.GetCurrentCard)
	r.Post("/study/sessions/{id}/answer", studyHandler.SubmitAnswer)
	r.Post("/study/sessions/{id}/skip", studyHandler.SkipCard)
	r.Get("/study/sessions/{id}/stats", studyHandler.GetSessionStats)
	r.Post("/cards/{id}/postpone", cardHandler.PostponeCard)

	return r
}

func testSession(t *testing.T, userID uuid.UUID, cards int) session.Session {
	t.Helper()

	reviewCards := make([]domain.ReviewCard, cards)
	for i := range reviewCards {
		reviewCards[i] = domain.ReviewCard{
			CardID:      uuid.New(),
			Word:        "word",
			Definitions: []domain.Definition{{Text: "meaning"}},
			EaseFactor:  2.5,
		}
	}

	sess, err := session.New(userID, nil, reviewCards, time.Now())
	require.NoError(t, err)
	return sess
}

func TestGetDueCards(t *testing.T) {
	userID := uuid.New()
	svc := &mockReviewService{
		dueCards: []domain.ReviewCard{{CardID: uuid.New(), Word: "ephemeral"}},
	}
	router := newTestRouter(svc, userID)

	req := httptest.NewRequest(http.MethodGet, "/study/due", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp DueCardsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "ephemeral", resp.Cards[0].Word)
}

func TestGetDueCardsEmpty(t *testing.T) {
	router := newTestRouter(&mockReviewService{}, uuid.New())

	req := httptest.NewRequest(http.MethodGet, "/study/due", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp DueCardsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 0, resp.Count)
	assert.NotNil(t, resp.Cards)
}

func TestGetDueCardsUnauthenticated(t *testing.T) {
	router := newTestRouter(&mockReviewService{}, uuid.Nil)

	req := httptest.NewRequest(http.MethodGet, "/study/due", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetDueCardsInvalidCollectionID(t *testing.T) {
	router := newTestRouter(&mockReviewService{}, uuid.New())

	req := httptest.NewRequest(http.MethodGet, "/study/due?collection_id=not-a-uuid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetUpcoming(t *testing.T) {
	svc := &mockReviewService{
		counts: review.UpcomingCounts{Today: 3, Tomorrow: 1, Week: 7},
	}
	router := newTestRouter(svc, uuid.New())

	req := httptest.NewRequest(http.MethodGet, "/study/upcoming", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var counts review.UpcomingCounts
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&counts))
	assert.Equal(t, 3, counts.Today)
	assert.Equal(t, 7, counts.Week)
}

func TestStartSession(t *testing.T) {
	userID := uuid.New()
	svc := &mockReviewService{session: testSession(t, userID, 2)}
	router := newTestRouter(svc, userID)

	req := httptest.NewRequest(http.MethodPost, "/study/sessions", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp SessionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, session.StatusActive, resp.Status)
	assert.Equal(t, 2, resp.TotalCards)
	require.NotNil(t, resp.CurrentCard)
	assert.Equal(t, "word", resp.CurrentCard.Word)
}

func TestStartSessionNothingDue(t *testing.T) {
	svc := &mockReviewService{startErr: review.ErrNoCardsDue}
	router := newTestRouter(svc, uuid.New())

	req := httptest.NewRequest(http.MethodPost, "/study/sessions", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
}

func TestGetCurrentCard(t *testing.T) {
	userID := uuid.New()
	svc := &mockReviewService{session: testSession(t, userID, 1)}
	router := newTestRouter(svc, userID)

	req := httptest.NewRequest(http.MethodGet, "/study/sessions/"+uuid.NewString()+"/card", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var card domain.ReviewCard
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&card))
	assert.Equal(t, "word", card.Word)
}

func TestGetCurrentCardSessionComplete(t *testing.T) {
	userID := uuid.New()
	sess := testSession(t, userID, 1)
	sess, err := sess.SubmitResponse(domain.QualityPerfect, time.Now())
	require.NoError(t, err)

	svc := &mockReviewService{session: sess}
	router := newTestRouter(svc, userID)

	req := httptest.NewRequest(http.MethodGet, "/study/sessions/"+uuid.NewString()+"/card", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestGetCurrentCardSessionNotFound(t *testing.T) {
	svc := &mockReviewService{getErr: review.ErrSessionNotFound}
	router := newTestRouter(svc, uuid.New())

	req := httptest.NewRequest(http.MethodGet, "/study/sessions/"+uuid.NewString()+"/card", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetCurrentCardInvalidSessionID(t *testing.T) {
	router := newTestRouter(&mockReviewService{}, uuid.New())

	req := httptest.NewRequest(http.MethodGet, "/study/sessions/not-a-uuid/card", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func submitAnswerRequest(t *testing.T, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(
		http.MethodPost,
		"/study/sessions/"+uuid.NewString()+"/answer",
		bytes.NewBufferString(body),
	)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestSubmitAnswer(t *testing.T) {
	userID := uuid.New()
	sess := testSession(t, userID, 2)
	advanced, err := sess.SubmitResponse(domain.QualityPerfect, time.Now())
	require.NoError(t, err)

	state := &domain.SchedulingState{
		UserID:       userID,
		CardID:       sess.Cards[0].CardID,
		EaseFactor:   2.6,
		Interval:     1,
		Repetitions:  1,
		NextReviewAt: time.Now().AddDate(0, 0, 1),
	}

	svc := &mockReviewService{
		session:      sess,
		submitResult: &review.SubmitResult{Session: advanced, State: state},
	}
	router := newTestRouter(svc, userID)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, submitAnswerRequest(t, `{"quality": 5}`))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp SubmitAnswerResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 1, resp.Session.CurrentIndex)
	require.NotNil(t, resp.State)
	assert.Equal(t, 1, resp.State.Interval)
	assert.Nil(t, resp.Stats, "stats are only included once the session completes")
}

func TestSubmitAnswerByButton(t *testing.T) {
	userID := uuid.New()
	sess := testSession(t, userID, 1)
	advanced, err := sess.SubmitResponse(domain.QualityCorrectHesitation, time.Now())
	require.NoError(t, err)

	svc := &mockReviewService{
		session:      sess,
		submitResult: &review.SubmitResult{Session: advanced, State: &domain.SchedulingState{}},
	}
	router := newTestRouter(svc, userID)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, submitAnswerRequest(t, `{"button": "good"}`))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp SubmitAnswerResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotNil(t, resp.Stats, "final card answered, stats should be included")
	assert.Equal(t, 1, resp.Stats.CardsReviewed)
}

func TestSubmitAnswerValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed JSON", `{`},
		{"quality out of range", `{"quality": 9}`},
		{"unknown button", `{"button": "medium"}`},
		{"neither field", `{}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(&mockReviewService{}, uuid.New())
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, submitAnswerRequest(t, tc.body))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestSubmitAnswerSessionComplete(t *testing.T) {
	svc := &mockReviewService{submitErr: review.ErrSessionComplete}
	router := newTestRouter(svc, uuid.New())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, submitAnswerRequest(t, `{"quality": 5}`))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSkipCard(t *testing.T) {
	userID := uuid.New()
	sess := testSession(t, userID, 2)
	advanced, err := sess.Skip(time.Now())
	require.NoError(t, err)

	svc := &mockReviewService{
		session:      sess,
		submitResult: &review.SubmitResult{Session: advanced, State: &domain.SchedulingState{}},
	}
	router := newTestRouter(svc, userID)

	req := httptest.NewRequest(http.MethodPost, "/study/sessions/"+uuid.NewString()+"/skip", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp SubmitAnswerResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 0, resp.Session.CorrectAnswers)
}

func TestGetSessionStats(t *testing.T) {
	userID := uuid.New()
	svc := &mockReviewService{session: testSession(t, userID, 3)}
	router := newTestRouter(svc, userID)

	req := httptest.NewRequest(http.MethodGet, "/study/sessions/"+uuid.NewString()+"/stats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var stats session.Stats
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&stats))
	assert.Equal(t, 3, stats.TotalCards)
	assert.Equal(t, 0, stats.CardsReviewed)
}

func TestGetRecentSessions(t *testing.T) {
	now := time.Now()
	svc := &mockReviewService{
		recent: []domain.StudySession{
			{ID: uuid.New(), UserID: uuid.New(), StartedAt: now, CardsReviewed: 5, CardsCorrect: 4},
		},
	}
	router := newTestRouter(svc, uuid.New())

	req := httptest.NewRequest(http.MethodGet, "/study/sessions/recent?limit=10", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp RecentSessionsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, 5, resp.Sessions[0].CardsReviewed)
}

func TestGetRecentSessionsInvalidLimit(t *testing.T) {
	router := newTestRouter(&mockReviewService{}, uuid.New())

	req := httptest.NewRequest(http.MethodGet, "/study/sessions/recent?limit=banana", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostponeCard(t *testing.T) {
	userID := uuid.New()
	cardID := uuid.New()
	svc := &mockReviewService{
		postponeState: &domain.SchedulingState{
			UserID:       userID,
			CardID:       cardID,
			EaseFactor:   2.5,
			NextReviewAt: time.Now().AddDate(0, 0, 3),
		},
	}
	router := newTestRouter(svc, userID)

	req := httptest.NewRequest(
		http.MethodPost,
		"/cards/"+cardID.String()+"/postpone",
		bytes.NewBufferString(`{"days": 3}`),
	)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, svc.postponeDays)

	var state domain.SchedulingState
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&state))
	assert.Equal(t, cardID, state.CardID)
}

func TestPostponeCardInvalidDays(t *testing.T) {
	router := newTestRouter(&mockReviewService{}, uuid.New())

	req := httptest.NewRequest(
		http.MethodPost,
		"/cards/"+uuid.NewString()+"/postpone",
		bytes.NewBufferString(`{"days": 0}`),
	)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostponeCardNotFound(t *testing.T) {
	svc := &mockReviewService{postponeErr: review.ErrCardNotFound}
	router := newTestRouter(svc, uuid.New())

	req := httptest.NewRequest(
		http.MethodPost,
		"/cards/"+uuid.NewString()+"/postpone",
		bytes.NewBufferString(`{"days": 2}`),
	)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
