package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/BoneTheDeveloper/learning-newword-project/internal/api"
	apimiddleware "github.com/BoneTheDeveloper/learning-newword-project/internal/api/middleware"
	"github.com/BoneTheDeveloper/learning-newword-project/internal/service/auth"
	"github.com/BoneTheDeveloper/learning-newword-project/internal/service/review"
)

// setupRouter configures all routes and middleware for the HTTP API.
func (app *application) setupRouter(
	jwtService auth.JWTService,
	reviewService review.ReviewService,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)

	studyHandler := api.NewStudyHandler(reviewService, app.logger)
	cardHandler := api.NewCardHandler(reviewService, app.logger)
	authMiddleware := apimiddleware.NewAuthMiddleware(jwtService)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Study queue and forecast
			r.Get("/study/due", studyHandler.GetDueCards)
			r.Get("/study/upcoming", studyHandler.GetUpcoming)

			// Review sessions
			r.Post("/study/sessions", studyHandler.StartSession)
			r.Get("/study/sessions/recent", studyHandler.GetRecentSessions)
			r.Get("/study/sessions/{id}/card", studyHandler.GetCurrentCard)
			r.Post("/study/sessions/{id}/answer", studyHandler.SubmitAnswer)
			r.Post("/study/sessions/{id}/skip", studyHandler.SkipCard)
			r.Get("/study/sessions/{id}/stats", studyHandler.GetSessionStats)

			// Card scheduling
			r.Post("/cards/{id}/postpone", cardHandler.PostponeCard)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
