package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/vytor/cerebro/internal/errors"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(loggingMiddleware)
	r.Use(recoveryMiddleware)
	r.Use(corsMiddleware(s.AllowedOrigin))
	if s.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(s.RequestTimeout))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, errors.NewNotFoundError("route", r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, &errors.AppError{
			Code:    errors.ErrCodeBadRequest,
			Message: "method not allowed",
			Status:  http.StatusMethodNotAllowed,
		})
	})

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.userMiddleware)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", s.handleCreateSession)
			r.Get("/", s.handleListSessions)
			r.Get("/daily-summary", s.handleDailySummary)
			r.Get("/weekly-summary", s.handleWeeklySummary)
			r.Get("/streak", s.handleStreak)
			r.Get("/course/{id}", s.handleSessionsByCourse)
			r.Get("/course/{id}/total", s.handleTotalByCourse)
			r.Get("/topic/{id}", s.handleSessionsByTopic)
			r.Get("/topic/{id}/total", s.handleTotalByTopic)
			r.Get("/insights/completion", s.handleCompletionPercentages)
			r.Get("/insights/completion/{courseId}", s.handleCourseCompletion)
			r.Get("/{id}", s.handleGetSession)
			r.Delete("/{id}", s.handleDeleteSession)
		})

		r.Route("/challenges", func(r chi.Router) {
			r.Get("/", s.handleListChallenges)
			r.Post("/", s.handleCreateChallenge)
			r.Get("/progress/{userId}", s.handleProgressForUser)
			r.Get("/{id}", s.handleGetChallenge)
			r.Put("/{id}", s.handleUpdateChallenge)
			r.Delete("/{id}", s.handleDeleteChallenge)
		})

		r.Route("/courses", func(r chi.Router) {
			r.Post("/", s.handleCreateCourse)
			r.Get("/", s.handleListCourses)
			r.Get("/{id}", s.handleGetCourse)
			r.Delete("/{id}", s.handleDeleteCourse)
			r.Get("/{id}/topics", s.handleTopicsByCourse)
		})

		r.Route("/topics", func(r chi.Router) {
			r.Post("/", s.handleCreateTopic)
			r.Get("/by-course/{courseId}", s.handleTopicsByCourseParam)
			r.Patch("/{id}/toggle-complete", s.handleToggleTopic)
		})
	})

	return r
}
