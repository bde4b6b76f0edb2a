package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/logout", s.handleLogout)

		// Everything below requires a signed-in user.
		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			r.Get("/auth/me", s.handleMe)
			r.Post("/auth/character", s.handleChooseCharacter)

			r.Get("/subjects", s.handleListSubjects)
			r.Get("/subjects/{subjectID}/quizzes", s.handleListQuizzes)
			r.Get("/quizzes/{quizID}/questions", s.handleListQuestions)

			r.Post("/questions/answer", s.handleSubmitAnswer)
			r.Get("/mistakes", s.handleListMistakes)
			r.Get("/leaderboard", s.handleLeaderboard)

			// Content management is admin-only.
			r.Group(func(r chi.Router) {
				r.Use(adminMiddleware)

				r.Post("/subjects", s.handleCreateSubject)
				r.Post("/subjects/{subjectID}/quizzes", s.handleCreateQuiz)
				r.Post("/questions/batch", s.handleBatchQuestions)
			})
		})
	})

	return r
}
