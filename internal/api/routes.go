package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", userIDHeader},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
	if s.RequestTimeout > 0 {
		r.Use(timeoutMiddleware(s.RequestTimeout))
	}

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Post("/compare", s.handleCompare)

		r.Group(func(r chi.Router) {
			r.Use(s.userMiddleware)
			r.Get("/me", s.handleMe)
			r.Post("/phrases", s.handleCreatePhrase)
			r.Get("/phrases/{id}/history", s.handlePhraseHistory)
			r.Get("/phrase/practice", s.handlePracticePhrases)
			r.Post("/phrase/practice/answer", s.handlePracticeAnswer)
			r.Get("/phrase/practice/stats", s.handlePracticeStats)
		})
	})
	return r
}
