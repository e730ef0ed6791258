package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates the Chi router. wh may be nil to serve the JSON API only.
// apiToken, when set, is required on non-GET /api/v1 requests.
func NewRouter(h *Handler, wh *WebHandler, apiToken string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(Recoverer)
	r.Use(Logger)
	r.Use(CORS)

	// Health check endpoint
	r.Get("/health", h.HealthCheck)

	// Web routes (HTML pages); actions redirect back to /. apiToken guards
	// only /api/v1: the web front end is meant for the local learner.
	if wh != nil {
		r.Get("/", wh.Index)
		r.Post("/days/{day}", wh.SelectDay)
		r.Post("/study/prev", wh.PrevCard)
		r.Post("/study/next", wh.NextCard)
		r.Post("/test/start", wh.StartTest)
		r.Post("/test/reveal", wh.RevealAnswer)
		r.Post("/test/result", wh.SubmitResult)
		r.Post("/home", wh.GoHome)
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(JSONContentType)
		r.Use(BearerAuth(apiToken))

		r.Get("/state", h.GetState)
		r.Post("/commands", h.Dispatch)
		r.Get("/days", h.ListDays)
		r.Get("/words/{index}", h.GetWord)
	})

	return r
}
