package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// NewRouter builds the chi router with the global middleware stack, the JSON
// API under /api, and the HTML page at /.
func NewRouter(events *EventHandler, page *PageHandler, log *zap.Logger, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(Logger(log))
	r.Use(CORS(allowedOrigins))

	r.NotFound(NotFound)
	r.Get("/health", HealthCheck)

	r.Get("/", page.Index)
	r.Post("/register/{id}", page.Register)
	r.Post("/submit", page.Submit)

	r.Route("/api", func(r chi.Router) {
		r.Route("/events", func(r chi.Router) {
			r.Get("/", events.ListEvents)
			r.Post("/", events.CreateEvent)
			r.Get("/{id}", events.GetEvent)
			r.Post("/{id}/register", events.Register)
			r.Get("/{id}/registrations", events.ListRegistrations)
		})
		r.Post("/registrations", events.Submit)
		r.Get("/stats/categories", events.CategoryStats)
	})

	return r
}
