package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jobdesk/jobdesk-be/internal/api/handlers"
	"github.com/jobdesk/jobdesk-be/internal/auth"
	"github.com/jobdesk/jobdesk-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	tokens *auth.Manager,
	userService services.UserServiceProvider,
	jobService services.JobServiceProvider,
	eventService services.EventServiceProvider,
	allowedOrigins []string,
	requestTimeout time.Duration,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	// CORS configuration for the frontend
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, tokens)
	jobHandler := handlers.NewJobHandler(jobService)
	eventHandler := handlers.NewEventHandler(eventService)

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/register", userHandler.Register)
		r.Post("/login", userHandler.Login)
		r.Get("/alljobs", jobHandler.ListAll)

		// Protected endpoints
		r.Group(func(r chi.Router) {
			r.Use(tokens.Middleware())

			r.Get("/auth/verify", userHandler.Verify)
			r.Get("/events", eventHandler.GetRecent)

			r.Route("/jobs", func(r chi.Router) {
				r.Get("/", jobHandler.ListOwned)
				r.Post("/", jobHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", jobHandler.Get)
					r.Put("/", jobHandler.Update)
					r.Delete("/", jobHandler.Delete)
				})
			})
		})
	})

	return r
}
