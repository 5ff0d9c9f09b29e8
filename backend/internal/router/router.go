package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yamdb-dev/yamdb/backend/internal/setup"
	mw "github.com/yamdb-dev/yamdb/shared/middleware"
	"github.com/yamdb-dev/yamdb/shared/middleware/metrics"
)

// New creates the chi router with all the routes.
// Reads are public (a token, if sent, must be valid); writes need a token and
// the services decide on ownership and role.
func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: deps.Config.Public.CorsOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(mw.SecurityHeaders(deps.Config.Public.SecureHeadersHSTS))

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/signup", h.Signup)
	r.Post("/token", h.Token)

	r.Route("/users", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authMw.NeedAuth())
			r.Get("/me", h.Me)
			r.Patch("/me", h.UpdateMe)
		})
		r.Group(func(r chi.Router) {
			r.Use(authMw.AdminOnly())
			r.Get("/", h.ListUsers)
			r.Post("/", h.CreateUser)
			r.Get("/{username}", h.GetUser)
			r.Patch("/{username}", h.UpdateUser)
			r.Delete("/{username}", h.DeleteUser)
		})
	})

	// public reads
	r.Group(func(r chi.Router) {
		r.Use(authMw.OptionalAuth())
		r.Get("/categories", h.ListCategories)
		r.Get("/genres", h.ListGenres)
		r.Get("/titles", h.ListTitles)
		r.Get("/titles/{title}", h.GetTitle)
		r.Get("/titles/{title}/reviews", h.ListReviews)
		r.Get("/titles/{title}/reviews/{review}", h.GetReview)
		r.Get("/titles/{title}/reviews/{review}/comments", h.ListComments)
		r.Get("/titles/{title}/reviews/{review}/comments/{comment}", h.GetComment)
	})

	r.Group(func(r chi.Router) {
		r.Use(authMw.AdminOnly())
		r.Post("/categories", h.CreateCategory)
		r.Delete("/categories/{slug}", h.DeleteCategory)
		r.Post("/genres", h.CreateGenre)
		r.Delete("/genres/{slug}", h.DeleteGenre)
		r.Post("/titles", h.CreateTitle)
		r.Patch("/titles/{title}", h.UpdateTitle)
		r.Delete("/titles/{title}", h.DeleteTitle)
	})

	r.Group(func(r chi.Router) {
		r.Use(authMw.NeedAuth())
		r.Post("/titles/{title}/reviews", h.CreateReview)
		r.Patch("/titles/{title}/reviews/{review}", h.UpdateReview)
		r.Delete("/titles/{title}/reviews/{review}", h.DeleteReview)
		r.Post("/titles/{title}/reviews/{review}/comments", h.CreateComment)
		r.Patch("/titles/{title}/reviews/{review}/comments/{comment}", h.UpdateComment)
		r.Delete("/titles/{title}/reviews/{review}/comments/{comment}", h.DeleteComment)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Not found"}`))
	})

	return r
}
