package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kdriscoll/mentora-api/internal/api"
	apiMiddleware "github.com/kdriscoll/mentora-api/internal/api/middleware"
)

// routes creates and configures the application router with all routes
// and middleware.
func (app *application) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordVerifier,
		app.config.Auth,
	)
	accountHandler := api.NewAccountHandler(app.userService)
	featureHandler := api.NewFeatureHandler(app.registry, app.exporter)
	generateHandler := api.NewGenerateHandler(app.pipeline)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Account maintenance
			r.Put("/account/password", accountHandler.ChangePassword)
			r.Delete("/account", accountHandler.DeleteAccount)

			// Feature screen endpoints
			r.Post("/features/{category}/prompt", featureHandler.SubmitPrompt)
			r.Get("/features/{category}", featureHandler.GetState)
			r.Post("/features/{category}/export", featureHandler.Export)
			r.Get("/exports/{name}", featureHandler.DownloadExport)

			// Synchronous generation
			r.Post("/generate", generateHandler.Generate)
		})
	})

	// Health check endpoint
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
