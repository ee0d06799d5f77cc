package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/eurachacha/achacha-api/internal/api"
	apiMiddleware "github.com/eurachacha/achacha-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordHasher,
		app.passwordVerifier,
	)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	shareBoxHandler := api.NewShareBoxHandler(app.shareBoxService, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Route("/shareboxes", func(r chi.Router) {
				r.Post("/", shareBoxHandler.Create)
				r.Post("/join", shareBoxHandler.Join)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/settings", shareBoxHandler.GetSettings)
					r.Patch("/name", shareBoxHandler.UpdateName)
					r.Patch("/participation-setting", shareBoxHandler.UpdateParticipationSetting)
					r.Get("/users", shareBoxHandler.ListParticipants)
					r.Get("/gifticons", shareBoxHandler.ListGifticons)
					r.Delete("/leave", shareBoxHandler.Leave)
					r.Post("/gifticons/{gifticonID}", shareBoxHandler.ShareGifticon)
					r.Delete("/gifticons/{gifticonID}", shareBoxHandler.UnshareGifticon)
				})
			})
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
