package router

import (
	"github.com/aden91/tidar-web-app/internal/handler"
	"github.com/aden91/tidar-web-app/internal/identity"
	appmw "github.com/aden91/tidar-web-app/internal/middleware"
	"github.com/aden91/tidar-web-app/internal/platform/logger"
	"github.com/go-chi/chi/v5"
)

// SetupUserRoutes mounts the member endpoints under /api/users.
func SetupUserRoutes(r chi.Router, userHandler *handler.UserHandler, verifier identity.Verifier, log *logger.Logger) {
	r.Route("/api/users", func(users chi.Router) {
		// Admin verification carries no credential check of its own and relies on
		// network-level access control in front of the service.
		users.Post("/verify", userHandler.Verify)

		users.Group(func(authRouter chi.Router) {
			authRouter.Use(appmw.Auth(verifier, log))

			authRouter.Post("/register", userHandler.Register)
			authRouter.Post("/auth", userHandler.Sync)
			authRouter.Get("/{uid}", userHandler.Get)
		})
	})
}
