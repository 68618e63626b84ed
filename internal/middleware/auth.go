package middleware

import (
	"net/http"
	"strings"

	"github.com/aden91/tidar-web-app/internal/identity"
	"github.com/aden91/tidar-web-app/internal/platform/logger"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"go.uber.org/zap"
)

const (
	msgNoToken      = "Unauthorized: no token provided."
	msgInvalidToken = "Unauthorized: invalid or expired token."
	bearerPrefix    = "Bearer "
)

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Auth verifies the bearer token and attaches the identity to the request context.
// A missing token is 401; a rejected one is 403 and the reason is only logged.
func Auth(verifier identity.Verifier, log *logger.Logger) func(http.Handler) http.Handler {
	authLogger := log.Named("Auth")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
			if !strings.HasPrefix(header, bearerPrefix) || token == "" {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, errorResponse{Message: msgNoToken})
				return
			}

			id, err := verifier.Verify(r.Context(), token)
			if err != nil {
				authLogger.Warn("Token verification failed",
					zap.String("path", r.URL.Path),
					zap.String("request_id", middleware.GetReqID(r.Context())),
					zap.Error(err))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, errorResponse{Message: msgInvalidToken})
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}
