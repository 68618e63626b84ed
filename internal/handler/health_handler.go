package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/aden91/tidar-web-app/internal/platform/logger"
	"github.com/go-chi/render"
	"go.uber.org/zap"
)

const bannerText = "TIDAR API server is running!"

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store  Pinger
	logger *logger.Logger
}

func NewHealthHandler(store Pinger, log *logger.Logger) *HealthHandler {
	return &HealthHandler{store: store, logger: log.Named("HealthHandler")}
}

// Banner answers GET /api with a plain-text liveness line.
func (h *HealthHandler) Banner(w http.ResponseWriter, r *http.Request) {
	render.PlainText(w, r, bannerText)
}

// Ready pings the document store.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.logger.Warn("Readiness check failed", zap.Error(err))
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, map[string]string{"status": "unavailable"})
		return
	}
	render.JSON(w, r, map[string]string{"status": "ok"})
}
