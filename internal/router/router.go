package router

import (
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/aden91/tidar-web-app/internal/handler"
	"github.com/aden91/tidar-web-app/internal/identity"
	appmw "github.com/aden91/tidar-web-app/internal/middleware"
	"github.com/aden91/tidar-web-app/internal/platform/logger"
	"github.com/aden91/tidar-web-app/internal/platform/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Options configures the parts of the HTTP surface that come from the environment.
type Options struct {
	AllowedOrigins []string
	StaticDir      string
}

// NewRouter builds the complete HTTP surface. m may be nil.
func NewRouter(
	userHandler *handler.UserHandler,
	healthHandler *handler.HealthHandler,
	verifier identity.Verifier,
	m *metrics.MetricsManager,
	opts Options,
	log *logger.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(appmw.Logger(log))
	r.Use(middleware.Recoverer)
	if m != nil {
		r.Use(appmw.Metrics(m))
	}
	r.Use(cors.Handler(corsOptions(opts.AllowedOrigins)))

	r.Get("/healthz", healthHandler.Ready)
	r.Get("/api", healthHandler.Banner)
	SetupUserRoutes(r, userHandler, verifier, log)

	if opts.StaticDir != "" {
		r.NotFound(spaHandler(opts.StaticDir))
	}
	return r
}

// corsOptions allows any origin without credentials when none are configured.
func corsOptions(origins []string) cors.Options {
	opts := cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "HEAD", "PUT", "PATCH", "POST", "DELETE"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if len(origins) == 0 {
		opts.AllowedOrigins = []string{"*"}
		opts.AllowCredentials = false
	}
	return opts
}

// spaHandler serves files from dir and answers every other path with index.html
// so client-side routes survive a reload.
func spaHandler(dir string) http.HandlerFunc {
	fileServer := http.FileServer(http.Dir(dir))
	index := filepath.Join(dir, "index.html")

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.NotFound(w, r)
			return
		}
		name := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+r.URL.Path)))
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			fileServer.ServeHTTP(w, r)
			return
		}
		http.ServeFile(w, r, index)
	}
}
