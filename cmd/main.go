package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	redisCache "github.com/aden91/tidar-web-app/internal/adapter/cache/redis"
	natsAdapter "github.com/aden91/tidar-web-app/internal/adapter/messaging/nats"
	mongoRepo "github.com/aden91/tidar-web-app/internal/adapter/repository/mongodb"
	"github.com/aden91/tidar-web-app/internal/config"
	"github.com/aden91/tidar-web-app/internal/handler"
	"github.com/aden91/tidar-web-app/internal/identity"
	"github.com/aden91/tidar-web-app/internal/mailer"
	"github.com/aden91/tidar-web-app/internal/platform/logger"
	"github.com/aden91/tidar-web-app/internal/platform/metrics"
	"github.com/aden91/tidar-web-app/internal/platform/tracer"
	"github.com/aden91/tidar-web-app/internal/router"
	"github.com/aden91/tidar-web-app/internal/usecase"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func main() {
	// 1. Configuration (.env is optional)
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Logger
	appLogger := logger.NewLogger(logger.NewConfig(cfg.LogLevel, cfg.LogFormat, cfg.LogOutputFile))
	defer func() { _ = appLogger.Sync() }()
	appLogger.Info("Application starting...",
		zap.String("service_name", cfg.ServiceName),
		zap.String("http_port", cfg.HTTPPort),
		zap.String("identity_provider", cfg.IdentityProvider),
		zap.Bool("redis_enabled", cfg.RedisAddr != ""),
		zap.Bool("nats_enabled", cfg.NATSURL != ""),
		zap.Bool("smtp_enabled", cfg.SMTPEnabled()),
	)

	// 3. Tracing
	if cfg.OTExporterOTLPEndpoint != "" {
		tp := tracer.InitTracer(cfg.ServiceName, cfg.OTExporterOTLPEndpoint, appLogger)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(ctx); err != nil {
				appLogger.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	} else {
		appLogger.Info("OpenTelemetry tracer not initialized (OTEL_EXPORTER_OTLP_ENDPOINT not set).")
	}

	// 4. MongoDB
	connectCtx, cancelConnect := context.WithTimeout(context.Background(), cfg.MongoTimeout)
	mongoClient, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		cancelConnect()
		appLogger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	if err := mongoClient.Ping(connectCtx, nil); err != nil {
		cancelConnect()
		appLogger.Fatal("Failed to ping MongoDB", zap.Error(err))
	}
	cancelConnect()
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			appLogger.Error("Error disconnecting from MongoDB", zap.Error(err))
		}
	}()
	appLogger.Info("Successfully connected and pinged MongoDB.", zap.String("database", cfg.MongoDatabase))
	userRepo := mongoRepo.NewUserRepository(mongoClient.Database(cfg.MongoDatabase), cfg.MongoTimeout, appLogger)

	// 5. Metrics
	metricsManager := metrics.NewMetricsManager(cfg.ServiceName)

	// 6. Identity verification
	rootCtx, cancelRoot := context.WithCancel(context.Background())
	defer cancelRoot()

	verifier, err := newVerifier(rootCtx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize identity provider", zap.String("provider", cfg.IdentityProvider), zap.Error(err))
	}
	if cfg.RedisAddr != "" {
		rdb, err := redisCache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize Redis token cache", zap.Error(err))
		}
		defer func() { _ = rdb.Close() }()
		verifier = identity.NewCachingVerifier(
			verifier,
			redisCache.NewTokenCache(rdb, appLogger),
			cfg.TokenCacheTTL,
			metricsManager.TokenCacheLookups,
			appLogger,
		)
		appLogger.Info("Verified token cache enabled.", zap.Duration("ttl", cfg.TokenCacheTTL))
	}

	// 7. Events
	var publisher usecase.EventPublisher = natsAdapter.NoopPublisher{}
	if cfg.NATSURL != "" {
		natsPublisher, err := natsAdapter.NewPublisher(cfg.NATSURL, appLogger, cfg.ServiceName)
		if err != nil {
			appLogger.Fatal("Failed to initialize NATS publisher", zap.Error(err))
		}
		defer natsPublisher.Close()
		publisher = natsPublisher
	}

	// 8. Mail
	var mail mailer.Mailer = mailer.NoopMailer{}
	if cfg.SMTPEnabled() {
		mail = mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom, "TIDAR", appLogger)
	}

	// 9. HTTP
	userUsecase := usecase.NewUserUsecase(userRepo, publisher, mail, metricsManager, cfg.DefaultDisplayName, appLogger)
	r := router.NewRouter(
		handler.NewUserHandler(userUsecase, appLogger),
		handler.NewHealthHandler(userRepo, appLogger),
		verifier,
		metricsManager,
		router.Options{AllowedOrigins: cfg.AllowedOrigins(), StaticDir: cfg.StaticDir},
		appLogger,
	)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		appLogger.Info("Starting HTTP server", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	var metricsSrv *http.Server
	if cfg.PrometheusMetricsPort != "" {
		metricsSrv = metrics.NewMetricsServer(cfg.PrometheusMetricsPort, appLogger, metricsManager.Registry)
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				appLogger.Error("Prometheus metrics server failed", zap.Error(err))
			}
		}()
	}

	// 10. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	appLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			appLogger.Error("Metrics server shutdown failed", zap.Error(err))
		}
	}
	appLogger.Info("Application shutting down...")
}

func newVerifier(ctx context.Context, cfg *config.Config, log *logger.Logger) (identity.Verifier, error) {
	switch cfg.IdentityProvider {
	case config.ProviderGoogle:
		return identity.NewGoogleVerifier(cfg.GoogleClientID), nil
	case config.ProviderHMAC:
		log.Warn("Using shared-secret HMAC tokens; intended for local development only.")
		return identity.NewHMACVerifier(cfg.JWTSecret), nil
	default:
		return identity.NewFirebaseVerifier(ctx, cfg.FirebaseProjectID, log)
	}
}
