//	@title			Keja Uploads API
//	@version		1.0
//	@description	Upload, list, view, download and delete files kept in S3-compatible object storage.
//
//	@host		localhost:4222
//	@BasePath	/

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sethvargo/go-retry"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/keja/service/internal/config"
	"github.com/keja/service/internal/db"
	"github.com/keja/service/internal/file"
	"github.com/keja/service/internal/metrics"
	appMiddleware "github.com/keja/service/internal/middleware"
	"github.com/keja/service/internal/readiness"
	"github.com/keja/service/internal/response"
	"github.com/keja/service/internal/storage"

	_ "github.com/keja/service/docs/swagger"
)

func main() {
	dotenvErr := config.LoadDotEnv()

	logger, err := initLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if dotenvErr != nil {
		logger.Info("no .env file found, reading from environment")
	}
	cfg := config.Load()

	pool, err := db.NewPool(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database pool init failed", zap.Error(err))
	}
	defer pool.Close()

	store, err := storage.NewMinioStorage(
		cfg.StorageEndpoint,
		cfg.StorageAccessKey,
		cfg.StorageSecretKey,
		cfg.StorageBucket,
		cfg.StorageUseSSL,
	)
	if err != nil {
		logger.Fatal("object storage init failed", zap.Error(err))
	}

	// Wire dependencies: repository → service → handler
	fileRepo := file.NewRepository(pool)
	fileSvc := file.NewService(fileRepo, store, logger.Named("file"))
	fileHandler := file.NewHandler(fileSvc, logger.Named("http"), cfg.MaxUploadBytes)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gate := readiness.New()
	go connect(ctx, cfg, fileSvc, gate, logger)

	// Router
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger(logger.Named("access")))
	r.Use(metrics.Instrument)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"Content-Disposition", "X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(appMiddleware.MethodOverride)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, map[string]string{"status": "ok"})
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		if !gate.Ready() {
			response.ServiceUnavailable(w, "Storage not ready")
			return
		}
		pingCtx, cancel := context.WithTimeout(r.Context(), cfg.ReadyWait)
		defer cancel()
		if err := fileSvc.Ping(pingCtx); err != nil {
			logger.Warn("readiness check failed", zap.Error(err))
			response.ServiceUnavailable(w, "Storage not ready")
			return
		}
		response.OK(w, map[string]string{"status": "ready"})
	})
	r.Handle("/metrics", promhttp.Handler())

	// Swagger UI — available at http://localhost:4222/swagger/
	if !cfg.IsProduction() {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	r.Group(func(r chi.Router) {
		r.Use(appMiddleware.RequireReady(gate, cfg.ReadyWait))
		fileHandler.Routes(r)
	})

	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     r,
		ReadTimeout: 5 * time.Minute,
		// Downloads stream for as long as the client keeps reading.
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.AppEnv),
			zap.String("bucket", store.Bucket()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
		return
	}

	logger.Info("server stopped")
}

// connect brings both backends up and opens gate. Every step is retried with
// exponential backoff until cfg.ConnectTimeout elapses; the process exits if
// the store never becomes reachable.
func connect(ctx context.Context, cfg *config.Config, svc *file.Service, gate *readiness.Gate, logger *zap.Logger) {
	backoff := retry.WithMaxDuration(cfg.ConnectTimeout,
		retry.WithCappedDuration(10*time.Second, retry.NewExponential(250*time.Millisecond)))

	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		stepCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		if err := svc.Ping(stepCtx); err != nil {
			logger.Warn("store not reachable yet", zap.Int("attempt", attempt), zap.Error(err))
			return retry.RetryableError(err)
		}
		if err := db.Migrate(cfg.DatabaseURL); err != nil {
			logger.Warn("migrations failed", zap.Int("attempt", attempt), zap.Error(err))
			return retry.RetryableError(err)
		}
		return nil
	})
	if errors.Is(err, context.Canceled) {
		return
	}
	if err != nil {
		logger.Fatal("store never became ready", zap.Duration("timeout", cfg.ConnectTimeout), zap.Error(err))
	}

	gate.MarkReady()
	logger.Info("store ready", zap.Int("attempts", attempt))
}

// initLogger reads LOG_LEVEL and LOG_ENCODING straight from the environment
// so that config loading can already report through the global logger.
func initLogger() (*zap.Logger, error) {
	level := strings.ToLower(os.Getenv("LOG_LEVEL"))
	if level == "" {
		level = "info"
	}
	encoding := strings.ToLower(os.Getenv("LOG_ENCODING"))
	if encoding == "" {
		encoding = "json"
	}
	cfg := zap.NewProductionConfig()
	if encoding != "json" {
		cfg.Encoding = "console"
	}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Level = zap.NewAtomicLevelAt(parseLogLevel(level))
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}

func parseLogLevel(raw string) zapcore.Level {
	switch strings.ToLower(raw) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
