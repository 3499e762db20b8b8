package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	validator "github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	redis "github.com/redis/go-redis/v9"

	"github.com/noah-isme/motiondevis/internal/analytics"
	"github.com/noah-isme/motiondevis/internal/config"
	"github.com/noah-isme/motiondevis/internal/devis"
	"github.com/noah-isme/motiondevis/internal/export"
	"github.com/noah-isme/motiondevis/internal/health"
	"github.com/noah-isme/motiondevis/internal/obs"
	"github.com/noah-isme/motiondevis/internal/store"
)

type pinger interface {
	Ping(ctx context.Context) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logFormat := envOrDefault("OBS_LOG_FORMAT", "json")
	logLevel := envOrDefault("OBS_LOG_LEVEL", "info")
	logger := obs.NewLogger(logFormat, logLevel).With().Str("env", cfg.AppEnv).Logger()

	metricsNamespace := envOrDefault("OBS_METRICS_NAMESPACE", "motiondevis")
	metricsEnabled := envBool("OBS_ENABLE_PROMETHEUS", true)
	obs.MustRegisterDomainMetrics(metricsNamespace, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var (
		blobStore devis.Store
		storePing pinger
	)
	switch cfg.StoreDriver {
	case config.StoreDriverRedis:
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("parse redis url")
		}
		redisClient := redis.NewClient(redisOpts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Fatal().Err(err).Msg("ping redis")
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error().Err(err).Msg("close redis client")
			}
		}()
		rs := &store.RedisStore{Client: redisClient}
		blobStore, storePing = rs, rs
	default:
		fs := store.NewFileStore(cfg.StorePath)
		if err := fs.Ping(ctx); err != nil {
			logger.Fatal().Err(err).Msg("prepare state directory")
		}
		blobStore, storePing = fs, fs
	}

	devisSvc, err := devis.NewService(ctx, blobStore, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise devis service")
	}
	devisHandler := &devis.Handler{Svc: devisSvc, Validate: validator.New()}

	analyticsHandler := &analytics.Handler{Svc: &analytics.Service{Src: devisSvc}}
	exportHandler := &export.Handler{Svc: devisSvc, Log: logger}

	var httpMetrics *obs.HTTPMetrics
	if metricsEnabled {
		buckets := obs.ParseBucketsCSV(envOrDefault("OBS_METRICS_BUCKETS_MS", ""))
		httpMetrics = obs.NewHTTPMetrics(metricsNamespace, buckets, nil)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(obs.RoutePatternMiddleware)
	if metricsEnabled && httpMetrics != nil {
		r.Use(obs.HTTPObs{Metrics: httpMetrics}.Middleware)
	}
	r.Use(obs.RequestLogger{Logger: logger}.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(cfg),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	healthHandler := health.Handler{
		Checker:      readinessChecker{store: storePing},
		StoreTimeout: envDurationMillis("HEALTH_READY_STORE_TIMEOUT_MS", 500),
	}
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)

	r.Route("/api/v1", func(v chi.Router) {
		v.Get("/catalog", devisHandler.GetCatalog)

		v.Get("/settings", devisHandler.GetSettings)
		v.Put("/settings", devisHandler.PutSettings)

		v.Route("/quote", func(q chi.Router) {
			q.Get("/", devisHandler.GetQuote)
			q.Put("/", devisHandler.PutQuote)
			q.Post("/lines", devisHandler.PostLine)
			q.Patch("/lines/{lineID}", devisHandler.PatchLine)
			q.Delete("/lines/{lineID}", devisHandler.DeleteLine)
			q.Post("/save", devisHandler.PostSave)
			q.Post("/reset", devisHandler.PostReset)
		})

		v.Route("/devis", func(d chi.Router) {
			d.Get("/", devisHandler.List)
			d.Get("/export", exportHandler.JSON)
			d.Route("/{id}", func(one chi.Router) {
				one.Get("/", devisHandler.Get)
				one.Delete("/", devisHandler.Delete)
				one.Post("/duplicate", devisHandler.PostDuplicate)
				one.Get("/pdf", exportHandler.PDF)
			})
		})

		v.Get("/analytics/overview", analyticsHandler.Overview)
	})

	srv := &http.Server{
		Addr:    cfg.HTTPAddr(),
		Handler: r,
	}

	logger.Info().Str("addr", srv.Addr).Str("store", cfg.StoreDriver).Msg("server starting")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server exited unexpectedly")
	}
}

func allowedOrigins(cfg *config.Config) []string {
	if len(cfg.CORSAllowedOrigins) == 0 {
		return []string{"*"}
	}
	return cfg.CORSAllowedOrigins
}

type readinessChecker struct {
	store pinger
}

func (c readinessChecker) PingStore(ctx context.Context, timeout time.Duration) error {
	if c.store == nil {
		return errors.New("store not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.store.Ping(ctx)
}

func envOrDefault(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		trimmed := strings.TrimSpace(val)
		if trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "1", "t", "true", "yes", "on":
			return true
		case "0", "f", "false", "no", "off":
			return false
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return parsed
		}
	}
	return fallback
}

func envDurationMillis(key string, fallback int) time.Duration {
	return time.Duration(envInt(key, fallback)) * time.Millisecond
}
