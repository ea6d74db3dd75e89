package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/ZanzyTHEbar/layoff-o-meter/docs"
	"github.com/ZanzyTHEbar/layoff-o-meter/internal/api"
	"github.com/ZanzyTHEbar/layoff-o-meter/internal/cache"
	"github.com/ZanzyTHEbar/layoff-o-meter/internal/config"
	apperrors "github.com/ZanzyTHEbar/layoff-o-meter/internal/errors"
	"github.com/ZanzyTHEbar/layoff-o-meter/internal/monitoring"
	"github.com/ZanzyTHEbar/layoff-o-meter/internal/prediction"
	"github.com/ZanzyTHEbar/layoff-o-meter/internal/ratelimit"
	"github.com/ZanzyTHEbar/layoff-o-meter/internal/security"
)

const shutdownTimeout = 30 * time.Second

// services bundles everything the router needs
type services struct {
	cfg     *config.Config
	scorer  *prediction.Scorer
	metrics *monitoring.Metrics
	logger  *monitoring.Logger
	tracer  *monitoring.Tracer
	redis   *ratelimit.RedisClient
	limiter *ratelimit.RateLimiter
	cache   *cache.Cache
}

func main() {
	cfg, level, err := loadConfig(os.Getenv("LAYOFF_CONFIG"))
	if err != nil {
		slog.Error(err.Message, "error_code", err.Code, "cause", err.Unwrap())
		os.Exit(1)
	}

	if err := run(cfg, level); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

// loadConfig reports load and log level failures as configuration errors
func loadConfig(path string) (*config.Config, slog.Level, *apperrors.AppError) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, slog.LevelInfo, apperrors.NewConfigurationError("invalid configuration", err)
	}

	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, slog.LevelInfo, apperrors.NewConfigurationError("invalid log level", err)
	}
	return cfg, level, nil
}

func run(cfg *config.Config, level slog.Level) error {
	appLogger := monitoring.NewLogger(level)
	slog.SetDefault(appLogger.Logger)
	gin.SetMode(cfg.Server.Mode)

	ctx := context.Background()
	svc := newServices(ctx, cfg, appLogger)
	defer svc.Close()

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           setupRouter(svc),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "addr", srv.Addr, "version", config.Version, "mode", cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case sig := <-quit:
		slog.Info("Shutting down server...", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return apperrors.WrapError(err, "server forced to shutdown")
	}
	svc.tracer.Flush(shutdownCtx)

	slog.Info("Server exited")
	return nil
}

// newServices builds the long-lived dependencies. A Redis outage is not
// fatal; rate limiting falls back to memory.
func newServices(ctx context.Context, cfg *config.Config, logger *monitoring.Logger) *services {
	metrics := monitoring.NewMetrics()

	redisClient, err := ratelimit.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		logger.SystemLogger("redis_unavailable", err.Error())
	}

	return &services{
		cfg:     cfg,
		scorer:  newScorer(cfg.Prediction),
		metrics: metrics,
		logger:  logger,
		tracer:  monitoring.InitTracer(ctx, cfg.Tracing),
		redis:   redisClient,
		limiter: ratelimit.NewRateLimiter(redisClient, cfg.RateLimit, metrics),
		cache:   cache.NewCache(cfg.Cache.TTL),
	}
}

// Close releases background workers and connections
func (s *services) Close() {
	if s.limiter != nil {
		apperrors.SafeClose(s.limiter, "rate limiter")
	}
	if s.cache != nil {
		apperrors.SafeClose(s.cache, "response cache")
	}
	if s.redis != nil {
		apperrors.SafeClose(s.redis, "redis client")
	}
}

// newScorer seeds the perturbation source when a seed is configured
func newScorer(cfg config.PredictionConfig) *prediction.Scorer {
	if cfg.Seed == 0 {
		return prediction.NewScorer()
	}
	return prediction.NewScorer(prediction.WithRandomSource(prediction.NewSeededSource(cfg.Seed)))
}

func setupRouter(svc *services) *gin.Engine {
	r := gin.New()

	r.Use(monitoring.RequestIDMiddleware())
	r.Use(apperrors.RecoveryHandler())
	r.Use(monitoring.MonitoringMiddleware(svc.metrics, svc.logger))
	r.Use(monitoring.SecurityMonitoringMiddleware(svc.logger, svc.cfg.Server.MaxBodyBytes))
	r.Use(monitoring.TracingMiddleware(svc.tracer))
	r.Use(apperrors.ErrorHandler())

	securityMiddleware := security.NewSecurityMiddleware(security.FromServerConfig(svc.cfg.Server))
	r.Use(securityMiddleware.Handlers()...)

	handler := api.NewHandler(svc.scorer, svc.metrics, svc.logger, svc.tracer, svc.redis, config.Version)

	r.GET("/health", handler.Health)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/predict", svc.limiter.IPRateLimitMiddleware(), handler.Predict)
		v1.POST("/recommend", svc.cache.Middleware(svc.metrics, svc.logger), handler.Recommend)
		v1.GET("/reference", handler.Reference)
	}

	// Swagger documentation routes
	docs.SwaggerInfo.Version = config.Version
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Metrics endpoints
	r.GET("/metrics", func(c *gin.Context) {
		stats := svc.metrics.GetStats()
		stats["rate_limit"] = svc.limiter.GetStats()
		stats["redis"] = svc.redis.GetPoolStats()
		c.JSON(http.StatusOK, stats)
	})
	r.GET("/metrics/prometheus", gin.WrapH(svc.metrics.PrometheusHandler()))

	// Cache stats endpoint
	r.GET("/cache/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, svc.cache.Stats())
	})

	if svc.cfg.Server.EnableProfiling {
		slog.Info("Enabling performance profiling endpoints")
		debug := r.Group("/debug/pprof")
		debug.GET("/", gin.WrapF(pprof.Index))
		debug.GET("/cmdline", gin.WrapF(pprof.Cmdline))
		debug.GET("/profile", gin.WrapF(pprof.Profile))
		debug.GET("/symbol", gin.WrapF(pprof.Symbol))
		debug.GET("/trace", gin.WrapF(pprof.Trace))
		debug.GET("/:name", func(c *gin.Context) {
			pprof.Handler(c.Param("name")).ServeHTTP(c.Writer, c.Request)
		})
	}

	return r
}
