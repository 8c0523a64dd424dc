package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/milhasapp/pontos-bff-go/internal/config"
	"github.com/milhasapp/pontos-bff-go/internal/domain"
	"github.com/milhasapp/pontos-bff-go/internal/handler"
	"github.com/milhasapp/pontos-bff-go/internal/infra/backend"
	"github.com/milhasapp/pontos-bff-go/internal/infra/cache"
	"github.com/milhasapp/pontos-bff-go/internal/infra/observability"
	"github.com/milhasapp/pontos-bff-go/internal/infra/prefstore"
	"github.com/milhasapp/pontos-bff-go/internal/infra/resilience"
	"github.com/milhasapp/pontos-bff-go/internal/service"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = godotenv.Load()

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.String("backend_url", cfg.BackendURL),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Duration("session_ttl", cfg.SessionTTL),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
		zap.Duration("promotion_poll_interval", cfg.PromotionPollInterval),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "pontos-bff")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Caches ---
	promotionCache := cache.New[[]domain.Promocao](cfg.CacheTTL)
	sessionCache := cache.New[domain.Session](cfg.SessionTTL)

	// --- Resilience ---
	resilienceCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxConcurrency: cfg.MaxConcurrency,
	}
	cb := resilience.NewCircuitBreaker("loyalty-backend")

	// --- Backend client ---
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	store := backend.NewClient(httpClient, cfg.BackendURL, cb, resilienceCfg, logger)

	// --- Preference store ---
	prefStore, err := prefstore.NewFileStore(cfg.PreferencesPath, logger)
	if err != nil {
		logger.Fatal("failed to open preference store", zap.Error(err))
	}

	// --- Services ---
	authSvc := service.NewAuthService(store, sessionCache, cfg.JWTSecret, cfg.SessionTTL, logger)
	promoSvc := service.NewPromotionService(store, promotionCache, metrics, logger)

	svcs := handler.Services{
		Dashboard:   service.NewDashboardService(store, metrics, logger),
		Loyalty:     service.NewLoyaltyService(store, metrics, logger),
		Promotions:  promoSvc,
		Reports:     service.NewReportService(store, resilience.NewBulkhead(cfg.MaxConcurrency), metrics, logger),
		Auth:        authSvc,
		Preferences: service.NewPreferenceService(prefStore, logger),
	}

	// --- Promotion poller ---
	var poller *service.PromotionPoller
	if cfg.BackendServiceToken != "" {
		poller = service.NewPromotionPoller(promoSvc, cfg.BackendServiceToken, cfg.PromotionPollInterval, logger)
		poller.Start()
		defer poller.Stop()
		logger.Info("promotion poller started", zap.Duration("interval", cfg.PromotionPollInterval))
	} else {
		logger.Warn("promotion poller disabled: BACKEND_SERVICE_TOKEN not set")
	}

	// --- Router ---
	router := handler.NewRouter(svcs, metrics, logger)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
