package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"plannr/config"
	_ "plannr/docs"
	"plannr/internal/adapters/api"
	"plannr/internal/adapters/auth"
	"plannr/internal/clock"
	transporthttp "plannr/internal/delivery/http"
	"plannr/internal/delivery/http/controllers"
	"plannr/internal/delivery/http/middleware"
	"plannr/internal/delivery/http/views"
	"plannr/internal/domain"
	"plannr/internal/repository/memory"
	"plannr/internal/repository/postgres"
	redisrepo "plannr/internal/repository/redis"
	"plannr/internal/services"

	_ "github.com/lib/pq"
	goredis "github.com/redis/go-redis/v9"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := config.NewLogger()
	slog.SetDefault(logger)

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("load timezone %q: %v", cfg.Timezone, err)
	}

	client, err := api.NewClient(cfg.APIOrigin,
		// per-call deadlines come from the services; this only bounds a stuck transport
		api.WithHTTPClient(&http.Client{Timeout: 2 * cfg.APITimeout}),
		api.WithCookieName(cfg.APISessionCookie),
		api.WithEventsPath(cfg.APIEventsPath),
	)
	if err != nil {
		log.Fatalf("api client: %v", err)
	}

	sealer, err := auth.NewSecretboxSealer(cfg.SessionKey)
	if err != nil {
		log.Fatalf("session sealer: %v", err)
	}

	clk := clock.NewSystem()
	repo, closeRepo, err := openSessionStore(cfg, clk)
	if err != nil {
		log.Fatalf("session store: %v", err)
	}
	defer closeRepo()

	fetches := services.NewFetchCoordinator()
	sessionSvc := services.NewSessionService(client, repo, sealer, auth.NewJWTInspector(), clk, cfg.SessionTTL, cfg.APITimeout, logger)
	eventSvc := services.NewEventService(client, client, fetches, cfg.APITimeout)
	inviteSvc := services.NewInviteService(client, fetches, cfg.APITimeout)

	renderer, err := views.NewRenderer(loc)
	if err != nil {
		log.Fatalf("parse templates: %v", err)
	}

	cookie := middleware.SessionCookie{Name: cfg.SessionCookie, Secure: cfg.SecureCookies, TTL: cfg.SessionTTL}
	base := controllers.Base{Logger: logger, Views: renderer}
	router := transporthttp.NewRouter(transporthttp.Controllers{
		Home:    controllers.NewHomeController(base),
		Auth:    controllers.NewAuthController(base, sessionSvc, cookie),
		Events:  controllers.NewEventController(base, eventSvc),
		Invites: controllers.NewInviteController(base, eventSvc, inviteSvc),
		Public:  controllers.NewPublicController(base, eventSvc, inviteSvc),
		API:     controllers.NewAPIController(logger, sessionSvc, eventSvc, inviteSvc, cookie),
	})
	handler := transporthttp.NewHandler(router, transporthttp.HandlerConfig{
		Logger:         logger,
		Sessions:       sessionSvc,
		Cookie:         cookie,
		CSRFKey:        cfg.CSRFKey,
		SecureCookies:  cfg.SecureCookies,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go services.NewSessionJanitor(repo, clk, cfg.SweepInterval, logger).Start(stopCtx)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("web client listening", "port", cfg.Port, "api_origin", cfg.APIOrigin, "session_store", cfg.SessionStore)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
		}
	case <-stopCtx.Done():
		logger.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server shutdown error", "err", err)
	}
	logger.Info("server stopped")
}

// openSessionStore returns the browser session repository selected by SESSION_STORE and a
// func that releases its connection.
func openSessionStore(cfg *config.Config, clk clock.Clock) (domain.BrowserSessionRepository, func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	switch cfg.SessionStore {
	case config.SessionStorePostgres:
		db, err := sql.Open("postgres", cfg.DBUrl)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("ping postgres: %w", err)
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		return postgres.NewBrowserSessionRepository(db), func() { db.Close() }, nil
	case config.SessionStoreRedis:
		opts, err := goredis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		rdb := goredis.NewClient(opts)
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		return redisrepo.NewBrowserSessionRepository(rdb, clk), func() { rdb.Close() }, nil
	default:
		return memory.NewBrowserSessionRepository(), func() {}, nil
	}
}
