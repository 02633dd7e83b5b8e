package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"

	"knowledgelib/internal/config"
	httpdelivery "knowledgelib/internal/redirect/delivery/http"
	"knowledgelib/internal/redirect/repository/cache"
	"knowledgelib/internal/redirect/repository/postgrest"
	"knowledgelib/internal/redirect/usecase"
	"knowledgelib/pkg/background"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}
	if cfg.Store.URL == "" {
		logger.Fatal("store.url is required")
	}

	storeTimeout := time.Duration(cfg.Store.TimeoutSeconds) * time.Second

	// Optional Redis link cache; the service runs fine without it.
	var rdb *redis.Client
	if cfg.Cache.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Cache.RedisAddr})
		defer rdb.Close()
		logger.Info("link cache enabled", zap.String("redis_addr", cfg.Cache.RedisAddr))
	}

	// Wire dependencies
	store := postgrest.NewLinkRepository(cfg.Store.URL, cfg.Store.APIKey, storeTimeout)
	linkCache := cache.NewRedisLinkCache(rdb, time.Duration(cfg.Cache.TTLSeconds)*time.Second, logger)
	repo := cache.NewCachedLinkRepository(store, linkCache)
	sink := postgrest.NewClickSink(cfg.Store.URL, cfg.Store.APIKey, storeTimeout)
	service := usecase.NewRedirectService(repo, sink, cfg.Site.Domain, logger)
	tasks := background.NewTracker(logger)
	handler := httpdelivery.NewHandler(service, tasks, cfg.Site.HomeURL, cfg.Edge.IPHeader, cfg.Edge.CountryHeader, logger)
	router := httpdelivery.NewRouter(handler)

	srv := &http.Server{
		Addr:    ":" + strconv.Itoa(cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Info("redirect service starting",
			zap.Int("port", cfg.Server.Port),
			zap.String("site_domain", cfg.Site.Domain),
			zap.String("store_url", cfg.Store.URL),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("redirect service shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	// Give detached click-logging tasks a chance to finish. Abandoning them at
	// the deadline is accepted loss, not an error.
	if !tasks.Drain(5 * time.Second) {
		logger.Warn("abandoned in-flight click logging tasks")
	}

	logger.Info("redirect service stopped")
}
