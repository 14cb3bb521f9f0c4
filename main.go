package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"loan-interest/cli"
	"loan-interest/config"
	httpLayer "loan-interest/http"
	"loan-interest/repository"
	"loan-interest/service"

	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.ConfigureLogging()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loanRepo := repository.NewLoanRepositoryMemory()
	loanService := service.NewLoanService(loanRepo)

	switch cfg.Mode {
	case config.ModeHTTP:
		err = runHTTP(ctx, cfg, loanService)
	default:
		err = runCLI(ctx, loanService)
	}
	if err != nil {
		log.WithError(err).Fatal("Application error")
	}
}

func runCLI(ctx context.Context, loanService *service.LoanService) error {
	done := make(chan error, 1)
	go func() {
		done <- cli.NewSession(loanService, os.Stdin, os.Stdout).Run(ctx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		log.Info("Received shutdown signal")
		return nil
	}
}

func runHTTP(ctx context.Context, cfg *config.Config, loanService *service.LoanService) error {
	cache := newCache(ctx, cfg)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	defer rateLimiter.Stop()

	loanHandler := httpLayer.NewLoanHandler(loanService, cache)
	return httpLayer.Serve(ctx, cfg.HTTPAddr, httpLayer.NewRouter(loanHandler, rateLimiter))
}

// newCache connects to Redis when an address is configured and falls back to
// an in-memory cache when it is missing or unreachable.
func newCache(ctx context.Context, cfg *config.Config) repository.CacheRepository {
	if cfg.RedisAddr == "" {
		return repository.NewMemoryCache()
	}

	redisCache := repository.NewRedisCache(cfg.RedisAddr, cfg.CacheTTL)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := redisCache.Ping(pingCtx); err != nil {
		log.WithFields(log.Fields{
			"addr":  cfg.RedisAddr,
			"error": err,
		}).Warn("Redis unavailable, using in-memory cache")
		redisCache.Close()
		return repository.NewMemoryCache()
	}

	log.WithField("addr", cfg.RedisAddr).Info("Using Redis response cache")
	return redisCache
}
