package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rebalancer/internal/app"
	"rebalancer/internal/config"
	"rebalancer/internal/httpx"
	"rebalancer/internal/logger"
	"rebalancer/internal/pricing"
	"rebalancer/internal/server"
	"rebalancer/internal/storage"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		fallback := logger.New(logger.Config{Level: "info", Pretty: true})
		fallback.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	log.Info().Str("port", cfg.Server.Port).Msg("Starting rebalancer")

	timeout := time.Duration(cfg.Server.RequestTimeoutSec) * time.Second
	hc := httpx.New(timeout, log)

	sources, err := pricing.NewSources(cfg, hc, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build price providers")
	}

	store, err := storage.Open(cfg.Storage.Path, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open storage")
	}
	defer store.Close()

	svc := app.NewService(store, sources.Resolver(log), sources.Validator(log), log)

	srv := server.New(server.Config{
		Port:           cfg.Server.Port,
		RequestTimeout: timeout,
		Log:            log,
		Service:        svc,
	})

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server stopped")
}
