package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"memegen/internal/adapter/repo"
	"memegen/internal/backend"
	"memegen/internal/generation"
	"memegen/internal/http/handlers"
	httpapi "memegen/internal/http/httpapi"
	"memegen/internal/infra"
	"memegen/internal/infra/geoip"
	"memegen/internal/middleware"
)

// In-flight poll sessions get a full budget to finish before shutdown gives up.
const shutdownGrace = generation.DefaultMaxWait + 2*generation.DefaultInterval

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, &logger); err != nil {
		logger.Fatal().Err(err).Msg("api stopped with error")
	}
	logger.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *infra.Config, logger *infra.Logger) error {
	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	}
	defer resolver.Close()
	var lookup middleware.CountryLookup
	if resolver != nil {
		lookup = resolver.CountryCode
	}

	history, err := repo.Open(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	if history != nil {
		defer history.Close()
		logger.Info().Msg("generation history enabled")
	}

	client, err := backend.NewClient(backend.Options{
		BaseURL:        cfg.BackendURL,
		Logger:         logger,
		RequestTimeout: cfg.BackendTimeout,
	})
	if err != nil {
		return err
	}

	opts := []generation.Option{generation.WithLogger(logger)}
	app := &handlers.App{
		Backend:    client,
		DefaultUID: cfg.DefaultUID,
		Logger:     logger,
	}
	if history != nil {
		opts = append(opts, generation.WithRecorder(history))
		app.History = history
	}
	app.Gateway = generation.NewGateway(client, opts...)

	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:          *logger,
		AllowedOrigins:  cfg.CORSAllowedOrigins,
		DefaultLocale:   cfg.DefaultLocale,
		CountryLookup:   lookup,
		RateLimitPerMin: cfg.RateLimitPerMin,
	})
	server := infra.NewHTTPServer(cfg, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("addr", server.Addr()).Str("backend", client.BaseURL()).Msg("API listening")
		return server.Start()
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		start := time.Now()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server")
			return err
		}
		logger.Info().Dur("took", time.Since(start)).Msg("http server drained")
		return nil
	})
	return g.Wait()
}
