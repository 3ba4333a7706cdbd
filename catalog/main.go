package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"comicapp/catalog/adapters/comicapi"
	"comicapp/catalog/adapters/events"
	"comicapp/catalog/adapters/rest"
	"comicapp/catalog/adapters/rest/middleware"
	"comicapp/catalog/config"
	"comicapp/catalog/core"
	"comicapp/catalog/screens"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "server configuration file")
	flag.Parse()

	cfg := config.MustLoad(configPath)
	log := mustMakeLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	log.Info("starting catalog server")
	log.Debug("debug messages are enabled")

	// Comics source
	client, err := comicapi.NewClient(cfg.Comics.BaseURL, cfg.Comics.ResourcePath, cfg.Comics.Timeout, log)
	if err != nil {
		return fmt.Errorf("failed to create comics client: %w", err)
	}
	repo, err := core.NewRepository(log, client)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}

	// Screen events are optional
	var publisher screens.Publisher
	if cfg.BrokerAddress != "" {
		p, err := events.NewPublisher(log, cfg.BrokerAddress)
		if err != nil {
			return fmt.Errorf("failed to connect to nats: %w", err)
		}
		defer p.Close()
		publisher = p
	}

	host, err := screens.NewHost(ctx, log, repo, publisher, cfg.MaxScreens)
	if err != nil {
		return fmt.Errorf("failed to create screen host: %w", err)
	}
	defer host.CloseAll()

	mux := rest.NewMux(log, host, rest.Limits{
		Rate:  middleware.NewRateLimiter(ctx, cfg.ScreenRate),
		Watch: cfg.WatchConcurrency,
	})

	server := http.Server{
		Addr:              cfg.HTTPConfig.Address,
		ReadHeaderTimeout: cfg.HTTPConfig.Timeout,
		Handler:           mux,
	}

	go func() {
		<-ctx.Done()
		log.Debug("shutting down catalog server")
		if err := server.Shutdown(context.Background()); err != nil {
			log.Error("erroneous shutdown", "error", err)
		}
	}()

	log.Info("running HTTP server", "address", cfg.HTTPConfig.Address, "comics_url", client.URL())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve: %w", err)
	}
	return nil
}

func mustMakeLogger(levelStr string) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "ERROR":
		level = slog.LevelError
	default:
		panic("unknown log level: " + levelStr)
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
