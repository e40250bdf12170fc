// Command eco-server serves the ecotray HTTP API.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rshade/ecotray/internal/config"
	"github.com/rshade/ecotray/internal/logging"
	"github.com/rshade/ecotray/internal/metrics"
	"github.com/rshade/ecotray/internal/server"
)

func main() {
	listen := flag.String("listen", ":8080", "Address to listen on")
	configPath := flag.String("config", "", "Path to config YAML (default $"+config.PathEnvVar+")")
	flag.Parse()

	logger := logging.New(os.Stderr, logging.OptionsFromEnv("eco-server"))

	path := *configPath
	if path == "" {
		path = os.Getenv(config.PathEnvVar)
	}
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	srv, err := server.New(cfg, logger, metrics.NewRecorder())
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if path != "" {
		go func() {
			err := config.Watch(ctx, path, logger, func(next *config.Config) {
				if err := srv.Reload(next); err != nil {
					logger.Error().Err(err).Msg("Config rejected; keeping previous config")
				}
			})
			if err != nil {
				logger.Error().Err(err).Str("path", path).Msg("Config watch stopped")
			}
		}()
	}

	httpServer := &http.Server{
		Addr:              *listen,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	shutdownDone := make(chan struct{})
	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("Shutdown failed")
		}
		close(shutdownDone)
	}()

	logger.Info().Str("addr", *listen).Msg("Starting eco server")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("Server failed")
	}
	<-shutdownDone
	logger.Info().Msg("Server stopped")
}
