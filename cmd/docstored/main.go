package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kestrelsoft/docstore/conversions"
	"github.com/kestrelsoft/docstore/internal/infrastructure/config"
	"github.com/kestrelsoft/docstore/internal/infrastructure/logging"
	"github.com/kestrelsoft/docstore/internal/infrastructure/server"
	"github.com/kestrelsoft/docstore/mapping"
)

func main() {
	cfg := config.LoadOrDefault()

	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		OutputPaths: []string{"stdout"},
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	var skip []conversions.TypePair
	if cfg.Registry.ManifestPath != "" {
		manifest, err := config.LoadManifest(cfg.Registry.ManifestPath)
		if err != nil {
			logger.Fatal("Failed to load registry manifest", zap.Error(err))
		}
		skip, err = manifest.SkipPairs()
		if err != nil {
			logger.Fatal("Failed to resolve manifest pairs", zap.Error(err))
		}
	}

	conv, err := conversions.New(conversions.Config{
		Store:        mapping.DefaultStore(),
		SkipDefaults: skip,
		Logger:       logger.Logger,
	})
	if err != nil {
		logger.Fatal("Failed to build conversion registry", zap.Error(err))
	}

	srv := server.New(cfg, conv, logger)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Run(); err != nil {
			errChan <- err
		}
	}()

	select {
	case <-sigChan:
		logger.Info("Shutting down gracefully")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Close(ctx); err != nil {
			logger.Error("Error during shutdown", zap.Error(err))
		}
	case err := <-errChan:
		logger.Fatal("Server error", zap.Error(err))
	}
}
