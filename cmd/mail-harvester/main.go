package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/jfmartin/mail-harvester/internal/core"
	"github.com/jfmartin/mail-harvester/internal/di"
)

func main() {
	// Build the dependency injection container
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	logger *zap.Logger,
	harvester *core.Harvester,
	summarizer core.Summarizer,
	store core.RecordStore,
) error {
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting mail harvester")
	err := harvester.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Harvester stopped", zap.Error(err))
	} else {
		logger.Info("Shutting down...")
		err = nil
	}

	// Close any resources that need closing
	if closer, ok := summarizer.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close summarizer", zap.Error(err))
		}
	}
	if closer, ok := store.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close record store", zap.Error(err))
		}
	}

	logger.Info("Shutdown complete")
	return err
}
