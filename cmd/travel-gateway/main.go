package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 30 * time.Second

func main() {
	root, err := NewCompositionRoot()
	if err != nil {
		fmt.Printf("Failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	defer func() {
		if err := root.Cleanup(); err != nil {
			root.Logger.Error("Failed to cleanup resources", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root.StartBackgroundTasks()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(root.HTTPServer.Start)
	g.Go(root.MetricsServer.Start)

	g.Go(func() error {
		<-gCtx.Done()
		root.Logger.Info("Shutting down servers...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := root.HTTPServer.Stop(shutdownCtx); err != nil {
			root.Logger.Error("HTTP server forced to shutdown", zap.Error(err))
		}
		if err := root.MetricsServer.Stop(shutdownCtx); err != nil {
			root.Logger.Error("Metrics server forced to shutdown", zap.Error(err))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		root.Logger.Error("Server failed", zap.Error(err))
	}

	root.Logger.Info("Server exited")
}
