package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"listloop-server/configs"
	"listloop-server/internal/ai/planner"
	httpEngine "listloop-server/internal/app/http"
	"listloop-server/internal/realtime"
	"listloop-server/internal/repositories"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "c", "", "Path to config file (short)")
	flag.StringVar(&configPath, "config", "", "Path to config file (long)")
	flag.Parse()

	if err := configs.Init(&configPath); err != nil {
		panic(err)
	}
	configs.Logger.Info("Configuration loaded.",
		zap.String("configPath", configPath),
	)

	// Initialize repositories (Postgres, Redis)
	repositories.Init()

	broker := realtime.NewRedisBroker(repositories.DBS.Redis)

	p, err := planner.NewGoogleAI(context.Background(),
		configs.Configs.Gemini.ApiKey,
		configs.Configs.Gemini.Model,
		configs.Logger)
	if err != nil {
		configs.Logger.Fatal("Failed to create planner", zap.Error(err))
	}

	// Create HTTP server and run it in a separate goroutine.
	httpServer := httpEngine.NewServer(broker, p)
	go func() {
		if err := httpServer.Start(); err != nil {
			if err.Error() != "http: Server closed" {
				configs.Logger.Fatal("HTTP server error", zap.Error(err))
			}
		}
	}()

	// Wait for a shutdown signal.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	configs.Logger.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		configs.Logger.Error("HTTP server shutdown error", zap.Error(err))
	} else {
		configs.Logger.Info("HTTP server shutdown gracefully")
	}

	if err := broker.Close(); err != nil {
		configs.Logger.Error("Broker close error", zap.Error(err))
	}

	configs.Logger.Info("Server exited")
}
