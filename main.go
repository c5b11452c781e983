package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/viper"

	"ordermgr/internal/app"
	"ordermgr/internal/config"
	"ordermgr/internal/database"
	"ordermgr/internal/services"
	"ordermgr/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Fatalf("Failed to load .env: %v", err)
	}
	cfg, err := config.Load(viper.New())
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.SetLevel(logLevel(cfg.LogLevel))

	// --- Database ---
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Errorf("Error closing database: %v", err)
		}
	}()
	log.Infow("Database ready", "driver", cfg.DBDriver)

	// --- Order events (optional) ---
	var publisher services.EventPublisher
	if cfg.EventsEnabled() {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.RabbitMQQueue})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		publisher = mqClient

		if err := mqClient.ConsumeOrderEvents(rabbitmq.LogOrderEvent); err != nil {
			log.Errorf("Failed to start RabbitMQ consumer: %v", err)
		}
	} else {
		log.Info("RABBITMQ_URL not set, order events are disabled")
	}

	application := app.New(db, app.Options{Publisher: publisher})

	// --- Start HTTP Server ---
	go func() {
		log.Infof("Starting server on %s", cfg.AppPort)
		if err := application.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := application.ShutdownWithContext(ctx); err != nil {
		log.Errorf("Error during Fiber shutdown: %v", err)
	}
	log.Info("Server gracefully stopped")
}

func logLevel(level string) log.Level {
	switch level {
	case "trace":
		return log.LevelTrace
	case "debug":
		return log.LevelDebug
	case "warn", "warning":
		return log.LevelWarn
	case "error":
		return log.LevelError
	default:
		return log.LevelInfo
	}
}
