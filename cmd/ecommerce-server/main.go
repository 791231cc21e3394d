package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"ecommerce-backend/internal/api"
	"ecommerce-backend/pkg/db"
	"ecommerce-backend/pkg/logger"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	log := logger.New(logger.Options{
		Service: "ecommerce-server",
		Level:   os.Getenv("LOG_LEVEL"),
	})

	cfg, err := db.LoadConfig()
	if err != nil {
		log.Error("config", slog.Any("err", err))
		os.Exit(1)
	}

	client, err := db.NewMongoConnection(context.Background(), cfg)
	if err != nil {
		log.Error("mongo connect", slog.Any("err", err))
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	}()

	handler, err := api.NewRouter(client.Database(cfg.Database), log)
	if err != nil {
		log.Error("router", slog.Any("err", err))
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("http shutdown", slog.Any("err", err))
		}
		close(idleConnsClosed)
	}()

	log.Info("starting ecommerce-server", slog.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("listen", slog.Any("err", err))
		os.Exit(1)
	}

	<-idleConnsClosed
	log.Info("server stopped")
}
