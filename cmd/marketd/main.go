package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/saidafzal264-maker/Elevon-market/internal/ai"
	"github.com/saidafzal264-maker/Elevon-market/internal/catalog"
	"github.com/saidafzal264-maker/Elevon-market/internal/config"
	"github.com/saidafzal264-maker/Elevon-market/internal/db"
	"github.com/saidafzal264-maker/Elevon-market/internal/events"
	"github.com/saidafzal264-maker/Elevon-market/internal/httpapi"
	"github.com/saidafzal264-maker/Elevon-market/internal/order"
)

func main() {
	cfg := config.Load()
	logger := log.New(os.Stdout, "", log.LstdFlags|log.Lmicroseconds)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- DB ---
	pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.RunMigrations(cfg.DatabaseDSN, logger); err != nil {
			logger.Fatalf("db migrate: %v", err)
		}
	}

	catalogRepo := catalog.NewPostgresRepository(pool)
	orderRepo := order.NewPostgresRepository(pool)

	// --- AMQP ---
	conn := events.MustDialRabbit(cfg.RabbitURL)
	defer conn.Close()

	publisher, err := events.NewPublisher(conn)
	if err != nil {
		logger.Fatalf("amqp publisher: %v", err)
	}
	defer publisher.Close()

	// --- AI ---
	matcher := ai.NewClient(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel, &http.Client{
		Timeout: cfg.GeminiTimeout,
	})

	// --- HTTP ---
	r := httpapi.NewRouter(httpapi.Deps{
		Logger:           logger,
		Catalog:          catalogRepo,
		Orders:           orderRepo,
		Matcher:          matcher,
		Publisher:        publisher,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
	})

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		logger.Printf("http listening on %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// --- graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Printf("shutdown signal: %s", sig)
	case err := <-errCh:
		logger.Printf("fatal error: %v", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = httpServer.Shutdown(shutdownCtx)
	cancel()

	logger.Printf("shutdown complete")
}
