package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"hobbykit/internal/api"
	"hobbykit/internal/auth"
	"hobbykit/internal/config"
	"hobbykit/internal/database"
	"hobbykit/internal/logger"
	"hobbykit/internal/media"
	"hobbykit/internal/server"
	"hobbykit/internal/store"
)

func main() {
	logger.SetDefault(logger.New())

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := database.New(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("database error: %v", err)
	}
	defer db.Close()

	authProvider := auth.NewSupabase(cfg.AuthBaseURL, cfg.AuthAPIKey)

	var mediaSvc media.Service
	if cfg.MediaEnabled() {
		initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		mediaSvc, err = media.New(initCtx, media.Config{
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3BucketName,
			UseSSL:    cfg.S3UseSSL,
		})
		cancel()
		if err != nil {
			slog.Warn("Media storage unavailable, upload endpoints disabled", "error", err)
			mediaSvc = nil
		}
	} else {
		slog.Info("Media storage not configured, upload endpoints disabled")
	}

	handler := api.NewHandler(store.NewPostgres(db), authProvider, mediaSvc, db)
	srv := server.New(cfg, api.NewRouter(handler, cfg.CORSAllowOrigins))

	go func() {
		slog.Info("Server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	slog.Info("Server stopped")
}
