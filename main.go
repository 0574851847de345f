package main

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/filebright/filebright-backend/config"
	"github.com/filebright/filebright-backend/handlers"
	"github.com/filebright/filebright-backend/internal/ocr"
	"github.com/filebright/filebright-backend/internal/storage"
	"github.com/filebright/filebright-backend/internal/store/postgres"
	"github.com/filebright/filebright-backend/logger"
	"github.com/filebright/filebright-backend/router"
	"github.com/filebright/filebright-backend/services"
)

func main() {
	logger.InitLogger()
	log := logger.GetLogger()
	defer logger.Close()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := connectDatabase(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	files, err := buildFileStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize file storage: %v", err)
	}

	extractor := ocr.NewClient(ocr.Config{
		Endpoint:     cfg.OCR.Endpoint,
		APIKey:       cfg.OCR.APIKey,
		PollInterval: time.Duration(cfg.OCR.PollIntervalSeconds) * time.Second,
		MaxPolls:     cfg.OCR.MaxPolls,
	})

	docStore := postgres.NewDocumentStore(pool)
	documentService := services.NewDocumentService(docStore, files, extractor)
	calculationService := services.NewCalculationService(docStore)

	r := router.SetupRouter(router.Dependencies{
		Config:          cfg,
		HealthHandler:   handlers.NewHealthHandler(pool, cfg.Server.Version),
		DocumentHandler: handlers.NewDocumentHandler(documentService),
		TaxHandler:      handlers.NewTaxHandler(calculationService),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Server shutdown failed", "error", err)
	}
}

func connectDatabase(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL())
	if err != nil {
		return nil, err
	}
	if cfg.Database.MaxConns > 0 {
		poolConfig.MaxConns = int32(cfg.Database.MaxConns)
	}
	if cfg.Server.Environment == config.EnvProduction {
		poolConfig.ConnConfig.TLSConfig = &tls.Config{
			ServerName: cfg.Database.Host,
			MinVersion: tls.VersionTLS12,
		}
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		if cfg.Server.Environment == config.EnvProduction {
			pool.Close()
			return nil, err
		}
		logger.GetLogger().Warnw("Database is not reachable, continuing anyway", "error", err)
	}
	return pool, nil
}

func buildFileStorage(ctx context.Context, cfg *config.Config) (storage.FileStorage, error) {
	switch cfg.Storage.Backend {
	case "s3":
		return storage.NewS3FileStorage(ctx, storage.S3Config{
			Region:          cfg.Storage.S3Region,
			Bucket:          cfg.Storage.S3Bucket,
			Endpoint:        cfg.Storage.S3Endpoint,
			AccessKeyID:     cfg.Storage.S3AccessKeyID,
			SecretAccessKey: cfg.Storage.S3SecretAccessKey,
		})
	default:
		return storage.NewLocalFileStorage(cfg.Storage.LocalPath), nil
	}
}
