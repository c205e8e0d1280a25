package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/swiss-system/brackets"
	"github.com/Dosada05/swiss-system/config"
	"github.com/Dosada05/swiss-system/db"
	"github.com/Dosada05/swiss-system/handlers"
	"github.com/Dosada05/swiss-system/metrics"
	"github.com/Dosada05/swiss-system/repositories"
	api "github.com/Dosada05/swiss-system/routes"
	"github.com/Dosada05/swiss-system/services"
	"github.com/Dosada05/swiss-system/storage"
	"github.com/Dosada05/swiss-system/tracing"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/urfave/cli/v2"
)

const serviceName = "swiss-system"

// @title Swiss System Tournament API
// @version 1.0
// @description Регистрация игроков, результаты матчей, турнирная таблица и пары по швейцарской системе.
// @BasePath /
func main() {
	app := &cli.App{
		Name:  serviceName,
		Usage: "Swiss-system tournament server",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the HTTP API",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "migrate", Value: true, Usage: "apply the schema before serving"},
				},
				Action: func(c *cli.Context) error {
					return serve(c.Context, c.Bool("migrate"))
				},
			},
			{
				Name:  "migrate",
				Usage: "apply the database schema and exit",
				Action: func(c *cli.Context) error {
					return migrate(c.Context)
				},
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("application failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// setup загружает конфигурацию и настраивает логгер.
func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func openDB(ctx context.Context, cfg *config.Config, logger *slog.Logger, applySchema bool) (*sql.DB, error) {
	dbConn, err := db.Connect(cfg.DatabaseDriver, cfg.DatabaseURL, db.Options{
		ConnectTimeout: cfg.DBConnectTimeout,
		MaxOpenConns:   cfg.DBMaxOpenConns,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	logger.Info("database connection established", slog.String("driver", cfg.DatabaseDriver))

	if applySchema {
		if err := db.Migrate(ctx, dbConn, cfg.DatabaseDriver); err != nil {
			dbConn.Close()
			return nil, fmt.Errorf("failed to apply schema: %w", err)
		}
		logger.Info("database schema applied")
	}
	return dbConn, nil
}

func migrate(ctx context.Context) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	dbConn, err := openDB(ctx, cfg, logger, true)
	if err != nil {
		return err
	}
	return dbConn.Close()
}

func serve(parent context.Context, applySchema bool) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Подключение к базе данных
	dbConn, err := openDB(ctx, cfg, logger, applySchema)
	if err != nil {
		return err
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()

	shutdownTracing, err := tracing.Setup(ctx, serviceName, cfg.OTelEndpoint)
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer func() {
		tctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(tctx); err != nil {
			logger.Error("failed to flush traces", slog.Any("error", err))
		}
	}()

	// Инициализация загрузчика файлов (Cloudflare R2), только если архив настроен
	var uploader storage.FileUploader
	if cfg.ArchiveEnabled() {
		uploader, err = storage.NewCloudflareR2Uploader(ctx, storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize Cloudflare R2 uploader: %w", err)
		}
		logger.Info("Cloudflare R2 uploader initialized", slog.String("bucket", cfg.R2BucketName))
	} else {
		logger.Info("standings archive disabled: R2 is not configured")
	}

	// Инициализация WebSocket Hub
	wsHub := brackets.NewHub(logger)
	go wsHub.Run(ctx)
	logger.Info("WebSocket Hub started")

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(dbConn, cfg.DatabaseDriver),
	)

	// Инициализация репозиториев
	dialect := repositories.Dialect(cfg.DatabaseDriver)
	playerRepo := repositories.NewPlayerRepository(dbConn, dialect)
	matchRepo := repositories.NewMatchRepository(dbConn, dialect)

	// Инициализация сервисов
	tournamentService := services.NewTournamentService(
		dbConn, // Pass dbConn for transaction management
		dialect,
		playerRepo,
		matchRepo,
		brackets.NewSwissGenerator(),
		wsHub,
		metrics.NewPrometheus(registry),
		logger,
	)
	archiveService := services.NewArchiveService(tournamentService, uploader, wsHub, logger)
	dashboardService := services.NewDashboardService(playerRepo, matchRepo)
	logger.Info("Services initialized")

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		api.Options{AllowedOrigins: cfg.AllowedOrigins, Gatherer: registry, Health: dbConn},
		handlers.NewPlayerHandler(tournamentService),
		handlers.NewMatchHandler(tournamentService),
		handlers.NewStandingsHandler(tournamentService, archiveService),
		handlers.NewDashboardHandler(dashboardService),
		handlers.NewWebSocketHandler(wsHub, cfg.AllowedOrigins),
	)
	logger.Info("Routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		logger.Info("server stopped gracefully")
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", cfg.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			// If shutdown fails, force close.
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			return err
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
	return nil
}
