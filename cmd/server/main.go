package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/espaceform/formation_portal/internal/app"
	"github.com/espaceform/formation_portal/internal/config"
	"github.com/espaceform/formation_portal/internal/controller/httpapi"
	"github.com/espaceform/formation_portal/internal/repository"
	"github.com/espaceform/formation_portal/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting formation portal",
		zap.String("environment", cfg.Environment),
		zap.String("http_addr", cfg.HTTPAddr))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	feed := app.NewChangeFeed(pool, logger)
	feed.Start(ctx)
	defer feed.Stop()

	scheduleRepo := repository.NewScheduleRepository(pool)
	slotRepo := repository.NewSlotRepository(pool)
	formationRepo := repository.NewFormationRepository(pool)
	moduleRepo := repository.NewModuleRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	schedules := service.NewScheduleService(
		scheduleRepo, slotRepo, formationRepo, moduleRepo, userRepo, feed, logger)
	importer := service.NewImportService(schedules, logger)

	router := httpapi.NewRouter(&httpapi.Handler{
		Schedules: schedules,
		Importer:  importer,
		Feed:      feed,
		Logger:    logger,
	})

	go func() {
		if err := router.Listen(cfg.HTTPAddr); err != nil {
			logger.Fatal("HTTP server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	if err := router.Shutdown(); err != nil {
		logger.Error("HTTP shutdown failed", zap.Error(err))
	}
}
