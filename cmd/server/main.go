// Package main is the entry point for the Rocketfin portfolio backend.
// It wires the database, market data client, module services and HTTP
// server, starts background maintenance jobs, and handles graceful
// shutdown.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketfin/rocketfin/internal/clients/yahoo"
	"github.com/rocketfin/rocketfin/internal/config"
	"github.com/rocketfin/rocketfin/internal/database"
	"github.com/rocketfin/rocketfin/internal/modules/instruments"
	instrumentshandlers "github.com/rocketfin/rocketfin/internal/modules/instruments/handlers"
	"github.com/rocketfin/rocketfin/internal/modules/ledger"
	ledgerhandlers "github.com/rocketfin/rocketfin/internal/modules/ledger/handlers"
	"github.com/rocketfin/rocketfin/internal/modules/portfolio"
	portfoliohandlers "github.com/rocketfin/rocketfin/internal/modules/portfolio/handlers"
	"github.com/rocketfin/rocketfin/internal/modules/trading"
	tradinghandlers "github.com/rocketfin/rocketfin/internal/modules/trading/handlers"
	"github.com/rocketfin/rocketfin/internal/reliability"
	"github.com/rocketfin/rocketfin/internal/scheduler"
	"github.com/rocketfin/rocketfin/internal/server"
	"github.com/rocketfin/rocketfin/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().Msg("Starting Rocketfin")

	// Database
	db, err := database.New(database.Config{
		Path:    cfg.DatabasePath(),
		Profile: database.ProfileLedger,
		Name:    "rocketfin",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	// Market data client
	quoteClient := yahoo.NewClient(cfg.YahooAPIURL, cfg.YahooAPIKey, cfg.QuoteTimeout, log)

	// Repositories
	positionRepo := portfolio.NewPositionRepository(db.Conn(), log)
	transactionRepo := ledger.NewTransactionRepository(db.Conn(), log)

	// Services
	portfolioService := portfolio.NewService(positionRepo, quoteClient, log)
	tradingService := trading.NewService(db, positionRepo, transactionRepo, quoteClient, log)
	instrumentsService := instruments.NewService(quoteClient, positionRepo, log)

	// HTTP server
	srv := server.New(server.Config{
		Log:    log,
		DB:     db,
		Config: cfg,
		Modules: []server.RouteRegistrar{
			portfoliohandlers.NewHandler(portfolioService, log),
			tradinghandlers.NewHandler(tradingService, log),
			ledgerhandlers.NewHandler(transactionRepo, log),
			instrumentshandlers.NewHandler(instrumentsService, log),
		},
	})

	// Background jobs
	sched := scheduler.New(log)

	maintenanceJob := reliability.NewMaintenanceJob(db, cfg.DataDir, log)
	if err := sched.AddJob("0 0 2 * * *", maintenanceJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to register maintenance job")
	}

	if cfg.Backup.Enabled() {
		s3Client, err := reliability.NewS3Client(context.Background(), cfg.Backup, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create backup client")
		}
		backupService := reliability.NewBackupService(db, s3Client, cfg.DataDir, log)
		backupJob := reliability.NewBackupJob(backupService, 30, log)
		if err := sched.AddJob(cfg.Backup.Schedule, backupJob); err != nil {
			log.Fatal().Err(err).Msg("Failed to register backup job")
		}
	} else {
		log.Info().Msg("Backups disabled, no bucket configured")
	}

	sched.Start()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down...")

	sched.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
