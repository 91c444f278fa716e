package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/varwatch/internal/clients/yahoo"
	"github.com/aristath/varwatch/internal/config"
	"github.com/aristath/varwatch/internal/database"
	"github.com/aristath/varwatch/internal/events"
	"github.com/aristath/varwatch/internal/modules/analysis"
	"github.com/aristath/varwatch/internal/modules/marketdata"
	"github.com/aristath/varwatch/internal/modules/portfolio"
	"github.com/aristath/varwatch/internal/scheduler"
	"github.com/aristath/varwatch/internal/server"
	"github.com/aristath/varwatch/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New(logger.Config{Level: "info", Pretty: true})
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().Msg("Starting varwatch")

	// Initialize price cache database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Core services
	eventManager := events.NewManager(log)
	yahooClient := yahoo.NewClient(log, cfg.FetchTimeout)
	cacheRepo := marketdata.NewCacheRepository(db.Conn(), log)
	marketDataService := marketdata.NewService(yahooClient, cacheRepo, cfg.CacheTTL, eventManager, log)
	portfolioService := portfolio.NewService(eventManager, log)
	analysisService := analysis.NewService(
		portfolioService,
		marketDataService,
		cfg.RiskFreeRate,
		cfg.SmoothingSpan,
		eventManager,
		log,
	)

	// Background jobs
	sched := scheduler.New(log)
	sched.Start()
	defer sched.Stop()

	sweepJob := marketdata.NewCacheSweepJob(cacheRepo, cfg.CacheTTL, eventManager, log)
	if err := sched.AddJob("@hourly", sweepJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to register cache sweep job")
	}

	// Sweep once at startup so a long-stopped instance does not serve stale rows.
	if err := sched.RunNow(sweepJob); err != nil {
		log.Warn().Err(err).Msg("Initial cache sweep failed")
	}

	// HTTP server
	srv := server.New(server.Config{
		Port:             cfg.Port,
		Log:              log,
		DevMode:          cfg.DevMode,
		PortfolioHandler: portfolio.NewHandler(portfolioService, log),
		AnalysisHandler:  analysis.NewHandler(analysisService, log),
		SystemHandlers:   server.NewSystemHandlers(log, marketDataService, portfolioService, sched),
	})

	// Start server in goroutine
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
