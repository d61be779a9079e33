package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/investboard/investboard/internal/config"
	"github.com/investboard/investboard/internal/database"
	"github.com/investboard/investboard/internal/events"
	"github.com/investboard/investboard/internal/modules/ledger"
	"github.com/investboard/investboard/internal/modules/market"
	"github.com/investboard/investboard/internal/modules/positions"
	"github.com/investboard/investboard/internal/modules/valuation"
	"github.com/investboard/investboard/internal/scheduler"
	"github.com/investboard/investboard/internal/server"
	"github.com/investboard/investboard/pkg/logger"
)

func main() {
	// Bootstrap logger, reconfigured once the config is loaded
	log := logger.New(logger.Config{Level: "info"})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log = logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().Msg("Starting Investboard engine")

	// Initialize database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	// Run migrations
	if err := positions.InitSchema(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to create positions schema")
	}
	if err := ledger.InitSchema(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to create ledger schema")
	}

	eventManager := events.NewManager(log)

	// Repositories
	positionRepo := positions.NewRepository(db, log)
	ledgerRepo := ledger.NewRepository(db, log)

	// Price feed, seeded from whatever the store already holds
	feed := market.NewFeed(cfg.PriceDriftBound, randomSource(cfg.RandomSeed), log)
	existing, err := positionRepo.List()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load positions")
	}
	for _, p := range existing {
		feed.Seed(p.ID, p.PurchasePrice)
	}

	// Services and handlers
	positionService := positions.NewService(positionRepo, feed, ledgerRepo, eventManager, log)
	positionHandler := positions.NewHandler(positionService, log)
	marketHandler := market.NewHandler(feed, log)
	ledgerHandler := ledger.NewHandler(ledgerRepo, log)
	valuationHandler := valuation.NewHandler(positionRepo, feed, log)

	// Scheduler with the price tick job
	sched := scheduler.New(log)
	tickSchedule := fmt.Sprintf("@every %s", cfg.TickInterval)
	if err := sched.AddJob(tickSchedule, market.NewTickJob(feed, eventManager)); err != nil {
		log.Fatal().Err(err).Msg("Failed to register price tick job")
	}
	sched.Start()
	defer sched.Stop()

	// Initialize HTTP server
	srv := server.New(server.Config{
		Port:         cfg.Port,
		Log:          log,
		DevMode:      cfg.DevMode,
		Positions:    positionHandler,
		Market:       marketHandler,
		Ledger:       ledgerHandler,
		Valuation:    valuationHandler,
		Store:        positionRepo,
		Transactions: ledgerRepo,
	})

	// Start server in goroutine
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().
		Int("port", cfg.Port).
		Str("database", db.Path()).
		Dur("tick_interval", cfg.TickInterval).
		Float64("drift_bound", cfg.PriceDriftBound).
		Msg("Server started successfully")

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

// randomSource builds the drift source: seeded for reproducible runs,
// time-seeded otherwise.
func randomSource(seed uint64) rand.Source {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.NewPCG(seed, seed)
}
