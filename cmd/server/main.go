package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jmolenaar/etf-tracker-backend/internal/api"
	"github.com/jmolenaar/etf-tracker-backend/internal/config"
	"github.com/jmolenaar/etf-tracker-backend/internal/database"
	"github.com/jmolenaar/etf-tracker-backend/internal/repository"
	"github.com/jmolenaar/etf-tracker-backend/internal/service"
	"github.com/jmolenaar/etf-tracker-backend/internal/yahoo"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Create repositories
	etfRepo := repository.NewETFRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	yahooClient := yahoo.NewFinanceClient(cfg.Prices.TickerOverrides)
	etfService := service.NewETFService(etfRepo, transactionRepo)
	transactionService := service.NewTransactionService(transactionRepo, etfRepo)
	priceService := service.NewPriceService(etfRepo, quoteRepo, yahooClient)
	portfolioService := service.NewPortfolioService(etfRepo, transactionService, priceService)

	// Create router
	router := api.NewRouter(systemService, etfService, transactionService, portfolioService, priceService, cfg)

	// Scheduled background price refresh
	scheduler := cron.New()
	if cfg.Prices.RefreshSchedule != "" {
		_, err := scheduler.AddFunc(cfg.Prices.RefreshSchedule, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()

			result, err := priceService.RefreshAll(ctx)
			if err != nil {
				log.Printf("Scheduled price refresh failed: %v", err)
				return
			}
			log.Printf("Scheduled price refresh: %d updated, %d failed", len(result.Updated), len(result.Failed))
		})
		if err != nil {
			log.Fatalf("Invalid price refresh schedule %q: %v", cfg.Prices.RefreshSchedule, err)
		}
		scheduler.Start()
		log.Printf("Price refresh scheduled: %s", cfg.Prices.RefreshSchedule)
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Stop the scheduler and wait for a running refresh to finish
	<-scheduler.Stop().Done()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
