package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tollgate-backend/config"
	"tollgate-backend/internal/api"
	"tollgate-backend/internal/calendar"
	"tollgate-backend/internal/db"
	"tollgate-backend/internal/holiday"
	"tollgate-backend/internal/store"
	"tollgate-backend/internal/tariff"
	"tollgate-backend/internal/toll"
)

func main() {
	// Setup logger
	logger := log.New(os.Stdout, "tollgate-backend ", log.LstdFlags)

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	loc, err := time.LoadLocation(cfg.Toll.Timezone)
	if err != nil {
		logger.Fatalf("failed to load timezone %q: %v", cfg.Toll.Timezone, err)
	}

	// Load and validate the tariff table. A broken tariff set must prevent
	// startup rather than be served.
	tariffTable, err := tariff.Load(cfg.Toll.TariffPath, loc)
	if err != nil {
		logger.Fatalf("failed to load tariff table from %s: %v", cfg.Toll.TariffPath, err)
	}
	logger.Printf("tariff table loaded with %d rules", len(tariffTable.Rules()))

	// Initialize database
	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	appStore := store.NewGormStore(gormDB)
	logger.Println("audit store initialized")

	// Wire the calculation path: holiday oracle -> calendar classifier ->
	// toll calculator.
	holidayClient := holiday.NewClient(&cfg.Holidays)
	classifier := calendar.NewClassifier(holidayClient, time.Month(cfg.Toll.TollFreeMonth))
	calculator := toll.NewCalculator(classifier, tariffTable, loc, cfg.Toll.Window, cfg.Toll.DailyCapSek)

	// Initialize router
	router := api.NewRouter(&cfg.Server, calculator, appStore)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received.
	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	// Create a deadline to wait for.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
