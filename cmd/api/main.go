package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	accountUseCase "github.com/pulsefit/credit-ledger/internal/domain/usecase/account"
	ledgerUseCase "github.com/pulsefit/credit-ledger/internal/domain/usecase/ledger"

	"github.com/pulsefit/credit-ledger/internal/domain/port/events"
	"github.com/pulsefit/credit-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/pulsefit/credit-ledger/internal/infrastructure/adapter/api/routes"
	"github.com/pulsefit/credit-ledger/internal/infrastructure/adapter/database"
	"github.com/pulsefit/credit-ledger/internal/infrastructure/adapter/database/migration"
	"github.com/pulsefit/credit-ledger/internal/infrastructure/adapter/events/kafka"
	"github.com/pulsefit/credit-ledger/internal/infrastructure/adapter/logger"
	"github.com/pulsefit/credit-ledger/internal/infrastructure/adapter/repository"
	timeProvider "github.com/pulsefit/credit-ledger/internal/infrastructure/adapter/time"
	"github.com/pulsefit/credit-ledger/internal/infrastructure/config"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)

	dbConfig := &database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		QueryTimeout:    cfg.Database.QueryTimeout,
		LockTimeout:     time.Duration(cfg.Ledger.LockTimeoutMs) * time.Millisecond,
		LogLevel:        cfg.Logger.Level,
		RetryAttempts:   cfg.Database.RetryAttempts,
		RetryDelay:      cfg.Database.RetryDelay,
	}

	tp := timeProvider.NewRealTimeProvider()

	// Connect to the database
	conn, err := database.NewConnectionWithRetry(context.Background(), dbConfig, appLogger)
	if err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			appLogger.Error("Failed to close database connection", map[string]any{
				"error": err.Error(),
			})
		}
	}()

	// Run migrations
	migrationMgr := migration.NewMigrationManager(conn.DB, appLogger, tp)
	if err := migrationMgr.MigrateAll(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Repositories and unit of work
	accountRepo := repository.NewAccountRepository(conn.DB, tp, appLogger)
	ledgerRepo := repository.NewLedgerRepository(conn.DB, appLogger)
	uow := database.NewUnitOfWork(conn.DB, appLogger, tp, dbConfig.LockTimeout)

	// Optional entry feed publisher
	var publisher events.Publisher
	if cfg.Events.Enabled {
		kafkaPublisher := kafka.NewPublisher(cfg.Events.Brokers, cfg.Events.Topic, appLogger)
		defer func() {
			if err := kafkaPublisher.Close(); err != nil {
				appLogger.Error("Failed to close entry feed publisher", map[string]any{
					"error": err.Error(),
				})
			}
		}()
		publisher = kafkaPublisher
	}

	// Use cases
	policy := ledgerUseCase.Policy{
		MinTransferAmount: cfg.Ledger.MinTransferAmount,
		MaxTransferAmount: cfg.Ledger.MaxTransferAmount,
		MaxEntryDelta:     cfg.Ledger.MaxEntryDelta,
	}
	ledgerService := ledgerUseCase.NewService(uow, publisher, tp, appLogger, policy, cfg.Ledger.EventQueueSize)
	accountService := accountUseCase.NewUseCase(accountRepo, ledgerRepo, appLogger)

	// API handlers
	ledgerHandler := handler.NewLedgerHandler(ledgerService, appLogger)
	accountHandler := handler.NewAccountHandler(accountService, appLogger)

	router := gin.New()
	routes.SetupMiddlewares(router, appLogger)
	routes.SetupRoutes(router, ledgerHandler, accountHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"port": cfg.Server.Port,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Stop accepting requests first, then drain the entry event dispatcher
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	ledgerService.Shutdown(cfg.Server.ShutdownTimeout)

	if err := appLogger.Flush(); err != nil {
		log.Printf("Failed to flush logger: %v", err)
	}

	appLogger.Info("Server exited gracefully", nil)
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}
	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}
	if cfg.Server.WriteTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.writeTimeout")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	if cfg.Database.Host == "" {
		missingConfigs = append(missingConfigs, "database.host (or CL_DB_HOST environment variable)")
	}
	if cfg.Database.Username == "" {
		missingConfigs = append(missingConfigs, "database.username (or CL_DB_USERNAME environment variable)")
	}
	if cfg.Database.Password == "" {
		missingConfigs = append(missingConfigs, "database.password (or CL_DB_PASSWORD environment variable)")
	}
	if cfg.Database.Database == "" {
		missingConfigs = append(missingConfigs, "database.database (or CL_DB_NAME environment variable)")
	}
	if cfg.Database.QueryTimeout == 0 {
		missingConfigs = append(missingConfigs, "database.queryTimeout")
	}

	if cfg.Ledger.MinTransferAmount <= 0 {
		missingConfigs = append(missingConfigs, "ledger.minTransferAmount")
	}
	if cfg.Ledger.MaxTransferAmount <= 0 {
		missingConfigs = append(missingConfigs, "ledger.maxTransferAmount")
	}
	if cfg.Ledger.LockTimeoutMs == 0 {
		missingConfigs = append(missingConfigs, "ledger.lockTimeoutMs")
	}

	if cfg.Events.Enabled {
		if len(cfg.Events.Brokers) == 0 {
			missingConfigs = append(missingConfigs, "events.brokers")
		}
		if cfg.Events.Topic == "" {
			missingConfigs = append(missingConfigs, "events.topic")
		}
	}

	if cfg.Environment == "" {
		missingConfigs = append(missingConfigs, "environment")
	} else if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	if cfg.Logger.Level == "" {
		missingConfigs = append(missingConfigs, "logger.level")
	}

	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	if cfg.Ledger.MinTransferAmount > cfg.Ledger.MaxTransferAmount {
		return fmt.Errorf("ledger.minTransferAmount (%d) exceeds ledger.maxTransferAmount (%d)",
			cfg.Ledger.MinTransferAmount, cfg.Ledger.MaxTransferAmount)
	}

	return nil
}
