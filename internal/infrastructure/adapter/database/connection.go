package database

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	coreport "github.com/pulsefit/credit-ledger/internal/domain/port/core"
)

// Connection holds database connection and configuration
type Connection struct {
	DB     *gorm.DB
	Config *Config
}

// NewConnection establishes a new database connection with the given configuration
func NewConnection(config *Config, logger coreport.Logger) (*Connection, error) {
	// Validate configuration before connecting
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid database configuration: %w", err)
	}

	gormConfig := &gorm.Config{
		Logger: NewDatabaseLogger(logger, config.LogLevel),
	}

	db, err := gorm.Open(postgres.Open(config.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}

	sqlDB.SetMaxOpenConns(config.MaxOpenConns)
	sqlDB.SetMaxIdleConns(config.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(config.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(config.ConnMaxIdleTime)

	// Test the connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Connection{
		DB:     db,
		Config: config,
	}, nil
}

// NewConnectionWithRetry establishes a connection, retrying on transient
// startup failures such as the database container not being ready yet
func NewConnectionWithRetry(ctx context.Context, config *Config, logger coreport.Logger) (*Connection, error) {
	var conn *Connection
	var err error

	attempts := config.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		conn, err = NewConnection(config, logger)
		if err == nil {
			return conn, nil
		}

		if attempt == attempts {
			break
		}

		logger.Warn("Database connection failed, retrying", map[string]any{
			"attempt":     attempt,
			"max_retries": attempts,
			"error":       err.Error(),
			"retry_after": config.RetryDelay.String(),
		})

		select {
		case <-time.After(config.RetryDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", attempts, err)
}

// Close closes the database connection
func (c *Connection) Close() error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	return sqlDB.Close()
}

// Ping verifies the connection is still alive
func (c *Connection) Ping(ctx context.Context) error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
