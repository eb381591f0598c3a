package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	coreport "github.com/pulsefit/credit-ledger/internal/domain/port/core"
	"github.com/pulsefit/credit-ledger/internal/domain/port/persistence"
	"github.com/pulsefit/credit-ledger/internal/infrastructure/adapter/repository"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

// Context keys
const txKey contextKey = "tx"

// UnitOfWork implements the unit-of-work pattern over a database transaction.
// Every ledger mutation — the locked account read-modify-write plus the entry
// append, and for transfers both legs — runs inside one of these.
type UnitOfWork struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
	lockTimeout  time.Duration
}

// NewUnitOfWork creates a new UnitOfWork instance. lockTimeout bounds how
// long a caller blocks waiting for an account row lock before the engine
// surfaces a retryable lock-timeout.
func NewUnitOfWork(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider, lockTimeout time.Duration) persistence.UnitOfWork {
	return &UnitOfWork{
		db:           db,
		logger:       logger,
		timeProvider: timeProvider,
		lockTimeout:  lockTimeout,
	}
}

// Begin starts a new database transaction and stores it in the context
func (u *UnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		u.logger.Error("Failed to begin transaction", map[string]any{"error": tx.Error.Error()})
		return ctx, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	// Bound row-lock waits so contended callers get a retryable timeout
	// instead of queueing forever
	if u.lockTimeout > 0 {
		timeout := fmt.Sprintf("%dms", u.lockTimeout.Milliseconds())
		if err := tx.Exec("SET LOCAL lock_timeout = '" + timeout + "'").Error; err != nil {
			tx.Rollback()
			u.logger.Error("Failed to set lock timeout", map[string]any{"error": err.Error()})
			return ctx, fmt.Errorf("failed to set lock timeout: %w", err)
		}
	}

	return context.WithValue(ctx, txKey, tx), nil
}

// Commit commits the transaction in the given context
func (u *UnitOfWork) Commit(ctx context.Context) error {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok || tx == nil {
		return fmt.Errorf("no transaction found in context")
	}

	if err := tx.Commit().Error; err != nil {
		u.logger.Error("Failed to commit transaction", map[string]any{"error": err.Error()})
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback rolls back the transaction in the given context. Rolling back a
// transaction that already finished is not an error.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok || tx == nil {
		return fmt.Errorf("no transaction found in context")
	}

	err := tx.Rollback().Error
	if err != nil && strings.Contains(err.Error(), "already been committed or rolled back") {
		return nil
	}
	if err != nil {
		u.logger.Error("Failed to rollback transaction", map[string]any{"error": err.Error()})
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

// GetAccountRepository returns an account repository bound to the current
// transaction, or to the base connection when no transaction is in flight
func (u *UnitOfWork) GetAccountRepository(ctx context.Context) persistence.AccountRepository {
	return repository.NewAccountRepository(u.getDbFromContext(ctx), u.timeProvider, u.logger)
}

// GetLedgerRepository returns a ledger repository bound to the current
// transaction, or to the base connection when no transaction is in flight
func (u *UnitOfWork) GetLedgerRepository(ctx context.Context) persistence.LedgerRepository {
	return repository.NewLedgerRepository(u.getDbFromContext(ctx), u.logger)
}

// getDbFromContext retrieves the transaction from context, falling back to
// the base connection
func (u *UnitOfWork) getDbFromContext(ctx context.Context) *gorm.DB {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if ok && tx != nil {
		return tx
	}
	return u.db.WithContext(ctx)
}
