package persistence

import (
	"context"

	"github.com/pulsefit/credit-ledger/internal/domain/entity"
)

// AccountRepository defines the account store: the current-balance projection,
// written only by the transaction processor under the per-account lock.
type AccountRepository interface {
	// GetByID retrieves an account without locking it, for read-only callers
	//
	// Possible errors:
	// - ErrAccountNotFound: if no account exists for the user
	// - ErrDatabaseConnection: if the database is unreachable
	GetByID(ctx context.Context, userID string) (*entity.Account, error)

	// GetForUpdate acquires the exclusive per-account lock and returns the
	// current projection. If the account does not exist it is created at
	// balance 0, version 0 inside the same locked unit of work, so the
	// check-and-create race cannot occur. The lock is held until the
	// enclosing unit of work commits or rolls back.
	//
	// Possible errors:
	// - ErrAccountFrozen / ErrAccountSuspended: if the status forbids mutation
	// - ErrLockTimeout: if the row lock could not be acquired in time
	// - ErrDatabaseConnection: if the database is unreachable
	GetForUpdate(ctx context.Context, userID string) (*entity.Account, error)

	// ApplyDelta persists the mutated projection (balance, version, counters,
	// last entry reference) within the unit of work that holds the lock from
	// GetForUpdate. No other code path may write the balance.
	//
	// Possible errors:
	// - ErrAccountNotFound: if the row disappeared (should not happen under lock)
	// - ErrDatabaseConnection: if the database is unreachable
	ApplyDelta(ctx context.Context, account *entity.Account) error

	// SetStatus updates the account status under the per-account lock. Used by
	// the administrative override path (fraud detection freezes, support
	// reactivation).
	//
	// Possible errors:
	// - ErrAccountNotFound: if no account exists for the user
	// - ErrDatabaseConnection: if the database is unreachable
	SetStatus(ctx context.Context, userID string, status entity.AccountStatus) error
}
