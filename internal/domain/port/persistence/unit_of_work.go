package persistence

import (
	"context"
)

// UnitOfWork coordinates the atomic boundary around ledger mutations: the
// locked read-modify-write of the account projection plus the ledger append
// commit or roll back together. A transfer wraps both legs in one unit.
type UnitOfWork interface {
	// Begin starts a new unit of work and returns a context carrying it
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the unit of work in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the unit of work in the given context
	Rollback(ctx context.Context) error

	// GetAccountRepository returns an account repository bound to the current
	// unit of work
	GetAccountRepository(ctx context.Context) AccountRepository

	// GetLedgerRepository returns a ledger repository bound to the current
	// unit of work
	GetLedgerRepository(ctx context.Context) LedgerRepository
}
