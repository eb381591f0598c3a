package persistence

import (
	"context"

	"github.com/pulsefit/credit-ledger/internal/domain/entity"
)

// LedgerRepository defines the append-only ledger log, the single source of
// truth for every balance-affecting event. The public contract has no update
// or delete: entries are immutable forever.
type LedgerRepository interface {
	// Append persists a new ledger entry.
	//
	// Possible errors:
	// - ErrDuplicateIdempotencyKey: if an entry with the same
	//   (user_id, idempotency_key) already exists; callers treat this as
	//   success-by-replay, not as a failure
	// - ErrDatabaseConnection: if the database is unreachable
	Append(ctx context.Context, entry *entity.LedgerEntry) error

	// FindByIdempotencyKey returns the entry recorded for (userID, key), or
	// ErrEntryNotFound if the operation has never been applied. This is the
	// exactly-once lookup and requires no locking.
	FindByIdempotencyKey(ctx context.Context, userID, key string) (*entity.LedgerEntry, error)

	// ListByUser returns the most recent entries for a user, newest first,
	// up to limit. Read-only; feeds statements and the fraud subscriber's
	// backfill.
	ListByUser(ctx context.Context, userID string, limit int) ([]*entity.LedgerEntry, error)
}
