package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/pulsefit/credit-ledger/internal/domain/entity"
	errs "github.com/pulsefit/credit-ledger/internal/domain/error"
	"github.com/pulsefit/credit-ledger/internal/domain/port/persistence"
)

// IdempotencyGuard answers whether a (user, key) mutation has already been
// applied. The processor consults it before acquiring any lock, so duplicate
// retries never contend for locks at all.
type IdempotencyGuard struct {
	ledgerRepo persistence.LedgerRepository
}

// NewIdempotencyGuard creates a new IdempotencyGuard
func NewIdempotencyGuard(ledgerRepo persistence.LedgerRepository) *IdempotencyGuard {
	return &IdempotencyGuard{
		ledgerRepo: ledgerRepo,
	}
}

// Check looks up the recorded entry for (userID, key).
// Returns the entry and true when the operation was already applied, (nil,
// false) when it is new to the ledger.
func (g *IdempotencyGuard) Check(
	ctx context.Context,
	userID string,
	key string,
) (*entity.LedgerEntry, bool, error) {
	entry, err := g.ledgerRepo.FindByIdempotencyKey(ctx, userID, key)
	if err != nil {
		if errors.Is(err, errs.ErrEntryNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to check idempotency key: %w", err)
	}
	return entry, true, nil
}
