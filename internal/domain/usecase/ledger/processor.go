package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pulsefit/credit-ledger/internal/domain/entity"
	errs "github.com/pulsefit/credit-ledger/internal/domain/error"
	coreport "github.com/pulsefit/credit-ledger/internal/domain/port/core"
	"github.com/pulsefit/credit-ledger/internal/domain/port/persistence"
	"github.com/pulsefit/credit-ledger/internal/domain/port/usecase"
)

// Processor applies exactly one signed delta to exactly one account, exactly
// once per idempotency key, regardless of retries. It is the primitive every
// other mutation builds on.
type Processor struct {
	uow          persistence.UnitOfWork
	guard        *IdempotencyGuard
	validator    *Validator
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	dispatcher   *EntryDispatcher

	// newEntryID generates ledger entry identifiers; replaceable in tests
	newEntryID func() string
}

// NewProcessor creates a new transaction processor
func NewProcessor(
	uow persistence.UnitOfWork,
	guard *IdempotencyGuard,
	validator *Validator,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Processor {
	return &Processor{
		uow:          uow,
		guard:        guard,
		validator:    validator,
		timeProvider: timeProvider,
		logger:       logger,
		newEntryID:   uuid.NewString,
	}
}

// WithDispatcher attaches the async entry-event dispatcher. Committed entries
// are handed to it after the unit of work commits.
func (p *Processor) WithDispatcher(dispatcher *EntryDispatcher) *Processor {
	p.dispatcher = dispatcher
	return p
}

// Apply runs the full single-account mutation:
//  1. Pre-lock idempotency check; a known key replays the recorded outcome
//     without touching the account store.
//  2. Locked get-or-create of the account projection.
//  3. Non-negativity check; append entry; update projection.
//
// Steps 2-3 execute as one atomic unit; any failure rolls back everything.
func (p *Processor) Apply(ctx context.Context, req usecase.ApplyRequest) (*usecase.ApplyResult, error) {
	if err := p.validator.ValidateApply(req); err != nil {
		return nil, fmt.Errorf("invalid apply request: %w", err)
	}

	// Duplicate retries short-circuit here and never contend for locks
	if entry, found, err := p.guard.Check(ctx, req.UserID, req.IdempotencyKey); err != nil {
		return nil, err
	} else if found {
		p.logger.Debug("Replaying recorded ledger entry for duplicate request", map[string]any{
			"user_id":         req.UserID,
			"idempotency_key": req.IdempotencyKey,
			"entry_id":        entry.EntryID,
		})
		return replayResult(entry), nil
	}

	txCtx, err := p.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}

	result, entry, err := p.applyLocked(txCtx, req)
	if err != nil {
		_ = p.uow.Rollback(txCtx)

		// Lost the race between the pre-lock check and the append: another
		// writer committed the same key first. Replay its recorded outcome.
		if errors.Is(err, errs.ErrDuplicateIdempotencyKey) {
			return p.replayCommitted(ctx, req.UserID, req.IdempotencyKey)
		}
		return nil, err
	}

	if err := p.uow.Commit(txCtx); err != nil {
		_ = p.uow.Rollback(txCtx)
		return nil, errs.NewLedgerError(req.UserID, req.IdempotencyKey, req.Delta, string(req.Reason), err)
	}

	p.publish(entry)

	p.logger.Info("Ledger entry applied", map[string]any{
		"user_id":         req.UserID,
		"entry_id":        entry.EntryID,
		"delta":           req.Delta,
		"reason":          req.Reason,
		"new_balance":     result.NewBalance,
		"version":         result.Version,
		"idempotency_key": req.IdempotencyKey,
	})

	return result, nil
}

// applyLocked performs steps 2-6 of the apply contract inside an already
// begun unit of work. The transfer coordinator calls it twice within one
// unit; Apply wraps it with its own begin/commit.
func (p *Processor) applyLocked(
	txCtx context.Context,
	req usecase.ApplyRequest,
) (*usecase.ApplyResult, *entity.LedgerEntry, error) {
	accounts := p.uow.GetAccountRepository(txCtx)
	ledgerLog := p.uow.GetLedgerRepository(txCtx)

	// Exclusive per-account lock; opens the account at balance 0 if this is
	// the user's first mutation. Frozen/suspended accounts are rejected here,
	// before anything is written.
	account, err := accounts.GetForUpdate(txCtx, req.UserID)
	if err != nil {
		return nil, nil, err
	}

	entry, err := entity.NewLedgerEntry(
		p.newEntryID(),
		req.UserID,
		req.Delta,
		req.Reason,
		req.RefType,
		req.RefID,
		req.IdempotencyKey,
		p.timeProvider,
	)
	if err != nil {
		return nil, nil, err
	}

	// Rejects debits below zero and stamps BalanceAfter on the entry
	if err := account.ApplyEntry(entry, p.timeProvider); err != nil {
		p.logger.Warn("Ledger mutation rejected", map[string]any{
			"user_id": req.UserID,
			"delta":   req.Delta,
			"balance": account.Balance(),
			"error":   err.Error(),
		})
		return nil, nil, err
	}

	if err := ledgerLog.Append(txCtx, entry); err != nil {
		return nil, nil, err
	}

	if err := accounts.ApplyDelta(txCtx, account); err != nil {
		return nil, nil, err
	}

	return &usecase.ApplyResult{
		EntryID:      entry.EntryID,
		NewBalance:   account.Balance(),
		Version:      account.Version,
		WasDuplicate: false,
	}, entry, nil
}

// replayCommitted fetches the entry another writer committed for the same key
// and returns it as a duplicate result
func (p *Processor) replayCommitted(ctx context.Context, userID, key string) (*usecase.ApplyResult, error) {
	entry, found, err := p.guard.Check(ctx, userID, key)
	if err != nil {
		return nil, err
	}
	if !found {
		// The append reported a duplicate but no entry is visible; the other
		// writer must have rolled back. Retrying is safe for the caller.
		return nil, fmt.Errorf("%w: idempotency key %s conflicted but no entry recorded",
			errs.ErrInternalServer, key)
	}

	p.logger.Debug("Replaying concurrently committed ledger entry", map[string]any{
		"user_id":         userID,
		"idempotency_key": key,
		"entry_id":        entry.EntryID,
	})
	return replayResult(entry), nil
}

// publish hands a committed entry to the async event feed
func (p *Processor) publish(entry *entity.LedgerEntry) {
	if p.dispatcher != nil {
		p.dispatcher.Enqueue(entry)
	}
}

// replayResult converts a recorded entry into the duplicate-apply result.
// Version is meaningful only for fresh applies; replays report the recorded
// entry and balance snapshot.
func replayResult(entry *entity.LedgerEntry) *usecase.ApplyResult {
	return &usecase.ApplyResult{
		EntryID:      entry.EntryID,
		NewBalance:   entry.BalanceAfter,
		WasDuplicate: true,
	}
}
