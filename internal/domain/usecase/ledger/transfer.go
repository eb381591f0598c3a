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

// Coordinator moves a fixed positive amount between two accounts as one
// atomic, deadlock-free unit: a debit entry on the sender and a credit entry
// on the recipient, correlated by a shared transfer ID, either both committed
// or neither.
//
// Lock-ordering contract: the two account locks are always acquired in
// lexicographic byte order of the user IDs, regardless of which party is the
// sender. Concurrent opposite-direction transfers between the same pair
// therefore request locks in the same global order and can never deadlock.
// Substituting a different comparison would reintroduce deadlock risk.
type Coordinator struct {
	uow       persistence.UnitOfWork
	processor *Processor
	validator *Validator
	guard     *IdempotencyGuard
	logger    coreport.Logger

	// newTransferID generates transfer identifiers; replaceable in tests
	newTransferID func() string
}

// NewCoordinator creates a new transfer coordinator
func NewCoordinator(
	uow persistence.UnitOfWork,
	processor *Processor,
	validator *Validator,
	guard *IdempotencyGuard,
	logger coreport.Logger,
) *Coordinator {
	return &Coordinator{
		uow:           uow,
		processor:     processor,
		validator:     validator,
		guard:         guard,
		logger:        logger,
		newTransferID: uuid.NewString,
	}
}

// Transfer executes the paired debit/credit. Validation failures
// (self-transfer, out-of-bound amount) are rejected before any lock is taken;
// a retried transfer with the same transfer ID replays the recorded outcome.
func (c *Coordinator) Transfer(ctx context.Context, req usecase.TransferRequest) (*usecase.TransferResult, error) {
	if err := c.validator.ValidateTransfer(req); err != nil {
		return nil, err
	}

	transferID := req.TransferID
	if transferID == "" {
		transferID = c.newTransferID()
	}

	// Retried transfers short-circuit before any lock, same as single applies
	if result, found, err := c.findCommitted(ctx, transferID, req); err != nil {
		return nil, err
	} else if found {
		c.logger.Debug("Replaying recorded transfer for duplicate request", map[string]any{
			"transfer_id": transferID,
			"sender_id":   req.SenderID,
		})
		return result, nil
	}

	txCtx, err := c.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}

	result, entries, err := c.executeLocked(txCtx, transferID, req)
	if err != nil {
		_ = c.uow.Rollback(txCtx)

		if errors.Is(err, errs.ErrDuplicateIdempotencyKey) {
			// A concurrent retry of this transfer ID committed first
			return c.replayCommitted(ctx, transferID, req)
		}
		if errs.IsInsufficientCreditsError(err) || errs.IsAccountInactiveError(err) ||
			errs.IsLockTimeoutError(err) {
			return nil, err
		}
		return nil, errs.NewTransferError(transferID, req.SenderID, req.RecipientID, req.Amount, err)
	}

	if err := c.uow.Commit(txCtx); err != nil {
		_ = c.uow.Rollback(txCtx)
		return nil, errs.NewTransferError(transferID, req.SenderID, req.RecipientID, req.Amount, err)
	}

	for _, entry := range entries {
		c.processor.publish(entry)
	}

	c.logger.Info("Transfer committed", map[string]any{
		"transfer_id":           transferID,
		"sender_id":             req.SenderID,
		"recipient_id":          req.RecipientID,
		"amount":                req.Amount,
		"sender_new_balance":    result.SenderNewBalance,
		"recipient_new_balance": result.RecipientNewBalance,
	})

	return result, nil
}

// executeLocked runs both legs inside one unit of work. Locks are taken up
// front in the fixed lexicographic order; the per-leg lock acquisition inside
// applyLocked then re-locks rows this unit already holds, which is free.
func (c *Coordinator) executeLocked(
	txCtx context.Context,
	transferID string,
	req usecase.TransferRequest,
) (*usecase.TransferResult, []*entity.LedgerEntry, error) {
	accounts := c.uow.GetAccountRepository(txCtx)

	for _, userID := range lockOrder(req.SenderID, req.RecipientID) {
		if _, err := accounts.GetForUpdate(txCtx, userID); err != nil {
			return nil, nil, err
		}
	}

	// Debit first: if the sender lacks funds the whole unit aborts before any
	// credit exists
	debit, debitEntry, err := c.processor.applyLocked(txCtx, usecase.ApplyRequest{
		UserID:         req.SenderID,
		Delta:          -req.Amount,
		Reason:         entity.ReasonTransferDebit,
		RefType:        "transfer",
		RefID:          transferID,
		IdempotencyKey: entity.TransferDebitKey(transferID),
	})
	if err != nil {
		return nil, nil, err
	}

	credit, creditEntry, err := c.processor.applyLocked(txCtx, usecase.ApplyRequest{
		UserID:         req.RecipientID,
		Delta:          req.Amount,
		Reason:         entity.ReasonTransferCredit,
		RefType:        "transfer",
		RefID:          transferID,
		IdempotencyKey: entity.TransferCreditKey(transferID),
	})
	if err != nil {
		return nil, nil, err
	}

	result := &usecase.TransferResult{
		TransferID:          transferID,
		SenderNewBalance:    debit.NewBalance,
		RecipientNewBalance: credit.NewBalance,
	}
	return result, []*entity.LedgerEntry{debitEntry, creditEntry}, nil
}

// findCommitted checks whether this transfer ID was already applied and, if
// so, rebuilds the result from the recorded pair
func (c *Coordinator) findCommitted(
	ctx context.Context,
	transferID string,
	req usecase.TransferRequest,
) (*usecase.TransferResult, bool, error) {
	debitEntry, debitFound, err := c.guard.Check(ctx, req.SenderID, entity.TransferDebitKey(transferID))
	if err != nil {
		return nil, false, err
	}
	if !debitFound {
		return nil, false, nil
	}

	creditEntry, creditFound, err := c.guard.Check(ctx, req.RecipientID, entity.TransferCreditKey(transferID))
	if err != nil {
		return nil, false, err
	}
	if !creditFound {
		// The pair is committed atomically, so a lone debit leg means the
		// ledger is corrupt, not that the transfer half-applied
		return nil, false, fmt.Errorf("%w: transfer %s has a debit leg but no credit leg",
			errs.ErrInternalServer, transferID)
	}

	return &usecase.TransferResult{
		TransferID:          transferID,
		SenderNewBalance:    debitEntry.BalanceAfter,
		RecipientNewBalance: creditEntry.BalanceAfter,
	}, true, nil
}

// replayCommitted resolves a duplicate-key race by reading the pair the
// concurrent writer committed
func (c *Coordinator) replayCommitted(
	ctx context.Context,
	transferID string,
	req usecase.TransferRequest,
) (*usecase.TransferResult, error) {
	result, found, err := c.findCommitted(ctx, transferID, req)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: transfer %s conflicted but no entries recorded",
			errs.ErrInternalServer, transferID)
	}
	return result, nil
}

// lockOrder returns the two user IDs in the fixed global lock-acquisition
// order: plain lexicographic byte comparison
func lockOrder(a, b string) [2]string {
	if a < b {
		return [2]string{a, b}
	}
	return [2]string{b, a}
}
