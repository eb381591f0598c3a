package ledger

import (
	"fmt"
	"strings"

	"github.com/pulsefit/credit-ledger/internal/domain/entity"
	errs "github.com/pulsefit/credit-ledger/internal/domain/error"
	"github.com/pulsefit/credit-ledger/internal/domain/port/usecase"
)

// Policy holds the configurable amount bounds. Transfer bounds are an
// anti-abuse policy on the P2P path; MaxEntryDelta optionally bounds the
// general apply path as well and is disabled when zero.
type Policy struct {
	MinTransferAmount int64
	MaxTransferAmount int64
	MaxEntryDelta     int64
}

// DefaultPolicy returns the reference bounds: transfers of 1 to 1,000,000
// credits, unbounded single-account deltas.
func DefaultPolicy() Policy {
	return Policy{
		MinTransferAmount: 1,
		MaxTransferAmount: 1_000_000,
		MaxEntryDelta:     0,
	}
}

// Validator checks apply and transfer requests before any lock is taken
type Validator struct {
	policy Policy
}

// NewValidator creates a Validator with the given policy bounds
func NewValidator(policy Policy) *Validator {
	return &Validator{policy: policy}
}

// ValidateApply validates a single-account mutation request
func (v *Validator) ValidateApply(req usecase.ApplyRequest) error {
	if strings.TrimSpace(req.UserID) == "" {
		return errs.ErrInvalidUserID
	}
	if strings.TrimSpace(req.IdempotencyKey) == "" {
		return errs.ErrInvalidIdempotencyKey
	}
	if err := entity.ValidateReason(req.Reason); err != nil {
		return err
	}
	if err := entity.ValidateDelta(req.Delta); err != nil {
		return err
	}
	if v.policy.MaxEntryDelta > 0 && entity.AbsDelta(req.Delta) > v.policy.MaxEntryDelta {
		return fmt.Errorf("%w: delta magnitude %d exceeds bound %d",
			errs.ErrInvalidAmount, entity.AbsDelta(req.Delta), v.policy.MaxEntryDelta)
	}
	return nil
}

// ValidateTransfer validates a two-account transfer request. Self-transfers
// and out-of-bound amounts are rejected here, before any lock is acquired.
func (v *Validator) ValidateTransfer(req usecase.TransferRequest) error {
	if strings.TrimSpace(req.SenderID) == "" || strings.TrimSpace(req.RecipientID) == "" {
		return errs.ErrInvalidUserID
	}
	if req.SenderID == req.RecipientID {
		return errs.ErrSelfTransfer
	}
	if req.Amount < v.policy.MinTransferAmount || req.Amount > v.policy.MaxTransferAmount {
		return fmt.Errorf("%w: amount %d outside allowed range %d-%d",
			errs.ErrInvalidAmount, req.Amount, v.policy.MinTransferAmount, v.policy.MaxTransferAmount)
	}
	return nil
}
