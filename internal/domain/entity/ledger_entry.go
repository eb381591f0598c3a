package entity

import (
	"strings"
	"time"

	errs "github.com/pulsefit/credit-ledger/internal/domain/error"
	coreport "github.com/pulsefit/credit-ledger/internal/domain/port/core"
)

// Reason is the categorical code describing why a balance delta was applied.
// The vocabulary is open: reward and purchase systems own their own codes, the
// engine only requires a well-formed, non-empty value. The transfer path always
// stamps ReasonTransferDebit / ReasonTransferCredit.
type Reason string

// Reason codes used by the engine itself and by known callers
const (
	ReasonWorkoutReward   Reason = "workout_reward"
	ReasonPurchase        Reason = "purchase"
	ReasonRefund          Reason = "refund"
	ReasonTransferDebit   Reason = "transfer_debit"
	ReasonTransferCredit  Reason = "transfer_credit"
	ReasonAdminAdjustment Reason = "admin_adjustment"
)

// maxReasonLength bounds the reason column; anything longer is a caller bug
const maxReasonLength = 64

// LedgerEntry is the immutable record of one applied balance delta.
// Entries are append-only: once written they are never updated or deleted, and
// the account balance is always derivable as the sum of a user's deltas.
type LedgerEntry struct {
	EntryID        string    // Unique identifier, generated at apply time
	UserID         string    // Account this entry belongs to
	Delta          int64     // Signed change in whole credits
	BalanceAfter   int64     // Balance snapshot after applying Delta
	Reason         Reason    // Categorical cause of the delta
	RefType        string    // Kind of domain event that caused this entry (weak reference)
	RefID          string    // Identifier of the causing domain event (weak reference)
	IdempotencyKey string    // Caller-supplied dedup token, unique per user
	CreatedAt      time.Time // When the entry was applied
}

// NewLedgerEntry creates a pending ledger entry with basic validation.
// BalanceAfter is filled in by the transaction processor once the delta has
// been applied under the account lock.
func NewLedgerEntry(
	entryID string,
	userID string,
	delta int64,
	reason Reason,
	refType string,
	refID string,
	idempotencyKey string,
	timeProvider coreport.TimeProvider,
) (*LedgerEntry, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errs.ErrInvalidUserID
	}
	if strings.TrimSpace(idempotencyKey) == "" {
		return nil, errs.ErrInvalidIdempotencyKey
	}
	if err := ValidateReason(reason); err != nil {
		return nil, err
	}
	if err := ValidateDelta(delta); err != nil {
		return nil, err
	}

	return &LedgerEntry{
		EntryID:        entryID,
		UserID:         userID,
		Delta:          delta,
		Reason:         reason,
		RefType:        refType,
		RefID:          refID,
		IdempotencyKey: idempotencyKey,
		CreatedAt:      timeProvider.Now(),
	}, nil
}

// ValidateReason checks that a reason code is non-empty and within bounds
func ValidateReason(reason Reason) error {
	trimmed := strings.TrimSpace(string(reason))
	if trimmed == "" || len(trimmed) > maxReasonLength {
		return errs.ErrInvalidReason
	}
	return nil
}

// IsCredit returns true if this entry increased the balance
func (e *LedgerEntry) IsCredit() bool {
	return e.Delta > 0
}

// IsDebit returns true if this entry decreased the balance
func (e *LedgerEntry) IsDebit() bool {
	return e.Delta < 0
}

// IsTransferLeg returns true if this entry is one side of a two-account transfer
func (e *LedgerEntry) IsTransferLeg() bool {
	return e.Reason == ReasonTransferDebit || e.Reason == ReasonTransferCredit
}

// TransferDebitKey derives the sender-side idempotency key for a transfer.
// The shared transfer identifier embedded in both legs is what correlates the
// pair in the ledger.
func TransferDebitKey(transferID string) string {
	return transferID + ":sender"
}

// TransferCreditKey derives the recipient-side idempotency key for a transfer
func TransferCreditKey(transferID string) string {
	return transferID + ":recipient"
}
