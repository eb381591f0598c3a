package entity

import (
	"strings"
	"time"

	errs "github.com/pulsefit/credit-ledger/internal/domain/error"
	coreport "github.com/pulsefit/credit-ledger/internal/domain/port/core"
)

// AccountStatus represents the lifecycle state of an account
type AccountStatus string

// Account statuses
const (
	StatusActive    AccountStatus = "active"
	StatusFrozen    AccountStatus = "frozen"
	StatusSuspended AccountStatus = "suspended"
)

// IsValidStatus reports whether s is a known account status
func IsValidStatus(s AccountStatus) bool {
	return s == StatusActive || s == StatusFrozen || s == StatusSuspended
}

// Account is the current-balance projection for one user. The balance is a
// cache of the sum of the user's ledger entries, never an independent source
// of truth, and is only ever written under the per-account lock.
type Account struct {
	UserID              string        // Host-application user identifier
	balance             int64         // Whole credits, never negative (private)
	Version             uint64        // Monotonic counter, incremented on every mutation
	TotalEarned         int64         // Sum of non-transfer credits (informational)
	TotalSpent          int64         // Sum of non-transfer debit magnitudes (informational)
	TotalTransferredIn  int64         // Sum of transfer credits received (informational)
	TotalTransferredOut int64         // Sum of transfer debits sent (informational)
	Status              AccountStatus // active, frozen or suspended
	LastEntryID         string        // Weak back-reference to the latest ledger entry
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// NewAccount opens an account at balance 0, version 0. Accounts are created
// lazily on the first mutation for a user.
func NewAccount(userID string, timeProvider coreport.TimeProvider) (*Account, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errs.ErrInvalidUserID
	}

	now := timeProvider.Now()
	return &Account{
		UserID:    userID,
		balance:   0,
		Version:   0,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Balance returns the current balance in whole credits
func (a *Account) Balance() int64 {
	return a.balance
}

// SetBalance overwrites the balance directly (for repositories hydrating
// entities from storage)
func (a *Account) SetBalance(balance int64) {
	a.balance = balance
}

// CanMutate returns nil if the account accepts balance mutations, or the
// status-specific rejection otherwise
func (a *Account) CanMutate() error {
	switch a.Status {
	case StatusFrozen:
		return errs.ErrAccountFrozen
	case StatusSuspended:
		return errs.ErrAccountSuspended
	default:
		return nil
	}
}

// ApplyEntry applies a ledger entry's delta to the projection: balance,
// version, lifetime counters and the last-entry back-reference. The entry's
// BalanceAfter is stamped with the resulting balance. Must only be called
// while holding the account lock.
func (a *Account) ApplyEntry(entry *LedgerEntry, timeProvider coreport.TimeProvider) error {
	newBalance, err := CheckedAdd(a.balance, entry.Delta)
	if err != nil {
		return err
	}
	if newBalance < 0 {
		return errs.NewInsufficientCreditsError(a.UserID, a.balance, AbsDelta(entry.Delta))
	}

	a.balance = newBalance
	a.Version++
	a.LastEntryID = entry.EntryID
	a.UpdatedAt = timeProvider.Now()
	entry.BalanceAfter = newBalance

	switch {
	case entry.Reason == ReasonTransferCredit:
		a.TotalTransferredIn += entry.Delta
	case entry.Reason == ReasonTransferDebit:
		a.TotalTransferredOut += AbsDelta(entry.Delta)
	case entry.Delta > 0:
		a.TotalEarned += entry.Delta
	default:
		a.TotalSpent += AbsDelta(entry.Delta)
	}

	return nil
}
