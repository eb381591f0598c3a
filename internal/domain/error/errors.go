package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInsufficientCredits = 4001
	CodeInvalidAmount       = 4002
	CodeInvalidUserID       = 4003
	CodeSelfTransfer        = 4004
	CodeInvalidReason       = 4005
	CodeAmountOverflow      = 4006
	CodeDuplicateKey        = 4009
	CodeAccountNotFound     = 4040
	CodeAccountFrozen       = 4231
	CodeAccountSuspended    = 4232
	CodeLockTimeout         = 4290

	// 5xxx - Server errors
	CodeInternalServer = 5000
)

// Base error types
var (
	// ErrInsufficientCredits is returned when a debit would drive the balance below zero
	ErrInsufficientCredits = errors.New("insufficient credits")

	// ErrInvalidAmount is returned when an amount is zero, negative, or outside policy bounds
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrAmountOverflow is returned when applying a delta would overflow the balance
	ErrAmountOverflow = errors.New("amount would overflow balance")

	// ErrInvalidUserID is returned when the user identifier is empty or malformed
	ErrInvalidUserID = errors.New("user ID must not be empty")

	// ErrInvalidReason is returned when the ledger reason code is empty or malformed
	ErrInvalidReason = errors.New("reason code must not be empty")

	// ErrInvalidIdempotencyKey is returned when the idempotency key is empty
	ErrInvalidIdempotencyKey = errors.New("idempotency key must not be empty")

	// ErrSelfTransfer is returned when sender and recipient are the same account
	ErrSelfTransfer = errors.New("cannot transfer credits to the same account")

	// ErrDuplicateIdempotencyKey is returned by the ledger log when an entry with the
	// same (user, key) pair already exists; the processor turns it into a replay,
	// callers never see it as a failure
	ErrDuplicateIdempotencyKey = errors.New("ledger entry with this idempotency key already exists")

	// ErrAccountNotFound is returned when the requested account doesn't exist
	ErrAccountNotFound = errors.New("account not found")

	// ErrEntryNotFound is returned when the requested ledger entry doesn't exist
	ErrEntryNotFound = errors.New("ledger entry not found")

	// ErrAccountFrozen is returned when mutating a frozen account
	ErrAccountFrozen = errors.New("account is frozen")

	// ErrAccountSuspended is returned when mutating a suspended account
	ErrAccountSuspended = errors.New("account is suspended")

	// ErrInvalidStatus is returned when an unknown account status is supplied
	ErrInvalidStatus = errors.New("invalid account status")

	// ErrLockTimeout is returned when the per-account lock could not be acquired in
	// time; safe to retry with the same idempotency key
	ErrLockTimeout = errors.New("timed out waiting for account lock")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrDatabaseConnection is returned when there's a problem talking to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInsufficientCredits):
		return CodeInsufficientCredits
	case errors.Is(err, ErrInvalidAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrAmountOverflow):
		return CodeAmountOverflow
	case errors.Is(err, ErrInvalidUserID):
		return CodeInvalidUserID
	case errors.Is(err, ErrSelfTransfer):
		return CodeSelfTransfer
	case errors.Is(err, ErrInvalidReason), errors.Is(err, ErrInvalidIdempotencyKey):
		return CodeInvalidReason
	case errors.Is(err, ErrDuplicateIdempotencyKey):
		return CodeDuplicateKey
	case errors.Is(err, ErrAccountNotFound):
		return CodeAccountNotFound
	case errors.Is(err, ErrAccountFrozen):
		return CodeAccountFrozen
	case errors.Is(err, ErrAccountSuspended):
		return CodeAccountSuspended
	case errors.Is(err, ErrLockTimeout):
		return CodeLockTimeout
	default:
		return CodeInternalServer
	}
}

// InsufficientCreditsError carries the balance details of a rejected debit
type InsufficientCreditsError struct {
	UserID string
	Have   int64
	Need   int64
}

// Error implements the error interface
func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("insufficient credits for user %s: need %d, have %d",
		e.UserID, e.Need, e.Have)
}

// Is checks if the target error is an ErrInsufficientCredits
func (e *InsufficientCreditsError) Is(target error) bool {
	return target == ErrInsufficientCredits
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientCreditsError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "insufficient_credits",
		"user_id":    e.UserID,
		"have":       e.Have,
		"need":       e.Need,
		"error_code": CodeInsufficientCredits,
	}
}

// NewInsufficientCreditsError creates a new detailed insufficient credits error
func NewInsufficientCreditsError(userID string, have, need int64) error {
	return &InsufficientCreditsError{
		UserID: userID,
		Have:   have,
		Need:   need,
	}
}

// LedgerError represents a failure while applying a ledger mutation
type LedgerError struct {
	UserID         string
	IdempotencyKey string
	Delta          int64
	Reason         string
	Err            error
}

// Error implements the error interface for LedgerError
func (e *LedgerError) Error() string {
	return fmt.Sprintf("ledger mutation failed for user %s (key: %s, delta: %d, reason: %s): %v",
		e.UserID, e.IdempotencyKey, e.Delta, e.Reason, e.Err)
}

// Unwrap returns the underlying error
func (e *LedgerError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *LedgerError) LogFields() map[string]any {
	return map[string]any{
		"error_type":      "ledger_error",
		"user_id":         e.UserID,
		"idempotency_key": e.IdempotencyKey,
		"delta":           e.Delta,
		"reason":          e.Reason,
		"error":           e.Err.Error(),
		"error_code":      ErrorCode(e.Err),
	}
}

// NewLedgerError creates a detailed ledger mutation error
func NewLedgerError(userID, idempotencyKey string, delta int64, reason string, err error) error {
	return &LedgerError{
		UserID:         userID,
		IdempotencyKey: idempotencyKey,
		Delta:          delta,
		Reason:         reason,
		Err:            err,
	}
}

// TransferError represents a failure while coordinating a two-account transfer
type TransferError struct {
	TransferID  string
	SenderID    string
	RecipientID string
	Amount      int64
	Err         error
}

// Error implements the error interface for TransferError
func (e *TransferError) Error() string {
	return fmt.Sprintf("transfer %s of %d credits from %s to %s failed: %v",
		e.TransferID, e.Amount, e.SenderID, e.RecipientID, e.Err)
}

// Unwrap returns the underlying error
func (e *TransferError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *TransferError) LogFields() map[string]any {
	return map[string]any{
		"error_type":   "transfer_error",
		"transfer_id":  e.TransferID,
		"sender_id":    e.SenderID,
		"recipient_id": e.RecipientID,
		"amount":       e.Amount,
		"error":        e.Err.Error(),
		"error_code":   ErrorCode(e.Err),
	}
}

// NewTransferError creates a detailed transfer error
func NewTransferError(transferID, senderID, recipientID string, amount int64, err error) error {
	return &TransferError{
		TransferID:  transferID,
		SenderID:    senderID,
		RecipientID: recipientID,
		Amount:      amount,
		Err:         err,
	}
}

// IsInsufficientCreditsError checks if the error is related to insufficient credits
func IsInsufficientCreditsError(err error) bool {
	return errors.Is(err, ErrInsufficientCredits)
}

// IsDuplicateKeyError checks if the error is an idempotency-key duplicate
func IsDuplicateKeyError(err error) bool {
	return errors.Is(err, ErrDuplicateIdempotencyKey)
}

// IsAccountNotFoundError checks if the error is an account not found error
func IsAccountNotFoundError(err error) bool {
	return errors.Is(err, ErrAccountNotFound)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrAccountNotFound) || errors.Is(err, ErrEntryNotFound)
}

// IsAccountInactiveError checks if the error is a frozen or suspended account rejection
func IsAccountInactiveError(err error) bool {
	return errors.Is(err, ErrAccountFrozen) || errors.Is(err, ErrAccountSuspended)
}

// IsLockTimeoutError checks if the error is a retryable lock timeout
func IsLockTimeoutError(err error) bool {
	return errors.Is(err, ErrLockTimeout)
}

// IsRetryable reports whether the caller may safely retry the same call with
// the same idempotency key
func IsRetryable(err error) bool {
	return errors.Is(err, ErrLockTimeout) || errors.Is(err, ErrDatabaseConnection)
}
