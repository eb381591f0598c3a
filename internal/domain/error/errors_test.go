package error

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"Insufficient credits", ErrInsufficientCredits, CodeInsufficientCredits},
		{"Invalid amount", ErrInvalidAmount, CodeInvalidAmount},
		{"Amount overflow", ErrAmountOverflow, CodeAmountOverflow},
		{"Invalid user ID", ErrInvalidUserID, CodeInvalidUserID},
		{"Self transfer", ErrSelfTransfer, CodeSelfTransfer},
		{"Invalid reason", ErrInvalidReason, CodeInvalidReason},
		{"Invalid idempotency key", ErrInvalidIdempotencyKey, CodeInvalidReason},
		{"Duplicate key", ErrDuplicateIdempotencyKey, CodeDuplicateKey},
		{"Account not found", ErrAccountNotFound, CodeAccountNotFound},
		{"Account frozen", ErrAccountFrozen, CodeAccountFrozen},
		{"Account suspended", ErrAccountSuspended, CodeAccountSuspended},
		{"Lock timeout", ErrLockTimeout, CodeLockTimeout},
		{"Unknown error", errors.New("something else"), CodeInternalServer},
		{"Internal server", ErrInternalServer, CodeInternalServer},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ErrorCode(tc.err))
		})
	}

	t.Run("Wrapped errors keep their code", func(t *testing.T) {
		wrapped := fmt.Errorf("context: %w", ErrInsufficientCredits)
		assert.Equal(t, CodeInsufficientCredits, ErrorCode(wrapped))
	})
}

func TestInsufficientCreditsError(t *testing.T) {
	err := NewInsufficientCreditsError("user-1", 30, 45)

	t.Run("Matches the sentinel", func(t *testing.T) {
		assert.ErrorIs(t, err, ErrInsufficientCredits)
		assert.True(t, IsInsufficientCreditsError(err))
	})

	t.Run("Carries balance details", func(t *testing.T) {
		var detailed *InsufficientCreditsError
		require.ErrorAs(t, err, &detailed)
		assert.Equal(t, "user-1", detailed.UserID)
		assert.Equal(t, int64(30), detailed.Have)
		assert.Equal(t, int64(45), detailed.Need)
	})

	t.Run("Message includes need and have", func(t *testing.T) {
		assert.Contains(t, err.Error(), "need 45")
		assert.Contains(t, err.Error(), "have 30")
	})

	t.Run("LogFields", func(t *testing.T) {
		var detailed *InsufficientCreditsError
		require.ErrorAs(t, err, &detailed)
		fields := detailed.LogFields()
		assert.Equal(t, "insufficient_credits", fields["error_type"])
		assert.Equal(t, "user-1", fields["user_id"])
		assert.Equal(t, CodeInsufficientCredits, fields["error_code"])
	})
}

func TestLedgerError(t *testing.T) {
	underlying := ErrDatabaseConnection
	err := NewLedgerError("user-1", "key-1", -25, "purchase", underlying)

	t.Run("Unwraps to the underlying error", func(t *testing.T) {
		assert.ErrorIs(t, err, ErrDatabaseConnection)
	})

	t.Run("Message carries context", func(t *testing.T) {
		assert.Contains(t, err.Error(), "user-1")
		assert.Contains(t, err.Error(), "key-1")
	})

	t.Run("LogFields includes the underlying code", func(t *testing.T) {
		var ledgerErr *LedgerError
		require.ErrorAs(t, err, &ledgerErr)
		fields := ledgerErr.LogFields()
		assert.Equal(t, "ledger_error", fields["error_type"])
		assert.Equal(t, int64(-25), fields["delta"])
	})
}

func TestTransferError(t *testing.T) {
	err := NewTransferError("t-1", "alice", "bob", 100, ErrInsufficientCredits)

	t.Run("Unwraps to the underlying error", func(t *testing.T) {
		assert.ErrorIs(t, err, ErrInsufficientCredits)
		assert.Equal(t, CodeInsufficientCredits, ErrorCode(err))
	})

	t.Run("Message carries both parties", func(t *testing.T) {
		assert.Contains(t, err.Error(), "alice")
		assert.Contains(t, err.Error(), "bob")
	})
}

func TestClassifierHelpers(t *testing.T) {
	assert.True(t, IsDuplicateKeyError(fmt.Errorf("wrap: %w", ErrDuplicateIdempotencyKey)))
	assert.False(t, IsDuplicateKeyError(ErrAccountNotFound))

	assert.True(t, IsAccountNotFoundError(ErrAccountNotFound))
	assert.True(t, IsNotFoundError(ErrEntryNotFound))
	assert.False(t, IsNotFoundError(ErrInvalidAmount))

	assert.True(t, IsAccountInactiveError(ErrAccountFrozen))
	assert.True(t, IsAccountInactiveError(ErrAccountSuspended))
	assert.False(t, IsAccountInactiveError(ErrAccountNotFound))

	assert.True(t, IsLockTimeoutError(ErrLockTimeout))

	assert.True(t, IsRetryable(ErrLockTimeout))
	assert.True(t, IsRetryable(ErrDatabaseConnection))
	assert.False(t, IsRetryable(ErrInsufficientCredits))
}
