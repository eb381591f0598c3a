package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulsefit/credit-ledger/internal/domain/entity"
	errs "github.com/pulsefit/credit-ledger/internal/domain/error"
	mockpersistence "github.com/pulsefit/credit-ledger/mocks/port/persistence"
)

func TestIdempotencyGuardCheck(t *testing.T) {
	ctx := context.Background()

	t.Run("Key already applied returns recorded entry", func(t *testing.T) {
		mockLedgerRepo := mockpersistence.NewMockLedgerRepository(t)
		recorded := &entity.LedgerEntry{
			EntryID:        "entry-1",
			UserID:         "user-1",
			Delta:          50,
			BalanceAfter:   150,
			IdempotencyKey: "key-1",
		}
		mockLedgerRepo.EXPECT().
			FindByIdempotencyKey(ctx, "user-1", "key-1").
			Return(recorded, nil)

		guard := NewIdempotencyGuard(mockLedgerRepo)

		entry, found, err := guard.Check(ctx, "user-1", "key-1")

		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, recorded, entry)
	})

	t.Run("Unknown key reports not found without error", func(t *testing.T) {
		mockLedgerRepo := mockpersistence.NewMockLedgerRepository(t)
		mockLedgerRepo.EXPECT().
			FindByIdempotencyKey(ctx, "user-1", "fresh-key").
			Return(nil, errs.ErrEntryNotFound)

		guard := NewIdempotencyGuard(mockLedgerRepo)

		entry, found, err := guard.Check(ctx, "user-1", "fresh-key")

		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, entry)
	})

	t.Run("Repository failure is wrapped", func(t *testing.T) {
		mockLedgerRepo := mockpersistence.NewMockLedgerRepository(t)
		mockLedgerRepo.EXPECT().
			FindByIdempotencyKey(ctx, "user-1", "key-1").
			Return(nil, errors.New("connection reset"))

		guard := NewIdempotencyGuard(mockLedgerRepo)

		entry, found, err := guard.Check(ctx, "user-1", "key-1")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to check idempotency key")
		assert.False(t, found)
		assert.Nil(t, entry)
	})
}
