package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pulsefit/credit-ledger/internal/domain/entity"
	errs "github.com/pulsefit/credit-ledger/internal/domain/error"
	"github.com/pulsefit/credit-ledger/internal/domain/port/usecase"
	coremocks "github.com/pulsefit/credit-ledger/mocks/port/core"
)

func newCoordinatorFixture(t *testing.T) (*Coordinator, *processorFixture) {
	f := newProcessorFixture(t)

	mockLogger := coremocks.NewMockLogger(t)
	mockLogger.EXPECT().Debug(mock.Anything, mock.Anything).Maybe()
	mockLogger.EXPECT().Info(mock.Anything, mock.Anything).Maybe()
	mockLogger.EXPECT().Warn(mock.Anything, mock.Anything).Maybe()

	guard := NewIdempotencyGuard(f.ledgerRepo)
	validator := NewValidator(DefaultPolicy())

	coordinator := NewCoordinator(f.uow, f.processor, validator, guard, mockLogger)
	coordinator.newTransferID = func() string { return "t-1" }

	return coordinator, f
}

func TestCoordinatorTransfer(t *testing.T) {
	ctx := context.Background()
	txCtx := context.WithValue(context.Background(), txKey{}, "tx")

	req := usecase.TransferRequest{
		SenderID:    "alice",
		RecipientID: "bob",
		Amount:      100,
		TransferID:  "t-1",
	}

	t.Run("Transfer debits sender and credits recipient atomically", func(t *testing.T) {
		coordinator, f := newCoordinatorFixture(t)
		alice := f.account(t, "alice", 500)
		bob := f.account(t, "bob", 200)

		entryID := 0
		f.processor.newEntryID = func() string {
			entryID++
			if entryID == 1 {
				return "entry-debit"
			}
			return "entry-credit"
		}

		f.ledgerRepo.EXPECT().
			FindByIdempotencyKey(ctx, "alice", "t-1:sender").
			Return(nil, errs.ErrEntryNotFound)
		f.uow.EXPECT().Begin(ctx).Return(txCtx, nil)
		f.uow.EXPECT().GetAccountRepository(txCtx).Return(f.accountRepo)
		f.uow.EXPECT().GetLedgerRepository(txCtx).Return(f.ledgerRepo)
		f.accountRepo.EXPECT().GetForUpdate(txCtx, "alice").Return(alice, nil)
		f.accountRepo.EXPECT().GetForUpdate(txCtx, "bob").Return(bob, nil)

		var appended []*entity.LedgerEntry
		f.ledgerRepo.EXPECT().
			Append(txCtx, mock.AnythingOfType("*entity.LedgerEntry")).
			Run(func(_ context.Context, entry *entity.LedgerEntry) {
				appended = append(appended, entry)
			}).
			Return(nil)
		f.accountRepo.EXPECT().ApplyDelta(txCtx, alice).Return(nil)
		f.accountRepo.EXPECT().ApplyDelta(txCtx, bob).Return(nil)
		f.uow.EXPECT().Commit(txCtx).Return(nil)

		result, err := coordinator.Transfer(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, "t-1", result.TransferID)
		assert.Equal(t, int64(400), result.SenderNewBalance)
		assert.Equal(t, int64(300), result.RecipientNewBalance)

		// Total credits in circulation are conserved across the pair
		require.Len(t, appended, 2)
		debit, credit := appended[0], appended[1]
		assert.Equal(t, int64(-100), debit.Delta)
		assert.Equal(t, int64(100), credit.Delta)
		assert.Zero(t, debit.Delta+credit.Delta)
		assert.Equal(t, "t-1:sender", debit.IdempotencyKey)
		assert.Equal(t, "t-1:recipient", credit.IdempotencyKey)
		assert.Equal(t, "t-1", debit.RefID)
		assert.Equal(t, "t-1", credit.RefID)
		assert.Equal(t, entity.ReasonTransferDebit, debit.Reason)
		assert.Equal(t, entity.ReasonTransferCredit, credit.Reason)
	})

	t.Run("Transfer ID is generated when not supplied", func(t *testing.T) {
		coordinator, f := newCoordinatorFixture(t)

		recordedDebit := &entity.LedgerEntry{
			EntryID: "e-d", UserID: "alice", Delta: -100, BalanceAfter: 400,
			IdempotencyKey: "t-1:sender",
		}
		recordedCredit := &entity.LedgerEntry{
			EntryID: "e-c", UserID: "bob", Delta: 100, BalanceAfter: 300,
			IdempotencyKey: "t-1:recipient",
		}
		f.ledgerRepo.EXPECT().
			FindByIdempotencyKey(ctx, "alice", "t-1:sender").
			Return(recordedDebit, nil)
		f.ledgerRepo.EXPECT().
			FindByIdempotencyKey(ctx, "bob", "t-1:recipient").
			Return(recordedCredit, nil)

		noID := req
		noID.TransferID = ""

		result, err := coordinator.Transfer(ctx, noID)

		require.NoError(t, err)
		assert.Equal(t, "t-1", result.TransferID)
	})

	t.Run("Retried transfer replays the recorded pair without locking", func(t *testing.T) {
		coordinator, f := newCoordinatorFixture(t)

		recordedDebit := &entity.LedgerEntry{
			EntryID: "e-d", UserID: "alice", Delta: -100, BalanceAfter: 400,
			IdempotencyKey: "t-1:sender",
		}
		recordedCredit := &entity.LedgerEntry{
			EntryID: "e-c", UserID: "bob", Delta: 100, BalanceAfter: 300,
			IdempotencyKey: "t-1:recipient",
		}
		f.ledgerRepo.EXPECT().
			FindByIdempotencyKey(ctx, "alice", "t-1:sender").
			Return(recordedDebit, nil)
		f.ledgerRepo.EXPECT().
			FindByIdempotencyKey(ctx, "bob", "t-1:recipient").
			Return(recordedCredit, nil)

		result, err := coordinator.Transfer(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, int64(400), result.SenderNewBalance)
		assert.Equal(t, int64(300), result.RecipientNewBalance)
		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("Lone debit leg reports a corrupt ledger", func(t *testing.T) {
		coordinator, f := newCoordinatorFixture(t)

		recordedDebit := &entity.LedgerEntry{
			EntryID: "e-d", UserID: "alice", Delta: -100, BalanceAfter: 400,
			IdempotencyKey: "t-1:sender",
		}
		f.ledgerRepo.EXPECT().
			FindByIdempotencyKey(ctx, "alice", "t-1:sender").
			Return(recordedDebit, nil)
		f.ledgerRepo.EXPECT().
			FindByIdempotencyKey(ctx, "bob", "t-1:recipient").
			Return(nil, errs.ErrEntryNotFound)

		result, err := coordinator.Transfer(ctx, req)

		require.ErrorIs(t, err, errs.ErrInternalServer)
		assert.Contains(t, err.Error(), "debit leg but no credit leg")
		assert.Nil(t, result)
	})

	t.Run("Self transfer is rejected before any lock", func(t *testing.T) {
		coordinator, f := newCoordinatorFixture(t)

		selfReq := req
		selfReq.RecipientID = "alice"

		result, err := coordinator.Transfer(ctx, selfReq)

		require.ErrorIs(t, err, errs.ErrSelfTransfer)
		assert.Nil(t, result)
		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
		f.ledgerRepo.AssertNotCalled(t, "FindByIdempotencyKey", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Insufficient sender balance aborts both legs", func(t *testing.T) {
		coordinator, f := newCoordinatorFixture(t)
		alice := f.account(t, "alice", 50)
		bob := f.account(t, "bob", 200)

		f.ledgerRepo.EXPECT().
			FindByIdempotencyKey(ctx, "alice", "t-1:sender").
			Return(nil, errs.ErrEntryNotFound)
		f.uow.EXPECT().Begin(ctx).Return(txCtx, nil)
		f.uow.EXPECT().GetAccountRepository(txCtx).Return(f.accountRepo)
		f.uow.EXPECT().GetLedgerRepository(txCtx).Return(f.ledgerRepo)
		f.accountRepo.EXPECT().GetForUpdate(txCtx, "alice").Return(alice, nil)
		f.accountRepo.EXPECT().GetForUpdate(txCtx, "bob").Return(bob, nil)
		f.uow.EXPECT().Rollback(txCtx).Return(nil)

		result, err := coordinator.Transfer(ctx, req)

		require.ErrorIs(t, err, errs.ErrInsufficientCredits)
		assert.Nil(t, result)
		assert.Equal(t, int64(50), alice.Balance())
		assert.Equal(t, int64(200), bob.Balance())
		f.ledgerRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("Commit failure wraps as transfer error", func(t *testing.T) {
		coordinator, f := newCoordinatorFixture(t)
		alice := f.account(t, "alice", 500)
		bob := f.account(t, "bob", 200)

		f.ledgerRepo.EXPECT().
			FindByIdempotencyKey(ctx, "alice", "t-1:sender").
			Return(nil, errs.ErrEntryNotFound)
		f.uow.EXPECT().Begin(ctx).Return(txCtx, nil)
		f.uow.EXPECT().GetAccountRepository(txCtx).Return(f.accountRepo)
		f.uow.EXPECT().GetLedgerRepository(txCtx).Return(f.ledgerRepo)
		f.accountRepo.EXPECT().GetForUpdate(txCtx, "alice").Return(alice, nil)
		f.accountRepo.EXPECT().GetForUpdate(txCtx, "bob").Return(bob, nil)
		f.ledgerRepo.EXPECT().
			Append(txCtx, mock.AnythingOfType("*entity.LedgerEntry")).
			Return(nil)
		f.accountRepo.EXPECT().ApplyDelta(txCtx, alice).Return(nil)
		f.accountRepo.EXPECT().ApplyDelta(txCtx, bob).Return(nil)
		f.uow.EXPECT().Commit(txCtx).Return(errors.New("connection lost"))
		f.uow.EXPECT().Rollback(txCtx).Return(nil)

		result, err := coordinator.Transfer(ctx, req)

		require.Error(t, err)
		var transferErr *errs.TransferError
		require.ErrorAs(t, err, &transferErr)
		assert.Equal(t, "t-1", transferErr.TransferID)
		assert.Equal(t, "alice", transferErr.SenderID)
		assert.Equal(t, "bob", transferErr.RecipientID)
		assert.Nil(t, result)
	})
}

func TestLockOrder(t *testing.T) {
	t.Run("Orders by byte comparison", func(t *testing.T) {
		assert.Equal(t, [2]string{"alice", "bob"}, lockOrder("alice", "bob"))
		assert.Equal(t, [2]string{"alice", "bob"}, lockOrder("bob", "alice"))
	})

	t.Run("Symmetric for every pair", func(t *testing.T) {
		// Both directions of a transfer must request locks in the same global
		// order, otherwise opposite-direction transfers can deadlock
		ids := []string{"alice", "bob", "Zed", "user-1", "user-10", "user-2", ""}
		for _, a := range ids {
			for _, b := range ids {
				assert.Equal(t, lockOrder(a, b), lockOrder(b, a), "lockOrder(%q, %q)", a, b)
			}
		}
	})

	t.Run("Uppercase sorts before lowercase", func(t *testing.T) {
		assert.Equal(t, [2]string{"Zed", "alice"}, lockOrder("alice", "Zed"))
	})
}
