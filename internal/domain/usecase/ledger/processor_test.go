package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pulsefit/credit-ledger/internal/domain/entity"
	errs "github.com/pulsefit/credit-ledger/internal/domain/error"
	"github.com/pulsefit/credit-ledger/internal/domain/port/usecase"
	coremocks "github.com/pulsefit/credit-ledger/mocks/port/core"
	mockpersistence "github.com/pulsefit/credit-ledger/mocks/port/persistence"
)

type txKey struct{}

// processorFixture bundles the processor under test with the mocks behind it
type processorFixture struct {
	processor   *Processor
	uow         *mockpersistence.MockUnitOfWork
	accountRepo *mockpersistence.MockAccountRepository
	ledgerRepo  *mockpersistence.MockLedgerRepository
	fixedTime   time.Time
}

func newProcessorFixture(t *testing.T) *processorFixture {
	fixedTime := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(fixedTime).Maybe()

	mockLogger := coremocks.NewMockLogger(t)
	mockLogger.EXPECT().Debug(mock.Anything, mock.Anything).Maybe()
	mockLogger.EXPECT().Info(mock.Anything, mock.Anything).Maybe()
	mockLogger.EXPECT().Warn(mock.Anything, mock.Anything).Maybe()

	uow := mockpersistence.NewMockUnitOfWork(t)
	accountRepo := mockpersistence.NewMockAccountRepository(t)
	ledgerRepo := mockpersistence.NewMockLedgerRepository(t)

	guard := NewIdempotencyGuard(ledgerRepo)
	validator := NewValidator(DefaultPolicy())

	processor := NewProcessor(uow, guard, validator, mockTime, mockLogger)
	processor.newEntryID = func() string { return "entry-42" }

	return &processorFixture{
		processor:   processor,
		uow:         uow,
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		fixedTime:   fixedTime,
	}
}

func (f *processorFixture) account(t *testing.T, userID string, balance int64) *entity.Account {
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(f.fixedTime).Maybe()

	account, err := entity.NewAccount(userID, mockTime)
	require.NoError(t, err)
	account.SetBalance(balance)
	return account
}

func TestProcessorApply(t *testing.T) {
	ctx := context.Background()
	txCtx := context.WithValue(context.Background(), txKey{}, "tx")

	req := usecase.ApplyRequest{
		UserID:         "user-1",
		Delta:          50,
		Reason:         entity.ReasonWorkoutReward,
		RefType:        "workout",
		RefID:          "workout-9",
		IdempotencyKey: "key-1",
	}

	t.Run("Fresh apply commits entry and updates balance", func(t *testing.T) {
		f := newProcessorFixture(t)
		account := f.account(t, "user-1", 100)

		f.ledgerRepo.EXPECT().
			FindByIdempotencyKey(ctx, "user-1", "key-1").
			Return(nil, errs.ErrEntryNotFound).Once()
		f.uow.EXPECT().Begin(ctx).Return(txCtx, nil)
		f.uow.EXPECT().GetAccountRepository(txCtx).Return(f.accountRepo)
		f.uow.EXPECT().GetLedgerRepository(txCtx).Return(f.ledgerRepo)
		f.accountRepo.EXPECT().GetForUpdate(txCtx, "user-1").Return(account, nil)
		f.ledgerRepo.EXPECT().
			Append(txCtx, mock.AnythingOfType("*entity.LedgerEntry")).
			Run(func(_ context.Context, entry *entity.LedgerEntry) {
				assert.Equal(t, "entry-42", entry.EntryID)
				assert.Equal(t, int64(50), entry.Delta)
				assert.Equal(t, int64(150), entry.BalanceAfter)
			}).
			Return(nil)
		f.accountRepo.EXPECT().ApplyDelta(txCtx, account).Return(nil)
		f.uow.EXPECT().Commit(txCtx).Return(nil)

		result, err := f.processor.Apply(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, "entry-42", result.EntryID)
		assert.Equal(t, int64(150), result.NewBalance)
		assert.Equal(t, uint64(1), result.Version)
		assert.False(t, result.WasDuplicate)
	})

	t.Run("Duplicate key replays recorded outcome without locking", func(t *testing.T) {
		f := newProcessorFixture(t)

		recorded := &entity.LedgerEntry{
			EntryID:        "entry-original",
			UserID:         "user-1",
			Delta:          50,
			BalanceAfter:   150,
			IdempotencyKey: "key-1",
		}
		f.ledgerRepo.EXPECT().
			FindByIdempotencyKey(ctx, "user-1", "key-1").
			Return(recorded, nil)

		result, err := f.processor.Apply(ctx, req)

		require.NoError(t, err)
		assert.True(t, result.WasDuplicate)
		assert.Equal(t, "entry-original", result.EntryID)
		assert.Equal(t, int64(150), result.NewBalance)
		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("Duplicate key with different delta still replays the original", func(t *testing.T) {
		f := newProcessorFixture(t)

		recorded := &entity.LedgerEntry{
			EntryID:        "entry-original",
			UserID:         "user-1",
			Delta:          50,
			BalanceAfter:   150,
			IdempotencyKey: "key-1",
		}
		f.ledgerRepo.EXPECT().
			FindByIdempotencyKey(ctx, "user-1", "key-1").
			Return(recorded, nil)

		changed := req
		changed.Delta = 999

		result, err := f.processor.Apply(ctx, changed)

		require.NoError(t, err)
		assert.True(t, result.WasDuplicate)
		assert.Equal(t, "entry-original", result.EntryID)
		assert.Equal(t, int64(150), result.NewBalance)
	})

	t.Run("Debit below zero rolls back and reports insufficient credits", func(t *testing.T) {
		f := newProcessorFixture(t)
		account := f.account(t, "user-1", 30)

		debitReq := req
		debitReq.Delta = -31
		debitReq.Reason = entity.ReasonPurchase

		f.ledgerRepo.EXPECT().
			FindByIdempotencyKey(ctx, "user-1", "key-1").
			Return(nil, errs.ErrEntryNotFound)
		f.uow.EXPECT().Begin(ctx).Return(txCtx, nil)
		f.uow.EXPECT().GetAccountRepository(txCtx).Return(f.accountRepo)
		f.uow.EXPECT().GetLedgerRepository(txCtx).Return(f.ledgerRepo)
		f.accountRepo.EXPECT().GetForUpdate(txCtx, "user-1").Return(account, nil)
		f.uow.EXPECT().Rollback(txCtx).Return(nil)

		result, err := f.processor.Apply(ctx, debitReq)

		require.ErrorIs(t, err, errs.ErrInsufficientCredits)
		assert.Nil(t, result)
		assert.Equal(t, int64(30), account.Balance())
		f.ledgerRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("Frozen account is rejected before any write", func(t *testing.T) {
		f := newProcessorFixture(t)

		f.ledgerRepo.EXPECT().
			FindByIdempotencyKey(ctx, "user-1", "key-1").
			Return(nil, errs.ErrEntryNotFound)
		f.uow.EXPECT().Begin(ctx).Return(txCtx, nil)
		f.uow.EXPECT().GetAccountRepository(txCtx).Return(f.accountRepo)
		f.uow.EXPECT().GetLedgerRepository(txCtx).Return(f.ledgerRepo)
		f.accountRepo.EXPECT().
			GetForUpdate(txCtx, "user-1").
			Return(nil, errs.ErrAccountFrozen)
		f.uow.EXPECT().Rollback(txCtx).Return(nil)

		result, err := f.processor.Apply(ctx, req)

		require.ErrorIs(t, err, errs.ErrAccountFrozen)
		assert.Nil(t, result)
	})

	t.Run("Lost append race replays the concurrently committed entry", func(t *testing.T) {
		f := newProcessorFixture(t)
		account := f.account(t, "user-1", 100)

		committed := &entity.LedgerEntry{
			EntryID:        "entry-winner",
			UserID:         "user-1",
			Delta:          50,
			BalanceAfter:   150,
			IdempotencyKey: "key-1",
		}

		f.ledgerRepo.EXPECT().
			FindByIdempotencyKey(ctx, "user-1", "key-1").
			Return(nil, errs.ErrEntryNotFound).Once()
		f.uow.EXPECT().Begin(ctx).Return(txCtx, nil)
		f.uow.EXPECT().GetAccountRepository(txCtx).Return(f.accountRepo)
		f.uow.EXPECT().GetLedgerRepository(txCtx).Return(f.ledgerRepo)
		f.accountRepo.EXPECT().GetForUpdate(txCtx, "user-1").Return(account, nil)
		f.ledgerRepo.EXPECT().
			Append(txCtx, mock.AnythingOfType("*entity.LedgerEntry")).
			Return(errs.ErrDuplicateIdempotencyKey)
		f.uow.EXPECT().Rollback(txCtx).Return(nil)
		f.ledgerRepo.EXPECT().
			FindByIdempotencyKey(ctx, "user-1", "key-1").
			Return(committed, nil).Once()

		result, err := f.processor.Apply(ctx, req)

		require.NoError(t, err)
		assert.True(t, result.WasDuplicate)
		assert.Equal(t, "entry-winner", result.EntryID)
		assert.Equal(t, int64(150), result.NewBalance)
	})

	t.Run("Commit failure rolls back and wraps as ledger error", func(t *testing.T) {
		f := newProcessorFixture(t)
		account := f.account(t, "user-1", 100)

		f.ledgerRepo.EXPECT().
			FindByIdempotencyKey(ctx, "user-1", "key-1").
			Return(nil, errs.ErrEntryNotFound)
		f.uow.EXPECT().Begin(ctx).Return(txCtx, nil)
		f.uow.EXPECT().GetAccountRepository(txCtx).Return(f.accountRepo)
		f.uow.EXPECT().GetLedgerRepository(txCtx).Return(f.ledgerRepo)
		f.accountRepo.EXPECT().GetForUpdate(txCtx, "user-1").Return(account, nil)
		f.ledgerRepo.EXPECT().
			Append(txCtx, mock.AnythingOfType("*entity.LedgerEntry")).
			Return(nil)
		f.accountRepo.EXPECT().ApplyDelta(txCtx, account).Return(nil)
		f.uow.EXPECT().Commit(txCtx).Return(errors.New("connection lost"))
		f.uow.EXPECT().Rollback(txCtx).Return(nil)

		result, err := f.processor.Apply(ctx, req)

		require.Error(t, err)
		var ledgerErr *errs.LedgerError
		require.ErrorAs(t, err, &ledgerErr)
		assert.Equal(t, "user-1", ledgerErr.UserID)
		assert.Equal(t, "key-1", ledgerErr.IdempotencyKey)
		assert.Nil(t, result)
	})

	t.Run("Invalid request never reaches the store", func(t *testing.T) {
		f := newProcessorFixture(t)

		badReq := req
		badReq.Delta = 0

		result, err := f.processor.Apply(ctx, badReq)

		require.ErrorIs(t, err, errs.ErrInvalidAmount)
		assert.Nil(t, result)
		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
	})
}
