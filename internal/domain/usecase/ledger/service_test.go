package ledger

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pulsefit/credit-ledger/internal/domain/entity"
	errs "github.com/pulsefit/credit-ledger/internal/domain/error"
	"github.com/pulsefit/credit-ledger/internal/domain/port/usecase"
	coremocks "github.com/pulsefit/credit-ledger/mocks/port/core"
	mockevents "github.com/pulsefit/credit-ledger/mocks/port/events"
	mockpersistence "github.com/pulsefit/credit-ledger/mocks/port/persistence"
)

func TestStatusCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"No error", nil, http.StatusOK},
		{"Insufficient credits", errs.ErrInsufficientCredits, http.StatusBadRequest},
		{"Insufficient credits with details", errs.NewInsufficientCreditsError("user-1", 30, 45), http.StatusBadRequest},
		{"Frozen account", errs.ErrAccountFrozen, http.StatusForbidden},
		{"Suspended account", errs.ErrAccountSuspended, http.StatusForbidden},
		{"Account not found", errs.ErrAccountNotFound, http.StatusNotFound},
		{"Entry not found", errs.ErrEntryNotFound, http.StatusNotFound},
		{"Lock timeout", errs.ErrLockTimeout, http.StatusConflict},
		{"Invalid amount", errs.ErrInvalidAmount, http.StatusBadRequest},
		{"Self transfer", errs.ErrSelfTransfer, http.StatusBadRequest},
		{"Invalid user ID", errs.ErrInvalidUserID, http.StatusBadRequest},
		{"Wrapped validation error", fmt.Errorf("invalid apply request: %w", errs.ErrInvalidReason), http.StatusBadRequest},
		{"Internal error", errs.ErrInternalServer, http.StatusInternalServerError},
		{"Unclassified error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, StatusCode(tc.err))
		})
	}
}

func TestServiceWiring(t *testing.T) {
	ctx := context.Background()

	newService := func(t *testing.T, publisher *mockevents.MockPublisher) (*Service, *mockpersistence.MockLedgerRepository) {
		mockTime := coremocks.NewMockTimeProvider(t)
		mockTime.EXPECT().Now().Return(time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)).Maybe()

		ledgerRepo := mockpersistence.NewMockLedgerRepository(t)
		uow := mockpersistence.NewMockUnitOfWork(t)
		uow.EXPECT().GetLedgerRepository(mock.Anything).Return(ledgerRepo).Maybe()

		var service *Service
		if publisher != nil {
			service = NewService(uow, publisher, mockTime, relaxedLogger(t), DefaultPolicy(), 16)
		} else {
			service = NewService(uow, nil, mockTime, relaxedLogger(t), DefaultPolicy(), 16)
		}
		return service, ledgerRepo
	}

	t.Run("Apply delegates to the processor", func(t *testing.T) {
		service, ledgerRepo := newService(t, nil)

		recorded := &entity.LedgerEntry{
			EntryID:        "entry-1",
			UserID:         "user-1",
			Delta:          50,
			BalanceAfter:   150,
			IdempotencyKey: "key-1",
		}
		ledgerRepo.EXPECT().
			FindByIdempotencyKey(ctx, "user-1", "key-1").
			Return(recorded, nil)

		result, err := service.Apply(ctx, usecase.ApplyRequest{
			UserID:         "user-1",
			Delta:          50,
			Reason:         entity.ReasonWorkoutReward,
			IdempotencyKey: "key-1",
		})

		require.NoError(t, err)
		assert.True(t, result.WasDuplicate)
		assert.Equal(t, "entry-1", result.EntryID)
	})

	t.Run("Transfer delegates to the coordinator", func(t *testing.T) {
		service, _ := newService(t, nil)

		result, err := service.Transfer(ctx, usecase.TransferRequest{
			SenderID:    "alice",
			RecipientID: "alice",
			Amount:      100,
		})

		require.ErrorIs(t, err, errs.ErrSelfTransfer)
		assert.Nil(t, result)
	})

	t.Run("Shutdown without a publisher is a no-op", func(t *testing.T) {
		service, _ := newService(t, nil)
		assert.NotPanics(t, func() { service.Shutdown(time.Second) })
	})

	t.Run("Shutdown drains the dispatcher", func(t *testing.T) {
		publisher := mockevents.NewMockPublisher(t)
		service, _ := newService(t, publisher)

		service.Shutdown(time.Second)
	})
}
