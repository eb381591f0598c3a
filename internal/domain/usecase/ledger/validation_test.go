package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pulsefit/credit-ledger/internal/domain/entity"
	errs "github.com/pulsefit/credit-ledger/internal/domain/error"
	"github.com/pulsefit/credit-ledger/internal/domain/port/usecase"
)

func validApplyRequest() usecase.ApplyRequest {
	return usecase.ApplyRequest{
		UserID:         "user-1",
		Delta:          100,
		Reason:         entity.ReasonWorkoutReward,
		IdempotencyKey: "key-1",
	}
}

func TestValidateApply(t *testing.T) {
	validator := NewValidator(DefaultPolicy())

	t.Run("Valid request", func(t *testing.T) {
		assert.NoError(t, validator.ValidateApply(validApplyRequest()))
	})

	t.Run("Empty user ID", func(t *testing.T) {
		req := validApplyRequest()
		req.UserID = "  "
		assert.ErrorIs(t, validator.ValidateApply(req), errs.ErrInvalidUserID)
	})

	t.Run("Empty idempotency key", func(t *testing.T) {
		req := validApplyRequest()
		req.IdempotencyKey = ""
		assert.ErrorIs(t, validator.ValidateApply(req), errs.ErrInvalidIdempotencyKey)
	})

	t.Run("Zero delta", func(t *testing.T) {
		req := validApplyRequest()
		req.Delta = 0
		assert.ErrorIs(t, validator.ValidateApply(req), errs.ErrInvalidAmount)
	})

	t.Run("Empty reason", func(t *testing.T) {
		req := validApplyRequest()
		req.Reason = ""
		assert.ErrorIs(t, validator.ValidateApply(req), errs.ErrInvalidReason)
	})

	t.Run("Delta cap disabled by default", func(t *testing.T) {
		req := validApplyRequest()
		req.Delta = 100_000_000
		assert.NoError(t, validator.ValidateApply(req))
	})

	t.Run("Delta cap enforced when set", func(t *testing.T) {
		capped := NewValidator(Policy{MinTransferAmount: 1, MaxTransferAmount: 1000, MaxEntryDelta: 500})

		req := validApplyRequest()
		req.Delta = 501
		assert.ErrorIs(t, capped.ValidateApply(req), errs.ErrInvalidAmount)

		req.Delta = -501
		assert.ErrorIs(t, capped.ValidateApply(req), errs.ErrInvalidAmount)

		req.Delta = 500
		assert.NoError(t, capped.ValidateApply(req))
	})
}

func TestValidateTransfer(t *testing.T) {
	validator := NewValidator(DefaultPolicy())

	validReq := func() usecase.TransferRequest {
		return usecase.TransferRequest{
			SenderID:    "alice",
			RecipientID: "bob",
			Amount:      100,
		}
	}

	t.Run("Valid request", func(t *testing.T) {
		assert.NoError(t, validator.ValidateTransfer(validReq()))
	})

	t.Run("Self transfer rejected", func(t *testing.T) {
		req := validReq()
		req.RecipientID = req.SenderID
		assert.ErrorIs(t, validator.ValidateTransfer(req), errs.ErrSelfTransfer)
	})

	t.Run("Empty parties rejected", func(t *testing.T) {
		req := validReq()
		req.SenderID = ""
		assert.ErrorIs(t, validator.ValidateTransfer(req), errs.ErrInvalidUserID)

		req = validReq()
		req.RecipientID = "   "
		assert.ErrorIs(t, validator.ValidateTransfer(req), errs.ErrInvalidUserID)
	})

	t.Run("Amount bounds", func(t *testing.T) {
		testCases := []struct {
			name   string
			amount int64
			valid  bool
		}{
			{"Below minimum", 0, false},
			{"Negative", -10, false},
			{"At minimum", 1, true},
			{"At maximum", 1_000_000, true},
			{"Above maximum", 1_000_001, false},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				req := validReq()
				req.Amount = tc.amount
				err := validator.ValidateTransfer(req)
				if tc.valid {
					assert.NoError(t, err)
				} else {
					assert.ErrorIs(t, err, errs.ErrInvalidAmount)
				}
			})
		}
	})
}
