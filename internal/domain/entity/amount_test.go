package entity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	errs "github.com/pulsefit/credit-ledger/internal/domain/error"
)

func TestCheckedAdd(t *testing.T) {
	t.Run("Simple addition", func(t *testing.T) {
		result, err := CheckedAdd(100, 50)
		assert.NoError(t, err)
		assert.Equal(t, int64(150), result)
	})

	t.Run("Negative delta", func(t *testing.T) {
		result, err := CheckedAdd(100, -30)
		assert.NoError(t, err)
		assert.Equal(t, int64(70), result)
	})

	t.Run("Result below zero is allowed here", func(t *testing.T) {
		// The non-negativity check belongs to the account, not the arithmetic
		result, err := CheckedAdd(10, -50)
		assert.NoError(t, err)
		assert.Equal(t, int64(-40), result)
	})

	t.Run("Positive overflow", func(t *testing.T) {
		_, err := CheckedAdd(math.MaxInt64, 1)
		assert.ErrorIs(t, err, errs.ErrAmountOverflow)
	})

	t.Run("Negative overflow", func(t *testing.T) {
		_, err := CheckedAdd(math.MinInt64, -1)
		assert.ErrorIs(t, err, errs.ErrAmountOverflow)
	})

	t.Run("Exact max is fine", func(t *testing.T) {
		result, err := CheckedAdd(math.MaxInt64-10, 10)
		assert.NoError(t, err)
		assert.Equal(t, int64(math.MaxInt64), result)
	})
}

func TestAbsDelta(t *testing.T) {
	assert.Equal(t, int64(5), AbsDelta(5))
	assert.Equal(t, int64(5), AbsDelta(-5))
	assert.Equal(t, int64(0), AbsDelta(0))
}

func TestValidateDelta(t *testing.T) {
	t.Run("Valid deltas", func(t *testing.T) {
		assert.NoError(t, ValidateDelta(1))
		assert.NoError(t, ValidateDelta(-1))
		assert.NoError(t, ValidateDelta(math.MaxInt64))
		assert.NoError(t, ValidateDelta(math.MinInt64+1))
	})

	t.Run("Zero is rejected", func(t *testing.T) {
		assert.ErrorIs(t, ValidateDelta(0), errs.ErrInvalidAmount)
	})

	t.Run("MinInt64 is rejected", func(t *testing.T) {
		assert.ErrorIs(t, ValidateDelta(math.MinInt64), errs.ErrInvalidAmount)
	})
}
