package entity

import (
	"math"

	errs "github.com/pulsefit/credit-ledger/internal/domain/error"
)

// CheckedAdd adds a signed delta to a balance, guarding against int64 overflow.
// Balances are whole credits; fractional units are not supported.
func CheckedAdd(balance, delta int64) (int64, error) {
	if delta > 0 && balance > math.MaxInt64-delta {
		return 0, errs.ErrAmountOverflow
	}
	if delta < 0 && balance < math.MinInt64-delta {
		return 0, errs.ErrAmountOverflow
	}
	return balance + delta, nil
}

// AbsDelta returns the magnitude of a signed delta.
// math.MinInt64 has no positive counterpart and is rejected upstream by
// ValidateDelta before it can reach here.
func AbsDelta(delta int64) int64 {
	if delta < 0 {
		return -delta
	}
	return delta
}

// ValidateDelta rejects deltas the engine can never apply: zero (a no-op entry
// would still consume an idempotency key) and math.MinInt64 (magnitude not
// representable).
func ValidateDelta(delta int64) error {
	if delta == 0 || delta == math.MinInt64 {
		return errs.ErrInvalidAmount
	}
	return nil
}
