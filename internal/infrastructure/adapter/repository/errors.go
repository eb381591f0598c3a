package repository

import (
	"context"
	"errors"
	"strings"
)

// ErrorClassifier inspects raw database errors so repositories can translate
// them into domain errors. Postgres reports these conditions as text, so the
// checks are string based.
type ErrorClassifier struct{}

// NewErrorClassifier creates a new ErrorClassifier
func NewErrorClassifier() *ErrorClassifier {
	return &ErrorClassifier{}
}

// IsDuplicateKeyError checks if the error is a unique-constraint violation
func (c *ErrorClassifier) IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint") ||
		strings.Contains(msg, "23505")
}

// IsLockTimeoutError checks if the error means a row lock could not be
// acquired in time; these are safe for the caller to retry
func (c *ErrorClassifier) IsLockTimeoutError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "lock timeout") ||
		strings.Contains(msg, "canceling statement due to lock timeout") ||
		strings.Contains(msg, "lock_timeout") ||
		strings.Contains(msg, "deadline exceeded") ||
		strings.Contains(msg, "could not obtain lock")
}

// IsSerializationError checks for deadlock or serialization failures, which
// the engine surfaces as retryable lock timeouts
func (c *ErrorClassifier) IsSerializationError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "deadlock") ||
		strings.Contains(msg, "could not serialize access") ||
		strings.Contains(msg, "serialization failure")
}

// IsConnectionError checks if the error is related to database connectivity
func (c *ErrorClassifier) IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "server closed") ||
		strings.Contains(msg, "dial")
}
