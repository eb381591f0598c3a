package events

import (
	"context"
	"time"

	"github.com/pulsefit/credit-ledger/internal/domain/entity"
)

// EntryAppended is the event emitted for every committed ledger entry.
// Fraud/anomaly detection consumes these asynchronously and read-only.
type EntryAppended struct {
	EntryID        string        `json:"entryId"`
	UserID         string        `json:"userId"`
	Delta          int64         `json:"delta"`
	BalanceAfter   int64         `json:"balanceAfter"`
	Reason         entity.Reason `json:"reason"`
	RefType        string        `json:"refType,omitempty"`
	RefID          string        `json:"refId,omitempty"`
	IdempotencyKey string        `json:"idempotencyKey"`
	CreatedAt      time.Time     `json:"createdAt"`
}

// NewEntryAppended builds the event payload for a committed entry
func NewEntryAppended(entry *entity.LedgerEntry) EntryAppended {
	return EntryAppended{
		EntryID:        entry.EntryID,
		UserID:         entry.UserID,
		Delta:          entry.Delta,
		BalanceAfter:   entry.BalanceAfter,
		Reason:         entry.Reason,
		RefType:        entry.RefType,
		RefID:          entry.RefID,
		IdempotencyKey: entry.IdempotencyKey,
		CreatedAt:      entry.CreatedAt,
	}
}

// Publisher delivers committed-entry events to external subscribers.
// Delivery is best-effort: a publish failure never affects the already
// committed mutation.
type Publisher interface {
	Publish(ctx context.Context, event EntryAppended) error
	Close() error
}
