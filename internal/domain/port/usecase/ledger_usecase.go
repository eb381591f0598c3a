package usecase

import (
	"context"

	"github.com/pulsefit/credit-ledger/internal/domain/entity"
)

// ApplyRequest asks for exactly one signed delta against exactly one account
type ApplyRequest struct {
	UserID         string        `json:"userId"`
	Delta          int64         `json:"delta"`
	Reason         entity.Reason `json:"reason"`
	RefType        string        `json:"refType,omitempty"`
	RefID          string        `json:"refId,omitempty"`
	IdempotencyKey string        `json:"idempotencyKey"`
}

// ApplyResult reports the outcome of an apply call. WasDuplicate means the
// idempotency key had already been applied and the recorded outcome was
// replayed without touching the account store.
type ApplyResult struct {
	EntryID      string `json:"entryId"`
	NewBalance   int64  `json:"newBalance"`
	Version      uint64 `json:"version"`
	WasDuplicate bool   `json:"wasDuplicate"`
}

// TransferRequest asks to move a fixed positive amount between two accounts.
// TransferID is optional; when empty the coordinator generates one.
type TransferRequest struct {
	SenderID    string `json:"senderId"`
	RecipientID string `json:"recipientId"`
	Amount      int64  `json:"amount"`
	TransferID  string `json:"transferId,omitempty"`
}

// TransferResult reports both resulting balances of a committed transfer
type TransferResult struct {
	TransferID          string `json:"transferId"`
	SenderNewBalance    int64  `json:"senderNewBalance"`
	RecipientNewBalance int64  `json:"recipientNewBalance"`
}

// LedgerUseCase defines the engine's two mutating operations
type LedgerUseCase interface {
	// Apply applies one signed delta to one account, exactly once per
	// idempotency key, and returns the resulting (or replayed) outcome
	Apply(ctx context.Context, req ApplyRequest) (*ApplyResult, error)

	// Transfer moves amount credits between two accounts as one atomic,
	// deadlock-free unit
	Transfer(ctx context.Context, req TransferRequest) (*TransferResult, error)
}

// BalanceResponse is the read-only projection view returned to callers.
// Version supports optimistic-read consistency checks upstream.
type BalanceResponse struct {
	UserID  string               `json:"userId"`
	Balance int64                `json:"balance"`
	Version uint64               `json:"version"`
	Status  entity.AccountStatus `json:"status"`
}

// AccountUseCase defines the read and administrative operations on accounts
type AccountUseCase interface {
	// GetBalance retrieves the current balance projection for a user
	GetBalance(ctx context.Context, userID string) (*BalanceResponse, error)

	// GetStatement returns the user's most recent ledger entries, newest first
	GetStatement(ctx context.Context, userID string, limit int) ([]*entity.LedgerEntry, error)

	// SetStatus applies an administrative status override (freeze, suspend,
	// reactivate). The engine enforces the status on the next mutation but
	// does not decide it.
	SetStatus(ctx context.Context, userID string, status entity.AccountStatus) error
}
