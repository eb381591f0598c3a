package model

import (
	"time"
)

// LedgerEntry represents the database model for the append-only ledger log.
// The composite unique index on (user_id, idempotency_key) is the exactly-once
// guarantee; rows are never updated or deleted.
type LedgerEntry struct {
	EntryID        string    `gorm:"primaryKey;size:64"`
	UserID         string    `gorm:"not null;size:64;index;uniqueIndex:idx_ledger_user_idem_key"`
	Delta          int64     `gorm:"not null"`
	BalanceAfter   int64     `gorm:"not null"`
	Reason         string    `gorm:"not null;size:64;index"`
	RefType        string    `gorm:"size:64"`
	RefID          string    `gorm:"size:64;index"`
	IdempotencyKey string    `gorm:"not null;size:128;uniqueIndex:idx_ledger_user_idem_key"`
	CreatedAt      time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for LedgerEntry
func (LedgerEntry) TableName() string {
	return "ledger_entries"
}
