package model

import (
	"time"
)

// Account represents the database model for the current-balance projection
type Account struct {
	UserID              string    `gorm:"primaryKey;size:64"`
	Balance             int64     `gorm:"not null;default:0;check:chk_accounts_balance,balance >= 0"`
	Version             uint64    `gorm:"not null;default:0"`
	TotalEarned         int64     `gorm:"not null;default:0"`
	TotalSpent          int64     `gorm:"not null;default:0"`
	TotalTransferredIn  int64     `gorm:"not null;default:0"`
	TotalTransferredOut int64     `gorm:"not null;default:0"`
	Status              string    `gorm:"not null;size:20;default:active"`
	LastEntryID         string    `gorm:"size:64"`
	CreatedAt           time.Time `gorm:"not null"`
	UpdatedAt           time.Time `gorm:"not null"`
}

// TableName specifies the table name for Account
func (Account) TableName() string {
	return "accounts"
}
