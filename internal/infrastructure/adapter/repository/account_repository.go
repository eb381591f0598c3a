package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pulsefit/credit-ledger/internal/domain/entity"
	errs "github.com/pulsefit/credit-ledger/internal/domain/error"
	coreport "github.com/pulsefit/credit-ledger/internal/domain/port/core"
	"github.com/pulsefit/credit-ledger/internal/infrastructure/adapter/model"
)

// AccountRepository implements persistence.AccountRepository using GORM.
// The db handle it is constructed with may be a plain connection (reads) or a
// transaction from the unit of work (locked mutations).
type AccountRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewAccountRepository creates a new AccountRepository instance
func NewAccountRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *AccountRepository {
	return &AccountRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// modelToEntity converts an account model to a domain entity
func (r *AccountRepository) modelToEntity(accountModel *model.Account) *entity.Account {
	account := &entity.Account{
		UserID:              accountModel.UserID,
		Version:             accountModel.Version,
		TotalEarned:         accountModel.TotalEarned,
		TotalSpent:          accountModel.TotalSpent,
		TotalTransferredIn:  accountModel.TotalTransferredIn,
		TotalTransferredOut: accountModel.TotalTransferredOut,
		Status:              entity.AccountStatus(accountModel.Status),
		LastEntryID:         accountModel.LastEntryID,
		CreatedAt:           accountModel.CreatedAt,
		UpdatedAt:           accountModel.UpdatedAt,
	}
	account.SetBalance(accountModel.Balance)
	return account
}

// handleDatabaseError translates raw database errors into domain errors
func (r *AccountRepository) handleDatabaseError(operation string, err error, userID string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrAccountNotFound
	}

	if r.errorClassifier.IsLockTimeoutError(err) || r.errorClassifier.IsSerializationError(err) {
		r.logger.Warn("Account lock not acquired in time", map[string]any{
			"user_id":   userID,
			"operation": operation,
			"error":     err.Error(),
		})
		return errs.ErrLockTimeout
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"user_id": userID,
		"error":   err.Error(),
	})
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// GetByID retrieves an account without locking it
func (r *AccountRepository) GetByID(ctx context.Context, userID string) (*entity.Account, error) {
	var accountModel model.Account
	result := r.db.WithContext(ctx).First(&accountModel, "user_id = ?", userID)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting account", result.Error, userID)
	}
	return r.modelToEntity(&accountModel), nil
}

// GetForUpdate acquires the exclusive row lock and returns the projection,
// creating the row at balance 0 if this is the user's first mutation. The
// insert and the locking select run inside the caller's unit of work, so the
// check-and-create race cannot occur: the unique key makes concurrent opens
// collapse into one row, and the lock serializes everything after that.
func (r *AccountRepository) GetForUpdate(ctx context.Context, userID string) (*entity.Account, error) {
	now := r.timeProvider.Now()

	err := r.db.WithContext(ctx).Exec(`
		INSERT INTO accounts (user_id, balance, version, total_earned, total_spent,
			total_transferred_in, total_transferred_out, status, last_entry_id, created_at, updated_at)
		VALUES (?, 0, 0, 0, 0, 0, 0, 'active', '', ?, ?)
		ON CONFLICT (user_id) DO NOTHING`,
		userID, now, now,
	).Error
	if err != nil {
		return nil, r.handleDatabaseError("opening account", err, userID)
	}

	var accountModel model.Account
	result := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&accountModel, "user_id = ?", userID)
	if result.Error != nil {
		return nil, r.handleDatabaseError("locking account", result.Error, userID)
	}

	account := r.modelToEntity(&accountModel)
	if err := account.CanMutate(); err != nil {
		r.logger.Warn("Mutation rejected by account status", map[string]any{
			"user_id": userID,
			"status":  account.Status,
		})
		return nil, err
	}

	return account, nil
}

// ApplyDelta persists the mutated projection. Must run in the same unit of
// work that holds the lock from GetForUpdate; no other code path writes the
// balance.
func (r *AccountRepository) ApplyDelta(ctx context.Context, account *entity.Account) error {
	result := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("user_id = ?", account.UserID).
		Updates(map[string]any{
			"balance":               account.Balance(),
			"version":               account.Version,
			"total_earned":          account.TotalEarned,
			"total_spent":           account.TotalSpent,
			"total_transferred_in":  account.TotalTransferredIn,
			"total_transferred_out": account.TotalTransferredOut,
			"last_entry_id":         account.LastEntryID,
			"updated_at":            account.UpdatedAt,
		})

	if result.Error != nil {
		return r.handleDatabaseError("updating account projection", result.Error, account.UserID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrAccountNotFound
	}

	r.logger.Debug("Account projection updated", map[string]any{
		"user_id": account.UserID,
		"balance": account.Balance(),
		"version": account.Version,
	})
	return nil
}

// SetStatus updates the account status under the row lock
func (r *AccountRepository) SetStatus(ctx context.Context, userID string, status entity.AccountStatus) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var accountModel model.Account
		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&accountModel, "user_id = ?", userID)
		if result.Error != nil {
			return result.Error
		}

		return tx.Model(&model.Account{}).
			Where("user_id = ?", userID).
			Updates(map[string]any{
				"status":     string(status),
				"updated_at": r.timeProvider.Now(),
			}).Error
	})

	if err != nil {
		return r.handleDatabaseError("setting account status", err, userID)
	}
	return nil
}
