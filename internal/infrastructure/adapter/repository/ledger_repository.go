package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/pulsefit/credit-ledger/internal/domain/entity"
	errs "github.com/pulsefit/credit-ledger/internal/domain/error"
	coreport "github.com/pulsefit/credit-ledger/internal/domain/port/core"
	"github.com/pulsefit/credit-ledger/internal/infrastructure/adapter/model"
)

// LedgerRepository implements persistence.LedgerRepository using GORM.
// The ledger_entries table is append-only: this adapter exposes no update or
// delete, and the composite unique index enforces exactly-once per
// (user_id, idempotency_key).
type LedgerRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewLedgerRepository creates a new LedgerRepository instance
func NewLedgerRepository(db *gorm.DB, logger coreport.Logger) *LedgerRepository {
	return &LedgerRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// entityToModel converts a ledger entry entity to a database model
func (r *LedgerRepository) entityToModel(entry *entity.LedgerEntry) model.LedgerEntry {
	return model.LedgerEntry{
		EntryID:        entry.EntryID,
		UserID:         entry.UserID,
		Delta:          entry.Delta,
		BalanceAfter:   entry.BalanceAfter,
		Reason:         string(entry.Reason),
		RefType:        entry.RefType,
		RefID:          entry.RefID,
		IdempotencyKey: entry.IdempotencyKey,
		CreatedAt:      entry.CreatedAt,
	}
}

// modelToEntity converts a ledger entry model to a domain entity
func (r *LedgerRepository) modelToEntity(entryModel *model.LedgerEntry) *entity.LedgerEntry {
	return &entity.LedgerEntry{
		EntryID:        entryModel.EntryID,
		UserID:         entryModel.UserID,
		Delta:          entryModel.Delta,
		BalanceAfter:   entryModel.BalanceAfter,
		Reason:         entity.Reason(entryModel.Reason),
		RefType:        entryModel.RefType,
		RefID:          entryModel.RefID,
		IdempotencyKey: entryModel.IdempotencyKey,
		CreatedAt:      entryModel.CreatedAt,
	}
}

// Append persists a new ledger entry. A unique violation on
// (user_id, idempotency_key) surfaces as ErrDuplicateIdempotencyKey so the
// processor can turn it into a replay.
func (r *LedgerRepository) Append(ctx context.Context, entry *entity.LedgerEntry) error {
	entryModel := r.entityToModel(entry)

	result := r.db.WithContext(ctx).Create(&entryModel)
	if result.Error != nil {
		if r.errorClassifier.IsDuplicateKeyError(result.Error) {
			r.logger.Debug("Idempotency key already recorded", map[string]any{
				"user_id":         entry.UserID,
				"idempotency_key": entry.IdempotencyKey,
			})
			return errs.ErrDuplicateIdempotencyKey
		}

		r.logger.Error("Failed to append ledger entry", map[string]any{
			"entry_id": entry.EntryID,
			"user_id":  entry.UserID,
			"error":    result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return nil
}

// FindByIdempotencyKey returns the entry recorded for (userID, key).
// Reads require no locking: entries are immutable.
func (r *LedgerRepository) FindByIdempotencyKey(ctx context.Context, userID, key string) (*entity.LedgerEntry, error) {
	var entryModel model.LedgerEntry
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND idempotency_key = ?", userID, key).
		First(&entryModel)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrEntryNotFound
		}
		r.logger.Error("Failed to look up idempotency key", map[string]any{
			"user_id":         userID,
			"idempotency_key": key,
			"error":           result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return r.modelToEntity(&entryModel), nil
}

// ListByUser returns the user's most recent entries, newest first
func (r *LedgerRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*entity.LedgerEntry, error) {
	var entryModels []model.LedgerEntry
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entryModels)

	if result.Error != nil {
		r.logger.Error("Failed to list ledger entries", map[string]any{
			"user_id": userID,
			"error":   result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	entries := make([]*entity.LedgerEntry, 0, len(entryModels))
	for i := range entryModels {
		entries = append(entries, r.modelToEntity(&entryModels[i]))
	}
	return entries, nil
}
