package account

import (
	"context"
	"errors"
	"strings"

	"github.com/pulsefit/credit-ledger/internal/domain/entity"
	errs "github.com/pulsefit/credit-ledger/internal/domain/error"
	coreport "github.com/pulsefit/credit-ledger/internal/domain/port/core"
	"github.com/pulsefit/credit-ledger/internal/domain/port/persistence"
	"github.com/pulsefit/credit-ledger/internal/domain/port/usecase"
)

// defaultStatementLimit caps statement reads when the caller doesn't specify one
const defaultStatementLimit = 50

// maxStatementLimit is the hard upper bound on a single statement page
const maxStatementLimit = 500

// UseCase implements read and administrative operations on accounts. All
// balance mutations go through the ledger service; this usecase only reads
// the projection and audit trail, plus the status override path.
type UseCase struct {
	accountRepo persistence.AccountRepository
	ledgerRepo  persistence.LedgerRepository
	logger      coreport.Logger
}

// NewUseCase creates a new account usecase
func NewUseCase(
	accountRepo persistence.AccountRepository,
	ledgerRepo persistence.LedgerRepository,
	logger coreport.Logger,
) *UseCase {
	return &UseCase{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		logger:      logger,
	}
}

// GetBalance retrieves the current balance projection. Users that never had a
// mutation have no account row yet; they are reported at balance 0, version 0
// rather than as an error, matching the lazy-open lifecycle.
func (u *UseCase) GetBalance(ctx context.Context, userID string) (*usecase.BalanceResponse, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errs.ErrInvalidUserID
	}

	account, err := u.accountRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrAccountNotFound) {
			return &usecase.BalanceResponse{
				UserID:  userID,
				Balance: 0,
				Version: 0,
				Status:  entity.StatusActive,
			}, nil
		}
		u.logger.Error("Failed to get account balance", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return nil, err
	}

	return &usecase.BalanceResponse{
		UserID:  account.UserID,
		Balance: account.Balance(),
		Version: account.Version,
		Status:  account.Status,
	}, nil
}

// GetStatement returns the user's most recent ledger entries, newest first
func (u *UseCase) GetStatement(ctx context.Context, userID string, limit int) ([]*entity.LedgerEntry, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errs.ErrInvalidUserID
	}
	if limit <= 0 {
		limit = defaultStatementLimit
	}
	if limit > maxStatementLimit {
		limit = maxStatementLimit
	}

	entries, err := u.ledgerRepo.ListByUser(ctx, userID, limit)
	if err != nil {
		u.logger.Error("Failed to read ledger statement", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return nil, err
	}
	return entries, nil
}

// SetStatus applies an administrative status override. Fraud detection
// freezes accounts through this path; the engine enforces the status on the
// next mutation but never decides it.
func (u *UseCase) SetStatus(ctx context.Context, userID string, status entity.AccountStatus) error {
	if strings.TrimSpace(userID) == "" {
		return errs.ErrInvalidUserID
	}
	if !entity.IsValidStatus(status) {
		return errs.ErrInvalidStatus
	}

	if err := u.accountRepo.SetStatus(ctx, userID, status); err != nil {
		u.logger.Error("Failed to set account status", map[string]any{
			"user_id": userID,
			"status":  status,
			"error":   err.Error(),
		})
		return err
	}

	u.logger.Info("Account status changed", map[string]any{
		"user_id": userID,
		"status":  status,
	})
	return nil
}
