package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pulsefit/credit-ledger/internal/domain/entity"
	domainerr "github.com/pulsefit/credit-ledger/internal/domain/error"
	coreport "github.com/pulsefit/credit-ledger/internal/domain/port/core"
	"github.com/pulsefit/credit-ledger/internal/domain/port/usecase"
	ledgerUseCase "github.com/pulsefit/credit-ledger/internal/domain/usecase/ledger"
	"github.com/pulsefit/credit-ledger/internal/infrastructure/adapter/api/dto"
)

// AccountHandler handles account read and administrative HTTP requests
type AccountHandler struct {
	accountUseCase usecase.AccountUseCase
	logger         coreport.Logger
}

// NewAccountHandler creates a new account handler instance
func NewAccountHandler(accountUseCase usecase.AccountUseCase, logger coreport.Logger) *AccountHandler {
	return &AccountHandler{
		accountUseCase: accountUseCase,
		logger:         logger,
	}
}

// GetBalance handles the GET /accounts/{userId}/balance endpoint
func (h *AccountHandler) GetBalance(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidUserID),
			Message: "User ID is required",
		})
		return
	}

	balance, err := h.accountUseCase.GetBalance(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Error getting account balance", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		c.JSON(ledgerUseCase.StatusCode(err), dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		UserID:  balance.UserID,
		Balance: balance.Balance,
		Version: balance.Version,
		Status:  string(balance.Status),
	})
}

// GetStatement handles the GET /accounts/{userId}/entries endpoint
func (h *AccountHandler) GetStatement(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidUserID),
			Message: "User ID is required",
		})
		return
	}

	limit := 0
	if limitParam := c.Query("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
				Message: "Invalid limit parameter",
			})
			return
		}
		limit = parsed
	}

	entries, err := h.accountUseCase.GetStatement(c.Request.Context(), userID, limit)
	if err != nil {
		h.logger.Error("Error getting account statement", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		c.JSON(ledgerUseCase.StatusCode(err), dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: err.Error(),
		})
		return
	}

	response := dto.StatementResponse{
		UserID:  userID,
		Entries: make([]dto.StatementEntry, 0, len(entries)),
	}
	for _, entry := range entries {
		response.Entries = append(response.Entries, dto.StatementEntry{
			EntryID:      entry.EntryID,
			Delta:        entry.Delta,
			BalanceAfter: entry.BalanceAfter,
			Reason:       string(entry.Reason),
			RefType:      entry.RefType,
			RefID:        entry.RefID,
			CreatedAt:    entry.CreatedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, response)
}

// SetStatus handles the PUT /accounts/{userId}/status endpoint
func (h *AccountHandler) SetStatus(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidUserID),
			Message: "User ID is required",
		})
		return
	}

	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	err := h.accountUseCase.SetStatus(c.Request.Context(), userID, entity.AccountStatus(req.Status))
	if err != nil {
		h.logger.Error("Error setting account status", map[string]any{
			"user_id": userID,
			"status":  req.Status,
			"error":   err.Error(),
		})
		c.JSON(ledgerUseCase.StatusCode(err), dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}
