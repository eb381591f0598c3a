package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pulsefit/credit-ledger/internal/domain/entity"
	domainerr "github.com/pulsefit/credit-ledger/internal/domain/error"
	coreport "github.com/pulsefit/credit-ledger/internal/domain/port/core"
	"github.com/pulsefit/credit-ledger/internal/domain/port/usecase"
	ledgerUseCase "github.com/pulsefit/credit-ledger/internal/domain/usecase/ledger"
	"github.com/pulsefit/credit-ledger/internal/infrastructure/adapter/api/dto"
)

// LedgerHandler handles ledger mutation HTTP requests
type LedgerHandler struct {
	ledgerService usecase.LedgerUseCase
	logger        coreport.Logger
}

// NewLedgerHandler creates a new ledger handler instance
func NewLedgerHandler(ledgerService usecase.LedgerUseCase, logger coreport.Logger) *LedgerHandler {
	return &LedgerHandler{
		ledgerService: ledgerService,
		logger:        logger,
	}
}

// Apply handles the POST /ledger/apply endpoint
func (h *LedgerHandler) Apply(c *gin.Context) {
	var req dto.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid apply request format", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	applyReq := usecase.ApplyRequest{
		UserID:         req.UserID,
		Delta:          req.Delta,
		Reason:         entity.Reason(req.Reason),
		RefType:        req.RefType,
		RefID:          req.RefID,
		IdempotencyKey: req.IdempotencyKey,
	}

	result, err := h.ledgerService.Apply(c.Request.Context(), applyReq)
	if err != nil {
		c.JSON(ledgerUseCase.StatusCode(err), dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.ApplyResponse{
		EntryID:      result.EntryID,
		UserID:       req.UserID,
		NewBalance:   result.NewBalance,
		Version:      result.Version,
		WasDuplicate: result.WasDuplicate,
	})
}

// Transfer handles the POST /ledger/transfer endpoint
func (h *LedgerHandler) Transfer(c *gin.Context) {
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid transfer request format", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	transferReq := usecase.TransferRequest{
		SenderID:    req.SenderID,
		RecipientID: req.RecipientID,
		Amount:      req.Amount,
		TransferID:  req.TransferID,
	}

	result, err := h.ledgerService.Transfer(c.Request.Context(), transferReq)
	if err != nil {
		c.JSON(ledgerUseCase.StatusCode(err), dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.TransferResponse{
		TransferID:          result.TransferID,
		SenderNewBalance:    result.SenderNewBalance,
		RecipientNewBalance: result.RecipientNewBalance,
	})
}
