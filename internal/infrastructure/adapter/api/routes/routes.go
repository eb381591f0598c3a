package routes

import (
	"github.com/gin-gonic/gin"

	coreport "github.com/pulsefit/credit-ledger/internal/domain/port/core"
	"github.com/pulsefit/credit-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/pulsefit/credit-ledger/internal/infrastructure/adapter/api/middleware"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	ledgerHandler *handler.LedgerHandler,
	accountHandler *handler.AccountHandler,
) {
	// Ledger mutation routes
	ledgerRoutes := router.Group("/ledger")
	{
		// POST /ledger/apply
		ledgerRoutes.POST("/apply", ledgerHandler.Apply)

		// POST /ledger/transfer
		ledgerRoutes.POST("/transfer", ledgerHandler.Transfer)
	}

	// Account read and administrative routes
	accountRoutes := router.Group("/accounts")
	{
		// GET /accounts/:userId/balance
		accountRoutes.GET("/:userId/balance", accountHandler.GetBalance)

		// GET /accounts/:userId/entries
		accountRoutes.GET("/:userId/entries", accountHandler.GetStatement)

		// PUT /accounts/:userId/status
		accountRoutes.PUT("/:userId/status", accountHandler.SetStatus)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
}
