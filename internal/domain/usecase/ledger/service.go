package ledger

import (
	"context"
	"net/http"
	"time"

	errs "github.com/pulsefit/credit-ledger/internal/domain/error"
	coreport "github.com/pulsefit/credit-ledger/internal/domain/port/core"
	"github.com/pulsefit/credit-ledger/internal/domain/port/events"
	"github.com/pulsefit/credit-ledger/internal/domain/port/persistence"
	"github.com/pulsefit/credit-ledger/internal/domain/port/usecase"
)

// Service wires the engine's components together behind the LedgerUseCase
// interface: validator, idempotency guard, transaction processor, transfer
// coordinator and the async entry-event dispatcher.
type Service struct {
	processor   *Processor
	coordinator *Coordinator
	dispatcher  *EntryDispatcher
	logger      coreport.Logger
}

// NewService creates a fully wired ledger service. publisher may be nil, in
// which case no entry events are emitted.
func NewService(
	uow persistence.UnitOfWork,
	publisher events.Publisher,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	policy Policy,
	eventQueueSize int,
) *Service {
	guard := NewIdempotencyGuard(uow.GetLedgerRepository(context.Background()))
	validator := NewValidator(policy)
	processor := NewProcessor(uow, guard, validator, timeProvider, logger)

	var dispatcher *EntryDispatcher
	if publisher != nil {
		dispatcher = NewEntryDispatcher(publisher, logger, eventQueueSize)
		processor.WithDispatcher(dispatcher)
	}

	coordinator := NewCoordinator(uow, processor, validator, guard, logger)

	return &Service{
		processor:   processor,
		coordinator: coordinator,
		dispatcher:  dispatcher,
		logger:      logger,
	}
}

// Apply implements usecase.LedgerUseCase
func (s *Service) Apply(ctx context.Context, req usecase.ApplyRequest) (*usecase.ApplyResult, error) {
	return s.processor.Apply(ctx, req)
}

// Transfer implements usecase.LedgerUseCase
func (s *Service) Transfer(ctx context.Context, req usecase.TransferRequest) (*usecase.TransferResult, error) {
	return s.coordinator.Transfer(ctx, req)
}

// Shutdown drains the event dispatcher. Mutating calls issued after Shutdown
// still commit but emit no events.
func (s *Service) Shutdown(timeout time.Duration) {
	if s.dispatcher == nil {
		return
	}

	done := make(chan struct{})
	go func() {
		s.dispatcher.Shutdown()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Ledger service shut down cleanly", nil)
	case <-time.After(timeout):
		s.logger.Warn("Timed out draining entry event dispatcher", map[string]any{
			"timeout": timeout.String(),
		})
	}
}

// StatusCode maps an engine error to the HTTP status the API surface returns.
// Lock timeouts map to 409 so callers retry with the same idempotency key.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errs.IsInsufficientCreditsError(err):
		return http.StatusBadRequest
	case errs.IsAccountInactiveError(err):
		return http.StatusForbidden
	case errs.IsNotFoundError(err):
		return http.StatusNotFound
	case errs.IsLockTimeoutError(err):
		return http.StatusConflict
	case errs.ErrorCode(err) >= 4000 && errs.ErrorCode(err) < 5000:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
