package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/pulsefit/credit-ledger/internal/domain/entity"
	coreport "github.com/pulsefit/credit-ledger/internal/domain/port/core"
	"github.com/pulsefit/credit-ledger/internal/domain/port/events"
)

// defaultPublishTimeout bounds a single publish attempt so a slow broker
// cannot back the dispatcher up indefinitely
const defaultPublishTimeout = 5 * time.Second

// EntryDispatcher fans committed ledger entries out to the event publisher on
// a dedicated worker goroutine. Enqueueing never blocks the mutation path:
// delivery is best-effort and an overflowing queue drops the event with a
// warning rather than stalling a committed transaction.
type EntryDispatcher struct {
	publisher events.Publisher
	logger    coreport.Logger

	queue chan events.EntryAppended
	wg    sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewEntryDispatcher creates a dispatcher with the given queue capacity and
// starts its worker
func NewEntryDispatcher(publisher events.Publisher, logger coreport.Logger, capacity int) *EntryDispatcher {
	if capacity <= 0 {
		capacity = 256
	}

	d := &EntryDispatcher{
		publisher: publisher,
		logger:    logger,
		queue:     make(chan events.EntryAppended, capacity),
	}

	d.wg.Add(1)
	go d.run()

	return d
}

// Enqueue hands a committed entry to the worker. Events for a single account
// are enqueued in commit order because the caller still holds no lock but
// commits are serialized per account. Entries committed after Shutdown are
// dropped with a warning; the mutation itself is unaffected.
func (d *EntryDispatcher) Enqueue(entry *entity.LedgerEntry) {
	event := events.NewEntryAppended(entry)

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		d.logger.Warn("Entry event dispatcher stopped, dropping event", map[string]any{
			"entry_id": event.EntryID,
			"user_id":  event.UserID,
		})
		return
	}

	select {
	case d.queue <- event:
	default:
		d.logger.Warn("Entry event queue full, dropping event", map[string]any{
			"entry_id": event.EntryID,
			"user_id":  event.UserID,
		})
	}
}

// run drains the queue until Shutdown closes it
func (d *EntryDispatcher) run() {
	defer d.wg.Done()

	d.logger.Info("Entry event dispatcher started", nil)

	for event := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), defaultPublishTimeout)
		err := d.publisher.Publish(ctx, event)
		cancel()

		if err != nil {
			d.logger.Error("Failed to publish entry event", map[string]any{
				"entry_id": event.EntryID,
				"user_id":  event.UserID,
				"error":    err.Error(),
			})
			continue
		}

		d.logger.Debug("Entry event published", map[string]any{
			"entry_id": event.EntryID,
			"user_id":  event.UserID,
			"reason":   event.Reason,
		})
	}

	d.logger.Info("Entry event dispatcher stopped", nil)
}

// Shutdown stops accepting events, drains what is already queued and waits
// for the worker to finish
func (d *EntryDispatcher) Shutdown() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	d.wg.Wait()
}
