package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pulsefit/credit-ledger/internal/domain/entity"
	"github.com/pulsefit/credit-ledger/internal/domain/port/events"
	coremocks "github.com/pulsefit/credit-ledger/mocks/port/core"
	mockevents "github.com/pulsefit/credit-ledger/mocks/port/events"
)

func relaxedLogger(t *testing.T) *coremocks.MockLogger {
	mockLogger := coremocks.NewMockLogger(t)
	mockLogger.EXPECT().Debug(mock.Anything, mock.Anything).Maybe()
	mockLogger.EXPECT().Info(mock.Anything, mock.Anything).Maybe()
	mockLogger.EXPECT().Warn(mock.Anything, mock.Anything).Maybe()
	mockLogger.EXPECT().Error(mock.Anything, mock.Anything).Maybe()
	return mockLogger
}

func testEntry(entryID string) *entity.LedgerEntry {
	return &entity.LedgerEntry{
		EntryID:        entryID,
		UserID:         "user-1",
		Delta:          50,
		BalanceAfter:   150,
		Reason:         entity.ReasonWorkoutReward,
		IdempotencyKey: "key-" + entryID,
	}
}

func TestEntryDispatcher(t *testing.T) {
	t.Run("Delivers enqueued entries to the publisher", func(t *testing.T) {
		mockPublisher := mockevents.NewMockPublisher(t)

		var mu sync.Mutex
		var published []events.EntryAppended
		mockPublisher.EXPECT().
			Publish(mock.Anything, mock.AnythingOfType("events.EntryAppended")).
			Run(func(_ context.Context, event events.EntryAppended) {
				mu.Lock()
				published = append(published, event)
				mu.Unlock()
			}).
			Return(nil)

		dispatcher := NewEntryDispatcher(mockPublisher, relaxedLogger(t), 16)
		dispatcher.Enqueue(testEntry("e-1"))
		dispatcher.Enqueue(testEntry("e-2"))
		dispatcher.Shutdown()

		mu.Lock()
		defer mu.Unlock()
		require.Len(t, published, 2)
		assert.Equal(t, "e-1", published[0].EntryID)
		assert.Equal(t, "e-2", published[1].EntryID)
		assert.Equal(t, "user-1", published[0].UserID)
		assert.Equal(t, int64(150), published[0].BalanceAfter)
	})

	t.Run("Publish failure does not stop the worker", func(t *testing.T) {
		mockPublisher := mockevents.NewMockPublisher(t)
		mockPublisher.EXPECT().
			Publish(mock.Anything, mock.AnythingOfType("events.EntryAppended")).
			Return(errors.New("broker unreachable")).Once()
		mockPublisher.EXPECT().
			Publish(mock.Anything, mock.AnythingOfType("events.EntryAppended")).
			Return(nil).Once()

		dispatcher := NewEntryDispatcher(mockPublisher, relaxedLogger(t), 16)
		dispatcher.Enqueue(testEntry("e-1"))
		dispatcher.Enqueue(testEntry("e-2"))
		dispatcher.Shutdown()
	})

	t.Run("Full queue drops the event instead of blocking", func(t *testing.T) {
		mockPublisher := mockevents.NewMockPublisher(t)
		blocked := make(chan struct{})
		mockPublisher.EXPECT().
			Publish(mock.Anything, mock.AnythingOfType("events.EntryAppended")).
			Run(func(_ context.Context, _ events.EntryAppended) {
				<-blocked
			}).
			Return(nil).Maybe()

		dispatcher := NewEntryDispatcher(mockPublisher, relaxedLogger(t), 1)

		// First entry occupies the worker, second fills the queue, third must
		// be dropped without blocking this goroutine
		done := make(chan struct{})
		go func() {
			dispatcher.Enqueue(testEntry("e-1"))
			dispatcher.Enqueue(testEntry("e-2"))
			dispatcher.Enqueue(testEntry("e-3"))
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("Enqueue blocked on a full queue")
		}

		close(blocked)
		dispatcher.Shutdown()
	})

	t.Run("Enqueue after shutdown drops the event without panicking", func(t *testing.T) {
		mockPublisher := mockevents.NewMockPublisher(t)

		dispatcher := NewEntryDispatcher(mockPublisher, relaxedLogger(t), 4)
		dispatcher.Shutdown()

		// A mutation committing while the server drains still calls Enqueue;
		// the entry stays committed and only the event is lost
		assert.NotPanics(t, func() { dispatcher.Enqueue(testEntry("e-late")) })
		mockPublisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("Shutdown is idempotent", func(t *testing.T) {
		mockPublisher := mockevents.NewMockPublisher(t)

		dispatcher := NewEntryDispatcher(mockPublisher, relaxedLogger(t), 4)
		dispatcher.Shutdown()
		assert.NotPanics(t, func() { dispatcher.Shutdown() })
	})
}
