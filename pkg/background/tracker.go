package background

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Tracker runs detached units of work that outlive the request that scheduled
// them while still being tied to process shutdown. The handler schedules click
// logging here after writing the redirect; main drains the tracker before
// exiting. Tasks still running when the drain deadline passes are abandoned,
// which the click-attribution contract accepts as loss.
type Tracker struct {
	wg     sync.WaitGroup
	logger *zap.Logger
}

// NewTracker creates a Tracker.
func NewTracker(logger *zap.Logger) *Tracker {
	return &Tracker{logger: logger}
}

// Go schedules fn on its own goroutine. Panics are recovered and logged so a
// detached task can never take the process down.
func (t *Tracker) Go(name string, fn func()) {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				t.logger.Error("background task panicked",
					zap.String("task", name),
					zap.Any("panic", r),
				)
			}
		}()
		fn()
	}()
}

// Drain waits for in-flight tasks to finish, up to timeout. Returns false if
// the deadline passed with tasks still running.
func (t *Tracker) Drain(timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}
