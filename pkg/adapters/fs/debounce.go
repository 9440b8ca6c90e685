package fs

import (
	"sync"
	"time"
)

// debouncer coalesces bursts of triggers into one call after a quiet period.
type debouncer struct {
	mu      sync.Mutex
	wait    time.Duration
	timer   *time.Timer
	stopped bool
	wg      sync.WaitGroup
}

func newDebouncer(wait time.Duration) *debouncer {
	return &debouncer{wait: wait}
}

// trigger schedules fn after the quiet period, replacing any pending call.
func (d *debouncer) trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil && d.timer.Stop() {
		d.wg.Done()
	}
	d.wg.Add(1)
	d.timer = time.AfterFunc(d.wait, func() {
		defer d.wg.Done()
		fn()
	})
}

// stopAndWait drops the pending call and waits for a running one to finish.
// It reports false if that did not happen within timeout.
func (d *debouncer) stopAndWait(timeout time.Duration) bool {
	d.mu.Lock()
	d.stopped = true
	if d.timer != nil && d.timer.Stop() {
		d.wg.Done()
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}
