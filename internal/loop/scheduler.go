package loop

import (
	"sync"
	"time"
)

// Task is a handle to a periodic job.
type Task interface {
	// Stop cancels the job. It never blocks and may be called from inside the job.
	Stop()
}

// Scheduler runs a function periodically.
type Scheduler interface {
	Every(interval time.Duration, fn func()) Task
}

// TickerScheduler runs each job on its own goroutine driven by a time.Ticker.
type TickerScheduler struct{}

// Every starts calling fn every interval until the returned task is stopped.
func (TickerScheduler) Every(interval time.Duration, fn func()) Task {
	t := &tickerTask{
		ticker: time.NewTicker(interval),
		done:   make(chan struct{}),
	}
	go t.run(fn)
	return t
}

type tickerTask struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (t *tickerTask) run(fn func()) {
	defer t.ticker.Stop()
	for {
		select {
		case <-t.done:
			return
		case <-t.ticker.C:
			// Stop may race with a pending tick
			select {
			case <-t.done:
				return
			default:
			}
			fn()
		}
	}
}

func (t *tickerTask) Stop() {
	t.once.Do(func() { close(t.done) })
}

// Compile-time check that TickerScheduler implements Scheduler.
var _ Scheduler = TickerScheduler{}
