package bgtask

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// BackgroundTask tracks the goroutines the web server starts next to the
// http listener (the mDNS responder), they share one shutdown context.
type BackgroundTask struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	tasks  atomic.Int32
}

func New() *BackgroundTask {
	ctx, cancel := context.WithCancel(context.Background())
	return &BackgroundTask{ctx: ctx, cancel: cancel}
}

// ShutdownCtx is canceled once Shutdown is called.
func (bt *BackgroundTask) ShutdownCtx() context.Context {
	return bt.ctx
}

// Running reports the number of tasks that have not returned yet.
func (bt *BackgroundTask) Running() int {
	return int(bt.tasks.Load())
}

// Run starts fn in a goroutine, a panic in fn is logged and does not take the process down.
func (bt *BackgroundTask) Run(fn func(shutdownCtx context.Context)) {
	bt.wg.Add(1)
	bt.tasks.Add(1)
	go func() {
		defer func() {
			bt.wg.Done()
			bt.tasks.Add(-1)
			if r := recover(); r != nil {
				slog.Error("Background task panicked", "err", fmt.Errorf("%v", r))
			}
		}()
		fn(bt.ctx)
	}()
}

// Shutdown cancels ShutdownCtx and waits up to timeout for the tasks to return.
func (bt *BackgroundTask) Shutdown(timeout time.Duration) error {
	bt.cancel()
	done := make(chan struct{})
	go func() {
		bt.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("shutdown timeout, %d background tasks still running", bt.tasks.Load())
	}
}
