package client

import (
	"context"
	"sync"
)

// lifecycle is the mount state shared by the view models. Close cancels
// in-flight calls, and writes arriving after Close are dropped.
//
// Loads are numbered when they start; a response older than the last one
// applied is dropped, so overlapping loads never roll the view back.
type lifecycle struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	closed  bool
	started uint64
	applied uint64
}

func (l *lifecycle) start() {
	l.ctx, l.cancel = context.WithCancel(context.Background())
}

// scope derives a call context that also ends when the view is closed.
func (l *lifecycle) scope(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(l.ctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// nextLoad numbers a load about to start.
func (l *lifecycle) nextLoad() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.started++
	return l.started
}

// claimLoad reports whether the response of load seq may be written and marks
// it applied. Callers hold l.mu.
func (l *lifecycle) claimLoad(seq uint64) bool {
	if seq <= l.applied {
		return false
	}
	l.applied = seq
	return true
}

func (l *lifecycle) Close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()
	l.cancel()
}

func (l *lifecycle) Closed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}

var resultClosed = Result{Error: "view closed", Kind: KindUnknown}
