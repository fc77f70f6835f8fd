package sink

import (
	"context"
	"sync"
	"time"

	"github.com/Iron-Ham/clap/internal/clap"
	"github.com/Iron-Ham/clap/internal/errors"
	"github.com/Iron-Ham/clap/internal/logging"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/pool"
)

// DefaultTimeout bounds a single background delivery.
const DefaultTimeout = 5 * time.Second

// Async delivers to a wrapped sink on a background goroutine. Notify
// returns immediately; delivery errors are logged and passed to the result
// hook.
type Async struct {
	next     ResetSink
	logger   *logging.Logger
	timeout  time.Duration
	onResult func(clap.State, error)

	mu     sync.Mutex
	closed bool
	wg     conc.WaitGroup
}

// AsyncOption configures Async.
type AsyncOption func(*Async)

// WithAsyncLogger sets the logger.
func WithAsyncLogger(l *logging.Logger) AsyncOption {
	return func(a *Async) {
		if l != nil {
			a.logger = l.WithComponent("sink")
		}
	}
}

// WithTimeout sets the per-delivery timeout.
func WithTimeout(d time.Duration) AsyncOption {
	return func(a *Async) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// WithResultHook registers fn to run after every delivery, on the delivery
// goroutine.
func WithResultHook(fn func(clap.State, error)) AsyncOption {
	return func(a *Async) {
		a.onResult = fn
	}
}

// NewAsync wraps next.
func NewAsync(next ResetSink, opts ...AsyncOption) *Async {
	a := &Async{
		next:    next,
		logger:  logging.NopLogger(),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Notify implements ResetSink. The delivery outlives ctx's cancellation but
// keeps its values.
func (a *Async) Notify(ctx context.Context, state clap.State) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return errors.NewSinkError("publish reset", errors.ErrSinkClosed).WithSink("async")
	}

	detached := context.WithoutCancel(ctx)
	a.wg.Go(func() {
		dctx, cancel := context.WithTimeout(detached, a.timeout)
		defer cancel()

		err := a.next.Notify(dctx, state)
		if err != nil && errors.Is(dctx.Err(), context.DeadlineExceeded) {
			err = errors.NewTimeoutError("reset upload", a.timeout).WithCause(err)
		}
		if err != nil {
			a.logger.Warn("reset upload failed",
				"error", err,
				"retryable", errors.IsRetryable(err),
				"severity", errors.GetSeverity(err).String(),
				"count", state.Count)
		}
		if a.onResult != nil {
			a.onResult(state, err)
		}
	})
	return nil
}

// Wait blocks until every in-flight delivery has finished. A panicking
// delivery is logged and reported as an error.
func (a *Async) Wait() error {
	if r := a.wg.WaitAndRecover(); r != nil {
		a.logger.Error("reset upload panicked", "panic", r.Value, "stack", string(r.Stack))
		return r.AsError()
	}
	return nil
}

// Close rejects new deliveries and waits for in-flight ones.
func (a *Async) Close() error {
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()
	return a.Wait()
}

// Fanout delivers to every sink concurrently and joins their errors.
type Fanout struct {
	sinks []ResetSink
}

// NewFanout returns a Fanout over sinks. Nil entries are skipped.
func NewFanout(sinks ...ResetSink) *Fanout {
	f := &Fanout{}
	for _, s := range sinks {
		if s != nil {
			f.sinks = append(f.sinks, s)
		}
	}
	return f
}

// Notify implements ResetSink.
func (f *Fanout) Notify(ctx context.Context, state clap.State) error {
	p := pool.New().WithErrors().WithContext(ctx)
	for _, s := range f.sinks {
		p.Go(func(ctx context.Context) error {
			return s.Notify(ctx, state)
		})
	}
	return p.Wait()
}

// Len returns the number of sinks.
func (f *Fanout) Len() int { return len(f.sinks) }
