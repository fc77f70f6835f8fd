// Package sink delivers reset uploads: the state a widget reports a short
// while after it has been reset.
//
// Sinks are fire-and-forget from the widget's point of view. Wrap any
// ResetSink in Async to keep slow backends off the render loop.
package sink

import (
	"context"

	"github.com/Iron-Ham/clap/internal/clap"
	"github.com/Iron-Ham/clap/internal/logging"
)

// ResetSink receives the state after a reset.
type ResetSink interface {
	Notify(ctx context.Context, state clap.State) error
}

// Func adapts a function to ResetSink.
type Func func(ctx context.Context, state clap.State) error

// Notify implements ResetSink.
func (f Func) Notify(ctx context.Context, state clap.State) error {
	return f(ctx, state)
}

// Nop discards every upload.
type Nop struct{}

// Notify implements ResetSink.
func (Nop) Notify(context.Context, clap.State) error { return nil }

// LogSink writes each upload to a logger.
type LogSink struct {
	logger *logging.Logger
}

// NewLogSink returns a LogSink. A nil logger discards.
func NewLogSink(logger *logging.Logger) *LogSink {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &LogSink{logger: logger.WithComponent("sink")}
}

// Notify implements ResetSink.
func (s *LogSink) Notify(_ context.Context, state clap.State) error {
	s.logger.Info("reset uploaded",
		"count", state.Count,
		"count_total", state.CountTotal,
		"is_clicked", state.IsClicked)
	return nil
}
