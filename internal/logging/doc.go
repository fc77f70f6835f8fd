// Package logging provides structured logging for the clap widget.
//
// The package wraps Go's log/slog with a JSON handler. A widget run writes
// one debug.log per log directory so a session can be reviewed after the
// terminal has been restored.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger("/path/to/logs", "INFO")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	logger.Info("timeline built", "duration_ms", 300)
//
// # Context Propagation
//
// Child loggers carry persistent attributes:
//
//	wl := logger.WithWidget("clap-1").WithComponent("animation")
//	wl.Debug("replay", "count", 3)
//
// Every entry produced by wl includes widget_id and component.
//
// # Thread Safety
//
// All types in this package are safe for concurrent use. Reset sinks log
// from their own goroutines while the widget logs from the event loop.
package logging
