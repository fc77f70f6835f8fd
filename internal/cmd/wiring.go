package cmd

import (
	"context"
	"time"

	"github.com/Iron-Ham/clap/internal/animation/termfx"
	"github.com/Iron-Ham/clap/internal/clap"
	"github.com/Iron-Ham/clap/internal/config"
	"github.com/Iron-Ham/clap/internal/errors"
	"github.com/Iron-Ham/clap/internal/logging"
	"github.com/Iron-Ham/clap/internal/sink"
	"github.com/Iron-Ham/clap/internal/tui"
	"github.com/Iron-Ham/clap/internal/tui/msg"
	"github.com/Iron-Ham/clap/internal/tui/styles"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"
)

// pingTimeout bounds the startup reachability check of the Redis sink.
const pingTimeout = 2 * time.Second

// loadConfig loads and validates the configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, errors.NewConfigError("invalid configuration", err).WithPath(viper.ConfigFileUsed())
	}
	return cfg, nil
}

// buildLogger returns the file logger, or a no-op logger when logging is
// disabled.
func buildLogger(cfg *config.Config) (*logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NopLogger(), nil
	}
	logger, err := logging.NewLogger(cfg.Logging.ResolveDir(), cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	return logger.WithWidget(cfg.Widget.ID), nil
}

// buildSink assembles the reset sink: the configured backend fanned out
// with a log sink, delivered in the background. The returned close func
// waits for in-flight uploads and releases the backend.
func buildSink(ctx context.Context, cfg *config.Config, logger *logging.Logger, opts ...sink.AsyncOption) (*sink.Async, func() error) {
	var backend sink.ResetSink
	var closers []func() error

	switch cfg.Sink.Kind {
	case config.SinkRedis:
		r := newRedisSink(cfg)
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		if err := r.Ping(pingCtx); err != nil {
			logger.Warn("redis sink unreachable, uploads will be retried per reset",
				"addr", cfg.Sink.Redis.Addr, "error", err, "retryable", errors.IsRetryable(err))
		}
		cancel()
		backend = r
		closers = append(closers, r.Close)
	case config.SinkNone:
		backend = nil
	}

	opts = append([]sink.AsyncOption{
		sink.WithAsyncLogger(logger),
		sink.WithTimeout(sink.DefaultTimeout),
	}, opts...)
	async := sink.NewAsync(sink.NewFanout(sink.NewLogSink(logger), backend), opts...)
	closeAll := func() error {
		errs := []error{async.Close()}
		for _, c := range closers {
			errs = append(errs, c())
		}
		return errors.Join(errs...)
	}
	return async, closeAll
}

// newRedisSink connects the Redis sink described by cfg.
func newRedisSink(cfg *config.Config) *sink.RedisSink {
	return sink.NewRedis(cfg.Sink.Redis.Addr, cfg.Sink.Redis.Password, cfg.Sink.Redis.DB,
		sink.WithKeyPrefix(cfg.Sink.Redis.KeyPrefix),
		sink.WithTTL(cfg.Sink.Redis.TTL()),
	)
}

// reportUploadErrors returns a sink result hook that forwards failed
// deliveries to send as error messages.
func reportUploadErrors(send func(tea.Msg)) func(clap.State, error) {
	return func(state clap.State, err error) {
		if err == nil {
			return
		}
		send(msg.ErrMsg{Err: errors.Wrap(err, "reset upload")})
	}
}

// buildStyles returns the themed style set and the per-role overrides.
func buildStyles(cfg *config.Config) (*styles.Set, styles.Overrides) {
	return styles.ForTheme(cfg.TUI.Theme), styles.FromConfig(cfg.TUI.Styles)
}

// widgetOptions maps the configuration onto widget options.
func widgetOptions(cfg *config.Config) []tui.Option {
	_, overrides := buildStyles(cfg)
	ease, _ := termfx.Named(cfg.Animation.ButtonEasing)
	return []tui.Option{
		tui.WithID(cfg.Widget.ID),
		tui.WithInitialState(cfg.Widget.InitialState),
		tui.WithDuration(cfg.Animation.Duration()),
		tui.WithFrameInterval(cfg.Animation.FrameInterval()),
		tui.WithButtonEasing(ease),
		tui.WithUploadDelay(cfg.Reset.UploadDelay()),
		tui.WithOverrides(overrides),
	}
}
