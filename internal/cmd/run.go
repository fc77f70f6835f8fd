package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/Iron-Ham/clap/internal/clap"
	"github.com/Iron-Ham/clap/internal/event"
	"github.com/Iron-Ham/clap/internal/metrics"
	"github.com/Iron-Ham/clap/internal/sink"
	"github.com/Iron-Ham/clap/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the interactive clap widget",
	Long: `Start the interactive clap widget in the terminal.

Press space or c to clap, r to reset and q to quit. After a reset the
restored state is uploaded to the configured sink once the upload
delay has passed.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	// Run is the default action
	rootCmd.RunE = runRun
}

func runRun(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("clap run needs an interactive terminal; use 'clap simulate' for scripted runs")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()
	watchConfig(logger)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	bus := event.NewBus(logger)
	if cfg.Metrics.Enabled {
		collector := metrics.New()
		collector.Attach(bus)
		defer collector.Detach()
		go func() {
			if err := collector.Serve(ctx, cfg.Metrics.Addr, logger); err != nil {
				logger.Error("metrics server stopped", "error", err)
			}
		}()
	}

	// app is set before the program runs, so before any upload can fail.
	var app *tui.App
	resetSink, closeSink := buildSink(ctx, cfg, logger,
		sink.WithResultHook(reportUploadErrors(func(m tea.Msg) { app.Send(m) })),
	)
	defer func() {
		if err := closeSink(); err != nil {
			logger.Error("failed to close reset sink", "error", err)
		}
	}()

	set, _ := buildStyles(cfg)
	opts := append(widgetOptions(cfg),
		tui.WithSink(resetSink),
		tui.WithBus(bus),
		tui.WithOnClap(func(s clap.State) {
			logger.Debug("clap state changed", "count", s.Count, "count_total", s.CountTotal)
		}),
	)

	app = tui.NewApp(tui.AppConfig{
		Model: tui.ModelConfig{
			RateLimit:     cfg.Widget.RateLimit,
			Styles:        set,
			WidgetOptions: opts,
		},
		AltScreen: cfg.TUI.AltScreen,
		Logger:    logger,
	})

	logger.Info("starting widget", "sink", cfg.Sink.Kind, "rate_limit", cfg.Widget.RateLimit)
	return app.Run()
}
