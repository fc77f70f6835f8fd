package cmd

import (
	"github.com/Iron-Ham/clap/internal/event"
	"github.com/Iron-Ham/clap/internal/tui"
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Drive the widget without a terminal",
	Long: `Drive the widget without a terminal on a virtual clock.

The widget mounts, receives --claps presses and, with --reset, a reset
followed by the delayed upload. The state after each render pass is
printed as one JSON object per line.`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

var (
	simulateClaps  int
	simulateReset  bool
	simulateFrames bool
)

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().IntVarP(&simulateClaps, "claps", "n", 3, "number of claps")
	simulateCmd.Flags().BoolVar(&simulateReset, "reset", false, "reset after clapping and wait for the upload")
	simulateCmd.Flags().BoolVar(&simulateFrames, "frames", false, "also print animation frame passes")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	resetSink, closeSink := buildSink(cmd.Context(), cfg, logger)
	set, _ := buildStyles(cfg)
	opts := append(widgetOptions(cfg),
		tui.WithSink(resetSink),
		tui.WithBus(event.NewBus(logger)),
		tui.WithLogger(logger),
	)

	_, err = tui.Simulate(cmd.Context(), tui.SimulateConfig{
		Claps:  simulateClaps,
		Reset:  simulateReset,
		Frames: simulateFrames,
		Out:    cmd.OutOrStdout(),
		Model: tui.ModelConfig{
			RateLimit:     cfg.Widget.RateLimit,
			Styles:        set,
			WidgetOptions: opts,
		},
	})
	if cerr := closeSink(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
