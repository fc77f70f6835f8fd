package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/Iron-Ham/clap/internal/config"
	"github.com/Iron-Ham/clap/internal/errors"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent reset uploads stored in Redis",
	Long: `List the most recent reset uploads kept by the Redis sink, newest
first, as one JSON object per line. Needs sink.kind set to redis.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var historyLimit int

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "maximum number of uploads to list")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Sink.Kind != config.SinkRedis {
		return fmt.Errorf("history needs sink.kind %q, configured: %q", config.SinkRedis, cfg.Sink.Kind)
	}

	r := newRedisSink(cfg)
	defer func() { _ = r.Close() }()

	uploads, err := r.History(cmd.Context(), historyLimit)
	if err != nil {
		return errors.Wrapf(err, "failed to read upload history from %s", cfg.Sink.Redis.Addr)
	}
	out := cmd.OutOrStdout()
	for _, u := range uploads {
		line, err := json.Marshal(u)
		if err != nil {
			return fmt.Errorf("failed to encode upload: %w", err)
		}
		fmt.Fprintln(out, string(line))
	}
	return nil
}
