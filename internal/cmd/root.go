package cmd

import (
	"strings"

	"github.com/Iron-Ham/clap/internal/config"
	"github.com/Iron-Ham/clap/internal/logging"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "clap",
	Short: "A bounded clap counter for the terminal",
	Long: `Clap is an interactive counter widget. Each clap bumps a capped
counter and plays a short animation; reset restores the starting
state and uploads it to a configurable sink after a delay.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/clap/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("CLAP")
	// Replace dots with underscores for nested keys in env vars
	// e.g., CLAP_SINK_KIND for sink.kind
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

// watchConfig logs edits to the config file. Settings are read once at
// startup; changes apply on the next run.
func watchConfig(logger *logging.Logger) {
	if viper.ConfigFileUsed() == "" {
		return
	}
	log := logger.WithComponent("config")
	viper.OnConfigChange(func(e fsnotify.Event) {
		if _, err := config.Load(); err != nil {
			log.Warn("config file changed but is invalid", "path", e.Name, "op", e.Op.String(), "error", err)
			return
		}
		log.Info("config file changed, restart to apply", "path", e.Name, "op", e.Op.String())
	})
	viper.WatchConfig()
}
