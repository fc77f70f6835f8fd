package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Iron-Ham/clap/internal/clap"
	"github.com/spf13/viper"
)

// Config represents the complete clap configuration
type Config struct {
	Widget    WidgetConfig    `mapstructure:"widget" yaml:"widget"`
	Animation AnimationConfig `mapstructure:"animation" yaml:"animation"`
	Reset     ResetConfig     `mapstructure:"reset" yaml:"reset"`
	Sink      SinkConfig      `mapstructure:"sink" yaml:"sink"`
	Metrics   MetricsConfig   `mapstructure:"metrics" yaml:"metrics"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging"`
	TUI       TUIConfig       `mapstructure:"tui" yaml:"tui"`
}

// WidgetConfig controls the counter itself
type WidgetConfig struct {
	// ID tags logs, events and metrics for this widget instance
	ID string `mapstructure:"id" yaml:"id"`
	// InitialState is the state the widget starts from and resets to
	InitialState clap.State `mapstructure:"initial_state" yaml:"initial_state"`
	// RateLimit rejects claps once this many presses were seen since the
	// last reset upload (0 = disabled)
	RateLimit int `mapstructure:"rate_limit" yaml:"rate_limit"`
}

// AnimationConfig controls the clap animation
type AnimationConfig struct {
	// DurationMs is the base duration of one animation (default: 300)
	DurationMs int `mapstructure:"duration_ms" yaml:"duration_ms"`
	// FrameIntervalMs is the delay between rendered frames (default: 16)
	FrameIntervalMs int `mapstructure:"frame_interval_ms" yaml:"frame_interval_ms"`
	// ButtonEasing is the curve of the button scale: "spring", "ease_out"
	// or "linear" (default: spring)
	ButtonEasing string `mapstructure:"button_easing" yaml:"button_easing"`
}

// ResetConfig controls the reset upload
type ResetConfig struct {
	// UploadDelayMs is how long after a reset the state is uploaded (default: 3000)
	UploadDelayMs int `mapstructure:"upload_delay_ms" yaml:"upload_delay_ms"`
}

// SinkConfig selects where reset uploads go
type SinkConfig struct {
	// Kind is one of "log", "redis", "none"
	Kind  string      `mapstructure:"kind" yaml:"kind"`
	Redis RedisConfig `mapstructure:"redis" yaml:"redis"`
}

// RedisConfig configures the Redis reset sink
type RedisConfig struct {
	Addr       string `mapstructure:"addr" yaml:"addr"`
	Password   string `mapstructure:"password" yaml:"password"`
	DB         int    `mapstructure:"db" yaml:"db"`
	KeyPrefix  string `mapstructure:"key_prefix" yaml:"key_prefix"`
	TTLSeconds int    `mapstructure:"ttl_seconds" yaml:"ttl_seconds"`
}

// MetricsConfig controls the Prometheus endpoint
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Addr    string `mapstructure:"addr" yaml:"addr"`
}

// LoggingConfig controls debug logging
type LoggingConfig struct {
	// Enabled turns on the debug log file (default: true)
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// Level is the minimum log level: "debug", "info", "warn", "error"
	Level string `mapstructure:"level" yaml:"level"`
	// Dir is where debug.log is written; empty means <config dir>/logs
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// TUIConfig controls the terminal UI
type TUIConfig struct {
	// AltScreen runs the widget in the terminal's alternate screen
	AltScreen bool `mapstructure:"alt_screen" yaml:"alt_screen"`
	// Theme selects a built-in color palette
	Theme  string       `mapstructure:"theme" yaml:"theme"`
	Styles StylesConfig `mapstructure:"styles" yaml:"styles"`
}

// StylesConfig holds per-role style overrides
type StylesConfig struct {
	Button  RoleStyle `mapstructure:"button" yaml:"button"`
	Counter RoleStyle `mapstructure:"counter" yaml:"counter"`
	Total   RoleStyle `mapstructure:"total" yaml:"total"`
}

// RoleStyle overrides the default look of one visual role. Empty colors
// keep the default.
type RoleStyle struct {
	Foreground       string `mapstructure:"foreground" yaml:"foreground"`
	BorderForeground string `mapstructure:"border_foreground" yaml:"border_foreground"`
	Bold             bool   `mapstructure:"bold" yaml:"bold"`
}

// IsZero reports whether the style overrides nothing.
func (r RoleStyle) IsZero() bool {
	return r == RoleStyle{}
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Widget: WidgetConfig{
			ID:           "clap",
			InitialState: clap.DefaultInitialState,
			RateLimit:    8,
		},
		Animation: AnimationConfig{
			DurationMs:      300,
			FrameIntervalMs: 16,
			ButtonEasing:    "spring",
		},
		Reset: ResetConfig{
			UploadDelayMs: 3000,
		},
		Sink: SinkConfig{
			Kind: SinkLog,
			Redis: RedisConfig{
				Addr:       "localhost:6379",
				KeyPrefix:  "clap:reset:",
				TTLSeconds: 0, // Keep forever
			},
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    ":2112",
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
			Dir:     "", // Empty means <config dir>/logs
		},
		TUI: TUIConfig{
			AltScreen: false,
			Theme:     "default",
		},
	}
}

// Duration returns the animation duration as a time.Duration
func (c *AnimationConfig) Duration() time.Duration {
	return time.Duration(c.DurationMs) * time.Millisecond
}

// FrameInterval returns the frame interval as a time.Duration
func (c *AnimationConfig) FrameInterval() time.Duration {
	return time.Duration(c.FrameIntervalMs) * time.Millisecond
}

// UploadDelay returns the upload delay as a time.Duration
func (c *ResetConfig) UploadDelay() time.Duration {
	return time.Duration(c.UploadDelayMs) * time.Millisecond
}

// TTL returns the Redis TTL as a time.Duration (0 means no expiry)
func (c *RedisConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// ResolveDir returns the log directory, expanding ~ and falling back to
// <config dir>/logs.
func (c *LoggingConfig) ResolveDir() string {
	if c.Dir == "" {
		return filepath.Join(ConfigDir(), "logs")
	}

	path := c.Dir
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return path
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Widget defaults
	viper.SetDefault("widget.id", defaults.Widget.ID)
	viper.SetDefault("widget.initial_state.count", defaults.Widget.InitialState.Count)
	viper.SetDefault("widget.initial_state.count_total", defaults.Widget.InitialState.CountTotal)
	viper.SetDefault("widget.initial_state.is_clicked", defaults.Widget.InitialState.IsClicked)
	viper.SetDefault("widget.rate_limit", defaults.Widget.RateLimit)

	// Animation defaults
	viper.SetDefault("animation.duration_ms", defaults.Animation.DurationMs)
	viper.SetDefault("animation.frame_interval_ms", defaults.Animation.FrameIntervalMs)
	viper.SetDefault("animation.button_easing", defaults.Animation.ButtonEasing)

	// Reset defaults
	viper.SetDefault("reset.upload_delay_ms", defaults.Reset.UploadDelayMs)

	// Sink defaults
	viper.SetDefault("sink.kind", defaults.Sink.Kind)
	viper.SetDefault("sink.redis.addr", defaults.Sink.Redis.Addr)
	viper.SetDefault("sink.redis.password", defaults.Sink.Redis.Password)
	viper.SetDefault("sink.redis.db", defaults.Sink.Redis.DB)
	viper.SetDefault("sink.redis.key_prefix", defaults.Sink.Redis.KeyPrefix)
	viper.SetDefault("sink.redis.ttl_seconds", defaults.Sink.Redis.TTLSeconds)

	// Metrics defaults
	viper.SetDefault("metrics.enabled", defaults.Metrics.Enabled)
	viper.SetDefault("metrics.addr", defaults.Metrics.Addr)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)

	// TUI defaults
	viper.SetDefault("tui.alt_screen", defaults.TUI.AltScreen)
	viper.SetDefault("tui.theme", defaults.TUI.Theme)
	for _, role := range []string{"button", "counter", "total"} {
		viper.SetDefault("tui.styles."+role+".foreground", "")
		viper.SetDefault("tui.styles."+role+".border_foreground", "")
		viper.SetDefault("tui.styles."+role+".bold", false)
	}
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "clap")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".clap"
	}
	return filepath.Join(home, ".config", "clap")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
