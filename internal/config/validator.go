package config

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/Iron-Ham/clap/internal/clap"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "widget.rate_limit")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Sink kinds.
const (
	SinkLog   = "log"
	SinkRedis = "redis"
	SinkNone  = "none"
)

// hexColorRegex matches #rgb and #rrggbb colors
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Animation bounds, in milliseconds.
const (
	minDurationMs      = 50
	maxDurationMs      = 5000
	minFrameIntervalMs = 8
	maxFrameIntervalMs = 250
	maxUploadDelayMs   = 60000
)

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidSinkKinds returns the list of valid sink kinds
func ValidSinkKinds() []string {
	return []string{SinkLog, SinkRedis, SinkNone}
}

// ValidEasings returns the button easing names
func ValidEasings() []string {
	return []string{"spring", "ease_out", "linear"}
}

// ValidThemes returns the built-in theme names
func ValidThemes() []string {
	return []string{"default", "monokai", "dracula", "nord"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateWidget()...)
	errors = append(errors, c.validateAnimation()...)
	errors = append(errors, c.validateReset()...)
	errors = append(errors, c.validateSink()...)
	errors = append(errors, c.validateMetrics()...)
	errors = append(errors, c.validateLogging()...)
	errors = append(errors, c.validateTUI()...)

	return errors
}

func (c *Config) validateWidget() []ValidationError {
	var errors []ValidationError
	s := c.Widget.InitialState

	if strings.TrimSpace(c.Widget.ID) == "" {
		errors = append(errors, ValidationError{
			Field:   "widget.id",
			Value:   c.Widget.ID,
			Message: "must not be empty",
		})
	}
	if s.Count < 0 {
		errors = append(errors, ValidationError{
			Field:   "widget.initial_state.count",
			Value:   s.Count,
			Message: "must be non-negative",
		})
	} else if s.Count > clap.MaxUserClap {
		errors = append(errors, ValidationError{
			Field:   "widget.initial_state.count",
			Value:   s.Count,
			Message: fmt.Sprintf("must be at most %d", clap.MaxUserClap),
		})
	}
	if s.CountTotal < 0 {
		errors = append(errors, ValidationError{
			Field:   "widget.initial_state.count_total",
			Value:   s.CountTotal,
			Message: "must be non-negative",
		})
	}
	if c.Widget.RateLimit < 0 {
		errors = append(errors, ValidationError{
			Field:   "widget.rate_limit",
			Value:   c.Widget.RateLimit,
			Message: "must be non-negative (0 disables rate limiting)",
		})
	}

	return errors
}

func (c *Config) validateAnimation() []ValidationError {
	var errors []ValidationError

	if c.Animation.DurationMs < minDurationMs || c.Animation.DurationMs > maxDurationMs {
		errors = append(errors, ValidationError{
			Field:   "animation.duration_ms",
			Value:   c.Animation.DurationMs,
			Message: fmt.Sprintf("must be between %d and %d", minDurationMs, maxDurationMs),
		})
	}
	if c.Animation.FrameIntervalMs < minFrameIntervalMs || c.Animation.FrameIntervalMs > maxFrameIntervalMs {
		errors = append(errors, ValidationError{
			Field:   "animation.frame_interval_ms",
			Value:   c.Animation.FrameIntervalMs,
			Message: fmt.Sprintf("must be between %d and %d", minFrameIntervalMs, maxFrameIntervalMs),
		})
	}
	if c.Animation.ButtonEasing != "" && !slices.Contains(ValidEasings(), c.Animation.ButtonEasing) {
		errors = append(errors, ValidationError{
			Field:   "animation.button_easing",
			Value:   c.Animation.ButtonEasing,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidEasings(), ", ")),
		})
	}

	return errors
}

func (c *Config) validateReset() []ValidationError {
	var errors []ValidationError

	if c.Reset.UploadDelayMs < 0 || c.Reset.UploadDelayMs > maxUploadDelayMs {
		errors = append(errors, ValidationError{
			Field:   "reset.upload_delay_ms",
			Value:   c.Reset.UploadDelayMs,
			Message: fmt.Sprintf("must be between 0 and %d", maxUploadDelayMs),
		})
	}

	return errors
}

func (c *Config) validateSink() []ValidationError {
	var errors []ValidationError

	if !slices.Contains(ValidSinkKinds(), c.Sink.Kind) {
		errors = append(errors, ValidationError{
			Field:   "sink.kind",
			Value:   c.Sink.Kind,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidSinkKinds(), ", ")),
		})
	}

	if c.Sink.Kind == SinkRedis {
		if strings.TrimSpace(c.Sink.Redis.Addr) == "" {
			errors = append(errors, ValidationError{
				Field:   "sink.redis.addr",
				Value:   c.Sink.Redis.Addr,
				Message: "is required when sink.kind is redis",
			})
		}
		if c.Sink.Redis.DB < 0 {
			errors = append(errors, ValidationError{
				Field:   "sink.redis.db",
				Value:   c.Sink.Redis.DB,
				Message: "must be non-negative",
			})
		}
		if c.Sink.Redis.TTLSeconds < 0 {
			errors = append(errors, ValidationError{
				Field:   "sink.redis.ttl_seconds",
				Value:   c.Sink.Redis.TTLSeconds,
				Message: "must be non-negative (0 keeps uploads forever)",
			})
		}
	}

	return errors
}

func (c *Config) validateMetrics() []ValidationError {
	var errors []ValidationError

	if c.Metrics.Enabled && strings.TrimSpace(c.Metrics.Addr) == "" {
		errors = append(errors, ValidationError{
			Field:   "metrics.addr",
			Value:   c.Metrics.Addr,
			Message: "is required when metrics are enabled",
		})
	}

	return errors
}

func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}

func (c *Config) validateTUI() []ValidationError {
	var errors []ValidationError

	if c.TUI.Theme != "" && !slices.Contains(ValidThemes(), c.TUI.Theme) {
		errors = append(errors, ValidationError{
			Field:   "tui.theme",
			Value:   c.TUI.Theme,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidThemes(), ", ")),
		})
	}

	roles := []struct {
		name  string
		style RoleStyle
	}{
		{"button", c.TUI.Styles.Button},
		{"counter", c.TUI.Styles.Counter},
		{"total", c.TUI.Styles.Total},
	}
	for _, r := range roles {
		colors := [][2]string{
			{"foreground", r.style.Foreground},
			{"border_foreground", r.style.BorderForeground},
		}
		for _, c := range colors {
			if c[1] != "" && !hexColorRegex.MatchString(c[1]) {
				errors = append(errors, ValidationError{
					Field:   "tui.styles." + r.name + "." + c[0],
					Value:   c[1],
					Message: "must be a hex color like #ff5f87",
				})
			}
		}
	}

	return errors
}
