package config

import (
	"strings"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	err := ValidationError{
		Field:   "test.field",
		Value:   123,
		Message: "must be greater than zero",
	}

	expected := "test.field: must be greater than zero (got: 123)"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestValidationErrors_Error(t *testing.T) {
	t.Run("empty errors", func(t *testing.T) {
		var errs ValidationErrors
		if errs.Error() != "" {
			t.Errorf("Error() for empty = %q, want empty string", errs.Error())
		}
	})

	t.Run("single error", func(t *testing.T) {
		errs := ValidationErrors{
			{Field: "test.field", Value: 123, Message: "is invalid"},
		}
		expected := "test.field: is invalid (got: 123)"
		if errs.Error() != expected {
			t.Errorf("Error() = %q, want %q", errs.Error(), expected)
		}
	})

	t.Run("multiple errors", func(t *testing.T) {
		errs := ValidationErrors{
			{Field: "field1", Value: "bad", Message: "is invalid"},
			{Field: "field2", Value: -1, Message: "must be positive"},
		}
		result := errs.Error()
		if !strings.Contains(result, "2 validation errors") {
			t.Errorf("Error() should mention 2 errors: %s", result)
		}
		if !strings.Contains(result, "field1") || !strings.Contains(result, "field2") {
			t.Errorf("Error() should mention both fields: %s", result)
		}
	})
}

func TestConfig_Validate_DefaultConfig(t *testing.T) {
	cfg := Default()
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("Default config should be valid, got errors: %v", errs)
	}
}

func hasFieldError(errs []ValidationError, field string) bool {
	for _, err := range errs {
		if err.Field == field {
			return true
		}
	}
	return false
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		field   string
		wantErr bool
	}{
		{"empty widget id", func(c *Config) { c.Widget.ID = " " }, "widget.id", true},
		{"negative count", func(c *Config) { c.Widget.InitialState.Count = -1 }, "widget.initial_state.count", true},
		{"count above cap", func(c *Config) { c.Widget.InitialState.Count = 51 }, "widget.initial_state.count", true},
		{"count at cap", func(c *Config) { c.Widget.InitialState.Count = 50 }, "widget.initial_state.count", false},
		{"negative total", func(c *Config) { c.Widget.InitialState.CountTotal = -3 }, "widget.initial_state.count_total", true},
		{"negative rate limit", func(c *Config) { c.Widget.RateLimit = -1 }, "widget.rate_limit", true},
		{"rate limit disabled", func(c *Config) { c.Widget.RateLimit = 0 }, "widget.rate_limit", false},
		{"duration too short", func(c *Config) { c.Animation.DurationMs = 10 }, "animation.duration_ms", true},
		{"duration too long", func(c *Config) { c.Animation.DurationMs = 6000 }, "animation.duration_ms", true},
		{"frame interval too small", func(c *Config) { c.Animation.FrameIntervalMs = 1 }, "animation.frame_interval_ms", true},
		{"negative upload delay", func(c *Config) { c.Reset.UploadDelayMs = -1 }, "reset.upload_delay_ms", true},
		{"zero upload delay", func(c *Config) { c.Reset.UploadDelayMs = 0 }, "reset.upload_delay_ms", false},
		{"unknown sink", func(c *Config) { c.Sink.Kind = "kafka" }, "sink.kind", true},
		{"none sink", func(c *Config) { c.Sink.Kind = SinkNone }, "sink.kind", false},
		{"redis without addr", func(c *Config) {
			c.Sink.Kind = SinkRedis
			c.Sink.Redis.Addr = ""
		}, "sink.redis.addr", true},
		{"redis addr ignored for log sink", func(c *Config) { c.Sink.Redis.Addr = "" }, "sink.redis.addr", false},
		{"redis negative ttl", func(c *Config) {
			c.Sink.Kind = SinkRedis
			c.Sink.Redis.TTLSeconds = -5
		}, "sink.redis.ttl_seconds", true},
		{"metrics without addr", func(c *Config) {
			c.Metrics.Enabled = true
			c.Metrics.Addr = ""
		}, "metrics.addr", true},
		{"invalid log level", func(c *Config) { c.Logging.Level = "INFO" }, "logging.level", true},
		{"empty log level", func(c *Config) { c.Logging.Level = "" }, "logging.level", false},
		{"bad color", func(c *Config) { c.TUI.Styles.Counter.Foreground = "pink" }, "tui.styles.counter.foreground", true},
		{"short hex color", func(c *Config) { c.TUI.Styles.Total.BorderForeground = "#f0a" }, "tui.styles.total.border_foreground", false},
		{"unknown easing", func(c *Config) { c.Animation.ButtonEasing = "bounce" }, "animation.button_easing", true},
		{"ease out", func(c *Config) { c.Animation.ButtonEasing = "ease_out" }, "animation.button_easing", false},
		{"unknown theme", func(c *Config) { c.TUI.Theme = "solarized" }, "tui.theme", true},
		{"builtin theme", func(c *Config) { c.TUI.Theme = "nord" }, "tui.theme", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			errs := cfg.Validate()
			if got := hasFieldError(errs, tt.field); got != tt.wantErr {
				t.Errorf("error for %s = %v, want %v (errs: %v)", tt.field, got, tt.wantErr, errs)
			}
		})
	}
}

func TestValidLogLevels(t *testing.T) {
	levels := ValidLogLevels()
	if len(levels) != 4 {
		t.Errorf("ValidLogLevels() = %v, want 4 levels", levels)
	}
}

func TestConfig_Validate_MultipleErrors(t *testing.T) {
	cfg := Default()
	cfg.Widget.RateLimit = -1
	cfg.Animation.DurationMs = 0
	cfg.Logging.Level = "loud"

	if errs := cfg.Validate(); len(errs) != 3 {
		t.Errorf("Validate() returned %d errors, want 3: %v", len(errs), errs)
	}
}
