// Package config holds the immutable runtime configuration of noafk.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// DefaultWindowTitle is the window searched for when nothing else is configured.
const DefaultWindowTitle = "FINAL FANTASY XIV"

// Range is an inclusive [Min, Max] span expressed in seconds.
type Range struct {
	Min float64 `mapstructure:"min"`
	Max float64 `mapstructure:"max"`
}

// MinDuration returns the lower bound as a time.Duration.
func (r Range) MinDuration() time.Duration { return Seconds(r.Min) }

// MaxDuration returns the upper bound as a time.Duration.
func (r Range) MaxDuration() time.Duration { return Seconds(r.Max) }

func (r Range) String() string {
	return fmt.Sprintf("%.2f-%.2fs", r.Min, r.Max)
}

// MouseConfig controls the optional pointer jitter performed before a key press.
type MouseConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	Probability float64 `mapstructure:"probability"`
	MaxOffset   int     `mapstructure:"max_offset"`
	Steps       int     `mapstructure:"steps"`
	Duration    Range   `mapstructure:"duration"`
}

// LogConfig controls the session log stream.
type LogConfig struct {
	File       string `mapstructure:"file"`
	Console    bool   `mapstructure:"console"`
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// Config is read once at startup and never modified afterwards.
type Config struct {
	WindowTitle string `mapstructure:"window_title"`

	// Interval scheduling, in seconds.
	BaseInterval  float64 `mapstructure:"base_interval"`
	VarianceRange float64 `mapstructure:"variance_range"`
	MinInterval   float64 `mapstructure:"min_interval"`

	LongBreakProbability float64 `mapstructure:"long_break_probability"`
	LongBreak            Range   `mapstructure:"long_break"`

	PrimaryKeys                []string `mapstructure:"primary_keys"`
	SecondaryKeys              []string `mapstructure:"secondary_keys"`
	SecondaryActionProbability float64  `mapstructure:"secondary_action_probability"`
	DoubleActionProbability    float64  `mapstructure:"double_action_probability"`

	FocusDelay      Range `mapstructure:"focus_delay"`
	PrePressDelay   Range `mapstructure:"pre_press_delay"`
	KeyPress        Range `mapstructure:"key_press"`
	DoubleActionGap Range `mapstructure:"double_action_gap"`
	ActionDelay     Range `mapstructure:"action_delay"`

	Mouse MouseConfig `mapstructure:"mouse"`

	RetryDelay         float64 `mapstructure:"retry_delay"`
	PostDelayOnFailure bool    `mapstructure:"post_delay_on_failure"`
	PreventSleep       bool    `mapstructure:"prevent_sleep"`

	Log LogConfig `mapstructure:"log"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		WindowTitle: DefaultWindowTitle,

		BaseInterval:  600,
		VarianceRange: 120,
		MinInterval:   60,

		LongBreakProbability: 0.05,
		LongBreak:            Range{Min: 1200, Max: 1800},

		PrimaryKeys:                []string{"space"},
		SecondaryKeys:              []string{"w", "a", "s", "d"},
		SecondaryActionProbability: 0.2,
		DoubleActionProbability:    0.1,

		FocusDelay:      Range{Min: 0.3, Max: 0.8},
		PrePressDelay:   Range{Min: 0.1, Max: 0.3},
		KeyPress:        Range{Min: 0.05, Max: 0.15},
		DoubleActionGap: Range{Min: 0.1, Max: 0.3},
		ActionDelay:     Range{Min: 0.5, Max: 1.5},

		Mouse: MouseConfig{
			Enabled:     true,
			Probability: 0.3,
			MaxOffset:   20,
			Steps:       10,
			Duration:    Range{Min: 0.2, Max: 0.5},
		},

		RetryDelay:         5,
		PostDelayOnFailure: true,
		PreventSleep:       true,

		Log: LogConfig{
			File:       "noafk.log",
			Console:    true,
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Seconds converts fractional seconds to a time.Duration.
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Validate reports every violated invariant at once.
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if strings.TrimSpace(c.WindowTitle) == "" {
		add("window_title must not be empty")
	}

	type number struct {
		name string
		v    float64
	}
	scalars := []number{
		{"base_interval", c.BaseInterval},
		{"variance_range", c.VarianceRange},
		{"min_interval", c.MinInterval},
		{"retry_delay", c.RetryDelay},
	}
	probabilities := []number{
		{"long_break_probability", c.LongBreakProbability},
		{"secondary_action_probability", c.SecondaryActionProbability},
		{"double_action_probability", c.DoubleActionProbability},
		{"mouse.probability", c.Mouse.Probability},
	}
	ranges := []struct {
		name string
		r    Range
	}{
		{"long_break", c.LongBreak},
		{"focus_delay", c.FocusDelay},
		{"pre_press_delay", c.PrePressDelay},
		{"key_press", c.KeyPress},
		{"double_action_gap", c.DoubleActionGap},
		{"action_delay", c.ActionDelay},
		{"mouse.duration", c.Mouse.Duration},
	}

	all := append(append([]number(nil), scalars...), probabilities...)
	for _, rc := range ranges {
		all = append(all, number{rc.name + ".min", rc.r.Min}, number{rc.name + ".max", rc.r.Max})
	}
	finite := make(map[string]bool, len(all))
	for _, n := range all {
		finite[n.name] = !math.IsNaN(n.v) && !math.IsInf(n.v, 0)
		if !finite[n.name] {
			add("%s must be a finite number, got %v", n.name, n.v)
		}
	}

	// Comparisons are negated so that NaN never passes them.
	if finite["base_interval"] && !(c.BaseInterval > 0) {
		add("base_interval must be positive, got %v", c.BaseInterval)
	}
	if finite["variance_range"] && !(c.VarianceRange >= 0) {
		add("variance_range must not be negative, got %v", c.VarianceRange)
	}
	if finite["min_interval"] && !(c.MinInterval > 0) {
		add("min_interval must be positive, got %v", c.MinInterval)
	}
	if finite["retry_delay"] && !(c.RetryDelay > 0) {
		add("retry_delay must be positive, got %v", c.RetryDelay)
	}

	for _, p := range probabilities {
		if finite[p.name] && !(p.v >= 0 && p.v <= 1) {
			add("%s must be within [0,1], got %v", p.name, p.v)
		}
	}

	for _, rc := range ranges {
		if !finite[rc.name+".min"] || !finite[rc.name+".max"] {
			continue
		}
		if !(rc.r.Min >= 0) {
			add("%s.min must not be negative, got %v", rc.name, rc.r.Min)
		}
		if !(rc.r.Min <= rc.r.Max) {
			add("%s.min (%v) must not exceed %s.max (%v)", rc.name, rc.r.Min, rc.name, rc.r.Max)
		}
	}

	if len(nonEmpty(c.PrimaryKeys)) == 0 {
		add("primary_keys must contain at least one key")
	}
	if c.SecondaryActionProbability > 0 && len(nonEmpty(c.SecondaryKeys)) == 0 {
		add("secondary_keys must contain at least one key when secondary_action_probability > 0")
	}

	if c.Mouse.MaxOffset < 0 {
		add("mouse.max_offset must not be negative, got %d", c.Mouse.MaxOffset)
	}
	if c.Mouse.Steps < 1 {
		add("mouse.steps must be at least 1, got %d", c.Mouse.Steps)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("invalid configuration:\n\n%w", errors.Join(errs...))
}

func nonEmpty(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if strings.TrimSpace(k) != "" {
			out = append(out, k)
		}
	}
	return out
}
