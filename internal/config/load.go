package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. NOAFK_BASE_INTERVAL.
const EnvPrefix = "NOAFK"

// Load builds a Config from defaults, an optional .env file, an optional config
// file and NOAFK_* environment variables, in increasing order of precedence.
// An empty path searches for noafk.{yaml,toml,json} in the working directory.
// A leading "~" in path or log.file expands to the home directory.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	path, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	v := viper.New()
	setDefaults(v, Default())

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("noafk")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Log.File, err = homedir.Expand(cfg.Log.File); err != nil {
		return nil, fmt.Errorf("expanding log.file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every leaf key so AutomaticEnv can see it.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("window_title", d.WindowTitle)
	v.SetDefault("base_interval", d.BaseInterval)
	v.SetDefault("variance_range", d.VarianceRange)
	v.SetDefault("min_interval", d.MinInterval)
	v.SetDefault("long_break_probability", d.LongBreakProbability)
	setRange(v, "long_break", d.LongBreak)

	v.SetDefault("primary_keys", d.PrimaryKeys)
	v.SetDefault("secondary_keys", d.SecondaryKeys)
	v.SetDefault("secondary_action_probability", d.SecondaryActionProbability)
	v.SetDefault("double_action_probability", d.DoubleActionProbability)

	setRange(v, "focus_delay", d.FocusDelay)
	setRange(v, "pre_press_delay", d.PrePressDelay)
	setRange(v, "key_press", d.KeyPress)
	setRange(v, "double_action_gap", d.DoubleActionGap)
	setRange(v, "action_delay", d.ActionDelay)

	v.SetDefault("mouse.enabled", d.Mouse.Enabled)
	v.SetDefault("mouse.probability", d.Mouse.Probability)
	v.SetDefault("mouse.max_offset", d.Mouse.MaxOffset)
	v.SetDefault("mouse.steps", d.Mouse.Steps)
	setRange(v, "mouse.duration", d.Mouse.Duration)

	v.SetDefault("retry_delay", d.RetryDelay)
	v.SetDefault("post_delay_on_failure", d.PostDelayOnFailure)
	v.SetDefault("prevent_sleep", d.PreventSleep)

	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.console", d.Log.Console)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age_days", d.Log.MaxAgeDays)
	v.SetDefault("log.compress", d.Log.Compress)
}

func setRange(v *viper.Viper, key string, r Range) {
	v.SetDefault(key+".min", r.Min)
	v.SetDefault(key+".max", r.Max)
}
