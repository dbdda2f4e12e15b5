package config

import (
	"errors"
	"time"

	"github.com/spf13/pflag"

	"github.com/stigoleg/noafk/internal/util"
)

// Flags are the command-line options. Everything else lives in the config file.
type Flags struct {
	ConfigFile string
	Duration   string
	Until      string
	TUI        bool
	Seed       int64
}

// Register binds the flags to fs.
func (f *Flags) Register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.ConfigFile, "config", "f", "", "Config file (default ./noafk.yaml if present)")
	fs.StringVarP(&f.Duration, "duration", "d", "", "Stop after this long (e.g., \"2h30m\" or \"150\")")
	fs.StringVarP(&f.Until, "until", "u", "", "Stop at this time of day (e.g., \"22:00\" or \"10:00PM\")")
	fs.BoolVar(&f.TUI, "tui", false, "Show the status dashboard instead of console logs")
	fs.Int64Var(&f.Seed, "seed", 0, "Random seed (0 picks one from the clock)")
}

// RunFor resolves --duration or --until into a session length. Zero means
// run until interrupted.
func (f *Flags) RunFor(now time.Time) (time.Duration, error) {
	if f.Duration != "" && f.Until != "" {
		return 0, errors.New("--duration and --until cannot be used together")
	}
	if f.Duration != "" {
		return util.ParseDuration(f.Duration)
	}
	if f.Until != "" {
		at, err := util.ParseClock(f.Until, now)
		if err != nil {
			return 0, err
		}
		return at.Sub(now), nil
	}
	return 0, nil
}
