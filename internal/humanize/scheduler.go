package humanize

import (
	"time"

	"go.uber.org/zap"

	"github.com/stigoleg/noafk/internal/config"
	"github.com/stigoleg/noafk/internal/util"
)

// Interval is the wait before the next action attempt.
type Interval struct {
	Duration  time.Duration
	LongBreak bool
}

// Scheduler computes waits between actions.
type Scheduler struct {
	cfg *config.Config
	rnd Rand
	log *zap.SugaredLogger
}

// NewScheduler returns a Scheduler drawing from rnd.
func NewScheduler(cfg *config.Config, rnd Rand, log *zap.Logger) *Scheduler {
	return &Scheduler{cfg: cfg, rnd: rnd, log: log.Sugar()}
}

// Next returns the wait before the next action. With probability
// LongBreakProbability it is a long break drawn from the LongBreak range;
// otherwise BaseInterval ± VarianceRange, never below MinInterval, which
// also replaces a NaN draw.
// The floor does not apply to long breaks.
func (s *Scheduler) Next() Interval {
	if Chance(s.rnd, s.cfg.LongBreakProbability) {
		d := Between(s.rnd, s.cfg.LongBreak)
		s.log.Infof("Taking a long break: next action in %s", util.FormatSeconds(d))
		return Interval{Duration: d, LongBreak: true}
	}

	variance := Uniform(s.rnd, -s.cfg.VarianceRange, s.cfg.VarianceRange)
	secs := s.cfg.BaseInterval + variance
	if !(secs >= s.cfg.MinInterval) {
		secs = s.cfg.MinInterval
	}
	d := config.Seconds(secs)
	s.log.Infof("Next action in %s", util.FormatSeconds(d))
	return Interval{Duration: d}
}

// FocusDelay returns the pause between raising the window and acting on it.
func (s *Scheduler) FocusDelay() time.Duration {
	return Between(s.rnd, s.cfg.FocusDelay)
}

// RetryDelay is the fixed wait after the window was not found.
func (s *Scheduler) RetryDelay() time.Duration {
	return config.Seconds(s.cfg.RetryDelay)
}
