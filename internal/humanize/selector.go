package humanize

import (
	"fmt"
	"strings"
	"time"

	"github.com/stigoleg/noafk/internal/config"
)

// Kind tags what an action represents.
type Kind string

const (
	KindPrimary  Kind = "primary"
	KindMovement Kind = "movement"
)

// Action is one fully drawn plan: which key, how often, and every wait around it.
type Action struct {
	Kind   Kind
	Key    string
	Double bool

	// Jitter is set when the pointer should wiggle before the key press.
	Jitter         bool
	JitterDuration time.Duration

	PrePress  time.Duration
	Holds     []time.Duration // one entry per press
	Gap       time.Duration   // between the two presses of a double action
	PostDelay time.Duration
}

// Presses returns how many times the key goes down.
func (a Action) Presses() int { return len(a.Holds) }

func (a Action) String() string {
	return fmt.Sprintf("type=%s key=%s double=%t", a.Kind, a.Key, a.Double)
}

// Selector draws Actions. Type, double and jitter are independent draws.
type Selector struct {
	cfg       *config.Config
	rnd       Rand
	primary   []string
	secondary []string
}

// NewSelector returns a Selector drawing from rnd.
func NewSelector(cfg *config.Config, rnd Rand) *Selector {
	return &Selector{
		cfg:       cfg,
		rnd:       rnd,
		primary:   trimKeys(cfg.PrimaryKeys),
		secondary: trimKeys(cfg.SecondaryKeys),
	}
}

// Next draws one Action.
func (s *Selector) Next() Action {
	var a Action

	if Chance(s.rnd, s.cfg.SecondaryActionProbability) && len(s.secondary) > 0 {
		a.Kind = KindMovement
		a.Key = Pick(s.rnd, s.secondary)
	} else {
		a.Kind = KindPrimary
		a.Key = Pick(s.rnd, s.primary)
	}

	a.Double = Chance(s.rnd, s.cfg.DoubleActionProbability)

	if s.cfg.Mouse.Enabled && Chance(s.rnd, s.cfg.Mouse.Probability) {
		a.Jitter = true
		a.JitterDuration = Between(s.rnd, s.cfg.Mouse.Duration)
	}

	a.PrePress = Between(s.rnd, s.cfg.PrePressDelay)
	a.Holds = []time.Duration{Between(s.rnd, s.cfg.KeyPress)}
	if a.Double {
		a.Gap = Between(s.rnd, s.cfg.DoubleActionGap)
		a.Holds = append(a.Holds, Between(s.rnd, s.cfg.KeyPress))
	}
	a.PostDelay = Between(s.rnd, s.cfg.ActionDelay)
	return a
}

func trimKeys(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}
