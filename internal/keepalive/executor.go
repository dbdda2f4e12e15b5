package keepalive

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/stigoleg/noafk/internal/config"
	"github.com/stigoleg/noafk/internal/humanize"
	"github.com/stigoleg/noafk/internal/platform"
	"github.com/stigoleg/noafk/internal/platform/patterns"
)

// Executor turns a drawn Action into synthesized input.
type Executor struct {
	cfg      *config.Config
	selector *humanize.Selector
	input    platform.InputDispatcher
	keys     *heldKeys
	clock    humanize.Clock
	paths    *patterns.Generator
	log      *zap.SugaredLogger
}

func newExecutor(cfg *config.Config, rnd humanize.Rand, input platform.InputDispatcher, keys *heldKeys, clock humanize.Clock, log *zap.Logger) *Executor {
	return &Executor{
		cfg:      cfg,
		selector: humanize.NewSelector(cfg, rnd),
		input:    input,
		keys:     keys,
		clock:    clock,
		paths:    patterns.NewGenerator(rnd),
		log:      log.Sugar(),
	}
}

// Perform draws one action and dispatches it. A cancelled ctx is returned
// as-is so the caller can tell an interrupt from a dispatch failure.
func (e *Executor) Perform(ctx context.Context) (humanize.Action, error) {
	a := e.selector.Next()

	if err := e.dispatch(ctx, a); err != nil {
		if ctx.Err() != nil {
			return a, ctx.Err()
		}
		e.log.Errorf("Error executing %s action: %v", a.Kind, err)
		if e.cfg.PostDelayOnFailure {
			if serr := e.clock.Sleep(ctx, a.PostDelay); serr != nil {
				return a, serr
			}
		}
		return a, err
	}

	e.log.Infof("Action executed: %s", a)

	// The input already happened; an interrupt here still counts the action.
	_ = e.clock.Sleep(ctx, a.PostDelay)
	return a, nil
}

func (e *Executor) dispatch(ctx context.Context, a humanize.Action) error {
	if a.Jitter {
		if err := e.jitter(ctx, a.JitterDuration); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			e.log.Debugf("Mouse jitter skipped: %v", err)
		}
	}

	if err := e.clock.Sleep(ctx, a.PrePress); err != nil {
		return err
	}

	e.log.Debugf("Pressing %s %d time(s)", a.Key, a.Presses())

	for i, hold := range a.Holds {
		if i > 0 {
			if err := e.clock.Sleep(ctx, a.Gap); err != nil {
				return err
			}
		}
		if err := e.tap(ctx, a.Key, hold); err != nil {
			return err
		}
	}
	return nil
}

// tap presses key for hold. The release runs on every path out, including
// an interrupt while the key is down.
func (e *Executor) tap(ctx context.Context, key string, hold time.Duration) (err error) {
	if err := e.keys.press(key); err != nil {
		return err
	}
	defer func() {
		if rerr := e.keys.release(key); rerr != nil && err == nil {
			err = rerr
		}
	}()
	return e.clock.Sleep(ctx, hold)
}

func (e *Executor) jitter(ctx context.Context, d time.Duration) error {
	x, y, err := e.input.Location()
	if err != nil {
		return err
	}

	m := e.cfg.Mouse
	origin := patterns.Point{X: x, Y: y}
	path := e.paths.Jitter(origin, m.MaxOffset, m.Steps, d)
	target := path.Target()
	e.log.Debugf("Mouse jitter to (%d,%d), %.1fpx over %v", target.X, target.Y, patterns.Distance(origin, target), d)
	for _, p := range path.Points {
		if err := e.input.MoveTo(p.X, p.Y); err != nil {
			return err
		}
		if err := e.clock.Sleep(ctx, path.StepDelay); err != nil {
			return err
		}
	}
	return nil
}
