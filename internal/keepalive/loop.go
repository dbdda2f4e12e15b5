package keepalive

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stigoleg/noafk/internal/config"
	"github.com/stigoleg/noafk/internal/humanize"
	"github.com/stigoleg/noafk/internal/platform"
	"github.com/stigoleg/noafk/internal/util"
)

// State is where the control loop currently is.
type State int

const (
	StateSeekingWindow State = iota
	StateWaiting
	StateFocusing
	StateActing
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateSeekingWindow:
		return "Seeking window"
	case StateWaiting:
		return "Waiting"
	case StateFocusing:
		return "Focusing"
	case StateActing:
		return "Acting"
	case StateStopped:
		return "Stopped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Stats are the session counters.
type Stats struct {
	SessionID  string
	Started    time.Time
	Cycles     int
	Actions    int
	Failures   int
	LongBreaks int
}

// Event is published on every state change.
type Event struct {
	At    time.Time
	State State
	Stats Stats

	// Window is the matched window title, once one was found this cycle.
	Window string

	// Wait and LongBreak describe the interval when State is StateWaiting.
	Wait      time.Duration
	LongBreak bool

	// Action describes the last successful action; Err the last failure.
	Action string
	Err    error
}

// Observer receives loop events. Observe must not block.
type Observer interface {
	Observe(Event)
}

// ChannelObserver forwards events to a channel, dropping them when it is full.
type ChannelObserver chan Event

func (c ChannelObserver) Observe(e Event) {
	select {
	case c <- e:
	default:
	}
}

// Deps are the collaborators of a Loop. Config, Locator, Activator and Input
// are required; the rest have defaults.
type Deps struct {
	Config    *config.Config
	Locator   platform.WindowLocator
	Activator platform.WindowActivator
	Input     platform.InputDispatcher

	Rand     humanize.Rand
	Clock    humanize.Clock
	Logger   *zap.Logger
	Observer Observer
	Cleanup  *CleanupManager
}

// Loop is the single-threaded control loop: find the window, wait a humanized
// interval, raise the window and perform one action, forever.
type Loop struct {
	cfg       *config.Config
	locator   platform.WindowLocator
	activator platform.WindowActivator
	sched     *humanize.Scheduler
	exec      *Executor
	keys      *heldKeys
	clock     humanize.Clock
	observer  Observer
	cleanup   *CleanupManager
	log       *zap.SugaredLogger

	mu    sync.Mutex
	state State
	stats Stats
}

// NewLoop wires a Loop. Releasing held keys is registered with the cleanup
// manager so it runs before anything registered earlier.
func NewLoop(d Deps) *Loop {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clock := d.Clock
	if clock == nil {
		clock = humanize.RealClock()
	}
	rnd := d.Rand
	if rnd == nil {
		rnd = humanize.NewRand(0)
	}
	cleanup := d.Cleanup
	if cleanup == nil {
		cleanup = NewCleanupManager(0, logger)
	}

	keys := newHeldKeys(d.Input)
	cleanup.RegisterFunc("held keys", keys.ReleaseAll)

	return &Loop{
		cfg:       d.Config,
		locator:   d.Locator,
		activator: d.Activator,
		sched:     humanize.NewScheduler(d.Config, rnd, logger),
		exec:      newExecutor(d.Config, rnd, d.Input, keys, clock, logger),
		keys:      keys,
		clock:     clock,
		observer:  d.Observer,
		cleanup:   cleanup,
		log:       logger.Sugar(),
		stats:     Stats{SessionID: uuid.NewString()},
	}
}

// Stats returns a snapshot of the session counters.
func (l *Loop) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stats
}

// State returns the current state.
func (l *Loop) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Run drives the loop until ctx is done. Cancellation is a clean stop and
// returns nil; a recovered panic is returned as an error. Either way the
// summary is logged and the cleanup manager runs before Run returns.
func (l *Loop) Run(ctx context.Context) (err error) {
	l.mu.Lock()
	l.stats.Started = l.clock.Now()
	l.mu.Unlock()

	l.banner()

	defer func() {
		if r := recover(); r != nil {
			l.log.Errorf("Unexpected error: %v", r)
			err = fmt.Errorf("unexpected error: %v", r)
		}
		l.stop()
	}()

	for {
		if cerr := l.cycle(ctx); cerr != nil {
			if ctx.Err() == nil {
				return cerr
			}
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				l.log.Info("Session time limit reached")
			} else {
				l.log.Info("Session interrupted by user")
			}
			return nil
		}
	}
}

// cycle runs one pass of the state machine. It returns an error only when a
// wait was interrupted.
func (l *Loop) cycle(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.update(func(s *Stats) { s.Cycles++ })
	l.publish(Event{State: StateSeekingWindow})

	title := l.cfg.WindowTitle
	win, err := l.locator.Find(title)
	if err != nil {
		l.log.Warnf("Game window '%s' not found (%v). Retrying...", title, err)
		return l.clock.Sleep(ctx, l.sched.RetryDelay())
	}
	if win == nil {
		l.log.Warnf("Game window '%s' not found. Retrying...", title)
		return l.clock.Sleep(ctx, l.sched.RetryDelay())
	}

	iv := l.sched.Next()
	if iv.LongBreak {
		l.update(func(s *Stats) { s.LongBreaks++ })
	}
	l.publish(Event{State: StateWaiting, Window: win.Title, Wait: iv.Duration, LongBreak: iv.LongBreak})
	if err := l.clock.Sleep(ctx, iv.Duration); err != nil {
		return err
	}

	l.publish(Event{State: StateFocusing, Window: win.Title})
	if err := l.activator.Activate(*win); err != nil {
		l.log.Errorf("Error focusing window: %v", err)
		l.log.Warn("Failed to focus game window")
		return nil
	}
	if err := l.clock.Sleep(ctx, l.sched.FocusDelay()); err != nil {
		return err
	}

	l.publish(Event{State: StateActing, Window: win.Title})
	a, err := l.exec.Perform(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		l.update(func(s *Stats) { s.Failures++ })
		l.publish(Event{State: StateActing, Window: win.Title, Err: err})
		return nil
	}

	var st Stats
	l.update(func(s *Stats) {
		s.Actions++
		st = *s
	})
	l.log.Infof("Actions executed: %d (elapsed %s, session %s)",
		st.Actions, util.FormatElapsed(l.clock.Now().Sub(st.Started)), st.SessionID)
	l.publish(Event{State: StateActing, Window: win.Title, Action: a.String()})
	return nil
}

func (l *Loop) banner() {
	cfg := l.cfg
	sep := strings.Repeat("=", 60)
	l.log.Info(sep)
	l.log.Infof("noafk started (session %s)", l.stats.SessionID)
	l.log.Infof("Game window: %s", cfg.WindowTitle)
	l.log.Infof("Base interval: %.0fs (%.1f minutes)", cfg.BaseInterval, cfg.BaseInterval/60)
	l.log.Infof("Variance: ±%.0fs (±%.1f minutes)", cfg.VarianceRange, cfg.VarianceRange/60)
	l.log.Info(sep)
}

func (l *Loop) stop() {
	l.publish(Event{State: StateStopped})

	s := l.Stats()
	sep := strings.Repeat("=", 60)
	l.log.Info(sep)
	l.log.Infof("noafk stopped (session %s)", s.SessionID)
	l.log.Infof("Total actions executed: %d", s.Actions)
	l.log.Infof("Failed actions: %d, long breaks: %d", s.Failures, s.LongBreaks)
	l.log.Infof("Session time: %s", util.FormatElapsed(l.clock.Now().Sub(s.Started)))
	l.log.Info(sep)

	l.cleanup.Execute()
}

func (l *Loop) update(fn func(*Stats)) {
	l.mu.Lock()
	fn(&l.stats)
	l.mu.Unlock()
}

func (l *Loop) publish(e Event) {
	l.mu.Lock()
	l.state = e.State
	e.Stats = l.stats
	l.mu.Unlock()

	if l.observer == nil {
		return
	}
	e.At = l.clock.Now()
	l.observer.Observe(e)
}
