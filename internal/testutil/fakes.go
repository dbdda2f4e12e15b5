// Package testutil provides in-memory stand-ins for the clock and the OS
// collaborators so the control loop can be driven deterministically.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/stigoleg/noafk/internal/platform"
)

// Clock is a fake humanize.Clock. Sleep records the request, advances Now
// and returns immediately.
type Clock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration

	// OnSleep runs after a sleep is recorded; n is its 1-based index.
	// Cancelling the caller's context here simulates an interrupt during the wait.
	OnSleep func(n int, d time.Duration)
}

// NewClock returns a Clock starting at start.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	n := len(c.sleeps)
	hook := c.OnSleep
	c.mu.Unlock()

	if hook != nil {
		hook(n, d)
	}
	return ctx.Err()
}

// Sleeps returns every requested wait in order.
func (c *Clock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.sleeps...)
}

// Input is a fake platform.InputDispatcher recording events as strings:
// "down:<key>", "up:<key>" and "move:<x>,<y>".
type Input struct {
	mu     sync.Mutex
	events []string

	X, Y int

	KeyDownErr  error
	KeyUpErr    error
	LocationErr error
	MoveErr     error

	// OnKeyDown runs after a successful key press.
	OnKeyDown func(key string)
}

func (i *Input) record(ev string) {
	i.mu.Lock()
	i.events = append(i.events, ev)
	i.mu.Unlock()
}

func (i *Input) KeyDown(key string) error {
	if i.KeyDownErr != nil {
		return i.KeyDownErr
	}
	i.record("down:" + key)
	if i.OnKeyDown != nil {
		i.OnKeyDown(key)
	}
	return nil
}

func (i *Input) KeyUp(key string) error {
	if i.KeyUpErr != nil {
		return i.KeyUpErr
	}
	i.record("up:" + key)
	return nil
}

func (i *Input) Location() (int, int, error) {
	if i.LocationErr != nil {
		return 0, 0, i.LocationErr
	}
	return i.X, i.Y, nil
}

func (i *Input) MoveTo(x, y int) error {
	if i.MoveErr != nil {
		return i.MoveErr
	}
	i.record(fmt.Sprintf("move:%d,%d", x, y))
	return nil
}

// Events returns every recorded event in order.
func (i *Input) Events() []string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return append([]string(nil), i.events...)
}

// KeyEvents returns the recorded events without pointer moves.
func (i *Input) KeyEvents() []string {
	var out []string
	for _, ev := range i.Events() {
		if len(ev) < 5 || ev[:5] != "move:" {
			out = append(out, ev)
		}
	}
	return out
}

// Windows is a fake platform.Windows. Find returns Window (which may be nil)
// and FindErr; Activate returns ActivateErr.
type Windows struct {
	mu sync.Mutex

	Window      *platform.Window
	FindErr     error
	ActivateErr error

	// OnFind runs before each Find; n is its 1-based index.
	OnFind func(n int)

	finds      int
	activated  []platform.Window
	closeCalls int
}

func (w *Windows) Find(title string) (*platform.Window, error) {
	w.mu.Lock()
	w.finds++
	n := w.finds
	hook := w.OnFind
	w.mu.Unlock()

	if hook != nil {
		hook(n)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.FindErr != nil {
		return nil, w.FindErr
	}
	if w.Window == nil || !platform.MatchTitle(w.Window.Title, title) {
		return nil, nil
	}
	win := *w.Window
	return &win, nil
}

func (w *Windows) Activate(win platform.Window) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.activated = append(w.activated, win)
	return w.ActivateErr
}

func (w *Windows) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closeCalls++
	return nil
}

// SetWindow replaces the window Find reports.
func (w *Windows) SetWindow(win *platform.Window) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Window = win
}

// Finds returns how many times Find was called.
func (w *Windows) Finds() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.finds
}

// Activations returns every window passed to Activate.
func (w *Windows) Activations() []platform.Window {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]platform.Window(nil), w.activated...)
}

// Closed reports how many times Close was called.
func (w *Windows) Closed() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closeCalls
}

// Inhibitor is a fake platform.SleepInhibitor.
type Inhibitor struct {
	mu       sync.Mutex
	held     bool
	releases int

	InhibitErr error
}

func (i *Inhibitor) Name() string { return "fake" }

func (i *Inhibitor) Inhibit() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.InhibitErr != nil {
		return i.InhibitErr
	}
	i.held = true
	return nil
}

func (i *Inhibitor) Release() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.held = false
	i.releases++
	return nil
}

// Held reports whether Inhibit succeeded and Release has not run since.
func (i *Inhibitor) Held() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.held
}

// Releases returns how many times Release was called.
func (i *Inhibitor) Releases() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.releases
}

// Rand is a scripted humanize.Rand. Floats and Ints are consumed in order;
// once exhausted the last value repeats, or zero if none were given.
type Rand struct {
	mu     sync.Mutex
	Floats []float64
	Ints   []int
	fi, ii int
}

func (r *Rand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Floats) == 0 {
		return 0
	}
	v := r.Floats[min(r.fi, len(r.Floats)-1)]
	r.fi++
	return v
}

func (r *Rand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Ints) == 0 {
		return 0
	}
	v := r.Ints[min(r.ii, len(r.Ints)-1)]
	r.ii++
	if v >= n {
		v = n - 1
	}
	return v
}
