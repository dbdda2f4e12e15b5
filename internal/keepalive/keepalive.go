// Package keepalive runs the presence session: the control loop that finds the
// game window and acts on it, and the Keeper that owns the loop's lifetime.
package keepalive

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/stigoleg/noafk/internal/platform"
)

// ErrAlreadyRunning is returned by Start while a session is active.
var ErrAlreadyRunning = errors.New("session already running")

// Runner is a blocking session body; *Loop satisfies it.
type Runner interface {
	Run(ctx context.Context) error
}

// Keeper runs a Runner in the background, optionally for a fixed duration,
// and holds a sleep inhibitor for as long as it runs.
type Keeper struct {
	mu        sync.Mutex
	running   bool
	runner    Runner
	inhibitor platform.SleepInhibitor
	log       *zap.SugaredLogger
	cancel    context.CancelFunc
	done      chan struct{}
	err       error
	endTime   time.Time
}

// NewKeeper returns a Keeper for runner. inhibitor may be nil.
func NewKeeper(runner Runner, inhibitor platform.SleepInhibitor, log *zap.Logger) *Keeper {
	if log == nil {
		log = zap.NewNop()
	}
	return &Keeper{runner: runner, inhibitor: inhibitor, log: log.Sugar()}
}

// IsRunning returns whether a session is currently active
func (k *Keeper) IsRunning() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.running
}

// Start launches the session under parent. A positive d ends it after d.
func (k *Keeper) Start(parent context.Context, d time.Duration) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.running {
		return ErrAlreadyRunning
	}

	var ctx context.Context
	if d > 0 {
		ctx, k.cancel = context.WithTimeout(parent, d)
		k.endTime = time.Now().Add(d)
		k.log.Infof("Session will end in %s", d)
	} else {
		ctx, k.cancel = context.WithCancel(parent)
		k.endTime = time.Time{}
	}

	k.inhibit()

	k.running = true
	k.err = nil
	k.done = make(chan struct{})
	go k.run(ctx, k.cancel, k.done)
	return nil
}

func (k *Keeper) run(ctx context.Context, cancel context.CancelFunc, done chan struct{}) {
	err := k.runner.Run(ctx)
	cancel()
	k.release()

	k.mu.Lock()
	k.err = err
	k.running = false
	k.mu.Unlock()
	close(done)
}

func (k *Keeper) inhibit() {
	if k.inhibitor == nil {
		return
	}
	if err := k.inhibitor.Inhibit(); err != nil {
		k.log.Warnf("Sleep prevention unavailable (%s): %v", k.inhibitor.Name(), err)
		return
	}
	k.log.Infof("Sleep prevention active via %s", k.inhibitor.Name())
}

func (k *Keeper) release() {
	if k.inhibitor == nil {
		return
	}
	if err := k.inhibitor.Release(); err != nil {
		k.log.Warnf("Releasing sleep prevention failed: %v", err)
	}
}

// Done is closed when the session ends. It is nil before the first Start.
func (k *Keeper) Done() <-chan struct{} {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.done
}

// Wait blocks until the session ends and returns the Runner's error.
func (k *Keeper) Wait() error {
	done := k.Done()
	if done == nil {
		return nil
	}
	<-done

	k.mu.Lock()
	defer k.mu.Unlock()
	return k.err
}

// Stop ends the session and waits for it to finish.
func (k *Keeper) Stop() error {
	return k.StopWithTimeout(0)
}

// StopWithTimeout ends the session, waiting at most timeout (5s if zero) for
// the Runner to return.
func (k *Keeper) StopWithTimeout(timeout time.Duration) error {
	k.mu.Lock()
	if !k.running {
		k.mu.Unlock()
		return nil
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	k.cancel()
	done := k.done
	k.mu.Unlock()

	t := time.NewTimer(timeout)
	defer t.Stop()

	select {
	case <-done:
		k.mu.Lock()
		defer k.mu.Unlock()
		return k.err
	case <-t.C:
		k.log.Warnf("Session did not stop within %v", timeout)
		return context.DeadlineExceeded
	}
}

// TimeRemaining returns the remaining duration for timed mode
func (k *Keeper) TimeRemaining() time.Duration {
	k.mu.Lock()
	defer k.mu.Unlock()

	if !k.running || k.endTime.IsZero() {
		return 0
	}

	remaining := time.Until(k.endTime)
	if remaining < 0 {
		return 0
	}
	return remaining
}
