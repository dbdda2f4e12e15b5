package keepalive

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/stigoleg/noafk/internal/testutil"
)

// blockingRunner runs until its context ends and reports why.
type blockingRunner struct {
	started chan struct{}
	err     error
}

func newBlockingRunner() *blockingRunner {
	return &blockingRunner{started: make(chan struct{})}
}

func (r *blockingRunner) Run(ctx context.Context) error {
	close(r.started)
	<-ctx.Done()
	return r.err
}

func TestKeeperStartStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	runner := newBlockingRunner()
	inhibitor := &testutil.Inhibitor{}
	k := NewKeeper(runner, inhibitor, nil)

	assert.False(t, k.IsRunning())
	require.NoError(t, k.Start(context.Background(), 0))
	<-runner.started

	assert.True(t, k.IsRunning())
	assert.True(t, inhibitor.Held())
	assert.Zero(t, k.TimeRemaining(), "indefinite sessions have no end time")

	require.NoError(t, k.Stop())
	assert.False(t, k.IsRunning())
	assert.False(t, inhibitor.Held())
	assert.Equal(t, 1, inhibitor.Releases())
}

func TestKeeperRejectsSecondStart(t *testing.T) {
	defer goleak.VerifyNone(t)

	k := NewKeeper(newBlockingRunner(), nil, nil)
	require.NoError(t, k.Start(context.Background(), 0))
	defer k.Stop()

	assert.ErrorIs(t, k.Start(context.Background(), 0), ErrAlreadyRunning)
}

func TestKeeperTimedSession(t *testing.T) {
	defer goleak.VerifyNone(t)

	k := NewKeeper(newBlockingRunner(), nil, nil)
	require.NoError(t, k.Start(context.Background(), 100*time.Millisecond))

	remaining := k.TimeRemaining()
	assert.Greater(t, remaining, time.Duration(0))
	assert.LessOrEqual(t, remaining, 100*time.Millisecond)

	select {
	case <-k.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("timed session did not end")
	}
	assert.NoError(t, k.Wait())
	assert.False(t, k.IsRunning())
	assert.Zero(t, k.TimeRemaining())
}

func TestKeeperParentCancellation(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	k := NewKeeper(newBlockingRunner(), nil, nil)
	require.NoError(t, k.Start(ctx, 0))

	cancel()
	assert.NoError(t, k.Wait())
	assert.False(t, k.IsRunning())
}

func TestKeeperReturnsRunnerError(t *testing.T) {
	defer goleak.VerifyNone(t)

	runner := newBlockingRunner()
	runner.err = errors.New("unexpected error: boom")
	k := NewKeeper(runner, nil, nil)
	require.NoError(t, k.Start(context.Background(), 0))
	<-runner.started

	assert.EqualError(t, k.Stop(), "unexpected error: boom")
	assert.EqualError(t, k.Wait(), "unexpected error: boom")
}

func TestKeeperRunsWithoutInhibitor(t *testing.T) {
	defer goleak.VerifyNone(t)

	inhibitor := &testutil.Inhibitor{InhibitErr: errors.New("systemd-inhibit not found")}
	k := NewKeeper(newBlockingRunner(), inhibitor, nil)

	require.NoError(t, k.Start(context.Background(), 0))
	assert.True(t, k.IsRunning(), "a missing inhibitor does not prevent the session")
	require.NoError(t, k.Stop())
}

func TestKeeperStopWhenIdle(t *testing.T) {
	k := NewKeeper(newBlockingRunner(), nil, nil)
	assert.NoError(t, k.Stop())
	assert.NoError(t, k.Wait())
}

func TestKeeperStopTimeout(t *testing.T) {
	release := make(chan struct{})
	k := NewKeeper(runnerFunc(func(ctx context.Context) error {
		<-release
		return nil
	}), nil, nil)
	require.NoError(t, k.Start(context.Background(), 0))

	err := k.StopWithTimeout(20 * time.Millisecond)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	assert.NoError(t, k.Wait())
}

type runnerFunc func(ctx context.Context) error

func (f runnerFunc) Run(ctx context.Context) error { return f(ctx) }

func TestKeeperDrivesLoop(t *testing.T) {
	defer goleak.VerifyNone(t)

	h := newHarness(t, testConfig())
	h.windows.SetWindow(nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h.clock.OnSleep = func(n int, _ time.Duration) {
		if n == 2 {
			cancel()
		}
	}

	k := NewKeeper(h.loop, nil, nil)
	require.NoError(t, k.Start(ctx, 0))
	require.NoError(t, k.Wait())

	assert.Equal(t, 2, h.windows.Finds())
	assert.Equal(t, StateStopped, h.loop.State())
}
