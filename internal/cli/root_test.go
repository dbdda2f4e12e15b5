package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/stigoleg/noafk/internal/platform"
	"github.com/stigoleg/noafk/internal/testutil"
)

type fakePlatform struct {
	windows   *testutil.Windows
	input     *testutil.Input
	inhibitor *testutil.Inhibitor
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		windows:   &testutil.Windows{},
		input:     &testutil.Input{},
		inhibitor: &testutil.Inhibitor{},
	}
}

func (f *fakePlatform) platform() Platform {
	return Platform{
		NewWindows:   func() (platform.Windows, error) { return f.windows, nil },
		NewInput:     func() platform.InputDispatcher { return f.input },
		NewInhibitor: func() platform.SleepInhibitor { return f.inhibitor },
	}
}

// execute runs the command in a fresh directory holding configYAML as noafk.yaml.
func execute(t *testing.T, p Platform, configYAML string, args ...string) (string, error) {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)
	if configYAML != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "noafk.yaml"), []byte(configYAML), 0o644))
	}

	var out bytes.Buffer
	cmd := NewRootCommand(p)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

const consoleOnly = `
window_title: "Test Game"
retry_delay: 0.01
log:
  file: ""
  console: true
`

func TestVersionFlag(t *testing.T) {
	out, err := execute(t, newFakePlatform().platform(), "", "--version")
	require.NoError(t, err)
	assert.Equal(t, "noafk dev\n", out)
}

func TestTimedSessionRetriesAndStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	fp := newFakePlatform()
	out, err := execute(t, fp.platform(), consoleOnly, "--duration", "100ms", "--seed", "7")
	require.NoError(t, err)

	assert.Contains(t, out, "Game window 'Test Game' not found. Retrying...")
	assert.Contains(t, out, "Session time limit reached")
	assert.Contains(t, out, "Total actions executed: 0")
	assert.Regexp(t, `(?m)^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2},\d{3} - WARN - Game window`, out)

	assert.Empty(t, fp.input.Events())
	assert.Equal(t, 1, fp.windows.Closed())
	assert.Equal(t, 1, fp.inhibitor.Releases())
	assert.False(t, fp.inhibitor.Held())
}

func TestSleepPreventionCanBeDisabled(t *testing.T) {
	fp := newFakePlatform()
	_, err := execute(t, fp.platform(), consoleOnly+"prevent_sleep: false\n", "-d", "20ms")
	require.NoError(t, err)
	assert.Zero(t, fp.inhibitor.Releases())
}

func TestSessionWritesLogFile(t *testing.T) {
	fp := newFakePlatform()
	cfg := `
window_title: "Test Game"
retry_delay: 0.01
log:
  file: session.log
  console: false
`
	out, err := execute(t, fp.platform(), cfg, "-d", "50ms")
	require.NoError(t, err)
	assert.Empty(t, out, "console logging is off")

	data, err := os.ReadFile("session.log")
	require.NoError(t, err)
	assert.Contains(t, string(data), " - INFO - noafk started (session ")
	assert.Contains(t, string(data), " - INFO - Total actions executed: 0")
}

func TestInvalidConfiguration(t *testing.T) {
	fp := newFakePlatform()
	_, err := execute(t, fp.platform(), "base_interval: 0\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
	assert.Zero(t, fp.windows.Finds(), "the loop never starts")
}

func TestConflictingStopFlags(t *testing.T) {
	_, err := execute(t, newFakePlatform().platform(), consoleOnly, "-d", "1h", "-u", "22:00")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be used together")
}

func TestUnsupportedPlatform(t *testing.T) {
	p := newFakePlatform().platform()
	p.NewWindows = func() (platform.Windows, error) { return nil, platform.ErrUnsupported }

	_, err := execute(t, p, consoleOnly, "-d", "10ms")
	require.Error(t, err)
	assert.ErrorIs(t, err, platform.ErrUnsupported)
}

func TestRejectsPositionalArgs(t *testing.T) {
	_, err := execute(t, newFakePlatform().platform(), consoleOnly, "extra")
	assert.Error(t, err)
}
