package keepalive

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stigoleg/noafk/internal/testutil"
)

func TestHeldKeysTracksPresses(t *testing.T) {
	input := &testutil.Input{}
	h := newHeldKeys(input)

	require.NoError(t, h.press("w"))
	require.NoError(t, h.press("space"))
	assert.Equal(t, []string{"space", "w"}, h.Held())

	require.NoError(t, h.release("w"))
	assert.Equal(t, []string{"space"}, h.Held())

	require.NoError(t, h.ReleaseAll())
	assert.Empty(t, h.Held())
	assert.Equal(t, []string{"down:w", "down:space", "up:w", "up:space"}, input.Events())
}

func TestHeldKeysFailedPressIsNotTracked(t *testing.T) {
	input := &testutil.Input{KeyDownErr: errors.New("denied")}
	h := newHeldKeys(input)

	assert.Error(t, h.press("space"))
	assert.Empty(t, h.Held())
}

func TestHeldKeysRetryFailedRelease(t *testing.T) {
	input := &testutil.Input{}
	h := newHeldKeys(input)
	require.NoError(t, h.press("space"))

	input.KeyUpErr = errors.New("stuck")
	assert.Error(t, h.release("space"))
	assert.Error(t, h.ReleaseAll())
	assert.Equal(t, []string{"space"}, h.Held())

	input.KeyUpErr = nil
	require.NoError(t, h.ReleaseAll())
	assert.Empty(t, h.Held())
	assert.Equal(t, []string{"down:space", "up:space"}, input.Events())
}

func TestHeldKeysReleasedByCleanup(t *testing.T) {
	input := &testutil.Input{}
	cm := NewCleanupManager(0, nil)
	loop := NewLoop(Deps{
		Config:    testConfig(),
		Locator:   &testutil.Windows{},
		Activator: &testutil.Windows{},
		Input:     input,
		Cleanup:   cm,
	})

	require.NoError(t, loop.keys.press("d"))
	assert.Empty(t, cm.Execute())
	assert.Equal(t, []string{"down:d", "up:d"}, input.Events())
}
