package platform

import (
	"go/parser"
	"go/token"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
		match bool
	}{
		{"exact", "FINAL FANTASY XIV", "FINAL FANTASY XIV", true},
		{"case insensitive", "Final Fantasy XIV", "FINAL FANTASY XIV", true},
		{"substring", "FINAL FANTASY XIV - Online", "fantasy xiv", true},
		{"different window", "Terminal", "FINAL FANTASY XIV", false},
		{"empty title", "", "FINAL FANTASY XIV", false},
		{"empty query never matches", "Anything", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.match, MatchTitle(tt.title, tt.want))
		})
	}
}

func TestErrUnsupportedSurvivesWrapping(t *testing.T) {
	err := errors.Wrap(ErrUnsupported, "caffeinate not found")
	assert.True(t, errors.Is(err, ErrUnsupported))
	assert.Contains(t, err.Error(), "unsupported platform")
}

func TestSleepInhibitorHasName(t *testing.T) {
	inh := NewSleepInhibitor()
	assert.NotEmpty(t, inh.Name())
	// Releasing without inhibiting first is a no-op.
	assert.NoError(t, inh.Release())
}

// The control loop and the command must build without cgo; only cmd/noafk
// links the desktop implementations.
func TestCorePackagesAvoidCgoInput(t *testing.T) {
	forbidden := []string{
		"github.com/go-vgo/robotgo",
		"github.com/stigoleg/noafk/internal/platform/desktop",
	}
	dirs := []string{".", "../keepalive", "../cli", "../humanize", "../testutil", "../ui", "../integration"}

	for _, dir := range dirs {
		files, err := filepath.Glob(filepath.Join(dir, "*.go"))
		require.NoError(t, err)
		require.NotEmpty(t, files, dir)

		for _, file := range files {
			f, err := parser.ParseFile(token.NewFileSet(), file, nil, parser.ImportsOnly)
			require.NoError(t, err)
			for _, imp := range f.Imports {
				path, err := strconv.Unquote(imp.Path.Value)
				require.NoError(t, err)
				for _, bad := range forbidden {
					assert.False(t, strings.HasPrefix(path, bad), "%s imports %s", file, path)
				}
			}
		}
	}
}
