// Package platform wraps the operating-system collaborators of the control
// loop: finding and raising the target window, synthesizing key and pointer
// input, and keeping the display awake for the session.
package platform

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrUnsupported is returned when no implementation exists for this OS.
var ErrUnsupported = errors.New("unsupported platform")

// Window identifies a top-level window. ID is an X11 window id on Linux and a
// process id elsewhere; callers treat it as opaque.
type Window struct {
	ID    uint64
	Title string
}

// WindowLocator finds the first window whose title contains title,
// ignoring case. It returns nil, nil when no window matches.
type WindowLocator interface {
	Find(title string) (*Window, error)
}

// WindowActivator restores a minimized window and brings it to the foreground.
type WindowActivator interface {
	Activate(w Window) error
}

// Windows is the combined window collaborator, owning any display connection.
type Windows interface {
	WindowLocator
	WindowActivator
	Close() error
}

// InputDispatcher synthesizes keyboard and pointer input.
type InputDispatcher interface {
	KeyDown(key string) error
	KeyUp(key string) error
	Location() (x, y int, err error)
	MoveTo(x, y int) error
}

// SleepInhibitor keeps the display and system awake while held.
type SleepInhibitor interface {
	Inhibit() error
	Release() error
	Name() string
}

// MatchTitle reports whether title contains want, ignoring case.
// An empty want never matches.
func MatchTitle(title, want string) bool {
	if want == "" {
		return false
	}
	return strings.Contains(strings.ToLower(title), strings.ToLower(want))
}
