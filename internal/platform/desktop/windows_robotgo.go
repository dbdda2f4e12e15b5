//go:build windows || darwin

package desktop

import (
	"github.com/go-vgo/robotgo"
	"github.com/pkg/errors"

	"github.com/stigoleg/noafk/internal/platform"
)

// robotWindows finds windows by scanning process titles through robotgo.
type robotWindows struct{}

// NewWindows returns the robotgo-backed window collaborator.
func NewWindows() (platform.Windows, error) {
	return robotWindows{}, nil
}

func (robotWindows) Find(title string) (*platform.Window, error) {
	pids, err := robotgo.Pids()
	if err != nil {
		return nil, errors.Wrap(err, "list processes")
	}
	for _, pid := range pids {
		name := robotgo.GetTitle(pid)
		if platform.MatchTitle(name, title) {
			return &platform.Window{ID: uint64(pid), Title: name}, nil
		}
	}
	return nil, nil
}

// Activate restores and raises the main window of the process.
func (robotWindows) Activate(w platform.Window) error {
	return errors.Wrapf(robotgo.ActivePid(int(w.ID)), "activate %q", w.Title)
}

func (robotWindows) Close() error { return nil }
