// Package desktop implements the platform collaborators on a real desktop:
// robotgo for input everywhere, X11 window control on Linux and robotgo
// process windows on Windows and macOS. It needs cgo; the control loop only
// depends on the interfaces in package platform.
package desktop

import (
	"github.com/go-vgo/robotgo"
	"github.com/pkg/errors"

	"github.com/stigoleg/noafk/internal/platform"
)

// robotInput dispatches input through robotgo.
type robotInput struct{}

// NewInput returns the robotgo-backed InputDispatcher.
func NewInput() platform.InputDispatcher {
	return robotInput{}
}

func (robotInput) KeyDown(key string) error {
	return errors.Wrapf(robotgo.KeyToggle(key, "down"), "press %q", key)
}

func (robotInput) KeyUp(key string) error {
	return errors.Wrapf(robotgo.KeyToggle(key, "up"), "release %q", key)
}

func (robotInput) Location() (int, int, error) {
	x, y := robotgo.Location()
	return x, y, nil
}

func (robotInput) MoveTo(x, y int) error {
	if x < 0 || y < 0 {
		return errors.Errorf("pointer target (%d,%d) is off screen", x, y)
	}
	robotgo.Move(x, y)
	return nil
}
