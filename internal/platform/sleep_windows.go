//go:build windows

package platform

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

const (
	esSystemRequired  = 0x00000001
	esDisplayRequired = 0x00000002
	esContinuous      = 0x80000000
)

var (
	modkernel32                 = windows.NewLazySystemDLL("kernel32.dll")
	procSetThreadExecutionState = modkernel32.NewProc("SetThreadExecutionState")
)

// executionStateInhibitor sets the thread execution state to prevent sleep.
type executionStateInhibitor struct{}

// NewSleepInhibitor returns the SetThreadExecutionState inhibitor.
func NewSleepInhibitor() SleepInhibitor {
	return executionStateInhibitor{}
}

func (executionStateInhibitor) Name() string { return "SetThreadExecutionState" }

func (executionStateInhibitor) Inhibit() error {
	r, _, err := procSetThreadExecutionState.Call(uintptr(esContinuous | esSystemRequired | esDisplayRequired))
	if r == 0 {
		return errors.Wrap(err, "SetThreadExecutionState")
	}
	return nil
}

func (executionStateInhibitor) Release() error {
	r, _, err := procSetThreadExecutionState.Call(uintptr(esContinuous))
	if r == 0 {
		return errors.Wrap(err, "SetThreadExecutionState reset")
	}
	return nil
}
