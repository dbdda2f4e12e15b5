//go:build !linux && !darwin && !windows

package platform

type noopInhibitor struct{}

// NewSleepInhibitor returns an inhibitor that always reports ErrUnsupported.
func NewSleepInhibitor() SleepInhibitor { return noopInhibitor{} }

func (noopInhibitor) Name() string   { return "none" }
func (noopInhibitor) Inhibit() error { return ErrUnsupported }
func (noopInhibitor) Release() error { return nil }
