//go:build darwin

package platform

// NewSleepInhibitor keeps the display and system awake through caffeinate,
// which exits on its own if this process dies.
func NewSleepInhibitor() SleepInhibitor {
	return &commandInhibitor{
		name: "caffeinate",
		args: []string{"-d", "-i", "-w", selfPid()},
	}
}
