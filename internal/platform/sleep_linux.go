//go:build linux

package platform

// NewSleepInhibitor blocks idle and sleep through systemd-inhibit.
func NewSleepInhibitor() SleepInhibitor {
	return &commandInhibitor{
		name: "systemd-inhibit",
		args: []string{
			"--what=idle:sleep",
			"--who=noafk",
			"--why=Keeping the game session active",
			"--mode=block",
			"tail", "--pid=" + selfPid(), "-f", "/dev/null",
		},
	}
}
