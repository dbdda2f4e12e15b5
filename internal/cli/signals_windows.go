//go:build windows

package cli

import (
	"os"
	"syscall"
)

// shutdownSignals end the session gracefully.
func shutdownSignals() []os.Signal {
	return []os.Signal{
		os.Interrupt,
		syscall.SIGTERM,
	}
}
