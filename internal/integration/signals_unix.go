//go:build !windows

// Package integration exercises a whole session in a child process so real
// signals can be delivered to it.
package integration

import (
	"os"
	"syscall"
)

// terminationSignals are the signals a session must shut down cleanly on.
func terminationSignals() []os.Signal {
	return []os.Signal{
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	}
}
