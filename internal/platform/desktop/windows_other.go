//go:build !linux && !windows && !darwin

package desktop

import "github.com/stigoleg/noafk/internal/platform"

// NewWindows reports that window control is unavailable on this OS.
func NewWindows() (platform.Windows, error) {
	return nil, platform.ErrUnsupported
}
