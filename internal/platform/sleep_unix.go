//go:build linux || darwin

package platform

import (
	"os"
	"os/exec"
	"strconv"
	"sync"

	"github.com/pkg/errors"
)

// commandInhibitor holds a helper process whose lifetime blocks sleep.
type commandInhibitor struct {
	mu   sync.Mutex
	name string
	args []string
	cmd  *exec.Cmd
}

func (c *commandInhibitor) Name() string { return c.name }

func (c *commandInhibitor) Inhibit() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cmd != nil {
		return nil
	}
	if _, err := exec.LookPath(c.name); err != nil {
		return errors.Wrapf(ErrUnsupported, "%s not found", c.name)
	}

	cmd := exec.Command(c.name, c.args...)
	if err := cmd.Start(); err != nil {
		return errors.Wrapf(err, "start %s", c.name)
	}
	c.cmd = cmd
	return nil
}

func (c *commandInhibitor) Release() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cmd == nil || c.cmd.Process == nil {
		return nil
	}
	cmd := c.cmd
	c.cmd = nil

	if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return errors.Wrapf(err, "stop %s", c.name)
	}
	_ = cmd.Wait()
	return nil
}

// selfPid ties the helper's lifetime to this process where the tool supports it.
func selfPid() string {
	return strconv.Itoa(os.Getpid())
}
