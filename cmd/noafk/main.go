package main

import (
	"os"

	"github.com/stigoleg/noafk/internal/cli"
	"github.com/stigoleg/noafk/internal/platform"
	"github.com/stigoleg/noafk/internal/platform/desktop"
)

func main() {
	os.Exit(cli.Execute(cli.Platform{
		NewWindows:   desktop.NewWindows,
		NewInput:     desktop.NewInput,
		NewInhibitor: platform.NewSleepInhibitor,
	}))
}
