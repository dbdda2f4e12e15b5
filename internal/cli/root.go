// Package cli wires configuration, logging, the platform layer and the
// session into the noafk command.
package cli

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/stigoleg/noafk/internal/config"
	"github.com/stigoleg/noafk/internal/humanize"
	"github.com/stigoleg/noafk/internal/keepalive"
	"github.com/stigoleg/noafk/internal/logging"
	"github.com/stigoleg/noafk/internal/platform"
	"github.com/stigoleg/noafk/internal/ui"
)

// Version is set at build time with -ldflags "-X .../internal/cli.Version=...".
var Version = "dev"

const (
	appName        = "noafk"
	appDescription = "Keeps a game session from being flagged as idle by sending occasional, humanized input to its window."
)

// Platform builds the OS collaborators. cmd/noafk supplies the desktop
// implementations; tests substitute fakes. Generating docs needs none.
type Platform struct {
	NewWindows   func() (platform.Windows, error)
	NewInput     func() platform.InputDispatcher
	NewInhibitor func() platform.SleepInhibitor
}

// NewRootCommand returns the noafk command wired to p.
func NewRootCommand(p Platform) *cobra.Command {
	flags := &config.Flags{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Anti-AFK presence simulator",
		Long:  appDescription,
		Example: "  noafk                      # run until interrupted\n" +
			"  noafk -d 2h30m             # stop after 2 hours 30 minutes\n" +
			"  noafk -u 22:00 --tui       # stop at 10 PM, show the dashboard\n" +
			"  noafk -f ~/noafk.yaml      # use a specific config file",
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, flags, p)
		},
	}
	cmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")
	flags.Register(cmd.Flags())
	return cmd
}

// Execute runs the command and returns the process exit code.
func Execute(p Platform) int {
	if err := NewRootCommand(p).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.RenderError(err))
		return 1
	}
	return 0
}

func run(cmd *cobra.Command, flags *config.Flags, p Platform) error {
	cfg, err := config.Load(flags.ConfigFile)
	if err != nil {
		return err
	}
	runFor, err := flags.RunFor(time.Now())
	if err != nil {
		return err
	}

	logCfg := cfg.Log
	if flags.TUI {
		logCfg.Console = false
	}
	logger, err := logging.NewWithConsole(logCfg, cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	restore := logging.RedirectStdLog(logger)
	defer restore()

	cleanup := keepalive.NewCleanupManager(5*time.Second, logger)
	defer cleanup.Execute()
	cleanup.RegisterFunc("logger", func() error {
		// Syncing a terminal reports EINVAL on some systems.
		_ = logger.Sync()
		return nil
	})

	windows, err := p.NewWindows()
	if err != nil {
		return fmt.Errorf("accessing windows: %w", err)
	}
	cleanup.RegisterFunc("windows", windows.Close)

	var inhibitor platform.SleepInhibitor
	if cfg.PreventSleep {
		inhibitor = p.NewInhibitor()
	}

	var (
		events   chan keepalive.Event
		observer keepalive.Observer
	)
	if flags.TUI {
		events = make(chan keepalive.Event, 64)
		observer = keepalive.ChannelObserver(events)
	}

	loop := keepalive.NewLoop(keepalive.Deps{
		Config:    cfg,
		Locator:   windows,
		Activator: windows,
		Input:     p.NewInput(),
		Rand:      humanize.NewRand(flags.Seed),
		Clock:     humanize.RealClock(),
		Logger:    logger,
		Observer:  observer,
		Cleanup:   cleanup,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), shutdownSignals()...)
	defer stop()

	keeper := keepalive.NewKeeper(loop, inhibitor, logger)
	if err := keeper.Start(ctx, runFor); err != nil {
		return err
	}

	if flags.TUI {
		if err := ui.Run(ctx, keeper, events, cfg.WindowTitle, nil, nil); err != nil {
			_ = keeper.Stop()
			return fmt.Errorf("running dashboard: %w", err)
		}
		_ = keeper.Stop()
	}
	return keeper.Wait()
}
