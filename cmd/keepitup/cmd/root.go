// Package cmd implements the keepitup CLI.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plexsphere/keepitup/internal/reconcile"
	"github.com/plexsphere/keepitup/internal/service"
)

// Build info set from main.
var (
	buildVersion = "dev"
	buildCommit  = "none"
	buildDate    = "unknown"
)

// Service control collaborators, replaced in tests.
var (
	newController  = service.NewSystemdController
	newRootChecker = service.NewRootChecker
)

// SetVersionInfo sets the version info from build-time ldflags.
func SetVersionInfo(version, commit, date string) {
	buildVersion = version
	buildCommit = commit
	buildDate = date
}

type options struct {
	cfgFile        string
	logLevel       string
	serviceName    string
	machineName    string
	timeoutMs      int
	pollIntervalMs int
	stopService    bool
	debug          bool
	pause          bool
}

// rootCommand holds one invocation of the CLI and the outcome it produced.
type rootCommand struct {
	cmd     *cobra.Command
	opts    options
	outcome reconcile.Outcome
	ran     bool
}

func newRootCommand() *rootCommand {
	rc := &rootCommand{outcome: reconcile.OutcomeError}
	rc.cmd = &cobra.Command{
		Use:   "keepitup",
		Short: "keepitup keeps a systemd service running",
		Long: "keepitup checks the state of a single systemd service once. If the service\n" +
			"is not running it is restarted; with --stop a running service is stopped.\n" +
			"The exit code is 0 on success, 1 when help was shown, and 2 on any error.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          rc.run,
	}

	f := rc.cmd.Flags()
	f.StringVarP(&rc.opts.serviceName, "serviceName", "s", "", "[required] name of the service")
	f.StringVarP(&rc.opts.machineName, "machineName", "m", "", "[optional] host the service runs on, local machine if empty")
	f.IntVarP(&rc.opts.timeoutMs, "timeoutMilliseconds", "t", int(reconcile.DefaultTimeout.Milliseconds()), "[optional] deadline for a stop or restart")
	f.IntVar(&rc.opts.pollIntervalMs, "pollIntervalMilliseconds", int(reconcile.DefaultPollInterval.Milliseconds()), "[optional] interval between state checks while waiting")
	f.BoolVar(&rc.opts.stopService, "stop", false, "[optional] override: stop the service instead of keeping it running")
	f.BoolVar(&rc.opts.stopService, "stopService", false, "alias for --stop")
	f.BoolVarP(&rc.opts.debug, "debug", "d", false, "[optional] show debug details (same as --log-level debug)")
	f.BoolVar(&rc.opts.pause, "pause", false, "[optional] wait for enter when finished")
	f.BoolVar(&rc.opts.pause, "pauseWhenFinished", false, "alias for --pause")
	f.StringVar(&rc.opts.cfgFile, "config", "", "[optional] YAML config file path")
	f.StringVar(&rc.opts.logLevel, "log-level", "", "log level (off, debug, info, warn, error)")
	_ = f.MarkHidden("stopService")
	_ = f.MarkHidden("pauseWhenFinished")

	rc.cmd.Version = buildVersion
	rc.cmd.SetVersionTemplate(fmt.Sprintf("keepitup version {{.Version}}\ncommit: %s\nbuilt: %s\n", buildCommit, buildDate))
	return rc
}

// execute runs the command with args and returns the process exit code.
func (rc *rootCommand) execute(ctx context.Context, args []string) int {
	rc.cmd.SetArgs(args)
	if err := rc.cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(rc.cmd.ErrOrStderr(), "keepitup: %v\n", err)
		return reconcile.OutcomeError.ExitCode()
	}
	if !rc.ran {
		// Cobra handled --help or --version without running the command.
		if flagChanged(rc.cmd, "help") {
			return reconcile.OutcomeWarning.ExitCode()
		}
		return reconcile.OutcomeSuccess.ExitCode()
	}
	return rc.outcome.ExitCode()
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

// Execute runs keepitup with the process arguments and returns the exit code.
func Execute() int {
	return newRootCommand().execute(context.Background(), os.Args[1:])
}
