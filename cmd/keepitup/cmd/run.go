package cmd

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/plexsphere/keepitup/internal/config"
	"github.com/plexsphere/keepitup/internal/reconcile"
	"github.com/plexsphere/keepitup/internal/service"
)

func (rc *rootCommand) run(cmd *cobra.Command, _ []string) error {
	rc.ran = true
	start := time.Now()

	cfg, err := rc.loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.LogLevel, cmd.ErrOrStderr()).With("run_id", uuid.NewString())

	id, err := service.NewIdentity(cfg.ServiceName, cfg.MachineName)
	if err != nil {
		return err
	}
	intent := reconcile.IntentEnsureRunning
	if cfg.StopService {
		intent = reconcile.IntentForceStop
	}

	logger.Debug("using options",
		"service", id.Name,
		"machine", machineLabel(id),
		"timeout", cfg.Reconcile.Timeout,
		"poll_interval", cfg.Reconcile.PollInterval,
		"intent", intent,
	)

	if id.IsLocal() && !newRootChecker().IsRoot() {
		logger.Warn("not running as root, service control may be denied", "service", id.String())
	}

	reconciler := reconcile.NewReconciler(newController(), cfg.Reconcile, logger)
	res := reconciler.Run(cmd.Context(), id, intent)
	rc.outcome = res.Outcome

	logger.Debug("complete",
		"outcome", res.Outcome,
		"action", res.Action,
		"state", res.Final,
		"took", time.Since(start),
	)

	if rc.opts.pause {
		waitForEnter(cmd.InOrStdin(), cmd.OutOrStdout())
	}
	return nil
}

// loadConfig reads the optional config file and layers explicitly set flags on top.
func (rc *rootCommand) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := &config.Config{}
	if rc.opts.cfgFile != "" {
		var err error
		if cfg, err = config.ReadConfig(rc.opts.cfgFile); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("serviceName") {
		cfg.ServiceName = rc.opts.serviceName
	}
	if flags.Changed("machineName") {
		cfg.MachineName = rc.opts.machineName
	}
	if flags.Changed("stop") || flags.Changed("stopService") {
		cfg.StopService = rc.opts.stopService
	}
	if flags.Changed("timeoutMilliseconds") || cfg.Reconcile.Timeout == 0 {
		cfg.Reconcile.Timeout = time.Duration(rc.opts.timeoutMs) * time.Millisecond
	}
	if flags.Changed("pollIntervalMilliseconds") || cfg.Reconcile.PollInterval == 0 {
		cfg.Reconcile.PollInterval = time.Duration(rc.opts.pollIntervalMs) * time.Millisecond
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = rc.opts.logLevel
	}
	if rc.opts.debug {
		cfg.LogLevel = "debug"
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLogger(level string, w io.Writer) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "off":
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func machineLabel(id service.Identity) string {
	if !id.IsLocal() {
		return id.Host
	}
	hostname, err := os.Hostname()
	if err != nil {
		return "local"
	}
	return "local: " + hostname
}

func waitForEnter(in io.Reader, out io.Writer) {
	fmt.Fprintln(out, "Press enter to complete")
	_, _ = bufio.NewReader(in).ReadString('\n')
}
