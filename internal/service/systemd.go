package service

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"golang.org/x/sys/unix"
)

const systemctlBinary = "systemctl"

// showProperties are the unit properties Status needs to derive a State.
var showProperties = []string{"LoadState", "ActiveState", "SubState", "FreezerState"}

// runFunc executes a binary and returns its stdout and stderr.
type runFunc func(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)

// realSystemdController implements Controller by calling systemctl.
// Remote hosts are reached through systemctl --host.
type realSystemdController struct {
	run runFunc
}

// NewSystemdController returns a Controller that calls the real systemctl binary.
func NewSystemdController() Controller {
	return &realSystemdController{run: execRun}
}

func execRun(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// IsAvailable returns true if systemctl is on PATH.
func IsAvailable() bool {
	_, err := exec.LookPath(systemctlBinary)
	return err == nil
}

func (c *realSystemdController) Status(ctx context.Context, id Identity) (State, error) {
	out, err := c.systemctl(ctx, id, "show", "--property="+strings.Join(showProperties, ","), "--", id.Name)
	if err != nil {
		return StateUnknown, err
	}
	props := parseProperties(out)
	if props["LoadState"] == "not-found" {
		return StateUnknown, fmt.Errorf("service: %s: %w", id.Name, ErrServiceNotFound)
	}
	return stateFromProperties(props), nil
}

func (c *realSystemdController) Start(ctx context.Context, id Identity) error {
	_, err := c.systemctl(ctx, id, "start", "--no-block", "--", id.Name)
	return err
}

func (c *realSystemdController) Stop(ctx context.Context, id Identity) error {
	_, err := c.systemctl(ctx, id, "stop", "--no-block", "--", id.Name)
	return err
}

func (c *realSystemdController) systemctl(ctx context.Context, id Identity, verb string, args ...string) ([]byte, error) {
	argv := make([]string, 0, len(args)+3)
	if !id.IsLocal() {
		argv = append(argv, "--host", id.Host)
	}
	argv = append(argv, verb)
	argv = append(argv, args...)

	stdout, stderr, err := c.run(ctx, systemctlBinary, argv...)
	if err != nil {
		return nil, fmt.Errorf("service: systemctl %s: %s: %w", verb, strings.TrimSpace(string(stderr)), err)
	}
	return stdout, nil
}

// parseProperties parses the KEY=VALUE lines printed by systemctl show.
func parseProperties(out []byte) map[string]string {
	props := make(map[string]string)
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), "=")
		if !ok {
			continue
		}
		props[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return props
}

// stateFromProperties maps systemd unit properties to a State.
// The freezer state takes precedence: a frozen unit is still "active".
func stateFromProperties(props map[string]string) State {
	switch props["FreezerState"] {
	case "frozen":
		return StatePaused
	case "freezing":
		return StatePausePending
	case "thawing":
		return StateContinuePending
	}

	switch props["ActiveState"] {
	case "active", "reloading":
		return StateRunning
	case "inactive", "failed":
		return StateStopped
	case "activating":
		return StateStartPending
	case "deactivating":
		return StateStopPending
	default:
		return StateUnknown
	}
}

// realRootChecker implements RootChecker using the effective UID.
type realRootChecker struct{}

// NewRootChecker returns a RootChecker that checks the effective UID of the process.
func NewRootChecker() RootChecker {
	return &realRootChecker{}
}

func (c *realRootChecker) IsRoot() bool {
	return unix.Geteuid() == 0
}
