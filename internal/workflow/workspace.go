package workflow

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"syscall"

	"prism/internal/defaults"
)

// Tools used to find, quit and open applications.
const (
	LSAppInfoBinary = "/usr/bin/lsappinfo"
	OSAScriptBinary = "/usr/bin/osascript"
	OpenBinary      = "/usr/bin/open"
)

var pidPattern = regexp.MustCompile(`"pid"\s*=\s*(\d+)`)

// ProcessWorkspace finds applications with lsappinfo, asks them to quit
// through AppleScript and opens them with open.
type ProcessWorkspace struct {
	lsappinfo defaults.Runner
	osascript defaults.Runner
	open      defaults.Runner
	alive     func(pid int) bool
}

// NewProcessWorkspace uses the system tools.
func NewProcessWorkspace() *ProcessWorkspace {
	return &ProcessWorkspace{
		lsappinfo: defaults.NewCLIRunner(defaults.WithBinaryPath(LSAppInfoBinary)),
		osascript: defaults.NewCLIRunner(defaults.WithBinaryPath(OSAScriptBinary)),
		open:      defaults.NewCLIRunner(defaults.WithBinaryPath(OpenBinary)),
		alive:     processAlive,
	}
}

// Running returns the application's process when one is running.
func (w *ProcessWorkspace) Running(ctx context.Context, domain string) (Process, bool) {
	out, err := w.lsappinfo.Run(ctx, "info", "-only", "pid", domain)
	if err != nil {
		logf("lsappinfo %s: %v", domain, err)
		return nil, false
	}
	m := pidPattern.FindSubmatch(out)
	if m == nil {
		return nil, false
	}
	pid, err := strconv.Atoi(string(m[1]))
	if err != nil || pid <= 0 {
		return nil, false
	}
	return &process{domain: domain, pid: pid, workspace: w}, true
}

// Launch opens the application bundle at path.
func (w *ProcessWorkspace) Launch(ctx context.Context, path string) error {
	if _, err := w.open.Run(ctx, path); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	return nil
}

type process struct {
	domain    string
	pid       int
	workspace *ProcessWorkspace
}

// Terminate asks the application to quit the way the Dock's Quit item does,
// so it can save state or refuse.
func (p *process) Terminate(ctx context.Context) error {
	script := fmt.Sprintf("tell application id %q to quit", p.domain)
	if _, err := p.workspace.osascript.Run(ctx, "-e", script); err != nil {
		return fmt.Errorf("quit %s: %w", p.domain, err)
	}
	return nil
}

func (p *process) Terminated() bool {
	return !p.workspace.alive(p.pid)
}

// processAlive checks pid with signal 0. EPERM means the process exists but
// belongs to someone else.
func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = proc.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}
