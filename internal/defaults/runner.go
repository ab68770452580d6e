// Package defaults reads and writes per-application preference domains.
//
// Reads go straight to the property-list files on disk. Writes always go
// through the system's preference editor so the preference daemon sees them.
package defaults

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"
	"sync"

	appErrors "prism/internal/errors"
)

const (
	// DefaultBinary is the system preference editor.
	DefaultBinary = "/usr/bin/defaults"

	maxErrorSnippetLen = 200
)

// Runner executes the preference editor with the given arguments and returns
// its combined output.
type Runner interface {
	Run(ctx context.Context, args ...string) ([]byte, error)
}

// CLIRunner runs an external binary. Invocations are serialised so no two
// editor processes race on the same preference file.
type CLIRunner struct {
	bin string
	mu  sync.Mutex
}

// CLIOption configures a CLIRunner.
type CLIOption func(*CLIRunner)

// WithBinaryPath overrides the binary invoked by the runner.
func WithBinaryPath(path string) CLIOption {
	return func(r *CLIRunner) {
		if strings.TrimSpace(path) != "" {
			r.bin = path
		}
	}
}

// NewCLIRunner constructs a runner for the preference editor.
func NewCLIRunner(opts ...CLIOption) *CLIRunner {
	r := &CLIRunner{bin: DefaultBinary}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Binary returns the command the runner invokes.
func (r *CLIRunner) Binary() string {
	return r.bin
}

func (r *CLIRunner) Run(ctx context.Context, args ...string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	//nolint:gosec // G204: wrapper intentionally shells out to the configured binary
	cmd := exec.CommandContext(ctx, r.bin, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return out, formatCommandError(r.bin, args, err, out)
	}
	return out, nil
}

// CLIError describes a failed invocation of an external binary.
type CLIError struct {
	Binary  string
	Command []string
	Output  string
	Err     error
}

func (e CLIError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("%s %v failed: %s", e.Binary, e.Command, e.Output)
	}
	return fmt.Sprintf("%s %v failed: %v", e.Binary, e.Command, e.Err)
}

func (e CLIError) Unwrap() error {
	return e.Err
}

func formatCommandError(bin string, args []string, cmdErr error, out []byte) error {
	snippet := strings.TrimSpace(string(out))
	if len(snippet) > maxErrorSnippetLen {
		snippet = snippet[:maxErrorSnippetLen] + "..."
	}
	return classifyCLIError(bin, args, cmdErr, snippet)
}

func classifyCLIError(binary string, args []string, err error, output string) error {
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return appErrors.New(appErrors.CodeCLINotFound, fmt.Sprintf("%s binary not found", binary), err)
	}
	return appErrors.New(appErrors.CodeCLIFailed, CLIError{Binary: binary, Command: args, Output: output, Err: err}.Error(), err)
}
