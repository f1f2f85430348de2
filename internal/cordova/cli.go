// SPDX-License-Identifier: MPL-2.0

package cordova

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"mvdan.cc/sh/v3/syntax"

	"github.com/pwa-builder/manifoldjs-cordova/pkg/platform"
)

const (
	// DefaultRetryAttempts is the number of tries for retryable installs.
	DefaultRetryAttempts = 3
	// DefaultRetryBackoff is the delay before the first retry; it doubles on each attempt.
	DefaultRetryBackoff = 2 * time.Second

	// outputTailBytes bounds the output kept on SubprocessError.
	outputTailBytes = 4096
)

// ErrSubprocess is the sentinel error wrapped by SubprocessError.
var ErrSubprocess = errors.New("cordova command failed")

type (
	// ExecCommandFunc is the function signature for creating exec.Cmd.
	// This allows injection of mock implementations for testing.
	ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

	// Option configures a CLI.
	Option func(*CLI)

	// CLI runs cordova subcommands through a resolved binary path.
	CLI struct {
		binaryPath    string
		execCommand   ExecCommandFunc
		stdout        io.Writer
		stderr        io.Writer
		retryAttempts int
		retryBackoff  time.Duration
	}

	// SubprocessError reports a cordova invocation that could not be started
	// or exited with a non-zero status.
	SubprocessError struct {
		Binary   string
		Args     []string
		Dir      string
		ExitCode int
		// Output holds the tail of the combined stdout and stderr.
		Output string
		Cause  error
	}
)

// Error implements the error interface.
func (e *SubprocessError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "command %s failed", CommandLine(e.Binary, e.Args...))
	if e.ExitCode > 0 {
		fmt.Fprintf(&b, " with exit code %d", e.ExitCode)
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

// Unwrap returns ErrSubprocess and the underlying cause.
func (e *SubprocessError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrSubprocess}
	}
	return []error{ErrSubprocess, e.Cause}
}

// WithExecCommand sets a custom exec command function for testing.
func WithExecCommand(fn ExecCommandFunc) Option {
	return func(c *CLI) {
		c.execCommand = fn
	}
}

// WithOutput streams subprocess stdout and stderr to the given writers.
// Nil writers discard the stream.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(c *CLI) {
		c.stdout = stdout
		c.stderr = stderr
	}
}

// WithRetry configures retries of plugin and platform installs that fail
// with a transient error. attempts below 1 disables retries.
func WithRetry(attempts int, backoff time.Duration) Option {
	return func(c *CLI) {
		c.retryAttempts = max(attempts, 1)
		c.retryBackoff = backoff
	}
}

// New creates a CLI for the cordova binary at binaryPath.
func New(binaryPath string, opts ...Option) *CLI {
	c := &CLI{
		binaryPath:    binaryPath,
		execCommand:   exec.CommandContext,
		retryAttempts: DefaultRetryAttempts,
		retryBackoff:  DefaultRetryBackoff,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BinaryPath returns the path to the cordova binary.
func (c *CLI) BinaryPath() string { return c.binaryPath }

// --- Argument Builders ---

// CreateArgs constructs arguments for a project creation.
//
// Generated command: <binary> create <project> <packageID> <appName>
func CreateArgs(project, packageID, appName string) []string {
	return []string{"create", project, packageID, appName}
}

// PluginAddArgs constructs arguments for installing plugins.
//
// Generated command: <binary> plugin add <plugins...>
func PluginAddArgs(plugins []string) []string {
	return append([]string{"plugin", "add"}, plugins...)
}

// PlatformAddArgs constructs arguments for adding sub-platforms.
//
// Generated command: <binary> platform add <ids...>
func PlatformAddArgs(ids []platform.ID) []string {
	return append([]string{"platform", "add"}, platform.Strings(ids)...)
}

// BuildArgs constructs arguments for building sub-platforms.
//
// Generated command: <binary> build <ids...>
func BuildArgs(ids []platform.ID) []string {
	return append([]string{"build"}, platform.Strings(ids)...)
}

// RunArgs constructs arguments for running one sub-platform.
//
// Generated command: <binary> run <id>
func RunArgs(id platform.ID) []string {
	return []string{"run", string(id)}
}

// CommandLine renders a command as a bash-quoted line for logs.
func CommandLine(binary string, args ...string) string {
	words := make([]string, 0, len(args)+1)
	for _, w := range append([]string{binary}, args...) {
		q, err := syntax.Quote(w, syntax.LangBash)
		if err != nil {
			q = fmt.Sprintf("%q", w)
		}
		words = append(words, q)
	}
	return strings.Join(words, " ")
}

// --- Operations ---

// Create generates a base project named project inside dir.
func (c *CLI) Create(ctx context.Context, dir, project, packageID, appName string) error {
	return c.runCommand(ctx, dir, CreateArgs(project, packageID, appName)...)
}

// AddPlugins installs plugins into the project at dir in one invocation.
func (c *CLI) AddPlugins(ctx context.Context, dir string, plugins []string) error {
	return c.runRetryable(ctx, dir, PluginAddArgs(plugins)...)
}

// AddPlatforms adds sub-platforms to the project at dir in one invocation.
func (c *CLI) AddPlatforms(ctx context.Context, dir string, ids []platform.ID) error {
	return c.runRetryable(ctx, dir, PlatformAddArgs(ids)...)
}

// Build builds the given sub-platforms of the project at dir.
func (c *CLI) Build(ctx context.Context, dir string, ids []platform.ID) error {
	return c.runCommand(ctx, dir, BuildArgs(ids)...)
}

// Run deploys and launches one sub-platform of the project at dir.
func (c *CLI) Run(ctx context.Context, dir string, id platform.ID) error {
	return c.runCommand(ctx, dir, RunArgs(id)...)
}

// --- Command Execution ---

// CreateCommand creates an exec.Cmd for the given arguments in dir.
func (c *CLI) CreateCommand(ctx context.Context, dir string, args ...string) *exec.Cmd {
	cmd := c.execCommand(ctx, c.binaryPath, args...)
	cmd.Dir = dir
	return cmd
}

func (c *CLI) runRetryable(ctx context.Context, dir string, args ...string) error {
	return RetryWithBackoff(ctx, c.retryAttempts, c.retryBackoff, func(int) (bool, error) {
		err := c.runCommand(ctx, dir, args...)
		return IsTransientError(err), err
	})
}

func (c *CLI) runCommand(ctx context.Context, dir string, args ...string) error {
	cmd := c.CreateCommand(ctx, dir, args...)

	tail := &tailBuffer{limit: outputTailBytes}
	cmd.Stdout = teeWriter(tail, c.stdout)
	cmd.Stderr = teeWriter(tail, c.stderr)

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return &SubprocessError{
			Binary:   c.binaryPath,
			Args:     args,
			Dir:      dir,
			ExitCode: exitCode,
			Output:   tail.String(),
			Cause:    err,
		}
	}
	return nil
}

func teeWriter(tail io.Writer, w io.Writer) io.Writer {
	if w == nil {
		return tail
	}
	return io.MultiWriter(tail, w)
}

// tailBuffer keeps the last limit bytes written to it. It is shared by the
// stdout and stderr copy goroutines of one command.
type tailBuffer struct {
	mu    sync.Mutex
	buf   bytes.Buffer
	limit int
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := len(p)
	t.buf.Write(p)
	if over := t.buf.Len() - t.limit; over > 0 {
		t.buf.Next(over)
	}
	return n, nil
}

func (t *tailBuffer) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.buf.String()
}
