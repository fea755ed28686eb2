package compiler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"

	"github.com/mattn/go-shellwords"
	"github.com/vk/spvbuild/internal/ctxlog"
)

// DefaultBin is the compiler executable looked up on PATH when none is configured.
const DefaultBin = "glslc"

// ErrNotFound is returned when the compiler executable cannot be started
// because it does not exist.
var ErrNotFound = errors.New("shader compiler not found")

// ErrNotExecutable is returned when the compiler path exists but the process
// may not execute it.
var ErrNotExecutable = errors.New("shader compiler not executable")

// Invocation is a single compile request: one source path, one output path.
type Invocation struct {
	Input  string
	Output string
}

// Args returns the compiler arguments for the invocation.
func (inv Invocation) Args() []string {
	return []string{"-o", inv.Output, inv.Input}
}

// CompileError reports a compiler run that started but exited unsuccessfully.
type CompileError struct {
	Invocation Invocation
	ExitCode   int
	Err        error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile %s: exit status %d", e.Invocation.Input, e.ExitCode)
}

func (e *CompileError) Unwrap() error { return e.Err }

// Glslc runs a glslc-compatible executable.
type Glslc struct {
	// Bin is the executable name or path.
	Bin string
	// Args are passed before the -o flag on every invocation.
	Args []string

	// Stdout and Stderr receive the compiler's output streams. Nil means the
	// process's own stdout/stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// New returns a Glslc for bin with optional extra arguments. An empty bin
// selects DefaultBin.
func New(bin string, extra ...string) *Glslc {
	if bin == "" {
		bin = DefaultBin
	}
	return &Glslc{Bin: bin, Args: extra}
}

// Command builds, but does not start, the compiler command for inv.
func (g *Glslc) Command(ctx context.Context, inv Invocation) *exec.Cmd {
	args := make([]string, 0, len(g.Args)+3)
	args = append(args, g.Args...)
	args = append(args, inv.Args()...)

	cmd := exec.CommandContext(ctx, g.Bin, args...)
	cmd.Stdout = g.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = g.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	return cmd
}

// Compile runs the compiler for inv and waits for it to exit.
func (g *Glslc) Compile(ctx context.Context, inv Invocation) error {
	logger := ctxlog.FromContext(ctx)
	cmd := g.Command(ctx, inv)
	logger.Debug("Running shader compiler.", "args", cmd.Args)

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		return &CompileError{Invocation: inv, ExitCode: exitErr.ExitCode(), Err: err}
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s: %v", ErrNotFound, g.Bin, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s: %v", ErrNotExecutable, g.Bin, err)
	default:
		return fmt.Errorf("run %s: %w", g.Bin, err)
	}
}

// ParseArgs splits a shell-style argument string, honoring quotes, into the
// extra compiler arguments.
func ParseArgs(s string) ([]string, error) {
	args, err := shellwords.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("parse compiler arguments %q: %w", s, err)
	}
	return args, nil
}
