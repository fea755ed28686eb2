package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vk/spvbuild/internal/compiler"
	"github.com/vk/spvbuild/internal/ctxlog"
	"github.com/vk/spvbuild/internal/fsutil"
)

// Compiler compiles a single shader.
type Compiler interface {
	Compile(ctx context.Context, inv compiler.Invocation) error
}

// Options configures one build pass.
type Options struct {
	InputDir  string
	OutputDir string
	// Suffix defaults to DefaultSuffix when empty.
	Suffix string
	// Sorted processes entries in name order instead of directory order.
	Sorted bool
	// Progress receives each input path, one per line, before it is compiled.
	// Nil means os.Stdout.
	Progress io.Writer
}

func (o Options) suffix() string {
	if o.Suffix == "" {
		return DefaultSuffix
	}
	return o.Suffix
}

// Failure is a per-entry compiler failure that did not stop the pass.
type Failure struct {
	Invocation compiler.Invocation
	Err        error
}

// Report summarizes a completed (or aborted) pass.
type Report struct {
	Entries     int
	Invocations int
	Failures    []Failure
}

// Succeeded returns the number of invocations that completed without error.
func (r *Report) Succeeded() int {
	return r.Invocations - len(r.Failures)
}

// Plan lists opts.InputDir and returns one invocation per entry, in listing
// order (or name order when opts.Sorted is set).
func Plan(ctx context.Context, opts Options) ([]compiler.Invocation, error) {
	logger := ctxlog.FromContext(ctx)

	names, err := fsutil.ListNames(opts.InputDir, opts.Sorted)
	if err != nil {
		return nil, err
	}
	logger.Debug("Input directory listed.", "dir", opts.InputDir, "entries", len(names), "sorted", opts.Sorted)

	plan := make([]compiler.Invocation, 0, len(names))
	for _, name := range names {
		plan = append(plan, compiler.Invocation{
			Input:  InputPath(opts.InputDir, name),
			Output: OutputPath(opts.OutputDir, name, opts.suffix()),
		})
	}
	return plan, nil
}

// Run performs the build pass. The returned report is non-nil whenever the
// directory listing succeeded, including when the pass was aborted.
func Run(ctx context.Context, opts Options, c Compiler) (*Report, error) {
	logger := ctxlog.FromContext(ctx)

	plan, err := Plan(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list shader sources: %w", err)
	}

	progress := opts.Progress
	if progress == nil {
		progress = os.Stdout
	}

	report := &Report{Entries: len(plan)}
	for _, inv := range plan {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("build pass interrupted: %w", err)
		}

		fmt.Fprintln(progress, inv.Input)
		report.Invocations++

		entryCtx := ctxlog.With(ctx, "input", inv.Input, "output", inv.Output)
		err := c.Compile(entryCtx, inv)
		if err == nil {
			continue
		}
		if errors.Is(err, compiler.ErrNotFound) || errors.Is(err, compiler.ErrNotExecutable) {
			return report, err
		}

		report.Failures = append(report.Failures, Failure{Invocation: inv, Err: err})
		logger.Warn("Shader failed to compile, continuing.", "input", inv.Input, "error", err)
	}

	logger.Info("Build pass finished.",
		"entries", report.Entries,
		"succeeded", report.Succeeded(),
		"failed", len(report.Failures),
	)
	return report, nil
}
