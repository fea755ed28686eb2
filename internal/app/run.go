package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/spvbuild/internal/ctxlog"
	"github.com/vk/spvbuild/internal/driver"
)

// ErrShadersFailed is returned by Run in strict mode when at least one
// shader failed to compile.
var ErrShadersFailed = errors.New("shader compilation failed")

// Run executes one build pass.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	report, err := driver.Run(ctx, driver.Options{
		InputDir:  a.config.InputDir,
		OutputDir: a.config.OutputDir,
		Suffix:    a.config.Suffix,
		Sorted:    a.config.Sorted,
		Progress:  a.outW,
	}, a.compiler)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	if a.config.Strict && len(report.Failures) > 0 {
		return fmt.Errorf("%w: %d of %d shaders", ErrShadersFailed, len(report.Failures), report.Invocations)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
