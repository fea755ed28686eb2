package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/spvbuild/internal/buildfile"
	"github.com/vk/spvbuild/internal/compiler"
	"github.com/vk/spvbuild/internal/ctxlog"
	"github.com/vk/spvbuild/internal/driver"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	compiler driver.Compiler
}

// Option customizes an App at construction time.
type Option func(*App)

// WithCompiler replaces the glslc compiler the App would otherwise build from
// its configuration.
func WithCompiler(c driver.Compiler) Option {
	return func(a *App) { a.compiler = c }
}

// NewApp is the constructor for the main application. Progress lines and the
// compiler's stdout go to outW; logs and the compiler's stderr go to errW.
// cfg is copied, then completed from the build file and built-in defaults.
func NewApp(outW, errW io.Writer, cfg *Config, opts ...Option) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, errW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	resolved := *cfg
	if resolved.ConfigPath != "" {
		f, err := buildfile.Load(ctx, resolved.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		resolved.merge(f)
		if err := validateSuffix(resolved.Suffix); err != nil {
			return nil, fmt.Errorf("failed to load configuration: %s: %w", resolved.ConfigPath, err)
		}
	}
	resolved.applyDefaults()
	logger.Debug("Configuration resolved.",
		"input_dir", resolved.InputDir,
		"output_dir", resolved.OutputDir,
		"compiler", resolved.CompilerPath,
		"compiler_args", resolved.CompilerArgs,
		"sorted", resolved.Sorted,
		"strict", resolved.Strict,
	)

	a := &App{
		outW:   outW,
		logger: logger,
		config: &resolved,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.compiler == nil {
		g := compiler.New(resolved.CompilerPath, resolved.CompilerArgs...)
		g.Stdout = outW
		g.Stderr = errW
		a.compiler = g
	}
	return a, nil
}

// Config returns the resolved configuration. This is primarily for testing.
func (a *App) Config() *Config {
	return a.config
}
