package app

import (
	"fmt"
	"strings"

	"github.com/vk/spvbuild/internal/buildfile"
	"github.com/vk/spvbuild/internal/compiler"
	"github.com/vk/spvbuild/internal/driver"
)

// Built-in source and output directories, used when neither a flag nor the
// build file names one.
const (
	DefaultInputDir  = "ski_tycoon_v2/src/graphics_engine/gfx/data"
	DefaultOutputDir = "ski_tycoon_v2/src/graphics_engine/gfx/compiled_shader"
)

// Config holds everything an App needs. Empty strings mean "not set" so that
// a build file can fill them in. Booleans and CompilerArgs have a usable zero
// value, so whether they were given is tracked in Explicit instead.
type Config struct {
	ConfigPath string // optional spvbuild.hcl

	InputDir     string
	OutputDir    string
	Suffix       string
	CompilerPath string
	CompilerArgs []string
	Sorted       bool
	Strict       bool
	Explicit     Explicit

	LogFormat string
	LogLevel  string
}

// Explicit marks settings passed on the command line. A marked setting is
// never replaced by the build file, even when its value is the zero value.
type Explicit struct {
	Sorted       bool
	Strict       bool
	CompilerArgs bool
}

// NewConfig validates cfg and fills in logging defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	if err := validateSuffix(cfg.Suffix); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validateSuffix keeps output files inside the output directory.
func validateSuffix(suffix string) error {
	if strings.ContainsAny(suffix, `/\`) {
		return fmt.Errorf("invalid suffix %q: must not contain a path separator", suffix)
	}
	return nil
}

// merge fills every unset field of c from the build file.
func (c *Config) merge(f *buildfile.File) {
	if c.InputDir == "" {
		c.InputDir = f.InputDir
	}
	if c.OutputDir == "" {
		c.OutputDir = f.OutputDir
	}
	if c.Suffix == "" {
		c.Suffix = f.Suffix
	}
	if f.Sorted != nil && !c.Explicit.Sorted {
		c.Sorted = *f.Sorted
	}
	if f.Strict != nil && !c.Explicit.Strict {
		c.Strict = *f.Strict
	}
	if f.Compiler != nil {
		if c.CompilerPath == "" {
			c.CompilerPath = f.Compiler.Path
		}
		if !c.Explicit.CompilerArgs {
			c.CompilerArgs = f.Compiler.Args
		}
	}
}

// applyDefaults fills whatever is still unset after merging.
func (c *Config) applyDefaults() {
	if c.InputDir == "" {
		c.InputDir = DefaultInputDir
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.Suffix == "" {
		c.Suffix = driver.DefaultSuffix
	}
	if c.CompilerPath == "" {
		c.CompilerPath = compiler.DefaultBin
	}
}
