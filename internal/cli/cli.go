package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/spvbuild/internal/app"
	"github.com/vk/spvbuild/internal/compiler"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
// No arguments at all is valid and selects the built-in directories.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("spvbuild", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprintf(output, `
spvbuild - compiles every shader in a directory to SPIR-V with glslc.

Usage:
  spvbuild [options]

Every entry of the input directory is compiled as
  glslc -o <out>/<entry>.spv <in>/<entry>

Defaults:
  input  %s
  output %s

Options:
`, app.DefaultInputDir, app.DefaultOutputDir)
		flagSet.PrintDefaults()
	}

	inFlag := flagSet.String("in", "", "Directory of shader sources. (default built-in path)")
	outFlag := flagSet.String("out", "", "Directory for compiled shaders; must already exist. (default built-in path)")
	compilerFlag := flagSet.String("compiler", "", "Shader compiler executable. (default \"glslc\")")
	compilerArgsFlag := flagSet.String("compiler-args", "", "Extra compiler arguments, shell-quoted, placed before -o.")
	suffixFlag := flagSet.String("suffix", "", "Suffix appended to each entry name. (default \".spv\")")
	configFlag := flagSet.String("config", "", "Path to an HCL build file.")
	sortedFlag := flagSet.Bool("sorted", false, "Compile entries in name order instead of directory order.")
	strictFlag := flagSet.Bool("strict", false, "Exit non-zero if any shader fails to compile.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() > 0 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected argument %q: spvbuild takes no positional arguments", flagSet.Arg(0))}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	// Flags given on the command line win over the build file, even when
	// they are set to their zero value.
	var explicit app.Explicit
	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "sorted":
			explicit.Sorted = true
		case "strict":
			explicit.Strict = true
		case "compiler-args":
			explicit.CompilerArgs = true
		}
	})

	var compilerArgs []string
	if explicit.CompilerArgs {
		parsed, err := compiler.ParseArgs(*compilerArgsFlag)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		compilerArgs = parsed
	}
	slog.Debug("CLI parameter validation complete.", "explicit", explicit)

	config, err := app.NewConfig(app.Config{
		ConfigPath:   *configFlag,
		InputDir:     *inFlag,
		OutputDir:    *outFlag,
		Suffix:       *suffixFlag,
		CompilerPath: *compilerFlag,
		CompilerArgs: compilerArgs,
		Sorted:       *sortedFlag,
		Strict:       *strictFlag,
		Explicit:     explicit,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
