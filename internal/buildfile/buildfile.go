package buildfile

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/spvbuild/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// DefaultName is the conventional file name of a build file.
const DefaultName = "spvbuild.hcl"

// File is the decoded build file. Nil pointers and empty strings mean the
// setting was not present.
type File struct {
	InputDir  string    `hcl:"input_dir,optional"`
	OutputDir string    `hcl:"output_dir,optional"`
	Suffix    string    `hcl:"suffix,optional"`
	Sorted    *bool     `hcl:"sorted,optional"`
	Strict    *bool     `hcl:"strict,optional"`
	Compiler  *Compiler `hcl:"compiler,block"`
}

// Compiler is the `compiler` block.
type Compiler struct {
	Path string   `hcl:"path,optional"`
	Args []string `hcl:"args,optional"`
}

// Load parses and decodes the build file at path.
func Load(ctx context.Context, path string) (*File, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading build file.", "path", path)

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read build file: %w", err)
	}

	f, err := Parse(src, path, os.Environ())
	if err != nil {
		return nil, err
	}

	logger.Debug("Build file loaded.", "path", path, "input_dir", f.InputDir, "output_dir", f.OutputDir, "has_compiler_block", f.Compiler != nil)
	return f, nil
}

// Parse decodes build file source. environ has the form of os.Environ and
// populates the `env` variable.
func Parse(src []byte, filename string, environ []string) (*File, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse build file %s: %w", filename, diags)
	}

	var f File
	diags = gohcl.DecodeBody(hclFile.Body, evalContext(environ), &f)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode build file %s: %w", filename, diags)
	}
	return &f, nil
}

// evalContext exposes the environment as `env` plus a small set of string
// functions.
func evalContext(environ []string) *hcl.EvalContext {
	env := make(map[string]cty.Value, len(environ))
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		env[name] = cty.StringVal(value)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(env),
		},
		Functions: map[string]function.Function{
			"format":    stdlib.FormatFunc,
			"join":      stdlib.JoinFunc,
			"lower":     stdlib.LowerFunc,
			"upper":     stdlib.UpperFunc,
			"trimspace": stdlib.TrimSpaceFunc,
			"coalesce":  stdlib.CoalesceFunc,
		},
	}
}
