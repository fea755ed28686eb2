package main

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/spvbuild/internal/compiler"
)

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	args := []string{"-h"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, &bytes.Buffer{}, args)

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_InvalidBuildFile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	invalidHCL := `
		compiler {
			path = "glslc"
		// Missing closing brace here
	`
	configPath := filepath.Join(t.TempDir(), "spvbuild.hcl")
	require.NoError(t, os.WriteFile(configPath, []byte(invalidHCL), 0o600), "failed to set up test file")

	// --- Act ---
	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"-config", configPath})

	// --- Assert ---
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse build file")
}

func TestRun_MissingInputDir(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "data")
	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"-in", missing, "-out", t.TempDir()})

	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun_MissingCompiler(t *testing.T) {
	t.Parallel()

	in := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(in, "a.vert"), []byte("void main() {}"), 0o600))

	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{
		"-in", in,
		"-out", t.TempDir(),
		"-compiler", "spvbuild-test-no-such-glslc",
	})
	require.ErrorIs(t, err, compiler.ErrNotFound)
}

func TestRun_EndToEnd(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("shell script compiler stand-in requires a Unix shell")
	}

	// --- Arrange ---
	in, out := t.TempDir(), t.TempDir()
	for _, name := range []string{"a.vert", "b.frag", "broken.comp"} {
		require.NoError(t, os.WriteFile(filepath.Join(in, name), []byte("void main() {}"), 0o600))
	}
	bin := filepath.Join(t.TempDir(), "glslc")
	script := `#!/bin/sh
case "$3" in
  *broken*) echo "$3:1: error: bad" >&2; exit 1 ;;
esac
cp "$3" "$2"
`
	require.NoError(t, os.WriteFile(bin, []byte(script), 0o755))
	args := []string{"-in", in, "-out", out, "-compiler", bin, "-sorted"}

	// --- Act ---
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	err := run(stdout, stderr, args)

	// --- Assert ---
	require.NoError(t, err, "a failing shader must not fail a non-strict run")
	require.Equal(t, strings.Join([]string{
		filepath.Join(in, "a.vert"),
		filepath.Join(in, "b.frag"),
		filepath.Join(in, "broken.comp"),
	}, "\n")+"\n", stdout.String())
	require.Contains(t, stderr.String(), "error: bad")
	require.FileExists(t, filepath.Join(out, "a.vert.spv"))
	require.FileExists(t, filepath.Join(out, "b.frag.spv"))
	require.NoFileExists(t, filepath.Join(out, "broken.comp.spv"))

	// Strict mode turns the same failure into an error.
	err = run(&bytes.Buffer{}, &bytes.Buffer{}, append(args, "-strict"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "1 of 3 shaders")
}

func TestRun_StrictFlagOverridesBuildFile(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("shell script compiler stand-in requires a Unix shell")
	}

	// --- Arrange ---
	in, out := t.TempDir(), t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(in, "broken.frag"), []byte("void main() {"), 0o600))
	bin := filepath.Join(t.TempDir(), "glslc")
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\nexit 1\n"), 0o755))
	configPath := filepath.Join(t.TempDir(), "spvbuild.hcl")
	buildFile := "strict = true\nsorted = true\n\ncompiler {\n  args = [\"-O\"]\n}\n"
	require.NoError(t, os.WriteFile(configPath, []byte(buildFile), 0o600))
	args := []string{"-config", configPath, "-in", in, "-out", out, "-compiler", bin}

	// --- Act / Assert ---
	err := run(&bytes.Buffer{}, &bytes.Buffer{}, args)
	require.Error(t, err, "strict = true in the build file applies without a flag")

	err = run(&bytes.Buffer{}, &bytes.Buffer{}, append(args, "-strict=false", "-sorted=false", "-compiler-args", ""))
	require.NoError(t, err, "-strict=false must override strict = true")
}
