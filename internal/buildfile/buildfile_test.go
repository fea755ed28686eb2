package buildfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestParse_FullFile(t *testing.T) {
	t.Parallel()

	src := `
input_dir  = "shaders/src"
output_dir = "shaders/${lower("SPV")}"
suffix     = ".spirv"
sorted     = true
strict     = false

compiler {
  path = format("%s/bin/glslc", env.VULKAN_SDK)
  args = ["-O", "--target-env=vulkan1.2"]
}
`
	f, err := Parse([]byte(src), DefaultName, []string{"VULKAN_SDK=/opt/vulkan", "HOME=/home/dev"})
	require.NoError(t, err)

	sorted, strict := true, false
	want := &File{
		InputDir:  "shaders/src",
		OutputDir: "shaders/spv",
		Suffix:    ".spirv",
		Sorted:    &sorted,
		Strict:    &strict,
		Compiler: &Compiler{
			Path: "/opt/vulkan/bin/glslc",
			Args: []string{"-O", "--target-env=vulkan1.2"},
		},
	}
	if diff := cmp.Diff(want, f); diff != "" {
		t.Errorf("decoded file mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_EmptyFileLeavesEverythingUnset(t *testing.T) {
	t.Parallel()

	f, err := Parse([]byte(""), DefaultName, nil)
	require.NoError(t, err)
	require.Empty(t, f.InputDir)
	require.Empty(t, f.OutputDir)
	require.Empty(t, f.Suffix)
	require.Nil(t, f.Sorted)
	require.Nil(t, f.Strict)
	require.Nil(t, f.Compiler)
}

func TestParse_Join(t *testing.T) {
	t.Parallel()

	src := `output_dir = join("/", [env.GAME_ROOT, "gfx", "compiled_shader"])`
	f, err := Parse([]byte(src), DefaultName, []string{"GAME_ROOT=ski_tycoon_v2", "BROKEN_ENTRY"})
	require.NoError(t, err)
	require.Equal(t, "ski_tycoon_v2/gfx/compiled_shader", f.OutputDir)
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		src       string
		errSubstr string
	}{
		{
			name:      "syntax error",
			src:       "input_dir = \"shaders\"\ncompiler {\n",
			errSubstr: "failed to parse build file",
		},
		{
			name:      "unknown attribute",
			src:       `workers = 4`,
			errSubstr: "failed to decode build file",
		},
		{
			name:      "undefined environment variable",
			src:       `input_dir = env.SPVBUILD_TEST_UNSET`,
			errSubstr: "failed to decode build file",
		},
		{
			name:      "wrong type",
			src:       `sorted = "sometimes"`,
			errSubstr: "failed to decode build file",
		},
		{
			name:      "duplicate compiler block",
			src:       "compiler {}\ncompiler {}\n",
			errSubstr: "failed to decode build file",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.src), DefaultName, nil)
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.errSubstr)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), DefaultName)
	require.NoError(t, os.WriteFile(path, []byte(`input_dir = "data"`), 0o600))

	f, err := Load(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, "data", f.InputDir)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(context.Background(), filepath.Join(t.TempDir(), DefaultName))
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
}
