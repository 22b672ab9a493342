package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayPath(t *testing.T) {
	workDir := filepath.FromSlash("/work/project")
	homeDir := filepath.FromSlash("/home/dev")

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "empty", path: "", expected: ""},
		{name: "relative path is kept", path: "dummy/target.rs", expected: "dummy/target.rs"},
		{name: "tilde path is kept", path: "~/dummy/target.rs", expected: "~/dummy/target.rs"},
		{name: "under working directory", path: filepath.FromSlash("/work/project/src/main.rs"), expected: "src/main.rs"},
		{name: "under home directory", path: filepath.FromSlash("/home/dev/lib/lib.rs"), expected: "~/lib/lib.rs"},
		{name: "outside both", path: filepath.FromSlash("/rust/made/up/path/lib.rs"), expected: filepath.FromSlash("/rust/made/up/path/lib.rs")},
		{name: "sibling prefix is not a parent", path: filepath.FromSlash("/work/project2/a.rs"), expected: filepath.FromSlash("/work/project2/a.rs")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DisplayPath(tt.path, workDir, homeDir))
		})
	}
}

func TestDisplayPathWithoutBases(t *testing.T) {
	path := filepath.FromSlash("/work/project/src/main.rs")
	assert.Equal(t, path, DisplayPath(path, "", ""))
}

func TestReadFile(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("regular file", func(t *testing.T) {
		path := filepath.Join(tmpDir, "result.json")
		require.NoError(t, os.WriteFile(path, []byte("[]"), 0644))

		data, err := ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))
	})

	t.Run("directory", func(t *testing.T) {
		_, err := ReadFile(tmpDir)
		assert.ErrorContains(t, err, "is a directory")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadFile(filepath.Join(tmpDir, "missing.json"))
		assert.ErrorContains(t, err, "path stat error")
	})
}

func TestEnsureParentDir(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "deeper", "report.sarif")
	require.NoError(t, EnsureParentDir(target))

	info, err := os.Stat(filepath.Dir(target))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.NoError(t, EnsureParentDir("report.sarif"))
}
