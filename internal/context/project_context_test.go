package context

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitekit/sitekit-cli/internal/constants"
	"github.com/sitekit/sitekit-cli/internal/testutil"
)

func TestFindProjectSettingsPath(t *testing.T) {
	tests := []struct {
		name          string
		setupFunc     func() string
		expectFound   bool
		expectError   bool
		errorContains string
	}{
		{
			name: "finds sitekit.toml in current directory",
			setupFunc: func() string {
				tempDir := t.TempDir()
				require.NoError(t, os.WriteFile(filepath.Join(tempDir, constants.DefaultProjectSettingsFileName), []byte("[build]\n"), 0600))
				return tempDir
			},
			expectFound: true,
		},
		{
			name: "finds sitekit.toml in parent directory",
			setupFunc: func() string {
				tempDir := t.TempDir()
				subDir := filepath.Join(tempDir, "subdir", "deeper")
				require.NoError(t, os.MkdirAll(subDir, 0755))
				require.NoError(t, os.WriteFile(filepath.Join(tempDir, constants.DefaultProjectSettingsFileName), []byte("[build]\n"), 0600))
				return subDir
			},
			expectFound: true,
		},
		{
			name:        "no sitekit.toml found",
			setupFunc:   func() string { return t.TempDir() },
			expectFound: false,
		},
		{
			name:          "empty start directory",
			setupFunc:     func() string { return "" },
			expectError:   true,
			errorContains: "starting directory cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, found, err := FindProjectSettingsPath(tt.setupFunc())

			if tt.expectError {
				require.Error(t, err)
				assert.ErrorContains(t, err, tt.errorContains)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectFound, found)
			if tt.expectFound {
				assert.Equal(t, constants.DefaultProjectSettingsFileName, filepath.Base(path))
				_, err := os.Stat(path)
				assert.NoError(t, err)
			} else {
				assert.Empty(t, path)
			}
		})
	}
}

func TestSetProjectContext(t *testing.T) {
	logger := testutil.NewTestLogger()

	t.Run("explicit path", func(t *testing.T) {
		restore := chdir(t, t.TempDir())
		defer restore()

		target := t.TempDir()
		root, err := SetProjectContext(target, logger)
		require.NoError(t, err)

		cwd, err := os.Getwd()
		require.NoError(t, err)
		assert.Equal(t, evalSymlinks(t, target), evalSymlinks(t, cwd))
		assert.Equal(t, target, root)
	})

	t.Run("walks up to settings file", func(t *testing.T) {
		project := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(project, constants.DefaultProjectSettingsFileName), []byte("[build]\n"), 0600))
		nested := filepath.Join(project, "src", "app")
		require.NoError(t, os.MkdirAll(nested, 0755))

		restore := chdir(t, nested)
		defer restore()

		root, err := SetProjectContext("", logger)
		require.NoError(t, err)
		assert.Equal(t, evalSymlinks(t, project), evalSymlinks(t, root))
	})

	t.Run("falls back to working directory", func(t *testing.T) {
		dir := t.TempDir()
		restore := chdir(t, dir)
		defer restore()

		root, err := SetProjectContext("", logger)
		require.NoError(t, err)
		assert.Equal(t, evalSymlinks(t, dir), evalSymlinks(t, root))
	})

	t.Run("missing explicit path", func(t *testing.T) {
		_, err := SetProjectContext(filepath.Join(t.TempDir(), "nope"), logger)
		require.Error(t, err)
		assert.ErrorContains(t, err, "project root path does not exist")
	})

	t.Run("explicit path is a file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file.txt")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0600))

		_, err := SetProjectContext(file, logger)
		require.Error(t, err)
		assert.ErrorContains(t, err, "not a directory")
	})
}

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	restore, err := testutil.ChangeWorkingDirectory(dir)
	require.NoError(t, err)
	return restore
}

func evalSymlinks(t *testing.T, p string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(p)
	require.NoError(t, err)
	return resolved
}
