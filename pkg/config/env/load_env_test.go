package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDotEnv(t *testing.T) {
	t.Run("missing default file is skipped", func(t *testing.T) {
		t.Setenv(PathVariable, "")
		assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
	})

	t.Run("explicit path must exist", func(t *testing.T) {
		t.Setenv(PathVariable, filepath.Join(t.TempDir(), "nope.env"))
		assert.Error(t, LoadDotEnv(".env"))
	})

	t.Run("loads variables without overriding", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("VIEWER_TEST_PORT=6000\nVIEWER_TEST_DEBUG=true\n"), 0o644))
		t.Setenv(PathVariable, "")
		t.Setenv("VIEWER_TEST_DEBUG", "false")
		t.Cleanup(func() { os.Unsetenv("VIEWER_TEST_PORT") })

		require.NoError(t, LoadDotEnv(path))
		assert.Equal(t, "6000", os.Getenv("VIEWER_TEST_PORT"))
		assert.Equal(t, "false", os.Getenv("VIEWER_TEST_DEBUG"))
	})
}
