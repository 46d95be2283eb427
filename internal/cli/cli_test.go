package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/iburimskiy/neuralbg/internal/theme"
	"github.com/iburimskiy/neuralbg/internal/toast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(theme.AppearanceEnv, "light")

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, Version+"\n", out)
}

func TestThemeSetAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")

	out, err := execute(t, "theme", "--prefs", path)
	require.NoError(t, err)
	assert.Contains(t, out, "stored: unset")
	assert.Contains(t, out, "effective: light")

	out, err = execute(t, "theme", "set", "dark", "--prefs", path)
	require.NoError(t, err)
	assert.Contains(t, out, "theme set to dark")

	out, err = execute(t, "theme", "--prefs", path)
	require.NoError(t, err)
	assert.Contains(t, out, "stored: dark")
	assert.Contains(t, out, "effective: dark")
}

func TestThemeToggle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")

	out, err := execute(t, "theme", "toggle", "--prefs", path)
	require.NoError(t, err)
	assert.Contains(t, out, "theme set to dark")

	out, err = execute(t, "theme", "toggle", "--prefs", path)
	require.NoError(t, err)
	assert.Contains(t, out, "theme set to light")
}

func TestThemeSetRejectsUnknown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")

	_, err := execute(t, "theme", "set", "sepia", "--prefs", path)
	assert.ErrorIs(t, err, theme.ErrInvalidTheme)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestThemeNoPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")

	_, err := execute(t, "theme", "set", "dark", "--prefs", path, "--no-persist")
	require.NoError(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestNotifyRejectsUnknownSeverity(t *testing.T) {
	_, err := execute(t, "notify", "--severity", "fatal", "hello")
	assert.Error(t, err)
}

func TestBadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "neuralbg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme:\n  force: sepia\n"), 0o644))

	_, err := execute(t, "version", "--config", path)
	assert.Error(t, err)
}

func TestToastSinksRunAsync(t *testing.T) {
	a := &app{}
	assert.Empty(t, a.toastSinks())

	a.settings.Toast.Desktop = true
	a.settings.Toast.Sound = true
	sinks := a.toastSinks()
	require.Len(t, sinks, 2)
	for _, s := range sinks {
		assert.IsType(t, &toast.AsyncSink{}, s)
	}
}
