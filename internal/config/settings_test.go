package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	s, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, Default(), s)
	assert.Equal(t, ParticleCount, s.Graph.Particles)
	assert.Equal(t, 4*time.Second, s.Toast.Duration)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "neuralbg.yaml")
	data := []byte(`
graph:
  particles: 120
  glow: true
toast:
  duration: 5s
  max_toasts: 3
theme:
  force: dark
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	s, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, 120, s.Graph.Particles)
	assert.True(t, s.Graph.Glow)
	assert.Equal(t, 5*time.Second, s.Toast.Duration)
	assert.Equal(t, 3, s.Toast.MaxToasts)
	assert.Equal(t, "dark", s.Theme.Force)
	// untouched keys keep their defaults
	assert.Equal(t, float64(ConnectionRadius), s.Graph.ConnectionRadius)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("NEURALBG_GRAPH_PARTICLES", "50")

	s, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, 50, s.Graph.Particles)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	s := Default()
	s.Theme.Force = "sepia"
	assert.ErrorIs(t, s.Validate(), ErrInvalidSettings)

	s = Default()
	s.Window.Width = 0
	assert.ErrorIs(t, s.Validate(), ErrInvalidSettings)

	s = Default()
	s.Toast.MaxToasts = -1
	assert.ErrorIs(t, s.Validate(), ErrInvalidSettings)

	assert.NoError(t, Default().Validate())
}
