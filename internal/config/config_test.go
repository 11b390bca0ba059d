package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mandelzoom/internal/viewport"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DisplayTUI, cfg.Display)
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 480, cfg.Window.Height)
	assert.Equal(t, "Mandelbrot", cfg.Window.Title)
	assert.Equal(t, viewport.InitialBounds(640, 480), cfg.Initial(640, 480))
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeFile(t, `
display = "headless"

[window]
width = 320

[render]
workers = 4

[log]
level = "debug"

[headless]
frames = 10
script = "drag 10 10 100 80"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, DisplayHeadless, cfg.Display)
	assert.Equal(t, 320, cfg.Window.Width)
	assert.Equal(t, 480, cfg.Window.Height)
	assert.Equal(t, 1, cfg.Window.Scale)
	assert.Equal(t, 4, cfg.Render.Workers)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 10, cfg.Headless.Frames)
	assert.Equal(t, "drag 10 10 100 80", cfg.Headless.Script)
	assert.Equal(t, -2.0, cfg.View.ReMin)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)

	_, err = Load(writeFile(t, "display = \n"))
	require.Error(t, err)

	_, err = Load(writeFile(t, "[window]\nwidht = 100\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "window.widht")
}

func TestLoadOptional(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cfg, used, err := LoadOptional("")
	require.NoError(t, err)
	assert.Empty(t, used)
	assert.Equal(t, Default(), cfg)

	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("display = \"window\"\n"), 0o644))
	cfg, used, err = LoadOptional("")
	require.NoError(t, err)
	assert.Equal(t, FileName, used)
	assert.Equal(t, DisplayWindow, cfg.Display)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"display", func(c *Config) { c.Display = "vt100" }, `unknown backend "vt100"`},
		{"width", func(c *Config) { c.Window.Width = 1 }, "smaller than 2x2"},
		{"scale", func(c *Config) { c.Window.Scale = 0 }, "scale 0"},
		{"re range", func(c *Config) { c.View.ReMax = c.View.ReMin }, "re range"},
		{"workers", func(c *Config) { c.Render.Workers = -1 }, "workers -1"},
		{"level", func(c *Config) { c.Log.Level = "loud" }, `unknown level "loud"`},
		{"frames", func(c *Config) { c.Headless.Frames = -3 }, "frames -3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	cfg := Default()
	cfg.Display = "x"
	cfg.Window.Scale = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "display")
	assert.Contains(t, err.Error(), "scale")
}
