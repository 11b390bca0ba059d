// Package config loads mandelzoom.toml.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"mandelzoom/internal/fractal"
	"mandelzoom/internal/viewport"
)

// FileName is the config file looked up in the working directory when no
// path is given.
const FileName = "mandelzoom.toml"

const (
	DisplayTUI      = "tui"
	DisplayWindow   = "window"
	DisplayHeadless = "headless"
)

// Config is the full set of settings. Zero-valued fields in a file keep the
// defaults.
type Config struct {
	// Display selects the backend: "tui", "window" or "headless".
	Display  string         `toml:"display"`
	Window   WindowConfig   `toml:"window"`
	View     ViewConfig     `toml:"view"`
	Render   RenderConfig   `toml:"render"`
	Log      LogConfig      `toml:"log"`
	Headless HeadlessConfig `toml:"headless"`
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Scale  int    `toml:"scale"`
	Title  string `toml:"title"`
}

// ViewConfig is the reset view. ImMax is derived from the screen aspect.
type ViewConfig struct {
	ReMin float64 `toml:"re_min"`
	ReMax float64 `toml:"re_max"`
	ImMin float64 `toml:"im_min"`
}

type RenderConfig struct {
	// Workers caps render goroutines; 0 means GOMAXPROCS.
	Workers int `toml:"workers"`
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file,omitempty"`
}

type HeadlessConfig struct {
	Frames int    `toml:"frames"`
	Script string `toml:"script,omitempty"`
}

func Default() Config {
	return Config{
		Display: DisplayTUI,
		Window: WindowConfig{
			Width:  640,
			Height: 480,
			Scale:  1,
			Title:  "Mandelbrot",
		},
		View: ViewConfig{
			ReMin: viewport.ReMinInitial,
			ReMax: viewport.ReMaxInitial,
			ImMin: viewport.ImMinInitial,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load decodes the file at path over Default. Unknown keys are an error so
// that typos do not go unnoticed.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("parsing %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// LoadOptional behaves like Load when path is set. With an empty path it
// reads FileName if present and falls back to Default otherwise.
func LoadOptional(path string) (Config, string, error) {
	if path != "" {
		cfg, err := Load(path)
		return cfg, path, err
	}
	if _, err := os.Stat(FileName); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), "", nil
		}
		return Config{}, "", err
	}
	cfg, err := Load(FileName)
	return cfg, FileName, err
}

// Validate checks ranges and names.
func (c Config) Validate() error {
	var errs []error
	switch c.Display {
	case DisplayTUI, DisplayWindow, DisplayHeadless:
	default:
		errs = append(errs, fmt.Errorf("display: unknown backend %q", c.Display))
	}
	if c.Window.Width < 2 || c.Window.Height < 2 {
		errs = append(errs, fmt.Errorf("window: size %dx%d is smaller than 2x2", c.Window.Width, c.Window.Height))
	}
	if c.Window.Scale < 1 {
		errs = append(errs, fmt.Errorf("window: scale %d must be at least 1", c.Window.Scale))
	}
	if !finite(c.View.ReMin, c.View.ReMax, c.View.ImMin) || c.View.ReMax <= c.View.ReMin {
		errs = append(errs, fmt.Errorf("view: re range [%g, %g] is empty", c.View.ReMin, c.View.ReMax))
	}
	if c.Render.Workers < 0 {
		errs = append(errs, fmt.Errorf("render: workers %d is negative", c.Render.Workers))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log: unknown level %q", c.Log.Level))
	}
	if c.Headless.Frames < 0 {
		errs = append(errs, fmt.Errorf("headless: frames %d is negative", c.Headless.Frames))
	}
	return errors.Join(errs...)
}

// Initial returns the reset bounds for a width x height screen.
func (c Config) Initial(width, height int) fractal.PlaneBounds {
	return viewport.InitialBoundsFrom(c.View.ReMin, c.View.ReMax, c.View.ImMin, width, height)
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
