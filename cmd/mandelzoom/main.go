package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"mandelzoom/internal/buildinfo"
	"mandelzoom/internal/config"
	"mandelzoom/internal/explorer"
	"mandelzoom/internal/fractal"
	"mandelzoom/internal/headless"
	"mandelzoom/internal/tui"
	"mandelzoom/internal/window"
)

// Flags holds the command line; set flags override the config file.
type Flags struct {
	Config  string
	Display string
	Width   int
	Height  int
	Scale   int
	Workers int
	Debug   bool
	LogFile string
	Frames  int
	Script  string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := fang.Execute(ctx, newRootCmd(),
		fang.WithVersion(buildinfo.Long()),
		fang.WithCommit(buildinfo.Revision()),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			_, _ = fmt.Fprintln(w, err.Error())
		}),
	)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f Flags

	rootCmd := &cobra.Command{
		Use:   "mandelzoom [flags]",
		Short: "Interactive Mandelbrot set explorer",
		Long: `mandelzoom renders the Mandelbrot set and zooms into the rectangle you
drag with the left mouse button. A right click returns to the full set.`,
		Example: `  # Explore in the terminal
  mandelzoom

  # Open a 800x600 desktop window at double size
  mandelzoom --display window --width 800 --height 600 --scale 2

  # Replay a zoom without a screen and print the resulting view
  mandelzoom --display headless --script "drag 200 150 440 330; drag 100 100 300 250"`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			log, closeLog, err := setupLogger(cfg)
			if err != nil {
				return err
			}
			defer closeLog()
			return run(cmd.Context(), cfg, log, cmd.OutOrStdout())
		},
	}

	fl := rootCmd.Flags()
	fl.StringVarP(&f.Config, "config", "c", "", "Path to config file (default ./"+config.FileName+" if present)")
	fl.StringVar(&f.Display, "display", "", "Display backend: tui, window or headless")
	fl.IntVar(&f.Width, "width", 0, "Pixel width for window and headless displays")
	fl.IntVar(&f.Height, "height", 0, "Pixel height for window and headless displays")
	fl.IntVar(&f.Scale, "scale", 0, "Window scale factor")
	fl.IntVar(&f.Workers, "workers", 0, "Render goroutines (0 = GOMAXPROCS)")
	fl.BoolVarP(&f.Debug, "debug", "d", false, "Enable debug logging")
	fl.StringVar(&f.LogFile, "log-file", "", "Write logs to this file")
	fl.IntVar(&f.Frames, "frames", 0, "Headless frame budget (0 = until the script ends)")
	fl.StringVar(&f.Script, "script", "", "Headless input script, steps separated by ';'")

	return rootCmd
}

func loadConfig(cmd *cobra.Command, f Flags) (config.Config, error) {
	cfg, _, err := config.LoadOptional(f.Config)
	if err != nil {
		return config.Config{}, err
	}
	changed := cmd.Flags().Changed
	if changed("display") {
		cfg.Display = f.Display
	}
	if changed("width") {
		cfg.Window.Width = f.Width
	}
	if changed("height") {
		cfg.Window.Height = f.Height
	}
	if changed("scale") {
		cfg.Window.Scale = f.Scale
	}
	if changed("workers") {
		cfg.Render.Workers = f.Workers
	}
	if f.Debug {
		cfg.Log.Level = "debug"
	}
	if changed("log-file") {
		cfg.Log.File = f.LogFile
	}
	if changed("frames") {
		cfg.Headless.Frames = f.Frames
	}
	if changed("script") {
		cfg.Headless.Script = f.Script
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// setupLogger installs the default slog logger. The terminal display owns
// the screen, so without a log file its records are dropped.
func setupLogger(cfg config.Config) (*slog.Logger, func(), error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	var dest io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case cfg.Log.File != "":
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		dest = f
		closeFn = func() { _ = f.Close() }
	case cfg.Display == config.DisplayTUI:
		dest = io.Discard
	}

	handler := slog.NewTextHandler(dest, &slog.HandlerOptions{
		Level: level,
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, closeFn, nil
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger, out io.Writer) error {
	engine := fractal.NewEngine(cfg.Render.Workers)
	log.Debug("starting", "display", cfg.Display, "build", buildinfo.Short())

	if cfg.Display == config.DisplayTUI {
		m := tui.New(engine, tui.Options{Initial: cfg.Initial, Logger: log})
		_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx)).Run()
		return err
	}

	w, h := cfg.Window.Width, cfg.Window.Height
	s, err := explorer.New(engine, explorer.Options{
		Width:   w,
		Height:  h,
		Initial: cfg.Initial(w, h),
		Logger:  log,
	})
	if err != nil {
		return err
	}

	switch cfg.Display {
	case config.DisplayWindow:
		return window.Run(ctx, s, window.Options{
			Scale:  cfg.Window.Scale,
			Title:  cfg.Window.Title,
			Logger: log,
		})
	case config.DisplayHeadless:
		script, err := headless.ParseScript(cfg.Headless.Script)
		if err != nil {
			return err
		}
		d := &headless.Display{Listener: s, Frames: cfg.Headless.Frames, Script: script, Logger: log}
		if err := s.Run(ctx, d); err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "%s depth=%d frames=%d\n", s.Bounds(), s.Depth(), d.Presented())
		return err
	}
	return fmt.Errorf("unknown display %q", cfg.Display)
}
