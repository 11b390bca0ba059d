// Package window shows the explorer in a desktop window.
package window

import "log/slog"

type Options struct {
	// Scale multiplies the window size; the pixel grid keeps the session size.
	Scale  int
	Title  string
	Logger *slog.Logger
}

func (o Options) scale() int { return max(o.Scale, 1) }

func (o Options) title() string {
	if o.Title == "" {
		return "Mandelbrot"
	}
	return o.Title
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}
