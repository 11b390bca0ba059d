//go:build !cgo

package window

import (
	"context"
	"errors"

	"mandelzoom/internal/explorer"
)

// ErrWindowUnavailable is returned by Run in builds without cgo.
var ErrWindowUnavailable = errors.New("window display requires cgo (build with CGO_ENABLED=1)")

func Run(_ context.Context, _ *explorer.Session, _ Options) error {
	return ErrWindowUnavailable
}
