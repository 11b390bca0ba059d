//go:build cgo

package window

import (
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"mandelzoom/internal/buildinfo"
	"mandelzoom/internal/explorer"
)

var mouseButtons = [...]struct {
	eb ebiten.MouseButton
	b  button
}{
	{ebiten.MouseButtonLeft, buttonLeft},
	{ebiten.MouseButtonRight, buttonRight},
	{ebiten.MouseButtonMiddle, buttonMiddle},
}

// Run opens a window showing the session and blocks until it is closed,
// Escape is pressed, ctx is done or a render fails.
func Run(ctx context.Context, s *explorer.Session, opts Options) error {
	w, h := s.Size()
	log := opts.logger()
	g := &game{
		ctx:     ctx,
		session: s,
		fwd:     forwarder{l: s, log: log},
	}
	ebiten.SetWindowTitle(opts.title())
	ebiten.SetWindowSize(w*opts.scale(), h*opts.scale())
	ebiten.SetTPS(60)
	log.Info("window open", "size", fmt.Sprintf("%dx%d", w, h), "scale", opts.scale(), "build", buildinfo.Short())

	err := ebiten.RunGame(g)
	log.Info("window closed", "frames", g.frames)
	return err
}

type game struct {
	ctx     context.Context
	session *explorer.Session
	fwd     forwarder

	keys []ebiten.Key
	img  *image.RGBA
	tex  *ebiten.Image

	frames int
}

func (g *game) Update() error {
	if err := g.ctx.Err(); err != nil {
		return err
	}
	in := g.poll()
	if in.Close {
		return ebiten.Termination
	}
	g.fwd.forward(in)
	return g.session.Err()
}

func (g *game) poll() tickInput {
	x, y := ebiten.CursorPosition()
	in := tickInput{
		X: float64(x),
		Y: float64(y),
		Held: explorer.Buttons{
			Left:   ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
			Right:  ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),
			Middle: ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle),
		},
	}
	for _, mb := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(mb.eb) {
			in.Pressed = append(in.Pressed, mb.b)
		}
		if inpututil.IsMouseButtonJustReleased(mb.eb) {
			in.Released = append(in.Released, mb.b)
		}
	}

	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		if k == ebiten.KeyEscape {
			in.Close = true
		}
		in.KeysDown = append(in.KeysDown, keyName(k))
	}
	g.keys = inpututil.AppendJustReleasedKeys(g.keys[:0])
	for _, k := range g.keys {
		in.KeysUp = append(in.KeysUp, keyName(k))
	}
	return in
}

func (g *game) Draw(screen *ebiten.Image) {
	frame := g.session.Compose()
	g.img = frame.ToRGBA(g.img)
	if g.tex == nil || g.tex.Bounds() != g.img.Bounds() {
		if g.tex != nil {
			g.tex.Deallocate()
		}
		g.tex = ebiten.NewImage(frame.Width, frame.Height)
	}
	g.tex.WritePixels(g.img.Pix)
	screen.DrawImage(g.tex, nil)
	g.frames++
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.session.Size()
}

func keyName(k ebiten.Key) explorer.Key {
	return explorer.Key(strings.ToLower(k.String()))
}
