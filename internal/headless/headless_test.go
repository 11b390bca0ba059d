package headless

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mandelzoom/internal/explorer"
	"mandelzoom/internal/fractal"
	"mandelzoom/internal/selection"
	"mandelzoom/internal/viewport"
)

func TestParseScript(t *testing.T) {
	steps, err := ParseScript("move 10 20; DOWN left\nmove 30.5 40\n\n# comment\nup left; drag 1 2 3 4;reset;key r;wait")
	require.NoError(t, err)
	require.Len(t, steps, 8)

	assert.Equal(t, Step{Op: OpMove, X: 10, Y: 20}, steps[0])
	assert.Equal(t, Step{Op: OpDown, Button: Left}, steps[1])
	assert.Equal(t, Step{Op: OpMove, X: 30.5, Y: 40}, steps[2])
	assert.Equal(t, Step{Op: OpUp, Button: Left}, steps[3])
	assert.Equal(t, Step{Op: OpDrag, X: 1, Y: 2, X1: 3, Y1: 4}, steps[4])
	assert.Equal(t, OpReset, steps[5].Op)
	assert.Equal(t, Step{Op: OpKey, Key: "r"}, steps[6])
	assert.Equal(t, OpWait, steps[7].Op)

	assert.Equal(t, "drag 1 2 3 4", steps[4].String())
	assert.Equal(t, "down left", steps[1].String())

	empty, err := ParseScript("  ;\n ")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestParseScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unknown op", "jump 1 2", `unknown op "jump"`},
		{"arity", "move 1", "move takes 2 arguments, got 1"},
		{"extra args", "reset now", "reset takes 0 arguments, got 1"},
		{"bad number", "drag 1 2 x 4", `bad coordinate "x"`},
		{"bad button", "down thumb", `unknown button "thumb"`},
		{"step index", "wait; wait; up", "script step 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScript(tt.src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func newSession(t *testing.T) *explorer.Session {
	t.Helper()
	s, err := explorer.New(fractal.NewEngine(0), explorer.Options{
		Width:  48,
		Height: 36,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	return s
}

func TestRunReplaysScript(t *testing.T) {
	s := newSession(t)
	start := s.Bounds()
	script, err := ParseScript("move 4 4; down left; move 40 30; up left")
	require.NoError(t, err)

	d := &Display{Listener: s, Script: script}
	require.NoError(t, s.Run(context.Background(), d))

	assert.Equal(t, 5, d.Presented())
	assert.Zero(t, d.Remaining())
	assert.Equal(t, 1, s.Depth())
	assert.Equal(t, viewport.ZoomBounds(start, 4, 4, 40, 30, 48, 36), s.Bounds())
	require.NotNil(t, d.Last())
	assert.Equal(t, s.Frame().Pix, d.Last().Pix)
}

func TestRunShowsLiveSelection(t *testing.T) {
	s := newSession(t)
	script, err := ParseScript("move 4 4; down left; move 40 30")
	require.NoError(t, err)

	d := &Display{Listener: s, Script: script}
	require.NoError(t, s.Run(context.Background(), d))
	assert.True(t, s.Selecting())
	assert.Equal(t, selection.OutlineColor, d.Last().At(4, 4))
	assert.Equal(t, selection.OutlineColor, d.Last().At(40, 30))
}

func TestDragAndResetSteps(t *testing.T) {
	s := newSession(t)
	script, err := ParseScript("drag 40 30 4 4; drag 2 2 20 20; reset")
	require.NoError(t, err)

	d := &Display{Listener: s, Script: script, Frames: 2}
	require.NoError(t, s.Run(context.Background(), d))
	assert.Equal(t, 2, d.Presented())
	assert.Equal(t, 2, s.Depth())
	assert.Equal(t, 1, d.Remaining())

	// one more frame to apply the reset
	d.Frames = 3
	require.NoError(t, s.Run(context.Background(), d))
	assert.Equal(t, s.Initial(), s.Bounds())
}

func TestFrameBudgetStopsEarly(t *testing.T) {
	s := newSession(t)
	script, err := ParseScript("wait; wait; wait; wait")
	require.NoError(t, err)

	d := &Display{Listener: s, Script: script, Frames: 2}
	require.NoError(t, s.Run(context.Background(), d))
	assert.Equal(t, 2, d.Presented())
	assert.Equal(t, 2, d.Remaining())
}

func TestKeyStepIsHarmless(t *testing.T) {
	s := newSession(t)
	before := s.Bounds()
	d := &Display{Listener: s, Script: []Step{{Op: OpKey, Key: "escape"}}}
	require.NoError(t, s.Run(context.Background(), d))
	assert.Equal(t, before, s.Bounds())
	assert.Equal(t, 2, d.Presented())
}

var _ explorer.Listener = (*recorder)(nil)

type recorder struct{ events []string }

func (r *recorder) OnMouseMove(x, y float64) { r.events = append(r.events, "move") }
func (r *recorder) OnMouseButtonDown(m explorer.Mouse) {
	r.events = append(r.events, "down", buttons(m.Buttons))
}
func (r *recorder) OnMouseButtonUp(m explorer.Mouse) {
	r.events = append(r.events, "up", buttons(m.Buttons))
}
func (r *recorder) OnKeyDown(k explorer.Key) { r.events = append(r.events, "keydown:"+string(k)) }
func (r *recorder) OnKeyUp(k explorer.Key)   { r.events = append(r.events, "keyup:"+string(k)) }

func buttons(b explorer.Buttons) string {
	s := ""
	if b.Left {
		s += "L"
	}
	if b.Right {
		s += "R"
	}
	if b.Middle {
		s += "M"
	}
	return "[" + s + "]"
}

func TestHeldButtonsAreTracked(t *testing.T) {
	rec := &recorder{}
	script, err := ParseScript("down left; down right; up left; up right; down middle; key q")
	require.NoError(t, err)
	d := &Display{Listener: rec, Script: script}
	frame := fractal.NewPixelGrid(2, 2)
	for d.Open() {
		require.NoError(t, d.Update(frame))
	}
	assert.Equal(t, []string{
		"down", "[L]",
		"down", "[LR]",
		"up", "[R]",
		"up", "[]",
		"down", "[M]",
		"keydown:q", "keyup:q",
	}, rec.events)
}
