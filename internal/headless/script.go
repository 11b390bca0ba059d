package headless

import (
	"fmt"
	"strconv"
	"strings"

	"mandelzoom/internal/explorer"
)

type Op uint8

const (
	OpWait Op = iota
	OpMove
	OpDown
	OpUp
	OpDrag
	OpReset
	OpKey
)

var opNames = [...]string{
	OpWait:  "wait",
	OpMove:  "move",
	OpDown:  "down",
	OpUp:    "up",
	OpDrag:  "drag",
	OpReset: "reset",
	OpKey:   "key",
}

// arity is the argument count each op takes.
var arity = [...]int{OpWait: 0, OpMove: 2, OpDown: 1, OpUp: 1, OpDrag: 4, OpReset: 0, OpKey: 1}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("Op(%d)", uint8(o))
}

func lookupOp(name string) (Op, bool) {
	for i, n := range opNames {
		if strings.EqualFold(n, name) {
			return Op(i), true
		}
	}
	return 0, false
}

type Button uint8

const (
	Left Button = iota
	Right
	Middle
)

func parseButton(s string) (Button, error) {
	switch strings.ToLower(s) {
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	case "middle":
		return Middle, nil
	}
	return 0, fmt.Errorf("unknown button %q", s)
}

// Step is one scripted input action. Coordinates are screen pixels; X1/Y1
// are only used by OpDrag.
type Step struct {
	Op     Op
	X, Y   float64
	X1, Y1 float64
	Button Button
	Key    explorer.Key
}

func (s Step) String() string {
	switch s.Op {
	case OpMove:
		return fmt.Sprintf("move %g %g", s.X, s.Y)
	case OpDown, OpUp:
		return fmt.Sprintf("%s %s", s.Op, [...]string{"left", "right", "middle"}[s.Button])
	case OpDrag:
		return fmt.Sprintf("drag %g %g %g %g", s.X, s.Y, s.X1, s.Y1)
	case OpKey:
		return "key " + string(s.Key)
	}
	return s.Op.String()
}

// ParseScript parses steps separated by ';' or newlines. Blank steps and
// lines starting with '#' are skipped.
//
//	move 100 80; down left; move 300 240; up left
//	drag 100 80 300 240
//	reset
func ParseScript(src string) ([]Step, error) {
	var steps []Step
	lines := strings.FieldsFunc(src, func(r rune) bool { return r == ';' || r == '\n' })
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		st, err := parseStep(line)
		if err != nil {
			return nil, fmt.Errorf("script step %d %q: %w", i+1, line, err)
		}
		steps = append(steps, st)
	}
	return steps, nil
}

func parseStep(line string) (Step, error) {
	f := strings.Fields(line)
	op, ok := lookupOp(f[0])
	if !ok {
		return Step{}, fmt.Errorf("unknown op %q", f[0])
	}
	args := f[1:]
	if want := arity[op]; len(args) != want {
		return Step{}, fmt.Errorf("%s takes %d arguments, got %d", op, want, len(args))
	}

	st := Step{Op: op}
	switch op {
	case OpMove, OpDrag:
		nums := make([]float64, len(args))
		for i, a := range args {
			v, err := strconv.ParseFloat(a, 64)
			if err != nil {
				return Step{}, fmt.Errorf("bad coordinate %q", a)
			}
			nums[i] = v
		}
		st.X, st.Y = nums[0], nums[1]
		if op == OpDrag {
			st.X1, st.Y1 = nums[2], nums[3]
		}
	case OpDown, OpUp:
		b, err := parseButton(args[0])
		if err != nil {
			return Step{}, err
		}
		st.Button = b
	case OpKey:
		st.Key = explorer.Key(args[0])
	}
	return st, nil
}
