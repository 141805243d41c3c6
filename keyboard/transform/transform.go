// Package transform remaps key positions so one layout table serves both
// halves of a split board.
package transform

import "hillside-go/types"

type Kind uint8

const (
	KindIdentity Kind = iota
	KindMirror
)

// Transform is chosen once at boot and never changes. It is a plain value so
// applying it is a switch, not an indirect call.
type Transform struct {
	kind Kind
	cols uint8 // logical layout width
}

func Identity() Transform { return Transform{kind: KindIdentity} }

// Mirror flips columns across a layout that is cols wide.
func Mirror(cols int) Transform {
	if cols < 1 {
		cols = 1
	}
	if cols > 256 {
		cols = 256
	}
	return Transform{kind: KindMirror, cols: uint8(cols - 1)}
}

// Select returns Mirror(cols) when mirror is set, Identity otherwise.
func Select(mirror bool, cols int) Transform {
	if mirror {
		return Mirror(cols)
	}
	return Identity()
}

func (t Transform) Kind() Kind { return t.kind }

// Apply remaps e. Under Mirror, col' = (cols-1) - col; columns at or beyond
// the layout width are passed through unchanged.
func (t Transform) Apply(e types.KeyEvent) types.KeyEvent {
	switch t.kind {
	case KindMirror:
		if e.Col > t.cols {
			return e
		}
		return e.At(e.Row, t.cols-e.Col)
	default:
		return e
	}
}
