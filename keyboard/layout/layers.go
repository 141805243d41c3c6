package layout

import (
	"hillside-go/errcode"
)

// Layers is an immutable (layer, row, col) -> Action table.
type Layers struct {
	n, rows, cols int
	cells         []Action
}

// NewLayers copies and validates table: every layer must have the same
// rectangular shape, layer references must be in range, and hold-taps must
// be well formed (no nesting, positive timeout).
func NewLayers(table [][][]Action) (*Layers, error) {
	if len(table) == 0 || len(table[0]) == 0 || len(table[0][0]) == 0 {
		return nil, &errcode.E{C: errcode.InvalidLayout, Op: "layout.layers", Msg: "empty table"}
	}
	l := &Layers{n: len(table), rows: len(table[0]), cols: len(table[0][0])}
	if l.rows > 256 || l.cols > 256 {
		return nil, &errcode.E{C: errcode.InvalidLayout, Op: "layout.layers", Msg: "more than 256 rows or columns"}
	}
	l.cells = make([]Action, 0, l.n*l.rows*l.cols)
	for _, layer := range table {
		if len(layer) != l.rows {
			return nil, &errcode.E{C: errcode.InvalidLayout, Op: "layout.layers", Msg: "ragged rows"}
		}
		for _, row := range layer {
			if len(row) != l.cols {
				return nil, &errcode.E{C: errcode.InvalidLayout, Op: "layout.layers", Msg: "ragged columns"}
			}
			for _, a := range row {
				if err := l.check(a, false); err != nil {
					return nil, err
				}
				l.cells = append(l.cells, a)
			}
		}
	}
	return l, nil
}

func (l *Layers) check(a Action, nested bool) error {
	switch a.Kind {
	case KindLayer, KindDefaultLayer:
		if a.Layer < 0 || a.Layer >= l.n {
			return &errcode.E{C: errcode.InvalidLayout, Op: "layout.layers", Msg: "layer reference out of range"}
		}
	case KindHoldTap:
		ht := a.HoldTap
		if nested || ht == nil || ht.Timeout <= 0 {
			return &errcode.E{C: errcode.InvalidLayout, Op: "layout.layers", Msg: "malformed hold-tap"}
		}
		if err := l.check(ht.Hold, true); err != nil {
			return err
		}
		return l.check(ht.Tap, true)
	}
	return nil
}

func (l *Layers) Len() int  { return l.n }
func (l *Layers) Rows() int { return l.rows }
func (l *Layers) Cols() int { return l.cols }

// At returns the binding, or NoOp for any index outside the table.
func (l *Layers) At(layer, row, col int) Action {
	if layer < 0 || layer >= l.n || row < 0 || row >= l.rows || col < 0 || col >= l.cols {
		return NoOp
	}
	return l.cells[(layer*l.rows+row)*l.cols+col]
}
