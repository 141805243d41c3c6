package types

import "hillside-go/x/conv"

// ------------------------
// Key events
// ------------------------

type EventKind uint8

const (
	KindPress EventKind = iota
	KindRelease
)

func (k EventKind) String() string {
	if k == KindRelease {
		return "release"
	}
	return "press"
}

// KeyEvent is a debounced press or release at a matrix position.
// Coordinates are bytes so an event always fits a serial frame.
type KeyEvent struct {
	Kind EventKind
	Row  uint8
	Col  uint8
}

func Press(row, col uint8) KeyEvent   { return KeyEvent{Kind: KindPress, Row: row, Col: col} }
func Release(row, col uint8) KeyEvent { return KeyEvent{Kind: KindRelease, Row: row, Col: col} }

func (e KeyEvent) IsPress() bool   { return e.Kind == KindPress }
func (e KeyEvent) IsRelease() bool { return e.Kind == KindRelease }

// Coord returns (row, col).
func (e KeyEvent) Coord() (uint8, uint8) { return e.Row, e.Col }

// At returns the same kind of event at another position.
func (e KeyEvent) At(row, col uint8) KeyEvent {
	e.Row, e.Col = row, col
	return e
}

func (e KeyEvent) String() string {
	return e.Kind.String() + "(" + conv.U8(e.Row) + "," + conv.U8(e.Col) + ")"
}
