// Package link carries key events between the two halves over a byte
// stream. A frame is four bytes: tag ('P' or 'R'), row, col, '\n'.
package link

import (
	"hillside-go/errcode"
	"hillside-go/types"
)

const (
	FrameLen = 4

	TagPress   byte = 'P'
	TagRelease byte = 'R'
	Terminator byte = '\n'
)

// Encode serialises e into a frame.
func Encode(e types.KeyEvent) [FrameLen]byte {
	tag := TagPress
	if e.IsRelease() {
		tag = TagRelease
	}
	return [FrameLen]byte{tag, e.Row, e.Col, Terminator}
}

// Decode parses exactly one frame. Any other byte pattern is InvalidFrame.
func Decode(b []byte) (types.KeyEvent, error) {
	if len(b) != FrameLen || b[3] != Terminator {
		return types.KeyEvent{}, errcode.InvalidFrame
	}
	switch b[0] {
	case TagPress:
		return types.Press(b[1], b[2]), nil
	case TagRelease:
		return types.Release(b[1], b[2]), nil
	default:
		return types.KeyEvent{}, errcode.InvalidFrame
	}
}
