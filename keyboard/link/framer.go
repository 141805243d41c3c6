package link

import "hillside-go/types"

// Framer recovers frames from a byte stream using a 4-byte sliding window.
// Decoding is only attempted when the newest byte is the terminator, so a
// corrupt frame costs at most the bytes up to the next valid one.
type Framer struct {
	window [FrameLen]byte

	Frames uint32 // decoded frames
	Drops  uint32 // terminators that did not complete a frame
}

// Push shifts b into the window and returns a decoded event if the window now
// holds a valid frame.
func (f *Framer) Push(b byte) (types.KeyEvent, bool) {
	copy(f.window[:], f.window[1:])
	f.window[FrameLen-1] = b
	if b != Terminator {
		return types.KeyEvent{}, false
	}
	e, err := Decode(f.window[:])
	if err != nil {
		f.Drops++
		return types.KeyEvent{}, false
	}
	f.Frames++
	return e, true
}

// Feed pushes every byte of p, calling emit for each decoded event.
func (f *Framer) Feed(p []byte, emit func(types.KeyEvent)) {
	for _, b := range p {
		if e, ok := f.Push(b); ok {
			emit(e)
		}
	}
}
