// Package report builds 8-byte HID boot keyboard reports and pushes them to
// the USB endpoint.
package report

import (
	"hillside-go/keyboard/keycode"
	"hillside-go/x/conv"
)

// Len is the size of a boot keyboard report: modifiers, reserved, six keys.
const Len = 8

const slots = 6

type Report [Len]byte

// Add sets k in the report. Modifiers set their bit; other codes take the
// first free slot. A seventh distinct key turns every slot into
// ErrorRollOver.
func (r *Report) Add(k keycode.KeyCode) {
	switch {
	case k == keycode.No:
	case k.IsModifier():
		r[0] |= k.ModifierBit()
	case k <= keycode.ErrorUndefined:
		r.fill(k)
	default:
		for i := 2; i < Len; i++ {
			switch r[i] {
			case byte(k):
				return
			case 0:
				r[i] = byte(k)
				return
			}
		}
		r.fill(keycode.ErrorRollOver)
	}
}

func (r *Report) fill(k keycode.KeyCode) {
	for i := 2; i < Len; i++ {
		r[i] = byte(k)
	}
}

// Build returns the report for a set of active codes.
func Build(codes ...keycode.KeyCode) Report {
	var r Report
	for _, k := range codes {
		r.Add(k)
	}
	return r
}

func (r Report) Modifiers() uint8 { return r[0] }

// Keys returns the non-empty key slots.
func (r Report) Keys() []keycode.KeyCode {
	out := make([]keycode.KeyCode, 0, slots)
	for _, b := range r[2:] {
		if b != 0 {
			out = append(out, keycode.KeyCode(b))
		}
	}
	return out
}

func (r Report) RolledOver() bool { return r[2] == byte(keycode.ErrorRollOver) }

func (r Report) String() string {
	return string(conv.AppendHexBytes(make([]byte, 0, Len*3), r[:]))
}
