// Package keycode defines USB HID keyboard usage IDs (usage page 0x07).
//
// Values above RGui follow the media extension used by keyberon-style
// firmwares, carried in the boot report like ordinary keys.
package keycode

type KeyCode uint8

const (
	No             KeyCode = 0x00
	ErrorRollOver  KeyCode = 0x01
	PostFail       KeyCode = 0x02
	ErrorUndefined KeyCode = 0x03
)

const (
	A KeyCode = iota + 0x04
	B
	C
	D
	E
	F
	G
	H
	I
	J
	K
	L
	M
	N
	O
	P
	Q
	R
	S
	T
	U
	V
	W
	X
	Y
	Z
	Kb1
	Kb2
	Kb3
	Kb4
	Kb5
	Kb6
	Kb7
	Kb8
	Kb9
	Kb0
	Enter
	Escape
	BSpace
	Tab
	Space
	Minus
	Equal
	LBracket
	RBracket
	Bslash
	NonUsHash
	SColon
	Quote
	Grave
	Comma
	Dot
	Slash
	CapsLock
	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12
	PScreen
	ScrollLock
	Pause
	Insert
	Home
	PgUp
	Delete
	End
	PgDown
	Right
	Left
	Down
	Up
)

const (
	Application KeyCode = 0x65
	Menu        KeyCode = 0x76
	Lang1       KeyCode = 0x90
	Lang2       KeyCode = 0x91
)

// Modifiers occupy 0xE0..0xE7 and map to bits 0..7 of the report's
// modifier byte.
const (
	LCtrl KeyCode = iota + 0xE0
	LShift
	LAlt
	LGui
	RCtrl
	RShift
	RAlt
	RGui
)

const (
	MediaPlayPause KeyCode = iota + 0xE8
	MediaStopCD
	MediaPreviousSong
	MediaNextSong
	MediaEjectCD
	MediaVolUp
	MediaVolDown
	MediaMute
	MediaWWW
	MediaBack
	MediaForward
	MediaStop
)

// IsModifier reports whether k is one of the eight modifier usages.
func (k KeyCode) IsModifier() bool { return k >= LCtrl && k <= RGui }

// ModifierBit returns the modifier-byte mask for k, or 0 if k is not a
// modifier.
func (k KeyCode) ModifierBit() uint8 {
	if !k.IsModifier() {
		return 0
	}
	return 1 << (k - LCtrl)
}
