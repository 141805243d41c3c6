package keycode

import "hillside-go/x/conv"

var names = map[KeyCode]string{
	No: "No", ErrorRollOver: "ErrorRollOver",
	A: "A", B: "B", C: "C", D: "D", E: "E", F: "F", G: "G", H: "H", I: "I",
	J: "J", K: "K", L: "L", M: "M", N: "N", O: "O", P: "P", Q: "Q", R: "R",
	S: "S", T: "T", U: "U", V: "V", W: "W", X: "X", Y: "Y", Z: "Z",
	Kb1: "1", Kb2: "2", Kb3: "3", Kb4: "4", Kb5: "5",
	Kb6: "6", Kb7: "7", Kb8: "8", Kb9: "9", Kb0: "0",
	Enter: "Enter", Escape: "Escape", BSpace: "BSpace", Tab: "Tab", Space: "Space",
	Minus: "Minus", Equal: "Equal", LBracket: "LBracket", RBracket: "RBracket",
	Bslash: "Bslash", NonUsHash: "NonUsHash", SColon: "SColon", Quote: "Quote",
	Grave: "Grave", Comma: "Comma", Dot: "Dot", Slash: "Slash", CapsLock: "CapsLock",
	F1: "F1", F2: "F2", F3: "F3", F4: "F4", F5: "F5", F6: "F6",
	F7: "F7", F8: "F8", F9: "F9", F10: "F10", F11: "F11", F12: "F12",
	PScreen: "PScreen", ScrollLock: "ScrollLock", Pause: "Pause", Insert: "Insert",
	Home: "Home", PgUp: "PgUp", Delete: "Delete", End: "End", PgDown: "PgDown",
	Right: "Right", Left: "Left", Down: "Down", Up: "Up",
	Application: "Application", Menu: "Menu", Lang1: "Lang1", Lang2: "Lang2",
	LCtrl: "LCtrl", LShift: "LShift", LAlt: "LAlt", LGui: "LGui",
	RCtrl: "RCtrl", RShift: "RShift", RAlt: "RAlt", RGui: "RGui",
	MediaPlayPause: "MediaPlayPause", MediaStopCD: "MediaStopCD",
	MediaPreviousSong: "MediaPreviousSong", MediaNextSong: "MediaNextSong",
	MediaEjectCD: "MediaEjectCD", MediaVolUp: "MediaVolUp", MediaVolDown: "MediaVolDown",
	MediaMute: "MediaMute", MediaWWW: "MediaWWW", MediaBack: "MediaBack",
	MediaForward: "MediaForward", MediaStop: "MediaStop",
}

func (k KeyCode) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return string(conv.AppendHex8([]byte("0x"), uint8(k)))
}

// Lookup returns the key code with the given name.
func Lookup(name string) (KeyCode, bool) {
	for k, s := range names {
		if s == name {
			return k, true
		}
	}
	return No, false
}
