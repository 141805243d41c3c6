// Package miryoku is the Miryoku keymap for a 46-key 12x4 split layout.
package miryoku

import (
	"hillside-go/errcode"
	kc "hillside-go/keyboard/keycode"
	"hillside-go/keyboard/layout"
	"hillside-go/types"
)

const (
	Rows = 4
	Cols = 12
)

// Layer indices.
const (
	Base = iota
	Extra
	Sym
	Num
	Fun
	Nav
	Media
	NumLayers
)

var (
	Cut   = layout.M(kc.LCtrl, kc.X)
	Copy  = layout.M(kc.LCtrl, kc.C)
	Paste = layout.M(kc.LCtrl, kc.V)
	Redo  = layout.M(kc.LCtrl, kc.Y)
	Undo  = layout.M(kc.LCtrl, kc.Z)

	Reset      = layout.Custom(types.ActionReset)
	Bootloader = layout.Custom(types.ActionBootloader)
)

// Layers builds the validated table for cfg's hold-tap settings.
func Layers(cfg types.KeyboardConfig) (*layout.Layers, error) {
	cfg = cfg.Normalize()
	if cfg.Rows != Rows || cfg.LayoutCols != Cols {
		return nil, &errcode.E{C: errcode.InvalidLayout, Op: "miryoku.layers", Msg: "board is not 4x12"}
	}
	return layout.NewLayers(Table(cfg.HoldTimeout, cfg.TapHoldInterval, layout.PolicyOf(cfg.HoldTapPolicy)))
}

// Table returns the keymap with thumb hold-taps using the given timing.
func Table(timeout, interval int, policy layout.HoldTapConfig) [][][]layout.Action {
	hold := func(layer int, tap kc.KeyCode) layout.Action {
		return layout.HT(&layout.HoldTapAction{
			Timeout:         timeout,
			TapHoldInterval: interval,
			Config:          policy,
			Hold:            layout.L(layer),
			Tap:             layout.K(tap),
		})
	}
	k, s := layout.K, layout.S
	t, n := layout.Trans, layout.NoOp

	escFun := hold(Fun, kc.Escape)
	spcNav := hold(Nav, kc.Space)
	tabNum := hold(Num, kc.Tab)
	entSym := hold(Sym, kc.Enter)
	delMed := hold(Media, kc.Delete)

	return [][][]layout.Action{
		Base: {
			{t, k(kc.Q), k(kc.W), k(kc.E), k(kc.R), k(kc.T), k(kc.Y), k(kc.U), k(kc.I), k(kc.O), k(kc.P), t},
			{t, k(kc.A), k(kc.S), k(kc.D), k(kc.F), k(kc.G), k(kc.H), k(kc.J), k(kc.K), k(kc.L), k(kc.Quote), t},
			{t, k(kc.Z), k(kc.X), k(kc.C), k(kc.V), k(kc.B), k(kc.N), k(kc.M), k(kc.Comma), k(kc.Dot), k(kc.Slash), t},
			{n, t, escFun, spcNav, tabNum, k(kc.Lang1), k(kc.CapsLock), entSym, k(kc.BSpace), delMed, t, n},
		},
		// Colemak-DH.
		Extra: {
			{t, k(kc.Q), k(kc.W), k(kc.F), k(kc.P), k(kc.B), k(kc.J), k(kc.L), k(kc.U), k(kc.Y), k(kc.Quote), t},
			{t, k(kc.A), k(kc.R), k(kc.S), k(kc.T), k(kc.G), k(kc.M), k(kc.N), k(kc.E), k(kc.I), k(kc.O), t},
			{t, k(kc.Z), k(kc.X), k(kc.C), k(kc.D), k(kc.V), k(kc.K), k(kc.H), k(kc.Comma), k(kc.Dot), k(kc.Slash), t},
			{n, t, escFun, spcNav, tabNum, t, k(kc.CapsLock), entSym, k(kc.BSpace), delMed, t, n},
		},
		Sym: {
			{t, s(kc.LBracket), t, s(kc.Kb8), s(kc.Kb7), s(kc.RBracket), t, t, t, t, t, t},
			{t, s(kc.SColon), s(kc.Kb6), s(kc.Kb5), s(kc.Kb4), s(kc.Equal), t, k(kc.RShift), k(kc.RCtrl), k(kc.RAlt), k(kc.RGui), t},
			{t, s(kc.Grave), s(kc.Kb3), s(kc.Kb2), s(kc.Kb1), s(kc.Bslash), t, t, t, t, t, t},
			{n, t, s(kc.Kb9), s(kc.Kb0), s(kc.Minus), t, t, t, t, t, t, n},
		},
		Num: {
			{t, t, t, t, t, t, k(kc.LBracket), k(kc.Kb7), k(kc.Kb8), k(kc.Kb9), k(kc.RBracket), t},
			{t, k(kc.LGui), k(kc.LAlt), k(kc.LCtrl), k(kc.LShift), t, k(kc.Equal), k(kc.Kb4), k(kc.Kb5), k(kc.Kb6), k(kc.SColon), t},
			{t, t, t, t, t, t, k(kc.Bslash), k(kc.Kb1), k(kc.Kb2), k(kc.Kb3), k(kc.Grave), t},
			{n, t, t, t, t, t, t, k(kc.Minus), k(kc.Kb0), k(kc.Dot), t, t},
		},
		Fun: {
			{t, t, t, t, t, t, k(kc.PScreen), k(kc.F7), k(kc.F8), k(kc.F9), k(kc.F12), t},
			{t, k(kc.LGui), k(kc.LAlt), k(kc.LCtrl), k(kc.LShift), t, k(kc.ScrollLock), k(kc.F4), k(kc.F5), k(kc.F6), k(kc.F11), t},
			{t, t, t, t, t, t, k(kc.Pause), k(kc.F1), k(kc.F2), k(kc.F3), k(kc.F10), t},
			{n, t, t, t, t, t, t, k(kc.Tab), k(kc.Space), k(kc.Menu), t, n},
		},
		Nav: {
			{t, Bootloader, t, t, t, t, Redo, Paste, Copy, Cut, Undo, t},
			{t, k(kc.LGui), k(kc.LAlt), k(kc.LCtrl), k(kc.LShift), t, k(kc.Left), k(kc.Down), k(kc.Up), k(kc.Right), k(kc.CapsLock), t},
			{t, t, t, t, t, t, k(kc.Home), k(kc.PgDown), k(kc.PgUp), k(kc.End), k(kc.Insert), t},
			{n, t, t, t, t, t, t, t, t, t, t, n},
		},
		Media: {
			{t, Reset, t, t, t, t, t, t, t, t, t, t},
			{t, k(kc.MediaPreviousSong), k(kc.MediaVolDown), k(kc.MediaVolUp), k(kc.MediaNextSong), t, t, k(kc.RShift), k(kc.RCtrl), k(kc.RAlt), k(kc.RGui), t},
			{t, t, t, t, t, t, t, t, t, t, t, t},
			{n, t, k(kc.MediaMute), k(kc.MediaPlayPause), k(kc.MediaStop), t, t, t, t, t, t, n},
		},
	}
}
