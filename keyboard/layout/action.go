package layout

import (
	"hillside-go/keyboard/keycode"
	"hillside-go/types"
)

type ActionKind uint8

const (
	// KindNoOp absorbs the key: nothing is emitted and lower layers are not
	// consulted.
	KindNoOp ActionKind = iota
	// KindTrans falls through to the next active layer down.
	KindTrans
	KindKeyCode
	// KindMultipleKeyCodes holds several codes at once (chords, shortcuts).
	KindMultipleKeyCodes
	// KindLayer activates a layer while the key is held.
	KindLayer
	// KindDefaultLayer replaces the base layer.
	KindDefaultLayer
	KindHoldTap
	KindCustom
)

// Action is what a position does when pressed. Only the fields relevant to
// Kind are set.
type Action struct {
	Kind    ActionKind
	Code    keycode.KeyCode
	Codes   []keycode.KeyCode
	Layer   int
	HoldTap *HoldTapAction
	Custom  types.CustomAction
}

// HoldTapConfig decides what other keys do to a pending hold-tap.
type HoldTapConfig uint8

const (
	// HoldTapDefault resolves only on timeout or on release of the key itself.
	HoldTapDefault HoldTapConfig = iota
	// HoldOnOtherKeyPress resolves to hold as soon as another key is pressed.
	HoldOnOtherKeyPress
	// PermissiveHold resolves to hold when another key is pressed and
	// released while waiting.
	PermissiveHold
)

// HoldTapAction resolves to Hold when the key is held for Timeout ticks (or
// Config says so) and to Tap when released earlier.
type HoldTapAction struct {
	Timeout int
	// A re-press within TapHoldInterval ticks of a tap taps again at once,
	// so the tap key can auto-repeat.
	TapHoldInterval int
	Config          HoldTapConfig
	Hold            Action
	Tap             Action
}

var (
	NoOp  = Action{Kind: KindNoOp}
	Trans = Action{Kind: KindTrans}
)

// K emits one key code.
func K(k keycode.KeyCode) Action { return Action{Kind: KindKeyCode, Code: k} }

// M emits several key codes together.
func M(ks ...keycode.KeyCode) Action { return Action{Kind: KindMultipleKeyCodes, Codes: ks} }

// S is k with left shift held.
func S(k keycode.KeyCode) Action { return M(keycode.LShift, k) }

// L activates layer n while held.
func L(n int) Action { return Action{Kind: KindLayer, Layer: n} }

// D makes layer n the default layer.
func D(n int) Action { return Action{Kind: KindDefaultLayer, Layer: n} }

func HT(ht *HoldTapAction) Action { return Action{Kind: KindHoldTap, HoldTap: ht} }

func Custom(c types.CustomAction) Action { return Action{Kind: KindCustom, Custom: c} }

// PolicyOf maps a configured policy name onto a HoldTapConfig.
func PolicyOf(p types.HoldTapPolicy) HoldTapConfig {
	switch p {
	case types.PolicyHoldOnOtherKeyPress:
		return HoldOnOtherKeyPress
	case types.PolicyPermissiveHold:
		return PermissiveHold
	default:
		return HoldTapDefault
	}
}
