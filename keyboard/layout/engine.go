package layout

import (
	"hillside-go/keyboard/keycode"
	"hillside-go/types"
)

// QueueLen is the number of key events that may be stacked while a hold-tap
// is undecided.
const QueueLen = 16

type CustomEventKind uint8

const (
	NoEvent CustomEventKind = iota
	CustomRelease
	CustomPress
)

// CustomEvent reports a Custom action changing state during a Tick.
type CustomEvent struct {
	Kind   CustomEventKind
	Action types.CustomAction
}

// Pressed returns the action when the event is a press.
func (e CustomEvent) Pressed() (types.CustomAction, bool) {
	return e.Action, e.Kind == CustomPress
}

// merge keeps the stronger of two events: press over release over nothing.
func (e CustomEvent) merge(o CustomEvent) CustomEvent {
	if o.Kind > e.Kind {
		return o
	}
	return e
}

type coord struct{ row, col uint8 }

type stateKind uint8

const (
	stateKey stateKind = iota
	stateLayer
	stateCustom
)

type state struct {
	kind   stateKind
	at     coord
	code   keycode.KeyCode
	layer  int
	custom types.CustomAction
}

type stacked struct {
	ev    types.KeyEvent
	since int
}

type waiting struct {
	at  coord
	age int
	ht  *HoldTapAction
}

type resolution uint8

const (
	undecided resolution = iota
	resolveHold
	resolveTap
)

// Layout is the layer/hold-tap state machine. It is not safe for concurrent
// use; one goroutine feeds it events and ticks.
type Layout struct {
	layers *Layers
	def    int

	states []state
	wait   *waiting

	queue [QueueLen]stacked
	head  int
	n     int

	tapAt    coord
	tapTimer int

	pending CustomEvent

	// Dropped counts events outside the table.
	Dropped uint32
}

func New(layers *Layers) *Layout {
	return &Layout{layers: layers, states: make([]state, 0, 32)}
}

// Event queues a key event. It is applied by later calls to Tick.
func (l *Layout) Event(e types.KeyEvent) {
	if int(e.Row) >= l.layers.Rows() || int(e.Col) >= l.layers.Cols() {
		l.Dropped++
		return
	}
	if l.n == QueueLen {
		oldest := l.pop()
		if l.wait != nil {
			l.pending = l.pending.merge(l.resolve(resolveHold))
		}
		l.pending = l.pending.merge(l.unstack(oldest))
	}
	l.queue[(l.head+l.n)%QueueLen] = stacked{ev: e}
	l.n++
}

// Tick advances the machine by one period.
func (l *Layout) Tick() CustomEvent {
	ev := l.pending
	l.pending = CustomEvent{}

	if l.tapTimer > 0 {
		l.tapTimer--
	}
	for i := 0; i < l.n; i++ {
		l.queue[(l.head+i)%QueueLen].since++
	}

	if l.wait != nil {
		if r := l.waitTick(); r != undecided {
			ev = ev.merge(l.resolve(r))
		}
		return ev
	}
	if l.n > 0 {
		ev = ev.merge(l.unstack(l.pop()))
	}
	return ev
}

func (l *Layout) pop() stacked {
	s := l.queue[l.head]
	l.head = (l.head + 1) % QueueLen
	l.n--
	return s
}

func (l *Layout) waitTick() resolution {
	w := l.wait
	w.age++

	// Only events queued before the key's own release count against it.
	own := l.n
	for i := 0; i < l.n; i++ {
		s := l.queue[(l.head+i)%QueueLen]
		if s.ev.IsRelease() && s.ev.Row == w.at.row && s.ev.Col == w.at.col {
			own = i
			break
		}
	}

	if w.ht.Config == HoldOnOtherKeyPress {
		for i := 0; i < own; i++ {
			if l.queue[(l.head+i)%QueueLen].ev.IsPress() {
				return resolveHold
			}
		}
	}
	if w.ht.Config == PermissiveHold && l.otherTapped(w.at, own) {
		return resolveHold
	}
	if own < l.n {
		// The key was held for age-since ticks when it was released.
		if w.age-l.queue[(l.head+own)%QueueLen].since < w.ht.Timeout {
			return resolveTap
		}
		return resolveHold
	}
	if w.age >= w.ht.Timeout {
		return resolveHold
	}
	return undecided
}

// otherTapped reports whether a position other than self has both a press
// and a later release among the first n queued events.
func (l *Layout) otherTapped(self coord, n int) bool {
	for i := 0; i < n; i++ {
		p := l.queue[(l.head+i)%QueueLen].ev
		if !p.IsPress() || (p.Row == self.row && p.Col == self.col) {
			continue
		}
		for j := i + 1; j < n; j++ {
			r := l.queue[(l.head+j)%QueueLen].ev
			if r.IsRelease() && r.Row == p.Row && r.Col == p.Col {
				return true
			}
		}
	}
	return false
}

func (l *Layout) resolve(r resolution) CustomEvent {
	w := l.wait
	l.wait = nil
	if r == resolveTap {
		l.tapAt, l.tapTimer = w.at, w.ht.TapHoldInterval
		return l.do(w.ht.Tap, w.at, w.age)
	}
	return l.do(w.ht.Hold, w.at, w.age)
}

func (l *Layout) unstack(s stacked) CustomEvent {
	at := coord{s.ev.Row, s.ev.Col}
	if s.ev.IsRelease() {
		return l.release(at)
	}
	return l.do(l.lookup(at), at, s.since)
}

func (l *Layout) release(at coord) CustomEvent {
	var ev CustomEvent
	kept := l.states[:0]
	for _, st := range l.states {
		if st.at != at {
			kept = append(kept, st)
			continue
		}
		if st.kind == stateCustom {
			ev = ev.merge(CustomEvent{Kind: CustomRelease, Action: st.custom})
		}
	}
	l.states = kept
	return ev
}

// lookup resolves the action at a position through the active layer stack.
func (l *Layout) lookup(at coord) Action {
	r, c := int(at.row), int(at.col)
	for i := len(l.states) - 1; i >= 0; i-- {
		if l.states[i].kind != stateLayer {
			continue
		}
		if a := l.layers.At(l.states[i].layer, r, c); a.Kind != KindTrans {
			return a
		}
	}
	if a := l.layers.At(l.def, r, c); a.Kind != KindTrans {
		return a
	}
	return NoOp
}

// do applies an action pressed at a position age ticks ago.
func (l *Layout) do(a Action, at coord, age int) CustomEvent {
	switch a.Kind {
	case KindKeyCode:
		l.states = append(l.states, state{kind: stateKey, at: at, code: a.Code})
	case KindMultipleKeyCodes:
		for _, k := range a.Codes {
			l.states = append(l.states, state{kind: stateKey, at: at, code: k})
		}
	case KindLayer:
		if a.Layer >= 0 && a.Layer < l.layers.Len() {
			l.states = append(l.states, state{kind: stateLayer, at: at, layer: a.Layer})
		}
	case KindDefaultLayer:
		if a.Layer >= 0 && a.Layer < l.layers.Len() {
			l.def = a.Layer
		}
	case KindCustom:
		l.states = append(l.states, state{kind: stateCustom, at: at, custom: a.Custom})
		return CustomEvent{Kind: CustomPress, Action: a.Custom}
	case KindHoldTap:
		if l.tapTimer > 0 && l.tapAt == at {
			l.tapTimer = a.HoldTap.TapHoldInterval
			return l.do(a.HoldTap.Tap, at, age)
		}
		l.wait = &waiting{at: at, age: age, ht: a.HoldTap}
	}
	return CustomEvent{}
}

// KeyCodes calls fn for every active key code in press order.
func (l *Layout) KeyCodes(fn func(keycode.KeyCode)) {
	for _, st := range l.states {
		if st.kind == stateKey {
			fn(st.code)
		}
	}
}

func (l *Layout) AppendKeyCodes(dst []keycode.KeyCode) []keycode.KeyCode {
	for _, st := range l.states {
		if st.kind == stateKey {
			dst = append(dst, st.code)
		}
	}
	return dst
}

// ActiveLayers returns the layer stack, oldest first.
func (l *Layout) ActiveLayers() []int {
	var out []int
	for _, st := range l.states {
		if st.kind == stateLayer {
			out = append(out, st.layer)
		}
	}
	return out
}

// CurrentLayer is the most recently activated layer, or the default layer.
func (l *Layout) CurrentLayer() int {
	for i := len(l.states) - 1; i >= 0; i-- {
		if l.states[i].kind == stateLayer {
			return l.states[i].layer
		}
	}
	return l.def
}

func (l *Layout) DefaultLayer() int { return l.def }

// Waiting reports whether a hold-tap is undecided.
func (l *Layout) Waiting() bool { return l.wait != nil }

// Queued is the number of stacked events not yet applied.
func (l *Layout) Queued() int { return l.n }
