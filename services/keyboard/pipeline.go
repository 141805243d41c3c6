package keyboard

import (
	"hillside-go/drivers/matrix"
	"hillside-go/errcode"
	"hillside-go/keyboard/debounce"
	"hillside-go/keyboard/keycode"
	"hillside-go/keyboard/layout"
	"hillside-go/keyboard/link"
	"hillside-go/keyboard/report"
	"hillside-go/keyboard/transform"
	"hillside-go/types"
	"hillside-go/x/shmring"
	"hillside-go/x/timex"
)

// Scanner reads one half's key matrix.
type Scanner interface {
	Scan(dst matrix.Snapshot) error
}

type Watchdog interface {
	Feed()
}

// Hardware is what one half is wired to. LinkTX, LinkRX, Watchdog and
// Overruns may be nil.
type Hardware struct {
	Matrix Scanner
	LinkTX link.ByteWriter
	// LinkRX is filled by the UART receive path.
	LinkRX   *shmring.Ring
	USB      report.Transport
	Watchdog Watchdog
	// SenseHigh is the handedness line, read once at boot.
	SenseHigh bool
	// Overruns reports bytes the receive path lost to a full ring.
	Overruns func() uint32
}

type workKind uint8

const (
	workEvent workKind = iota
	workTick
)

type work struct {
	kind workKind
	ev   types.KeyEvent
}

// Pipeline is one half's scan -> debounce -> transform -> layout -> report
// chain. Every method must be called from the same goroutine.
type Pipeline struct {
	cfg types.KeyboardConfig
	hw  Hardware

	snap   matrix.Snapshot
	deb    *debounce.Debouncer
	xf     transform.Transform
	framer link.Framer
	tx     *link.Sender
	layout *layout.Layout
	asm    *report.Assembler

	queue []work
	head  int
	stats types.Stats

	// OnCustom receives custom actions raised while USB is configured.
	OnCustom func(types.CustomSignal)
}

func NewPipeline(cfg types.KeyboardConfig, hw Hardware, layers *layout.Layers) (*Pipeline, error) {
	cfg = cfg.Normalize()
	if hw.Matrix == nil || hw.USB == nil || layers == nil {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "keyboard.pipeline", Msg: "matrix, usb and layers are required"}
	}
	if layers.Rows() != cfg.Rows || layers.Cols() != cfg.LayoutCols {
		return nil, &errcode.E{C: errcode.InvalidLayout, Op: "keyboard.pipeline", Msg: "keymap does not match board"}
	}
	p := &Pipeline{
		cfg:    cfg,
		hw:     hw,
		snap:   matrix.NewSnapshot(cfg.Rows, cfg.Cols),
		deb:    debounce.New(cfg.Rows, cfg.Cols, cfg.DebounceScans),
		xf:     transform.Select(cfg.MirrorWhen.Mirrored(hw.SenseHigh), cfg.LayoutCols),
		layout: layout.New(layers),
		asm:    report.NewAssembler(hw.USB, cfg.SpinLimit),
		queue:  make([]work, 0, 32),
	}
	if hw.LinkTX != nil {
		p.tx = link.NewSender(hw.LinkTX)
	}
	return p, nil
}

func (p *Pipeline) Config() types.KeyboardConfig { return p.cfg }

// Mirrored reports whether local columns are mirrored into the layout.
func (p *Pipeline) Mirrored() bool { return p.xf.Kind() == transform.KindMirror }

// ScanTick runs one scan period: feed the watchdog, scan, debounce, forward
// new local events and queue them with a layout tick. A failed scan skips
// the local events but still ticks the layout.
func (p *Pipeline) ScanTick() {
	if p.hw.Watchdog != nil {
		p.hw.Watchdog.Feed()
	}
	p.stats.Scans++
	if err := p.hw.Matrix.Scan(p.snap); err != nil {
		p.stats.ScanErrors++
		if p.stats.ScanErrors == 1 {
			println("[kb] scan failed:", err.Error())
		}
	} else {
		p.deb.Events(p.snap, p.local)
	}
	p.push(work{kind: workTick})
}

func (p *Pipeline) local(e types.KeyEvent) {
	e = p.xf.Apply(e)
	p.stats.Events++
	if p.tx != nil {
		if err := p.tx.Send(e); err != nil {
			println("[kb] link send:", err.Error())
		} else {
			p.stats.FramesTx++
		}
	}
	p.push(work{kind: workEvent, ev: e})
}

// DrainRX frames every byte waiting in the receive ring and queues the
// decoded events. It returns the number of bytes consumed.
func (p *Pipeline) DrainRX() int {
	if p.hw.LinkRX == nil {
		return 0
	}
	n := 0
	for {
		b, ok := p.hw.LinkRX.TryReadByte()
		if !ok {
			break
		}
		n++
		if e, ok := p.framer.Push(b); ok {
			p.push(work{kind: workEvent, ev: e})
		}
	}
	p.stats.FramesRx = p.framer.Frames
	p.stats.FramesDropped = p.framer.Drops
	return n
}

func (p *Pipeline) push(w work) {
	if p.head == len(p.queue) {
		p.queue, p.head = p.queue[:0], 0
	}
	p.queue = append(p.queue, w)
}

// Pending is the number of queued layout work items.
func (p *Pipeline) Pending() int { return len(p.queue) - p.head }

// Step runs one queued work item and reports whether there was one.
func (p *Pipeline) Step() bool {
	if p.head == len(p.queue) {
		return false
	}
	w := p.queue[p.head]
	p.head++
	switch w.kind {
	case workEvent:
		p.layout.Event(w.ev)
	case workTick:
		p.tick()
	}
	return true
}

// Flush runs every queued work item.
func (p *Pipeline) Flush() {
	for p.Step() {
	}
}

func (p *Pipeline) tick() {
	ce := p.layout.Tick()
	configured := p.hw.USB.Configured()
	if ce.Kind != layout.NoEvent && configured {
		sig := types.CustomSignal{Action: ce.Action, Pressed: ce.Kind == layout.CustomPress, TSms: timex.NowMs()}
		if sig.Pressed {
			p.stats.Customs++
		}
		if p.OnCustom != nil {
			p.OnCustom(sig)
		}
	}

	var r report.Report
	p.layout.KeyCodes(r.Add)
	sent, err := p.asm.Update(r)
	switch {
	case err != nil:
		p.stats.ReportSkips++
		println("[kb] report:", err.Error())
	case sent:
		p.stats.Reports++
	case !configured:
		p.stats.ReportSkips++
	}
}

// Stats returns the counters stamped with the current time.
func (p *Pipeline) Stats() types.Stats {
	s := p.stats
	if p.hw.Overruns != nil {
		s.RxOverruns = p.hw.Overruns()
	}
	s.TSms = timex.NowMs()
	return s
}

// State is a point-in-time view of the layout, served on request.
type State struct {
	Layer      int               `json:"layer"`
	Default    int               `json:"default"`
	Active     []int             `json:"active"`
	Keys       []keycode.KeyCode `json:"keys"`
	Report     report.Report     `json:"report"`
	Configured bool              `json:"configured"`
	Mirrored   bool              `json:"mirrored"`
}

func (p *Pipeline) State() State {
	var r report.Report
	p.layout.KeyCodes(r.Add)
	return State{
		Layer:      p.layout.CurrentLayer(),
		Default:    p.layout.DefaultLayer(),
		Active:     p.layout.ActiveLayers(),
		Keys:       p.layout.AppendKeyCodes(nil),
		Report:     r,
		Configured: p.hw.USB.Configured(),
		Mirrored:   p.Mirrored(),
	}
}
