package keyboard

import (
	"errors"
	"sync"
	"testing"

	"hillside-go/drivers/matrix"
	"hillside-go/errcode"
	"hillside-go/keyboard/keycode"
	"hillside-go/keyboard/layout"
	"hillside-go/keyboard/link"
	"hillside-go/keyboard/report"
	"hillside-go/keymaps/miryoku"
	"hillside-go/types"
	"hillside-go/x/shmring"
)

// -----------------------------------------------------------------------------
// fakes
// -----------------------------------------------------------------------------

type fakeMatrix struct {
	mu      sync.Mutex
	pressed map[[2]int]bool
	err     error
}

func newFakeMatrix() *fakeMatrix { return &fakeMatrix{pressed: map[[2]int]bool{}} }

func (m *fakeMatrix) set(row, col int, down bool) {
	m.mu.Lock()
	m.pressed[[2]int{row, col}] = down
	m.mu.Unlock()
}

func (m *fakeMatrix) Scan(dst matrix.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for r := 0; r < dst.Rows(); r++ {
		for c := 0; c < dst.Cols(); c++ {
			dst.Set(r, c, m.pressed[[2]int{r, c}])
		}
	}
	return nil
}

type fakeUSB struct {
	mu         sync.Mutex
	configured bool
	reports    []report.Report
}

func (u *fakeUSB) Configured() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.configured
}

func (u *fakeUSB) Write(p []byte) (int, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	var r report.Report
	copy(r[:], p)
	u.reports = append(u.reports, r)
	return len(p), nil
}

func (u *fakeUSB) last() (report.Report, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if len(u.reports) == 0 {
		return report.Report{}, false
	}
	return u.reports[len(u.reports)-1], true
}

// wire is one direction of the inter-half UART: it records what was sent
// and lands it in the peer's receive ring.
type wire struct {
	rx   *shmring.Ring
	sent []byte
}

func (w *wire) Write(p []byte) (int, error) {
	w.sent = append(w.sent, p...)
	return w.rx.TryWriteFrom(p), nil
}

type countingWatchdog struct{ n int }

func (w *countingWatchdog) Feed() { w.n++ }

func scanN(p *Pipeline, n int) {
	for i := 0; i < n; i++ {
		p.ScanTick()
		p.Flush()
	}
}

// -----------------------------------------------------------------------------
// tests
// -----------------------------------------------------------------------------

func TestSplitPressReachesHostReport(t *testing.T) {
	cfg := types.DefaultKeyboardConfig()
	layers, err := miryoku.Layers(cfg)
	if err != nil {
		t.Fatal(err)
	}

	toHost := &wire{rx: shmring.New(64)}
	toPeer := &wire{rx: shmring.New(64)}

	hostUSB := &fakeUSB{configured: true}
	host, err := NewPipeline(cfg, Hardware{
		Matrix: newFakeMatrix(), LinkTX: toPeer, LinkRX: toHost.rx, USB: hostUSB,
	}, layers)
	if err != nil {
		t.Fatal(err)
	}

	peerMatrix := newFakeMatrix()
	peerUSB := &fakeUSB{}
	peer, err := NewPipeline(cfg, Hardware{
		Matrix: peerMatrix, LinkTX: toHost, LinkRX: toPeer.rx, USB: peerUSB, SenseHigh: true,
	}, layers)
	if err != nil {
		t.Fatal(err)
	}
	if host.Mirrored() || !peer.Mirrored() {
		t.Fatalf("mirrored: host=%v peer=%v", host.Mirrored(), peer.Mirrored())
	}

	peerMatrix.set(1, 2, true)
	scanN(peer, cfg.DebounceScans)

	if want := []byte{'P', 1, 9, '\n'}; string(toHost.sent) != string(want) {
		t.Fatalf("wire = %q, want %q", toHost.sent, want)
	}
	if len(peerUSB.reports) != 0 {
		t.Fatal("unconfigured half wrote a report")
	}

	if n := host.DrainRX(); n != link.FrameLen {
		t.Fatalf("host drained %d bytes", n)
	}
	scanN(host, 1)

	got, ok := hostUSB.last()
	if !ok || got != report.Build(keycode.L) {
		t.Fatalf("host report = %v, want L", got)
	}
	if st := host.Stats(); st.FramesRx != 1 || st.Reports != 1 {
		t.Fatalf("host stats = %+v", st)
	}

	// The peer applies its own events too.
	if keys := peer.State().Keys; len(keys) != 1 || keys[0] != keycode.L {
		t.Fatalf("peer keys = %v", keys)
	}

	peerMatrix.set(1, 2, false)
	scanN(peer, cfg.DebounceScans)
	host.DrainRX()
	scanN(host, 1)
	if got, _ := hostUSB.last(); got != (report.Report{}) {
		t.Fatalf("report after release = %v", got)
	}
}

func TestCorruptLinkBytesAreDropped(t *testing.T) {
	cfg := types.DefaultKeyboardConfig()
	layers, _ := miryoku.Layers(cfg)
	rx := shmring.New(32)
	p, err := NewPipeline(cfg, Hardware{Matrix: newFakeMatrix(), LinkRX: rx, USB: &fakeUSB{configured: true}}, layers)
	if err != nil {
		t.Fatal(err)
	}
	rx.TryWriteFrom([]byte{'X', 1, 2, '\n', 'P', 1, 9, '\n'})
	p.DrainRX()
	if p.Pending() != 1 {
		t.Fatalf("pending = %d, want 1", p.Pending())
	}
	if st := p.Stats(); st.FramesDropped != 1 || st.FramesRx != 1 {
		t.Fatalf("stats = %+v", st)
	}
}

func smallConfig() types.KeyboardConfig {
	cfg := types.DefaultKeyboardConfig()
	cfg.Board = "test"
	cfg.Rows, cfg.Cols, cfg.LayoutCols = 1, 2, 2
	cfg.DebounceScans = 1
	return cfg
}

func smallLayers(t *testing.T) *layout.Layers {
	t.Helper()
	l, err := layout.NewLayers([][][]layout.Action{{{layout.Custom(types.ActionReset), layout.K(keycode.A)}}})
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func TestCustomOnlyWhenConfigured(t *testing.T) {
	for _, configured := range []bool{false, true} {
		m := newFakeMatrix()
		p, err := NewPipeline(smallConfig(), Hardware{Matrix: m, USB: &fakeUSB{configured: configured}}, smallLayers(t))
		if err != nil {
			t.Fatal(err)
		}
		var got []types.CustomSignal
		p.OnCustom = func(s types.CustomSignal) { got = append(got, s) }

		m.set(0, 0, true)
		scanN(p, 2)
		m.set(0, 0, false)
		scanN(p, 2)

		if !configured {
			if len(got) != 0 {
				t.Fatalf("unconfigured half raised %v", got)
			}
			continue
		}
		if len(got) != 2 || !got[0].Pressed || got[0].Action != types.ActionReset || got[1].Pressed {
			t.Fatalf("signals = %+v", got)
		}
		if p.Stats().Customs != 1 {
			t.Fatalf("customs = %d", p.Stats().Customs)
		}
	}
}

func TestScanErrorStillTicks(t *testing.T) {
	m := newFakeMatrix()
	m.err = errcode.Wrap(errcode.MatrixRead, "test", errors.New("expander nak"))
	wd := &countingWatchdog{}
	p, err := NewPipeline(smallConfig(), Hardware{Matrix: m, USB: &fakeUSB{}, Watchdog: wd}, smallLayers(t))
	if err != nil {
		t.Fatal(err)
	}
	scanN(p, 3)
	st := p.Stats()
	if st.Scans != 3 || st.ScanErrors != 3 || st.ReportSkips != 3 || wd.n != 3 {
		t.Fatalf("stats = %+v fed = %d", st, wd.n)
	}
}

func TestPipelineRejectsMismatchedKeymap(t *testing.T) {
	cfg := types.DefaultKeyboardConfig()
	_, err := NewPipeline(cfg, Hardware{Matrix: newFakeMatrix(), USB: &fakeUSB{}}, smallLayers(t))
	if errcode.Of(err) != errcode.InvalidLayout {
		t.Fatalf("err = %v", err)
	}
	_, err = NewPipeline(cfg, Hardware{USB: &fakeUSB{}}, smallLayers(t))
	if errcode.Of(err) != errcode.InvalidParams {
		t.Fatalf("err = %v", err)
	}
}
