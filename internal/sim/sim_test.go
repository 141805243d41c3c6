package sim

import (
	"strings"
	"testing"

	"hillside-go/errcode"
	"hillside-go/keyboard/keycode"
	"hillside-go/keyboard/report"
	"hillside-go/keymaps/miryoku"
	"hillside-go/types"
)

type recorded struct {
	side Side
	r    report.Report
}

func newSim(t *testing.T) (*Sim, *[]recorded, *[]types.CustomSignal) {
	t.Helper()
	s, err := New(DefaultOptions(), miryoku.Layers)
	if err != nil {
		t.Fatal(err)
	}
	var reports []recorded
	var customs []types.CustomSignal
	s.OnReport = func(_ int, side Side, r report.Report) { reports = append(reports, recorded{side, r}) }
	s.OnCustom = func(_ int, _ Side, sig types.CustomSignal) { customs = append(customs, sig) }
	return s, &reports, &customs
}

func TestMirroredHalfReportsThroughHost(t *testing.T) {
	s, reports, _ := newSim(t)
	script := `
# right half home row, mirrored onto layout column 9
press R 1 2
wait 6
expect L
release R 1 2
wait 6
expect
`
	if err := s.RunScript(strings.NewReader(script)); err != nil {
		t.Fatal(err)
	}
	for _, rec := range *reports {
		if rec.side != Left {
			t.Fatalf("report from %v, only the host half is configured", rec.side)
		}
	}
	// The host announces an empty report on its first tick.
	if got := *reports; len(got) != 3 || got[0].r != (report.Report{}) || got[1].r != report.Build(keycode.L) {
		t.Fatalf("reports = %v", got)
	}
	if !s.Half(Right).Pipeline.Mirrored() || s.Half(Left).Pipeline.Mirrored() {
		t.Fatal("wrong half mirrored")
	}
}

func TestThumbTapSendsSpace(t *testing.T) {
	s, reports, _ := newSim(t)
	if err := s.RunScript(strings.NewReader("tap L 3 3\nwait 8\n")); err != nil {
		t.Fatal(err)
	}
	got := *reports
	if len(got) != 3 || got[1].r != report.Build(keycode.Space) || got[2].r != (report.Report{}) {
		t.Fatalf("reports = %v", got)
	}
}

func TestBootloaderFromNavLayer(t *testing.T) {
	s, _, customs := newSim(t)
	script := "press L 3 3\nwait 6\npress L 0 1\nwait 8\n"
	if err := s.RunScript(strings.NewReader(script)); err != nil {
		t.Fatal(err)
	}
	if len(*customs) != 1 || (*customs)[0].Action != types.ActionBootloader || !(*customs)[0].Pressed {
		t.Fatalf("customs = %+v", *customs)
	}
}

func TestHostSwitchesWithUSB(t *testing.T) {
	s, reports, _ := newSim(t)
	script := "usb L off\nusb R on\npress L 0 1\nwait 6\nexpect Q\n"
	if err := s.RunScript(strings.NewReader(script)); err != nil {
		t.Fatal(err)
	}
	got := *reports
	if len(got) != 2 || got[1].side != Right || got[1].r != report.Build(keycode.Q) {
		t.Fatalf("reports = %v", got)
	}
}

func TestExpectMismatch(t *testing.T) {
	s, _, _ := newSim(t)
	err := s.RunScript(strings.NewReader("press L 0 1\nwait 6\nexpect W\n"))
	if errcode.Of(err) != errcode.Error || !strings.Contains(err.Error(), "line 3") {
		t.Fatalf("err = %v", err)
	}
}

func TestScriptErrors(t *testing.T) {
	cases := map[string]errcode.Code{
		"press L 0":      errcode.InvalidParams,
		"press X 0 0":    errcode.InvalidParams,
		"press L 9 0":    errcode.OutOfBounds,
		"wait -1":        errcode.InvalidParams,
		"expect NotAKey": errcode.InvalidParams,
		"jump":           errcode.InvalidParams,
		`press "L 0 0`:   errcode.InvalidParams,
		"usb L":          errcode.InvalidParams,
	}
	for line, want := range cases {
		s, _, _ := newSim(t)
		if err := s.RunScript(strings.NewReader(line)); errcode.Of(err) != want {
			t.Errorf("%q: err = %v, want %s", line, err, want)
		}
	}
}

func TestParseSkipsCommentsAndQuotes(t *testing.T) {
	cmds, err := Parse(strings.NewReader("\n# comment\n  press 'L' 1 2  \n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(cmds) != 1 || cmds[0].Line != 3 || cmds[0].Op != "press" || cmds[0].Args[0] != "L" {
		t.Fatalf("cmds = %+v", cmds)
	}
}
