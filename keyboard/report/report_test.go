package report

import (
	"errors"
	"slices"
	"testing"

	"hillside-go/errcode"
	"hillside-go/keyboard/keycode"
)

func TestBuildModifiersAndKeys(t *testing.T) {
	r := Build(keycode.LShift, keycode.A, keycode.RGui, keycode.Kb1)
	want := Report{0x02 | 0x80, 0, byte(keycode.A), byte(keycode.Kb1), 0, 0, 0, 0}
	if r != want {
		t.Fatalf("report = %v, want %v", r, want)
	}
	if !slices.Equal(r.Keys(), []keycode.KeyCode{keycode.A, keycode.Kb1}) {
		t.Fatalf("keys = %v", r.Keys())
	}
}

func TestBuildIgnoresNoAndDuplicates(t *testing.T) {
	r := Build(keycode.No, keycode.A, keycode.A)
	if len(r.Keys()) != 1 {
		t.Fatalf("keys = %v, want [A]", r.Keys())
	}
}

func TestBuildRollOver(t *testing.T) {
	r := Build(keycode.LCtrl, keycode.A, keycode.B, keycode.C, keycode.D, keycode.E, keycode.F)
	if r.RolledOver() {
		t.Fatal("six keys rolled over")
	}
	r.Add(keycode.G)
	if !r.RolledOver() || r[0] != 0x01 {
		t.Fatalf("seven keys = %v", r)
	}
	for _, b := range r[2:] {
		if b != byte(keycode.ErrorRollOver) {
			t.Fatalf("slot = %#x, want ErrorRollOver", b)
		}
	}
}

func TestReportString(t *testing.T) {
	if s := Build(keycode.LShift, keycode.A).String(); s != "02 00 04 00 00 00 00 00" {
		t.Fatalf("String() = %q", s)
	}
}

type fakeUSB struct {
	configured bool
	zeros      int
	err        error
	writes     int
	got        [][]byte
}

func (f *fakeUSB) Configured() bool { return f.configured }

func (f *fakeUSB) Write(p []byte) (int, error) {
	f.writes++
	if f.err != nil {
		return 0, f.err
	}
	if f.zeros > 0 {
		f.zeros--
		return 0, nil
	}
	f.got = append(f.got, append([]byte(nil), p...))
	return len(p), nil
}

func TestAssemblerSkipsWhenNotConfigured(t *testing.T) {
	usb := &fakeUSB{}
	a := NewAssembler(usb, 10)
	sent, err := a.Update(Build(keycode.A))
	if sent || err != nil || usb.writes != 0 || a.Skipped != 1 {
		t.Fatalf("sent=%v err=%v writes=%d skipped=%d", sent, err, usb.writes, a.Skipped)
	}
}

func TestAssemblerSendsOnlyChanges(t *testing.T) {
	usb := &fakeUSB{configured: true}
	a := NewAssembler(usb, 10)
	for i := 0; i < 3; i++ {
		if _, err := a.Update(Build(keycode.A)); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := a.Update(Build()); err != nil {
		t.Fatal(err)
	}
	if len(usb.got) != 2 || a.Sent != 2 {
		t.Fatalf("writes = %d sent = %d, want 2", len(usb.got), a.Sent)
	}
}

func TestAssemblerSpinsOnZeroAcceptance(t *testing.T) {
	usb := &fakeUSB{configured: true, zeros: 3}
	a := NewAssembler(usb, 10)
	sent, err := a.Update(Build(keycode.A))
	if !sent || err != nil || usb.writes != 4 {
		t.Fatalf("sent=%v err=%v writes=%d", sent, err, usb.writes)
	}
}

func TestAssemblerStallKeepsLastReport(t *testing.T) {
	usb := &fakeUSB{configured: true, zeros: 100}
	a := NewAssembler(usb, 5)
	_, err := a.Update(Build(keycode.A))
	if !errors.Is(err, errcode.WriteStalled) || usb.writes != 5 || a.Stalled != 1 {
		t.Fatalf("err=%v writes=%d stalled=%d", err, usb.writes, a.Stalled)
	}
	if _, ok := a.Last(); ok {
		t.Fatal("stalled report recorded as accepted")
	}

	usb.zeros = 0
	if sent, _ := a.Update(Build(keycode.A)); !sent {
		t.Fatal("report not retried after stall")
	}
}

func TestAssemblerWriteError(t *testing.T) {
	usb := &fakeUSB{configured: true, err: errors.New("ep halted")}
	a := NewAssembler(usb, 5)
	if _, err := a.Update(Build(keycode.A)); errcode.Of(err) != errcode.Error {
		t.Fatalf("err = %v", err)
	}
}

func TestAssemblerResendsAfterReconfigure(t *testing.T) {
	usb := &fakeUSB{configured: true}
	a := NewAssembler(usb, 5)
	a.Update(Build(keycode.A))
	usb.configured = false
	a.Update(Build(keycode.A))
	usb.configured = true
	if sent, _ := a.Update(Build(keycode.A)); !sent {
		t.Fatal("unchanged report not resent after the host reconfigured")
	}
}
