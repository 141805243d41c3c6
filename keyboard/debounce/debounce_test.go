package debounce

import (
	"testing"

	"hillside-go/drivers/matrix"
	"hillside-go/types"
)

func collect(d *Debouncer, s matrix.Snapshot) []types.KeyEvent {
	var out []types.KeyEvent
	d.Events(s, func(e types.KeyEvent) { out = append(out, e) })
	return out
}

func TestSingleCellChangeAfterWindow(t *testing.T) {
	d := New(4, 6, 5)
	s := matrix.NewSnapshot(4, 6)
	s.Set(1, 2, true)

	for i := 1; i < 5; i++ {
		if ev := collect(d, s); len(ev) != 0 {
			t.Fatalf("scan %d emitted early: %v", i, ev)
		}
	}
	ev := collect(d, s)
	if len(ev) != 1 || ev[0] != types.Press(1, 2) {
		t.Fatalf("scan 5 = %v, want [press(1,2)]", ev)
	}
}

func TestIdempotentAfterSettling(t *testing.T) {
	d := New(2, 2, 3)
	s := matrix.NewSnapshot(2, 2)
	s.Set(0, 1, true)
	for i := 0; i < 3; i++ {
		collect(d, s)
	}
	for i := 0; i < 20; i++ {
		if ev := collect(d, s); len(ev) != 0 {
			t.Fatalf("settled scan %d emitted %v", i, ev)
		}
	}
}

func TestChatterResetsWindow(t *testing.T) {
	d := New(1, 1, 3)
	open := matrix.NewSnapshot(1, 1)
	closed := matrix.NewSnapshot(1, 1)
	closed.Set(0, 0, true)

	seq := []matrix.Snapshot{closed, closed, open, closed, closed}
	for i, s := range seq {
		if ev := collect(d, s); len(ev) != 0 {
			t.Fatalf("chattering scan %d emitted %v", i, ev)
		}
	}
	if ev := collect(d, closed); len(ev) != 1 {
		t.Fatalf("expected press after three stable scans, got %v", ev)
	}
}

func TestMultipleEventsRowMajor(t *testing.T) {
	d := New(2, 3, 1)
	s := matrix.NewSnapshot(2, 3)
	s.Set(1, 0, true)
	s.Set(0, 2, true)
	ev := collect(d, s)
	want := []types.KeyEvent{types.Press(0, 2), types.Press(1, 0)}
	if len(ev) != len(want) || ev[0] != want[0] || ev[1] != want[1] {
		t.Fatalf("events = %v, want %v", ev, want)
	}

	s2 := matrix.NewSnapshot(2, 3)
	s2.Set(1, 0, true)
	s2.Set(1, 1, true)
	ev = collect(d, s2)
	want = []types.KeyEvent{types.Release(0, 2), types.Press(1, 1)}
	if len(ev) != len(want) || ev[0] != want[0] || ev[1] != want[1] {
		t.Fatalf("events = %v, want %v", ev, want)
	}
}

func TestWindowClampedToOne(t *testing.T) {
	d := New(1, 1, 0)
	s := matrix.NewSnapshot(1, 1)
	s.Set(0, 0, true)
	if ev := collect(d, s); len(ev) != 1 {
		t.Fatalf("window 0 should behave like 1, got %v", ev)
	}
}
