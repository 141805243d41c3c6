package keycode

import "testing"

func TestUsageIDs(t *testing.T) {
	cases := []struct {
		k    KeyCode
		want uint8
	}{
		{A, 0x04}, {Z, 0x1d}, {Kb1, 0x1e}, {Kb0, 0x27}, {Enter, 0x28},
		{Space, 0x2c}, {Quote, 0x34}, {Slash, 0x38}, {F1, 0x3a}, {F12, 0x45},
		{Up, 0x52}, {LCtrl, 0xe0}, {RGui, 0xe7}, {MediaMute, 0xef}, {MediaStop, 0xf3},
	}
	for _, c := range cases {
		if uint8(c.k) != c.want {
			t.Errorf("%s = %#x, want %#x", c.k, uint8(c.k), c.want)
		}
	}
}

func TestModifierBit(t *testing.T) {
	if LShift.ModifierBit() != 0x02 || RGui.ModifierBit() != 0x80 {
		t.Fatal("modifier bits")
	}
	if A.ModifierBit() != 0 || A.IsModifier() {
		t.Fatal("A is not a modifier")
	}
}

func TestNames(t *testing.T) {
	if got := L.String(); got != "L" {
		t.Fatalf("L.String() = %q", got)
	}
	if got := KeyCode(0x7f).String(); got != "0x7f" {
		t.Fatalf("unnamed = %q", got)
	}
	if k, ok := Lookup("Quote"); !ok || k != Quote {
		t.Fatalf("Lookup(Quote) = %v,%v", k, ok)
	}
}
