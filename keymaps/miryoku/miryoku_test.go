package miryoku

import (
	"slices"
	"testing"

	"hillside-go/errcode"
	kc "hillside-go/keyboard/keycode"
	"hillside-go/keyboard/layout"
	"hillside-go/types"
)

func TestTableShape(t *testing.T) {
	table := Table(200, 0, layout.HoldTapDefault)
	if len(table) != NumLayers {
		t.Fatalf("layers = %d, want %d", len(table), NumLayers)
	}
	for i, layer := range table {
		if len(layer) != Rows {
			t.Fatalf("layer %d rows = %d", i, len(layer))
		}
		for r, row := range layer {
			if len(row) != Cols {
				t.Fatalf("layer %d row %d cols = %d", i, r, len(row))
			}
		}
	}
}

func TestBaseBindings(t *testing.T) {
	l, err := Layers(types.DefaultKeyboardConfig())
	if err != nil {
		t.Fatal(err)
	}
	if a := l.At(Base, 1, 9); a.Kind != layout.KindKeyCode || a.Code != kc.L {
		t.Fatalf("base (1,9) = %+v, want L", a)
	}
	if a := l.At(Base, 1, 2); a.Code != kc.S {
		t.Fatalf("base (1,2) = %+v, want S", a)
	}
	ht := l.At(Base, 3, 3)
	if ht.Kind != layout.KindHoldTap || ht.HoldTap.Hold.Layer != Nav || ht.HoldTap.Tap.Code != kc.Space {
		t.Fatalf("base (3,3) = %+v, want space/nav", ht)
	}
	if ht.HoldTap.Timeout != 200 || ht.HoldTap.Config != layout.HoldOnOtherKeyPress {
		t.Fatalf("hold-tap timing = %+v", ht.HoldTap)
	}
}

func TestRejectsOtherShapes(t *testing.T) {
	cfg := types.DefaultKeyboardConfig()
	cfg.Rows = 5
	if _, err := Layers(cfg); errcode.Of(err) != errcode.InvalidLayout {
		t.Fatalf("err = %v", err)
	}
}

func TestNavLayerThroughEngine(t *testing.T) {
	l, err := Layers(types.DefaultKeyboardConfig())
	if err != nil {
		t.Fatal(err)
	}
	e := layout.New(l)
	e.Event(types.Press(3, 3))
	e.Tick()
	e.Event(types.Press(0, 8))
	e.Tick() // other key pressed: hold
	e.Tick()
	if got := e.AppendKeyCodes(nil); !slices.Equal(got, []kc.KeyCode{kc.LCtrl, kc.C}) {
		t.Fatalf("nav copy = %v", got)
	}
}

func TestBootloaderOnNav(t *testing.T) {
	l, err := Layers(types.DefaultKeyboardConfig())
	if err != nil {
		t.Fatal(err)
	}
	e := layout.New(l)
	e.Event(types.Press(3, 3))
	e.Tick()
	e.Event(types.Press(0, 1))
	e.Tick()
	if a, ok := e.Tick().Pressed(); !ok || a != types.ActionBootloader {
		t.Fatal("bootloader not raised from nav layer")
	}
}
