package mathx

import (
	"testing"
	"time"
)

func TestClamp(t *testing.T) {
	if got := Clamp(7, 1, 5); got != 5 {
		t.Fatalf("Clamp high = %d", got)
	}
	if got := Clamp(-3, 1, 5); got != 1 {
		t.Fatalf("Clamp low = %d", got)
	}
	if got := Clamp(3, 5, 1); got != 3 {
		t.Fatalf("Clamp swapped bounds = %d", got)
	}
	if got := Clamp(time.Second, time.Millisecond, 100*time.Millisecond); got != 100*time.Millisecond {
		t.Fatalf("Clamp duration = %v", got)
	}
}

func TestMax(t *testing.T) {
	if got := Max(time.Millisecond, 2*time.Millisecond); got != 2*time.Millisecond {
		t.Fatalf("Max = %v", got)
	}
}
