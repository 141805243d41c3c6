// Package debounce turns raw matrix snapshots into stable key events.
package debounce

import (
	"hillside-go/drivers/matrix"
	"hillside-go/types"
)

// Debouncer keeps the last reported snapshot and a candidate. The candidate
// becomes stable once it has been seen on window consecutive scans.
type Debouncer struct {
	cur    matrix.Snapshot
	new    matrix.Snapshot
	since  int
	window int
}

// New starts from an all-open matrix. window < 1 is treated as 1.
func New(rows, cols, window int) *Debouncer {
	if window < 1 {
		window = 1
	}
	return &Debouncer{
		cur:    matrix.NewSnapshot(rows, cols),
		new:    matrix.NewSnapshot(rows, cols),
		window: window,
	}
}

// Stable returns the last reported snapshot. Callers must not modify it.
func (d *Debouncer) Stable() matrix.Snapshot { return d.cur }

// Update feeds one scan and reports whether the stable state changed. After a
// change, the previous stable state is held in the candidate slot until the
// next differing scan.
func (d *Debouncer) Update(s matrix.Snapshot) bool {
	if d.cur.Equal(s) {
		d.since = 0
		return false
	}
	if !d.new.Equal(s) {
		d.new.CopyFrom(s)
		d.since = 1
	} else {
		d.since++
	}
	if d.since >= d.window {
		d.cur, d.new = d.new, d.cur
		d.since = 0
		return true
	}
	return false
}

// Events feeds one scan and calls emit for every cell whose stable state
// changed, in row-major order.
func (d *Debouncer) Events(s matrix.Snapshot, emit func(types.KeyEvent)) int {
	if !d.Update(s) {
		return 0
	}
	n := 0
	for i := 0; i < d.cur.Rows(); i++ {
		for j := 0; j < d.cur.Cols(); j++ {
			now, was := d.cur.At(i, j), d.new.At(i, j)
			if now == was {
				continue
			}
			if now {
				emit(types.Press(uint8(i), uint8(j)))
			} else {
				emit(types.Release(uint8(i), uint8(j)))
			}
			n++
		}
	}
	return n
}
