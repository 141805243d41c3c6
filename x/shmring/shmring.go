// Package shmring is a lock-free single-producer, single-consumer byte ring.
// The producer side never blocks, so it may be driven from an interrupt
// handler (UART RX) while the consumer drains from task context.
package shmring

import (
	"sync/atomic"
)

type Ring struct {
	buf  []byte
	mask uint32
	rd   atomic.Uint32 // consumer index (monotonic)
	wr   atomic.Uint32 // producer index (monotonic)

	readable chan struct{} // 0->>0 available edge
	writable chan struct{} // full->not full edge
}

// New allocates a ring of the given power-of-two size (>= 2).
func New(size int) *Ring {
	if size < 2 || (size&(size-1)) != 0 {
		panic("shmring: size must be power of two >= 2")
	}
	return &Ring{
		buf:      make([]byte, size),
		mask:     uint32(size - 1),
		readable: make(chan struct{}, 1),
		writable: make(chan struct{}, 1),
	}
}

func (r *Ring) size() uint32 { return uint32(len(r.buf)) }

func (r *Ring) Space() int {
	return int(r.size() - (r.wr.Load() - r.rd.Load()))
}

func (r *Ring) Available() int {
	return int(r.wr.Load() - r.rd.Load())
}

// Producer side

// TryWriteByte appends one byte, returning false if the ring is full.
func (r *Ring) TryWriteByte(b byte) bool {
	rd := r.rd.Load()
	wr := r.wr.Load()
	if wr-rd >= r.size() {
		return false
	}
	r.buf[wr&r.mask] = b
	r.wr.Store(wr + 1) // release
	if wr == rd {
		notify(r.readable)
	}
	return true
}

// TryWriteFrom copies as much of src as fits and returns the count.
func (r *Ring) TryWriteFrom(src []byte) (n int) {
	if len(src) == 0 {
		return 0
	}
	rd := r.rd.Load()
	wr := r.wr.Load()
	beforeAvail := wr - rd
	space := int(r.size() - beforeAvail)
	if space <= 0 {
		return 0
	}
	n = min(len(src), space)

	wrIdx := wr & r.mask
	first := min(int(r.size()-wrIdx), n)
	copy(r.buf[wrIdx:wrIdx+uint32(first)], src[:first])
	if second := n - first; second > 0 {
		copy(r.buf[:second], src[first:n])
	}
	r.wr.Store(wr + uint32(n)) // release

	if beforeAvail == 0 {
		notify(r.readable)
	}
	return n
}

// Consumer side

// TryReadByte removes one byte if available.
func (r *Ring) TryReadByte() (byte, bool) {
	rd := r.rd.Load()
	wr := r.wr.Load() // acquire
	if wr == rd {
		return 0, false
	}
	b := r.buf[rd&r.mask]
	r.rd.Store(rd + 1)
	if wr-rd == r.size() {
		notify(r.writable)
	}
	return b, true
}

// TryReadInto copies up to len(dst) bytes and returns the count.
func (r *Ring) TryReadInto(dst []byte) (n int) {
	if len(dst) == 0 {
		return 0
	}
	rd := r.rd.Load()
	wr := r.wr.Load() // acquire
	avail := int(wr - rd)
	if avail <= 0 {
		return 0
	}
	n = min(len(dst), avail)

	rdIdx := rd & r.mask
	first := min(int(r.size()-rdIdx), n)
	copy(dst[:first], r.buf[rdIdx:rdIdx+uint32(first)])
	if second := n - first; second > 0 {
		copy(dst[first:n], r.buf[:second])
	}
	r.rd.Store(rd + uint32(n)) // release

	if wr-rd == r.size() {
		notify(r.writable)
	}
	return n
}

func (r *Ring) Readable() <-chan struct{} { return r.readable }
func (r *Ring) Writable() <-chan struct{} { return r.writable }

func notify(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}
