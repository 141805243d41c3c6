//go:build !rp2040

package platform

import (
	"context"
	"sync"

	"hillside-go/drivers/matrix"
	"hillside-go/keyboard/report"
)

// ----------------------------- GPIO (host) -----------------------------------

// Pin is an in-memory GPIO usable as a matrix row or column.
type Pin struct {
	mu    sync.Mutex
	level bool
}

func (p *Pin) Set(high bool) {
	p.mu.Lock()
	p.level = high
	p.mu.Unlock()
}

func (p *Pin) Get() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

// Switches is a host key matrix. Rows are driven by the scanner and each
// column reads low while a closed switch joins it to a low row, the way
// pull-up columns behave on the board.
type Switches struct {
	mu     sync.Mutex
	rows   []*Pin
	closed [][]bool
}

func NewSwitches(rows, cols int) *Switches {
	s := &Switches{rows: make([]*Pin, rows), closed: make([][]bool, rows)}
	for i := range s.rows {
		s.rows[i] = &Pin{level: true}
		s.closed[i] = make([]bool, cols)
	}
	return s
}

// Press closes or opens the switch at row, col.
func (s *Switches) Press(row, col int, closed bool) {
	s.mu.Lock()
	s.closed[row][col] = closed
	s.mu.Unlock()
}

// Scanner returns a matrix scanner strobing these switches.
func (s *Switches) Scanner() (*matrix.Scanner, error) {
	rows := make([]matrix.Output, len(s.rows))
	for i, p := range s.rows {
		rows[i] = p
	}
	cols := make([]matrix.Input, len(s.closed[0]))
	for i := range cols {
		cols[i] = &Column{s: s, col: i}
	}
	return matrix.New(rows, cols)
}

type Column struct {
	s   *Switches
	col int
}

func (c *Column) Get() bool {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	for r, row := range c.s.rows {
		if !row.Get() && c.s.closed[r][c.col] {
			return false
		}
	}
	return true
}

// ----------------------------- UART (host) -----------------------------------

// Loopback is one end of an in-memory UART pair. It satisfies
// tinygo.org/x/drivers.UART and link.Port.
type Loopback struct {
	mu    sync.Mutex
	buf   []byte
	ready chan struct{}
	peer  *Loopback
}

// NewLoopbackPair returns two connected ends.
func NewLoopbackPair() (*Loopback, *Loopback) {
	a := &Loopback{ready: make(chan struct{}, 1)}
	b := &Loopback{ready: make(chan struct{}, 1), peer: a}
	a.peer = b
	return a, b
}

// Write delivers p to the peer's receive buffer.
func (l *Loopback) Write(p []byte) (int, error) {
	o := l.peer
	o.mu.Lock()
	o.buf = append(o.buf, p...)
	o.mu.Unlock()
	select {
	case o.ready <- struct{}{}:
	default:
	}
	return len(p), nil
}

func (l *Loopback) Buffered() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buf)
}

func (l *Loopback) Read(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := copy(p, l.buf)
	l.buf = l.buf[n:]
	return n, nil
}

// RecvSomeContext blocks until at least one byte is buffered or ctx ends.
func (l *Loopback) RecvSomeContext(ctx context.Context, p []byte) (int, error) {
	for {
		if n, _ := l.Read(p); n > 0 {
			return n, nil
		}
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-l.ready:
		}
	}
}

// ----------------------------- USB (host) ------------------------------------

// USB records reports instead of sending them to a host.
type USB struct {
	mu         sync.Mutex
	configured bool
	last       report.Report
	count      int
	// OnReport, if set, sees every accepted report.
	OnReport func(report.Report)
}

func NewUSB(configured bool) *USB { return &USB{configured: configured} }

func (u *USB) SetConfigured(v bool) {
	u.mu.Lock()
	u.configured = v
	u.mu.Unlock()
}

func (u *USB) Configured() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.configured
}

func (u *USB) Write(p []byte) (int, error) {
	u.mu.Lock()
	copy(u.last[:], p)
	u.count++
	r, cb := u.last, u.OnReport
	u.mu.Unlock()
	if cb != nil {
		cb(r)
	}
	return len(p), nil
}

// Last returns the most recent report and how many were written.
func (u *USB) Last() (report.Report, int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.last, u.count
}

// ----------------------------- MCU control (host) ----------------------------

// Controller logs instead of resetting.
type Controller struct {
	mu    sync.Mutex
	Calls []string
}

func (c *Controller) Reset()      { c.record("reset") }
func (c *Controller) Bootloader() { c.record("bootloader") }

func (c *Controller) record(s string) {
	c.mu.Lock()
	c.Calls = append(c.Calls, s)
	c.mu.Unlock()
	println("[mcu] host would", s)
}
