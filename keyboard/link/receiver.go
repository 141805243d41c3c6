package link

import (
	"context"
	"sync/atomic"
	"time"

	"hillside-go/x/shmring"
)

// Port is the receive side of the inter-half UART.
type Port interface {
	RecvSomeContext(ctx context.Context, p []byte) (int, error)
}

// Receiver copies UART bytes into the RX ring from its own goroutine so the
// UART is never left waiting on the keyboard loop.
type Receiver struct {
	port Port
	rx   *shmring.Ring
	lost atomic.Uint32
}

func NewReceiver(port Port, rx *shmring.Ring) *Receiver {
	return &Receiver{port: port, rx: rx}
}

// Overruns is the number of bytes dropped because the ring was full.
func (r *Receiver) Overruns() uint32 { return r.lost.Load() }

// Run reads until ctx is done.
func (r *Receiver) Run(ctx context.Context) {
	var buf [32]byte
	for ctx.Err() == nil {
		// Bound each wait so cancellation is noticed.
		rctx, cancel := context.WithTimeout(ctx, 250*time.Millisecond)
		n, _ := r.port.RecvSomeContext(rctx, buf[:])
		cancel()
		if n <= 0 {
			continue
		}
		if w := r.rx.TryWriteFrom(buf[:n]); w < n {
			r.lost.Add(uint32(n - w))
		}
	}
}
