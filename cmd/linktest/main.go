//go:build rp2040

// linktest exercises the inter-half UART on one half with its link TX
// jumpered to its own RX. It sends key frames through the same sender,
// receiver and framer the firmware uses and checks what comes back.
package main

import (
	"context"
	"time"

	"hillside-go/keyboard/link"
	"hillside-go/platform"
	"hillside-go/types"
	"hillside-go/x/shmring"
)

func main() {
	println("[link] boot …")
	time.Sleep(1500 * time.Millisecond)

	cfg := types.DefaultKeyboardConfig()
	pins, _ := platform.BoardPins(cfg.Board)
	board, err := platform.Open(pins, cfg)
	if err != nil {
		println("[link] FAIL: open:", err.Error())
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go board.RunLink(ctx)

	tx := link.NewSender(board.LinkTX())
	rx := board.LinkRX()
	var fr link.Framer

	println("[link] smoke: one press frame")
	if sendReceive(tx, rx, &fr, []types.KeyEvent{types.Press(1, 9)}, time.Second) {
		println("[link] smoke: PASS")
	} else {
		println("[link] smoke: FAIL")
	}

	// Every position the layout can address, pressed then released.
	var all []types.KeyEvent
	for r := 0; r < cfg.Rows; r++ {
		for c := 0; c < cfg.LayoutCols; c++ {
			all = append(all, types.Press(uint8(r), uint8(c)), types.Release(uint8(r), uint8(c)))
		}
	}
	println("[link] integrity:", len(all), "frames")
	if sendReceive(tx, rx, &fr, all, 5*time.Second) {
		println("[link] integrity: PASS")
	} else {
		println("[link] integrity: FAIL")
	}

	println("[link] throughput: 3s")
	throughput(tx, rx, &fr, 3*time.Second)
	println("[link] frames=", fr.Frames, " drops=", fr.Drops, " overruns=", board.Overruns())
}

// sendReceive sends want one frame at a time and checks each comes back in
// order before the deadline.
func sendReceive(tx *link.Sender, rx *shmring.Ring, fr *link.Framer, want []types.KeyEvent, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for i, e := range want {
		if err := tx.Send(e); err != nil {
			println("[link] send failed at", i, ":", err.Error())
			return false
		}
		got, ok := next(rx, fr, deadline)
		if !ok {
			println("[link] no frame back for", i)
			return false
		}
		if got != e {
			println("[link] mismatch at", i, ": row", got.Row, "col", got.Col)
			return false
		}
	}
	return true
}

func next(rx *shmring.Ring, fr *link.Framer, deadline time.Time) (types.KeyEvent, bool) {
	for time.Now().Before(deadline) {
		for {
			b, ok := rx.TryReadByte()
			if !ok {
				break
			}
			if e, ok := fr.Push(b); ok {
				return e, true
			}
		}
		select {
		case <-rx.Readable():
		case <-time.After(25 * time.Millisecond):
		}
	}
	return types.KeyEvent{}, false
}

// throughput streams frames from one goroutine while this one counts what
// arrives.
func throughput(tx *link.Sender, rx *shmring.Ring, fr *link.Framer, d time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()

	sent := 0
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; ctx.Err() == nil; i++ {
			if tx.Send(types.Press(uint8(i%4), uint8(i%12))) == nil {
				sent++
			}
		}
	}()

	start, received := time.Now(), 0
	for ctx.Err() == nil {
		if _, ok := next(rx, fr, time.Now().Add(50*time.Millisecond)); ok {
			received++
		}
	}
	<-done
	// Grace drain.
	for {
		if _, ok := next(rx, fr, time.Now().Add(100*time.Millisecond)); !ok {
			break
		}
		received++
	}

	ms := time.Since(start).Milliseconds()
	if ms <= 0 {
		ms = 1
	}
	println("[link] throughput: sent=", sent, " received=", received, " (~", int64(received)*1000/ms, " frames/s)")
}
