package link

import (
	"tinygo.org/x/drivers"

	"hillside-go/x/shmring"
)

// Pump moves whatever the UART has buffered into the RX ring without
// blocking. It returns the number of bytes moved and the number lost because
// the ring was full. Call it from the RX interrupt or a polling loop.
func Pump(u drivers.UART, rx *shmring.Ring) (moved, lost int) {
	var buf [16]byte
	for u.Buffered() > 0 {
		n, err := u.Read(buf[:])
		if n <= 0 || err != nil {
			return moved, lost
		}
		for _, b := range buf[:n] {
			if rx.TryWriteByte(b) {
				moved++
			} else {
				lost++
			}
		}
	}
	return moved, lost
}
