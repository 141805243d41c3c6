// Package platform binds the keyboard pipeline to hardware: RP2040 pins,
// UART, USB HID and watchdog on the MCU, and in-memory stand-ins on a host.
package platform

// Pins is one half's wiring in GPIO numbers.
type Pins struct {
	Rows []int // strobed outputs
	Cols []int // pull-up inputs
	// Inter-half UART.
	UART   int
	LinkTX int
	LinkRX int
	// Sense is the handedness line (VBUS detect on the Hillside 46).
	Sense int
}

var boards = map[string]Pins{
	"hillside46": {
		Rows:   []int{5, 6, 7, 9},
		Cols:   []int{27, 26, 22, 20, 23, 21},
		UART:   0,
		LinkTX: 0,
		LinkRX: 1,
		Sense:  19,
	},
}

// BoardPins returns the wiring for a named board.
func BoardPins(board string) (Pins, bool) {
	p, ok := boards[board]
	return p, ok
}
