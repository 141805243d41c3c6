//go:build rp2040

package platform

import (
	"context"
	"machine"
	"machine/usb/hid"
	"machine/usb/hid/keyboard"

	"github.com/jangala-dev/tinygo-uartx/uartx"

	"hillside-go/drivers/matrix"
	"hillside-go/errcode"
	"hillside-go/keyboard/link"
	"hillside-go/types"
	"hillside-go/x/shmring"
)

// hidKeyboardReportID prefixes keyboard reports on TinyGo's composite HID
// interface.
const hidKeyboardReportID = 0x02

// Board is one half brought up on an RP2040.
type Board struct {
	pins Pins
	uart *uartx.UART
	rx   *shmring.Ring
	recv *link.Receiver
}

// Open configures the UART link, the handedness line, USB HID and the
// watchdog for pins.
func Open(pins Pins, cfg types.KeyboardConfig) (*Board, error) {
	var hw *uartx.UART
	switch pins.UART {
	case 0:
		hw = uartx.UART0
	case 1:
		hw = uartx.UART1
	default:
		return nil, errcode.Unsupported
	}
	if err := hw.Configure(uartx.UARTConfig{
		BaudRate: cfg.Baud,
		TX:       machine.Pin(pins.LinkTX),
		RX:       machine.Pin(pins.LinkRX),
	}); err != nil {
		return nil, errcode.Wrap(errcode.Error, "platform.uart", err)
	}
	if err := hw.SetFormat(8, 1, uartx.ParityNone); err != nil {
		return nil, errcode.Wrap(errcode.Error, "platform.uart", err)
	}

	machine.Pin(pins.Sense).Configure(machine.PinConfig{Mode: machine.PinInput})

	// Registers the HID keyboard interface with the USB stack.
	keyboard.Port()

	ms := cfg.WatchdogTimeout.Milliseconds()
	if ms < 1 {
		ms = 1
	}
	machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: uint32(ms)})

	rx := shmring.New(256)
	return &Board{pins: pins, uart: hw, rx: rx, recv: link.NewReceiver(hw, rx)}, nil
}

// Matrix configures the row and column pins and returns their scanner.
func (b *Board) Matrix() (*matrix.Scanner, error) {
	rows := make([]matrix.Output, len(b.pins.Rows))
	for i, n := range b.pins.Rows {
		p := machine.Pin(n)
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
		rows[i] = p
	}
	cols := make([]matrix.Input, len(b.pins.Cols))
	for i, n := range b.pins.Cols {
		p := machine.Pin(n)
		p.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
		cols[i] = p
	}
	return matrix.New(rows, cols)
}

// SenseHigh reads the handedness line.
func (b *Board) SenseHigh() bool { return machine.Pin(b.pins.Sense).Get() }

func (b *Board) LinkTX() link.ByteWriter { return b.uart }
func (b *Board) LinkRX() *shmring.Ring   { return b.rx }

// RunLink moves received UART bytes into LinkRX until ctx is done.
func (b *Board) RunLink(ctx context.Context) { b.recv.Run(ctx) }

func (b *Board) Overruns() uint32 { return b.recv.Overruns() }

func (b *Board) USB() *USB { return &USB{} }

func (b *Board) Watchdog() *Watchdog { return &Watchdog{} }

func (b *Board) Controller() Controller { return Controller{} }

// ----------------------------- USB HID ---------------------------------------

type USB struct {
	buf [1 + 8]byte
}

func (u *USB) Configured() bool { return machine.USBDev.InitEndpointComplete }

func (u *USB) Write(p []byte) (int, error) {
	u.buf[0] = hidKeyboardReportID
	n := copy(u.buf[1:], p)
	hid.SendUSBPacket(u.buf[:1+n])
	return n, nil
}

// ----------------------------- Watchdog --------------------------------------

type Watchdog struct{ started bool }

// Feed starts the watchdog on first use so boot time is not counted.
func (w *Watchdog) Feed() {
	if !w.started {
		machine.Watchdog.Start()
		w.started = true
	}
	machine.Watchdog.Update()
}

// ----------------------------- MCU control -----------------------------------

type Controller struct{}

func (Controller) Reset()      { machine.CPUReset() }
func (Controller) Bootloader() { machine.EnterBootloader() }
