// Package sim runs both halves of the keyboard on a host, tick by tick,
// joined by an in-memory UART.
package sim

import (
	"hillside-go/errcode"
	"hillside-go/keyboard/link"
	"hillside-go/keyboard/report"
	"hillside-go/platform"
	"hillside-go/services/keyboard"
	"hillside-go/types"
	"hillside-go/x/shmring"
)

type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Right {
		return "R"
	}
	return "L"
}

// ParseSide accepts L/R or left/right.
func ParseSide(s string) (Side, bool) {
	switch s {
	case "L", "l", "left":
		return Left, true
	case "R", "r", "right":
		return Right, true
	}
	return 0, false
}

type Options struct {
	Config types.KeyboardConfig
	// Host is the half whose USB starts configured.
	Host Side
	// SenseHigh is the half whose handedness line reads high.
	SenseHigh Side
}

// DefaultOptions: left half on USB, right half sensing high and so
// mirrored.
func DefaultOptions() Options {
	return Options{Config: types.DefaultKeyboardConfig(), Host: Left, SenseHigh: Right}
}

type Half struct {
	Side     Side
	Switches *platform.Switches
	USB      *platform.USB
	Pipeline *keyboard.Pipeline

	end *platform.Loopback
	rx  *shmring.Ring
}

type Sim struct {
	cfg    types.KeyboardConfig
	halves [2]*Half
	tick   int

	OnReport func(tick int, side Side, r report.Report)
	OnCustom func(tick int, side Side, sig types.CustomSignal)
}

func New(opts Options, keymap keyboard.Keymap) (*Sim, error) {
	cfg := opts.Config.Normalize()
	layers, err := keymap(cfg)
	if err != nil {
		return nil, err
	}
	s := &Sim{cfg: cfg}
	ends := [2]*platform.Loopback{}
	ends[Left], ends[Right] = platform.NewLoopbackPair()

	for _, side := range []Side{Left, Right} {
		h := &Half{
			Side:     side,
			Switches: platform.NewSwitches(cfg.Rows, cfg.Cols),
			USB:      platform.NewUSB(side == opts.Host),
			end:      ends[side],
			rx:       shmring.New(256),
		}
		scanner, err := h.Switches.Scanner()
		if err != nil {
			return nil, err
		}
		h.Pipeline, err = keyboard.NewPipeline(cfg, keyboard.Hardware{
			Matrix:    scanner,
			LinkTX:    h.end,
			LinkRX:    h.rx,
			USB:       h.USB,
			SenseHigh: side == opts.SenseHigh,
		}, layers)
		if err != nil {
			return nil, err
		}
		h.USB.OnReport = func(r report.Report) {
			if s.OnReport != nil {
				s.OnReport(s.tick, side, r)
			}
		}
		h.Pipeline.OnCustom = func(sig types.CustomSignal) {
			if s.OnCustom != nil {
				s.OnCustom(s.tick, side, sig)
			}
		}
		s.halves[side] = h
	}
	return s, nil
}

func (s *Sim) Config() types.KeyboardConfig { return s.cfg }
func (s *Sim) Half(side Side) *Half         { return s.halves[side] }
func (s *Sim) Tick() int                    { return s.tick }

// Set closes or opens a switch in side's physical matrix.
func (s *Sim) Set(side Side, row, col int, closed bool) error {
	if row < 0 || row >= s.cfg.Rows || col < 0 || col >= s.cfg.Cols {
		return &errcode.E{C: errcode.OutOfBounds, Op: "sim.set", Msg: "no such switch"}
	}
	s.halves[side].Switches.Press(row, col, closed)
	return nil
}

// Step advances both halves by one scan period.
func (s *Sim) Step() {
	s.tick++
	for _, h := range s.halves {
		link.Pump(h.end, h.rx)
		h.Pipeline.DrainRX()
		h.Pipeline.ScanTick()
		h.Pipeline.Flush()
	}
}

func (s *Sim) Run(ticks int) {
	for i := 0; i < ticks; i++ {
		s.Step()
	}
}

// HostReport is the last report accepted by the first configured half.
func (s *Sim) HostReport() (report.Report, Side, bool) {
	for _, h := range s.halves {
		if h.USB.Configured() {
			r, _ := h.USB.Last()
			return r, h.Side, true
		}
	}
	return report.Report{}, 0, false
}
