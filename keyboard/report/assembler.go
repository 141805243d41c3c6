package report

import (
	"hillside-go/errcode"
)

// Transport is the USB HID keyboard endpoint.
type Transport interface {
	// Configured reports whether the host has configured the device.
	Configured() bool
	// Write queues one report. Zero means the endpoint is busy.
	Write(p []byte) (int, error)
}

// Assembler sends a report whenever it differs from the last one the host
// accepted. Nothing is buffered while the transport is unconfigured.
type Assembler struct {
	t Transport
	// SpinLimit bounds retries while the endpoint accepts zero bytes.
	// Zero or less spins until the endpoint takes the report.
	SpinLimit int

	last       Report
	valid      bool
	configured bool

	Sent, Skipped, Stalled uint32
}

func NewAssembler(t Transport, spinLimit int) *Assembler {
	return &Assembler{t: t, SpinLimit: spinLimit}
}

// Configured reports the transport state seen by the last Update.
func (a *Assembler) Configured() bool { return a.configured }

// Last returns the last report the host accepted.
func (a *Assembler) Last() (Report, bool) { return a.last, a.valid }

// Update sends r if the transport is configured and r is new.
func (a *Assembler) Update(r Report) (bool, error) {
	if !a.t.Configured() {
		if a.configured {
			a.configured, a.valid = false, false
		}
		a.Skipped++
		return false, nil
	}
	a.configured = true
	if a.valid && r == a.last {
		return false, nil
	}
	for spins := 1; ; spins++ {
		n, err := a.t.Write(r[:])
		if err != nil {
			return false, errcode.Wrap(errcode.Error, "report.write", err)
		}
		if n > 0 {
			a.last, a.valid = r, true
			a.Sent++
			return true, nil
		}
		if a.SpinLimit > 0 && spins >= a.SpinLimit {
			a.Stalled++
			return false, &errcode.E{C: errcode.WriteStalled, Op: "report.write"}
		}
	}
}
