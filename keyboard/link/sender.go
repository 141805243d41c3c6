package link

import (
	"hillside-go/errcode"
	"hillside-go/types"
)

// ByteWriter is the transmit side of the inter-half UART.
type ByteWriter interface {
	Write(p []byte) (int, error)
}

// Sender writes frames one byte at a time, spinning while the port accepts
// nothing. The spin is bounded by the UART's drain rate, not by software.
type Sender struct {
	w ByteWriter

	Frames uint32
}

func NewSender(w ByteWriter) *Sender { return &Sender{w: w} }

// Send transmits one frame. A write error abandons the rest of the frame; the
// receiver's framer resynchronises on the next terminator.
func (s *Sender) Send(e types.KeyEvent) error {
	frame := Encode(e)
	for i := range frame {
		for {
			n, err := s.w.Write(frame[i : i+1])
			if err != nil {
				return errcode.Wrap(errcode.Error, "link.send", err)
			}
			if n > 0 {
				break
			}
		}
	}
	s.Frames++
	return nil
}
