// Package mcuctl carries out reset and bootloader requests raised by the
// layout.
package mcuctl

import (
	"context"

	"hillside-go/bus"
	"hillside-go/types"
)

var topicAction = bus.Topic{"kb", "action"}

// Controller resets the MCU. Neither method is expected to return on
// hardware.
type Controller interface {
	Reset()
	Bootloader()
}

type Service struct {
	ctl Controller
}

func New(ctl Controller) *Service { return &Service{ctl: ctl} }

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection) {
	defer conn.Disconnect()
	sub := conn.Subscribe(topicAction)

	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-sub.Channel():
			sig, ok := msg.Payload.(types.CustomSignal)
			if !ok || !sig.Pressed {
				continue
			}
			s.handle(sig.Action)
		}
	}
}

func (s *Service) handle(a types.CustomAction) {
	switch a {
	case types.ActionReset:
		println("[mcu] reset")
		s.ctl.Reset()
	case types.ActionBootloader:
		println("[mcu] entering bootloader")
		s.ctl.Bootloader()
	default:
		println("[mcu] unknown action", uint8(a))
	}
}

// Start the MCU control service.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	go s.serviceLoop(ctx, conn)
	return nil
}
