package keyboard

import (
	"context"
	"time"

	"hillside-go/bus"
	"hillside-go/keyboard/layout"
	"hillside-go/types"
)

var (
	topicConfigKeyboard = bus.Topic{"config", "keyboard"}

	// TopicStats carries retained types.Stats.
	TopicStats = bus.Topic{"kb", "stats"}
	// TopicAction carries types.CustomSignal from the layout.
	TopicAction = bus.Topic{"kb", "action"}
	// TopicState answers requests with a State.
	TopicState = bus.Topic{"kb", "state", "get"}
)

const statsPeriod = time.Second

// Keymap builds the layer table for a board configuration.
type Keymap func(types.KeyboardConfig) (*layout.Layers, error)

// USBPoller is implemented by transports that must be serviced from the
// main loop rather than an interrupt. Poll reports whether it did work.
type USBPoller interface {
	Poll() bool
}

// Service runs the pipeline as a priority loop. Serial bytes are drained
// first, then USB servicing, then queued layout work, and only then does
// the loop wait for the next scan tick.
type Service struct {
	hw     Hardware
	keymap Keymap
}

func New(hw Hardware, keymap Keymap) *Service {
	return &Service{hw: hw, keymap: keymap}
}

// Start waits for config/keyboard and then runs until ctx is done.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	go s.run(ctx, conn)
	return nil
}

func (s *Service) run(ctx context.Context, conn *bus.Connection) {
	defer conn.Disconnect()
	cfgSub := conn.Subscribe(topicConfigKeyboard)

	cfg, ok := waitConfig(ctx, cfgSub)
	if !ok {
		return
	}

	layers, err := s.keymap(cfg)
	if err != nil {
		println("[kb] keymap:", err.Error())
		return
	}
	p, err := NewPipeline(cfg, s.hw, layers)
	if err != nil {
		println("[kb] pipeline:", err.Error())
		return
	}
	p.OnCustom = func(sig types.CustomSignal) {
		conn.Publish(conn.NewMessage(TopicAction, sig, false))
	}
	println("[kb] ready:", p.Config().Board, "mirrored:", p.Mirrored())
	s.loop(ctx, conn, p)
}

func waitConfig(ctx context.Context, sub *bus.Subscription) (types.KeyboardConfig, bool) {
	for {
		select {
		case <-ctx.Done():
			return types.KeyboardConfig{}, false
		case msg := <-sub.Channel():
			if c, ok := msg.Payload.(types.KeyboardConfig); ok {
				return c, true
			}
			println("[kb] ignoring config payload")
		}
	}
}

func (s *Service) loop(ctx context.Context, conn *bus.Connection, p *Pipeline) {
	reqSub := conn.Subscribe(TopicState)

	scan := time.NewTicker(p.Config().TickPeriod)
	defer scan.Stop()
	stats := time.NewTicker(statsPeriod)
	defer stats.Stop()

	var rxReady <-chan struct{}
	if s.hw.LinkRX != nil {
		rxReady = s.hw.LinkRX.Readable()
	}
	poller, _ := s.hw.USB.(USBPoller)

	for {
		if p.DrainRX() > 0 {
			continue
		}
		if poller != nil && poller.Poll() {
			continue
		}
		if p.Step() {
			continue
		}

		select {
		case <-ctx.Done():
			println("[kb] stopping")
			return
		case <-rxReady:
		case <-scan.C:
			p.ScanTick()
		case <-stats.C:
			conn.Publish(conn.NewMessage(TopicStats, p.Stats(), true))
		case msg := <-reqSub.Channel():
			conn.Reply(msg, p.State(), false)
		}
	}
}
