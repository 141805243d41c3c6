package heartbeat

import (
	"context"
	"time"

	"hillside-go/bus"
	"hillside-go/services/keyboard"
	"hillside-go/types"
	"hillside-go/x/conv"
)

var (
	topicConfigHeartbeat = bus.Topic{"config", "heartbeat"}
	// Stats and actions both arrive under kb/.
	topicKeyboard = bus.Topic{"kb", "+"}
)

const stateTimeout = 100 * time.Millisecond

type Service struct {
	// Out receives each heartbeat line; nil prints to the console.
	Out func(line string)
}

func (s *Service) emit(line string) {
	if s.Out != nil {
		s.Out(line)
		return
	}
	println(line)
}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection) {
	defer conn.Disconnect()
	cfgSub := conn.Subscribe(topicConfigHeartbeat)
	kbSub := conn.Subscribe(topicKeyboard)

	tick := time.NewTicker(1 * time.Second)
	defer tick.Stop()

	var (
		last    types.Stats
		actions uint32
	)
	// loop until context is cancelled, respond to tick, keyboard and config changes
	for {
		select {
		case <-ctx.Done():
			println("[hb] heartbeat service stopping")
			return
		case <-tick.C:
			st, ok := queryState(ctx, conn)
			s.emit(format(last, actions, st, ok))
		case msg := <-kbSub.Channel():
			switch p := msg.Payload.(type) {
			case types.Stats:
				last = p
			case types.CustomSignal:
				if p.Pressed {
					actions++
				}
			}
		case msg := <-cfgSub.Channel():
			// Change tick interval if needed
			if m, ok := msg.Payload.(map[string]any); ok {
				if iv, ok := m["interval"]; ok {
					if interval, ok := iv.(float64); ok && interval > 0 {
						tick.Reset(time.Duration(interval * float64(time.Second)))
						println("[hb] interval set to", interval, "seconds")
					}
				}
			}
		}
	}
}

// queryState asks the keyboard service for its layout state. The keyboard
// may not be running yet, so a timeout is not an error.
func queryState(ctx context.Context, conn *bus.Connection) (keyboard.State, bool) {
	ctx, cancel := context.WithTimeout(ctx, stateTimeout)
	defer cancel()
	reply, err := conn.RequestWait(ctx, conn.NewMessage(keyboard.TopicState, nil, false))
	if err != nil {
		return keyboard.State{}, false
	}
	st, ok := reply.Payload.(keyboard.State)
	return st, ok
}

func format(st types.Stats, actions uint32, ks keyboard.State, haveState bool) string {
	var buf [20]byte
	layer := "-"
	if haveState {
		layer = string(conv.Itoa(buf[:], int64(ks.Layer)))
	}
	return "[hb] layer=" + layer +
		" scans=" + conv.U32(st.Scans) +
		" err=" + conv.U32(st.ScanErrors) +
		" ev=" + conv.U32(st.Events) +
		" tx=" + conv.U32(st.FramesTx) +
		" rx=" + conv.U32(st.FramesRx) +
		" drop=" + conv.U32(st.FramesDropped) +
		" ovr=" + conv.U32(st.RxOverruns) +
		" rep=" + conv.U32(st.Reports) +
		" skip=" + conv.U32(st.ReportSkips) +
		" act=" + conv.U32(actions)
}

// Start the heartbeat service.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	go s.serviceLoop(ctx, conn)
	return nil
}
