package config

import (
	"context"
	"time"

	"github.com/andreyvit/tinyjson"

	"hillside-go/bus"
	"hillside-go/errcode"
	"hillside-go/types"
)

// -----------------------------------------------------------------------------
// String constants (live in flash, not RAM)
// -----------------------------------------------------------------------------

const (
	serviceName  = "config"
	configPrefix = "config"
	keyboardKey  = "keyboard"
	CtxDeviceKey = "device" // context key used for device ID
)

// TopicKeyboard carries the normalised types.KeyboardConfig.
var TopicKeyboard = bus.T(configPrefix, keyboardKey)

// EmbeddedConfigLookup allows overriding how configs are resolved.
var EmbeddedConfigLookup = func(device string) ([]byte, bool) {
	b, ok := embeddedConfigs[device]
	return b, ok
}

// -----------------------------------------------------------------------------
// Config Service
// -----------------------------------------------------------------------------

type ConfigService struct {
	Name string
}

func NewConfigService() *ConfigService {
	return &ConfigService{Name: serviceName}
}

// publishConfig reads the device config from embedded data and publishes
// each top-level key retained on config/<key>. The keyboard section is
// decoded into a normalised types.KeyboardConfig; other sections are
// published as decoded JSON values.
func (s *ConfigService) publishConfig(ctx context.Context, conn *bus.Connection) error {
	device, _ := ctx.Value(CtxDeviceKey).(string)
	if device == "" {
		return &errcode.E{C: errcode.InvalidParams, Op: "config.publish", Msg: "missing device ID in context"}
	}

	raw, ok := EmbeddedConfigLookup(device)
	if !ok || len(raw) == 0 {
		return &errcode.E{C: errcode.NotConfigured, Op: "config.publish", Msg: "no embedded config for device: " + device}
	}

	val, err := decode(raw)
	if err != nil {
		return err
	}
	sections, ok := val.(map[string]any)
	if !ok {
		return &errcode.E{C: errcode.InvalidParams, Op: "config.publish", Msg: "embedded config is not a JSON object"}
	}

	for k, v := range sections {
		if k == keyboardKey {
			kc, err := keyboardConfig(device, v)
			if err != nil {
				return err
			}
			v = kc
		}
		conn.Publish(conn.NewMessage(bus.T(configPrefix, k), v, true))
	}

	return nil
}

// AwaitKeyboard returns the retained keyboard config, waiting up to timeout
// for it. If none arrives, the defaults are published retained in its place
// so that services waiting on TopicKeyboard still start.
func AwaitKeyboard(ctx context.Context, conn *bus.Connection, timeout time.Duration) types.KeyboardConfig {
	sub := conn.Subscribe(TopicKeyboard)
	defer conn.Unsubscribe(sub)

	t := time.NewTimer(timeout)
	defer t.Stop()
	for {
		select {
		case m := <-sub.Channel():
			if kc, ok := m.Payload.(types.KeyboardConfig); ok {
				return kc
			}
		case <-t.C:
			println("[config] no keyboard config, using defaults")
			kc := types.DefaultKeyboardConfig()
			conn.Publish(conn.NewMessage(TopicKeyboard, kc, true))
			return kc
		case <-ctx.Done():
			return types.DefaultKeyboardConfig()
		}
	}
}

// Start launches the config publisher in a goroutine.
func (s *ConfigService) Start(ctx context.Context, conn *bus.Connection) {
	go func() {
		if err := s.publishConfig(ctx, conn); err != nil {
			println("[config] publish failed:", err.Error())
		}
	}()
}

// decode parses one JSON document. tinyjson panics on malformed input.
func decode(raw []byte) (v any, err error) {
	defer func() {
		if r := recover(); r != nil {
			msg, ok := r.(string)
			if !ok {
				msg = "malformed JSON"
			}
			v, err = nil, &errcode.E{C: errcode.InvalidParams, Op: "config.decode", Msg: msg}
		}
	}()
	r := tinyjson.Raw(raw)
	v = r.Value()
	r.EnsureEOF()
	return v, nil
}

// keyboardConfig maps the decoded keyboard section onto a normalised
// types.KeyboardConfig. Numbers arrive as float64; durations are in
// nanoseconds. Unknown keys are ignored.
func keyboardConfig(device string, v any) (types.KeyboardConfig, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return types.KeyboardConfig{}, &errcode.E{C: errcode.InvalidParams, Op: "config.keyboard", Msg: "not an object"}
	}
	kc := types.KeyboardConfig{Board: device}
	for k, v := range m {
		ok := true
		switch k {
		case "board":
			kc.Board, ok = v.(string)
		case "rows":
			kc.Rows, ok = intOf(v)
		case "cols":
			kc.Cols, ok = intOf(v)
		case "layout_cols":
			kc.LayoutCols, ok = intOf(v)
		case "debounce_scans":
			kc.DebounceScans, ok = intOf(v)
		case "hold_timeout":
			kc.HoldTimeout, ok = intOf(v)
		case "tap_hold_interval":
			kc.TapHoldInterval, ok = intOf(v)
		case "spin_limit":
			kc.SpinLimit, ok = intOf(v)
		case "baud":
			var n int
			n, ok = intOf(v)
			ok = ok && n >= 0
			kc.Baud = uint32(n)
		case "tick_period":
			kc.TickPeriod, ok = durationOf(v)
		case "watchdog_timeout":
			kc.WatchdogTimeout, ok = durationOf(v)
		case "hold_tap_policy":
			var p string
			p, ok = v.(string)
			kc.HoldTapPolicy = types.HoldTapPolicy(p)
		case "mirror_when":
			var w string
			w, ok = v.(string)
			kc.MirrorWhen = types.MirrorWhen(w)
		}
		if !ok {
			return kc, &errcode.E{C: errcode.InvalidParams, Op: "config.keyboard", Msg: "bad value for " + k}
		}
	}
	return kc.Normalize(), nil
}

func intOf(v any) (int, bool) {
	f, ok := v.(float64)
	n := int(f)
	return n, ok && float64(n) == f
}

func durationOf(v any) (time.Duration, bool) {
	f, ok := v.(float64)
	return time.Duration(f), ok && f >= 0
}
