package types

import (
	"time"

	"hillside-go/x/mathx"
)

// Keyboard configuration supplied on topic "config/keyboard".

// MirrorWhen selects which level of the boot-time sense line mirrors columns.
type MirrorWhen string

const (
	MirrorWhenHigh MirrorWhen = "high"
	MirrorWhenLow  MirrorWhen = "low"
	MirrorNever    MirrorWhen = "never"
	MirrorAlways   MirrorWhen = "always"
)

// Mirrored resolves the rule against the sensed level.
func (m MirrorWhen) Mirrored(sensedHigh bool) bool {
	switch m {
	case MirrorWhenLow:
		return !sensedHigh
	case MirrorNever:
		return false
	case MirrorAlways:
		return true
	default:
		return sensedHigh
	}
}

// HoldTapPolicy names how a pending hold-tap reacts to other keys.
type HoldTapPolicy string

const (
	PolicyDefault             HoldTapPolicy = "default"
	PolicyHoldOnOtherKeyPress HoldTapPolicy = "hold_on_other_key_press"
	PolicyPermissiveHold      HoldTapPolicy = "permissive_hold"
)

type KeyboardConfig struct {
	Board string `json:"board" yaml:"board"`

	// Physical matrix of one half.
	Rows int `json:"rows" yaml:"rows"`
	Cols int `json:"cols" yaml:"cols"`
	// Width of the logical layout both halves map into.
	LayoutCols int `json:"layout_cols" yaml:"layout_cols"`

	DebounceScans   int           `json:"debounce_scans" yaml:"debounce_scans"`
	HoldTimeout     int           `json:"hold_timeout" yaml:"hold_timeout"` // ticks
	TapHoldInterval int           `json:"tap_hold_interval" yaml:"tap_hold_interval"`
	HoldTapPolicy   HoldTapPolicy `json:"hold_tap_policy" yaml:"hold_tap_policy"`

	TickPeriod      time.Duration `json:"tick_period" yaml:"tick_period"`
	WatchdogTimeout time.Duration `json:"watchdog_timeout" yaml:"watchdog_timeout"`
	Baud            uint32        `json:"baud" yaml:"baud"`
	MirrorWhen      MirrorWhen    `json:"mirror_when" yaml:"mirror_when"`

	// Upper bound on zero-length HID write retries per report.
	SpinLimit int `json:"spin_limit" yaml:"spin_limit"`
}

// DefaultKeyboardConfig is the Hillside 46 reference configuration.
func DefaultKeyboardConfig() KeyboardConfig {
	return KeyboardConfig{
		Board:           "hillside46",
		Rows:            4,
		Cols:            6,
		LayoutCols:      12,
		DebounceScans:   5,
		HoldTimeout:     200,
		TapHoldInterval: 0,
		HoldTapPolicy:   PolicyHoldOnOtherKeyPress,
		TickPeriod:      time.Millisecond,
		WatchdogTimeout: 10 * time.Millisecond,
		Baud:            38400,
		MirrorWhen:      MirrorWhenHigh,
		SpinLimit:       1000,
	}
}

// Normalize fills zero fields from the defaults and clamps the rest into
// ranges the pipeline can represent (coordinates travel as bytes).
func (c KeyboardConfig) Normalize() KeyboardConfig {
	d := DefaultKeyboardConfig()
	if c.Board == "" {
		c.Board = d.Board
	}
	if c.Rows == 0 {
		c.Rows = d.Rows
	}
	if c.Cols == 0 {
		c.Cols = d.Cols
	}
	if c.LayoutCols == 0 {
		c.LayoutCols = 2 * c.Cols
	}
	c.Rows = mathx.Clamp(c.Rows, 1, 255)
	c.Cols = mathx.Clamp(c.Cols, 1, 255)
	c.LayoutCols = mathx.Clamp(c.LayoutCols, c.Cols, 255)

	if c.DebounceScans == 0 {
		c.DebounceScans = d.DebounceScans
	}
	c.DebounceScans = mathx.Clamp(c.DebounceScans, 1, 1000)
	if c.HoldTimeout == 0 {
		c.HoldTimeout = d.HoldTimeout
	}
	c.HoldTimeout = mathx.Clamp(c.HoldTimeout, 1, 65535)
	c.TapHoldInterval = mathx.Clamp(c.TapHoldInterval, 0, 65535)
	switch c.HoldTapPolicy {
	case PolicyDefault, PolicyHoldOnOtherKeyPress, PolicyPermissiveHold:
	default:
		c.HoldTapPolicy = d.HoldTapPolicy
	}

	if c.TickPeriod <= 0 {
		c.TickPeriod = d.TickPeriod
	}
	c.TickPeriod = mathx.Clamp(c.TickPeriod, 100*time.Microsecond, 100*time.Millisecond)
	if c.WatchdogTimeout <= 0 {
		c.WatchdogTimeout = d.WatchdogTimeout
	}
	c.WatchdogTimeout = mathx.Max(c.WatchdogTimeout, 2*c.TickPeriod)
	if c.Baud == 0 {
		c.Baud = d.Baud
	}
	if c.MirrorWhen == "" {
		c.MirrorWhen = d.MirrorWhen
	}
	if c.SpinLimit <= 0 {
		c.SpinLimit = d.SpinLimit
	}
	return c
}
