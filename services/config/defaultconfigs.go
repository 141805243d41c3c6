package config

// -----------------------------------------------------------------------------
// Embedded configuration
//
// Key: device ID (same value placed in ctx under CtxDeviceKey)
// Val: raw JSON bytes for that device
// Durations are nanoseconds; omitted keyboard fields take the defaults.
// -----------------------------------------------------------------------------

const cfgHillside46 = `{
  "keyboard": {
      "rows": 4,
      "cols": 6,
      "layout_cols": 12,
      "debounce_scans": 5,
      "hold_timeout": 200,
      "hold_tap_policy": "hold_on_other_key_press",
      "tick_period": 1000000,
      "watchdog_timeout": 10000000,
      "baud": 38400,
      "mirror_when": "high",
      "spin_limit": 1000
  },
  "heartbeat": {
      "interval": 5
  }
}`

var embeddedConfigs = map[string][]byte{
	"hillside46": []byte(cfgHillside46),
}
