package types

// CustomAction is a firmware-level request raised by the layout engine and
// carried out by the MCU control collaborator.
type CustomAction uint8

const (
	ActionReset CustomAction = iota + 1
	ActionBootloader
)

func (a CustomAction) String() string {
	switch a {
	case ActionReset:
		return "reset"
	case ActionBootloader:
		return "bootloader"
	default:
		return "unknown"
	}
}

// CustomSignal is published on the action topic. Only Pressed signals are
// acted upon; releases are informational.
type CustomSignal struct {
	Action  CustomAction `json:"action"`
	Pressed bool         `json:"pressed"`
	TSms    int64        `json:"ts_ms"`
}
