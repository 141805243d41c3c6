package types

// Stats is the retained pipeline counter snapshot published by the keyboard
// service.
type Stats struct {
	Scans         uint32 `json:"scans"`
	ScanErrors    uint32 `json:"scan_errors"`
	Events        uint32 `json:"events"`
	FramesTx      uint32 `json:"frames_tx"`
	FramesRx      uint32 `json:"frames_rx"`
	FramesDropped uint32 `json:"frames_dropped"`
	RxOverruns    uint32 `json:"rx_overruns"`
	Reports       uint32 `json:"reports"`
	ReportSkips   uint32 `json:"report_skips"`
	Customs       uint32 `json:"customs"`
	TSms          int64  `json:"ts_ms"`
}
