// Package printer writes the simulator's coloured console output.
package printer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"hillside-go/keyboard/report"
	"hillside-go/types"
)

func init() {
	// Colour even when piped; NO_COLOR turns it off.
	if os.Getenv("NO_COLOR") == "" {
		color.NoColor = false
	}
}

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
	faint  = color.New(color.Faint)
)

// Report prints one HID report: its hex bytes, then the keys it holds.
func Report(w io.Writer, tick int, side string, r report.Report) {
	faint.Fprintf(w, "%6d ", tick)
	cyan.Fprintf(w, "%s ", side)
	fmt.Fprintf(w, "%s  ", r.String())
	green.Fprintln(w, Keys(r))
}

// Keys renders a report's modifiers and keys as "LShift+A".
func Keys(r report.Report) string {
	var parts []string
	for bit := 0; bit < 8; bit++ {
		if r.Modifiers()&(1<<bit) != 0 {
			parts = append(parts, modifierNames[bit])
		}
	}
	if r.RolledOver() {
		parts = append(parts, "ErrorRollOver")
	} else {
		for _, k := range r.Keys() {
			parts = append(parts, k.String())
		}
	}
	if len(parts) == 0 {
		return "(none)"
	}
	return strings.Join(parts, "+")
}

var modifierNames = [8]string{"LCtrl", "LShift", "LAlt", "LGui", "RCtrl", "RShift", "RAlt", "RGui"}

func Custom(w io.Writer, tick int, side string, sig types.CustomSignal) {
	edge := "release"
	if sig.Pressed {
		edge = "press"
	}
	faint.Fprintf(w, "%6d ", tick)
	cyan.Fprintf(w, "%s ", side)
	yellow.Fprintf(w, "custom %s %s\n", sig.Action, edge)
}

func Info(w io.Writer, format string, a ...any) {
	fmt.Fprintf(w, format, a...)
}

// Error prints err in red and returns a short error for cobra, which runs
// with SilenceErrors.
func Error(w io.Writer, title string, err error) error {
	red.Fprintf(w, "%s\n", title)
	if err != nil {
		fmt.Fprintf(w, "  %v\n", err)
	}
	return fmt.Errorf("%s", title)
}
