// kbsim drives both halves of the keyboard firmware on a host from a
// script of switch presses and prints the resulting HID reports.
package main

import (
	"os"

	"hillside-go/cmd/kbsim/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
