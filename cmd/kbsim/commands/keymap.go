package commands

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"hillside-go/errcode"
	"hillside-go/internal/printer"
	"hillside-go/keyboard/layout"
	"hillside-go/keymaps/miryoku"
)

func newKeymapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keymap [LAYER]",
		Short: "Print the keymap, or one layer of it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := options()
			if err != nil {
				return printer.Error(cmd.ErrOrStderr(), "bad options", err)
			}
			layers, err := miryoku.Layers(opts.Config)
			if err != nil {
				return printer.Error(cmd.ErrOrStderr(), "cannot build keymap", err)
			}
			first, last := 0, layers.Len()-1
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n < 0 || n >= layers.Len() {
					return printer.Error(cmd.ErrOrStderr(), "no such layer",
						&errcode.E{C: errcode.OutOfBounds, Op: "kbsim.keymap", Msg: args[0]})
				}
				first, last = n, n
			}
			out := cmd.OutOrStdout()
			for l := first; l <= last; l++ {
				printer.Info(out, "layer %d\n", l)
				for r := 0; r < layers.Rows(); r++ {
					cells := make([]string, layers.Cols())
					for c := range cells {
						cells[c] = describe(layers.At(l, r, c))
					}
					printer.Info(out, "  %s\n", strings.Join(cells, " "))
				}
			}
			return nil
		},
	}
}

// describe renders an action in a fixed-width cell.
func describe(a layout.Action) string {
	var s string
	switch a.Kind {
	case layout.KindNoOp:
		s = "xxx"
	case layout.KindTrans:
		s = "___"
	case layout.KindKeyCode:
		s = a.Code.String()
	case layout.KindMultipleKeyCodes:
		names := make([]string, len(a.Codes))
		for i, k := range a.Codes {
			names[i] = k.String()
		}
		s = strings.Join(names, "+")
	case layout.KindLayer:
		s = "L" + strconv.Itoa(a.Layer)
	case layout.KindDefaultLayer:
		s = "D" + strconv.Itoa(a.Layer)
	case layout.KindHoldTap:
		s = describe(a.HoldTap.Tap) + "/" + describe(a.HoldTap.Hold)
	case layout.KindCustom:
		s = a.Custom.String()
	}
	if len(s) < 8 {
		s += strings.Repeat(" ", 8-len(s))
	}
	return s
}
