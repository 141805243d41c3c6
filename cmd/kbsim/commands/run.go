package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"hillside-go/internal/printer"
	"hillside-go/internal/sim"
	"hillside-go/keyboard/report"
	"hillside-go/keymaps/miryoku"
	"hillside-go/types"
)

var settle int

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [SCRIPT]",
		Short: "Run a script against both halves",
		Long: `Run reads a script from SCRIPT, or stdin when omitted, and prints every
report and custom action as it happens.

Examples:
  # Tap the right half's home-row L
  printf 'press R 1 2\nwait 10\nexpect L\n' | kbsim run`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			opts, err := options()
			if err != nil {
				return printer.Error(cmd.ErrOrStderr(), "bad options", err)
			}

			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return printer.Error(cmd.ErrOrStderr(), "cannot open script", err)
				}
				defer f.Close()
				in = f
			}

			s, err := sim.New(opts, miryoku.Layers)
			if err != nil {
				return printer.Error(cmd.ErrOrStderr(), "cannot build keyboard", err)
			}
			s.OnReport = func(tick int, side sim.Side, r report.Report) {
				printer.Report(out, tick, side.String(), r)
			}
			s.OnCustom = func(tick int, side sim.Side, sig types.CustomSignal) {
				printer.Custom(out, tick, side.String(), sig)
			}

			if err := s.RunScript(in); err != nil {
				return printer.Error(cmd.ErrOrStderr(), "script failed", err)
			}
			s.Run(settle)
			printer.Info(out, "%d ticks\n", s.Tick())
			return nil
		},
	}
	cmd.Flags().IntVar(&settle, "settle", 0, "extra ticks to run after the script")
	return cmd
}
