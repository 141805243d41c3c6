package commands

import (
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"hillside-go/errcode"
	"hillside-go/internal/sim"
	"hillside-go/types"
)

var (
	configPath string
	hostSide   string
	senseSide  string
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "kbsim",
		Short: "Simulate the split keyboard firmware on the host",
		Long: `kbsim runs both halves of the keyboard through the same scan, debounce,
link and layout code the firmware uses. The halves are joined by an
in-memory UART and report to fake USB endpoints.

Scripts are read line by line:
  press|release|tap L|R ROW COL
  wait TICKS
  usb L|R on|off
  expect [KEY...]
Lines starting with '#' are comments.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML keyboard configuration")
	root.PersistentFlags().StringVar(&hostSide, "host", "L", "half connected to USB")
	root.PersistentFlags().StringVar(&senseSide, "sense-high", "R", "half whose sense line reads high")
	root.AddCommand(newRunCmd(), newKeymapCmd(), newConfigCmd())
	return root
}

// Execute runs the root command. Errors are printed by the subcommands.
func Execute() error {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

// loadConfig overlays the YAML file, if any, on the defaults.
func loadConfig(path string) (types.KeyboardConfig, error) {
	cfg := types.DefaultKeyboardConfig()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, errcode.Wrap(errcode.NotConfigured, "kbsim.config", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, errcode.Wrap(errcode.InvalidParams, "kbsim.config", err)
	}
	return cfg.Normalize(), nil
}

func options() (sim.Options, error) {
	opts := sim.DefaultOptions()
	cfg, err := loadConfig(configPath)
	if err != nil {
		return opts, err
	}
	opts.Config = cfg
	var ok bool
	if opts.Host, ok = sim.ParseSide(hostSide); !ok {
		return opts, &errcode.E{C: errcode.InvalidParams, Op: "kbsim.host", Msg: "side must be L or R"}
	}
	if opts.SenseHigh, ok = sim.ParseSide(senseSide); !ok {
		return opts, &errcode.E{C: errcode.InvalidParams, Op: "kbsim.sense-high", Msg: "side must be L or R"}
	}
	return opts, nil
}
