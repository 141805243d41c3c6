package commands

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"hillside-go/internal/printer"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective keyboard configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := options()
			if err != nil {
				return printer.Error(cmd.ErrOrStderr(), "bad options", err)
			}
			out, err := yaml.Marshal(opts.Config)
			if err != nil {
				return printer.Error(cmd.ErrOrStderr(), "cannot encode configuration", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
