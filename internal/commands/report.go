package commands

import (
	"github.com/spf13/cobra"
)

func (c *cli) reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print the number stored in the data account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Report(cmd.Context()).Err
		},
	}
}
