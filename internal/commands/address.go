package commands

import (
	"github.com/spf13/cobra"
)

func (c *cli) addressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "address",
		Short: "Print payer, program and data account addresses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addrs, err := c.app.Addresses()
			if err != nil {
				return err
			}
			c.out.Outf("Payer:        %s\n", addrs.Payer)
			c.out.Outf("Program:      %s\n", addrs.Program)
			c.out.Outf("Data account: %s\n", addrs.DataAccount)
			return nil
		},
	}
}
