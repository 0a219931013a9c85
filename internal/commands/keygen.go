package commands

import (
	"github.com/spf13/cobra"
)

// keygen [path]: write a new keypair, by default to the payer keypair path.
func (c *cli) keygenCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "keygen [path]",
		Short: "Generate a payer keypair file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.app.Config.Keypair
			if len(args) == 1 {
				path = args[0]
			}
			pub, err := c.app.Keygen(path, c.app.Config.Passphrase, force)
			if err != nil {
				return err
			}
			c.out.Outf("Wrote keypair to %s\nPublic key: {{cyan}}%s{{/}}\n", path, pub)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing keypair file")
	return cmd
}
