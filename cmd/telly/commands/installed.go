package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newInstalledCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "installed [device]",
		Short: "Print where the last install-only deploy put the application",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var deviceID string
			if len(args) == 1 {
				deviceID = args[0]
			}

			record, err := c.app.Installed(cmd.Context(), deviceID)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), record.AppPath)
			return nil
		},
	}
}
