package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/targets/internal/app"
)

func (c *CLI) newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List declared target kinds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, _ := cmd.Flags().GetString("format")
			return c.app.List(cmd.Context(), cmd.OutOrStdout(), format)
		},
	}
	cmd.Flags().StringP("format", "o", app.FormatText, "Output format: text or json")
	return cmd
}
