package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [kinds...]",
		Short: "Resolve target kinds again whenever declarations change",
		Long: "Resolve target kinds, then watch the declaration directory and resolve again\n" +
			"whenever targets.yaml, a *.target.hcl file or .env changes. Stop with Ctrl-C.\n\n" +
			environmentHelp,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Watch(cmd.Context(), cmd.OutOrStdout(), args, resolveOptions(cmd))
		},
	}
	addResolveFlags(cmd)
	return cmd
}
