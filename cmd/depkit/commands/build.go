package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build [libraries...]",
		Short: "Build and install the named libraries",
		Long: "Build runs the full pipeline (fetch, extract, patch, configure,\n" +
			"compile, install) for each named library. With no arguments it\n" +
			"builds the override document's build list.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Build(cmd.Context(), args, c.runOptions(cmd))
		},
	}
}
