package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove extracted sources and build trees",
		Long: "Clean removes sources/ and build/ from the workspace. The archive\n" +
			"cache under downloads/ and the installed libraries under install/\n" +
			"are kept.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Clean(c.runOptions(cmd))
		},
	}
}
