// Package commands implements the CLI commands for the depkit build tool.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/appsandbox/depkit/internal/app"
	"github.com/appsandbox/depkit/internal/build"
)

// CLI represents the command line interface for depkit.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a *app.App) *CLI {
	rootCmd := &cobra.Command{
		Use:           "depkit",
		Short:         "Build and install sandbox-safe third-party dependencies",
		Long: "depkit downloads, patches, configures and compiles third-party\n" +
			"libraries into static archives under install/, honoring the\n" +
			"locked option schema and the consumer override document.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("dir", "C", ".", "Workspace directory holding downloads/, sources/, build/ and install/")
	rootCmd.PersistentFlags().StringP("overrides", "o", "", "Path of the consumer override document (default \"../depkit.yaml\")")
	rootCmd.PersistentFlags().IntP("jobs", "j", 0, "Toolchain parallelism (default: CPU count)")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	// A bare invocation builds the override document's build list.
	rootCmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return c.app.Build(cmd.Context(), nil, c.runOptions(cmd))
	}

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOut redirects command output. Used for testing.
func (c *CLI) SetOut(w io.Writer) {
	c.rootCmd.SetOut(w)
}

func (c *CLI) runOptions(cmd *cobra.Command) app.RunOptions {
	dir, _ := cmd.Flags().GetString("dir")
	overrides, _ := cmd.Flags().GetString("overrides")
	jobs, _ := cmd.Flags().GetInt("jobs")
	return app.RunOptions{
		Dir:           dir,
		OverridesPath: overrides,
		Jobs:          jobs,
	}
}
