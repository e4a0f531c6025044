package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/formgrid/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
// The configuration file is loaded and the logger attached to the command
// context before any subcommand runs.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "formgrid designs grid form layouts and renders them as markup",
		Long:         `formgrid composes forms from rows, columns and fields on a twelve unit grid and renders them as plain HTML, Bootstrap or Tailwind markup.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/formgrid/config.toml)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.newCommand())
	root.AddCommand(c.diagramCommand())
	root.AddCommand(c.designCommand())
	root.AddCommand(c.renderersCommand())
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
