package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/formgrid/pkg/element"
	"github.com/matzehuels/formgrid/pkg/errors"
	"github.com/matzehuels/formgrid/pkg/render"
)

// renderersCommand creates the renderers command.
func (c *CLI) renderersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "renderers",
		Short: "List the available markup renderers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := render.NewFactory(nil).Names()
			rows := make([][]string, 0, len(names))
			for _, name := range names {
				mark := ""
				if name == c.Config.Render.Renderer {
					mark = iconSuccess
				}
				rows = append(rows, []string{name, rendererDescriptions[name], mark})
			}
			fmt.Fprintln(c.Stdout, renderTable([]string{"Renderer", "Output", "Default"}, rows))
			return nil
		},
	}
}

var rendererDescriptions = map[string]string{
	render.HTML:      "plain markup with minimal class names",
	render.Bootstrap: "Bootstrap 5 grid and form classes",
	render.Tailwind:  "Tailwind utility classes",
	render.Preview:   "disabled, non-interactive preview",
}

// catalogCommand creates the catalog command.
func (c *CLI) catalogCommand() *cobra.Command {
	var (
		path     string
		category string
	)

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the element types layouts can use",
		Long: `List the element types layouts can use.

The built-in catalog is used unless --catalog or the [catalog] section of
the config file names a TOML catalog file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, _, err := c.loadRegistry(path)
			if err != nil {
				return err
			}
			if category != "" && !slices.Contains(reg.Categories(), category) {
				return errors.NotFound("no category %q (have %s)", category, strings.Join(reg.Categories(), ", "))
			}
			fmt.Fprintln(c.Stdout, catalogTable(reg, category))
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "catalog", "", "element catalog file (TOML)")
	cmd.Flags().StringVar(&category, "category", "", "only list one category")
	return cmd
}

// catalogTable renders the definitions of reg, optionally limited to one
// category, grouped by category.
func catalogTable(reg *element.Registry, category string) string {
	var rows [][]string
	for _, cat := range reg.Categories() {
		if category != "" && cat != category {
			continue
		}
		for _, d := range reg.ByCategory(cat) {
			rows = append(rows, []string{d.ID, cat, "<" + d.Tag + ">", d.Label})
		}
	}
	return renderTable([]string{"Type", "Category", "Tag", "Label"}, rows)
}
