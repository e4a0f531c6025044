package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/formgrid/pkg/io"
	"github.com/matzehuels/formgrid/pkg/pipeline"
)

// diagramOpts holds the command-line flags for the diagram command.
type diagramOpts struct {
	output   string
	format   string
	detailed bool
	catalog  string
	noCache  bool
}

// diagramCommand creates the diagram command, which draws the structure of
// a snapshot as a node-link graph.
func (c *CLI) diagramCommand() *cobra.Command {
	opts := diagramOpts{format: pipeline.FormatSVG}

	cmd := &cobra.Command{
		Use:   "diagram [file]",
		Short: "Draw the row/column/field structure of a snapshot",
		Long: `Draw the row/column/field structure of a snapshot with Graphviz.

Fields whose type the element catalog does not know are drawn dashed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateFormat(opts.format); err != nil {
				return err
			}
			if opts.output == "" {
				opts.output = defaultOutput(args[0], opts.format)
			}
			return c.runDiagram(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input with the format's extension, - for stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg, dot")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include field properties")
	cmd.Flags().StringVar(&opts.catalog, "catalog", "", "element catalog file (TOML)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

func (c *CLI) runDiagram(ctx context.Context, input string, opts diagramOpts) error {
	logger := loggerFromContext(ctx)

	s, err := pkgio.ImportJSON(input)
	if err != nil {
		return err
	}
	reg, _, err := c.loadRegistry(opts.catalog)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Drawing %s diagram...", opts.format))
	spinner.Start()
	data, hit, err := runner.DiagramWithCacheInfo(ctx, s, pipeline.Options{
		Format:   opts.format,
		Detailed: opts.detailed,
		TTL:      c.Config.Cache.TTL.Duration,
		Registry: reg,
		Logger:   logger,
	})
	spinner.Stop()
	if err != nil {
		return err
	}

	path := opts.output
	if path == "-" {
		path = ""
	}
	out, err := c.openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := out.Write(data); err != nil {
		return err
	}

	if path != "" {
		printSuccess("Generated %s diagram", opts.format)
		printFile(path)
		printStats(s.Tree().Stats(), hit)
	}
	return nil
}
