package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/formgrid/pkg/io"
	"github.com/matzehuels/formgrid/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file; stdout when empty
	renderer string // strategy name
	labels   bool   // emit <label> elements
	indent   string // indentation unit
	compact  bool   // no indentation, single line
	preview  bool   // disabled, non-interactive markup
	catalog  string // element catalog file
	noCache  bool
	refresh  bool
}

// renderCommand creates the render command, which turns a snapshot file
// into markup.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a layout snapshot as markup",
		Long: `Render a layout snapshot as markup.

The renderer, label and indentation defaults come from the [render] section
of the config file; flags override them.`,
		Example: `  formgrid render signup.json -r bootstrap -o signup.html
  formgrid render signup.json --preview --compact`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyRenderConfig(cmd, &opts)
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.renderer, "renderer", "r", "", "renderer: html, bootstrap, tailwind, preview")
	cmd.Flags().BoolVar(&opts.labels, "labels", true, "emit labels for input fields")
	cmd.Flags().StringVar(&opts.indent, "indent", "", "indentation unit")
	cmd.Flags().BoolVar(&opts.compact, "compact", false, "render on a single line")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "render a disabled, non-interactive preview")
	cmd.Flags().StringVar(&opts.catalog, "catalog", "", "element catalog file (TOML)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")

	return cmd
}

// applyRenderConfig fills flags the user did not set from the config file.
func (c *CLI) applyRenderConfig(cmd *cobra.Command, opts *renderOpts) {
	cfg := c.Config.Render
	if !cmd.Flags().Changed("renderer") {
		opts.renderer = cfg.Renderer
	}
	if !cmd.Flags().Changed("labels") {
		opts.labels = cfg.IncludeLabels
	}
	if !cmd.Flags().Changed("indent") {
		opts.indent = cfg.Indent
	}
	if opts.compact {
		opts.indent = ""
	}
}

func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	s, err := pkgio.ImportJSON(input)
	if err != nil {
		return err
	}
	reg, catalogHash, err := c.loadRegistry(opts.catalog)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	markup, hit, err := runner.RenderWithCacheInfo(ctx, s, pipeline.Options{
		Renderer:      opts.renderer,
		IncludeLabels: opts.labels,
		Indent:        opts.indent,
		Preview:       opts.preview,
		CatalogHash:   catalogHash,
		TTL:           c.Config.Cache.TTL.Duration,
		Refresh:       opts.refresh,
		Registry:      reg,
		Logger:        logger,
	})
	if err != nil {
		return err
	}

	out, err := c.openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := fmt.Fprintln(out, markup); err != nil {
		return err
	}

	if opts.output != "" {
		prog.done(fmt.Sprintf("Rendered %s with %s", filepath.Base(input), opts.renderer))
		printFile(opts.output)
		printStats(s.Tree().Stats(), hit)
	}
	return nil
}

// defaultOutput derives an output path from input by swapping its
// extension for ext.
func defaultOutput(input, ext string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + "." + ext
}

// fileExists reports whether path names an existing file.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
