package cli

import (
	"context"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/formgrid/pkg/designer"
	"github.com/matzehuels/formgrid/pkg/dom"
	"github.com/matzehuels/formgrid/pkg/errors"
	"github.com/matzehuels/formgrid/pkg/render"
)

// designOpts holds the command-line flags for the design command.
type designOpts struct {
	input    string
	output   string
	renderer string
	catalog  string
	logFile  string
}

// designCommand creates the design command, an interactive terminal designer.
func (c *CLI) designCommand() *cobra.Command {
	var opts designOpts

	cmd := &cobra.Command{
		Use:   "design [file]",
		Short: "Edit a layout interactively in the terminal",
		Long: `Open a layout in the terminal designer.

Drag elements from the palette onto rows, columns and fields with the
keyboard, rearrange and delete nodes, preview the markup and save the
snapshot. Without a file the designer starts from an empty layout.`,
		Example: `  formgrid design signup.json
  formgrid design -o draft.json -r bootstrap`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.input = args[0]
			}
			return c.runDesign(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "save path (default: input file or layout.json)")
	cmd.Flags().StringVarP(&opts.renderer, "renderer", "r", "", "renderer for the markup preview")
	cmd.Flags().StringVar(&opts.catalog, "catalog", "", "element catalog file (TOML)")
	cmd.Flags().StringVar(&opts.logFile, "log", "", "write designer logs to this file")

	return cmd
}

func (c *CLI) runDesign(ctx context.Context, opts designOpts) error {
	if opts.output == "" {
		opts.output = opts.input
	}
	if opts.output == "" {
		opts.output = "layout.json"
	}
	if opts.renderer == "" {
		opts.renderer = c.Config.Render.Renderer
	}

	// The alternate screen owns the terminal, so logs go to a file or nowhere.
	logger := log.New(io.Discard)
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "open log file")
		}
		defer f.Close()
		logger = newLogger(f, c.Logger.GetLevel())
	}

	reg, _, err := c.loadRegistry(opts.catalog)
	if err != nil {
		return err
	}
	d, err := designer.New(dom.New(dom.KindHost, "", dom.Rect{}), designer.Options{
		Registry: reg,
		Renderer: opts.renderer,
		Render:   &render.Options{IncludeLabels: c.Config.Render.IncludeLabels, Indent: c.Config.Render.Indent},
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	if opts.input != "" && fileExists(opts.input) {
		if err := d.ImportFile(opts.input); err != nil {
			return err
		}
	}

	final, err := tea.NewProgram(NewDesignModel(d, opts.output), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "designer")
	}
	if m, ok := final.(DesignModel); ok && m.Saved() {
		printSuccess("Saved %s", m.Output())
		printDetail("%s", describeStats(d.Snapshot().Tree().Stats()))
	}
	return nil
}
