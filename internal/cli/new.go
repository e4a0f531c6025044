package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/formgrid/pkg/designer"
	"github.com/matzehuels/formgrid/pkg/dom"
	"github.com/matzehuels/formgrid/pkg/errors"
	"github.com/matzehuels/formgrid/pkg/layout"
)

// newOpts holds the command-line flags for the new command.
type newOpts struct {
	output      string
	title       string
	description string
	rows        int
	columns     int
	fields      []string // element types placed in the first column
	root        bool     // add a form root element
	force       bool
	catalog     string
}

// newCommand creates the new command, which writes a starter snapshot.
func (c *CLI) newCommand() *cobra.Command {
	opts := newOpts{rows: 1, columns: 1, root: true}

	cmd := &cobra.Command{
		Use:   "new [file]",
		Short: "Create a starter layout snapshot",
		Example: `  formgrid new signup.json --title Signup --fields input-text,input-email
  formgrid new grid.json --rows 3 --columns 2 --root=false`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.output = args[0]
			}
			return c.runNew(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.title, "title", "", "layout title")
	cmd.Flags().StringVar(&opts.description, "description", "", "layout description")
	cmd.Flags().IntVar(&opts.rows, "rows", opts.rows, "number of rows")
	cmd.Flags().IntVar(&opts.columns, "columns", opts.columns, "columns per row (1-12)")
	cmd.Flags().StringSliceVar(&opts.fields, "fields", nil, "element types to place in the first column")
	cmd.Flags().BoolVar(&opts.root, "root", opts.root, "add a form root element")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "overwrite an existing file")
	cmd.Flags().StringVar(&opts.catalog, "catalog", "", "element catalog file (TOML)")

	return cmd
}

func (c *CLI) runNew(ctx context.Context, opts newOpts) error {
	if opts.rows < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "--rows must not be negative")
	}
	if opts.columns < 1 || opts.columns > layout.MaxColumns {
		return errors.New(errors.ErrCodeInvalidInput, "--columns must be between 1 and %d", layout.MaxColumns)
	}
	if opts.output != "" && fileExists(opts.output) && !opts.force {
		return errors.Duplicate("%s already exists (use --force to overwrite)", opts.output)
	}

	reg, _, err := c.loadRegistry(opts.catalog)
	if err != nil {
		return err
	}
	d, err := designer.New(dom.New(dom.KindHost, "", dom.Rect{}), designer.Options{
		Registry: reg,
		Metadata: layout.Metadata{Title: opts.title, Description: opts.description},
		Logger:   loggerFromContext(ctx),
	})
	if err != nil {
		return err
	}
	if err := buildStarter(d, opts); err != nil {
		return err
	}

	out, err := c.openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := d.Export(out); err != nil {
		return err
	}

	if opts.output != "" {
		printSuccess("Created %s", opts.output)
		printDetail("%s", describeStats(d.Snapshot().Tree().Stats()))
		printNextStep("Render it", fmt.Sprintf("%s render %s", appName, opts.output))
	}
	return nil
}

// buildStarter fills d with the requested grid.
func buildStarter(d *designer.Designer, opts newOpts) error {
	for range opts.rows {
		r := d.CreateRow()
		for range opts.columns - 1 {
			if _, err := d.AddColumn(r.ID); err != nil {
				return err
			}
		}
	}
	if len(opts.fields) > 0 {
		if opts.rows == 0 {
			d.CreateRow()
		}
		first := d.Snapshot().Rows[0].Columns[0].ID
		for _, typ := range opts.fields {
			if _, err := d.CreateField(typ, first); err != nil {
				return err
			}
		}
	}
	if opts.root {
		if _, err := d.CreateRootElement(); err != nil {
			return err
		}
	}
	return nil
}
