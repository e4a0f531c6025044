package cli

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/formgrid/pkg/element"
	"github.com/matzehuels/formgrid/pkg/errors"
	pkgio "github.com/matzehuels/formgrid/pkg/io"
	"github.com/matzehuels/formgrid/pkg/layout"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var catalog string

	cmd := &cobra.Command{
		Use:   "validate [file...]",
		Short: "Check layout snapshots for structural problems",
		Long: `Check layout snapshots for structural problems.

Every file is validated completely and all problems are listed. Fields whose
type the element catalog does not know are reported as warnings; they render
as placeholders.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, _, err := c.loadRegistry(catalog)
			if err != nil {
				return err
			}
			return c.runValidate(cmd.Context(), args, reg)
		},
	}
	cmd.Flags().StringVar(&catalog, "catalog", "", "element catalog file (TOML)")
	return cmd
}

func (c *CLI) runValidate(ctx context.Context, files []string, reg *element.Registry) error {
	logger := loggerFromContext(ctx)
	failed := 0
	for _, path := range files {
		s, err := pkgio.ImportJSON(path)
		if err != nil {
			failed++
			printError("%s", path)
			printDetail("%s", err)
			continue
		}

		printSuccess("%s", path)
		printDetail("%s", describeStats(s.Tree().Stats()))
		if raw, err := os.ReadFile(path); err == nil && pkgio.IsLegacy(raw) {
			printInfo("legacy format; re-export to upgrade to %s", layout.FormatVersion)
		}
		for _, typ := range unknownTypes(s, reg) {
			printWarning("unknown element type %q", typ)
		}
		logger.Debug("validated", "file", path, "title", s.Metadata.Title)
	}

	if failed > 0 {
		return errors.New(errors.ErrCodeValidation, "%d of %d files invalid", failed, len(files))
	}
	return nil
}

// unknownTypes returns the sorted field types of s that reg does not know.
func unknownTypes(s layout.Snapshot, reg *element.Registry) []string {
	var out []string
	t := s.Tree()
	for f := range t.Fields() {
		if !reg.Has(f.Type) && !slices.Contains(out, f.Type) {
			out = append(out, f.Type)
		}
	}
	slices.Sort(out)
	return out
}

// describeStats formats node counts for status lines.
func describeStats(st layout.Stats) string {
	s := fmt.Sprintf("%d rows, %d columns, %d fields", st.Rows, st.Columns, st.Fields)
	if st.Root {
		s += ", root"
	}
	return s
}
