package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/formgrid/pkg/layout"
)

type document struct {
	RootElement *layout.Field   `json:"rootElement"`
	Rows        []*layout.Row   `json:"rows"`
	Metadata    layout.Metadata `json:"metadata"`
}

// WriteJSON encodes a snapshot as JSON and writes it to w. Empty metadata
// versions are written as layout.FormatVersion.
func WriteJSON(s layout.Snapshot, w io.Writer) error {
	t := s.Tree() // normalizes nil maps and slices
	out := document{RootElement: t.Root, Rows: t.Rows, Metadata: s.Metadata}
	if out.Rows == nil {
		out.Rows = []*layout.Row{}
	}
	if out.Metadata.Version == "" {
		out.Metadata.Version = layout.FormatVersion
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a snapshot to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(s layout.Snapshot, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(s, f)
}
