// Package pipeline renders layout snapshots with caching.
//
// The CLI renders snapshot files into markup or structure diagrams. A
// [Runner] checks the artifact cache before invoking a renderer and stores
// what it produced, so rendering an unchanged file with unchanged options
// is a cache read.
//
//	r := pipeline.NewRunner(c, nil, logger)
//	markup, hit, err := r.RenderWithCacheInfo(ctx, snapshot, pipeline.Options{Renderer: "tailwind"})
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/formgrid/pkg/cache"
	"github.com/matzehuels/formgrid/pkg/element"
	"github.com/matzehuels/formgrid/pkg/errors"
	"github.com/matzehuels/formgrid/pkg/render"
)

// Diagram formats.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
)

// ValidFormats lists the supported diagram formats.
var ValidFormats = map[string]bool{FormatDOT: true, FormatSVG: true}

// Options configure one render.
type Options struct {
	// Markup options
	Renderer      string `json:"renderer"`
	IncludeLabels bool   `json:"include_labels"`
	Indent        string `json:"indent"`
	Preview       bool   `json:"preview,omitempty"`

	// Diagram options
	Format   string `json:"format,omitempty"`
	Detailed bool   `json:"detailed,omitempty"`

	// CatalogHash identifies a user element catalog in cache keys. Empty
	// means the built-in catalog.
	CatalogHash string `json:"catalog_hash,omitempty"`
	// TTL overrides the default cache expiry.
	TTL time.Duration `json:"ttl,omitempty"`
	// Refresh skips cache reads; results are still stored.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Registry *element.Registry `json:"-"`
	Logger   *log.Logger       `json:"-"`
}

// ValidateFormat checks a diagram format.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: dot, svg)", format)
	}
	return nil
}

// SetRenderDefaults fills empty markup options.
func (o *Options) SetRenderDefaults() {
	if o.Renderer == "" {
		o.Renderer = render.HTML
	}
	if o.Registry == nil {
		o.Registry = element.Default()
	}
}

// SetDiagramDefaults fills empty diagram options.
func (o *Options) SetDiagramDefaults() {
	if o.Format == "" {
		o.Format = FormatSVG
	}
}

// RenderOptions returns the renderer's options.
func (o *Options) RenderOptions() render.Options {
	return render.Options{IncludeLabels: o.IncludeLabels, Indent: o.Indent}
}

// ArtifactKeyOpts returns cache key options for markup rendering.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Renderer:      o.Renderer,
		IncludeLabels: o.IncludeLabels,
		Indent:        o.Indent,
		Preview:       o.Preview,
		Catalog:       o.CatalogHash,
	}
}

// DiagramKeyOpts returns cache key options for diagram rendering.
func (o *Options) DiagramKeyOpts() cache.DiagramKeyOpts {
	return cache.DiagramKeyOpts{Format: o.Format, Detailed: o.Detailed}
}

func (o *Options) ttl(def time.Duration) time.Duration {
	if o.TTL > 0 {
		return o.TTL
	}
	return def
}
