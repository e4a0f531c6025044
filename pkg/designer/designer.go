package designer

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/formgrid/pkg/dom"
	"github.com/matzehuels/formgrid/pkg/drag"
	"github.com/matzehuels/formgrid/pkg/element"
	"github.com/matzehuels/formgrid/pkg/engine"
	"github.com/matzehuels/formgrid/pkg/errors"
	pkgio "github.com/matzehuels/formgrid/pkg/io"
	"github.com/matzehuels/formgrid/pkg/layout"
	"github.com/matzehuels/formgrid/pkg/observability"
	"github.com/matzehuels/formgrid/pkg/render"
	"github.com/matzehuels/formgrid/pkg/scope"
)

// Options configure a Designer. The zero value is usable.
type Options struct {
	// Registry resolves element types. Nil uses element.Default.
	Registry *element.Registry
	// Renderer names the initial strategy. Empty uses render.HTML.
	Renderer string
	// Render controls markup output. Nil uses render.DefaultOptions.
	Render *render.Options
	// Geometry sizes the mirrored elements. Zero uses dom.DefaultGeometry.
	Geometry dom.Geometry
	// Metadata describes the tree on export. Empty ID and CreatedAt are
	// filled in.
	Metadata layout.Metadata
	Logger   *log.Logger
}

// Designer is the orchestrator of one layout tree.
type Designer struct {
	id        string
	logger    *log.Logger
	container *dom.Element
	geometry  dom.Geometry

	engine  *engine.Engine
	doc     *dom.Document
	guard   *scope.Guard[*dom.Element]
	drag    *drag.Controller
	factory *render.Factory

	renderer   render.Renderer
	renderOpts render.Options
	markup     string
	meta       layout.Metadata

	observers map[Event][]*observer
}

// New creates a designer drawing into container, which must not be nil.
// The designer starts with an empty tree.
func New(container *dom.Element, opts Options) (*Designer, error) {
	if container == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "designer needs a container element")
	}
	if opts.Registry == nil {
		opts.Registry = element.Default()
	}
	if opts.Renderer == "" {
		opts.Renderer = render.HTML
	}
	if opts.Render == nil {
		def := render.DefaultOptions()
		opts.Render = &def
	}
	if opts.Geometry == (dom.Geometry{}) {
		opts.Geometry = dom.DefaultGeometry()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	id := uuid.NewString()
	meta := opts.Metadata
	if meta.ID == "" {
		meta.ID = uuid.NewString()
	}
	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}

	d := &Designer{
		id:         id,
		logger:     opts.Logger.With("designer", id[:8]),
		container:  container,
		geometry:   opts.Geometry,
		engine:     engine.New(nil, nil, opts.Registry),
		factory:    render.NewFactory(opts.Registry),
		renderOpts: *opts.Render,
		meta:       meta,
		observers:  map[Event][]*observer{},
	}
	r, err := d.factory.New(opts.Renderer)
	if err != nil {
		return nil, err
	}
	d.renderer = r
	d.drag = drag.New(d.engine, nil, d.logger)
	d.refresh()
	d.logger.Debug("designer created", "renderer", r.Name(), "types", opts.Registry.Len())
	return d, nil
}

// ID returns the designer's instance id.
func (d *Designer) ID() string { return d.id }

// Container returns the host boundary.
func (d *Designer) Container() *dom.Element { return d.container }

// Document returns the currently mounted canvas and panel. It is replaced
// after every change; do not keep references across calls.
func (d *Designer) Document() *dom.Document { return d.doc }

// Guard returns the scope guard bounding the current document.
func (d *Designer) Guard() *scope.Guard[*dom.Element] { return d.guard }

// Registry returns the element registry in use.
func (d *Designer) Registry() *element.Registry { return d.engine.Registry() }

// Renderer returns the active renderer strategy name.
func (d *Designer) Renderer() string { return d.renderer.Name() }

// Renderers returns the names of all registered strategies.
func (d *Designer) Renderers() []string { return d.factory.Names() }

// Markup returns the output of the last render.
func (d *Designer) Markup() string { return d.markup }

// Snapshot returns a deep copy of the tree with the designer's metadata.
func (d *Designer) Snapshot() layout.Snapshot {
	return d.engine.Tree().Snapshot(d.meta)
}

// SetMetadata replaces the metadata written on export. Empty ID and
// CreatedAt keep their current values.
func (d *Designer) SetMetadata(meta layout.Metadata) {
	if meta.ID == "" {
		meta.ID = d.meta.ID
	}
	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = d.meta.CreatedAt
	}
	d.meta = meta
}

// =============================================================================
// Rendering
// =============================================================================

// Render renders the whole tree with the active strategy and stores the
// result as Markup.
func (d *Designer) Render() string {
	d.markup = d.run(false)
	return d.markup
}

// RenderPreview renders a disabled, non-interactive copy of the tree. It
// does not change Markup.
func (d *Designer) RenderPreview() string {
	return d.run(true)
}

func (d *Designer) run(preview bool) string {
	name := d.renderer.Name()
	hooks := observability.Render()
	hooks.OnRenderStart(name)
	start := time.Now()

	s := d.Snapshot()
	var out string
	if preview {
		out = d.renderer.RenderPreview(s, d.renderOpts)
	} else {
		out = d.renderer.RenderForm(s, d.renderOpts)
	}

	hooks.OnRenderComplete(name, len(out), time.Since(start), nil)
	return out
}

// SetRenderer switches to the named strategy and re-renders. Unknown names
// fail with UNKNOWN_RENDERER and keep the current strategy.
func (d *Designer) SetRenderer(name string) error {
	r, err := d.factory.New(name)
	if err != nil {
		return err
	}
	d.renderer = r
	d.logger.Debug("renderer switched", "renderer", name)
	d.Render()
	return nil
}

// SetRenderOptions replaces the render options and re-renders.
func (d *Designer) SetRenderOptions(opts render.Options) {
	d.renderOpts = opts
	d.Render()
}

// RegisterRenderer adds a strategy under name.
func (d *Designer) RegisterRenderer(name string, ctor render.Constructor) error {
	return d.factory.Register(name, ctor)
}

// ReplaceRegistry swaps the element registry used for new fields and
// rendering. Existing fields are kept as they are.
func (d *Designer) ReplaceRegistry(reg *element.Registry) error {
	if reg == nil {
		return errors.New(errors.ErrCodeInvalidInput, "registry must not be nil")
	}
	d.engine.SetRegistry(reg)
	d.factory.SetRegistry(reg)
	r, err := d.factory.New(d.renderer.Name())
	if err != nil {
		return err
	}
	d.renderer = r
	d.logger.Debug("registry replaced", "types", reg.Len())
	d.Render()
	return nil
}

// =============================================================================
// Import / Export
// =============================================================================

// Import replaces the tree with the snapshot read from r. The snapshot is
// validated completely first; on any error the current tree is left
// untouched. A drag in progress is cancelled.
func (d *Designer) Import(r io.Reader) error {
	s, err := pkgio.ReadJSON(r)
	if err != nil {
		d.logger.Warn("import rejected", "error", err)
		return err
	}
	d.Load(s)
	return nil
}

// ImportFile is Import for a file on disk.
func (d *Designer) ImportFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return d.Import(f)
}

// Load replaces the tree with an already validated snapshot.
func (d *Designer) Load(s layout.Snapshot) {
	d.drag.Cancel()
	d.engine.Load(s.Tree())
	d.SetMetadata(s.Metadata)
	st := d.engine.Tree().Stats()
	d.logger.Info("layout loaded", "rows", st.Rows, "columns", st.Columns, "fields", st.Fields)
	d.changed("load", layout.KindNone, "", nil)
}

// Export writes the current snapshot as JSON to w.
func (d *Designer) Export(w io.Writer) error {
	return pkgio.WriteJSON(d.Snapshot(), w)
}

// ExportFile is Export to a file on disk.
func (d *Designer) ExportFile(path string) error {
	return pkgio.ExportJSON(d.Snapshot(), path)
}

// =============================================================================
// Internals
// =============================================================================

// refresh re-mirrors the tree into the container and re-renders.
func (d *Designer) refresh() {
	if d.doc != nil {
		d.doc.Canvas.Detach()
		d.doc.Panel.Detach()
	}
	doc := dom.Build(d.engine.Tree(), d.geometry)
	d.container.Append(doc.Canvas)
	d.container.Rect = d.container.Rect.Union(doc.Canvas.Rect)
	holder := d.container
	if p := d.container.Parent(); p != nil {
		holder = p
	}
	holder.Append(doc.Panel)
	holder.Rect = holder.Rect.Union(doc.Panel.Rect)
	d.doc = doc

	d.guard = scope.NewGuard(d.container, d.logger, scope.Region[*dom.Element]{Name: dom.PanelRegion, Root: doc.Panel})
	d.drag.SetGuard(d.guard)
	d.Render()
}

// changed records a structural operation. Successful operations refresh
// the document and publish form-changed.
func (d *Designer) changed(op string, kind layout.NodeKind, nodeID string, err error) {
	observability.Designer().OnMutation(op, kind.String(), nodeID, err)
	if err != nil {
		d.logger.Warn("operation failed", "op", op, "node", nodeID, "error", err)
		return
	}
	d.logger.Debug("layout changed", "op", op, "kind", kind, "node", nodeID)
	d.refresh()
	d.emit(Notification{Event: EventFormChanged, Rows: layout.CloneRows(d.engine.Tree().Rows)})
}
