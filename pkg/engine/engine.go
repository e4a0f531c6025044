package engine

import (
	"github.com/matzehuels/formgrid/pkg/element"
	"github.com/matzehuels/formgrid/pkg/errors"
	"github.com/matzehuels/formgrid/pkg/ident"
	"github.com/matzehuels/formgrid/pkg/layout"
)

// Engine applies structural operations to one layout tree.
// The zero value is not usable; use New.
// Engine is not safe for concurrent use.
type Engine struct {
	tree     *layout.Tree
	ids      *ident.Allocator
	registry *element.Registry
}

// New creates an engine operating on tree. The allocator should already
// know every identifier in tree; use Load to adopt an imported tree.
func New(tree *layout.Tree, ids *ident.Allocator, registry *element.Registry) *Engine {
	if tree == nil {
		tree = layout.New()
	}
	if ids == nil {
		ids = ident.New()
	}
	if registry == nil {
		registry = element.Default()
	}
	return &Engine{tree: tree, ids: ids, registry: registry}
}

// Tree returns the live tree. Callers must not modify it directly.
func (e *Engine) Tree() *layout.Tree { return e.tree }

// Registry returns the element registry fields are created from.
func (e *Engine) Registry() *element.Registry { return e.registry }

// SetRegistry swaps the element registry. Existing fields keep their maps.
func (e *Engine) SetRegistry(r *element.Registry) { e.registry = r }

// Load replaces the tree with t and rehydrates the identifier allocator
// from the identifiers already used in t. Non-empty rows whose widths do
// not sum to layout.GridUnits are redistributed.
func (e *Engine) Load(t *layout.Tree) {
	if t == nil {
		t = layout.New()
	}
	for _, r := range t.Rows {
		if len(r.Columns) > 0 && r.TotalWidth() != layout.GridUnits {
			r.Redistribute()
		}
	}
	e.tree = t
	e.ids.Rehydrate(t.IDs())
}

// =============================================================================
// Rows
// =============================================================================

// CreateRow appends a row holding one full-width column.
func (e *Engine) CreateRow() *layout.Row {
	r := e.newRow()
	e.tree.Rows = append(e.tree.Rows, r)
	return r
}

// InsertRow creates a row with one full-width column at the position t
// describes.
func (e *Engine) InsertRow(t RowTarget) (*layout.Row, error) {
	idx, err := e.rowIndex(t)
	if err != nil {
		return nil, err
	}
	r := e.newRow()
	e.tree.Rows = insertAt(e.tree.Rows, idx, r)
	return r, nil
}

// MoveRow relocates a row to the position t describes. Moving a row
// relative to itself changes nothing.
func (e *Engine) MoveRow(rowID string, t RowTarget) error {
	_, from := e.tree.FindRow(rowID)
	if from < 0 {
		return errors.NotFound("row %q not found", rowID)
	}
	if t.RowID == rowID {
		return nil
	}
	if _, err := e.rowIndex(t); err != nil {
		return err
	}

	r := e.tree.Rows[from]
	e.tree.Rows = removeAt(e.tree.Rows, from)
	idx, _ := e.rowIndex(t)
	e.tree.Rows = insertAt(e.tree.Rows, idx, r)
	return nil
}

func (e *Engine) newRow() *layout.Row {
	return &layout.Row{
		ID:      e.ids.Allocate(element.KeyRow),
		Columns: []*layout.Column{e.newColumn(layout.GridUnits)},
	}
}

func (e *Engine) rowIndex(t RowTarget) (int, error) {
	if t.RowID != "" {
		_, i := e.tree.FindRow(t.RowID)
		if i < 0 {
			return 0, errors.NotFound("row %q not found", t.RowID)
		}
		return sideIndex(i, t.Placement), nil
	}
	if t.Relative < 0.5 {
		return 0, nil
	}
	return len(e.tree.Rows), nil
}

// =============================================================================
// Columns
// =============================================================================

// AddColumn appends a column to a row and redistributes the row's widths.
// It fails with NOT_FOUND for an unknown row and CAPACITY_EXCEEDED when the
// row already has MaxColumns columns.
func (e *Engine) AddColumn(rowID string) (*layout.Column, error) {
	return e.InsertColumn(ColumnTarget{RowID: rowID})
}

// InsertColumn creates a column at the position t describes and
// redistributes the widths of its row.
func (e *Engine) InsertColumn(t ColumnTarget) (*layout.Column, error) {
	row, idx, err := e.columnSlot(t)
	if err != nil {
		return nil, err
	}
	if row.Full() {
		return nil, errors.Capacity("row %q already has %d columns", row.ID, layout.MaxColumns)
	}
	c := e.newColumn(0)
	row.Columns = insertAt(row.Columns, idx, c)
	row.Redistribute()
	return c, nil
}

// MoveColumn relocates a column to the position t describes and
// redistributes every row it touched. It fails with CAPACITY_EXCEEDED when
// the destination is another row that is already full.
func (e *Engine) MoveColumn(columnID string, t ColumnTarget) error {
	src, col, from := e.tree.FindColumn(columnID)
	if col == nil {
		return errors.NotFound("column %q not found", columnID)
	}
	if t.ColumnID == columnID {
		return nil
	}
	dst, _, err := e.columnSlot(t)
	if err != nil {
		return err
	}
	if dst != src && dst.Full() {
		return errors.Capacity("row %q already has %d columns", dst.ID, layout.MaxColumns)
	}

	src.Columns = removeAt(src.Columns, from)
	_, idx, _ := e.columnSlot(t)
	dst.Columns = insertAt(dst.Columns, idx, col)

	src.Redistribute()
	if dst != src {
		dst.Redistribute()
	}
	return nil
}

func (e *Engine) newColumn(width int) *layout.Column {
	return &layout.Column{
		ID:     e.ids.Allocate(element.KeyColumn),
		Width:  width,
		Fields: []*layout.Field{},
	}
}

// columnSlot resolves a column target to its row and insertion index.
func (e *Engine) columnSlot(t ColumnTarget) (*layout.Row, int, error) {
	if t.ColumnID != "" {
		row, _, i := e.tree.FindColumn(t.ColumnID)
		if row == nil {
			return nil, 0, errors.NotFound("column %q not found", t.ColumnID)
		}
		return row, sideIndex(i, t.Placement), nil
	}
	row, _ := e.tree.FindRow(t.RowID)
	if row == nil {
		return nil, 0, errors.NotFound("row %q not found", t.RowID)
	}
	return row, len(row.Columns), nil
}

// =============================================================================
// Fields
// =============================================================================

// CreateField appends a new field of the given element type to a column.
// The field's maps are seeded from the type's defaults and its id (and name
// and label, where the schema has them) set to a fresh identifier.
func (e *Engine) CreateField(typeKey, columnID string) (*layout.Field, error) {
	return e.InsertField(typeKey, FieldTarget{ColumnID: columnID})
}

// InsertField creates a field of the given element type at the position t
// describes.
func (e *Engine) InsertField(typeKey string, t FieldTarget) (*layout.Field, error) {
	def, ok := e.registry.Get(typeKey)
	if !ok {
		return nil, errors.NotFound("element type %q not found", typeKey)
	}
	if def.IsLayout() || def.IsRoot() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "element type %q cannot be placed in a column", typeKey)
	}
	col, idx, err := e.fieldSlot(t)
	if err != nil {
		return nil, err
	}
	f := def.NewField(e.ids.Allocate(typeKey))
	col.Fields = insertAt(col.Fields, idx, f)
	return f, nil
}

// MoveField relocates a field to the position t describes.
func (e *Engine) MoveField(fieldID string, t FieldTarget) error {
	_, src, f, from := e.tree.FindField(fieldID)
	if f == nil {
		return errors.NotFound("field %q not found", fieldID)
	}
	if t.FieldID == fieldID {
		return nil
	}
	dst, _, err := e.fieldSlot(t)
	if err != nil {
		return err
	}

	src.Fields = removeAt(src.Fields, from)
	_, idx, _ := e.fieldSlot(t)
	dst.Fields = insertAt(dst.Fields, idx, f)
	return nil
}

// fieldSlot resolves a field target to its column and insertion index.
func (e *Engine) fieldSlot(t FieldTarget) (*layout.Column, int, error) {
	if t.FieldID != "" {
		_, col, _, i := e.tree.FindField(t.FieldID)
		if col == nil {
			return nil, 0, errors.NotFound("field %q not found", t.FieldID)
		}
		return col, sideIndex(i, t.Placement), nil
	}
	_, col, _ := e.tree.FindColumn(t.ColumnID)
	if col == nil {
		return nil, 0, errors.NotFound("column %q not found", t.ColumnID)
	}
	return col, len(col.Fields), nil
}

// =============================================================================
// Root Element
// =============================================================================

// CreateRootElement creates the tree's root element from the form
// definition. It fails with DUPLICATE if a root element already exists.
func (e *Engine) CreateRootElement() (*layout.Field, error) {
	return e.CreateRootElementOf(element.KeyForm)
}

// CreateRootElementOf creates the root element from a root-category
// definition.
func (e *Engine) CreateRootElementOf(typeKey string) (*layout.Field, error) {
	if e.tree.Root != nil {
		return nil, errors.Duplicate("root element %q already exists", e.tree.Root.ID)
	}
	def, ok := e.registry.Get(typeKey)
	if !ok {
		return nil, errors.NotFound("element type %q not found", typeKey)
	}
	if !def.IsRoot() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "element type %q is not a root element", typeKey)
	}
	e.tree.Root = def.NewField(e.ids.Allocate(typeKey))
	return e.tree.Root, nil
}

// =============================================================================
// Deletion
// =============================================================================

// DeleteNode removes the node with the given id, searching the root
// element, rows, columns and fields in that order. Deleting a column
// redistributes its row; deleting a row's last column leaves an empty row.
// It returns the kind of node removed, or KindNone when id is unknown.
func (e *Engine) DeleteNode(id string) layout.NodeKind {
	loc := e.tree.Locate(id)
	switch loc.Kind {
	case layout.KindRoot:
		e.tree.Root = nil
	case layout.KindRow:
		e.tree.Rows = removeAt(e.tree.Rows, loc.Index)
	case layout.KindColumn:
		loc.Row.Columns = removeAt(loc.Row.Columns, loc.Index)
		loc.Row.Redistribute()
	case layout.KindField:
		loc.Column.Fields = removeAt(loc.Column.Fields, loc.Index)
	}
	return loc.Kind
}
