package cli

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/formgrid/pkg/designer"
	"github.com/matzehuels/formgrid/pkg/dom"
	"github.com/matzehuels/formgrid/pkg/drag"
	"github.com/matzehuels/formgrid/pkg/element"
	"github.com/matzehuels/formgrid/pkg/layout"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)

	paneStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
	activePaneStyle = paneStyle.BorderForeground(colorCyan)
	validStyle      = lipgloss.NewStyle().Foreground(colorGreen)
	invalidStyle    = lipgloss.NewStyle().Foreground(colorRed)
)

const (
	markupLines  = 12
	propRequired = "required"
)

// =============================================================================
// DesignModel - Keyboard driven designer
// =============================================================================

type pane int

const (
	panePalette pane = iota
	paneCanvas
)

// canvasItem is one selectable drop target in the canvas pane.
type canvasItem struct {
	el    *dom.Element
	depth int
	label string
}

// DesignModel is the bubbletea model hosting a Designer. The palette lists
// draggable element types; the canvas lists the mirrored rows, columns and
// fields as drop targets. Enter on the palette starts a drag, the cursor
// then hovers targets and enter drops.
type DesignModel struct {
	d      *designer.Designer
	output string

	palette []element.Definition
	items   []canvasItem
	pal     int // palette cursor
	cur     int // canvas cursor
	focus   pane
	// upper aims at the upper (or left) half of the selected target so the
	// drop lands before it.
	upper bool

	preview bool
	status  string
	failed  bool
	saved   bool
	changes *int
}

// NewDesignModel creates a model for d. Save writes to output.
func NewDesignModel(d *designer.Designer, output string) DesignModel {
	m := DesignModel{d: d, output: output, changes: new(int)}
	changes := m.changes
	d.Subscribe(designer.EventFormChanged, func(designer.Notification) { *changes++ })

	reg := d.Registry()
	for _, cat := range reg.Categories() {
		if cat == element.CategoryRoot {
			continue
		}
		defs := reg.ByCategory(cat)
		if cat == element.CategoryLayout {
			m.palette = append(defs, m.palette...)
		} else {
			m.palette = append(m.palette, defs...)
		}
	}
	m.refresh("")
	m.status = "tab switches panes · ⏎ on the palette starts a drag"
	return m
}

// Saved reports whether the layout was written at least once.
func (m DesignModel) Saved() bool { return m.saved }

// Output returns the save path.
func (m DesignModel) Output() string { return m.output }

func (m DesignModel) Init() tea.Cmd {
	return nil
}

func (m DesignModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	dragging := m.d.DragState() != drag.Idle
	switch key.String() {
	case "ctrl+c", "q":
		m.d.HandleDragEnd()
		return m, tea.Quit
	case "tab":
		if !dragging {
			m.focus = 1 - m.focus
		}
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "left", "h":
		m.upper = true
		m.hover()
	case "right", "l":
		m.upper = false
		m.hover()
	case "esc":
		if dragging {
			m.d.HandleDragEnd()
			m.setStatus("drag cancelled", false)
		}
	case "enter":
		switch {
		case dragging:
			m.drop()
		case m.focus == panePalette:
			m.startNew()
		default:
			m.setStatus("press m to move the selected node", false)
		}
	case "m":
		if !dragging && m.focus == paneCanvas {
			m.startMove()
		}
	case "d", "delete":
		if !dragging {
			m.delete()
		}
	case "r":
		if !dragging {
			r := m.d.CreateRow()
			m.refresh(r.ID)
			m.setStatus("added "+r.ID, false)
		}
	case "c":
		if !dragging {
			m.addColumn()
		}
	case "f":
		if !dragging {
			if f, err := m.d.CreateRootElement(); err != nil {
				m.setStatus(err.Error(), true)
			} else {
				m.refresh(f.ID)
				m.setStatus("added root element "+f.ID, false)
			}
		}
	case "*":
		m.toggleRequired()
	case "n":
		m.nextRenderer()
	case "p":
		m.preview = !m.preview
	case "s":
		m.save()
	}
	return m, nil
}

// =============================================================================
// Actions
// =============================================================================

func (m *DesignModel) move(delta int) {
	if m.focus == panePalette && m.d.DragState() == drag.Idle {
		m.pal = clamp(m.pal+delta, len(m.palette))
		return
	}
	m.cur = clamp(m.cur+delta, len(m.items))
	m.hover()
}

func (m *DesignModel) selected() *dom.Element {
	if len(m.items) == 0 {
		return nil
	}
	return m.items[m.cur].el
}

// point returns the pointer position aimed at the selected target.
func (m *DesignModel) point() dom.Point {
	el := m.selected()
	if el == nil {
		return dom.Point{}
	}
	if m.upper {
		return dom.Point{X: el.Rect.X + 1, Y: el.Rect.Y + 1}
	}
	return el.Center()
}

func (m *DesignModel) hover() {
	if m.d.DragState() == drag.Idle {
		return
	}
	if m.d.HandleDragOver(m.selected(), m.point()) {
		t, _ := m.d.DragTarget()
		m.setStatus(fmt.Sprintf("drop %s %s", t.Placement, t.Element), false)
	} else {
		m.setStatus("cannot drop here", true)
	}
}

func (m *DesignModel) startNew() {
	if len(m.palette) == 0 {
		return
	}
	def := m.palette[m.pal]
	if err := m.d.HandleDragStart(def.ID); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.focus = paneCanvas
	m.setStatus("dragging new "+def.ID, false)
	m.hover()
}

func (m *DesignModel) startMove() {
	el := m.selected()
	if el == nil {
		return
	}
	var handle *dom.Element
	for _, c := range el.Children() {
		if c.Kind == dom.KindHandle {
			handle = c
			break
		}
	}
	if handle == nil {
		m.setStatus(el.String()+" cannot be moved", true)
		return
	}
	started, err := m.d.HandleHandleDragStart(handle)
	switch {
	case err != nil:
		m.setStatus(err.Error(), true)
	case started:
		m.setStatus("moving "+el.NodeID, false)
		m.hover()
	}
}

func (m *DesignModel) drop() {
	p, _ := m.d.DragPayload()
	before := *m.changes
	if err := m.d.HandleDrop(m.selected(), m.point()); err != nil {
		m.setStatus(err.Error(), true)
		m.refresh("")
		return
	}
	if *m.changes == before {
		m.setStatus("nothing dropped", true)
		return
	}
	keep := p.SourceNodeID
	if keep == "" {
		keep = m.nodeID()
	}
	m.refresh(keep)
	m.setStatus("layout changed: "+describeStats(m.d.Snapshot().Tree().Stats()), false)
}

func (m *DesignModel) delete() {
	el := m.selected()
	if el == nil || el.NodeID == "" {
		return
	}
	id := el.NodeID
	if m.d.DeleteNode(id) {
		m.refresh("")
		m.setStatus("deleted "+id, false)
	}
}

func (m *DesignModel) addColumn() {
	el := m.selected()
	if el == nil {
		return
	}
	row := el.Closest(dom.KindRow)
	if row == nil {
		m.setStatus("select a row first", true)
		return
	}
	c, err := m.d.AddColumn(row.NodeID)
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.refresh(c.ID)
	m.setStatus("added "+c.ID, false)
}

func (m *DesignModel) toggleRequired() {
	el := m.selected()
	if el == nil || el.Kind != dom.KindField {
		return
	}
	f, _ := m.d.Snapshot().Tree().Node(el.NodeID)
	on, _ := f.Properties[propRequired].(bool)
	if err := m.d.SetProperty(el.NodeID, layout.SectionProperties, propRequired, !on); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.refresh(el.NodeID)
	m.setStatus(fmt.Sprintf("%s required: %v", el.NodeID, !on), false)
}

func (m *DesignModel) nextRenderer() {
	names := m.d.Renderers()
	i := slices.Index(names, m.d.Renderer())
	next := names[(i+1)%len(names)]
	if err := m.d.SetRenderer(next); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.setStatus("renderer: "+next, false)
}

func (m *DesignModel) save() {
	if err := m.d.ExportFile(m.output); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.saved = true
	m.setStatus("saved "+m.output, false)
}

func (m *DesignModel) setStatus(s string, failed bool) {
	m.status, m.failed = s, failed
}

func (m *DesignModel) nodeID() string {
	if el := m.selected(); el != nil {
		return el.NodeID
	}
	return ""
}

// refresh rebuilds the canvas list from the designer's document and puts
// the cursor on keep, if it is still there.
func (m *DesignModel) refresh(keep string) {
	tree := m.d.Snapshot().Tree()
	canvas := m.d.Document().Canvas

	m.items = m.items[:0]
	for el := range canvas.All() {
		item := canvasItem{el: el}
		switch el.Kind {
		case dom.KindRow:
			item.depth, item.label = 0, el.NodeID
		case dom.KindColumn:
			_, c, _ := tree.FindColumn(el.NodeID)
			item.depth, item.label = 1, fmt.Sprintf("%s  %d/%d", el.NodeID, c.Width, layout.GridUnits)
		case dom.KindField:
			_, _, f, _ := tree.FindField(el.NodeID)
			item.depth, item.label = 2, fmt.Sprintf("%s  %s", el.NodeID, f.Type)
		case dom.KindRoot:
			item.depth, item.label = 0, el.NodeID+"  (root)"
		default:
			continue
		}
		m.items = append(m.items, item)
	}
	m.items = append(m.items, canvasItem{el: canvas, label: "end of canvas"})

	if keep != "" {
		for i, it := range m.items {
			if it.el.NodeID == keep {
				m.cur = i
				return
			}
		}
	}
	m.cur = clamp(m.cur, len(m.items))
}

func clamp(i, n int) int {
	return max(0, min(i, n-1))
}

// =============================================================================
// View
// =============================================================================

func (m DesignModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("formgrid designer"))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("renderer %s · %s", m.d.Renderer(), m.output)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ select  ⏎ drag/drop  ←/→ before/after  m move  esc cancel  r row  c column  f root  d delete  * required  n renderer  p preview  s save  q quit"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.viewPalette(), " ", m.viewCanvas()))
	b.WriteString("\n")

	style := validStyle
	if m.failed {
		style = invalidStyle
	}
	b.WriteString(style.Render(m.status))
	b.WriteString("\n")

	if m.preview {
		b.WriteString("\n")
		b.WriteString(paneStyle.Render(clip(m.d.RenderPreview(), markupLines)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m DesignModel) viewPalette() string {
	var b strings.Builder
	b.WriteString(StyleHighlight.Render("Elements"))
	b.WriteString("\n")
	for i, def := range m.palette {
		line := fmt.Sprintf("%-16s %s", def.ID, listDimStyle.Render(def.Category))
		if i == m.pal && m.focus == panePalette {
			b.WriteString(listSelectedStyle.Render("▸ " + line))
		} else {
			b.WriteString(listNormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	style := paneStyle
	if m.focus == panePalette {
		style = activePaneStyle
	}
	return style.Render(strings.TrimRight(b.String(), "\n"))
}

func (m DesignModel) viewCanvas() string {
	var b strings.Builder
	b.WriteString(StyleHighlight.Render("Layout"))
	b.WriteString("\n")

	dragging := m.d.DragState() != drag.Idle
	for i, it := range m.items {
		line := strings.Repeat("  ", it.depth) + it.label
		switch {
		case i == m.cur && m.focus == paneCanvas:
			marker := "▸ "
			if dragging && m.upper {
				marker = "▴ "
			}
			b.WriteString(listSelectedStyle.Render(marker + line))
		case it.el.Kind == dom.KindCanvas:
			b.WriteString(listDimStyle.Render("  " + line))
		default:
			b.WriteString(listNormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	style := paneStyle
	if m.focus == paneCanvas {
		style = activePaneStyle
	}
	return style.Render(strings.TrimRight(b.String(), "\n"))
}

// clip returns the first n lines of s.
func clip(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n") + "\n" + listDimStyle.Render(fmt.Sprintf("… %d more lines", len(lines)-n))
}
