package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/pandaegg/pkg/scene"
)

// List styles
var (
	listHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ObjectListModel - Interactive object selection
// =============================================================================

// ObjectItem is one exportable object in the picker.
type ObjectItem struct {
	Name     string
	Mesh     string
	Vertices int
	Polygons int
	Selected bool // selected in the authoring tool
}

// ObjectListModel is the bubbletea model for choosing which objects to
// export. Space toggles an object, a toggles all, enter confirms.
type ObjectListModel struct {
	Items  []ObjectItem
	Cursor int
	Marked map[int]bool
	Height int
	Offset int

	// Done is set when the user confirmed a non-empty choice.
	Done bool
}

// NewObjectListModel lists the mesh objects of s. Objects selected in the
// scene start out marked; with selectedOnly, only those are listed.
func NewObjectListModel(s *scene.Scene, selectedOnly bool) ObjectListModel {
	m := ObjectListModel{Marked: make(map[int]bool), Height: 15}
	for _, o := range scene.Filter(s.Objects, selectedOnly) {
		if !o.IsMesh() {
			continue
		}
		if o.Selected {
			m.Marked[len(m.Items)] = true
		}
		m.Items = append(m.Items, ObjectItem{
			Name:     o.Name,
			Mesh:     o.Mesh.Name,
			Vertices: len(o.Mesh.Vertices),
			Polygons: len(o.Mesh.Polygons),
			Selected: o.Selected,
		})
	}
	return m
}

// Chosen returns the marked object names in scene order.
func (m ObjectListModel) Chosen() []string {
	var names []string
	for i, item := range m.Items {
		if m.Marked[i] {
			names = append(names, item.Name)
		}
	}
	return names
}

func (m ObjectListModel) Init() tea.Cmd {
	return nil
}

func (m ObjectListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Items)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ", "x":
			m.toggle(m.Cursor)
		case "a":
			marked := make(map[int]bool, len(m.Items))
			if len(m.Chosen()) < len(m.Items) {
				for i := range m.Items {
					marked[i] = true
				}
			}
			m.Marked = marked
		case "enter":
			if len(m.Chosen()) == 0 {
				return m, nil
			}
			m.Done = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m *ObjectListModel) toggle(i int) {
	if i < 0 || i >= len(m.Items) {
		return
	}
	m.Marked = m.with(i, !m.Marked[i])
}

// with returns a copy of Marked with i set to v. Models are values, so the
// map is copied instead of shared with earlier states.
func (m ObjectListModel) with(i int, v bool) map[int]bool {
	out := make(map[int]bool, len(m.Marked)+1)
	for k, marked := range m.Marked {
		if marked {
			out[k] = true
		}
	}
	if v {
		out[i] = true
	} else {
		delete(out, i)
	}
	return out
}

func (m ObjectListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Objects"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  a all  ⏎ export  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Items))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		item := m.Items[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		check := "[ ]"
		if m.Marked[i] {
			check = "[x]"
		}
		mesh := item.Mesh
		if mesh == item.Name {
			mesh = "·"
		}
		rows = append(rows, []string{cursor + check, item.Name, mesh, strconv.Itoa(item.Vertices), strconv.Itoa(item.Polygons)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Object", "Mesh", "Verts", "Polys").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return listHeaderStyle
			}

			idx := m.Offset + row
			if idx >= len(m.Items) {
				return lipgloss.NewStyle()
			}

			base := lipgloss.NewStyle()
			if col >= 3 {
				base = base.Foreground(colorGray).Align(lipgloss.Right)
			}
			switch {
			case idx == m.Cursor && m.Marked[idx]:
				return base.Foreground(colorGreen).Bold(true)
			case idx == m.Cursor:
				return base.Bold(true)
			case m.Marked[idx]:
				return base.Foreground(colorGreen)
			}
			return base.Foreground(colorDim)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d] %d marked", m.Cursor+1, len(m.Items), len(m.Chosen()))))

	return b.String()
}
