package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/sunburst/pkg/label"
	"github.com/matzehuels/sunburst/pkg/palette"
	"github.com/matzehuels/sunburst/pkg/segment"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// SegmentTreeModel - Interactive segment browser
// =============================================================================

type segmentRow struct {
	node  *segment.Node
	depth int
}

// SegmentTreeModel is the bubbletea model for browsing a bound segment tree.
// Rows expand and collapse like a file tree.
type SegmentTreeModel struct {
	Root     *segment.Node
	Kind     segment.Kind
	Labels   label.Provider
	Expanded map[string]bool
	Cursor   int
	Height   int
	Offset   int

	rows []segmentRow
}

// NewSegmentTreeModel creates a browser with the root expanded.
func NewSegmentTreeModel(root *segment.Node, kind segment.Kind, labels label.Provider) SegmentTreeModel {
	if labels == nil {
		labels = label.Default()
	}
	m := SegmentTreeModel{
		Root:     root,
		Kind:     kind,
		Labels:   labels,
		Expanded: map[string]bool{root.ID: true},
		Height:   15,
	}
	m.rows = m.flatten()
	return m
}

// Selected returns the node under the cursor.
func (m SegmentTreeModel) Selected() *segment.Node {
	if m.Cursor < 0 || m.Cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.Cursor].node
}

// Rows returns the IDs of the visible rows, top to bottom.
func (m SegmentTreeModel) Rows() []string {
	ids := make([]string, len(m.rows))
	for i, r := range m.rows {
		ids[i] = r.node.ID
	}
	return ids
}

func (m SegmentTreeModel) flatten() []segmentRow {
	var rows []segmentRow
	var visit func(n *segment.Node, depth int)
	visit = func(n *segment.Node, depth int) {
		rows = append(rows, segmentRow{node: n, depth: depth})
		if !m.Expanded[n.ID] {
			return
		}
		for _, c := range n.Children {
			visit(c, depth+1)
		}
	}
	visit(m.Root, 0)
	return rows
}

func (m SegmentTreeModel) Init() tea.Cmd {
	return nil
}

func (m SegmentTreeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.rows)-1 {
				m.Cursor++
			}
		case "right", "l", "enter":
			if n := m.Selected(); n != nil && !n.IsLeaf() {
				m.Expanded = copyExpanded(m.Expanded)
				m.Expanded[n.ID] = true
				m.rows = m.flatten()
			}
		case "left", "h":
			m.collapse()
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	m.scroll()
	return m, nil
}

// collapse closes the selected node, or moves to its parent when it is
// already closed.
func (m *SegmentTreeModel) collapse() {
	n := m.Selected()
	if n == nil {
		return
	}
	if m.Expanded[n.ID] && !n.IsLeaf() && n != m.Root {
		m.Expanded = copyExpanded(m.Expanded)
		delete(m.Expanded, n.ID)
		m.rows = m.flatten()
		return
	}
	depth := m.rows[m.Cursor].depth
	for i := m.Cursor - 1; i >= 0; i-- {
		if m.rows[i].depth < depth {
			m.Cursor = i
			return
		}
	}
}

func (m *SegmentTreeModel) scroll() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func copyExpanded(src map[string]bool) map[string]bool {
	dst := make(map[string]bool, len(src)+1)
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func (m SegmentTreeModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Segments · %s", m.Kind)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  →/⏎ expand  ← collapse  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.rows))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.rows[i]
		n := r.node

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		marker := "  "
		if !n.IsLeaf() {
			marker = "+ "
			if m.Expanded[n.ID] {
				marker = "- "
			}
		}
		name := n.Name
		if name == "" {
			name = n.ID
		}
		text, shown := m.Labels.Label(n)
		if !shown || n == m.Root {
			text = "—"
		}
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(palette.Hex(n.Color))).Render("  ")

		rows = append(rows, []string{
			cursor,
			strings.Repeat("  ", r.depth) + marker + name,
			fmt.Sprintf("%g", n.Value),
			label.FormatPercent(n.Share()),
			fmt.Sprintf("%d", m.Kind.RingIndex(n, m.Root)),
			text,
			swatch,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Segment", "Value", "Share", "Ring", "Label", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.rows) {
				return lipgloss.NewStyle()
			}
			n := m.rows[idx].node
			switch {
			case idx == m.Cursor:
				return listSelectedStyle
			case !n.Visible:
				return listDimStyle
			case col == 3 || col == 4:
				return lipgloss.NewStyle().Foreground(colorGray)
			default:
				return listNormalStyle
			}
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.rows))))

	return b.String()
}
