package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/causelab/causeway/pkg/diagram"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// NodePickerModel - Interactive node selection
// =============================================================================

// NodePickerModel is a bubbletea model that lets the user pick one node
// from a diagram, grouped visually by tier.
type NodePickerModel struct {
	Nodes    []diagram.Node
	Cursor   int
	Selected *diagram.Node
}

// newNodePicker builds a picker over the diagram's nodes in tier order.
func newNodePicker(d *diagram.Diagram) NodePickerModel {
	var nodes []diagram.Node
	for _, t := range diagram.TierOrder {
		for _, n := range d.NodesInTier(t) {
			nodes = append(nodes, *n)
		}
	}
	return NodePickerModel{Nodes: nodes}
}

func (m NodePickerModel) Init() tea.Cmd { return nil }

func (m NodePickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Nodes)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = &m.Nodes[m.Cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m NodePickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Node to Trace"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("arrows: navigate  enter: select  q: quit"))
	b.WriteString("\n\n")

	var lastTier diagram.Tier
	for i, n := range m.Nodes {
		if n.Tier != lastTier {
			b.WriteString(listDimStyle.Render(strings.ToUpper(string(n.Tier))))
			b.WriteString("\n")
			lastTier = n.Tier
		}

		cursor := "  "
		if i == m.Cursor {
			cursor = "> "
		}

		line := fmt.Sprintf("%s%-25s  %s", cursor, n.ID, listDimStyle.Render(n.DisplayLabel()))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// pickNode runs the interactive picker and returns the chosen node ID.
// An empty ID means the user quit without selecting.
func pickNode(d *diagram.Diagram) (string, error) {
	model, err := tea.NewProgram(newNodePicker(d)).Run()
	if err != nil {
		return "", fmt.Errorf("node picker: %w", err)
	}
	picker, ok := model.(NodePickerModel)
	if !ok || picker.Selected == nil {
		return "", nil
	}
	return picker.Selected.ID, nil
}
