package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/diagramkit/pkg/layout"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorText)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorMuted)
)

// algorithmHints describe each layout algorithm in the picker.
var algorithmHints = map[layout.Algorithm]string{
	layout.Hierarchical:  "layered, edges flow in one direction",
	layout.ForceDirected: "spring simulation, good for dense graphs",
	layout.Circular:      "shapes evenly spaced on a circle",
	layout.Tree:          "parents centered over their subtrees",
	layout.Grid:          "row-major grid in declaration order",
	layout.Organic:       "force-directed from noise-seeded positions",
	layout.Orthogonal:    "layered with wider spacing for right-angle edges",
}

// =============================================================================
// AlgorithmListModel - Interactive layout algorithm selection
// =============================================================================

// AlgorithmListModel is the bubbletea model for picking a layout algorithm.
type AlgorithmListModel struct {
	Algorithms []layout.Algorithm
	Cursor     int
	Selected   *layout.Algorithm
}

// NewAlgorithmListModel creates a picker over every supported algorithm.
func NewAlgorithmListModel() AlgorithmListModel {
	return AlgorithmListModel{Algorithms: layout.Algorithms()}
}

func (m AlgorithmListModel) Init() tea.Cmd {
	return nil
}

func (m AlgorithmListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Algorithms)-1 {
				m.Cursor++
			}
		case "enter":
			alg := m.Algorithms[m.Cursor]
			m.Selected = &alg
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m AlgorithmListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Layout Algorithm"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, alg := range m.Algorithms {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%-16s", cursor, alg)
		hint := listDimStyle.Render(algorithmHints[alg])
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString(" " + hint + "\n")
	}

	return b.String()
}

// pickAlgorithm runs the picker. ok is false when the user quit without
// choosing.
func pickAlgorithm() (alg layout.Algorithm, ok bool, err error) {
	final, err := tea.NewProgram(NewAlgorithmListModel()).Run()
	if err != nil {
		return "", false, fmt.Errorf("algorithm picker: %w", err)
	}
	m := final.(AlgorithmListModel)
	if m.Selected == nil {
		return "", false, nil
	}
	return *m.Selected, true, nil
}
