package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chmouel/lazystatus/internal/tree"
)

const helpLine = "j/k move · enter toggle/open · t tree/flat · o show at HEAD · r refresh · q quit"

func (m *Model) treeWidth() int {
	w := m.width / 2
	if w < 20 {
		w = m.width
	}
	return w
}

func (m *Model) contentWidth() int {
	w := m.width - m.treeWidth() - 2
	if w < 0 {
		w = 0
	}
	return w
}

func (m *Model) paneHeight() int {
	// Header and footer each take one line.
	h := m.height - 4
	if h < 0 {
		h = 0
	}
	return h
}

// View renders the tree pane next to the content pane. Rendering is pure:
// nothing here mutates model state.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "loading..."
	}

	header := lipgloss.NewStyle().Foreground(m.th.Accent).Bold(true).Render("lazystatus") +
		lipgloss.NewStyle().Foreground(m.th.MutedFg).Render("  "+m.gitRoot)

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderTreePane(), m.renderContentPane())

	footer := lipgloss.NewStyle().Foreground(m.th.MutedFg).Render(helpLine)
	if m.errMsg != "" {
		footer = lipgloss.NewStyle().Foreground(m.th.ErrorFg).Render(m.errMsg)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m *Model) renderTreePane() string {
	style := lipgloss.NewStyle().
		Width(m.treeWidth()).
		Height(m.paneHeight()).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.th.Border)

	if len(m.visible) == 0 {
		if len(m.records) == 0 && m.errMsg == "" {
			return style.Render(lipgloss.NewStyle().Foreground(m.th.SuccessFg).Render("Clean working tree"))
		}
		return style.Render(lipgloss.NewStyle().Foreground(m.th.MutedFg).Render("No files to display"))
	}

	sel := tree.Selection{}
	if node := m.selectedNode(); node != nil {
		sel = tree.Selection{Path: node.Path, Group: node.Group}
	}

	top, bottom := m.visibleWindow()
	lines := make([]string, 0, bottom-top)
	for _, node := range m.visible[top:bottom] {
		lines = append(lines, m.formatter.Format(node, m.treeWidth(), sel))
	}
	return style.Render(strings.Join(lines, "\n"))
}

// visibleWindow scrolls the node list so the cursor stays on screen.
func (m *Model) visibleWindow() (int, int) {
	h := m.paneHeight()
	if h <= 0 || len(m.visible) <= h {
		return 0, len(m.visible)
	}
	top := m.cursor - h/2
	if top < 0 {
		top = 0
	}
	if top+h > len(m.visible) {
		top = len(m.visible) - h
	}
	return top, top + h
}

func (m *Model) renderContentPane() string {
	style := lipgloss.NewStyle().
		Width(m.contentWidth()).
		Height(m.paneHeight()).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.th.Border)

	if m.loadingContent {
		return style.Render(m.spin.View() + " fetching...")
	}
	if m.contentTitle == "" {
		return style.Render(lipgloss.NewStyle().Foreground(m.th.MutedFg).Render("o: show selected file at HEAD"))
	}

	title := lipgloss.NewStyle().Foreground(m.th.Cyan).Render(m.contentTitle)
	return style.Render(title + "\n" + m.viewport.View())
}
