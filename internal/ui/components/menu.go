package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/minuteclass/minuteclass/internal/ui/theme"
)

// MenuItem is one row of a Menu. Detail is rendered dimmed after the
// label and Badge right after the cursor.
type MenuItem struct {
	Label  string
	Detail string
	Badge  string
	Action func() tea.Cmd
}

// Menu is a vertical list with a cursor.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a new menu with the given items.
func NewMenu(items []MenuItem) Menu {
	return Menu{Items: items}
}

// SetItems replaces the items, keeping the cursor in range.
func (m *Menu) SetItems(items []MenuItem) {
	m.Items = items
	m.Selected = min(m.Selected, max(len(items)-1, 0))
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Items)-1 {
			m.Selected++
		}
	case "enter":
		if item := m.Items[m.Selected]; item.Action != nil {
			return m, item.Action()
		}
	}

	return m, nil
}

// View renders the menu.
func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		badge := item.Badge
		if badge == "" {
			badge = " "
		}
		if i == m.Selected {
			b.WriteString(theme.Selected.Render("  ▸ " + badge + " " + item.Label))
		} else {
			b.WriteString(theme.Unselected.Render("    " + badge + " " + item.Label))
		}
		if item.Detail != "" {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("  " + item.Detail))
		}
		b.WriteString("\n")
	}
	return b.String()
}
