package layout

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/minuteclass/minuteclass/internal/ui/theme"
)

const (
	MinWidth  = 60
	MinHeight = 20
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// Header is what the header bar shows besides the app name.
type Header struct {
	Title    string
	Streak   int
	Language string
	Accent   color.Color
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage renders the "terminal too small" message.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Terminal too small!\n\nPlease resize to at\nleast %d x %d\n\nCurrent: %d x %d",
			MinWidth, MinHeight, width, height,
		))
}

// RenderHeader renders the application header bar.
func RenderHeader(h Header, width int) string {
	accent := h.Accent
	if accent == nil {
		accent = theme.Primary
	}

	left := lipgloss.NewStyle().
		Foreground(accent).
		Bold(true).
		Render("  Minute Class")

	center := lipgloss.NewStyle().
		Foreground(theme.Text).
		Render(h.Title)

	right := lipgloss.NewStyle().
		Foreground(accent).
		Render(fmt.Sprintf("★ %d", h.Streak)) +
		"   " +
		lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Bold(true).
			Render(strings.ToUpper(h.Language))

	innerWidth := max(width-4, 0)
	leftLen := lipgloss.Width(left)
	centerLen := lipgloss.Width(center)
	rightLen := lipgloss.Width(right)

	leftGap := max((innerWidth-centerLen)/2-leftLen, 1)
	rightGap := max(innerWidth-leftLen-leftGap-centerLen-rightLen, 1)

	content := left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right

	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderTabs renders the top-level navigation, highlighting active.
func RenderTabs(labels []string, active int, accent color.Color, width int) string {
	parts := make([]string, 0, len(labels))
	for i, label := range labels {
		text := fmt.Sprintf(" %d %s ", i+1, label)
		if i == active {
			parts = append(parts, lipgloss.NewStyle().
				Background(accent).
				Foreground(theme.Text).
				Bold(true).
				Render(text))
			continue
		}
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.TextDim).Render(text))
	}
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		Render(strings.Join(parts, " "))
}

// RenderFooter renders the footer with key hints.
func RenderFooter(hints []KeyHint, width int) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		part := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key) +
			" " +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description)
		parts = append(parts, part)
	}

	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render("  " + strings.Join(parts, "   "))
}

// RenderFrame stacks the given sections and pads the content to fill height.
func RenderFrame(top, content, footer string, width, height int) string {
	contentHeight := max(height-lipgloss.Height(top)-lipgloss.Height(footer), 0)

	styled := lipgloss.NewStyle().
		Width(width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)

	return top + "\n" + styled + "\n" + footer
}

// Wrap word-wraps s to width columns.
func Wrap(s string, width int) string {
	return lipgloss.NewStyle().Width(max(width, 10)).Render(s)
}
