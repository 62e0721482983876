package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/minuteclass/minuteclass/internal/lessons"
)

// Palette. The accent follows the time of day.
var (
	Primary   = lipgloss.Color("#4F46E5") // Indigo
	Morning   = lipgloss.Color("#F59E0B") // Amber
	Afternoon = lipgloss.Color("#0EA5E9") // Sky
	Night     = lipgloss.Color("#818CF8") // Soft Indigo
	Gold      = lipgloss.Color("#EAB308")
	Success   = lipgloss.Color("#10B981") // Emerald
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

// ForSlot returns the accent color for a time slot.
func ForSlot(slot lessons.TimeSlot) color.Color {
	switch slot {
	case lessons.SlotMorning:
		return Morning
	case lessons.SlotAfternoon:
		return Afternoon
	default:
		return Night
	}
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Text)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Badge = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Takeaway = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(Primary).
			Foreground(Text).
			Bold(true).
			PaddingLeft(2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Owned = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Price = lipgloss.NewStyle().
		Foreground(Gold).
		Bold(true)

	Failure = lipgloss.NewStyle().
		Foreground(Error)
)
