package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/minuteclass/minuteclass/internal/lessons"
	"github.com/minuteclass/minuteclass/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen becomes active.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Tab is one of the top-level views.
type Tab int

const (
	TabToday Tab = iota
	TabTopics
	TabLibrary
	TabPremium
)

// Tabs lists the top-level views in navigation order.
var Tabs = []Tab{TabToday, TabTopics, TabLibrary, TabPremium}

var tabLabels = map[Tab][2]string{
	TabToday:   {"Leo", "Today"},
	TabTopics:  {"Mada", "Topics"},
	TabLibrary: {"Maktaba", "Library"},
	TabPremium: {"Premium", "Premium"},
}

// Label returns the tab name in the given language.
func (t Tab) Label(lang lessons.Language) string {
	if lang == lessons.LanguageEnglish {
		return tabLabels[t][1]
	}
	return tabLabels[t][0]
}

// SwitchTabMsg asks the app to make Tab the only screen on the stack.
type SwitchTabMsg struct {
	Tab Tab
}
