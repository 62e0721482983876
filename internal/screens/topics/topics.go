// Package topics lets the user pick a category for an explicit lesson or
// go back to the automatic daily one.
package topics

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/minuteclass/minuteclass/internal/controller"
	"github.com/minuteclass/minuteclass/internal/lessons"
	"github.com/minuteclass/minuteclass/internal/screen"
	"github.com/minuteclass/minuteclass/internal/ui/components"
	"github.com/minuteclass/minuteclass/internal/ui/i18n"
	"github.com/minuteclass/minuteclass/internal/ui/layout"
	"github.com/minuteclass/minuteclass/internal/ui/theme"
)

const checkMark = "✓"

// Screen is the Topics view.
type Screen struct {
	ctx  context.Context
	ctrl *controller.Controller
	menu components.Menu
}

var _ screen.Screen = (*Screen)(nil)

func New(ctx context.Context, ctrl *controller.Controller) *Screen {
	s := &Screen{ctx: ctx, ctrl: ctrl}
	s.rebuild()
	return s
}

func (s *Screen) Init() tea.Cmd {
	s.rebuild()
	return nil
}

// rebuild lists the automatic entry first, then every category, marking
// the one today's rotation picks for the current slot.
func (s *Screen) rebuild() {
	lang := s.ctrl.Language()
	t := i18n.For(lang)
	rotated := lessons.RotateCategory(s.ctrl.Slot(), s.ctrl.Now())
	selected, explicit := s.ctrl.Category()

	items := []components.MenuItem{{
		Label:  t.Automatic,
		Detail: rotated.Label(lang),
		Action: s.choose(nil),
	}}
	if !explicit {
		items[0].Badge = checkMark
	}
	for _, cat := range lessons.AllCategories() {
		item := components.MenuItem{
			Label:  cat.Label(lang),
			Action: s.choose(&cat),
		}
		if cat == rotated {
			item.Detail = t.TodayMark
		}
		if explicit && cat == selected {
			item.Badge = checkMark
		}
		items = append(items, item)
	}
	s.menu.SetItems(items)
}

// choose selects cat, or the automatic lesson for nil, and moves to the
// Today view where the lesson is fetched.
func (s *Screen) choose(cat *lessons.Category) func() tea.Cmd {
	return func() tea.Cmd {
		if cat == nil {
			s.ctrl.ClearCategory()
		} else {
			s.ctrl.SelectCategory(*cat)
		}
		return func() tea.Msg { return screen.SwitchTabMsg{Tab: screen.TabToday} }
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *Screen) View(width, height int) string {
	t := i18n.For(s.ctrl.Language())
	var b strings.Builder
	b.WriteString(theme.Title.Render(t.PickTopic))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(max(width-4, 20)).Render(t.PickTopicHint))
	b.WriteString("\n\n")
	b.WriteString(s.menu.View())
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (s *Screen) Title() string {
	return screen.TabTopics.Label(s.ctrl.Language())
}

// Cursor returns the highlighted row; row 0 is the automatic lesson.
func (s *Screen) Cursor() int { return s.menu.Selected }

func (s *Screen) KeyHints() []layout.KeyHint {
	t := i18n.For(s.ctrl.Language())
	return []layout.KeyHint{
		{Key: "↑↓", Description: t.Scroll},
		{Key: "Enter", Description: t.Select},
		{Key: "l", Description: t.Lang},
		{Key: "Tab", Description: t.Tabs},
	}
}
