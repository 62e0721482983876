// Package library lists bookmarked lessons.
package library

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/minuteclass/minuteclass/internal/controller"
	"github.com/minuteclass/minuteclass/internal/lessons"
	"github.com/minuteclass/minuteclass/internal/router"
	"github.com/minuteclass/minuteclass/internal/screen"
	"github.com/minuteclass/minuteclass/internal/screens/lessondetail"
	"github.com/minuteclass/minuteclass/internal/ui/components"
	"github.com/minuteclass/minuteclass/internal/ui/i18n"
	"github.com/minuteclass/minuteclass/internal/ui/layout"
	"github.com/minuteclass/minuteclass/internal/ui/theme"
)

// Screen is the Library view.
type Screen struct {
	ctx       context.Context
	ctrl      *controller.Controller
	bookmarks []lessons.Lesson
	menu      components.Menu
}

var _ screen.Screen = (*Screen)(nil)

func New(ctx context.Context, ctrl *controller.Controller) *Screen {
	s := &Screen{ctx: ctx, ctrl: ctrl}
	s.rebuild()
	return s
}

// Init reloads the list; a detail screen may have removed a bookmark.
func (s *Screen) Init() tea.Cmd {
	s.rebuild()
	return nil
}

func (s *Screen) rebuild() {
	s.bookmarks = s.ctrl.Bookmarks()
	items := make([]components.MenuItem, 0, len(s.bookmarks))
	for _, l := range s.bookmarks {
		items = append(items, components.MenuItem{
			Label:  l.Title,
			Detail: l.Category.Label(l.Language) + " · " + l.Date,
			Action: s.open(l),
		})
	}
	s.menu.SetItems(items)
}

// open records a read and shows the lesson.
func (s *Screen) open(l lessons.Lesson) func() tea.Cmd {
	return func() tea.Cmd {
		s.ctrl.OpenLesson(s.ctx, &l)
		detail := lessondetail.New(s.ctx, s.ctrl, l)
		return func() tea.Msg { return router.PushScreenMsg{Screen: detail} }
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "d", "x", "delete":
			if len(s.bookmarks) > 0 {
				s.ctrl.ToggleBookmark(s.ctx, s.bookmarks[s.menu.Selected])
				s.rebuild()
			}
			return s, nil
		}
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *Screen) View(width, height int) string {
	t := i18n.For(s.ctrl.Language())
	var b strings.Builder
	if len(s.bookmarks) == 0 {
		b.WriteString(theme.Title.Render(t.LibraryEmpty))
		b.WriteString("\n")
		b.WriteString(theme.Subtitle.Width(max(width-4, 20)).Render(t.LibraryHint))
	} else {
		b.WriteString(theme.Title.Render(t.LibraryTitle))
		b.WriteString("\n\n")
		b.WriteString(s.menu.View())
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (s *Screen) Title() string {
	return screen.TabLibrary.Label(s.ctrl.Language())
}

func (s *Screen) KeyHints() []layout.KeyHint {
	t := i18n.For(s.ctrl.Language())
	if len(s.bookmarks) == 0 {
		return []layout.KeyHint{{Key: "Tab", Description: t.Tabs}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: t.Scroll},
		{Key: "Enter", Description: t.Open},
		{Key: "d", Description: t.Remove},
		{Key: "Tab", Description: t.Tabs},
	}
}
