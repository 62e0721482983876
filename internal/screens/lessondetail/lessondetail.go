// Package lessondetail shows a whole lesson with scrolling and a bookmark
// toggle.
package lessondetail

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

// Screen renders one lesson.
type Screen struct {
	ctx    context.Context
	ctrl   *controller.Controller
	lesson lessons.Lesson
	offset int
	flash  string
}

var _ screen.Screen = (*Screen)(nil)

// New creates the detail screen. The caller records the read.
func New(ctx context.Context, ctrl *controller.Controller, l lessons.Lesson) *Screen {
	return &Screen{ctx: ctx, ctrl: ctrl, lesson: l}
}

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "up", "k":
		s.offset = max(s.offset-1, 0)
	case "down", "j":
		s.offset++
	case "pgup":
		s.offset = max(s.offset-10, 0)
	case "pgdown", "space":
		s.offset += 10
	case "b":
		t := i18n.For(s.lesson.Language)
		if s.ctrl.ToggleBookmark(s.ctx, s.lesson) {
			s.flash = t.Bookmarked
		} else {
			s.flash = t.Unbookmarked
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	body := components.LessonBody(s.lesson, s.ctrl.IsBookmarked(s.lesson.ID), width-4)
	lines := strings.Split(body, "\n")

	visible := max(height-2, 1)
	s.offset = min(s.offset, max(len(lines)-visible, 0))
	end := min(s.offset+visible, len(lines))

	out := strings.Join(lines[s.offset:end], "\n")
	if s.flash != "" {
		out += "\n" + theme.Hint.Render(s.flash)
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(out)
}

func (s *Screen) Title() string {
	return s.lesson.Category.Label(s.lesson.Language)
}

// Offset returns the first visible line.
func (s *Screen) Offset() int { return s.offset }

func (s *Screen) KeyHints() []layout.KeyHint {
	t := i18n.For(s.ctrl.Language())
	save := t.Save
	if s.ctrl.IsBookmarked(s.lesson.ID) {
		save = t.Remove
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: t.Scroll},
		{Key: "b", Description: save},
		{Key: "Esc", Description: t.Back},
	}
}
