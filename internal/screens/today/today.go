// Package today is the home view: a greeting for the time of day and the
// current lesson card.
package today

import (
	"context"
	"errors"
	"strings"

	"charm.land/bubbles/v2/spinner"
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

// LessonLoadedMsg carries the result of a controller refresh.
type LessonLoadedMsg struct {
	Lesson *lessons.Lesson
	Err    error
}

// Screen is the Today view.
type Screen struct {
	ctx     context.Context
	ctrl    *controller.Controller
	spinner spinner.Model
	flash   string
}

var _ screen.Screen = (*Screen)(nil)

func New(ctx context.Context, ctrl *controller.Controller) *Screen {
	return &Screen{
		ctx:  ctx,
		ctrl: ctrl,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.ForSlot(ctrl.Slot()))),
		),
	}
}

// Init starts a fetch when the controller has nothing for the current
// inputs, or resumes the spinner while one is in flight.
func (s *Screen) Init() tea.Cmd {
	switch s.ctrl.State() {
	case controller.StateIdle:
		return s.refresh()
	case controller.StateLoading:
		return s.spinner.Tick
	}
	return nil
}

func (s *Screen) refresh() tea.Cmd {
	s.flash = ""
	return tea.Batch(s.spinner.Tick, s.load)
}

// load runs a refresh. It blocks until the model answers, so it only
// ever runs as a command.
func (s *Screen) load() tea.Msg {
	l, err := s.ctrl.Refresh(s.ctx)
	return LessonLoadedMsg{Lesson: l, Err: err}
}

func (s *Screen) busy() bool {
	st := s.ctrl.State()
	return st == controller.StateIdle || st == controller.StateLoading
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case LessonLoadedMsg:
		// The view reads the controller, so only a superseded fetch needs
		// a follow-up: the request that replaced it may not have started.
		if errors.Is(msg.Err, controller.ErrSuperseded) && s.ctrl.State() == controller.StateIdle {
			return s, s.refresh()
		}
		return s, nil

	case spinner.TickMsg:
		if !s.busy() {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		return s.handleKey(msg.String())
	}
	return s, nil
}

func (s *Screen) handleKey(key string) (screen.Screen, tea.Cmd) {
	t := i18n.For(s.ctrl.Language())
	switch key {
	case "enter", "o":
		l, _, err := s.ctrl.OpenCurrent(s.ctx)
		if err != nil {
			return s, nil
		}
		detail := lessondetail.New(s.ctx, s.ctrl, *l)
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: detail} }
	case "b":
		l := s.ctrl.Lesson()
		if l == nil {
			return s, nil
		}
		if s.ctrl.ToggleBookmark(s.ctx, *l) {
			s.flash = t.Bookmarked
		} else {
			s.flash = t.Unbookmarked
		}
	case "r":
		return s, s.refresh()
	case "c":
		if s.ctrl.ClearCategory() {
			return s, s.refresh()
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	lang := s.ctrl.Language()
	t := i18n.For(lang)
	slot := s.ctrl.Slot()
	accent := theme.ForSlot(slot)

	heading := t.DailyHighlight
	if cat, ok := s.ctrl.Category(); ok {
		heading = cat.Label(lang)
	}

	var b strings.Builder
	b.WriteString(theme.Subtitle.Render(strings.ToUpper(heading) + " • " + lessons.FormatDate(s.ctrl.Now(), lang)))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(accent).Bold(true).Render(t.Greeting(slot)))
	b.WriteString("\n\n")

	switch s.ctrl.State() {
	case controller.StateIdle, controller.StateLoading:
		b.WriteString(s.spinner.View() + " " + theme.Hint.Render(t.Loading))
	case controller.StateFailed:
		b.WriteString(theme.Failure.Render(t.Failed))
		if err := s.ctrl.Err(); err != nil {
			b.WriteString("\n")
			b.WriteString(theme.Hint.Render(components.Excerpt(err.Error(), max(width-8, 20))))
		}
	case controller.StateReady:
		if l := s.ctrl.Lesson(); l != nil {
			b.WriteString(components.LessonCard(*l, s.ctrl.IsBookmarked(l.ID), width-4))
		} else {
			b.WriteString(theme.Hint.Render(t.Empty))
		}
	}

	if s.flash != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render(s.flash))
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (s *Screen) Title() string {
	return screen.TabToday.Label(s.ctrl.Language())
}

func (s *Screen) KeyHints() []layout.KeyHint {
	t := i18n.For(s.ctrl.Language())
	hints := []layout.KeyHint{}
	if s.ctrl.State() == controller.StateReady {
		save := t.Save
		if l := s.ctrl.Lesson(); l != nil && s.ctrl.IsBookmarked(l.ID) {
			save = t.Remove
		}
		hints = append(hints,
			layout.KeyHint{Key: "Enter", Description: t.Open},
			layout.KeyHint{Key: "b", Description: save},
		)
	}
	hints = append(hints, layout.KeyHint{Key: "r", Description: t.Retry})
	if _, ok := s.ctrl.Category(); ok {
		hints = append(hints, layout.KeyHint{Key: "c", Description: t.Clear})
	}
	return append(hints,
		layout.KeyHint{Key: "l", Description: t.Lang},
		layout.KeyHint{Key: "Tab", Description: t.Tabs},
	)
}
