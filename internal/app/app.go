package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/minuteclass/minuteclass/internal/controller"
	"github.com/minuteclass/minuteclass/internal/logging"
	"github.com/minuteclass/minuteclass/internal/router"
	"github.com/minuteclass/minuteclass/internal/screen"
	"github.com/minuteclass/minuteclass/internal/screens/club"
	"github.com/minuteclass/minuteclass/internal/screens/library"
	"github.com/minuteclass/minuteclass/internal/screens/today"
	"github.com/minuteclass/minuteclass/internal/screens/topics"
	"github.com/minuteclass/minuteclass/internal/streak"
	"github.com/minuteclass/minuteclass/internal/ui/i18n"
	"github.com/minuteclass/minuteclass/internal/ui/layout"
	"github.com/minuteclass/minuteclass/internal/ui/theme"
)

// Options holds the dependencies for the TUI.
type Options struct {
	Controller *controller.Controller
	Log        *logging.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	ctx    context.Context
	ctrl   *controller.Controller
	log    *logging.Logger
	router *router.Router
	tab    screen.Tab
	width  int
	height int
}

func newAppModel(ctx context.Context, opts Options) AppModel {
	log := opts.Log
	if log == nil {
		log = logging.Nop()
	}
	m := AppModel{
		ctx:  ctx,
		ctrl: opts.Controller,
		log:  log.With("component", "tui"),
		tab:  screen.TabToday,
	}
	m.router = router.New(m.root(screen.TabToday))
	return m
}

// root builds a fresh top-level screen, so every tab switch reflects the
// current controller state.
func (m AppModel) root(tab screen.Tab) screen.Screen {
	switch tab {
	case screen.TabTopics:
		return topics.New(m.ctx, m.ctrl)
	case screen.TabLibrary:
		return library.New(m.ctx, m.ctrl)
	case screen.TabPremium:
		return club.New(m.ctx, m.ctrl)
	default:
		return today.New(m.ctx, m.ctrl)
	}
}

func (m AppModel) switchTab(tab screen.Tab) (AppModel, tea.Cmd) {
	m.tab = tab
	return m, m.router.Reset(m.root(tab))
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.SwitchTabMsg:
		return m.switchTab(msg.Tab)

	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		case "tab":
			return m.switchTab(screen.Tabs[(int(m.tab)+1)%len(screen.Tabs)])
		case "shift+tab":
			return m.switchTab(screen.Tabs[(int(m.tab)+len(screen.Tabs)-1)%len(screen.Tabs)])
		case "1", "2", "3", "4":
			return m.switchTab(screen.Tabs[int(key[0]-'1')])
		case "l":
			lang := m.ctrl.ToggleLanguage(m.ctx)
			m.log.Info("language changed", "lang", lang)
			return m.switchTab(m.tab)
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	lang := m.ctrl.Language()
	accent := theme.ForSlot(m.ctrl.Slot())
	if m.tab == screen.TabPremium {
		accent = theme.Gold
	}

	active := m.router.Active()
	header := layout.RenderHeader(layout.Header{
		Title:    active.Title(),
		Streak:   m.currentStreak(),
		Language: string(lang),
		Accent:   accent,
	}, m.width)

	labels := make([]string, len(screen.Tabs))
	for i, tab := range screen.Tabs {
		labels[i] = tab.Label(lang)
	}
	top := header + "\n" + layout.RenderTabs(labels, int(m.tab), accent, m.width)

	t := i18n.For(lang)
	hints := []layout.KeyHint{
		{Key: "Tab", Description: t.Tabs},
		{Key: "Ctrl+C", Description: t.Quit},
	}
	if p, ok := active.(screen.KeyHintProvider); ok {
		hints = append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: t.Quit})
	}
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := max(m.height-lipgloss.Height(top)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	v.SetContent(layout.RenderFrame(top, content, footer, m.width, m.height))
	return v
}

// currentStreak is the stored count while the streak is still alive, else 0.
func (m AppModel) currentStreak() int {
	s := m.ctrl.Streak()
	if !streak.Active(s, m.ctrl.Now()) {
		return 0
	}
	return s.Count
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(ctx, opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
