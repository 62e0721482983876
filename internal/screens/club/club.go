// Package club lists the Premium Club catalog.
package club

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/minuteclass/minuteclass/internal/controller"
	"github.com/minuteclass/minuteclass/internal/premium"
	"github.com/minuteclass/minuteclass/internal/router"
	"github.com/minuteclass/minuteclass/internal/screen"
	"github.com/minuteclass/minuteclass/internal/screens/premiumdetail"
	"github.com/minuteclass/minuteclass/internal/ui/components"
	"github.com/minuteclass/minuteclass/internal/ui/i18n"
	"github.com/minuteclass/minuteclass/internal/ui/layout"
	"github.com/minuteclass/minuteclass/internal/ui/theme"
)

// Screen is the Premium view.
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

// Init refreshes ownership marks after a purchase in the detail screen.
func (s *Screen) Init() tea.Cmd {
	s.rebuild()
	return nil
}

func (s *Screen) rebuild() {
	lang := s.ctrl.Language()
	t := i18n.For(lang)
	catalog := premium.All()
	items := make([]components.MenuItem, 0, len(catalog))
	for _, item := range catalog {
		detail := item.Type.Label() + " · " + item.Duration + " · " + item.Price
		mi := components.MenuItem{Label: item.Title(lang), Detail: detail}
		if s.ctrl.IsUnlocked(item.ID) {
			mi.Badge = "✓"
			mi.Detail = item.Type.Label() + " · " + t.Owned
		}
		mi.Action = func() tea.Cmd {
			d := premiumdetail.New(s.ctx, s.ctrl, item)
			return func() tea.Msg { return router.PushScreenMsg{Screen: d} }
		}
		items = append(items, mi)
	}
	s.menu.SetItems(items)
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *Screen) View(width, height int) string {
	t := i18n.For(s.ctrl.Language())
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Gold).Bold(true).Render(t.PremiumTitle))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(max(width-4, 20)).Render(t.PremiumSubtitle))
	b.WriteString("\n\n")
	b.WriteString(s.menu.View())
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (s *Screen) Title() string {
	return screen.TabPremium.Label(s.ctrl.Language())
}

func (s *Screen) KeyHints() []layout.KeyHint {
	t := i18n.For(s.ctrl.Language())
	return []layout.KeyHint{
		{Key: "↑↓", Description: t.Scroll},
		{Key: "Enter", Description: t.Open},
		{Key: "Tab", Description: t.Tabs},
	}
}
