// Package premiumdetail shows one premium item. Locked items offer an
// unlock key in place of a checkout; unlocked ones show their content.
package premiumdetail

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/minuteclass/minuteclass/internal/controller"
	"github.com/minuteclass/minuteclass/internal/premium"
	"github.com/minuteclass/minuteclass/internal/screen"
	"github.com/minuteclass/minuteclass/internal/ui/i18n"
	"github.com/minuteclass/minuteclass/internal/ui/layout"
	"github.com/minuteclass/minuteclass/internal/ui/theme"
)

// Screen is the premium detail view.
type Screen struct {
	ctx  context.Context
	ctrl *controller.Controller
	item premium.Item
	paid bool
	err  error
}

var _ screen.Screen = (*Screen)(nil)

func New(ctx context.Context, ctrl *controller.Controller, item premium.Item) *Screen {
	return &Screen{ctx: ctx, ctrl: ctrl, item: item}
}

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "u", "enter":
		if s.ctrl.IsUnlocked(s.item.ID) {
			return s, nil
		}
		if err := s.ctrl.Unlock(s.ctx, s.item.ID); err != nil {
			s.err = err
			return s, nil
		}
		s.paid = true
		s.err = nil
	}
	return s, nil
}

// Paid reports whether the item was unlocked from this screen.
func (s *Screen) Paid() bool { return s.paid }

func (s *Screen) View(width, height int) string {
	lang := s.ctrl.Language()
	t := i18n.For(lang)
	inner := max(width-4, 20)
	unlocked := s.ctrl.IsUnlocked(s.item.ID)

	var parts []string
	if s.paid {
		parts = append(parts, theme.Owned.Render("✓ "+t.PaySuccess))
	}

	badge := theme.Price.Render(s.item.Price)
	if unlocked {
		badge = theme.Owned.Render(strings.ToUpper(t.UnlockedContent))
	}
	parts = append(parts,
		badge+theme.Subtitle.Render(" • "+s.item.Type.Label()+" • "+s.item.Duration),
		theme.Title.Width(inner).Render(s.item.Title(lang)),
	)

	if unlocked {
		for _, p := range s.item.Paragraphs() {
			parts = append(parts, layout.Wrap(p, inner))
		}
	} else {
		parts = append(parts,
			theme.Subtitle.Render(strings.ToUpper(t.Overview)),
			layout.Wrap(s.item.Description(lang), inner),
			theme.Price.Render("[u] "+t.PayNow(s.item.Price)),
		)
	}

	if s.err != nil {
		parts = append(parts, theme.Failure.Render(s.err.Error()))
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(parts, "\n\n"))
}

func (s *Screen) Title() string {
	return s.item.Title(s.ctrl.Language())
}

func (s *Screen) KeyHints() []layout.KeyHint {
	t := i18n.For(s.ctrl.Language())
	if s.ctrl.IsUnlocked(s.item.ID) {
		return []layout.KeyHint{{Key: "Esc", Description: t.Back}}
	}
	return []layout.KeyHint{
		{Key: "u", Description: t.UnlockNow},
		{Key: "Esc", Description: t.Back},
	}
}
