package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/minuteclass/minuteclass/internal/lessons"
	"github.com/minuteclass/minuteclass/internal/ui/i18n"
	"github.com/minuteclass/minuteclass/internal/ui/layout"
	"github.com/minuteclass/minuteclass/internal/ui/theme"
)

const bookmarkMark = "♥"

// LessonMeta renders "CATEGORY • 1 min", with a bookmark mark.
func LessonMeta(l lessons.Lesson, bookmarked bool) string {
	meta := theme.Badge.Render(strings.ToUpper(l.Category.Label(l.Language)))
	if l.ReadTime != "" {
		meta += theme.Subtitle.Render(" • " + l.ReadTime)
	}
	if bookmarked {
		meta += "  " + lipgloss.NewStyle().Foreground(theme.Error).Render(bookmarkMark)
	}
	return meta
}

// LessonCard renders the summary card shown on the Today view: meta line,
// title and the opening of the first paragraph.
func LessonCard(l lessons.Lesson, bookmarked bool, width int) string {
	inner := max(width-8, 20)
	t := i18n.For(l.Language)

	var b strings.Builder
	b.WriteString(LessonMeta(l, bookmarked))
	b.WriteString("\n\n")
	b.WriteString(theme.Title.Width(inner).Render(l.Title))
	if len(l.Content) > 0 {
		b.WriteString("\n\n")
		b.WriteString(theme.Subtitle.Width(inner).Render(Excerpt(l.Content[0], 160)))
	}
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render(t.ReadMore + " →"))

	return theme.Card.Width(inner + 6).Render(b.String())
}

// LessonBody renders a full lesson: meta, title, paragraphs, takeaway and
// inspiration.
func LessonBody(l lessons.Lesson, bookmarked bool, width int) string {
	inner := max(width-4, 20)
	t := i18n.For(l.Language)

	parts := []string{
		LessonMeta(l, bookmarked),
		theme.Title.Width(inner).Render(l.Title),
	}
	for _, p := range l.Content {
		parts = append(parts, layout.Wrap(p, inner))
	}
	parts = append(parts,
		theme.Subtitle.Render(strings.ToUpper(t.Takeaway)),
		theme.Takeaway.Width(inner).Render(l.Takeaway),
	)
	if l.Inspiration != "" {
		parts = append(parts, theme.Hint.Width(inner).Render(t.Source+": "+l.Inspiration))
	}
	return strings.Join(parts, "\n\n")
}

// Excerpt shortens s to at most n runes, ending in an ellipsis when cut.
func Excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n])) + "…"
}
