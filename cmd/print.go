package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/minuteclass/minuteclass/internal/lessons"
)

var rule = strings.Repeat("─", 60)

func printLesson(w io.Writer, l *lessons.Lesson) {
	meta := []string{l.Category.Label(l.Language), l.Date}
	if l.ReadTime != "" {
		meta = append(meta, l.ReadTime)
	}
	fmt.Fprintln(w, strings.Join(meta, " · "))
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, l.Title)
	fmt.Fprintln(w)
	for _, p := range l.Content {
		fmt.Fprintln(w, p)
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "%s: %s\n", takeawayLabel(l.Language), l.Takeaway)
	if l.Inspiration != "" {
		fmt.Fprintf(w, "%s: %s\n", inspirationLabel(l.Language), l.Inspiration)
	}
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "id: %s\n", l.ID)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func takeawayLabel(lang lessons.Language) string {
	if lang == lessons.LanguageEnglish {
		return "Key takeaway"
	}
	return "Somo kuu"
}

func inspirationLabel(lang lessons.Language) string {
	if lang == lessons.LanguageEnglish {
		return "Inspired by"
	}
	return "Chanzo cha hekima"
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
