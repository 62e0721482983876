package lessons

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

var swahiliMonths = [...]string{
	"Januari", "Februari", "Machi", "Aprili", "Mei", "Juni",
	"Julai", "Agosti", "Septemba", "Oktoba", "Novemba", "Desemba",
}

// FormatDate renders t as a long date for the given language:
// "17 Oktoba 2026" in Swahili, "October 17, 2026" in English.
func FormatDate(t time.Time, lang Language) string {
	if lang == LanguageEnglish {
		return t.Format("January 2, 2006")
	}
	return fmt.Sprintf("%d %s %d", t.Day(), swahiliMonths[t.Month()-1], t.Year())
}

// Tag returns the BCP 47 tag for the language.
func (l Language) Tag() language.Tag {
	if l == LanguageEnglish {
		return language.AmericanEnglish
	}
	return language.MustParse("sw-TZ")
}

// Name returns the language's own name for itself, e.g. "Kiswahili".
func (l Language) Name() string {
	base, _ := l.Tag().Base()
	if name := display.Self.Name(base); name != "" {
		return name
	}
	if l == LanguageEnglish {
		return "English"
	}
	return "Kiswahili"
}
