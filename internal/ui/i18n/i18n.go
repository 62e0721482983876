// Package i18n holds the user-facing TUI strings in both languages.
package i18n

import (
	"fmt"

	"github.com/minuteclass/minuteclass/internal/lessons"
)

// Strings is the TUI text for one language.
type Strings struct {
	Loading        string
	Morning        string
	Afternoon      string
	Night          string
	DailyHighlight string
	Failed         string
	Empty          string
	Retry          string
	ReadMore       string
	Takeaway       string
	Source         string
	Bookmarked     string
	Unbookmarked   string

	PickTopic     string
	PickTopicHint string
	Automatic     string
	TodayMark     string

	LibraryTitle string
	LibraryEmpty string
	LibraryHint  string

	PremiumTitle    string
	PremiumSubtitle string
	Owned           string
	UnlockNow       string
	UnlockedContent string
	Overview        string
	PaySuccess      string
	payNow          string

	Streak string
	Back   string
	Quit   string
	Open   string
	Select string
	Lang   string
	Save   string
	Remove string
	Clear  string
	Scroll string
	Tabs   string
}

var sw = Strings{
	Loading:        "AI inachuja hekima ya leo...",
	Morning:        "Habari ya Asubuhi!",
	Afternoon:      "Mchana Mwema!",
	Night:          "Tafakari ya Usiku",
	DailyHighlight: "Somo la Leo",
	Failed:         "Imeshindikana kupata somo.",
	Empty:          "Hakuna somo bado.",
	Retry:          "Jaribu tena",
	ReadMore:       "Soma Makala",
	Takeaway:       "Zingatio la Leo",
	Source:         "Chanzo",
	Bookmarked:     "Limehifadhiwa kwenye Maktaba",
	Unbookmarked:   "Limeondolewa kwenye Maktaba",

	PickTopic:     "Chagua Mada",
	PickTopicHint: "Ungependa kujifunza nini leo? Chagua mada uone somo.",
	Automatic:     "Somo la Leo (kiotomatiki)",
	TodayMark:     "leo",

	LibraryTitle: "Maktaba Yako",
	LibraryEmpty: "Hujajihifadhia masomo bado",
	LibraryHint:  "Masomo utakayoyahifadhi yataonekana hapa kwa ajili ya kusoma baadaye.",

	PremiumTitle:    "Premium Club",
	PremiumSubtitle: "Mafunzo ya kina kutoka kwa wataalamu nguli.",
	Owned:           "Umemiliki",
	UnlockNow:       "Fungua Sasa",
	UnlockedContent: "Maudhui Yaliyofunguliwa",
	Overview:        "Maelezo ya Bidhaa",
	PaySuccess:      "Malipo Yamefanikiwa!",
	payNow:          "Lipia sasa - %s",

	Streak: "siku",
	Back:   "Rudi",
	Quit:   "Toka",
	Open:   "Fungua",
	Select: "Chagua",
	Lang:   "Lugha",
	Save:   "Hifadhi",
	Remove: "Ondoa",
	Clear:  "Somo la leo",
	Scroll: "Sogeza",
	Tabs:   "Kurasa",
}

var en = Strings{
	Loading:        "AI is filtering today's wisdom...",
	Morning:        "Good Morning!",
	Afternoon:      "Good Afternoon!",
	Night:          "Night Reflection",
	DailyHighlight: "Daily Highlight",
	Failed:         "Could not load a lesson.",
	Empty:          "No lesson yet.",
	Retry:          "Retry",
	ReadMore:       "Read Article",
	Takeaway:       "Core Takeaway",
	Source:         "Insight from",
	Bookmarked:     "Saved to your Library",
	Unbookmarked:   "Removed from your Library",

	PickTopic:     "Pick a Topic",
	PickTopicHint: "What would you like to learn today? Pick a topic to start.",
	Automatic:     "Daily lesson (automatic)",
	TodayMark:     "today",

	LibraryTitle: "Your Library",
	LibraryEmpty: "Your library is empty",
	LibraryHint:  "Lessons you bookmark will appear here for later reading.",

	PremiumTitle:    "Premium Club",
	PremiumSubtitle: "In-depth training from world-class experts.",
	Owned:           "Owned",
	UnlockNow:       "Unlock Now",
	UnlockedContent: "Unlocked Content",
	Overview:        "Product Overview",
	PaySuccess:      "Payment Successful!",
	payNow:          "Pay Now - %s",

	Streak: "days",
	Back:   "Back",
	Quit:   "Quit",
	Open:   "Open",
	Select: "Select",
	Lang:   "Language",
	Save:   "Bookmark",
	Remove: "Remove",
	Clear:  "Daily lesson",
	Scroll: "Scroll",
	Tabs:   "Views",
}

// For returns the strings for lang. Unknown languages get Swahili.
func For(lang lessons.Language) Strings {
	if lang == lessons.LanguageEnglish {
		return en
	}
	return sw
}

// Greeting returns the greeting for a time slot.
func (s Strings) Greeting(slot lessons.TimeSlot) string {
	switch slot {
	case lessons.SlotMorning:
		return s.Morning
	case lessons.SlotAfternoon:
		return s.Afternoon
	default:
		return s.Night
	}
}

// PayNow returns the unlock button text for a price.
func (s Strings) PayNow(price string) string {
	return fmt.Sprintf(s.payNow, price)
}
