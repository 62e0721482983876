package lessons

import (
	"testing"
	"time"
)

func at(hour, min int) time.Time {
	return time.Date(2026, time.October, 17, hour, min, 0, 0, time.Local)
}

func TestSlotAt_Boundaries(t *testing.T) {
	tests := []struct {
		hour, min int
		want      TimeSlot
	}{
		{0, 0, SlotNight},
		{4, 59, SlotNight},
		{5, 0, SlotMorning},
		{11, 59, SlotMorning},
		{12, 0, SlotAfternoon},
		{17, 59, SlotAfternoon},
		{18, 0, SlotNight},
		{23, 59, SlotNight},
	}
	for _, tt := range tests {
		if got := SlotAt(at(tt.hour, tt.min)); got != tt.want {
			t.Errorf("SlotAt(%02d:%02d) = %s, want %s", tt.hour, tt.min, got, tt.want)
		}
	}
}

func TestRotateCategory_Deterministic(t *testing.T) {
	start := time.Date(2026, time.January, 1, 9, 0, 0, 0, time.UTC)
	for d := 0; d < 366; d++ {
		day := start.AddDate(0, 0, d)
		for _, slot := range []TimeSlot{SlotMorning, SlotAfternoon, SlotNight} {
			a := RotateCategory(slot, day)
			b := RotateCategory(slot, day.Add(3*time.Hour))
			if a != b {
				t.Fatalf("%s %s: got %s then %s", DateKey(day), slot, a, b)
			}
		}
	}
}

func TestRotateCategory_KnownValues(t *testing.T) {
	// January 1st is day 1 of the year.
	jan1 := time.Date(2026, time.January, 1, 8, 0, 0, 0, time.UTC)
	cats := AllCategories()

	if got := RotateCategory(SlotMorning, jan1); got != cats[1] {
		t.Errorf("morning Jan 1 = %s, want %s", got, cats[1])
	}
	if got := RotateCategory(SlotAfternoon, jan1); got != cats[6] {
		t.Errorf("afternoon Jan 1 = %s, want %s", got, cats[6])
	}
	if got := RotateCategory(SlotNight, jan1); got != cats[4] {
		t.Errorf("night Jan 1 = %s, want %s", got, cats[4])
	}
}

func TestRotateCategory_SlotsDifferSameDay(t *testing.T) {
	n := len(AllCategories())
	if n < 3 {
		t.Fatalf("need at least 3 categories, have %d", n)
	}

	seen := map[int]TimeSlot{}
	for slot, off := range slotOffsets {
		m := off % n
		if other, dup := seen[m]; dup {
			t.Fatalf("offsets for %s and %s collide modulo %d", slot, other, n)
		}
		seen[m] = slot
	}

	day := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)
	m := RotateCategory(SlotMorning, day)
	a := RotateCategory(SlotAfternoon, day)
	ni := RotateCategory(SlotNight, day)
	if m == a || a == ni || m == ni {
		t.Errorf("slots share a category: %s %s %s", m, a, ni)
	}
}

func TestRotateAmong_Empty(t *testing.T) {
	if _, ok := rotateAmong(nil, SlotMorning, time.Now()); ok {
		t.Error("expected no category for empty set")
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
		ok   bool
	}{
		{"finance", CategoryFinance, true},
		{"Fedha", CategoryFinance, true},
		{"Leadership", CategoryLeadership, true},
		{"Hekima ya Kiroho", CategorySpiritual, true},
		{"cooking", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseCategory(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseCategory(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLanguage(t *testing.T) {
	if LanguageSwahili.Other() != LanguageEnglish || LanguageEnglish.Other() != LanguageSwahili {
		t.Error("Other should flip between sw and en")
	}
	if _, ok := ParseLanguage("fr"); ok {
		t.Error("fr should not parse")
	}
	if SlotNight.Label(LanguageSwahili) != "usiku" {
		t.Errorf("night label = %q", SlotNight.Label(LanguageSwahili))
	}
}
