package lessons

import "time"

// slotOffsets spaces the three slots apart so that, for the seven
// categories, each slot of a given day lands on a different category.
var slotOffsets = map[TimeSlot]int{
	SlotMorning:   0,
	SlotAfternoon: 5,
	SlotNight:     10,
}

// SlotAt returns the time slot for the wall-clock hour of t:
// 05:00-11:59 morning, 12:00-17:59 afternoon, otherwise night.
func SlotAt(t time.Time) TimeSlot {
	h := t.Hour()
	switch {
	case h >= 5 && h < 12:
		return SlotMorning
	case h >= 12 && h < 18:
		return SlotAfternoon
	default:
		return SlotNight
	}
}

// DateKey returns the calendar date of t as YYYY-MM-DD in t's location.
func DateKey(t time.Time) string {
	return t.Format(time.DateOnly)
}

// RotateCategory returns the category for the given slot on the calendar
// day of t. Every caller on the same day and slot gets the same category.
func RotateCategory(slot TimeSlot, t time.Time) Category {
	c, _ := rotateAmong(allCategories, slot, t)
	return c
}

// rotateAmong indexes categories by day-of-year plus the slot offset.
// It reports false when categories is empty.
func rotateAmong(categories []Category, slot TimeSlot, t time.Time) (Category, bool) {
	if len(categories) == 0 {
		return "", false
	}
	idx := (t.YearDay() + slotOffsets[slot]) % len(categories)
	return categories[idx], true
}
