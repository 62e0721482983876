package lessons

import (
	"fmt"
	"strings"
)

const lessonSystemPrompt = `You are a world-class mentor and polymath. You write short, high-impact micro-lessons that a busy adult can read in about a minute.`

// slotTones sets the mood of a lesson for each part of the day.
var slotTones = map[TimeSlot]string{
	SlotMorning:   "Energetic, goal-oriented, and motivational. Start the day with clarity.",
	SlotAfternoon: "Practical, productivity-focused, and execution-oriented. Keep the momentum going.",
	SlotNight:     "Reflective, deep, and peaceful. Lessons on wisdom, character, and legacy.",
}

// ToneFor returns the tone descriptor used for slot.
func ToneFor(slot TimeSlot) string {
	if tone, ok := slotTones[slot]; ok {
		return tone
	}
	return slotTones[SlotNight]
}

func buildLessonUserMessage(slot TimeSlot, category Category, lang Language) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Create a high-impact micro-lesson in %s.\n\n", lang.Name()))
	b.WriteString(fmt.Sprintf("CATEGORY: %s\n", category.Label(lang)))
	b.WriteString(fmt.Sprintf("TIME OF DAY: %s\n", slot.Label(lang)))
	b.WriteString(fmt.Sprintf("TONE/MOOD: %s\n", ToneFor(slot)))

	b.WriteString(`
CRITICAL REQUIREMENTS:
1. DO NOT give generic advice. Be specific and actionable.
2. Mix insights from global experts (e.g., Naval Ravikant, Nassim Taleb, Marcus Aurelius, or modern African entrepreneurs).
3. The lesson must feel fresh and unique to this specific time of day.
4. Format: 3-5 concise, powerful paragraphs.
5. Include a punchy 'Core Takeaway'.
6. Ensure the 'Inspiration' field credits the specific author or philosophy used.
`)

	if lang == LanguageSwahili {
		b.WriteString("Tumia Kiswahili fasaha na chenye ushawishi.")
	} else {
		b.WriteString("Use professional and engaging English.")
	}

	return b.String()
}
