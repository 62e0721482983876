package lessons

// Language is the locale a lesson is written in.
type Language string

const (
	LanguageSwahili Language = "sw"
	LanguageEnglish Language = "en"
)

// DefaultLanguage is used on first run, before any preference is stored.
const DefaultLanguage = LanguageSwahili

// ParseLanguage returns the Language for s, or false if s is not supported.
func ParseLanguage(s string) (Language, bool) {
	switch Language(s) {
	case LanguageSwahili, LanguageEnglish:
		return Language(s), true
	}
	return "", false
}

// Other returns the other supported language.
func (l Language) Other() Language {
	if l == LanguageEnglish {
		return LanguageSwahili
	}
	return LanguageEnglish
}

// TimeSlot is the part of the day a lesson is themed for.
type TimeSlot string

const (
	SlotMorning   TimeSlot = "morning"
	SlotAfternoon TimeSlot = "afternoon"
	SlotNight     TimeSlot = "night"
)

// Label returns the slot name in the given language.
func (s TimeSlot) Label(lang Language) string {
	if lang == LanguageEnglish {
		return string(s)
	}
	switch s {
	case SlotMorning:
		return "asubuhi"
	case SlotAfternoon:
		return "mchana"
	default:
		return "usiku"
	}
}

// Category is a lesson topic. The order of AllCategories is part of the
// rotation contract and must not change.
type Category string

const (
	CategoryCommunication Category = "communication"
	CategoryBusiness      Category = "business"
	CategoryLifeSkills    Category = "life-skills"
	CategoryDigitalSkills Category = "digital-skills"
	CategoryLeadership    Category = "leadership"
	CategoryFinance       Category = "finance"
	CategorySpiritual     Category = "spiritual"
)

var allCategories = []Category{
	CategoryCommunication,
	CategoryBusiness,
	CategoryLifeSkills,
	CategoryDigitalSkills,
	CategoryLeadership,
	CategoryFinance,
	CategorySpiritual,
}

var categoryLabels = map[Category][2]string{
	CategoryCommunication: {"Mawasiliano", "Communication"},
	CategoryBusiness:      {"Biashara", "Business"},
	CategoryLifeSkills:    {"Ujuzi wa Maisha", "Life Skills"},
	CategoryDigitalSkills: {"Ujuzi wa Kidijitali", "Digital Skills"},
	CategoryLeadership:    {"Uongozi", "Leadership"},
	CategoryFinance:       {"Fedha", "Finance"},
	CategorySpiritual:     {"Hekima ya Kiroho", "Spiritual Wisdom"},
}

// AllCategories returns the categories in rotation order.
func AllCategories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// ParseCategory accepts a category id or a label in either language.
func ParseCategory(s string) (Category, bool) {
	for _, c := range allCategories {
		labels := categoryLabels[c]
		if s == string(c) || s == labels[0] || s == labels[1] {
			return c, true
		}
	}
	return "", false
}

// Label returns the human-readable category name in the given language.
func (c Category) Label(lang Language) string {
	labels, ok := categoryLabels[c]
	if !ok {
		return string(c)
	}
	if lang == LanguageEnglish {
		return labels[1]
	}
	return labels[0]
}

// Lesson is a generated micro-lesson. Lessons are immutable once created.
type Lesson struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Content     []string `json:"content"`
	Takeaway    string   `json:"takeaway"`
	Category    Category `json:"category"`
	Date        string   `json:"date"`
	ReadTime    string   `json:"readTime"`
	Inspiration string   `json:"inspiration,omitempty"`
	Language    Language `json:"language"`
	TimeSlot    TimeSlot `json:"timeSlot,omitempty"`
}
