package premium

import (
	"testing"

	"github.com/minuteclass/minuteclass/internal/lessons"
)

func TestCatalog(t *testing.T) {
	items := All()
	if len(items) != 3 {
		t.Fatalf("catalog has %d items, want 3", len(items))
	}
	want := []struct {
		id    string
		typ   Type
		title string
	}{
		{"v1", TypeVideo, "Sales Mastery Techniques"},
		{"p1", TypeCourse, "Investment Fundamentals 2024"},
		{"p2", TypeEbook, "The Power of Communication"},
	}
	for i, w := range want {
		it := items[i]
		if it.ID != w.id || it.Type != w.typ || it.Title(lessons.LanguageEnglish) != w.title {
			t.Errorf("item %d = %s/%s/%q, want %s/%s/%q", i, it.ID, it.Type, it.Title(lessons.LanguageEnglish), w.id, w.typ, w.title)
		}
		if it.Title(lessons.LanguageSwahili) == "" || it.Description(lessons.LanguageSwahili) == "" {
			t.Errorf("item %s missing Swahili text", it.ID)
		}
		if it.Price == "" {
			t.Errorf("item %s missing price", it.ID)
		}
	}
}

func TestLookup(t *testing.T) {
	it, ok := Lookup("p1")
	if !ok {
		t.Fatal("p1 not found")
	}
	if got := it.Title(lessons.LanguageSwahili); got != "Misingi ya Uwekezaji 2024" {
		t.Errorf("sw title = %q", got)
	}
	if _, ok := Lookup("x9"); ok {
		t.Error("unknown id found")
	}
}

func TestParagraphs(t *testing.T) {
	v1, _ := Lookup("v1")
	if got := v1.Paragraphs(); len(got) != 2 || got[1] != "Somo la kwanza: Psychology of the buyer." {
		t.Errorf("v1 paragraphs = %q", got)
	}
	// A single-string body is one paragraph.
	p2, _ := Lookup("p2")
	if got := p2.Paragraphs(); len(got) != 1 {
		t.Errorf("p2 paragraphs = %q", got)
	}

	got := v1.Paragraphs()
	got[0] = "changed"
	if again, _ := Lookup("v1"); again.Paragraphs()[0] == "changed" {
		t.Error("Paragraphs exposes catalog storage")
	}
}

func TestParseCatalog_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing id", "- type: video\n  title: {sw: a, en: b}\n  content: x\n"},
		{"unknown type", "- id: a\n  type: podcast\n  title: {sw: a, en: b}\n  content: x\n"},
		{"duplicate id", "- id: a\n  type: video\n  title: {sw: a, en: b}\n  content: x\n- id: a\n  type: ebook\n  title: {sw: a, en: b}\n  content: x\n"},
		{"missing translation", "- id: a\n  type: video\n  title: {sw: a}\n  content: x\n"},
		{"empty content", "- id: a\n  type: video\n  title: {sw: a, en: b}\n"},
		{"mapping content", "- id: a\n  type: video\n  title: {sw: a, en: b}\n  content: {k: v}\n"},
		{"not a list", "id: a\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseCatalog([]byte(tt.yaml)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestTypeLabel(t *testing.T) {
	if TypeAudio.Label() != "Audio Lesson" || TypeVideo.Label() != "Video Short" {
		t.Errorf("labels = %q, %q", TypeAudio.Label(), TypeVideo.Label())
	}
}
