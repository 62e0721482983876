// Package premium holds the static Premium Club catalog.
package premium

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/minuteclass/minuteclass/internal/lessons"
)

// Type is the kind of premium content.
type Type string

const (
	TypeCourse Type = "course"
	TypeEbook  Type = "ebook"
	TypeAudio  Type = "audio"
	TypeVideo  Type = "video"
)

// Label returns the display name of the content type.
func (t Type) Label() string {
	switch t {
	case TypeCourse:
		return "Course"
	case TypeEbook:
		return "Ebook"
	case TypeAudio:
		return "Audio Lesson"
	case TypeVideo:
		return "Video Short"
	}
	return string(t)
}

// Localized is a string in both supported languages.
type Localized struct {
	SW string `yaml:"sw"`
	EN string `yaml:"en"`
}

// In returns the text for lang.
func (l Localized) In(lang lessons.Language) string {
	if lang == lessons.LanguageEnglish {
		return l.EN
	}
	return l.SW
}

// Body is item content: a single string or a list of paragraphs.
type Body []string

func (b *Body) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		*b = Body{s}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*b = list
		return nil
	}
	return fmt.Errorf("line %d: content must be a string or a list of strings", node.Line)
}

// Item is one premium catalog entry.
type Item struct {
	ID       string    `yaml:"id"`
	Type     Type      `yaml:"type"`
	Price    string    `yaml:"price"`
	Duration string    `yaml:"duration"`
	Image    string    `yaml:"image"`
	Name     Localized `yaml:"title"`
	Summary  Localized `yaml:"description"`
	Content  Body      `yaml:"content"`
}

func (it Item) Title(lang lessons.Language) string       { return it.Name.In(lang) }
func (it Item) Description(lang lessons.Language) string { return it.Summary.In(lang) }

// Paragraphs returns the item body as a list of paragraphs.
func (it Item) Paragraphs() []string {
	out := make([]string, len(it.Content))
	copy(out, it.Content)
	return out
}

//go:embed catalog.yaml
var catalogYAML []byte

// catalog is set by init from the embedded catalog.yaml.
var catalog []Item

func init() {
	items, err := parseCatalog(catalogYAML)
	if err != nil {
		panic("premium: " + err.Error())
	}
	catalog = items
}

// All returns the catalog in display order.
func All() []Item {
	out := make([]Item, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the item with the given id.
func Lookup(id string) (Item, bool) {
	for _, it := range catalog {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

func parseCatalog(data []byte) ([]Item, error) {
	var items []Item
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	seen := make(map[string]bool, len(items))
	for i, it := range items {
		switch {
		case strings.TrimSpace(it.ID) == "":
			return nil, fmt.Errorf("item %d: missing id", i)
		case seen[it.ID]:
			return nil, fmt.Errorf("item %q: duplicate id", it.ID)
		case it.Type.Label() == string(it.Type):
			return nil, fmt.Errorf("item %q: unknown type %q", it.ID, it.Type)
		case it.Name.SW == "" || it.Name.EN == "":
			return nil, fmt.Errorf("item %q: title needs sw and en", it.ID)
		case len(it.Content) == 0:
			return nil, fmt.Errorf("item %q: empty content", it.ID)
		}
		seen[it.ID] = true
	}
	return items, nil
}
