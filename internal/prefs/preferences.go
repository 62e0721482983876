package prefs

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/minuteclass/minuteclass/internal/lessons"
	"github.com/minuteclass/minuteclass/internal/logging"
	"github.com/minuteclass/minuteclass/internal/streak"
)

const (
	KeyLanguage  = "minute-class-lang"
	KeyStreak    = "minute-class-streak"
	KeyBookmarks = "minute-class-bookmarks"
	KeyUnlocked  = "minute-class-unlocked"

	lessonKeyPrefix = "minute-class-lesson-"
)

// LessonCacheKey names the cache entry for an automatic lesson.
func LessonCacheKey(slot lessons.TimeSlot, date string, lang lessons.Language) string {
	return fmt.Sprintf("%s%s-%s-%s", lessonKeyPrefix, slot, date, lang)
}

// Preferences reads and writes the typed application preferences on top
// of a Store. Reads never fail: a missing, unreadable or malformed value
// yields the default and a warning in the log.
type Preferences struct {
	store Store
	log   *logging.Logger
}

// New wraps s. A nil log discards warnings.
func New(s Store, log *logging.Logger) *Preferences {
	if log == nil {
		log = logging.Nop()
	}
	return &Preferences{store: s, log: log.With("component", "prefs")}
}

// Store returns the underlying engine.
func (p *Preferences) Store() Store { return p.store }

// Close closes the underlying engine.
func (p *Preferences) Close() error { return p.store.Close() }

// Language returns the stored language, or lessons.DefaultLanguage.
func (p *Preferences) Language(ctx context.Context) lessons.Language {
	raw, ok := p.get(ctx, KeyLanguage)
	if !ok {
		return lessons.DefaultLanguage
	}
	lang, valid := lessons.ParseLanguage(raw)
	if !valid {
		p.log.Warn("ignoring stored language", "value", raw)
		return lessons.DefaultLanguage
	}
	return lang
}

// SetLanguage stores the language as its bare tag.
func (p *Preferences) SetLanguage(ctx context.Context, lang lessons.Language) error {
	return p.store.Set(ctx, KeyLanguage, string(lang))
}

// Streak returns the stored streak, or the zero streak.
func (p *Preferences) Streak(ctx context.Context) streak.Data {
	var d streak.Data
	if !p.getJSON(ctx, KeyStreak, &d) || d.Count < 0 {
		return streak.Data{}
	}
	return d
}

func (p *Preferences) SetStreak(ctx context.Context, d streak.Data) error {
	return p.setJSON(ctx, KeyStreak, d)
}

// Bookmarks returns the bookmarked lessons in insertion order.
func (p *Preferences) Bookmarks(ctx context.Context) []lessons.Lesson {
	var out []lessons.Lesson
	if !p.getJSON(ctx, KeyBookmarks, &out) {
		return nil
	}
	return out
}

func (p *Preferences) SetBookmarks(ctx context.Context, bookmarks []lessons.Lesson) error {
	if bookmarks == nil {
		bookmarks = []lessons.Lesson{}
	}
	return p.setJSON(ctx, KeyBookmarks, bookmarks)
}

// Unlocked returns the unlocked premium item ids.
func (p *Preferences) Unlocked(ctx context.Context) []string {
	var out []string
	if !p.getJSON(ctx, KeyUnlocked, &out) {
		return nil
	}
	return out
}

func (p *Preferences) SetUnlocked(ctx context.Context, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	return p.setJSON(ctx, KeyUnlocked, ids)
}

// CachedLesson returns the lesson cached under key.
func (p *Preferences) CachedLesson(ctx context.Context, key string) (*lessons.Lesson, bool) {
	var l lessons.Lesson
	if !p.getJSON(ctx, key, &l) || l.ID == "" {
		return nil, false
	}
	return &l, true
}

// CacheLesson stores l under key unless key already holds a lesson. It
// reports whether l was written. Entries are never overwritten.
func (p *Preferences) CacheLesson(ctx context.Context, key string, l *lessons.Lesson) (bool, error) {
	if _, ok := p.CachedLesson(ctx, key); ok {
		return false, nil
	}
	if err := p.setJSON(ctx, key, l); err != nil {
		return false, err
	}
	return true, nil
}

// PruneLessonCache deletes cached lessons dated before today (YYYY-MM-DD)
// and returns how many were removed. Failures are logged, not returned.
func (p *Preferences) PruneLessonCache(ctx context.Context, today string) int {
	keys, err := p.store.Keys(ctx, lessonKeyPrefix)
	if err != nil {
		p.log.Warn("list cached lessons failed", "error", err)
		return 0
	}
	removed := 0
	for _, key := range keys {
		date, ok := lessonKeyDate(key)
		if !ok || date >= today {
			continue
		}
		if err := p.store.Delete(ctx, key); err != nil {
			p.log.Warn("delete cached lesson failed", "key", key, "error", err)
			continue
		}
		removed++
	}
	return removed
}

// lessonKeyDate extracts the date from a LessonCacheKey.
func lessonKeyDate(key string) (string, bool) {
	rest, ok := strings.CutPrefix(key, lessonKeyPrefix)
	if !ok {
		return "", false
	}
	_, tail, ok := strings.Cut(rest, "-")
	if !ok || len(tail) < len(time.DateOnly) {
		return "", false
	}
	date := tail[:len(time.DateOnly)]
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return "", false
	}
	return date, true
}

func (p *Preferences) get(ctx context.Context, key string) (string, bool) {
	raw, ok, err := p.store.Get(ctx, key)
	if err != nil {
		p.log.Warn("preference read failed", "key", key, "error", err)
		return "", false
	}
	return raw, ok
}

// getJSON decodes the value at key into v. It reports false when the key
// is absent or holds malformed JSON.
func (p *Preferences) getJSON(ctx context.Context, key string, v any) bool {
	raw, ok := p.get(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		p.log.Warn("malformed preference, using default", "key", key, "error", err)
		return false
	}
	return true
}

func (p *Preferences) setJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return p.store.Set(ctx, key, string(data))
}
