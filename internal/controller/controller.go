// Package controller owns the application state shared by the TUI and
// the CLI: the daily lesson fetch with its cache, language and category
// selection, streak, bookmarks and premium unlocks.
package controller

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/minuteclass/minuteclass/internal/lessons"
	"github.com/minuteclass/minuteclass/internal/logging"
	"github.com/minuteclass/minuteclass/internal/prefs"
	"github.com/minuteclass/minuteclass/internal/premium"
	"github.com/minuteclass/minuteclass/internal/streak"
)

// Generator produces a lesson. lessons.Service implements it.
type Generator interface {
	Generate(ctx context.Context, slot lessons.TimeSlot, category *lessons.Category, lang lessons.Language) (*lessons.Lesson, error)
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock replaces the wall clock used for slots, cache keys and streaks.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *logging.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// Controller is safe for concurrent use. Preference writes are
// fire-and-forget: failures are logged and the in-memory state still
// changes.
type Controller struct {
	gen   Generator
	prefs *prefs.Preferences
	log   *logging.Logger
	now   func() time.Time

	mu        sync.Mutex
	reqID     uint64
	state     State
	lesson    *lessons.Lesson
	err       error
	lang      lessons.Language
	category  *lessons.Category
	selected  *lessons.Lesson
	streak    streak.Data
	bookmarks []lessons.Lesson
	unlocked  []string
}

// New loads persisted preferences and returns an idle Controller.
func New(ctx context.Context, gen Generator, p *prefs.Preferences, opts ...Option) *Controller {
	c := &Controller{
		gen:   gen,
		prefs: p,
		log:   logging.Nop(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With("component", "controller")

	c.lang = p.Language(ctx)
	c.streak = p.Streak(ctx)
	c.bookmarks = p.Bookmarks(ctx)
	c.unlocked = p.Unlocked(ctx)

	if n := p.PruneLessonCache(ctx, lessons.DateKey(c.now())); n > 0 {
		c.log.Debug("pruned cached lessons", "count", n)
	}
	return c
}

// Refresh fetches the lesson for the current language and category. An
// automatic request (no category selected) is served from the cache when
// possible and cached after generation. Only the most recent request can
// change the state; earlier ones return ErrSuperseded.
func (c *Controller) Refresh(ctx context.Context) (*lessons.Lesson, error) {
	c.mu.Lock()
	c.reqID++
	id := c.reqID
	lang := c.lang
	var category *lessons.Category
	if c.category != nil {
		cat := *c.category
		category = &cat
	}
	now := c.now()
	c.state = StateLoading
	c.mu.Unlock()

	slot := lessons.SlotAt(now)
	key := prefs.LessonCacheKey(slot, lessons.DateKey(now), lang)
	log := c.log.With("request", id, "slot", slot, "lang", lang)

	if category == nil {
		if cached, ok := c.prefs.CachedLesson(ctx, key); ok {
			log.Debug("lesson cache hit", "key", key)
			return c.finish(id, cached, nil)
		}
	}

	lesson, err := c.gen.Generate(ctx, slot, category, lang)
	if err != nil {
		log.Error("lesson generation failed", "error", err)
		return c.finish(id, nil, err)
	}

	// The key is exact for (slot, date, lang), so even a superseded
	// automatic lesson may fill an empty entry.
	if category == nil {
		if _, err := c.prefs.CacheLesson(ctx, key, lesson); err != nil {
			log.Warn("lesson cache write failed", "key", key, "error", err)
		}
	}
	return c.finish(id, lesson, nil)
}

func (c *Controller) finish(id uint64, lesson *lessons.Lesson, err error) (*lessons.Lesson, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id != c.reqID {
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSuperseded, err)
		}
		return nil, ErrSuperseded
	}
	if err != nil {
		c.state = StateFailed
		c.lesson = nil
		c.err = err
		return nil, err
	}
	c.state = StateReady
	c.lesson = lesson
	c.err = nil
	return lesson, nil
}

// invalidateLocked moves back to idle and makes any in-flight Refresh stale.
func (c *Controller) invalidateLocked() {
	c.reqID++
	c.state = StateIdle
	c.lesson = nil
	c.err = nil
}

// State returns the lesson-loading status.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Lesson returns the lesson held in the ready state, or nil.
func (c *Controller) Lesson() *lessons.Lesson {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lesson
}

// Err returns the error of the failed state, or nil.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Slot returns the time slot for the controller clock.
func (c *Controller) Slot() lessons.TimeSlot {
	return lessons.SlotAt(c.now())
}

// Now returns the controller clock.
func (c *Controller) Now() time.Time {
	return c.now()
}

func (c *Controller) Language() lessons.Language {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lang
}

// SetLanguage switches the language and persists it. It reports whether
// the language changed; a change returns the controller to idle.
func (c *Controller) SetLanguage(ctx context.Context, lang lessons.Language) bool {
	c.mu.Lock()
	if lang == c.lang {
		c.mu.Unlock()
		return false
	}
	c.lang = lang
	c.invalidateLocked()
	c.mu.Unlock()

	if err := c.prefs.SetLanguage(ctx, lang); err != nil {
		c.log.Warn("persist language failed", "error", err)
	}
	return true
}

// ToggleLanguage switches between Swahili and English and returns the new
// language.
func (c *Controller) ToggleLanguage(ctx context.Context) lessons.Language {
	next := c.Language().Other()
	c.SetLanguage(ctx, next)
	return next
}

// Category returns the explicitly selected category, if any.
func (c *Controller) Category() (lessons.Category, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.category == nil {
		return "", false
	}
	return *c.category, true
}

// SelectCategory makes the next Refresh an explicit request for cat. It
// reports whether the selection changed.
func (c *Controller) SelectCategory(cat lessons.Category) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.category != nil && *c.category == cat {
		return false
	}
	c.category = &cat
	c.invalidateLocked()
	return true
}

// ClearCategory returns to the automatic daily lesson.
func (c *Controller) ClearCategory() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.category == nil {
		return false
	}
	c.category = nil
	c.invalidateLocked()
	return true
}

// OpenLesson marks l as the selected lesson and records a read for the
// streak. Opening several lessons on one day counts once.
func (c *Controller) OpenLesson(ctx context.Context, l *lessons.Lesson) streak.Data {
	c.mu.Lock()
	c.selected = l
	prev := c.streak
	c.streak = streak.Update(prev, c.now())
	current := c.streak
	c.mu.Unlock()

	if current != prev {
		if err := c.prefs.SetStreak(ctx, current); err != nil {
			c.log.Warn("persist streak failed", "error", err)
		}
	}
	return current
}

// OpenCurrent opens the lesson held in the ready state.
func (c *Controller) OpenCurrent(ctx context.Context) (*lessons.Lesson, streak.Data, error) {
	l := c.Lesson()
	if l == nil {
		return nil, c.Streak(), ErrNoLesson
	}
	return l, c.OpenLesson(ctx, l), nil
}

// Selected returns the lesson last passed to OpenLesson.
func (c *Controller) Selected() *lessons.Lesson {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

func (c *Controller) Streak() streak.Data {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.streak
}

// ToggleBookmark adds l to the bookmarks, or removes the bookmark with
// the same id. It reports whether l is bookmarked afterwards.
func (c *Controller) ToggleBookmark(ctx context.Context, l lessons.Lesson) bool {
	c.mu.Lock()
	idx := slices.IndexFunc(c.bookmarks, func(b lessons.Lesson) bool { return b.ID == l.ID })
	next := slices.Clone(c.bookmarks)
	if idx >= 0 {
		next = slices.Delete(next, idx, idx+1)
	} else {
		next = append(next, l)
	}
	c.bookmarks = next
	c.mu.Unlock()

	if err := c.prefs.SetBookmarks(ctx, next); err != nil {
		c.log.Warn("persist bookmarks failed", "error", err)
	}
	return idx < 0
}

func (c *Controller) IsBookmarked(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.ContainsFunc(c.bookmarks, func(b lessons.Lesson) bool { return b.ID == id })
}

// Bookmarks returns the bookmarked lessons in the order they were added.
func (c *Controller) Bookmarks() []lessons.Lesson {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.bookmarks)
}

// Bookmark returns the bookmarked lesson with the given id.
func (c *Controller) Bookmark(id string) (lessons.Lesson, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, b := range c.bookmarks {
		if b.ID == id {
			return b, true
		}
	}
	return lessons.Lesson{}, false
}

// Unlock grants access to a premium item. Unlocking an item twice is a
// no-op.
func (c *Controller) Unlock(ctx context.Context, id string) error {
	if _, ok := premium.Lookup(id); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownItem, id)
	}

	c.mu.Lock()
	if slices.Contains(c.unlocked, id) {
		c.mu.Unlock()
		return nil
	}
	next := append(slices.Clone(c.unlocked), id)
	c.unlocked = next
	c.mu.Unlock()

	if err := c.prefs.SetUnlocked(ctx, next); err != nil {
		c.log.Warn("persist unlocked items failed", "error", err)
	}
	return nil
}

func (c *Controller) IsUnlocked(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Contains(c.unlocked, id)
}

func (c *Controller) Unlocked() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.unlocked)
}

// Close closes the preference store.
func (c *Controller) Close() error {
	return c.prefs.Close()
}
