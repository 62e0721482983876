package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minuteclass/minuteclass/internal/lessons"
	"github.com/minuteclass/minuteclass/internal/llm"
	"github.com/minuteclass/minuteclass/internal/prefs"
	"github.com/minuteclass/minuteclass/internal/streak"
)

type genCall struct {
	slot     lessons.TimeSlot
	category *lessons.Category
	lang     lessons.Language
}

// fakeGen returns numbered lessons. Calls for a language in block wait
// until release is closed.
type fakeGen struct {
	mu      sync.Mutex
	calls   []genCall
	err     error
	block   lessons.Language
	entered chan struct{}
	release chan struct{}
}

func (g *fakeGen) Generate(ctx context.Context, slot lessons.TimeSlot, category *lessons.Category, lang lessons.Language) (*lessons.Lesson, error) {
	g.mu.Lock()
	g.calls = append(g.calls, genCall{slot, category, lang})
	n := len(g.calls)
	err := g.err
	blocked := g.block != "" && lang == g.block
	g.mu.Unlock()

	if blocked {
		g.entered <- struct{}{}
		<-g.release
	}
	if err != nil {
		return nil, err
	}
	cat := lessons.RotateCategory(slot, time.Now())
	if category != nil {
		cat = *category
	}
	return &lessons.Lesson{
		ID:       fmt.Sprintf("lesson-%s-%d", slot, n),
		Title:    fmt.Sprintf("Lesson %d", n),
		Content:  []string{"one"},
		Takeaway: "take",
		Category: cat,
		Language: lang,
		TimeSlot: slot,
	}, nil
}

func (g *fakeGen) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

var morning = time.Date(2026, time.October, 17, 9, 0, 0, 0, time.Local)

type fixture struct {
	c     *Controller
	gen   *fakeGen
	mem   *prefs.MemoryStore
	prefs *prefs.Preferences
	clock *time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	now := morning
	f := &fixture{gen: &fakeGen{}, mem: prefs.NewMemoryStore(), clock: &now}
	f.prefs = prefs.New(f.mem, nil)
	f.c = New(t.Context(), f.gen, f.prefs, WithClock(func() time.Time { return *f.clock }))
	return f
}

// reload builds a fresh controller over the same store.
func (f *fixture) reload(t *testing.T) *Controller {
	return New(t.Context(), f.gen, prefs.New(f.mem, nil), WithClock(func() time.Time { return *f.clock }))
}

func TestNew_Defaults(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, StateIdle, f.c.State())
	assert.Equal(t, lessons.LanguageSwahili, f.c.Language())
	assert.Nil(t, f.c.Lesson())
	assert.Empty(t, f.c.Bookmarks())
	assert.Empty(t, f.c.Unlocked())
	assert.Equal(t, streak.Data{}, f.c.Streak())
	_, ok := f.c.Category()
	assert.False(t, ok)
}

func TestRefresh_CachesAutomaticLesson(t *testing.T) {
	f := newFixture(t)

	first, err := f.c.Refresh(t.Context())
	require.NoError(t, err)
	assert.Equal(t, StateReady, f.c.State())
	assert.Equal(t, first, f.c.Lesson())
	require.Equal(t, 1, f.gen.callCount())
	assert.Nil(t, f.gen.calls[0].category)
	assert.Equal(t, lessons.SlotMorning, f.gen.calls[0].slot)

	key := prefs.LessonCacheKey(lessons.SlotMorning, "2026-10-17", lessons.LanguageSwahili)
	_, ok, _ := f.mem.Get(t.Context(), key)
	assert.True(t, ok, "lesson not cached under %s", key)

	// A second fetch in the same slot is a cache hit.
	second, err := f.reload(t).Refresh(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 1, f.gen.callCount())
	assert.Equal(t, first.ID, second.ID)
}

func TestNew_PrunesOldCachedLessons(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()
	_, err := f.c.Refresh(ctx)
	require.NoError(t, err)
	today := prefs.LessonCacheKey(lessons.SlotMorning, "2026-10-17", lessons.LanguageSwahili)

	*f.clock = morning.AddDate(0, 0, 1)
	c := f.reload(t)
	_, ok, _ := f.mem.Get(ctx, today)
	assert.False(t, ok, "yesterday's lesson should be pruned on start")

	_, err = c.Refresh(ctx)
	require.NoError(t, err)
	f.reload(t)
	_, ok, _ = f.mem.Get(ctx, prefs.LessonCacheKey(lessons.SlotMorning, "2026-10-18", lessons.LanguageSwahili))
	assert.True(t, ok, "today's lesson must survive a restart")
}

func TestRefresh_CacheScopedBySlotDateAndLanguage(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()

	_, err := f.c.Refresh(ctx)
	require.NoError(t, err)

	f.c.SetLanguage(ctx, lessons.LanguageEnglish)
	_, err = f.c.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, f.gen.callCount(), "language change must miss the cache")

	*f.clock = morning.Add(4 * time.Hour) // afternoon
	_, err = f.c.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, f.gen.callCount(), "slot change must miss the cache")

	*f.clock = morning.AddDate(0, 0, 1).Add(4 * time.Hour) // next afternoon
	_, err = f.c.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, f.gen.callCount(), "date change must miss the cache")

	for _, key := range []string{
		"minute-class-lesson-morning-2026-10-17-sw",
		"minute-class-lesson-morning-2026-10-17-en",
		"minute-class-lesson-afternoon-2026-10-17-en",
		"minute-class-lesson-afternoon-2026-10-18-en",
	} {
		_, ok, _ := f.mem.Get(ctx, key)
		assert.True(t, ok, "missing cache entry %s", key)
	}
}

func TestRefresh_ExplicitCategoryBypassesCache(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()
	key := prefs.LessonCacheKey(lessons.SlotMorning, "2026-10-17", lessons.LanguageSwahili)
	cached := lessons.Lesson{ID: "cached", Title: "c", Content: []string{"x"}, Takeaway: "t"}
	_, err := f.prefs.CacheLesson(ctx, key, &cached)
	require.NoError(t, err)

	require.True(t, f.c.SelectCategory(lessons.CategoryFinance))
	got, err := f.c.Refresh(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, "cached", got.ID)
	assert.Equal(t, lessons.CategoryFinance, got.Category)
	require.Equal(t, 1, f.gen.callCount())
	require.NotNil(t, f.gen.calls[0].category)
	assert.Equal(t, lessons.CategoryFinance, *f.gen.calls[0].category)

	_, err = f.c.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, f.gen.callCount(), "explicit requests are never served from cache")

	stillCached, ok := f.prefs.CachedLesson(ctx, key)
	require.True(t, ok)
	assert.Equal(t, "cached", stillCached.ID, "explicit request overwrote the cache")

	require.True(t, f.c.ClearCategory())
	got, err = f.c.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, "cached", got.ID)
	assert.Equal(t, 2, f.gen.callCount())
}

func TestRefresh_Failure(t *testing.T) {
	f := newFixture(t)
	f.gen.err = &llm.ErrProviderUnavailable{}

	_, err := f.c.Refresh(t.Context())
	var unavail *llm.ErrProviderUnavailable
	require.ErrorAs(t, err, &unavail)
	assert.Equal(t, StateFailed, f.c.State())
	assert.Nil(t, f.c.Lesson())
	assert.ErrorAs(t, f.c.Err(), &unavail)

	_, ok, _ := f.mem.Get(t.Context(), prefs.LessonCacheKey(lessons.SlotMorning, "2026-10-17", lessons.LanguageSwahili))
	assert.False(t, ok, "failed fetch must not cache")

	// Failed can move back to loading and then ready.
	f.gen.mu.Lock()
	f.gen.err = nil
	f.gen.mu.Unlock()
	_, err = f.c.Refresh(t.Context())
	require.NoError(t, err)
	assert.Equal(t, StateReady, f.c.State())
	assert.NoError(t, f.c.Err())
}

func TestRefresh_StaleCompletionIsDiscarded(t *testing.T) {
	f := newFixture(t)
	f.gen.block = lessons.LanguageSwahili
	f.gen.entered = make(chan struct{})
	f.gen.release = make(chan struct{})
	ctx := t.Context()

	type result struct {
		lesson *lessons.Lesson
		err    error
	}
	done := make(chan result, 1)
	go func() {
		l, err := f.c.Refresh(ctx)
		done <- result{l, err}
	}()
	<-f.gen.entered
	assert.Equal(t, StateLoading, f.c.State())

	f.c.SetLanguage(ctx, lessons.LanguageEnglish)
	latest, err := f.c.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, lessons.LanguageEnglish, latest.Language)

	close(f.gen.release)
	stale := <-done
	assert.ErrorIs(t, stale.err, ErrSuperseded)
	assert.Nil(t, stale.lesson)

	assert.Equal(t, StateReady, f.c.State())
	assert.Equal(t, latest.ID, f.c.Lesson().ID)

	// The stale Swahili lesson still filled its own empty cache entry.
	_, ok := f.prefs.CachedLesson(ctx, prefs.LessonCacheKey(lessons.SlotMorning, "2026-10-17", lessons.LanguageSwahili))
	assert.True(t, ok)
}

func TestRefresh_StaleFailureKeepsState(t *testing.T) {
	f := newFixture(t)
	f.gen.block = lessons.LanguageSwahili
	f.gen.entered = make(chan struct{})
	f.gen.release = make(chan struct{})
	f.gen.err = errors.New("boom")
	ctx := t.Context()

	done := make(chan error, 1)
	go func() {
		_, err := f.c.Refresh(ctx)
		done <- err
	}()
	<-f.gen.entered

	f.c.SelectCategory(lessons.CategoryBusiness)
	close(f.gen.release)
	err := <-done
	assert.ErrorIs(t, err, ErrSuperseded)
	assert.Equal(t, StateIdle, f.c.State())
	assert.NoError(t, f.c.Err())
}

func TestSlotBoundaries(t *testing.T) {
	f := newFixture(t)
	day := time.Date(2026, time.October, 17, 0, 0, 0, 0, time.Local)
	tests := []struct {
		hm   time.Duration
		want lessons.TimeSlot
	}{
		{4*time.Hour + 59*time.Minute, lessons.SlotNight},
		{5 * time.Hour, lessons.SlotMorning},
		{11*time.Hour + 59*time.Minute, lessons.SlotMorning},
		{12 * time.Hour, lessons.SlotAfternoon},
		{17*time.Hour + 59*time.Minute, lessons.SlotAfternoon},
		{18 * time.Hour, lessons.SlotNight},
		{23*time.Hour + 59*time.Minute, lessons.SlotNight},
	}
	for _, tt := range tests {
		*f.clock = day.Add(tt.hm)
		assert.Equal(t, tt.want, f.c.Slot(), "at %s", f.clock.Format("15:04"))
	}
}

func TestLanguage_PersistsAndResetsState(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()
	_, err := f.c.Refresh(ctx)
	require.NoError(t, err)

	assert.False(t, f.c.SetLanguage(ctx, lessons.LanguageSwahili), "same language is not a change")
	assert.Equal(t, StateReady, f.c.State())

	assert.Equal(t, lessons.LanguageEnglish, f.c.ToggleLanguage(ctx))
	assert.Equal(t, StateIdle, f.c.State())
	assert.Nil(t, f.c.Lesson())
	assert.Equal(t, lessons.LanguageEnglish, f.reload(t).Language())

	assert.Equal(t, lessons.LanguageSwahili, f.c.ToggleLanguage(ctx))
}

func TestOpenLesson_Streak(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()
	l := &lessons.Lesson{ID: "a"}

	assert.Equal(t, streak.Data{Count: 1, LastDate: "2026-10-17"}, f.c.OpenLesson(ctx, l))
	assert.Equal(t, l, f.c.Selected())

	*f.clock = morning.Add(10 * time.Hour)
	assert.Equal(t, 1, f.c.OpenLesson(ctx, &lessons.Lesson{ID: "b"}).Count, "same day counts once")

	*f.clock = morning.AddDate(0, 0, 1)
	assert.Equal(t, 2, f.c.OpenLesson(ctx, l).Count)

	*f.clock = morning.AddDate(0, 0, 4)
	assert.Equal(t, 1, f.c.OpenLesson(ctx, l).Count)

	assert.Equal(t, streak.Data{Count: 1, LastDate: "2026-10-21"}, f.reload(t).Streak())
}

func TestOpenCurrent(t *testing.T) {
	f := newFixture(t)
	_, _, err := f.c.OpenCurrent(t.Context())
	assert.ErrorIs(t, err, ErrNoLesson)

	want, err := f.c.Refresh(t.Context())
	require.NoError(t, err)
	got, s, err := f.c.OpenCurrent(t.Context())
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 1, s.Count)
}

func TestToggleBookmark(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()
	a := lessons.Lesson{ID: "a", Title: "A"}
	b := lessons.Lesson{ID: "b", Title: "B"}

	assert.True(t, f.c.ToggleBookmark(ctx, a))
	assert.True(t, f.c.ToggleBookmark(ctx, b))
	assert.True(t, f.c.IsBookmarked("a"))
	assert.Equal(t, []lessons.Lesson{a, b}, f.c.Bookmarks())

	assert.False(t, f.c.ToggleBookmark(ctx, a))
	assert.False(t, f.c.IsBookmarked("a"))
	assert.Equal(t, []lessons.Lesson{b}, f.c.Bookmarks())

	got, ok := f.c.Bookmark("b")
	assert.True(t, ok)
	assert.Equal(t, b, got)

	assert.Equal(t, []lessons.Lesson{b}, f.reload(t).Bookmarks())
}

func TestToggleBookmark_TwiceIsIdentity(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()
	f.c.ToggleBookmark(ctx, lessons.Lesson{ID: "x"})
	before := f.c.Bookmarks()

	l := lessons.Lesson{ID: "y"}
	f.c.ToggleBookmark(ctx, l)
	f.c.ToggleBookmark(ctx, l)
	assert.Equal(t, before, f.c.Bookmarks())
}

func TestUnlock(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()

	err := f.c.Unlock(ctx, "zz")
	assert.ErrorIs(t, err, ErrUnknownItem)
	assert.Empty(t, f.c.Unlocked())

	require.NoError(t, f.c.Unlock(ctx, "p1"))
	require.NoError(t, f.c.Unlock(ctx, "p1"))
	require.NoError(t, f.c.Unlock(ctx, "v1"))
	assert.Equal(t, []string{"p1", "v1"}, f.c.Unlocked())
	assert.True(t, f.c.IsUnlocked("v1"))
	assert.False(t, f.c.IsUnlocked("p2"))

	raw, _, _ := f.mem.Get(ctx, prefs.KeyUnlocked)
	assert.JSONEq(t, `["p1","v1"]`, raw)
}

func TestController_WithLessonService(t *testing.T) {
	body := json.RawMessage(`{"title":"Sikiliza kwanza","content":["Aya moja.","Aya mbili."],"takeaway":"Sikiliza.","readTime":"1 min","inspiration":"Stephen Covey"}`)
	mock := llm.NewMockProvider(llm.MockResponse{Content: body})
	svc := lessons.NewService(mock, lessons.DefaultConfig()).WithClock(func() time.Time { return morning })
	c := New(t.Context(), svc, prefs.New(prefs.NewMemoryStore(), nil), WithClock(func() time.Time { return morning }))

	l, err := c.Refresh(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "Sikiliza kwanza", l.Title)
	assert.Equal(t, lessons.RotateCategory(lessons.SlotMorning, morning), l.Category)
	assert.Equal(t, "17 Oktoba 2026", l.Date)

	// Cached: the empty mock queue is never reached.
	_, err = c.Refresh(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 1, mock.CallCount())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "loading", StateLoading.String())
	assert.Equal(t, "ready", StateReady.String())
	assert.Equal(t, "failed", StateFailed.String())
}
