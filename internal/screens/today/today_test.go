package today

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/minuteclass/minuteclass/internal/controller"
	"github.com/minuteclass/minuteclass/internal/lessons"
	"github.com/minuteclass/minuteclass/internal/prefs"
	"github.com/minuteclass/minuteclass/internal/router"
	"github.com/minuteclass/minuteclass/internal/screens/lessondetail"
)

// stubGen returns a copy of lesson in the requested language.
type stubGen struct {
	lesson lessons.Lesson
	err    error
	calls  int
}

func (g *stubGen) Generate(_ context.Context, slot lessons.TimeSlot, cat *lessons.Category, lang lessons.Language) (*lessons.Lesson, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	l := g.lesson
	l.Language = lang
	l.TimeSlot = slot
	if cat != nil {
		l.Category = *cat
	}
	return &l, nil
}

func testLesson() lessons.Lesson {
	return lessons.Lesson{
		ID:       "lesson-1",
		Title:    "Save first",
		Content:  []string{"Pay yourself before anyone else."},
		Takeaway: "Automate saving.",
		Category: lessons.CategoryFinance,
		Date:     "17 Oktoba 2026",
		ReadTime: "1 min",
	}
}

func testScreen(t *testing.T, gen *stubGen) (*Screen, *controller.Controller) {
	t.Helper()
	now := time.Date(2026, 10, 17, 8, 30, 0, 0, time.UTC)
	p := prefs.New(prefs.NewMemoryStore(), nil)
	ctrl := controller.New(t.Context(), gen, p, controller.WithClock(func() time.Time { return now }))
	return New(t.Context(), ctrl), ctrl
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func loaded(t *testing.T, s *Screen) {
	t.Helper()
	msg, ok := s.load().(LessonLoadedMsg)
	if !ok {
		t.Fatal("load did not return LessonLoadedMsg")
	}
	s.Update(msg)
}

func TestInit_FetchesWhenIdle(t *testing.T) {
	gen := &stubGen{lesson: testLesson()}
	s, ctrl := testScreen(t, gen)

	if cmd := s.Init(); cmd == nil {
		t.Fatal("expected a fetch command from an idle controller")
	}
	loaded(t, s)

	if ctrl.State() != controller.StateReady {
		t.Fatalf("state = %v, want ready", ctrl.State())
	}
	if view := s.View(80, 24); !strings.Contains(view, "Save first") {
		t.Errorf("view does not show the lesson title:\n%s", view)
	}

	// A second Today screen over the same controller reuses the lesson.
	again := New(t.Context(), ctrl)
	if cmd := again.Init(); cmd != nil {
		t.Error("expected no fetch when a lesson is ready")
	}
	if gen.calls != 1 {
		t.Errorf("generator calls = %d, want 1", gen.calls)
	}
}

func TestView_Loading(t *testing.T) {
	s, _ := testScreen(t, &stubGen{lesson: testLesson()})
	if view := s.View(80, 24); !strings.Contains(view, "AI inachuja hekima ya leo") {
		t.Errorf("expected loading text in Swahili:\n%s", view)
	}
	if view := s.View(80, 24); !strings.Contains(view, "Habari ya Asubuhi!") {
		t.Errorf("expected morning greeting:\n%s", view)
	}
}

func TestView_Failed(t *testing.T) {
	s, ctrl := testScreen(t, &stubGen{err: errors.New("quota exhausted")})
	loaded(t, s)

	if ctrl.State() != controller.StateFailed {
		t.Fatalf("state = %v, want failed", ctrl.State())
	}
	view := s.View(80, 24)
	if !strings.Contains(view, "Imeshindikana kupata somo.") {
		t.Errorf("expected failure text:\n%s", view)
	}
	if !strings.Contains(view, "quota exhausted") {
		t.Errorf("expected error detail:\n%s", view)
	}
}

func TestEnter_OpensDetailAndCountsRead(t *testing.T) {
	s, ctrl := testScreen(t, &stubGen{lesson: testLesson()})
	loaded(t, s)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a push command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*lessondetail.Screen); !ok {
		t.Errorf("pushed %T, want *lessondetail.Screen", push.Screen)
	}
	if got := ctrl.Streak().Count; got != 1 {
		t.Errorf("streak = %d, want 1", got)
	}
}

func TestEnter_NoLessonIsNoop(t *testing.T) {
	s, _ := testScreen(t, &stubGen{err: errors.New("down")})
	loaded(t, s)

	if _, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Error("expected no command without a lesson")
	}
}

func TestBookmarkKey_Toggles(t *testing.T) {
	s, ctrl := testScreen(t, &stubGen{lesson: testLesson()})
	loaded(t, s)

	s.Update(keyPress('b'))
	if !ctrl.IsBookmarked("lesson-1") {
		t.Fatal("expected lesson bookmarked")
	}
	if !strings.Contains(s.View(80, 24), "Limehifadhiwa") {
		t.Error("expected bookmark confirmation")
	}

	s.Update(keyPress('b'))
	if ctrl.IsBookmarked("lesson-1") {
		t.Error("expected bookmark removed")
	}
}

func TestClearCategory_Refetches(t *testing.T) {
	gen := &stubGen{lesson: testLesson()}
	s, ctrl := testScreen(t, gen)

	if _, cmd := s.Update(keyPress('c')); cmd != nil {
		t.Error("clearing without a category should do nothing")
	}

	ctrl.SelectCategory(lessons.CategoryLeadership)
	loaded(t, s)
	if got := ctrl.Lesson().Category; got != lessons.CategoryLeadership {
		t.Fatalf("category = %q", got)
	}

	if _, cmd := s.Update(keyPress('c')); cmd == nil {
		t.Fatal("expected a refetch after clearing the category")
	}
	if _, ok := ctrl.Category(); ok {
		t.Error("category still selected")
	}
}

func TestSupersededResult(t *testing.T) {
	s, ctrl := testScreen(t, &stubGen{lesson: testLesson()})

	if _, cmd := s.Update(LessonLoadedMsg{Err: controller.ErrSuperseded}); cmd == nil {
		t.Error("expected a new fetch while idle")
	}

	loaded(t, s)
	if ctrl.State() != controller.StateReady {
		t.Fatal("expected ready")
	}
	if _, cmd := s.Update(LessonLoadedMsg{Err: controller.ErrSuperseded}); cmd != nil {
		t.Error("expected no fetch once a lesson is ready")
	}
}

func TestSpinnerStopsWhenReady(t *testing.T) {
	s, _ := testScreen(t, &stubGen{lesson: testLesson()})

	if _, cmd := s.Update(spinner.TickMsg{ID: s.spinner.ID()}); cmd == nil {
		t.Error("expected the spinner to keep ticking while loading")
	}

	loaded(t, s)
	if _, cmd := s.Update(spinner.TickMsg{ID: s.spinner.ID()}); cmd != nil {
		t.Error("expected the spinner to stop once ready")
	}
}

func TestKeyHints(t *testing.T) {
	s, ctrl := testScreen(t, &stubGen{lesson: testLesson()})
	loaded(t, s)

	keys := func() string {
		var out []string
		for _, h := range s.KeyHints() {
			out = append(out, h.Key)
		}
		return strings.Join(out, ",")
	}
	if got := keys(); got != "Enter,b,r,l,Tab" {
		t.Errorf("hints = %s", got)
	}
	ctrl.SelectCategory(lessons.CategoryBusiness)
	if got := keys(); got != "r,c,l,Tab" {
		t.Errorf("hints with category = %s", got)
	}
}
