// Package router keeps the stack of screens under the active tab. The
// bottom screen is the tab's root; detail screens are pushed above it.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/minuteclass/minuteclass/internal/screen"
)

// PushScreenMsg asks the router to open Screen above the current one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg asks the router to close the top screen.
type PopScreenMsg struct{}

type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

// Push opens s and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop closes the top screen and re-runs Init on the one it covered, so a
// list picks up bookmarks removed in a detail view. The root stays.
func (r *Router) Pop() tea.Cmd {
	n := len(r.stack)
	if n < 2 {
		return nil
	}
	r.stack[n-1] = nil
	r.stack = r.stack[:n-1]
	return r.stack[n-2].Init()
}

// Reset drops every screen and starts over from root, as on a tab switch.
func (r *Router) Reset(root screen.Screen) tea.Cmd {
	clear(r.stack)
	r.stack = append(r.stack[:0], root)
	return root.Init()
}

// Active is the top screen, or nil for an empty stack.
func (r *Router) Active() screen.Screen {
	if n := len(r.stack); n > 0 {
		return r.stack[n-1]
	}
	return nil
}

func (r *Router) Depth() int { return len(r.stack) }

// Update applies navigation messages itself and hands everything else to
// the top screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	}
	n := len(r.stack)
	if n == 0 {
		return nil
	}
	next, cmd := r.stack[n-1].Update(msg)
	r.stack[n-1] = next
	return cmd
}

func (r *Router) View(width, height int) string {
	if s := r.Active(); s != nil {
		return s.View(width, height)
	}
	return ""
}
