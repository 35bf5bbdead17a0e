// Package ui holds the page's interactive state machines. Each one is a
// plain value with explicit transitions; the web layer renders whatever
// state it ends up in.
package ui

import (
	"errors"
	"fmt"
)

// ErrNoSuchEntry is returned when opening an index outside the list.
var ErrNoSuchEntry = errors.New("no such experience entry")

// CloseTrigger records how the modal was dismissed.
type CloseTrigger int

const (
	CloseButton CloseTrigger = iota
	CloseBackdrop
	CloseEscape
	CloseTeardown
)

func (t CloseTrigger) String() string {
	switch t {
	case CloseBackdrop:
		return "backdrop"
	case CloseEscape:
		return "escape"
	case CloseTeardown:
		return "teardown"
	default:
		return "button"
	}
}

// Scope acquires the page effects that exist only while a modal is open
// (scroll lock and the Escape key listener) and returns their release.
type Scope interface {
	Acquire() (release func())
}

// ExperienceModal tracks which experience entry, if any, is expanded.
// At most one is open; opening another replaces it.
type ExperienceModal struct {
	entries  int
	selected int
	open     bool
	scope    Scope
	release  func()
}

func NewExperienceModal(entries int, scope Scope) *ExperienceModal {
	return &ExperienceModal{entries: entries, scope: scope}
}

// Open expands entry i. Effects are acquired only on the closed to open
// transition, so switching entries keeps the same lock.
func (m *ExperienceModal) Open(i int) error {
	if i < 0 || i >= m.entries {
		return fmt.Errorf("%w: %d", ErrNoSuchEntry, i)
	}
	if !m.open {
		m.release = m.scope.Acquire()
		m.open = true
	}
	m.selected = i
	return nil
}

// Close dismisses the modal. Closing a closed modal does nothing.
func (m *ExperienceModal) Close(CloseTrigger) {
	if !m.open {
		return
	}
	m.open = false
	m.selected = 0
	release := m.release
	m.release = nil
	if release != nil {
		release()
	}
}

// Key handles a key press while the page has focus.
func (m *ExperienceModal) Key(key string) {
	if key == "Escape" {
		m.Close(CloseEscape)
	}
}

// Teardown is called when the section goes away.
func (m *ExperienceModal) Teardown() {
	m.Close(CloseTeardown)
}

func (m *ExperienceModal) Selected() (int, bool) {
	return m.selected, m.open
}

// PageEffects is the Scope used when rendering: it remembers whether the
// scroll lock and the Escape listener are held so templates can emit them.
type PageEffects struct {
	ScrollLocked bool
	EscapeBound  bool
	acquired     int
}

func (p *PageEffects) Acquire() func() {
	p.acquired++
	p.ScrollLocked = true
	p.EscapeBound = true
	return func() {
		p.acquired--
		if p.acquired == 0 {
			p.ScrollLocked = false
			p.EscapeBound = false
		}
	}
}

// Held reports whether any effect is still held.
func (p *PageEffects) Held() bool {
	return p.acquired > 0
}
