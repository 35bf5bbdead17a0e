package ui

import (
	"context"
	"time"
)

// DefaultTypingInterval is the delay between revealed glyphs.
const DefaultTypingInterval = 100 * time.Millisecond

// Typewriter reveals a target string one rune per tick, but only after the
// host section has become visible. Visibility is latched.
type Typewriter struct {
	target   []rune
	revealed int
	visible  bool
}

func NewTypewriter(target string) *Typewriter {
	return &Typewriter{target: []rune(target)}
}

// Reveal marks the host section as visible. Later calls do nothing.
func (t *Typewriter) Reveal() {
	t.visible = true
}

func (t *Typewriter) Visible() bool {
	return t.visible
}

// Tick reveals one more rune. It reports false, leaving the state alone,
// while the section is hidden or once the whole target is shown.
func (t *Typewriter) Tick() bool {
	if !t.visible || t.Done() {
		return false
	}
	t.revealed++
	return true
}

func (t *Typewriter) Done() bool {
	return t.revealed >= len(t.target)
}

func (t *Typewriter) Revealed() int {
	return t.revealed
}

// Len is the target length in runes.
func (t *Typewriter) Len() int {
	return len(t.target)
}

func (t *Typewriter) Text() string {
	return string(t.target[:t.revealed])
}

// Run ticks every interval and calls emit with the text after each tick.
// It returns nil once the target is fully shown, ctx.Err() when cancelled,
// or the first error from emit. Run on a hidden typewriter returns at once.
func (t *Typewriter) Run(ctx context.Context, interval time.Duration, emit func(string) error) error {
	if !t.visible || t.Done() {
		return nil
	}
	if interval <= 0 {
		interval = DefaultTypingInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if !t.Tick() {
				return nil
			}
			if err := emit(t.Text()); err != nil {
				return err
			}
			if t.Done() {
				return nil
			}
		}
	}
}
