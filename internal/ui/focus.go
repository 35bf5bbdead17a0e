package ui

// CardFocus tracks which hero floating card is focused. Activating the
// focused card unfocuses it; activating another moves focus.
type CardFocus struct {
	cards   int
	focused int
	has     bool
}

func NewCardFocus(cards int) *CardFocus {
	return &CardFocus{cards: cards}
}

// Toggle handles a click on card i. Out of range indexes are ignored.
func (f *CardFocus) Toggle(i int) {
	if i < 0 || i >= f.cards {
		return
	}
	if f.has && f.focused == i {
		f.has = false
		return
	}
	f.focused = i
	f.has = true
}

// Key handles a key press on card i; Enter and Space activate it.
func (f *CardFocus) Key(i int, key string) bool {
	if key != "Enter" && key != " " {
		return false
	}
	f.Toggle(i)
	return true
}

func (f *CardFocus) Focused() (int, bool) {
	return f.focused, f.has
}

func (f *CardFocus) IsFocused(i int) bool {
	return f.has && f.focused == i
}
