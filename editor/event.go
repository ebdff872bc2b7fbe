package editor

import "unicode"

// EventKind identifies one input event delivered to Dispatch.
type EventKind uint8

const (
	EventNone EventKind = iota
	EventInsert
	EventBackspace
	EventDelete
	EventLeft
	EventRight
	EventUp
	EventDown
	EventHome
	EventEnd
	EventTab
	EventShiftTab
	EventEnter
)

// Event is one keystroke. Rune is set for EventInsert only.
type Event struct {
	Kind EventKind
	Rune rune

	// Extend marks a selection-extending navigation (shift held).
	Extend bool
}

// Insert builds a character-insert event.
func Insert(r rune) Event {
	return Event{Kind: EventInsert, Rune: r}
}

// Key builds a non-character event.
func Key(k EventKind) Event {
	return Event{Kind: k}
}

// isInfixTrigger reports characters that begin infix-operator entry when
// typed after a complete expression.
func isInfixTrigger(r rune) bool {
	switch r {
	case '+', '-', '*', '/', '%', '<', '>', '=', '|', '&', '^':
		return true
	}
	return false
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == ':'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
