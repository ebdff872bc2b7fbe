package token

import (
	"fmt"
	"strings"
)

// Text concatenates token texts into the linear editor text.
func Text(tokens []Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.WriteString(t.Text)
	}
	return sb.String()
}

// Text returns the flattened text of the laid-out stream.
func (s Stream) Text() string {
	var sb strings.Builder
	for _, t := range s {
		sb.WriteString(t.Text)
	}
	return sb.String()
}

// DebugString renders one token per line with kind, owner id, and
// positions. For tests and the `chisel tokens` command, never for editing
// decisions.
func (s Stream) DebugString() string {
	var sb strings.Builder
	for _, t := range s {
		text := t.Text
		if t.Kind == KindNewline {
			text = "\\n"
		}
		fmt.Fprintf(&sb, "%-26s id=%-4d [%d,%d) r%d c%d %q\n",
			t.Kind.String(), t.ID, t.StartPos, t.EndPos, t.StartRow, t.StartCol, text)
	}
	return sb.String()
}
