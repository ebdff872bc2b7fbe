package token

import "strings"

// Reflow materializes indentation: every newline is followed by one indent
// token whose width is the newline's target indent. Existing indent tokens
// are stripped first, so Reflow(Reflow(ts)) == Reflow(ts).
func Reflow(in []Token) []Token {
	out := make([]Token, 0, len(in))
	for _, t := range in {
		if t.Kind == KindIndent {
			continue
		}
		out = append(out, t)
		if t.Kind == KindNewline && t.Indent > 0 {
			out = append(out, Token{
				ID:   t.ID,
				Kind: KindIndent,
				Text: strings.Repeat(" ", t.Indent),
			})
		}
	}
	return out
}

// Layout assigns offsets and grid coordinates by accumulating token widths.
// Each newline increments the row and zeroes the column.
func Layout(tokens []Token) Stream {
	infos := make(Stream, len(tokens))
	pos, row, col := 0, 0, 0
	for i, t := range tokens {
		w := t.Width()
		infos[i] = Info{
			Token:    t,
			StartPos: pos,
			EndPos:   pos + w,
			StartRow: row,
			StartCol: col,
		}
		pos += w
		if t.Kind == KindNewline {
			row++
			col = 0
		} else {
			col += w
		}
	}
	return infos
}
