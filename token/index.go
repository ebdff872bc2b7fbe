package token

import "github.com/iw2rmb/chisel/expr"

// Stream is a laid-out token list, indexable by text offset and grid
// position. It is immutable once built.
type Stream []Info

// SideKind tags a neighbor lookup result.
type SideKind uint8

const (
	SideNone SideKind = iota
	SideLeft
	SideRight
)

// Side is one side of a Neighbors result: the nearest content token, tagged
// with which flank of the caret it sits on.
type Side struct {
	Kind SideKind
	Tok  Info
}

func (s Side) IsNone() bool { return s.Kind == SideNone }

// TextLen returns the total grapheme length of the flattened stream.
func (s Stream) TextLen() int {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1].EndPos
}

// ClampOffset clamps a caret offset into the stream's text bounds.
func (s Stream) ClampOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	if n := s.TextLen(); offset > n {
		return n
	}
	return offset
}

// At returns the token containing offset (StartPos <= offset < EndPos).
func (s Stream) At(offset int) (Info, bool) {
	for _, t := range s {
		if t.StartPos <= offset && offset < t.EndPos {
			return t, true
		}
	}
	return Info{}, false
}

// WithID returns the first token owned by the given node id.
func (s Stream) WithID(id expr.ID) (Info, bool) {
	for _, t := range s {
		if t.ID == id {
			return t, true
		}
	}
	return Info{}, false
}

// Neighbors returns the nearest content-bearing tokens on either side of
// the caret. Whitespace, indent, and newline tokens are skipped; callers
// only ever see tokens a keystroke could apply to.
func (s Stream) Neighbors(offset int) (left, right Side) {
	for i := len(s) - 1; i >= 0; i-- {
		t := s[i]
		if t.Kind.IsWhitespace() {
			continue
		}
		if t.StartPos < offset {
			left = Side{Kind: SideLeft, Tok: t}
			break
		}
	}
	for _, t := range s {
		if t.Kind.IsWhitespace() {
			continue
		}
		if t.EndPos > offset {
			right = Side{Kind: SideRight, Tok: t}
			break
		}
	}
	return left, right
}

// Grid is a (row, col) position on the rendered grid.
type Grid struct {
	Row int
	Col int
}

// GridFor converts a text offset to its grid position.
func (s Stream) GridFor(offset int) Grid {
	offset = s.ClampOffset(offset)
	if t, ok := s.At(offset); ok {
		return Grid{Row: t.StartRow, Col: t.StartCol + (offset - t.StartPos)}
	}
	if len(s) == 0 {
		return Grid{}
	}
	last := s[len(s)-1]
	if last.Kind == KindNewline {
		return Grid{Row: last.StartRow + 1, Col: 0}
	}
	return Grid{Row: last.StartRow, Col: last.StartCol + last.Width()}
}

// OffsetFor converts a grid position back to a text offset, clamping to the
// nearest content on that row: the caret never lands inside an indent run,
// and an empty row maps to column 0.
func (s Stream) OffsetFor(row, col int) int {
	if len(s) == 0 {
		return 0
	}

	maxRow := s[len(s)-1].StartRow
	if s[len(s)-1].Kind == KindNewline {
		maxRow++
	}
	if row < 0 {
		row = 0
	}
	if row > maxRow {
		row = maxRow
	}

	rowStart := 0
	for _, t := range s {
		if t.Kind == KindNewline && t.StartRow < row {
			rowStart = t.EndPos
		}
	}

	var first, last Info
	found := false
	for _, t := range s {
		if t.StartRow != row || t.Kind.IsWhitespace() {
			continue
		}
		if !found {
			first = t
			found = true
		}
		last = t
	}
	if !found {
		return rowStart
	}

	if col <= first.StartCol {
		return first.StartPos
	}
	end := last.StartCol + last.Width()
	if col >= end {
		return last.EndPos
	}
	for _, t := range s {
		if t.StartRow != row || t.Kind.IsWhitespace() {
			continue
		}
		if col >= t.StartCol && col < t.StartCol+t.Width() {
			return t.StartPos + (col - t.StartCol)
		}
	}
	// col falls in a separator between content tokens on this row.
	for _, t := range s {
		if t.StartRow != row {
			continue
		}
		if col >= t.StartCol && col < t.StartCol+t.Width() {
			return t.StartPos + (col - t.StartCol)
		}
	}
	return last.EndPos
}

// NextBlank finds the nearest blank-kind token after from, wrapping past
// the end of the stream.
func (s Stream) NextBlank(from int) (Info, bool) {
	var firstBlank Info
	haveFirst := false
	for _, t := range s {
		if !t.IsBlank() {
			continue
		}
		if !haveFirst {
			firstBlank = t
			haveFirst = true
		}
		if t.StartPos > from {
			return t, true
		}
	}
	if haveFirst {
		return firstBlank, true
	}
	return Info{}, false
}

// PrevBlank finds the nearest blank-kind token before from, wrapping past
// the start of the stream.
func (s Stream) PrevBlank(from int) (Info, bool) {
	var lastBlank Info
	haveLast := false
	for i := len(s) - 1; i >= 0; i-- {
		t := s[i]
		if !t.IsBlank() {
			continue
		}
		if !haveLast {
			lastBlank = t
			haveLast = true
		}
		if t.StartPos < from {
			return t, true
		}
	}
	if haveLast {
		return lastBlank, true
	}
	return Info{}, false
}
