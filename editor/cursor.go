package editor

// CursorState is the full cursor for one editing session: caret offset,
// optional selection anchor, the remembered column for vertical movement,
// the last event kind, and the autocomplete highlight. It is a value;
// Dispatch returns the successor state.
type CursorState struct {
	// Caret is the grapheme offset into the rendered text.
	Caret int

	// Anchor is the fixed end of the selection when HasAnchor is set. The
	// caret is the moving end.
	Anchor    int
	HasAnchor bool

	// UpDownCol remembers the column a vertical-movement run started in,
	// so passing through short rows does not lose it.
	UpDownCol    int
	HasUpDownCol bool

	// LastKind is the kind of the previously dispatched event.
	LastKind EventKind

	// ACIndex is the highlighted autocomplete row when HasACIndex is set.
	ACIndex    int
	HasACIndex bool
}

// Selection returns the selected range in ascending order. ok is false for
// a collapsed cursor.
func (cs CursorState) Selection() (start, end int, ok bool) {
	if !cs.HasAnchor || cs.Anchor == cs.Caret {
		return 0, 0, false
	}
	if cs.Anchor < cs.Caret {
		return cs.Anchor, cs.Caret, true
	}
	return cs.Caret, cs.Anchor, true
}

func (cs CursorState) withCaret(at int) CursorState {
	cs.Caret = at
	return cs
}

func (cs CursorState) clearSelection() CursorState {
	cs.Anchor = 0
	cs.HasAnchor = false
	return cs
}

func (cs CursorState) clearColumnMemory() CursorState {
	cs.UpDownCol = 0
	cs.HasUpDownCol = false
	return cs
}

func (cs CursorState) clearAutocomplete() CursorState {
	cs.ACIndex = 0
	cs.HasACIndex = false
	return cs
}
