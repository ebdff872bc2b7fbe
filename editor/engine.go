package editor

import (
	"github.com/iw2rmb/chisel/expr"
	"github.com/iw2rmb/chisel/token"
)

// Config wires an Engine's collaborators. IDs is required; Provider and
// Params may be nil, in which case commits fall back to literal
// interpretation and blanks render untyped.
type Config struct {
	IDs      *expr.Gen
	Provider Provider
	Params   token.ParamsFunc
}

// Engine is the keystroke state machine. It holds injected collaborators
// and diagnostics; the tree/cursor pair is threaded by the caller and never
// stored.
type Engine struct {
	ids      *expr.Gen
	provider Provider
	tokCtx   token.Context
	diags    []string

	// inCommit disables re-entrant partial commits: committing as a side
	// effect of a keystroke re-invokes dispatch once and only once.
	inCommit bool
}

func NewEngine(cfg Config) *Engine {
	ids := cfg.IDs
	if ids == nil {
		ids = expr.NewGen()
	}
	return &Engine{
		ids:      ids,
		provider: cfg.Provider,
		tokCtx:   token.Context{Params: cfg.Params},
	}
}

// Stream renders the tree through the engine's tokenization context.
func (e *Engine) Stream(tree expr.Expr) token.Stream {
	return token.StreamOf(tree, e.tokCtx)
}

// Dispatch applies one input event. It is total: any event the current
// cursor position cannot absorb returns the tree unchanged with at most a
// cursor movement.
func (e *Engine) Dispatch(tree expr.Expr, cs CursorState, ev Event) (outTree expr.Expr, outCS CursorState) {
	if tree == nil {
		e.recordError("dispatch on nil tree")
		return tree, cs
	}

	s := e.Stream(tree)
	cs.Caret = s.ClampOffset(cs.Caret)

	defer func() { outCS.LastKind = ev.Kind }()

	switch ev.Kind {
	case EventLeft, EventRight, EventUp, EventDown, EventHome, EventEnd:
		cs = e.navigate(s, cs, ev)
		return tree, cs

	case EventTab:
		return e.tabForward(tree, s, cs)

	case EventShiftTab:
		return e.tabBackward(tree, s, cs)

	case EventEnter:
		return e.enter(tree, s, cs)

	case EventInsert:
		return e.insert(tree, s, cs, ev.Rune)

	case EventBackspace:
		return e.deleteLeft(tree, s, cs)

	case EventDelete:
		return e.deleteRight(tree, s, cs)

	default:
		return tree, cs
	}
}

// redispatch re-invokes the state machine once after an implicit commit.
// The inCommit guard keeps the recursion single-depth.
func (e *Engine) redispatch(tree expr.Expr, cs CursorState, ev Event) (expr.Expr, CursorState) {
	if e.inCommit {
		return tree, cs
	}
	e.inCommit = true
	tree, cs = e.Dispatch(tree, cs, ev)
	e.inCommit = false
	return tree, cs
}

func (e *Engine) navigate(s token.Stream, cs CursorState, ev Event) CursorState {
	prev := cs.Caret
	switch ev.Kind {
	case EventLeft:
		if _, _, ok := cs.Selection(); ok && !ev.Extend {
			start, _, _ := cs.Selection()
			cs = cs.clearSelection().withCaret(start)
		} else {
			cs = cs.withCaret(e.caretLeft(s, cs.Caret))
		}
		cs = cs.clearColumnMemory()

	case EventRight:
		if _, _, ok := cs.Selection(); ok && !ev.Extend {
			_, end, _ := cs.Selection()
			cs = cs.clearSelection().withCaret(end)
		} else {
			cs = cs.withCaret(e.caretRight(s, cs.Caret))
		}
		cs = cs.clearColumnMemory()

	case EventUp, EventDown:
		grid := s.GridFor(cs.Caret)
		col := grid.Col
		if cs.HasUpDownCol {
			col = cs.UpDownCol
		}
		row := grid.Row
		if ev.Kind == EventUp {
			row--
		} else {
			row++
		}
		cs = cs.withCaret(s.OffsetFor(row, col))
		cs.UpDownCol = col
		cs.HasUpDownCol = true

	case EventHome:
		grid := s.GridFor(cs.Caret)
		cs = cs.withCaret(s.OffsetFor(grid.Row, 0)).clearColumnMemory()

	case EventEnd:
		grid := s.GridFor(cs.Caret)
		cs = cs.withCaret(s.OffsetFor(grid.Row, s.TextLen())).clearColumnMemory()
	}

	if ev.Extend {
		if !cs.HasAnchor {
			cs.Anchor = prev
			cs.HasAnchor = true
		}
	} else {
		cs = cs.clearSelection()
	}
	return cs.clearAutocomplete()
}

// caretLeft moves one step left: a single grapheme inside textual tokens,
// a whole token when the neighbor is atomic, and across whitespace runs in
// one hop.
func (e *Engine) caretLeft(s token.Stream, caret int) int {
	left, _ := s.Neighbors(caret)
	if left.IsNone() {
		return 0
	}
	t := left.Tok
	if caret > t.EndPos {
		return t.EndPos
	}
	if t.Kind.IsAtomic() {
		return t.StartPos
	}
	return caret - 1
}

func (e *Engine) caretRight(s token.Stream, caret int) int {
	_, right := s.Neighbors(caret)
	if right.IsNone() {
		return s.TextLen()
	}
	t := right.Tok
	if caret < t.StartPos {
		return t.StartPos
	}
	if t.Kind.IsAtomic() {
		return t.EndPos
	}
	return caret + 1
}

// tabForward commits a pending autocomplete if one is open, otherwise jumps
// to the next blank.
func (e *Engine) tabForward(tree expr.Expr, s token.Stream, cs CursorState) (expr.Expr, CursorState) {
	if p, ok := e.partialAt(tree, s, cs.Caret); ok {
		return e.commitPartial(tree, cs, p)
	}
	if blank, ok := s.NextBlank(cs.Caret); ok {
		cs = cs.withCaret(blank.StartPos)
	}
	return tree, cs.clearSelection().clearColumnMemory()
}

func (e *Engine) tabBackward(tree expr.Expr, s token.Stream, cs CursorState) (expr.Expr, CursorState) {
	if blank, ok := s.PrevBlank(cs.Caret); ok {
		cs = cs.withCaret(blank.StartPos)
	}
	return tree, cs.clearSelection().clearColumnMemory()
}

// enter commits a pending autocomplete, or inserts a structural row when
// the caret sits in a row-structured construct.
func (e *Engine) enter(tree expr.Expr, s token.Stream, cs CursorState) (expr.Expr, CursorState) {
	if p, ok := e.partialAt(tree, s, cs.Caret); ok {
		return e.commitPartial(tree, cs, p)
	}

	grid := s.GridFor(cs.Caret)
	atRowStart := cs.Caret == s.OffsetFor(grid.Row, 0)
	if atRowStart {
		return e.insertRowAtCaret(tree, s, cs, true)
	}
	return e.insertRowAtCaret(tree, s, cs, false)
}

// MoveAutocomplete moves the highlighted suggestion index, clamped to the
// candidate count. The engine owns index movement; ranking stays with the
// provider.
func (e *Engine) MoveAutocomplete(tree expr.Expr, cs CursorState, delta int) CursorState {
	if e.provider == nil {
		return cs
	}
	s := e.Stream(tree)
	p, ok := e.partialAt(tree, s, cs.Caret)
	if !ok {
		return cs
	}
	items := e.provider.Suggestions(e.suggestContext(p))
	if len(items) == 0 {
		return cs.clearAutocomplete()
	}
	idx := 0
	if cs.HasACIndex {
		idx = cs.ACIndex
	} else if hi, ok := e.provider.HighlightedIndex(); ok {
		idx = hi
	}
	cs.ACIndex = clampSuggestionIndex(idx+delta, len(items))
	cs.HasACIndex = true
	return cs
}
