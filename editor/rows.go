package editor

import (
	"github.com/iw2rmb/chisel/expr"
	"github.com/iw2rmb/chisel/token"
)

// InsertRowAbove adds a blank row before the caret's row in the nearest
// row-structured construct (list, record, match, pipeline).
func (e *Engine) InsertRowAbove(tree expr.Expr, cs CursorState) (expr.Expr, CursorState) {
	return e.insertRowAtCaret(tree, e.Stream(tree), cs, true)
}

// InsertRowBelow adds a blank row after the caret's row.
func (e *Engine) InsertRowBelow(tree expr.Expr, cs CursorState) (expr.Expr, CursorState) {
	return e.insertRowAtCaret(tree, e.Stream(tree), cs, false)
}

func (e *Engine) insertRowAtCaret(tree expr.Expr, s token.Stream, cs CursorState, above bool) (expr.Expr, CursorState) {
	cs = cs.clearSelection().clearColumnMemory().clearAutocomplete()

	tok, ok := caretToken(s, cs.Caret)
	if !ok {
		return tree, cs
	}
	container, idx, ok := rowContainerFor(tree, tok.ID)
	if !ok {
		return tree, cs
	}

	at := idx
	if !above {
		at = idx + 1
	}

	switch c := container.(type) {
	case *expr.ListLiteral:
		blank := expr.NewBlank(e.ids)
		out := *c
		out.Items = insertExprAt(c.Items, at, blank)
		tree = expr.ReplaceNode(c.ID, &out, tree)
		return tree, cs.withCaret(e.caretAtTokenOffset(tree, blank.ID, 0, cs.Caret))

	case *expr.RecordLiteral:
		field := expr.RecordField{ID: e.ids.Next(), Name: "", Value: expr.NewBlank(e.ids)}
		out := *c
		out.Fields = insertFieldAt(c.Fields, at, field)
		tree = expr.ReplaceNode(c.ID, &out, tree)
		return tree, cs.withCaret(e.caretAtTokenOffset(tree, field.ID, 0, cs.Caret))

	case *expr.Match:
		arm := expr.MatchArm{
			Pat:  &expr.PBlank{Match: c.ID, ID: e.ids.Next()},
			Expr: expr.NewBlank(e.ids),
		}
		out := *c
		out.Arms = insertArmAt(c.Arms, at, arm)
		tree = expr.ReplaceNode(c.ID, &out, tree)
		return tree, cs.withCaret(e.caretAtTokenOffset(tree, arm.Pat.PatternID(), 0, cs.Caret))

	case *expr.Pipeline:
		blank := expr.NewBlank(e.ids)
		out := *c
		out.Segments = insertExprAt(c.Segments, at, blank)
		tree = expr.ReplaceNode(c.ID, &out, tree)
		return tree, cs.withCaret(e.caretAtTokenOffset(tree, blank.ID, 0, cs.Caret))
	}
	return tree, cs
}

// caretToken picks the token anchoring the caret's position: the right
// neighbor when the caret sits before or inside it, else the left one.
func caretToken(s token.Stream, caret int) (token.Info, bool) {
	left, right := s.Neighbors(caret)
	if !right.IsNone() {
		return right.Tok, true
	}
	if !left.IsNone() {
		return left.Tok, true
	}
	return token.Info{}, false
}

// rowContainerFor walks up from the token's owner to the nearest construct
// with insertable rows, returning the row index the token falls in.
func rowContainerFor(tree expr.Expr, tokID expr.ID) (expr.Expr, int, bool) {
	cur, ok := ownerNode(tree, tokID)
	if !ok {
		return nil, 0, false
	}
	for {
		if idx, ok := rowIndexIn(cur, tokID); ok {
			return cur, idx, true
		}
		parent, ok := expr.FindParent(cur.NodeID(), tree)
		if !ok {
			return nil, 0, false
		}
		tokID = cur.NodeID()
		cur = parent
	}
}

// rowIndexIn locates tokID's row inside a row container. A hit on the
// container's own structure (brackets, keyword) counts as row zero.
func rowIndexIn(n expr.Expr, tokID expr.ID) (int, bool) {
	inSubtree := func(child expr.Expr) bool {
		ids := map[expr.ID]bool{}
		collectIDs(child, ids)
		return ids[tokID]
	}

	switch c := n.(type) {
	case *expr.ListLiteral:
		for i, item := range c.Items {
			if inSubtree(item) {
				return i, true
			}
		}
		if c.ID == tokID {
			return 0, true
		}
	case *expr.RecordLiteral:
		for i, f := range c.Fields {
			if f.ID == tokID || inSubtree(f.Value) {
				return i, true
			}
		}
		if c.ID == tokID {
			return 0, true
		}
	case *expr.Match:
		for i, arm := range c.Arms {
			if patternClaims(arm.Pat, tokID) || inSubtree(arm.Expr) {
				return i, true
			}
		}
		if c.ID == tokID || inSubtree(c.Subject) {
			return 0, true
		}
	case *expr.Pipeline:
		for i, seg := range c.Segments {
			if inSubtree(seg) {
				return i, true
			}
		}
		if c.ID == tokID {
			return 0, true
		}
	}
	return 0, false
}

func insertExprAt(xs []expr.Expr, at int, x expr.Expr) []expr.Expr {
	at = clampIndex(at, len(xs))
	out := make([]expr.Expr, 0, len(xs)+1)
	out = append(out, xs[:at]...)
	out = append(out, x)
	return append(out, xs[at:]...)
}

func insertFieldAt(xs []expr.RecordField, at int, x expr.RecordField) []expr.RecordField {
	at = clampIndex(at, len(xs))
	out := make([]expr.RecordField, 0, len(xs)+1)
	out = append(out, xs[:at]...)
	out = append(out, x)
	return append(out, xs[at:]...)
}

func insertArmAt(xs []expr.MatchArm, at int, x expr.MatchArm) []expr.MatchArm {
	at = clampIndex(at, len(xs))
	out := make([]expr.MatchArm, 0, len(xs)+1)
	out = append(out, xs[:at]...)
	out = append(out, x)
	return append(out, xs[at:]...)
}

func clampIndex(at, n int) int {
	if at < 0 {
		return 0
	}
	if at > n {
		return n
	}
	return at
}
