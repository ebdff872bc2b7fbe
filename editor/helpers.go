package editor

import (
	"github.com/iw2rmb/chisel/expr"
	"github.com/iw2rmb/chisel/token"
)

// ownerNode resolves a token's owning id to its expression node. Token ids
// are usually node ids, but nameable slots (let bindings, lambda params,
// field names) and patterns carry their own ids; those resolve to the
// enclosing expression.
func ownerNode(tree expr.Expr, id expr.ID) (expr.Expr, bool) {
	if n, ok := expr.FindNode(id, tree); ok {
		return n, true
	}
	var found expr.Expr
	expr.Walk(tree, func(n expr.Expr) bool {
		if found != nil {
			return false
		}
		if claimsID(n, id) {
			found = n
			return false
		}
		return true
	})
	return found, found != nil
}

func claimsID(n expr.Expr, id expr.ID) bool {
	switch node := n.(type) {
	case *expr.Let:
		return node.LHSID == id
	case *expr.Lambda:
		for _, p := range node.Params {
			if p.ID == id {
				return true
			}
		}
	case *expr.FieldAccess:
		return node.FieldID == id
	case *expr.RecordLiteral:
		for _, f := range node.Fields {
			if f.ID == id {
				return true
			}
		}
	case *expr.Match:
		for _, arm := range node.Arms {
			if patternClaims(arm.Pat, id) {
				return true
			}
		}
	}
	return false
}

func patternClaims(p expr.Pattern, id expr.ID) bool {
	if p == nil {
		return false
	}
	if p.PatternID() == id {
		return true
	}
	if pc, ok := p.(*expr.PConstructor); ok {
		for _, sub := range pc.Args {
			if patternClaims(sub, id) {
				return true
			}
		}
	}
	return false
}

// collectIDs gathers every id rendered by the subtree rooted at n,
// including binding, field, and pattern ids.
func collectIDs(n expr.Expr, into map[expr.ID]bool) {
	expr.Walk(n, func(node expr.Expr) bool {
		into[node.NodeID()] = true
		switch t := node.(type) {
		case *expr.Let:
			into[t.LHSID] = true
		case *expr.Lambda:
			for _, p := range t.Params {
				into[p.ID] = true
			}
		case *expr.FieldAccess:
			into[t.FieldID] = true
		case *expr.RecordLiteral:
			for _, f := range t.Fields {
				into[f.ID] = true
			}
		case *expr.Match:
			for _, arm := range t.Arms {
				collectPatternIDs(arm.Pat, into)
			}
		}
		return true
	})
}

func collectPatternIDs(p expr.Pattern, into map[expr.ID]bool) {
	if p == nil {
		return
	}
	into[p.PatternID()] = true
	if pc, ok := p.(*expr.PConstructor); ok {
		for _, sub := range pc.Args {
			collectPatternIDs(sub, into)
		}
	}
}

// subtreeSpan returns the token range [start, end) covered by the subtree
// rooted at n.
func subtreeSpan(s token.Stream, n expr.Expr) (start, end int, ok bool) {
	ids := map[expr.ID]bool{}
	collectIDs(n, ids)
	first := true
	for _, t := range s {
		if !ids[t.ID] || t.Kind.IsWhitespace() {
			continue
		}
		if first || t.StartPos < start {
			start = t.StartPos
		}
		if first || t.EndPos > end {
			end = t.EndPos
		}
		first = false
	}
	return start, end, !first
}

// depthOf returns the AST depth of the node carrying id (root is 0).
func depthOf(tree expr.Expr, id expr.ID) (int, bool) {
	var walk func(n expr.Expr, d int) (int, bool)
	walk = func(n expr.Expr, d int) (int, bool) {
		if n == nil {
			return 0, false
		}
		if n.NodeID() == id || claimsID(n, id) {
			return d, true
		}
		for _, c := range expr.Children(n) {
			if got, ok := walk(c, d+1); ok {
				return got, true
			}
		}
		return 0, false
	}
	return walk(tree, 0)
}

// topmostNodeIn returns the shallowest node whose rendering overlaps the
// range [start, end). Ties resolve to the earliest token.
func topmostNodeIn(tree expr.Expr, s token.Stream, start, end int) (expr.Expr, bool) {
	var best expr.Expr
	bestDepth := -1
	for _, t := range s {
		if t.Kind.IsWhitespace() || t.EndPos <= start || t.StartPos >= end {
			continue
		}
		owner, ok := ownerNode(tree, t.ID)
		if !ok {
			continue
		}
		d, ok := depthOf(tree, owner.NodeID())
		if !ok {
			continue
		}
		if bestDepth == -1 || d < bestDepth {
			best = owner
			bestDepth = d
		}
	}
	return best, best != nil
}

// partialAt returns the Partial or RightPartial whose token touches the
// caret (inside or at either edge).
func (e *Engine) partialAt(tree expr.Expr, s token.Stream, caret int) (expr.Expr, bool) {
	check := func(side token.Side) (expr.Expr, bool) {
		if side.IsNone() {
			return nil, false
		}
		t := side.Tok
		if t.Kind != token.KindPartial && t.Kind != token.KindRightPartial {
			return nil, false
		}
		if caret < t.StartPos || caret > t.EndPos {
			return nil, false
		}
		n, ok := expr.FindNode(t.ID, tree)
		if !ok {
			return nil, false
		}
		switch n.(type) {
		case *expr.Partial, *expr.RightPartial:
			return n, true
		}
		return nil, false
	}

	left, right := s.Neighbors(caret)
	if n, ok := check(left); ok {
		return n, true
	}
	return check(right)
}

// caretAtTokenEnd places the caret at the end of the first token owned by
// id in a freshly rendered stream, falling back to the old caret.
func (e *Engine) caretAtTokenEnd(tree expr.Expr, id expr.ID, fallback int) int {
	s := e.Stream(tree)
	if t, ok := s.WithID(id); ok {
		return t.EndPos
	}
	return s.ClampOffset(fallback)
}

// caretAtTokenOffset places the caret within the first token owned by id.
func (e *Engine) caretAtTokenOffset(tree expr.Expr, id expr.ID, offset, fallback int) int {
	s := e.Stream(tree)
	if t, ok := s.WithID(id); ok {
		pos := t.StartPos + offset
		return s.ClampOffset(pos)
	}
	return s.ClampOffset(fallback)
}
