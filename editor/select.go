package editor

import "github.com/iw2rmb/chisel/expr"

// SelectAll selects the whole rendering.
func (e *Engine) SelectAll(tree expr.Expr, cs CursorState) CursorState {
	s := e.Stream(tree)
	cs = cs.clearColumnMemory().clearAutocomplete()
	cs.Anchor = 0
	cs.HasAnchor = true
	return cs.withCaret(s.TextLen())
}

// SelectNode selects the rendering of the node under the caret.
func (e *Engine) SelectNode(tree expr.Expr, cs CursorState) CursorState {
	s := e.Stream(tree)
	tok, ok := caretToken(s, s.ClampOffset(cs.Caret))
	if !ok {
		return cs
	}
	node, ok := ownerNode(tree, tok.ID)
	if !ok {
		return cs
	}
	start, end, ok := subtreeSpan(s, node)
	if !ok {
		return cs
	}
	cs = cs.clearColumnMemory().clearAutocomplete()
	cs.Anchor = start
	cs.HasAnchor = true
	return cs.withCaret(end)
}
