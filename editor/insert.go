package editor

import (
	"github.com/iw2rmb/chisel/expr"
	"github.com/iw2rmb/chisel/internal/grapheme"
	"github.com/iw2rmb/chisel/token"
)

// insert dispatches a character by the caret's token neighborhood: an
// active selection blanks out first, then pending partials absorb, then
// blanks start nodes, then textual tokens edit in place, then infix
// triggers wrap. Anything else is a dead end that leaves the tree alone.
func (e *Engine) insert(tree expr.Expr, s token.Stream, cs CursorState, r rune) (expr.Expr, CursorState) {
	if start, end, ok := cs.Selection(); ok {
		tree, cs = e.deleteSelection(tree, s, cs, start, end)
		s = e.Stream(tree)
	}
	cs = cs.clearSelection().clearColumnMemory()

	if p, ok := e.partialAt(tree, s, cs.Caret); ok {
		return e.insertIntoPartial(tree, s, cs, p, r)
	}

	left, right := s.Neighbors(cs.Caret)

	if !right.IsNone() && right.Tok.IsBlank() && cs.Caret >= right.Tok.StartPos {
		return e.insertOnBlank(tree, s, cs, right.Tok, r)
	}
	if !left.IsNone() && left.Tok.IsBlank() && cs.Caret == left.Tok.EndPos {
		return e.insertOnBlank(tree, s, cs, left.Tok, r)
	}

	if !left.IsNone() && left.Tok.Kind.IsTextual() && cs.Caret > left.Tok.StartPos && cs.Caret <= left.Tok.EndPos {
		return e.insertIntoToken(tree, s, cs, left.Tok, r)
	}
	if !right.IsNone() && right.Tok.Kind.IsTextual() && cs.Caret == right.Tok.StartPos {
		return e.insertIntoToken(tree, s, cs, right.Tok, r)
	}

	// Digit right after a float point whose fraction is still empty.
	if isDigit(r) && !left.IsNone() && left.Tok.Kind == token.KindFloatPoint && cs.Caret == left.Tok.EndPos {
		if f, ok := mustNode[*expr.FloatLiteral](e, tree, left.Tok.ID); ok {
			out := *f
			out.Fraction = string(r) + f.Fraction
			tree = expr.ReplaceNode(f.ID, &out, tree)
			return tree, cs.withCaret(cs.Caret + 1)
		}
	}

	if isInfixTrigger(r) && !left.IsNone() && cs.Caret == left.Tok.EndPos {
		return e.wrapRightPartial(tree, s, cs, left.Tok, r)
	}

	// Dead end: the keystroke is inapplicable here.
	return tree, cs
}

// insertIntoPartial continues, commits, or commits-and-redispatches based
// on whether the character can extend the partial's text.
func (e *Engine) insertIntoPartial(tree expr.Expr, s token.Stream, cs CursorState, node expr.Expr, r rune) (expr.Expr, CursorState) {
	tok, ok := s.WithID(node.NodeID())
	if !ok {
		e.recordError("partial %d has no token", node.NodeID())
		return tree, cs
	}
	at := cs.Caret - tok.StartPos
	if at < 0 {
		at = 0
	}

	continues := false
	switch n := node.(type) {
	case *expr.Partial:
		continues = isIdentRune(r) || isDigit(r) || r == '.'
		if continues {
			out := *n
			out.Text = grapheme.Insert(n.Text, at, string(r))
			tree = expr.ReplaceNode(n.ID, &out, tree)
			return tree, cs.withCaret(cs.Caret + 1).clearAutocomplete()
		}
	case *expr.RightPartial:
		continues = isInfixTrigger(r)
		if continues {
			out := *n
			out.Text = grapheme.Insert(n.Text, at, string(r))
			tree = expr.ReplaceNode(n.ID, &out, tree)
			return tree, cs.withCaret(cs.Caret + 1).clearAutocomplete()
		}
	default:
		e.recordError("insertIntoPartial on %T", node)
		return tree, cs
	}

	// Space commits and is swallowed; any other incompatible character
	// commits and then re-applies itself once.
	tree, cs = e.commitPartial(tree, cs, node)
	if r == ' ' {
		return tree, cs
	}
	return e.redispatch(tree, cs, Insert(r))
}

// insertOnBlank starts a node in an empty slot: digits begin integers,
// quotes begin strings, brackets begin collections, a backslash begins a
// lambda, and identifier or operator characters begin a partial.
func (e *Engine) insertOnBlank(tree expr.Expr, s token.Stream, cs CursorState, tok token.Info, r rune) (expr.Expr, CursorState) {
	node, ok := ownerNode(tree, tok.ID)
	if !ok {
		e.recordError("blank token %d has no owner", tok.ID)
		return tree, cs
	}

	switch n := node.(type) {
	case *expr.Blank:
		return e.startOnBlankExpr(tree, cs, n, r)

	case *expr.Let:
		if isIdentStart(r) {
			out := *n
			out.LHSName = string(r)
			tree = expr.ReplaceNode(n.ID, &out, tree)
			return tree, cs.withCaret(e.caretAtTokenOffset(tree, n.LHSID, 1, cs.Caret))
		}

	case *expr.Lambda:
		if isIdentStart(r) {
			out := *n
			out.Params = append([]expr.LambdaParam(nil), n.Params...)
			for i, p := range out.Params {
				if p.ID == tok.ID {
					out.Params[i].Name = string(r)
				}
			}
			tree = expr.ReplaceNode(n.ID, &out, tree)
			return tree, cs.withCaret(e.caretAtTokenOffset(tree, tok.ID, 1, cs.Caret))
		}

	case *expr.FieldAccess:
		if isIdentStart(r) {
			out := *n
			out.FieldName = string(r)
			tree = expr.ReplaceNode(n.ID, &out, tree)
			return tree, cs.withCaret(e.caretAtTokenOffset(tree, n.FieldID, 1, cs.Caret))
		}

	case *expr.RecordLiteral:
		if isIdentStart(r) {
			out := *n
			out.Fields = append([]expr.RecordField(nil), n.Fields...)
			for i, f := range out.Fields {
				if f.ID == tok.ID {
					out.Fields[i].Name = string(r)
				}
			}
			tree = expr.ReplaceNode(n.ID, &out, tree)
			return tree, cs.withCaret(e.caretAtTokenOffset(tree, tok.ID, 1, cs.Caret))
		}

	case *expr.Match:
		return e.startOnBlankPattern(tree, cs, n, tok.ID, r)
	}

	return tree, cs.withCaret(tok.StartPos)
}

func (e *Engine) startOnBlankExpr(tree expr.Expr, cs CursorState, blank *expr.Blank, r rune) (expr.Expr, CursorState) {
	var repl expr.Expr
	caretIn := 1
	switch {
	case isDigit(r):
		repl = &expr.IntLiteral{ID: e.ids.Next(), Value: string(r)}
	case r == '"':
		repl = &expr.StringLiteral{ID: e.ids.Next(), Value: ""}
	case r == '[':
		repl = &expr.ListLiteral{ID: e.ids.Next()}
	case r == '{':
		repl = &expr.RecordLiteral{ID: e.ids.Next()}
	case r == '\\':
		repl = e.newLambdaFor(tree, blank)
		caretIn = 2
	case isIdentStart(r) || isInfixTrigger(r):
		repl = &expr.Partial{ID: e.ids.Next(), Text: string(r), Wrapped: blank}
	case r == '.':
		repl = &expr.FloatLiteral{ID: e.ids.Next()}
	default:
		return tree, cs
	}

	tree = expr.ReplaceNode(blank.ID, repl, tree)
	s := e.Stream(tree)
	if start, _, ok := subtreeSpan(s, repl); ok {
		return tree, cs.withCaret(s.ClampOffset(start + caretIn))
	}
	return tree, cs
}

// newLambdaFor pre-fills the parameter list from the enclosing call's
// declared block-argument names when the signature lookup knows them.
func (e *Engine) newLambdaFor(tree expr.Expr, blank *expr.Blank) *expr.Lambda {
	names := []string{""}
	if parent, ok := expr.FindParent(blank.ID, tree); ok {
		if call, ok := parent.(*expr.Call); ok && e.tokCtx.Params != nil {
			params := e.tokCtx.Params(call.Name)
			for i, a := range call.Args {
				if a != nil && a.NodeID() == blank.ID && i < len(params) && len(params[i].BlockArgs) > 0 {
					names = params[i].BlockArgs
				}
			}
		}
	}
	lamParams := make([]expr.LambdaParam, len(names))
	for i, name := range names {
		lamParams[i] = expr.LambdaParam{ID: e.ids.Next(), Name: name}
	}
	return &expr.Lambda{ID: e.ids.Next(), Params: lamParams, Body: expr.NewBlank(e.ids)}
}

func (e *Engine) startOnBlankPattern(tree expr.Expr, cs CursorState, m *expr.Match, patID expr.ID, r rune) (expr.Expr, CursorState) {
	var repl expr.Pattern
	switch {
	case isDigit(r):
		repl = &expr.PInteger{Match: m.ID, ID: e.ids.Next(), Value: string(r)}
	case isIdentStart(r):
		repl = &expr.PVariable{Match: m.ID, ID: e.ids.Next(), Name: string(r)}
	case r == '"':
		repl = &expr.PString{Match: m.ID, ID: e.ids.Next(), Value: ""}
	default:
		return tree, cs
	}
	tree = expr.ReplacePattern(patID, repl, tree)
	return tree, cs.withCaret(e.caretAtTokenOffset(tree, repl.PatternID(), 1, cs.Caret))
}

// mustNode loads the node behind a token id as a concrete type, recording
// a diagnostic on shape mismatch. The tree is left for the caller to
// return unchanged.
func mustNode[T expr.Expr](e *Engine, tree expr.Expr, id expr.ID) (T, bool) {
	var zero T
	n, ok := expr.FindNode(id, tree)
	if !ok {
		e.recordError("node %d not found", id)
		return zero, false
	}
	typed, ok := n.(T)
	if !ok {
		e.recordError("node %d is %T, not %T", id, n, zero)
		return zero, false
	}
	return typed, true
}
