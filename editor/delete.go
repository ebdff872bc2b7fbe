package editor

import (
	"github.com/iw2rmb/chisel/expr"
	"github.com/iw2rmb/chisel/internal/grapheme"
	"github.com/iw2rmb/chisel/token"
)

// deleteLeft handles backspace. An active selection blanks the covered
// subtree; otherwise the keystroke shrinks the textual token left of the
// caret or collapses the structure owning an atomic one.
func (e *Engine) deleteLeft(tree expr.Expr, s token.Stream, cs CursorState) (expr.Expr, CursorState) {
	if start, end, ok := cs.Selection(); ok {
		return e.deleteSelection(tree, s, cs, start, end)
	}
	cs = cs.clearColumnMemory().clearAutocomplete()

	left, _ := s.Neighbors(cs.Caret)
	if left.IsNone() {
		return tree, cs
	}
	tok := left.Tok

	// Caret in the whitespace after the token: the first press only
	// repositions.
	if cs.Caret > tok.EndPos {
		return tree, cs.withCaret(tok.EndPos)
	}

	if tok.IsBlank() {
		return tree, cs.withCaret(tok.StartPos)
	}
	if tok.Kind.IsTextual() || isFloatPoint(tok.Kind) {
		at := cs.Caret - tok.StartPos
		if at < 1 {
			return tree, cs
		}
		return e.deleteFromToken(tree, cs, tok, at-1, cs.Caret-1)
	}
	return e.deleteStructural(tree, cs, tok)
}

// deleteRight handles forward delete: the mirror of deleteLeft, acting on
// the token right of the caret.
func (e *Engine) deleteRight(tree expr.Expr, s token.Stream, cs CursorState) (expr.Expr, CursorState) {
	if start, end, ok := cs.Selection(); ok {
		return e.deleteSelection(tree, s, cs, start, end)
	}
	cs = cs.clearColumnMemory().clearAutocomplete()

	_, right := s.Neighbors(cs.Caret)
	if right.IsNone() {
		return tree, cs
	}
	tok := right.Tok

	if cs.Caret < tok.StartPos {
		return tree, cs.withCaret(tok.StartPos)
	}

	if tok.IsBlank() {
		return tree, cs.withCaret(tok.EndPos)
	}
	if tok.Kind.IsTextual() || isFloatPoint(tok.Kind) {
		at := cs.Caret - tok.StartPos
		if at >= tok.Width() {
			return tree, cs
		}
		return e.deleteFromToken(tree, cs, tok, at, cs.Caret)
	}
	return e.deleteStructural(tree, cs, tok)
}

// deleteSelection replaces the shallowest node covering the selection with
// a fresh blank.
func (e *Engine) deleteSelection(tree expr.Expr, s token.Stream, cs CursorState, start, end int) (expr.Expr, CursorState) {
	cs = cs.clearSelection().clearColumnMemory().clearAutocomplete()
	node, ok := topmostNodeIn(tree, s, start, end)
	if !ok {
		return tree, cs
	}
	blank := expr.NewBlank(e.ids)
	tree = expr.ReplaceNode(node.NodeID(), blank, tree)
	return tree, cs.withCaret(e.caretAtTokenOffset(tree, blank.ID, 0, start))
}

// deleteFromToken removes the grapheme at index idx of the token's text.
// caretAfter is where the caret lands when the edit is a plain shrink;
// shape changes place it themselves.
func (e *Engine) deleteFromToken(tree expr.Expr, cs CursorState, tok token.Info, idx, caretAfter int) (expr.Expr, CursorState) {
	cs = cs.withCaret(caretAfter)

	switch tok.Kind {
	case token.KindInteger:
		n, ok := mustNode[*expr.IntLiteral](e, tree, tok.ID)
		if !ok {
			return tree, cs
		}
		value := grapheme.Delete(n.Value, idx)
		if value == "" {
			return e.replaceWithBlank(tree, cs, n.ID)
		}
		out := *n
		out.Value = value
		return expr.ReplaceNode(n.ID, &out, tree), cs

	case token.KindFloatWhole:
		n, ok := mustNode[*expr.FloatLiteral](e, tree, tok.ID)
		if !ok {
			return tree, cs
		}
		out := *n
		out.Whole = grapheme.Delete(n.Whole, idx)
		return expr.ReplaceNode(n.ID, &out, tree), cs

	case token.KindFloatPoint:
		// Removing the point fuses the halves back into an integer.
		n, ok := mustNode[*expr.FloatLiteral](e, tree, tok.ID)
		if !ok {
			return tree, cs
		}
		value := n.Whole + n.Fraction
		if value == "" {
			return e.replaceWithBlank(tree, cs, n.ID)
		}
		return expr.ReplaceNode(n.ID, &expr.IntLiteral{ID: n.ID, Value: value}, tree), cs

	case token.KindFloatFraction:
		n, ok := mustNode[*expr.FloatLiteral](e, tree, tok.ID)
		if !ok {
			return tree, cs
		}
		out := *n
		out.Fraction = grapheme.Delete(n.Fraction, idx)
		return expr.ReplaceNode(n.ID, &out, tree), cs

	case token.KindString, token.KindStringMLStart, token.KindStringMLMiddle, token.KindStringMLEnd:
		return e.deleteFromString(tree, cs, tok, idx)

	case token.KindVariable:
		n, ok := mustNode[*expr.Variable](e, tree, tok.ID)
		if !ok {
			return tree, cs
		}
		name := grapheme.Delete(n.Name, idx)
		if name == "" {
			return e.replaceWithBlank(tree, cs, n.ID)
		}
		out := *n
		out.Name = name
		return expr.ReplaceNode(n.ID, &out, tree), cs

	case token.KindFnName:
		// Shrinking a call's name reopens it as a partial; emptying the
		// name of an argument-less call blanks the whole thing.
		n, ok := mustNode[*expr.Call](e, tree, tok.ID)
		if !ok {
			return tree, cs
		}
		name := grapheme.Delete(n.Name, idx)
		if name == "" && expr.ChildrenAllBlank(n) {
			return e.replaceWithBlank(tree, cs, n.ID)
		}
		p := &expr.Partial{ID: e.ids.Next(), Text: name, Wrapped: n}
		return expr.ReplaceNode(n.ID, p, tree), cs

	case token.KindConstructorName:
		n, ok := mustNode[*expr.Constructor](e, tree, tok.ID)
		if !ok {
			return tree, cs
		}
		name := grapheme.Delete(n.Name, idx)
		if name == "" && expr.ChildrenAllBlank(n) {
			return e.replaceWithBlank(tree, cs, n.ID)
		}
		out := *n
		out.Name = name
		return expr.ReplaceNode(n.ID, &out, tree), cs

	case token.KindLetVarName:
		owner, ok := ownerNode(tree, tok.ID)
		if !ok {
			return tree, cs
		}
		let, ok := owner.(*expr.Let)
		if !ok {
			e.recordError("let name token %d owned by %T", tok.ID, owner)
			return tree, cs
		}
		return e.renameLet(tree, cs, let, grapheme.Delete(let.LHSName, idx), caretAfter)

	case token.KindLambdaVar:
		return e.renameLambdaParam(tree, cs, tok.ID, func(old string) string {
			return grapheme.Delete(old, idx)
		}, caretAfter)

	case token.KindFieldName:
		owner, ok := ownerNode(tree, tok.ID)
		if !ok {
			return tree, cs
		}
		fa, ok := owner.(*expr.FieldAccess)
		if !ok {
			e.recordError("field name token %d owned by %T", tok.ID, owner)
			return tree, cs
		}
		out := *fa
		out.FieldName = grapheme.Delete(fa.FieldName, idx)
		return expr.ReplaceNode(fa.ID, &out, tree), cs

	case token.KindRecordFieldname:
		owner, ok := ownerNode(tree, tok.ID)
		if !ok {
			return tree, cs
		}
		rec, ok := owner.(*expr.RecordLiteral)
		if !ok {
			e.recordError("record field token %d owned by %T", tok.ID, owner)
			return tree, cs
		}
		out := *rec
		out.Fields = append([]expr.RecordField(nil), rec.Fields...)
		for i, f := range out.Fields {
			if f.ID == tok.ID {
				out.Fields[i].Name = grapheme.Delete(f.Name, idx)
			}
		}
		return expr.ReplaceNode(rec.ID, &out, tree), cs

	case token.KindBinOp:
		n, ok := mustNode[*expr.BinOp](e, tree, tok.ID)
		if !ok {
			return tree, cs
		}
		op := grapheme.Delete(n.Op, idx)
		if op != "" {
			out := *n
			out.Op = op
			return expr.ReplaceNode(n.ID, &out, tree), cs
		}
		// Emptied operator: keep whichever operand has content.
		if expr.IsBlank(n.RHS) {
			return expr.ReplaceNode(n.ID, n.LHS, tree), cs
		}
		if expr.IsBlank(n.LHS) {
			return expr.ReplaceNode(n.ID, n.RHS, tree), cs
		}
		return tree, cs

	case token.KindPartial:
		n, ok := mustNode[*expr.Partial](e, tree, tok.ID)
		if !ok {
			return tree, cs
		}
		text := grapheme.Delete(n.Text, idx)
		if text == "" {
			tree = expr.ReplaceNode(n.ID, n.Wrapped, tree)
			return tree, cs.withCaret(e.caretAtTokenOffset(tree, n.Wrapped.NodeID(), 0, caretAfter))
		}
		out := *n
		out.Text = text
		return expr.ReplaceNode(n.ID, &out, tree), cs

	case token.KindRightPartial:
		n, ok := mustNode[*expr.RightPartial](e, tree, tok.ID)
		if !ok {
			return tree, cs
		}
		text := grapheme.Delete(n.Text, idx)
		if text == "" {
			tree = expr.ReplaceNode(n.ID, n.Wrapped, tree)
			return tree, cs.withCaret(e.caretAtTokenEnd(tree, n.Wrapped.NodeID(), caretAfter))
		}
		out := *n
		out.Text = text
		return expr.ReplaceNode(n.ID, &out, tree), cs

	case token.KindPatternVariable:
		return e.editPattern(tree, cs, tok.ID, func(p expr.Pattern) expr.Pattern {
			pv, ok := p.(*expr.PVariable)
			if !ok {
				return p
			}
			name := grapheme.Delete(pv.Name, idx)
			if name == "" {
				return &expr.PBlank{Match: pv.Match, ID: pv.ID}
			}
			out := *pv
			out.Name = name
			return &out
		}, caretAfter)

	case token.KindPatternInteger:
		return e.editPattern(tree, cs, tok.ID, func(p expr.Pattern) expr.Pattern {
			pi, ok := p.(*expr.PInteger)
			if !ok {
				return p
			}
			value := grapheme.Delete(pi.Value, idx)
			if value == "" {
				return &expr.PBlank{Match: pi.Match, ID: pi.ID}
			}
			out := *pi
			out.Value = value
			return &out
		}, caretAfter)

	case token.KindPatternString:
		return e.editPattern(tree, cs, tok.ID, func(p expr.Pattern) expr.Pattern {
			ps, ok := p.(*expr.PString)
			if !ok {
				return p
			}
			if idx < 1 || idx > grapheme.Count(ps.Value) {
				if ps.Value == "" {
					return &expr.PBlank{Match: ps.Match, ID: ps.ID}
				}
				return p
			}
			out := *ps
			out.Value = grapheme.Delete(ps.Value, idx-1)
			return &out
		}, caretAfter)

	case token.KindPatternFloatWhole:
		return e.editPattern(tree, cs, tok.ID, func(p expr.Pattern) expr.Pattern {
			pf, ok := p.(*expr.PFloat)
			if !ok {
				return p
			}
			out := *pf
			out.Whole = grapheme.Delete(pf.Whole, idx)
			return &out
		}, caretAfter)

	case token.KindPatternFloatFraction:
		return e.editPattern(tree, cs, tok.ID, func(p expr.Pattern) expr.Pattern {
			pf, ok := p.(*expr.PFloat)
			if !ok {
				return p
			}
			out := *pf
			out.Fraction = grapheme.Delete(pf.Fraction, idx)
			return &out
		}, caretAfter)

	case token.KindPatternFloatPoint:
		return e.editPattern(tree, cs, tok.ID, func(p expr.Pattern) expr.Pattern {
			pf, ok := p.(*expr.PFloat)
			if !ok {
				return p
			}
			value := pf.Whole + pf.Fraction
			if value == "" {
				return &expr.PBlank{Match: pf.Match, ID: pf.ID}
			}
			return &expr.PInteger{Match: pf.Match, ID: pf.ID, Value: value}
		}, caretAfter)

	case token.KindPatternConstructorName:
		return e.editPattern(tree, cs, tok.ID, func(p expr.Pattern) expr.Pattern {
			pc, ok := p.(*expr.PConstructor)
			if !ok {
				return p
			}
			name := grapheme.Delete(pc.Name, idx)
			if name == "" && len(pc.Args) == 0 {
				return &expr.PBlank{Match: pc.Match, ID: pc.ID}
			}
			out := *pc
			out.Name = name
			return &out
		}, caretAfter)
	}

	return tree, cs
}

func isFloatPoint(k token.Kind) bool {
	return k == token.KindFloatPoint || k == token.KindPatternFloatPoint
}

func (e *Engine) deleteFromString(tree expr.Expr, cs CursorState, tok token.Info, idx int) (expr.Expr, CursorState) {
	n, ok := mustNode[*expr.StringLiteral](e, tree, tok.ID)
	if !ok {
		return tree, cs
	}
	lead, trail := stringQuotes(tok.Kind)
	if idx < lead || idx >= tok.Width()-trail {
		// Deleting a quote: only an empty string gives way.
		if n.Value == "" {
			return e.replaceWithBlank(tree, cs, n.ID)
		}
		return tree, cs
	}
	out := *n
	out.Value = grapheme.Delete(n.Value, tok.Offset+idx-lead)
	return expr.ReplaceNode(n.ID, &out, tree), cs
}

// deleteStructural handles atomic tokens: keywords and brackets collapse
// their owner to a blank only when every slot is still empty, separators
// remove the element they introduce.
func (e *Engine) deleteStructural(tree expr.Expr, cs CursorState, tok token.Info) (expr.Expr, CursorState) {
	owner, ok := ownerNode(tree, tok.ID)
	if !ok {
		return tree, cs
	}

	switch tok.Kind {
	case token.KindTrue, token.KindFalse, token.KindNull:
		return e.replaceWithBlank(tree, cs, owner.NodeID())

	case token.KindPatternTrue, token.KindPatternFalse, token.KindPatternNull:
		return e.blankPattern(tree, cs, tok.ID)

	case token.KindPipe:
		return e.removePipeSegment(tree, cs, tok)

	case token.KindListComma:
		return e.removeListElement(tree, cs, tok)

	case token.KindLambdaComma:
		return e.removeLambdaParam(tree, cs, tok)

	case token.KindMatchArrow:
		return e.removeMatchArm(tree, cs, tok)

	case token.KindFieldOp:
		fa, ok := owner.(*expr.FieldAccess)
		if !ok {
			return tree, cs.withCaret(tok.StartPos)
		}
		if fa.FieldName == "" {
			tree = expr.ReplaceNode(fa.ID, fa.Target, tree)
			return tree, cs.withCaret(e.caretAtTokenEnd(tree, fa.Target.NodeID(), tok.StartPos))
		}
		return tree, cs.withCaret(tok.StartPos)

	default:
		if collapsible(owner) {
			return e.replaceWithBlank(tree, cs, owner.NodeID())
		}
		return tree, cs.withCaret(tok.StartPos)
	}
}

// collapsible reports whether deleting the node's structure loses nothing:
// every child is a blank and every nameable slot is still unnamed.
func collapsible(n expr.Expr) bool {
	switch t := n.(type) {
	case *expr.Let:
		return t.LHSName == "" && expr.ChildrenAllBlank(n)
	case *expr.Lambda:
		for _, p := range t.Params {
			if p.Name != "" {
				return false
			}
		}
		return expr.ChildrenAllBlank(n)
	case *expr.RecordLiteral:
		for _, f := range t.Fields {
			if f.Name != "" {
				return false
			}
		}
		return expr.ChildrenAllBlank(n)
	case *expr.Match:
		for _, arm := range t.Arms {
			if _, blank := arm.Pat.(*expr.PBlank); !blank {
				return false
			}
		}
		return expr.ChildrenAllBlank(n)
	default:
		return expr.ChildrenAllBlank(n)
	}
}

func (e *Engine) replaceWithBlank(tree expr.Expr, cs CursorState, id expr.ID) (expr.Expr, CursorState) {
	blank := expr.NewBlank(e.ids)
	tree = expr.ReplaceNode(id, blank, tree)
	return tree, cs.withCaret(e.caretAtTokenOffset(tree, blank.ID, 0, cs.Caret))
}

func (e *Engine) blankPattern(tree expr.Expr, cs CursorState, patID expr.ID) (expr.Expr, CursorState) {
	return e.editPattern(tree, cs, patID, func(p expr.Pattern) expr.Pattern {
		return &expr.PBlank{Match: p.MatchID(), ID: p.PatternID()}
	}, cs.Caret)
}

// removePipeSegment drops the segment introduced by this pipe token. A
// pipeline reduced to one segment collapses to that segment alone.
func (e *Engine) removePipeSegment(tree expr.Expr, cs CursorState, tok token.Info) (expr.Expr, CursorState) {
	pipe, ok := mustNode[*expr.Pipeline](e, tree, tok.ID)
	if !ok {
		return tree, cs
	}
	idx := e.structuralIndex(tree, tok) + 1
	if idx < 1 || idx >= len(pipe.Segments) {
		return tree, cs
	}
	segments := append([]expr.Expr(nil), pipe.Segments[:idx]...)
	segments = append(segments, pipe.Segments[idx+1:]...)
	if len(segments) == 1 {
		tree = expr.ReplaceNode(pipe.ID, segments[0], tree)
		return tree, cs.withCaret(e.caretAtTokenEnd(tree, segments[0].NodeID(), tok.StartPos))
	}
	out := *pipe
	out.Segments = segments
	tree = expr.ReplaceNode(pipe.ID, &out, tree)
	return tree, cs.withCaret(e.caretAtTokenEnd(tree, segments[idx-1].NodeID(), tok.StartPos))
}

func (e *Engine) removeListElement(tree expr.Expr, cs CursorState, tok token.Info) (expr.Expr, CursorState) {
	list, ok := mustNode[*expr.ListLiteral](e, tree, tok.ID)
	if !ok {
		return tree, cs
	}
	idx := e.structuralIndex(tree, tok) + 1
	if idx < 1 || idx >= len(list.Items) {
		return tree, cs
	}
	out := *list
	out.Items = append([]expr.Expr(nil), list.Items[:idx]...)
	out.Items = append(out.Items, list.Items[idx+1:]...)
	tree = expr.ReplaceNode(list.ID, &out, tree)
	return tree, cs.withCaret(e.caretAtTokenEnd(tree, out.Items[idx-1].NodeID(), tok.StartPos))
}

func (e *Engine) removeLambdaParam(tree expr.Expr, cs CursorState, tok token.Info) (expr.Expr, CursorState) {
	lam, ok := mustNode[*expr.Lambda](e, tree, tok.ID)
	if !ok {
		return tree, cs
	}
	idx := e.structuralIndex(tree, tok) + 1
	if idx < 1 || idx >= len(lam.Params) || len(lam.Params) <= 1 {
		return tree, cs
	}
	out := *lam
	out.Params = append([]expr.LambdaParam(nil), lam.Params[:idx]...)
	out.Params = append(out.Params, lam.Params[idx+1:]...)
	tree = expr.ReplaceNode(lam.ID, &out, tree)
	return tree, cs.withCaret(e.caretAtTokenEnd(tree, out.Params[idx-1].ID, tok.StartPos))
}

// removeMatchArm drops the arm whose arrow this is, provided the arm is
// fully blank and at least one arm survives.
func (e *Engine) removeMatchArm(tree expr.Expr, cs CursorState, tok token.Info) (expr.Expr, CursorState) {
	m, ok := mustNode[*expr.Match](e, tree, tok.ID)
	if !ok {
		return tree, cs
	}
	idx := e.structuralIndex(tree, tok)
	if idx < 0 || idx >= len(m.Arms) || len(m.Arms) <= 1 {
		return tree, cs.withCaret(tok.StartPos)
	}
	arm := m.Arms[idx]
	_, patBlank := arm.Pat.(*expr.PBlank)
	if !patBlank || !expr.IsBlank(arm.Expr) {
		return tree, cs.withCaret(tok.StartPos)
	}
	out := *m
	out.Arms = append([]expr.MatchArm(nil), m.Arms[:idx]...)
	out.Arms = append(out.Arms, m.Arms[idx+1:]...)
	tree = expr.ReplaceNode(m.ID, &out, tree)
	return tree, cs.withCaret(e.caretAtTokenEnd(tree, m.ID, tok.StartPos))
}

// structuralIndex counts earlier same-kind tokens with the same owner,
// giving this token's ordinal among its siblings.
func (e *Engine) structuralIndex(tree expr.Expr, tok token.Info) int {
	s := e.Stream(tree)
	n := 0
	for _, t := range s {
		if t.StartPos >= tok.StartPos {
			break
		}
		if t.ID == tok.ID && t.Kind == tok.Kind {
			n++
		}
	}
	return n
}
