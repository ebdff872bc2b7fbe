package editor

import (
	"github.com/iw2rmb/chisel/expr"
	"github.com/iw2rmb/chisel/internal/grapheme"
	"github.com/iw2rmb/chisel/token"
)

// insertIntoToken splices a character into a textual token's backing node.
func (e *Engine) insertIntoToken(tree expr.Expr, s token.Stream, cs CursorState, tok token.Info, r rune) (expr.Expr, CursorState) {
	at := cs.Caret - tok.StartPos

	switch tok.Kind {
	case token.KindInteger:
		n, ok := mustNode[*expr.IntLiteral](e, tree, tok.ID)
		if !ok {
			return tree, cs
		}
		if isDigit(r) {
			out := *n
			out.Value = grapheme.Insert(n.Value, at, string(r))
			return expr.ReplaceNode(n.ID, &out, tree), cs.withCaret(cs.Caret + 1)
		}
		if r == '.' {
			f := &expr.FloatLiteral{
				ID:       n.ID,
				Whole:    grapheme.Slice(n.Value, 0, at),
				Fraction: grapheme.Slice(n.Value, at, grapheme.Count(n.Value)),
			}
			return expr.ReplaceNode(n.ID, f, tree), cs.withCaret(cs.Caret + 1)
		}

	case token.KindFloatWhole:
		if isDigit(r) {
			n, ok := mustNode[*expr.FloatLiteral](e, tree, tok.ID)
			if !ok {
				return tree, cs
			}
			out := *n
			out.Whole = grapheme.Insert(n.Whole, at, string(r))
			return expr.ReplaceNode(n.ID, &out, tree), cs.withCaret(cs.Caret + 1)
		}

	case token.KindFloatFraction:
		if isDigit(r) {
			n, ok := mustNode[*expr.FloatLiteral](e, tree, tok.ID)
			if !ok {
				return tree, cs
			}
			out := *n
			out.Fraction = grapheme.Insert(n.Fraction, at, string(r))
			return expr.ReplaceNode(n.ID, &out, tree), cs.withCaret(cs.Caret + 1)
		}

	case token.KindString, token.KindStringMLStart, token.KindStringMLMiddle, token.KindStringMLEnd:
		if inStringContent(tok, at) {
			return e.insertIntoString(tree, cs, tok, at, r)
		}

	case token.KindVariable:
		if isIdentRune(r) {
			n, ok := mustNode[*expr.Variable](e, tree, tok.ID)
			if !ok {
				return tree, cs
			}
			out := *n
			out.Name = grapheme.Insert(n.Name, at, string(r))
			return expr.ReplaceNode(n.ID, &out, tree), cs.withCaret(cs.Caret + 1)
		}

	case token.KindFnName:
		// Editing a call's name reopens it as a partial wrapping the call.
		if isIdentRune(r) {
			n, ok := mustNode[*expr.Call](e, tree, tok.ID)
			if !ok {
				return tree, cs
			}
			p := &expr.Partial{
				ID:      e.ids.Next(),
				Text:    grapheme.Insert(n.Name, at, string(r)),
				Wrapped: n,
			}
			return expr.ReplaceNode(n.ID, p, tree), cs.withCaret(cs.Caret + 1)
		}

	case token.KindConstructorName:
		if isIdentRune(r) {
			n, ok := mustNode[*expr.Constructor](e, tree, tok.ID)
			if !ok {
				return tree, cs
			}
			out := *n
			out.Name = grapheme.Insert(n.Name, at, string(r))
			return expr.ReplaceNode(n.ID, &out, tree), cs.withCaret(cs.Caret + 1)
		}

	case token.KindLetVarName:
		if isIdentRune(r) {
			owner, ok := ownerNode(tree, tok.ID)
			if !ok {
				return tree, cs
			}
			let, ok := owner.(*expr.Let)
			if !ok {
				e.recordError("let name token %d owned by %T", tok.ID, owner)
				return tree, cs
			}
			return e.renameLet(tree, cs, let, grapheme.Insert(let.LHSName, at, string(r)), cs.Caret+1)
		}

	case token.KindLambdaVar:
		if isIdentRune(r) {
			return e.renameLambdaParam(tree, cs, tok.ID, func(old string) string {
				return grapheme.Insert(old, at, string(r))
			}, cs.Caret+1)
		}

	case token.KindFieldName:
		if isIdentRune(r) {
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
			out.FieldName = grapheme.Insert(fa.FieldName, at, string(r))
			return expr.ReplaceNode(fa.ID, &out, tree), cs.withCaret(cs.Caret + 1)
		}

	case token.KindRecordFieldname:
		if isIdentRune(r) {
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
					out.Fields[i].Name = grapheme.Insert(f.Name, at, string(r))
				}
			}
			return expr.ReplaceNode(rec.ID, &out, tree), cs.withCaret(cs.Caret + 1)
		}

	case token.KindBinOp:
		if isInfixTrigger(r) {
			n, ok := mustNode[*expr.BinOp](e, tree, tok.ID)
			if !ok {
				return tree, cs
			}
			out := *n
			out.Op = grapheme.Insert(n.Op, at, string(r))
			return expr.ReplaceNode(n.ID, &out, tree), cs.withCaret(cs.Caret + 1)
		}

	case token.KindPatternVariable:
		if isIdentRune(r) {
			return e.editPattern(tree, cs, tok.ID, func(p expr.Pattern) expr.Pattern {
				pv, ok := p.(*expr.PVariable)
				if !ok {
					return p
				}
				out := *pv
				out.Name = grapheme.Insert(pv.Name, at, string(r))
				return &out
			}, cs.Caret+1)
		}

	case token.KindPatternInteger:
		if isDigit(r) {
			return e.editPattern(tree, cs, tok.ID, func(p expr.Pattern) expr.Pattern {
				pi, ok := p.(*expr.PInteger)
				if !ok {
					return p
				}
				out := *pi
				out.Value = grapheme.Insert(pi.Value, at, string(r))
				return &out
			}, cs.Caret+1)
		}

	case token.KindPatternString:
		if at >= 1 && at <= tok.Width()-1 {
			return e.editPattern(tree, cs, tok.ID, func(p expr.Pattern) expr.Pattern {
				ps, ok := p.(*expr.PString)
				if !ok {
					return p
				}
				out := *ps
				out.Value = grapheme.Insert(ps.Value, at-1, string(r))
				return &out
			}, cs.Caret+1)
		}

	case token.KindPatternFloatWhole:
		if isDigit(r) {
			return e.editPattern(tree, cs, tok.ID, func(p expr.Pattern) expr.Pattern {
				pf, ok := p.(*expr.PFloat)
				if !ok {
					return p
				}
				out := *pf
				out.Whole = grapheme.Insert(pf.Whole, at, string(r))
				return &out
			}, cs.Caret+1)
		}

	case token.KindPatternFloatFraction:
		if isDigit(r) {
			return e.editPattern(tree, cs, tok.ID, func(p expr.Pattern) expr.Pattern {
				pf, ok := p.(*expr.PFloat)
				if !ok {
					return p
				}
				out := *pf
				out.Fraction = grapheme.Insert(pf.Fraction, at, string(r))
				return &out
			}, cs.Caret+1)
		}

	case token.KindPatternConstructorName:
		if isIdentRune(r) {
			return e.editPattern(tree, cs, tok.ID, func(p expr.Pattern) expr.Pattern {
				pc, ok := p.(*expr.PConstructor)
				if !ok {
					return p
				}
				out := *pc
				out.Name = grapheme.Insert(pc.Name, at, string(r))
				return &out
			}, cs.Caret+1)
		}
	}

	if isInfixTrigger(r) && cs.Caret == tok.EndPos {
		return e.wrapRightPartial(tree, s, cs, tok, r)
	}
	return tree, cs
}

func stringQuotes(k token.Kind) (lead, trail int) {
	if k == token.KindString || k == token.KindStringMLStart {
		lead = 1
	}
	if k == token.KindString || k == token.KindStringMLEnd {
		trail = 1
	}
	return lead, trail
}

// inStringContent reports whether a caret offset within the token sits in
// editable content rather than on a quote.
func inStringContent(tok token.Info, at int) bool {
	lead, trail := stringQuotes(tok.Kind)
	return at >= lead && at <= tok.Width()-trail
}

func (e *Engine) insertIntoString(tree expr.Expr, cs CursorState, tok token.Info, at int, r rune) (expr.Expr, CursorState) {
	lead, _ := stringQuotes(tok.Kind)
	n, ok := mustNode[*expr.StringLiteral](e, tree, tok.ID)
	if !ok {
		return tree, cs
	}
	out := *n
	out.Value = grapheme.Insert(n.Value, tok.Offset+at-lead, string(r))
	return expr.ReplaceNode(n.ID, &out, tree), cs.withCaret(cs.Caret + 1)
}

// renameLet sets a let binding's name and renames the uses it governs.
func (e *Engine) renameLet(tree expr.Expr, cs CursorState, let *expr.Let, newName string, caret int) (expr.Expr, CursorState) {
	out := *let
	out.LHSName = newName
	if let.LHSName != "" && let.LHSName != newName {
		out.Body = expr.RenameVariableUses(let.LHSName, func(v *expr.Variable) expr.Expr {
			return &expr.Variable{ID: v.ID, Name: newName}
		}, let.Body)
	}
	tree = expr.ReplaceNode(let.ID, &out, tree)
	return tree, cs.withCaret(caret)
}

func (e *Engine) renameLambdaParam(tree expr.Expr, cs CursorState, paramID expr.ID, apply func(string) string, caret int) (expr.Expr, CursorState) {
	owner, ok := ownerNode(tree, paramID)
	if !ok {
		return tree, cs
	}
	lam, ok := owner.(*expr.Lambda)
	if !ok {
		e.recordError("lambda param token %d owned by %T", paramID, owner)
		return tree, cs
	}
	out := *lam
	out.Params = append([]expr.LambdaParam(nil), lam.Params...)
	for i, p := range out.Params {
		if p.ID != paramID {
			continue
		}
		newName := apply(p.Name)
		out.Params[i].Name = newName
		if p.Name != "" && p.Name != newName {
			out.Body = expr.RenameVariableUses(p.Name, func(v *expr.Variable) expr.Expr {
				return &expr.Variable{ID: v.ID, Name: newName}
			}, lam.Body)
		}
	}
	tree = expr.ReplaceNode(lam.ID, &out, tree)
	return tree, cs.withCaret(caret)
}

func (e *Engine) editPattern(tree expr.Expr, cs CursorState, patID expr.ID, apply func(expr.Pattern) expr.Pattern, caret int) (expr.Expr, CursorState) {
	owner, ok := ownerNode(tree, patID)
	if !ok {
		return tree, cs
	}
	m, ok := owner.(*expr.Match)
	if !ok {
		e.recordError("pattern token %d owned by %T", patID, owner)
		return tree, cs
	}
	var current expr.Pattern
	for _, arm := range m.Arms {
		if p := findPattern(arm.Pat, patID); p != nil {
			current = p
		}
	}
	if current == nil {
		e.recordError("pattern %d not in match %d", patID, m.ID)
		return tree, cs
	}
	tree = expr.ReplacePattern(patID, apply(current), tree)
	return tree, cs.withCaret(caret)
}

func findPattern(p expr.Pattern, id expr.ID) expr.Pattern {
	if p == nil {
		return nil
	}
	if p.PatternID() == id {
		return p
	}
	if pc, ok := p.(*expr.PConstructor); ok {
		for _, sub := range pc.Args {
			if got := findPattern(sub, id); got != nil {
				return got
			}
		}
	}
	return nil
}

// wrapRightPartial wraps the complete expression ending at the caret in a
// RightPartial carrying the typed operator character.
func (e *Engine) wrapRightPartial(tree expr.Expr, s token.Stream, cs CursorState, leftTok token.Info, r rune) (expr.Expr, CursorState) {
	owner, ok := ownerNode(tree, leftTok.ID)
	if !ok {
		return tree, cs
	}
	if _, ok := owner.(*expr.Partial); ok {
		return tree, cs
	}
	if _, ok := owner.(*expr.RightPartial); ok {
		return tree, cs
	}

	// Only a node whose rendering ends exactly at the caret can be wrapped.
	if _, end, ok := subtreeSpan(s, owner); !ok || end != cs.Caret {
		return tree, cs
	}

	// Widen to the largest enclosing expression that also ends here.
	n := owner
	for {
		parent, ok := expr.FindParent(n.NodeID(), tree)
		if !ok {
			break
		}
		switch parent.(type) {
		case *expr.Partial, *expr.RightPartial, *expr.Pipeline:
			// Wrapping stays below in-progress nodes and pipe chains.
		default:
			if _, end, ok := subtreeSpan(s, parent); ok && end == cs.Caret {
				n = parent
				continue
			}
		}
		break
	}

	rp := &expr.RightPartial{ID: e.ids.Next(), Text: string(r), Wrapped: n}
	tree = expr.ReplaceNode(n.NodeID(), rp, tree)
	return tree, cs.withCaret(e.caretAtTokenEnd(tree, rp.ID, cs.Caret+1))
}
