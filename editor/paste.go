package editor

import (
	"strconv"

	"github.com/iw2rmb/chisel/expr"
	"github.com/iw2rmb/chisel/internal/grapheme"
	"github.com/iw2rmb/chisel/token"
)

// Payload is one clipboard entry: the reconstructed subtree when the copy
// came from this editor, plus its linear text for interop with plain-text
// clipboards. Expr may be nil for foreign pastes.
type Payload struct {
	Expr expr.Expr
	Text string
}

// Pasted integers stay within 63 bits so hosts with tagged representations
// can hold them.
const maxPastedInt = 1<<62 - 1

// SelectedText returns the linear text under the selection.
func (e *Engine) SelectedText(tree expr.Expr, cs CursorState) (string, bool) {
	start, end, ok := cs.Selection()
	if !ok {
		return "", false
	}
	text := e.Stream(tree).Text()
	n := grapheme.Count(text)
	if start > n {
		start = n
	}
	if end > n {
		end = n
	}
	return grapheme.Slice(text, start, end), true
}

// Copy reconstructs the selection into a payload without touching the tree.
func (e *Engine) Copy(tree expr.Expr, cs CursorState) (Payload, bool) {
	node, ok := e.Reconstruct(tree, cs)
	if !ok {
		return Payload{}, false
	}
	text, _ := e.SelectedText(tree, cs)
	return Payload{Expr: node, Text: text}, true
}

// Cut copies the selection and blanks it out of the tree.
func (e *Engine) Cut(tree expr.Expr, cs CursorState) (Payload, expr.Expr, CursorState) {
	p, ok := e.Copy(tree, cs)
	if !ok {
		return Payload{}, tree, cs
	}
	start, end, _ := cs.Selection()
	tree, cs = e.deleteSelection(tree, e.Stream(tree), cs, start, end)
	return p, tree, cs
}

// PasteInto merges a payload at the caret. A structural payload replaces a
// blank wholesale; text payloads splice into compatible textual tokens
// (digits into integers, anything into strings, identifiers into unnamed
// let slots) and otherwise replay as keystrokes.
func (e *Engine) PasteInto(tree expr.Expr, cs CursorState, p Payload) (expr.Expr, CursorState) {
	if start, end, ok := cs.Selection(); ok {
		tree, cs = e.deleteSelection(tree, e.Stream(tree), cs, start, end)
	}
	s := e.Stream(tree)
	cs = cs.withCaret(s.ClampOffset(cs.Caret)).clearColumnMemory().clearAutocomplete()

	left, right := s.Neighbors(cs.Caret)

	var target token.Info
	haveTarget := false
	switch {
	case !right.IsNone() && right.Tok.IsBlank() && cs.Caret >= right.Tok.StartPos:
		target, haveTarget = right.Tok, true
	case !left.IsNone() && left.Tok.IsBlank() && cs.Caret == left.Tok.EndPos:
		target, haveTarget = left.Tok, true
	case !left.IsNone() && left.Tok.Kind.IsTextual() && cs.Caret > left.Tok.StartPos && cs.Caret <= left.Tok.EndPos:
		target, haveTarget = left.Tok, true
	case !right.IsNone() && right.Tok.Kind.IsTextual() && cs.Caret == right.Tok.StartPos:
		target, haveTarget = right.Tok, true
	}

	if haveTarget {
		switch {
		case (target.Kind == token.KindBlank || target.Kind == token.KindPlaceholder) && p.Expr != nil:
			pasted := expr.CloneFresh(e.ids, p.Expr)
			tree = expr.ReplaceNode(target.ID, pasted, tree)
			s = e.Stream(tree)
			if _, end, ok := subtreeSpan(s, pasted); ok {
				return tree, cs.withCaret(end)
			}
			return tree, cs

		case target.Kind == token.KindInteger && allDigitsText(p.Text):
			return e.pasteIntoInteger(tree, cs, target, p.Text)

		case target.Kind.IsStringFragment() && p.Text != "":
			return e.pasteIntoString(tree, cs, target, p.Text)

		case target.Kind == token.KindLetVarName && target.IsBlank() && identText(p.Text):
			owner, ok := ownerNode(tree, target.ID)
			if !ok {
				return tree, cs
			}
			if let, ok := owner.(*expr.Let); ok && let.LHSName == "" {
				return e.renameLet(tree, cs, let, p.Text, target.StartPos+grapheme.Count(p.Text))
			}
			return tree, cs
		}
	}

	// Foreign or incompatible payloads replay as keystrokes.
	if p.Expr == nil && p.Text != "" {
		for _, r := range p.Text {
			tree, cs = e.Dispatch(tree, cs, Insert(r))
		}
		return tree, cs
	}
	return tree, cs
}

func (e *Engine) pasteIntoInteger(tree expr.Expr, cs CursorState, tok token.Info, digits string) (expr.Expr, CursorState) {
	n, ok := mustNode[*expr.IntLiteral](e, tree, tok.ID)
	if !ok {
		return tree, cs
	}
	at := cs.Caret - tok.StartPos
	value := grapheme.Insert(n.Value, at, digits)
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil || parsed > maxPastedInt {
		return tree, cs
	}
	out := *n
	out.Value = value
	tree = expr.ReplaceNode(n.ID, &out, tree)
	return tree, cs.withCaret(cs.Caret + grapheme.Count(digits))
}

func (e *Engine) pasteIntoString(tree expr.Expr, cs CursorState, tok token.Info, text string) (expr.Expr, CursorState) {
	n, ok := mustNode[*expr.StringLiteral](e, tree, tok.ID)
	if !ok {
		return tree, cs
	}
	at := cs.Caret - tok.StartPos
	if !inStringContent(tok, at) {
		return tree, cs
	}
	lead, _ := stringQuotes(tok.Kind)
	out := *n
	out.Value = grapheme.Insert(n.Value, tok.Offset+at-lead, text)
	tree = expr.ReplaceNode(n.ID, &out, tree)
	return tree, cs.withCaret(cs.Caret + grapheme.Count(text))
}

func allDigitsText(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isDigit(r) {
			return false
		}
	}
	return true
}

func identText(s string) bool {
	for i, r := range s {
		if i == 0 && !isIdentStart(r) {
			return false
		}
		if !isIdentRune(r) {
			return false
		}
	}
	return s != ""
}
