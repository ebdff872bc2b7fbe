package editor

import (
	"strings"

	"github.com/iw2rmb/chisel/expr"
	"github.com/iw2rmb/chisel/token"
)

func (e *Engine) suggestContext(node expr.Expr) SuggestContext {
	switch n := node.(type) {
	case *expr.Partial:
		return SuggestContext{Query: n.Text, TargetID: n.ID}
	case *expr.RightPartial:
		return SuggestContext{Query: n.Text, TargetID: n.ID, RightSide: true}
	}
	return SuggestContext{}
}

// commitPartial resolves an in-progress partial into a concrete node: the
// highlighted suggestion when the provider has one, else the literal
// interpretation of the typed text.
func (e *Engine) commitPartial(tree expr.Expr, cs CursorState, node expr.Expr) (expr.Expr, CursorState) {
	switch n := node.(type) {
	case *expr.Partial:
		return e.commitLeftPartial(tree, cs, n)
	case *expr.RightPartial:
		return e.commitRightPartial(tree, cs, n)
	}
	e.recordError("commit on %T", node)
	return tree, cs
}

func (e *Engine) commitLeftPartial(tree expr.Expr, cs CursorState, n *expr.Partial) (expr.Expr, CursorState) {
	if repl, caretIn, ok := e.suggestedExpr(cs, n); ok {
		repl = e.realign(n, repl)
		tree = expr.ReplaceNode(n.ID, repl, tree)
		s := e.Stream(tree)
		if start, _, ok := subtreeSpan(s, repl); ok {
			return tree, cs.withCaret(s.ClampOffset(start + caretIn)).clearAutocomplete()
		}
		return tree, cs.clearAutocomplete()
	}

	repl := e.literalExpr(n)
	tree = expr.ReplaceNode(n.ID, repl, tree)
	cs = cs.clearAutocomplete()
	switch r := repl.(type) {
	case *expr.BinOp:
		return tree, cs.withCaret(e.caretAtTokenOffset(tree, r.RHS.NodeID(), 0, cs.Caret))
	default:
		return tree, cs.withCaret(e.caretAtTokenEnd(tree, repl.NodeID(), cs.Caret))
	}
}

func (e *Engine) commitRightPartial(tree expr.Expr, cs CursorState, n *expr.RightPartial) (expr.Expr, CursorState) {
	var repl expr.Expr
	if sug, ok := e.suggestion(cs, n); ok && len(sug.Params) > 0 {
		// A named function takes the wrapped expression as its first
		// argument; the rest stay blank.
		args := make([]expr.Expr, len(sug.Params))
		args[0] = n.Wrapped
		for i := 1; i < len(args); i++ {
			args[i] = expr.NewBlank(e.ids)
		}
		repl = &expr.Call{ID: e.ids.Next(), Name: sug.Name, Args: args}
	} else {
		op := n.Text
		if ok {
			op = sug.Name
		}
		repl = &expr.BinOp{
			ID:  e.ids.Next(),
			Op:  op,
			LHS: n.Wrapped,
			RHS: expr.NewBlank(e.ids),
		}
	}

	tree = expr.ReplaceNode(n.ID, repl, tree)
	cs = cs.clearAutocomplete()

	// Land on the first open slot of the committed form.
	s := e.Stream(tree)
	if _, end, ok := subtreeSpan(s, repl); ok {
		if blank, ok2 := s.PrevBlank(end + 1); ok2 && blank.StartPos < end {
			return tree, cs.withCaret(blank.StartPos)
		}
		return tree, cs.withCaret(end)
	}
	return tree, cs
}

// suggestion returns the highlighted provider candidate for the partial.
func (e *Engine) suggestion(cs CursorState, node expr.Expr) (Suggestion, bool) {
	if e.provider == nil {
		return Suggestion{}, false
	}
	items := e.provider.Suggestions(e.suggestContext(node))
	if len(items) == 0 {
		return Suggestion{}, false
	}
	idx := 0
	if cs.HasACIndex {
		idx = cs.ACIndex
	} else if hi, ok := e.provider.HighlightedIndex(); ok {
		idx = hi
	}
	return items[clampSuggestionIndex(idx, len(items))], true
}

func (e *Engine) suggestedExpr(cs CursorState, node expr.Expr) (expr.Expr, int, bool) {
	sug, ok := e.suggestion(cs, node)
	if !ok {
		return nil, 0, false
	}
	repl, caretIn := e.provider.ToExpr(sug, e.ids)
	if repl == nil {
		return nil, 0, false
	}
	return repl, caretIn, true
}

// realign carries a wrapped call's filled arguments into the committed
// call, matching slots by declared parameter name and type. Arguments with
// no matching slot survive as bindings above the result.
func (e *Engine) realign(n *expr.Partial, repl expr.Expr) expr.Expr {
	oldCall, okOld := n.Wrapped.(*expr.Call)
	newCall, okNew := repl.(*expr.Call)
	if !okOld || !okNew {
		return repl
	}

	oldParams := e.tokCtx.ParamsOf(oldCall.Name)
	newParams := e.tokCtx.ParamsOf(newCall.Name)

	out := *newCall
	out.Args = append([]expr.Expr(nil), newCall.Args...)
	for len(out.Args) < len(newParams) {
		out.Args = append(out.Args, expr.NewBlank(e.ids))
	}

	var leftovers []expr.Expr
	for i, arg := range oldCall.Args {
		if arg == nil || expr.IsBlank(arg) {
			continue
		}
		if _, target := arg.(*expr.PipeTarget); target {
			if i < len(out.Args) {
				out.Args[i] = arg
			}
			continue
		}
		if j, ok := matchSlot(oldParams, i, newParams, out.Args); ok {
			out.Args[j] = arg
			continue
		}
		leftovers = append(leftovers, arg)
	}

	var result expr.Expr = &out
	for i := len(leftovers) - 1; i >= 0; i-- {
		result = &expr.Let{
			ID:      e.ids.Next(),
			LHSID:   e.ids.Next(),
			LHSName: "",
			RHS:     leftovers[i],
			Body:    result,
		}
	}
	return result
}

// matchSlot finds the open slot of the new call that the old call's i-th
// argument belongs in: same declared name and type first, then the same
// position when signatures are unknown.
func matchSlot(oldParams []token.Parameter, i int, newParams []token.Parameter, args []expr.Expr) (int, bool) {
	open := func(j int) bool {
		return j < len(args) && (args[j] == nil || expr.IsBlank(args[j]))
	}
	if i < len(oldParams) {
		p := oldParams[i]
		for j, q := range newParams {
			if q.Name == p.Name && q.Type == p.Type && open(j) {
				return j, true
			}
		}
		for j, q := range newParams {
			if q.Type == p.Type && open(j) {
				return j, true
			}
		}
		return 0, false
	}
	if open(i) {
		return i, true
	}
	return 0, false
}

// literalExpr interprets a partial's text without provider help.
func (e *Engine) literalExpr(n *expr.Partial) expr.Expr {
	text := n.Text
	switch {
	case text == "":
		return n.Wrapped
	case text == "true":
		return &expr.BoolLiteral{ID: e.ids.Next(), Value: true}
	case text == "false":
		return &expr.BoolLiteral{ID: e.ids.Next(), Value: false}
	case text == "null":
		return &expr.NullLiteral{ID: e.ids.Next()}
	case allDigits(text):
		return &expr.IntLiteral{ID: e.ids.Next(), Value: text}
	case allInfixTriggers(text):
		return &expr.BinOp{ID: e.ids.Next(), Op: text, LHS: n.Wrapped, RHS: expr.NewBlank(e.ids)}
	default:
		return &expr.Variable{ID: e.ids.Next(), Name: text}
	}
}

func allDigits(s string) bool {
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

func allInfixTriggers(s string) bool {
	if s == "" {
		return false
	}
	return strings.IndexFunc(s, func(r rune) bool { return !isInfixTrigger(r) }) == -1
}
