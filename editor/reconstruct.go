package editor

import (
	"strings"

	"github.com/iw2rmb/chisel/expr"
	"github.com/iw2rmb/chisel/internal/grapheme"
	"github.com/iw2rmb/chisel/token"
)

// Reconstruct builds a standalone expression equivalent to the selected
// region. Fully covered nodes clone with fresh ids; partially covered
// literals trim to the covered text; partially covered structures keep the
// covered members and blank the rest. A selection that covers only one
// child of a structure whose own tokens lie outside yields that child
// alone. Clipped identifiers and call names come back as a Partial carrying
// the covered text, never as the full original.
func (e *Engine) Reconstruct(tree expr.Expr, cs CursorState) (expr.Expr, bool) {
	start, end, ok := cs.Selection()
	if !ok {
		return nil, false
	}
	s := e.Stream(tree)
	top, ok := topmostNodeIn(tree, s, start, end)
	if !ok {
		return nil, false
	}
	out := e.reconstructNode(s, top, start, end)
	if out == nil {
		return nil, false
	}
	return out, true
}

func (e *Engine) reconstructNode(s token.Stream, n expr.Expr, start, end int) expr.Expr {
	full, some := coverage(s, n, start, end)
	if !some {
		return nil
	}
	if full {
		return expr.CloneFresh(e.ids, n)
	}

	switch t := n.(type) {
	case *expr.Blank, *expr.PipeTarget:
		return expr.NewBlank(e.ids)

	case *expr.BoolLiteral, *expr.NullLiteral:
		// Atomic keywords survive partial coverage whole.
		return expr.CloneFresh(e.ids, n)

	case *expr.IntLiteral:
		text := coveredTokenText(s, t.ID, token.KindInteger, start, end)
		if text == "" {
			return expr.NewBlank(e.ids)
		}
		return &expr.IntLiteral{ID: e.ids.Next(), Value: text}

	case *expr.FloatLiteral:
		whole := coveredTokenText(s, t.ID, token.KindFloatWhole, start, end)
		point := coveredTokenText(s, t.ID, token.KindFloatPoint, start, end)
		frac := coveredTokenText(s, t.ID, token.KindFloatFraction, start, end)
		if whole == "" && point == "" && frac == "" {
			return expr.NewBlank(e.ids)
		}
		if point == "" {
			return &expr.IntLiteral{ID: e.ids.Next(), Value: whole + frac}
		}
		return &expr.FloatLiteral{ID: e.ids.Next(), Whole: whole, Fraction: frac}

	case *expr.StringLiteral:
		return &expr.StringLiteral{ID: e.ids.Next(), Value: coveredStringText(s, t.ID, start, end)}

	case *expr.Variable:
		text := coveredTokenText(s, t.ID, token.KindVariable, start, end)
		if text == "" {
			return expr.NewBlank(e.ids)
		}
		if text != t.Name {
			// A clipped identifier stays editable rather than silently
			// resolving to the full original.
			return &expr.Partial{ID: e.ids.Next(), Text: text, Wrapped: expr.NewBlank(e.ids)}
		}
		return &expr.Variable{ID: e.ids.Next(), Name: text}

	case *expr.Let:
		rhs := e.reconstructNode(s, t.RHS, start, end)
		body := e.reconstructNode(s, t.Body, start, end)
		if !tokensCovered(s, t.ID, start, end) {
			if only := oneOf(rhs, body); only != nil {
				return only
			}
		}
		name := ""
		if tokensCovered(s, t.LHSID, start, end) {
			name = t.LHSName
		}
		return &expr.Let{
			ID:      e.ids.Next(),
			LHSID:   e.ids.Next(),
			LHSName: name,
			RHS:     e.orBlank(rhs),
			Body:    e.orBlank(body),
		}

	case *expr.If:
		cond := e.reconstructNode(s, t.Cond, start, end)
		then := e.reconstructNode(s, t.Then, start, end)
		els := e.reconstructNode(s, t.Else, start, end)
		if !tokensCovered(s, t.ID, start, end) {
			if only := oneOf(cond, then, els); only != nil {
				return only
			}
		}
		return &expr.If{
			ID:   e.ids.Next(),
			Cond: e.orBlank(cond),
			Then: e.orBlank(then),
			Else: e.orBlank(els),
		}

	case *expr.BinOp:
		lhs := e.reconstructNode(s, t.LHS, start, end)
		rhs := e.reconstructNode(s, t.RHS, start, end)
		if !tokensCovered(s, t.ID, start, end) {
			if only := oneOf(lhs, rhs); only != nil {
				return only
			}
		}
		return &expr.BinOp{
			ID:  e.ids.Next(),
			Op:  t.Op,
			LHS: e.orBlank(lhs),
			RHS: e.orBlank(rhs),
		}

	case *expr.Call:
		args := make([]expr.Expr, len(t.Args))
		var covered []expr.Expr
		for i, a := range t.Args {
			r := e.reconstructNode(s, a, start, end)
			if r != nil {
				covered = append(covered, r)
			}
			args[i] = e.orBlank(r)
		}
		if !tokensCovered(s, t.ID, start, end) && len(covered) == 1 {
			return covered[0]
		}
		call := &expr.Call{ID: e.ids.Next(), Name: t.Name, Args: args}
		if name := coveredTokenText(s, t.ID, token.KindFnName, start, end); name != "" && name != t.Name {
			return &expr.Partial{ID: e.ids.Next(), Text: name, Wrapped: call}
		}
		return call

	case *expr.Lambda:
		body := e.reconstructNode(s, t.Body, start, end)
		if !tokensCovered(s, t.ID, start, end) && body != nil {
			return body
		}
		params := make([]expr.LambdaParam, len(t.Params))
		for i, p := range t.Params {
			params[i] = expr.LambdaParam{ID: e.ids.Next(), Name: p.Name}
		}
		return &expr.Lambda{ID: e.ids.Next(), Params: params, Body: e.orBlank(body)}

	case *expr.FieldAccess:
		target := e.reconstructNode(s, t.Target, start, end)
		if !tokensCovered(s, t.ID, start, end) && !tokensCovered(s, t.FieldID, start, end) {
			if target != nil {
				return target
			}
		}
		return &expr.FieldAccess{
			ID:        e.ids.Next(),
			Target:    e.orBlank(target),
			FieldID:   e.ids.Next(),
			FieldName: t.FieldName,
		}

	case *expr.ListLiteral:
		var items []expr.Expr
		for _, item := range t.Items {
			if r := e.reconstructNode(s, item, start, end); r != nil {
				items = append(items, r)
			}
		}
		if !tokensCovered(s, t.ID, start, end) && len(items) == 1 {
			return items[0]
		}
		return &expr.ListLiteral{ID: e.ids.Next(), Items: items}

	case *expr.RecordLiteral:
		var fields []expr.RecordField
		var lastValue expr.Expr
		for _, f := range t.Fields {
			v := e.reconstructNode(s, f.Value, start, end)
			if v == nil && !tokensCovered(s, f.ID, start, end) {
				continue
			}
			lastValue = v
			fields = append(fields, expr.RecordField{
				ID:    e.ids.Next(),
				Name:  f.Name,
				Value: e.orBlank(v),
			})
		}
		if !tokensCovered(s, t.ID, start, end) && len(fields) == 1 && lastValue != nil {
			return lastValue
		}
		return &expr.RecordLiteral{ID: e.ids.Next(), Fields: fields}

	case *expr.Pipeline:
		var segs []expr.Expr
		for _, seg := range t.Segments {
			if r := e.reconstructNode(s, seg, start, end); r != nil {
				segs = append(segs, r)
			}
		}
		switch len(segs) {
		case 0:
			return expr.NewBlank(e.ids)
		case 1:
			// A covered pipe with only one covered segment keeps the
			// pipeline shape, open at the other end.
			if tokensOfKindCovered(s, t.ID, token.KindPipe, start, end) {
				return &expr.Pipeline{ID: e.ids.Next(), Segments: []expr.Expr{segs[0], expr.NewBlank(e.ids)}}
			}
			return segs[0]
		default:
			return &expr.Pipeline{ID: e.ids.Next(), Segments: segs}
		}

	case *expr.Constructor:
		args := make([]expr.Expr, len(t.Args))
		var covered []expr.Expr
		for i, a := range t.Args {
			r := e.reconstructNode(s, a, start, end)
			if r != nil {
				covered = append(covered, r)
			}
			args[i] = e.orBlank(r)
		}
		if !tokensCovered(s, t.ID, start, end) && len(covered) == 1 {
			return covered[0]
		}
		ctor := &expr.Constructor{ID: e.ids.Next(), Name: t.Name, Args: args}
		if name := coveredTokenText(s, t.ID, token.KindConstructorName, start, end); name != "" && name != t.Name {
			return &expr.Partial{ID: e.ids.Next(), Text: name, Wrapped: ctor}
		}
		return ctor

	case *expr.Match:
		subject := e.reconstructNode(s, t.Subject, start, end)
		mid := e.ids.Next()
		var arms []expr.MatchArm
		var coveredExprs []expr.Expr
		for _, arm := range t.Arms {
			body := e.reconstructNode(s, arm.Expr, start, end)
			patCovered := patternTokensCovered(s, arm.Pat, start, end)
			if body == nil && !patCovered {
				continue
			}
			pat := expr.Pattern(&expr.PBlank{Match: mid, ID: e.ids.Next()})
			if patCovered {
				pat = expr.ClonePatternFresh(e.ids, mid, arm.Pat)
			}
			if body != nil {
				coveredExprs = append(coveredExprs, body)
			}
			arms = append(arms, expr.MatchArm{Pat: pat, Expr: e.orBlank(body)})
		}
		if !tokensCovered(s, t.ID, start, end) {
			if len(arms) == 0 && subject != nil {
				return subject
			}
			if len(arms) == 1 && len(coveredExprs) == 1 && !patternTokensCovered(s, t.Arms[0].Pat, start, end) && subject == nil {
				return coveredExprs[0]
			}
		}
		if len(arms) == 0 {
			arms = []expr.MatchArm{{
				Pat:  &expr.PBlank{Match: mid, ID: e.ids.Next()},
				Expr: expr.NewBlank(e.ids),
			}}
		}
		return &expr.Match{ID: mid, Subject: e.orBlank(subject), Arms: arms}

	case *expr.FeatureFlag:
		cond := e.reconstructNode(s, t.Cond, start, end)
		caseA := e.reconstructNode(s, t.CaseA, start, end)
		caseB := e.reconstructNode(s, t.CaseB, start, end)
		if !tokensCovered(s, t.ID, start, end) {
			if only := oneOf(cond, caseA, caseB); only != nil {
				return only
			}
		}
		return &expr.FeatureFlag{
			ID:    e.ids.Next(),
			Name:  t.Name,
			Cond:  e.orBlank(cond),
			CaseA: e.orBlank(caseA),
			CaseB: e.orBlank(caseB),
		}

	case *expr.Partial:
		text := coveredTokenText(s, t.ID, token.KindPartial, start, end)
		return &expr.Partial{ID: e.ids.Next(), Text: text, Wrapped: expr.NewBlank(e.ids)}

	case *expr.RightPartial:
		wrapped := e.reconstructNode(s, t.Wrapped, start, end)
		text := coveredTokenText(s, t.ID, token.KindRightPartial, start, end)
		if text == "" && wrapped != nil {
			return wrapped
		}
		return &expr.RightPartial{ID: e.ids.Next(), Text: text, Wrapped: e.orBlank(wrapped)}
	}

	return expr.CloneFresh(e.ids, n)
}

func (e *Engine) orBlank(x expr.Expr) expr.Expr {
	if x == nil {
		return expr.NewBlank(e.ids)
	}
	return x
}

// oneOf returns the sole non-nil argument, or nil.
func oneOf(xs ...expr.Expr) expr.Expr {
	var only expr.Expr
	for _, x := range xs {
		if x == nil {
			continue
		}
		if only != nil {
			return nil
		}
		only = x
	}
	return only
}

// coverage reports whether n's rendered span is fully or partly inside
// [start, end).
func coverage(s token.Stream, n expr.Expr, start, end int) (full, some bool) {
	st, en, ok := subtreeSpan(s, n)
	if !ok {
		return false, false
	}
	if en <= start || st >= end {
		return false, false
	}
	return st >= start && en <= end, true
}

func tokensCovered(s token.Stream, id expr.ID, start, end int) bool {
	for _, t := range s {
		if t.ID != id || t.Kind.IsWhitespace() {
			continue
		}
		if t.StartPos < end && t.EndPos > start {
			return true
		}
	}
	return false
}

func tokensOfKindCovered(s token.Stream, id expr.ID, k token.Kind, start, end int) bool {
	for _, t := range s {
		if t.ID != id || t.Kind != k {
			continue
		}
		if t.StartPos < end && t.EndPos > start {
			return true
		}
	}
	return false
}

func patternTokensCovered(s token.Stream, p expr.Pattern, start, end int) bool {
	ids := map[expr.ID]bool{}
	collectPatternIDs(p, ids)
	for _, t := range s {
		if !ids[t.ID] || t.Kind.IsWhitespace() {
			continue
		}
		if t.StartPos < end && t.EndPos > start {
			return true
		}
	}
	return false
}

// coveredTokenText concatenates the covered slices of every token of the
// given id and kind.
func coveredTokenText(s token.Stream, id expr.ID, k token.Kind, start, end int) string {
	var out strings.Builder
	for _, t := range s {
		if t.ID != id || t.Kind != k {
			continue
		}
		lo, hi := maxInt(start, t.StartPos), minInt(end, t.EndPos)
		if lo >= hi {
			continue
		}
		out.WriteString(grapheme.Slice(t.Text, lo-t.StartPos, hi-t.StartPos))
	}
	return out.String()
}

// coveredStringText gathers covered string content, quotes excluded.
func coveredStringText(s token.Stream, id expr.ID, start, end int) string {
	var out strings.Builder
	for _, t := range s {
		if t.ID != id || !t.Kind.IsStringFragment() {
			continue
		}
		lead, trail := stringQuotes(t.Kind)
		lo := maxInt(start, t.StartPos+lead)
		hi := minInt(end, t.EndPos-trail)
		if lo >= hi {
			continue
		}
		out.WriteString(grapheme.Slice(t.Text, lo-t.StartPos, hi-t.StartPos))
	}
	return out.String()
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
