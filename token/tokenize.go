package token

import (
	"github.com/iw2rmb/chisel/expr"
	"github.com/iw2rmb/chisel/internal/grapheme"
)

// StringSegmentLen is the grapheme length at which string literals split
// into Start/Middle/End fragments across lines.
const StringSegmentLen = 40

// Parameter describes one declared parameter of a function, supplied by the
// host's signature lookup.
type Parameter struct {
	Name string
	Type string
	// BlockArgs are the declared argument names of a block parameter; a
	// lambda created in that position pre-fills its parameter list from
	// them.
	BlockArgs []string
}

// ParamsFunc resolves a function name to its declared parameters. It may
// return nil for unknown functions.
type ParamsFunc func(fn string) []Parameter

// Context carries the one piece of outside data tokenization needs: the
// signature lookup used to label blank arguments as typed placeholders.
type Context struct {
	Params ParamsFunc
}

// ParamsOf resolves declared parameters through the lookup, tolerating a
// nil one.
func (c Context) ParamsOf(fn string) []Parameter {
	if c.Params == nil {
		return nil
	}
	return c.Params(fn)
}

// Tokenize renders e as its flat token template. The result still needs
// Reflow and Layout before it can back a cursor.
func Tokenize(e expr.Expr, ctx Context) []Token {
	b := &builder{ctx: ctx}
	b.expr(e, 0)
	return b.out
}

// StreamOf runs the full pipeline: Tokenize, Reflow, Layout.
func StreamOf(e expr.Expr, ctx Context) Stream {
	return Layout(Reflow(Tokenize(e, ctx)))
}

type builder struct {
	ctx Context
	out []Token
}

// add appends a token, omitting it entirely when text is empty: a
// zero-length token is an invariant violation, so constructors drop the
// token instead (an empty float fraction keeps its point but no fraction).
func (b *builder) add(id expr.ID, k Kind, text string) {
	if text == "" {
		return
	}
	b.out = append(b.out, Token{ID: id, Kind: k, Text: text})
}

func (b *builder) sep(id expr.ID) {
	b.out = append(b.out, Token{ID: id, Kind: KindSep, Text: " "})
}

func (b *builder) newline(id expr.ID, indent int) {
	b.out = append(b.out, Token{ID: id, Kind: KindNewline, Text: "\n", Indent: indent})
}

func orBlankText(s string) string {
	if s == "" {
		return BlankText
	}
	return s
}

// placeholderLabel renders "name: Type" for a typed blank slot.
func placeholderLabel(p Parameter) string {
	if p.Name == "" {
		return ""
	}
	if p.Type == "" {
		return p.Name
	}
	return p.Name + ": " + p.Type
}

// arg emits a child expression, rendering a Blank as a typed placeholder
// when the enclosing signature names the slot.
func (b *builder) arg(child expr.Expr, indent int, p Parameter) {
	if blank, ok := child.(*expr.Blank); ok {
		if label := placeholderLabel(p); label != "" {
			b.add(blank.ID, KindPlaceholder, label)
			return
		}
	}
	b.expr(child, indent)
}

func paramAt(params []Parameter, i int) Parameter {
	if i < 0 || i >= len(params) {
		return Parameter{}
	}
	return params[i]
}

func (b *builder) expr(e expr.Expr, indent int) {
	switch n := e.(type) {
	case *expr.Blank:
		b.add(n.ID, KindBlank, BlankText)

	case *expr.IntLiteral:
		b.add(n.ID, KindInteger, n.Value)

	case *expr.FloatLiteral:
		b.add(n.ID, KindFloatWhole, n.Whole)
		b.add(n.ID, KindFloatPoint, ".")
		b.add(n.ID, KindFloatFraction, n.Fraction)

	case *expr.StringLiteral:
		b.stringLiteral(n, indent)

	case *expr.BoolLiteral:
		if n.Value {
			b.add(n.ID, KindTrue, "true")
		} else {
			b.add(n.ID, KindFalse, "false")
		}

	case *expr.NullLiteral:
		b.add(n.ID, KindNull, "null")

	case *expr.Variable:
		b.add(n.ID, KindVariable, n.Name)

	case *expr.Let:
		b.add(n.ID, KindLetKeyword, "let")
		b.sep(n.ID)
		b.add(n.LHSID, KindLetVarName, orBlankText(n.LHSName))
		b.sep(n.ID)
		b.add(n.ID, KindLetAssignment, "=")
		b.sep(n.ID)
		b.expr(n.RHS, indent)
		b.newline(n.ID, indent)
		b.expr(n.Body, indent)

	case *expr.If:
		b.add(n.ID, KindIfKeyword, "if")
		b.sep(n.ID)
		b.expr(n.Cond, indent)
		b.newline(n.ID, indent)
		b.add(n.ID, KindIfThenKeyword, "then")
		b.newline(n.ID, indent+2)
		b.expr(n.Then, indent+2)
		b.newline(n.ID, indent)
		b.add(n.ID, KindIfElseKeyword, "else")
		b.newline(n.ID, indent+2)
		b.expr(n.Else, indent+2)

	case *expr.BinOp:
		params := b.ctx.ParamsOf(n.Op)
		if _, target := n.LHS.(*expr.PipeTarget); !target {
			b.arg(n.LHS, indent, paramAt(params, 0))
			b.sep(n.ID)
		}
		b.add(n.ID, KindBinOp, n.Op)
		b.sep(n.ID)
		b.arg(n.RHS, indent, paramAt(params, 1))

	case *expr.Call:
		b.add(n.ID, KindFnName, n.Name)
		params := b.ctx.ParamsOf(n.Name)
		for i, a := range n.Args {
			if _, target := a.(*expr.PipeTarget); target {
				continue
			}
			b.sep(n.ID)
			b.arg(a, indent, paramAt(params, i))
		}

	case *expr.Lambda:
		b.add(n.ID, KindLambdaSymbol, "\\")
		for i, p := range n.Params {
			if i > 0 {
				b.add(n.ID, KindLambdaComma, ",")
			}
			b.sep(n.ID)
			b.add(p.ID, KindLambdaVar, orBlankText(p.Name))
		}
		b.sep(n.ID)
		b.add(n.ID, KindLambdaArrow, "->")
		b.sep(n.ID)
		b.expr(n.Body, indent)

	case *expr.FieldAccess:
		b.expr(n.Target, indent)
		b.add(n.ID, KindFieldOp, ".")
		b.add(n.FieldID, KindFieldName, orBlankText(n.FieldName))

	case *expr.ListLiteral:
		b.add(n.ID, KindListOpen, "[")
		for i, item := range n.Items {
			if i > 0 {
				b.add(n.ID, KindListComma, ",")
				b.sep(n.ID)
			}
			b.expr(item, indent)
		}
		b.add(n.ID, KindListClose, "]")

	case *expr.RecordLiteral:
		b.add(n.ID, KindRecordOpen, "{")
		for _, f := range n.Fields {
			b.newline(n.ID, indent+2)
			b.add(f.ID, KindRecordFieldname, orBlankText(f.Name))
			b.sep(n.ID)
			b.add(n.ID, KindRecordSep, ":")
			b.sep(n.ID)
			b.expr(f.Value, indent+2)
		}
		if len(n.Fields) > 0 {
			b.newline(n.ID, indent)
		}
		b.add(n.ID, KindRecordClose, "}")

	case *expr.Pipeline:
		for i, seg := range n.Segments {
			if i > 0 {
				b.newline(n.ID, indent)
				b.add(n.ID, KindPipe, "|>")
				b.sep(n.ID)
			}
			b.expr(seg, indent)
		}

	case *expr.PipeTarget:
		// Implicit: the previous segment's result flows in unrendered.

	case *expr.Constructor:
		b.add(n.ID, KindConstructorName, n.Name)
		for _, a := range n.Args {
			b.sep(n.ID)
			b.expr(a, indent)
		}

	case *expr.Match:
		b.add(n.ID, KindMatchKeyword, "match")
		b.sep(n.ID)
		b.expr(n.Subject, indent)
		for _, arm := range n.Arms {
			b.newline(n.ID, indent+2)
			b.pattern(arm.Pat)
			b.sep(n.ID)
			b.add(n.ID, KindMatchArrow, "->")
			b.sep(n.ID)
			b.expr(arm.Expr, indent+2)
		}

	case *expr.FeatureFlag:
		b.add(n.ID, KindFlagWhenKeyword, "when")
		b.sep(n.ID)
		b.expr(n.Cond, indent)
		b.newline(n.ID, indent)
		b.expr(n.CaseA, indent)
		b.newline(n.ID, indent)
		b.add(n.ID, KindFlagEnabledKeyword, "enabled")
		b.newline(n.ID, indent+2)
		b.expr(n.CaseB, indent+2)

	case *expr.Partial:
		b.add(n.ID, KindPartial, orBlankText(n.Text))

	case *expr.RightPartial:
		b.expr(n.Wrapped, indent)
		b.sep(n.ID)
		b.add(n.ID, KindRightPartial, orBlankText(n.Text))
	}
}

// stringLiteral renders short strings as a single quoted token and long
// ones as Start/Middle/End fragments joined by newlines, each fragment
// remembering its grapheme offset within the logical value.
func (b *builder) stringLiteral(n *expr.StringLiteral, indent int) {
	count := grapheme.Count(n.Value)
	if count <= StringSegmentLen {
		b.add(n.ID, KindString, "\""+n.Value+"\"")
		return
	}

	for start := 0; start < count; start += StringSegmentLen {
		end := start + StringSegmentLen
		if end > count {
			end = count
		}
		seg := grapheme.Slice(n.Value, start, end)
		switch {
		case start == 0:
			b.out = append(b.out, Token{ID: n.ID, Kind: KindStringMLStart, Text: "\"" + seg, Offset: 0})
		case end == count:
			b.out = append(b.out, Token{ID: n.ID, Kind: KindStringMLEnd, Text: seg + "\"", Offset: start})
		default:
			b.out = append(b.out, Token{ID: n.ID, Kind: KindStringMLMiddle, Text: seg, Offset: start})
		}
		if end < count {
			b.newline(n.ID, indent+1)
		}
	}
}

func (b *builder) pattern(p expr.Pattern) {
	switch pat := p.(type) {
	case *expr.PBlank:
		b.add(pat.ID, KindPatternBlank, BlankText)
	case *expr.PVariable:
		b.add(pat.ID, KindPatternVariable, orBlankText(pat.Name))
	case *expr.PInteger:
		b.add(pat.ID, KindPatternInteger, pat.Value)
	case *expr.PFloat:
		b.add(pat.ID, KindPatternFloatWhole, pat.Whole)
		b.add(pat.ID, KindPatternFloatPoint, ".")
		b.add(pat.ID, KindPatternFloatFraction, pat.Fraction)
	case *expr.PBool:
		if pat.Value {
			b.add(pat.ID, KindPatternTrue, "true")
		} else {
			b.add(pat.ID, KindPatternFalse, "false")
		}
	case *expr.PString:
		b.add(pat.ID, KindPatternString, "\""+pat.Value+"\"")
	case *expr.PNull:
		b.add(pat.ID, KindPatternNull, "null")
	case *expr.PConstructor:
		b.add(pat.ID, KindPatternConstructorName, orBlankText(pat.Name))
		for _, sub := range pat.Args {
			b.sep(pat.ID)
			b.pattern(sub)
		}
	}
}
