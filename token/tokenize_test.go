package token

import (
	"strings"
	"testing"

	"github.com/iw2rmb/chisel/expr"
)

func kindsOf(ts []Token) []Kind {
	out := make([]Kind, len(ts))
	for i, t := range ts {
		out[i] = t.Kind
	}
	return out
}

func TestTokenize_IntAndFloat(t *testing.T) {
	g := expr.NewGen()
	ts := Tokenize(&expr.IntLiteral{ID: g.Next(), Value: "42"}, Context{})
	if len(ts) != 1 || ts[0].Kind != KindInteger || ts[0].Text != "42" {
		t.Fatalf("int tokens=%v", ts)
	}

	ts = Tokenize(&expr.FloatLiteral{ID: g.Next(), Whole: "3", Fraction: "14"}, Context{})
	want := []Kind{KindFloatWhole, KindFloatPoint, KindFloatFraction}
	if got := kindsOf(ts); len(got) != 3 || got[0] != want[0] || got[1] != want[1] || got[2] != want[2] {
		t.Fatalf("float kinds=%v, want %v", got, want)
	}
}

func TestTokenize_EmptyFloatFractionOmitsToken(t *testing.T) {
	g := expr.NewGen()
	ts := Tokenize(&expr.FloatLiteral{ID: g.Next(), Whole: "3", Fraction: ""}, Context{})
	if len(ts) != 2 {
		t.Fatalf("tokens=%d, want 2 (whole + point, fraction omitted)", len(ts))
	}
	if ts[1].Kind != KindFloatPoint {
		t.Fatalf("second token=%v, want the point", ts[1].Kind)
	}
	for _, tok := range ts {
		if tok.Text == "" {
			t.Fatalf("zero-length token emitted: %+v", tok)
		}
	}
}

func TestTokenize_LetTemplate(t *testing.T) {
	g := expr.NewGen()
	let := &expr.Let{
		ID:      g.Next(),
		LHSID:   g.Next(),
		LHSName: "x",
		RHS:     &expr.IntLiteral{ID: g.Next(), Value: "1"},
		Body:    &expr.Variable{ID: g.Next(), Name: "x"},
	}
	s := StreamOf(let, Context{})
	if got, want := s.Text(), "let x = 1\nx"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if _, ok := s.WithID(let.LHSID); !ok {
		t.Fatalf("let var name must carry the binding id")
	}
}

func TestTokenize_BlankLetNameRendersBlank(t *testing.T) {
	g := expr.NewGen()
	let := &expr.Let{
		ID:    g.Next(),
		LHSID: g.Next(),
		RHS:   expr.NewBlank(g),
		Body:  expr.NewBlank(g),
	}
	s := StreamOf(let, Context{})
	name, ok := s.WithID(let.LHSID)
	if !ok || !name.IsBlank() {
		t.Fatalf("empty let name must render as a blank slot, got %+v", name)
	}
}

func TestTokenize_IfIndentation(t *testing.T) {
	g := expr.NewGen()
	ifE := &expr.If{
		ID:   g.Next(),
		Cond: &expr.BoolLiteral{ID: g.Next(), Value: true},
		Then: &expr.IntLiteral{ID: g.Next(), Value: "1"},
		Else: &expr.IntLiteral{ID: g.Next(), Value: "2"},
	}
	s := StreamOf(ifE, Context{})
	want := "if true\nthen\n  1\nelse\n  2"
	if got := s.Text(); got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}

func TestTokenize_PlaceholderFromSignature(t *testing.T) {
	g := expr.NewGen()
	blank := expr.NewBlank(g)
	call := &expr.Call{ID: g.Next(), Name: "Int::add", Args: []expr.Expr{
		&expr.IntLiteral{ID: g.Next(), Value: "1"},
		blank,
	}}
	ctx := Context{Params: func(fn string) []Parameter {
		if fn != "Int::add" {
			return nil
		}
		return []Parameter{{Name: "a", Type: "Int"}, {Name: "b", Type: "Int"}}
	}}
	s := StreamOf(call, ctx)
	ph, ok := s.WithID(blank.ID)
	if !ok || ph.Kind != KindPlaceholder {
		t.Fatalf("blank arg should render as placeholder, got %+v", ph)
	}
	if got, want := ph.Text, "b: Int"; got != want {
		t.Fatalf("placeholder=%q, want %q", got, want)
	}
}

func TestTokenize_PipelineSuppressesPipeTarget(t *testing.T) {
	g := expr.NewGen()
	head := &expr.Call{ID: g.Next(), Name: "List::head"}
	seg := &expr.Call{ID: g.Next(), Name: "Int::add", Args: []expr.Expr{
		&expr.PipeTarget{ID: g.Next()},
		&expr.IntLiteral{ID: g.Next(), Value: "1"},
	}}
	pipe := &expr.Pipeline{ID: g.Next(), Segments: []expr.Expr{head, seg}}

	s := StreamOf(pipe, Context{})
	if got, want := s.Text(), "List::head\n|> Int::add 1"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}

func TestTokenize_MultilineStringSegments(t *testing.T) {
	g := expr.NewGen()
	value := strings.Repeat("abcde", 17) // 85 graphemes -> 40/40/5
	str := &expr.StringLiteral{ID: g.Next(), Value: value}
	ts := Tokenize(str, Context{})

	var frags []Token
	for _, tok := range ts {
		if tok.Kind.IsStringFragment() {
			frags = append(frags, tok)
		}
	}
	if len(frags) != 3 {
		t.Fatalf("fragments=%d, want 3", len(frags))
	}
	if frags[0].Kind != KindStringMLStart || frags[1].Kind != KindStringMLMiddle || frags[2].Kind != KindStringMLEnd {
		t.Fatalf("fragment kinds=%v", kindsOf(frags))
	}
	if frags[0].Offset != 0 || frags[1].Offset != 40 || frags[2].Offset != 80 {
		t.Fatalf("offsets=%d,%d,%d, want 0,40,80", frags[0].Offset, frags[1].Offset, frags[2].Offset)
	}
	if !strings.HasPrefix(frags[0].Text, "\"") || !strings.HasSuffix(frags[2].Text, "\"") {
		t.Fatalf("quotes must bracket the first and last fragments")
	}
	joined := strings.Trim(frags[0].Text+frags[1].Text+frags[2].Text, "\"")
	if joined != value {
		t.Fatalf("fragments must reassemble the logical string")
	}
}

func TestTokenize_MatchTemplate(t *testing.T) {
	g := expr.NewGen()
	matchID := g.Next()
	m := &expr.Match{
		ID:      matchID,
		Subject: &expr.Variable{ID: g.Next(), Name: "x"},
		Arms: []expr.MatchArm{
			{
				Pat:  &expr.PInteger{Match: matchID, ID: g.Next(), Value: "0"},
				Expr: &expr.StringLiteral{ID: g.Next(), Value: "zero"},
			},
			{
				Pat:  &expr.PBlank{Match: matchID, ID: g.Next()},
				Expr: expr.NewBlank(g),
			},
		},
	}
	s := StreamOf(m, Context{})
	want := "match x\n  0 -> \"zero\"\n  ___ -> ___"
	if got := s.Text(); got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}

func TestTokenize_RecordTemplate(t *testing.T) {
	g := expr.NewGen()
	rec := &expr.RecordLiteral{ID: g.Next(), Fields: []expr.RecordField{
		{ID: g.Next(), Name: "name", Value: &expr.StringLiteral{ID: g.Next(), Value: "ada"}},
	}}
	s := StreamOf(rec, Context{})
	want := "{\n  name : \"ada\"\n}"
	if got := s.Text(); got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}
