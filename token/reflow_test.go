package token

import (
	"reflect"
	"testing"

	"github.com/iw2rmb/chisel/expr"
)

func sampleIf(g *expr.Gen) expr.Expr {
	return &expr.If{
		ID:   g.Next(),
		Cond: &expr.BoolLiteral{ID: g.Next(), Value: false},
		Then: expr.NewBlank(g),
		Else: expr.NewBlank(g),
	}
}

func TestReflow_Idempotent(t *testing.T) {
	g := expr.NewGen()
	raw := Tokenize(sampleIf(g), Context{})

	once := Reflow(raw)
	twice := Reflow(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("reflow not idempotent:\nonce:  %v\ntwice: %v", once, twice)
	}
}

func TestReflow_IndentFollowsNewline(t *testing.T) {
	g := expr.NewGen()
	ts := Reflow(Tokenize(sampleIf(g), Context{}))

	for i, tok := range ts {
		if tok.Kind != KindNewline || tok.Indent == 0 {
			continue
		}
		if i+1 >= len(ts) || ts[i+1].Kind != KindIndent {
			t.Fatalf("newline with indent %d not followed by indent token", tok.Indent)
		}
		if got := len(ts[i+1].Text); got != tok.Indent {
			t.Fatalf("indent width=%d, want %d", got, tok.Indent)
		}
	}
}

func TestLayout_PositionMonotonicity(t *testing.T) {
	g := expr.NewGen()
	s := StreamOf(sampleIf(g), Context{})

	for i := 1; i < len(s); i++ {
		if s[i-1].EndPos > s[i].StartPos {
			t.Fatalf("token %d ends at %d after token %d starts at %d",
				i-1, s[i-1].EndPos, i, s[i].StartPos)
		}
	}
}

func TestLayout_RowsAndCols(t *testing.T) {
	g := expr.NewGen()
	s := StreamOf(sampleIf(g), Context{})
	// "if false\nthen\n  ___\nelse\n  ___"

	row, col := 0, 0
	for _, tok := range s {
		if tok.StartRow != row || tok.StartCol != col {
			t.Fatalf("token %q at r%d c%d, want r%d c%d", tok.Text, tok.StartRow, tok.StartCol, row, col)
		}
		if tok.Kind == KindNewline {
			row++
			col = 0
		} else {
			col += tok.Width()
		}
	}
}
