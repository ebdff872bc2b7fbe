package token

import (
	"testing"

	"github.com/iw2rmb/chisel/expr"
)

// letStream builds "let x = 12\n___" style content with a blank body.
func letStream(t *testing.T) (Stream, *expr.Let) {
	t.Helper()
	g := expr.NewGen()
	let := &expr.Let{
		ID:      g.Next(),
		LHSID:   g.Next(),
		LHSName: "x",
		RHS:     &expr.IntLiteral{ID: g.Next(), Value: "12"},
		Body:    expr.NewBlank(g),
	}
	return StreamOf(let, Context{}), let
}

func TestStream_At(t *testing.T) {
	s, _ := letStream(t)
	// "let x = 12\n___"
	tok, ok := s.At(0)
	if !ok || tok.Kind != KindLetKeyword {
		t.Fatalf("At(0)=%v, want let keyword", tok)
	}
	tok, ok = s.At(9)
	if !ok || tok.Kind != KindInteger {
		t.Fatalf("At(9)=%v, want integer", tok)
	}
	if _, ok := s.At(s.TextLen()); ok {
		t.Fatalf("At(end) must be empty")
	}
}

func TestStream_NeighborsSkipWhitespace(t *testing.T) {
	s, _ := letStream(t)
	// Offset 4 is the start of "x": left neighbor must be "let", not the sep.
	left, right := s.Neighbors(4)
	if left.IsNone() || left.Tok.Kind != KindLetKeyword {
		t.Fatalf("left=%v, want let keyword", left)
	}
	if right.IsNone() || right.Tok.Kind != KindLetVarName {
		t.Fatalf("right=%v, want var name", right)
	}

	// Offset just past the newline: left neighbor skips back across it.
	left, right = s.Neighbors(11)
	if left.IsNone() || left.Tok.Kind != KindInteger {
		t.Fatalf("left across newline=%v, want integer", left)
	}
	if right.IsNone() || right.Tok.Kind != KindBlank {
		t.Fatalf("right=%v, want blank", right)
	}
}

func TestStream_NeighborsInsideToken(t *testing.T) {
	s, _ := letStream(t)
	// Offset 9 is between '1' and '2' of "12": both sides are the integer.
	left, right := s.Neighbors(9)
	if left.Tok.Kind != KindInteger || right.Tok.Kind != KindInteger {
		t.Fatalf("inside token: left=%v right=%v, want integer both sides", left, right)
	}
	if left.Kind != SideLeft || right.Kind != SideRight {
		t.Fatalf("side tags: left=%v right=%v", left.Kind, right.Kind)
	}
}

func TestStream_GridRoundTrip(t *testing.T) {
	s, _ := letStream(t)
	for offset := 0; offset <= s.TextLen(); offset++ {
		gpos := s.GridFor(offset)
		back := s.OffsetFor(gpos.Row, gpos.Col)
		if back != offset {
			t.Fatalf("offset %d -> %v -> %d", offset, gpos, back)
		}
	}
}

func TestStream_OffsetForClampsIntoContent(t *testing.T) {
	g := expr.NewGen()
	ifE := &expr.If{
		ID:   g.Next(),
		Cond: &expr.BoolLiteral{ID: g.Next(), Value: true},
		Then: &expr.IntLiteral{ID: g.Next(), Value: "1"},
		Else: &expr.IntLiteral{ID: g.Next(), Value: "2"},
	}
	s := StreamOf(ifE, Context{})
	// "if true\nthen\n  1\nelse\n  2" — row 2 is "  1".
	got := s.OffsetFor(2, 0)
	tok, ok := s.At(got)
	if !ok || tok.Kind != KindInteger {
		t.Fatalf("OffsetFor(2,0) landed on %v, want content start", tok)
	}
	// Past end of row clamps to row end.
	end := s.OffsetFor(2, 99)
	if end != tok.EndPos {
		t.Fatalf("OffsetFor(2,99)=%d, want %d", end, tok.EndPos)
	}
}

func TestStream_BlankNavigationWraps(t *testing.T) {
	g := expr.NewGen()
	ifE := &expr.If{
		ID:   g.Next(),
		Cond: &expr.BoolLiteral{ID: g.Next(), Value: true},
		Then: expr.NewBlank(g),
		Else: expr.NewBlank(g),
	}
	s := StreamOf(ifE, Context{})

	first, ok := s.NextBlank(0)
	if !ok {
		t.Fatalf("no blank found")
	}
	second, ok := s.NextBlank(first.StartPos)
	if !ok || second.StartPos <= first.StartPos {
		t.Fatalf("NextBlank did not advance")
	}
	wrapped, ok := s.NextBlank(second.StartPos)
	if !ok || wrapped.StartPos != first.StartPos {
		t.Fatalf("NextBlank must wrap to the first blank, got %v", wrapped)
	}

	back, ok := s.PrevBlank(second.StartPos)
	if !ok || back.StartPos != first.StartPos {
		t.Fatalf("PrevBlank=%v, want first blank", back)
	}
	wrappedBack, ok := s.PrevBlank(first.StartPos)
	if !ok || wrappedBack.StartPos != second.StartPos {
		t.Fatalf("PrevBlank must wrap to the last blank, got %v", wrappedBack)
	}
}
