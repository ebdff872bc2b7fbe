package editor

import (
	"testing"

	"github.com/iw2rmb/chisel/expr"
)

func sel(start, end int) CursorState {
	return CursorState{Caret: end, Anchor: start, HasAnchor: true}
}

func TestReconstructFullyCoveredArgument(t *testing.T) {
	e := newTestEngine()
	tree := expr.Expr(&expr.Call{ID: 10, Name: "f", Args: []expr.Expr{
		&expr.IntLiteral{ID: 11, Value: "1"},
		&expr.IntLiteral{ID: 12, Value: "2"},
		&expr.IntLiteral{ID: 13, Value: "3"},
	}})
	// "f 1 2 3", selecting the middle argument only.

	got, ok := e.Reconstruct(tree, sel(4, 5))
	if !ok {
		t.Fatal("no reconstruction")
	}
	lit, ok := got.(*expr.IntLiteral)
	if !ok {
		t.Fatalf("got %T, want *expr.IntLiteral", got)
	}
	if lit.Value != "2" {
		t.Fatalf("value=%q, want %q", lit.Value, "2")
	}
	if lit.ID == 12 {
		t.Fatal("reconstruction reused the original id")
	}
}

func TestReconstructTrimsLiterals(t *testing.T) {
	e := newTestEngine()

	t.Run("integer digits", func(t *testing.T) {
		tree := expr.Expr(&expr.IntLiteral{ID: 1, Value: "12345"})
		got, ok := e.Reconstruct(tree, sel(1, 4))
		if !ok {
			t.Fatal("no reconstruction")
		}
		if lit := got.(*expr.IntLiteral); lit.Value != "234" {
			t.Fatalf("value=%q, want %q", lit.Value, "234")
		}
	})

	t.Run("string keeps content and drops quotes", func(t *testing.T) {
		tree := expr.Expr(&expr.StringLiteral{ID: 1, Value: "hello"})
		// `"hello"`, selecting offsets 2..4 covers "el".
		got, ok := e.Reconstruct(tree, sel(2, 4))
		if !ok {
			t.Fatal("no reconstruction")
		}
		if lit := got.(*expr.StringLiteral); lit.Value != "el" {
			t.Fatalf("value=%q, want %q", lit.Value, "el")
		}
	})
}

func TestReconstructClippedNamesStayEditable(t *testing.T) {
	e := newTestEngine()

	t.Run("variable", func(t *testing.T) {
		tree := expr.Expr(&expr.Variable{ID: 1, Name: "request"})
		got, ok := e.Reconstruct(tree, sel(0, 4))
		if !ok {
			t.Fatal("no reconstruction")
		}
		p, ok := got.(*expr.Partial)
		if !ok {
			t.Fatalf("got %T, want *expr.Partial", got)
		}
		if p.Text != "requ" {
			t.Fatalf("text=%q, want %q", p.Text, "requ")
		}
		if !expr.IsBlank(p.Wrapped) {
			t.Fatalf("wrapped=%T, want blank", p.Wrapped)
		}
	})

	t.Run("call name", func(t *testing.T) {
		tree := expr.Expr(&expr.Call{ID: 10, Name: "Int::add", Args: []expr.Expr{
			&expr.IntLiteral{ID: 11, Value: "5"},
			&expr.IntLiteral{ID: 12, Value: "7"},
		}})
		// "Int::add 5 7", selection ending inside the name.

		got, ok := e.Reconstruct(tree, sel(0, 6))
		if !ok {
			t.Fatal("no reconstruction")
		}
		p, ok := got.(*expr.Partial)
		if !ok {
			t.Fatalf("got %T, want *expr.Partial", got)
		}
		if p.Text != "Int::a" {
			t.Fatalf("text=%q, want %q", p.Text, "Int::a")
		}
		call, ok := p.Wrapped.(*expr.Call)
		if !ok {
			t.Fatalf("wrapped=%T, want *expr.Call", p.Wrapped)
		}
		if call.Name != "Int::add" {
			t.Fatalf("wrapped name=%q, want %q", call.Name, "Int::add")
		}
		for i, a := range call.Args {
			if !expr.IsBlank(a) {
				t.Fatalf("arg %d=%T, want blank", i, a)
			}
		}
	})
}

func TestReconstructSingleChildUnwraps(t *testing.T) {
	e := newTestEngine()
	tree := expr.Expr(&expr.Let{
		ID: 1, LHSID: 2, LHSName: "x",
		RHS:  &expr.IntLiteral{ID: 3, Value: "12"},
		Body: &expr.Blank{ID: 4},
	})
	// "let x = 12\n___", selecting only the bound value.

	got, ok := e.Reconstruct(tree, sel(8, 10))
	if !ok {
		t.Fatal("no reconstruction")
	}
	if lit, ok := got.(*expr.IntLiteral); !ok || lit.Value != "12" {
		t.Fatalf("got %T %v, want IntLiteral 12", got, got)
	}
}

func TestReconstructLetKeepsShapeWhenKeywordCovered(t *testing.T) {
	e := newTestEngine()
	tree := expr.Expr(&expr.Let{
		ID: 1, LHSID: 2, LHSName: "x",
		RHS:  &expr.IntLiteral{ID: 3, Value: "12"},
		Body: &expr.Blank{ID: 4},
	})

	got, ok := e.Reconstruct(tree, sel(0, 10))
	if !ok {
		t.Fatal("no reconstruction")
	}
	let, ok := got.(*expr.Let)
	if !ok {
		t.Fatalf("got %T, want *expr.Let", got)
	}
	if let.LHSName != "x" {
		t.Fatalf("name=%q, want %q", let.LHSName, "x")
	}
	if lit, ok := let.RHS.(*expr.IntLiteral); !ok || lit.Value != "12" {
		t.Fatalf("rhs=%T %v, want IntLiteral 12", let.RHS, let.RHS)
	}
	if !expr.IsBlank(let.Body) {
		t.Fatalf("body=%T, want blank", let.Body)
	}
}

func TestReconstructDegeneratePipeline(t *testing.T) {
	e := newTestEngine()
	tree := expr.Expr(&expr.Pipeline{ID: 1, Segments: []expr.Expr{
		&expr.Variable{ID: 2, Name: "xs"},
		&expr.Call{ID: 3, Name: "Int::add", Args: []expr.Expr{&expr.PipeTarget{ID: 4}, &expr.IntLiteral{ID: 5, Value: "1"}}},
	}})
	// "xs\n|> Int::add 1", selecting the first segment plus the pipe.

	got, ok := e.Reconstruct(tree, sel(0, 5))
	if !ok {
		t.Fatal("no reconstruction")
	}
	pipe, ok := got.(*expr.Pipeline)
	if !ok {
		t.Fatalf("got %T, want *expr.Pipeline", got)
	}
	if len(pipe.Segments) != 2 {
		t.Fatalf("segments=%d, want 2", len(pipe.Segments))
	}
	if !expr.IsBlank(pipe.Segments[1]) {
		t.Fatalf("trailing segment=%T, want blank", pipe.Segments[1])
	}
}

func TestReconstructListKeepsCoveredMembers(t *testing.T) {
	e := newTestEngine()
	tree := expr.Expr(&expr.ListLiteral{ID: 1, Items: []expr.Expr{
		&expr.IntLiteral{ID: 2, Value: "1"},
		&expr.IntLiteral{ID: 3, Value: "2"},
		&expr.IntLiteral{ID: 4, Value: "3"},
	}})
	// "[1, 2, 3]", selecting from the open bracket through the second item.

	got, ok := e.Reconstruct(tree, sel(0, 5))
	if !ok {
		t.Fatal("no reconstruction")
	}
	list, ok := got.(*expr.ListLiteral)
	if !ok {
		t.Fatalf("got %T, want *expr.ListLiteral", got)
	}
	if len(list.Items) != 2 {
		t.Fatalf("items=%d, want 2", len(list.Items))
	}
}

func TestSelectedText(t *testing.T) {
	e := newTestEngine()
	tree := expr.Expr(&expr.Let{
		ID: 1, LHSID: 2, LHSName: "x",
		RHS:  &expr.IntLiteral{ID: 3, Value: "12"},
		Body: &expr.Blank{ID: 4},
	})

	got, ok := e.SelectedText(tree, sel(4, 10))
	if !ok {
		t.Fatal("no selected text")
	}
	if got != "x = 12" {
		t.Fatalf("text=%q, want %q", got, "x = 12")
	}
}
