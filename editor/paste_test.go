package editor

import (
	"testing"

	"github.com/iw2rmb/chisel/expr"
)

func TestPasteSubtreeOntoBlank(t *testing.T) {
	e := newTestEngine()
	tree := expr.Expr(&expr.Let{
		ID: 1, LHSID: 2, LHSName: "x",
		RHS:  &expr.Blank{ID: 3},
		Body: &expr.Blank{ID: 4},
	})
	// "let x = ___\n___", caret on the bound-value blank.

	payload := Payload{Expr: &expr.IntLiteral{ID: 99, Value: "42"}, Text: "42"}
	tree, cs := e.PasteInto(tree, CursorState{Caret: 8}, payload)

	got := e.Stream(tree).Text()
	if got != "let x = 42\n___" {
		t.Fatalf("text=%q, want %q", got, "let x = 42\n___")
	}
	if cs.Caret != 10 {
		t.Fatalf("caret=%d, want 10", cs.Caret)
	}
	// Fresh ids: the payload stays reusable.
	if _, ok := expr.FindNode(99, tree); ok {
		t.Fatal("paste reused the payload's id")
	}
}

func TestPasteDigitsIntoInteger(t *testing.T) {
	e := newTestEngine()
	tree := expr.Expr(&expr.IntLiteral{ID: 1, Value: "12"})

	tree, cs := e.PasteInto(tree, CursorState{Caret: 2}, Payload{Text: "3"})
	if got := e.Stream(tree).Text(); got != "123" {
		t.Fatalf("text=%q, want %q", got, "123")
	}
	if cs.Caret != 3 {
		t.Fatalf("caret=%d, want 3", cs.Caret)
	}
}

func TestPasteOverflowingIntegerIsRejected(t *testing.T) {
	e := newTestEngine()
	tree := expr.Expr(&expr.IntLiteral{ID: 1, Value: "4611686018427387903"})

	got, cs := e.PasteInto(tree, CursorState{Caret: 19}, Payload{Text: "1"})
	if text := e.Stream(got).Text(); text != "4611686018427387903" {
		t.Fatalf("text=%q, value changed on overflow", text)
	}
	if cs.Caret != 19 {
		t.Fatalf("caret=%d, want 19", cs.Caret)
	}
}

func TestPasteTextIntoString(t *testing.T) {
	e := newTestEngine()
	tree := expr.Expr(&expr.StringLiteral{ID: 1, Value: "hlo"})

	// `"hlo"`, caret after the h.
	tree, cs := e.PasteInto(tree, CursorState{Caret: 2}, Payload{Text: "el"})
	if got := e.Stream(tree).Text(); got != `"hello"` {
		t.Fatalf("text=%q, want %q", got, `"hello"`)
	}
	if cs.Caret != 4 {
		t.Fatalf("caret=%d, want 4", cs.Caret)
	}
}

func TestPasteIdentifierIntoUnnamedLet(t *testing.T) {
	e := newTestEngine()
	tree := expr.Expr(&expr.Let{
		ID: 1, LHSID: 2,
		RHS:  &expr.IntLiteral{ID: 3, Value: "5"},
		Body: &expr.Blank{ID: 4},
	})
	// "let ___ = 5\n___", caret on the name slot.

	tree, cs := e.PasteInto(tree, CursorState{Caret: 4}, Payload{Text: "count"})
	if got := e.Stream(tree).Text(); got != "let count = 5\n___" {
		t.Fatalf("text=%q, want %q", got, "let count = 5\n___")
	}
	if cs.Caret != 9 {
		t.Fatalf("caret=%d, want 9", cs.Caret)
	}
}

func TestPasteForeignTextReplaysAsKeystrokes(t *testing.T) {
	e := newTestEngine()
	tree := expr.Expr(&expr.Blank{ID: 1})

	tree, _ = e.PasteInto(tree, CursorState{}, Payload{Text: "42"})
	if got := e.Stream(tree).Text(); got != "42" {
		t.Fatalf("text=%q, want %q", got, "42")
	}
}

func TestCutBlanksSelection(t *testing.T) {
	e := newTestEngine()
	tree := expr.Expr(&expr.Call{ID: 10, Name: "f", Args: []expr.Expr{
		&expr.IntLiteral{ID: 11, Value: "1"},
		&expr.IntLiteral{ID: 12, Value: "2"},
	}})
	// "f 1 2", cutting the second argument.

	p, tree, _ := e.Cut(tree, sel(4, 5))
	if p.Expr == nil {
		t.Fatal("cut produced no payload")
	}
	if got := e.Stream(tree).Text(); got != "f 1 ___" {
		t.Fatalf("text=%q, want %q", got, "f 1 ___")
	}
}
