package expr

import "testing"

func sampleLet(g *Gen) (*Let, *IntLiteral, *Variable) {
	rhs := &IntLiteral{ID: g.Next(), Value: "1"}
	use := &Variable{ID: g.Next(), Name: "x"}
	let := &Let{ID: g.Next(), LHSID: g.Next(), LHSName: "x", RHS: rhs, Body: use}
	return let, rhs, use
}

func TestFindNode_PreOrder(t *testing.T) {
	g := NewGen()
	let, rhs, use := sampleLet(g)

	got, ok := FindNode(rhs.ID, let)
	if !ok || got != Expr(rhs) {
		t.Fatalf("FindNode(rhs)=%v ok=%v, want rhs", got, ok)
	}
	got, ok = FindNode(use.ID, let)
	if !ok || got != Expr(use) {
		t.Fatalf("FindNode(use)=%v ok=%v, want use", got, ok)
	}
	if _, ok := FindNode(ID(9999), let); ok {
		t.Fatalf("FindNode(unknown) ok=true, want false")
	}
}

func TestFindParent(t *testing.T) {
	g := NewGen()
	let, rhs, _ := sampleLet(g)

	parent, ok := FindParent(rhs.ID, let)
	if !ok || parent != Expr(let) {
		t.Fatalf("FindParent(rhs)=%v ok=%v, want the let", parent, ok)
	}
	if _, ok := FindParent(let.ID, let); ok {
		t.Fatalf("root must have no parent")
	}
}

func TestReplaceNode_SwapsAndPreservesRest(t *testing.T) {
	g := NewGen()
	let, rhs, use := sampleLet(g)

	repl := &IntLiteral{ID: g.Next(), Value: "42"}
	got := ReplaceNode(rhs.ID, repl, let)

	gotLet, ok := got.(*Let)
	if !ok {
		t.Fatalf("result=%T, want *Let", got)
	}
	if gotLet.RHS != Expr(repl) {
		t.Fatalf("rhs=%v, want replacement", gotLet.RHS)
	}
	if gotLet.Body != Expr(use) {
		t.Fatalf("untouched body must keep identity")
	}
	if gotLet.ID != let.ID {
		t.Fatalf("let id=%d, want %d", gotLet.ID, let.ID)
	}
	// Input tree unchanged.
	if let.RHS != Expr(rhs) {
		t.Fatalf("input tree was mutated")
	}
}

func TestReplaceNode_UnknownIDReturnsTreeUnchanged(t *testing.T) {
	g := NewGen()
	let, _, _ := sampleLet(g)

	got := ReplaceNode(ID(12345), NewBlank(g), let)
	gotLet, ok := got.(*Let)
	if !ok {
		t.Fatalf("result=%T, want *Let", got)
	}
	if gotLet.RHS != let.RHS || gotLet.Body != let.Body {
		t.Fatalf("unknown id must leave children untouched")
	}
}

func TestChildren_Order(t *testing.T) {
	g := NewGen()
	cond := NewBlank(g)
	then := &IntLiteral{ID: g.Next(), Value: "1"}
	els := &IntLiteral{ID: g.Next(), Value: "2"}
	ifE := &If{ID: g.Next(), Cond: cond, Then: then, Else: els}

	kids := Children(ifE)
	if len(kids) != 3 {
		t.Fatalf("len=%d, want 3", len(kids))
	}
	if kids[0] != Expr(cond) || kids[1] != Expr(then) || kids[2] != Expr(els) {
		t.Fatalf("children out of order: %v", kids)
	}
}

func TestCloneFresh_MintsNewIDs(t *testing.T) {
	g := NewGen()
	let, _, _ := sampleLet(g)

	clone := CloneFresh(g, let)
	seen := map[ID]bool{}
	Walk(let, func(e Expr) bool {
		seen[e.NodeID()] = true
		return true
	})
	Walk(clone, func(e Expr) bool {
		if seen[e.NodeID()] {
			t.Fatalf("clone reused id %d", e.NodeID())
		}
		return true
	})
}
