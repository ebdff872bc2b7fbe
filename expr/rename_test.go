package expr

import "testing"

func renameTo(name string) func(*Variable) Expr {
	return func(v *Variable) Expr {
		return &Variable{ID: v.ID, Name: name}
	}
}

func TestRenameVariableUses_RewritesFreeUses(t *testing.T) {
	g := NewGen()
	use := &Variable{ID: g.Next(), Name: "x"}
	tree := &BinOp{ID: g.Next(), Op: "+", LHS: use, RHS: &IntLiteral{ID: g.Next(), Value: "1"}}

	got := RenameVariableUses("x", renameTo("y"), tree)
	bin := got.(*BinOp)
	v, ok := bin.LHS.(*Variable)
	if !ok || v.Name != "y" {
		t.Fatalf("lhs=%v, want variable y", bin.LHS)
	}
	if v.ID != use.ID {
		t.Fatalf("rename must keep node id %d, got %d", use.ID, v.ID)
	}
}

func TestRenameVariableUses_LetShadowStopsBody(t *testing.T) {
	g := NewGen()
	rhsUse := &Variable{ID: g.Next(), Name: "x"}
	bodyUse := &Variable{ID: g.Next(), Name: "x"}
	tree := &Let{ID: g.Next(), LHSID: g.Next(), LHSName: "x", RHS: rhsUse, Body: bodyUse}

	got := RenameVariableUses("x", renameTo("y"), tree).(*Let)
	if v := got.RHS.(*Variable); v.Name != "y" {
		t.Fatalf("rhs use=%q, want renamed (rhs is outside the binding)", v.Name)
	}
	if v := got.Body.(*Variable); v.Name != "x" {
		t.Fatalf("body use=%q, want shadowed name kept", v.Name)
	}
}

func TestRenameVariableUses_LambdaParamShadows(t *testing.T) {
	g := NewGen()
	body := &Variable{ID: g.Next(), Name: "x"}
	lam := &Lambda{ID: g.Next(), Params: []LambdaParam{{ID: g.Next(), Name: "x"}}, Body: body}

	got := RenameVariableUses("x", renameTo("y"), lam).(*Lambda)
	if v := got.Body.(*Variable); v.Name != "x" {
		t.Fatalf("body use=%q, want untouched under shadowing param", v.Name)
	}
}

func TestRenameVariableUses_MatchArmShadows(t *testing.T) {
	g := NewGen()
	subj := &Variable{ID: g.Next(), Name: "x"}
	matchID := g.Next()
	armShadow := MatchArm{
		Pat:  &PVariable{Match: matchID, ID: g.Next(), Name: "x"},
		Expr: &Variable{ID: g.Next(), Name: "x"},
	}
	armFree := MatchArm{
		Pat:  &PBlank{Match: matchID, ID: g.Next()},
		Expr: &Variable{ID: g.Next(), Name: "x"},
	}
	m := &Match{ID: matchID, Subject: subj, Arms: []MatchArm{armShadow, armFree}}

	got := RenameVariableUses("x", renameTo("y"), m).(*Match)
	if v := got.Subject.(*Variable); v.Name != "y" {
		t.Fatalf("subject=%q, want renamed", v.Name)
	}
	if v := got.Arms[0].Expr.(*Variable); v.Name != "x" {
		t.Fatalf("shadowed arm=%q, want untouched", v.Name)
	}
	if v := got.Arms[1].Expr.(*Variable); v.Name != "y" {
		t.Fatalf("free arm=%q, want renamed", v.Name)
	}
}
