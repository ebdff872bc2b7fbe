package expr

// RenameVariableUses rewrites every free reference to oldName via rewrite,
// stopping at any construct that rebinds oldName. Shadowing stops
// propagation on purpose: a Let, Lambda parameter, or Match arm that
// rebinds the name owns every reference beneath it.
func RenameVariableUses(oldName string, rewrite func(*Variable) Expr, e Expr) Expr {
	if e == nil || oldName == "" {
		return e
	}
	switch n := e.(type) {
	case *Variable:
		if n.Name == oldName {
			return rewrite(n)
		}
		return n
	case *Let:
		out := *n
		out.RHS = RenameVariableUses(oldName, rewrite, n.RHS)
		if n.LHSName != oldName {
			out.Body = RenameVariableUses(oldName, rewrite, n.Body)
		}
		return &out
	case *Lambda:
		for _, p := range n.Params {
			if p.Name == oldName {
				return n
			}
		}
		out := *n
		out.Params = append([]LambdaParam(nil), n.Params...)
		out.Body = RenameVariableUses(oldName, rewrite, n.Body)
		return &out
	case *Match:
		out := *n
		out.Subject = RenameVariableUses(oldName, rewrite, n.Subject)
		out.Arms = make([]MatchArm, len(n.Arms))
		for i, arm := range n.Arms {
			if !patternBinds(arm.Pat, oldName) {
				arm.Expr = RenameVariableUses(oldName, rewrite, arm.Expr)
			}
			out.Arms[i] = arm
		}
		return &out
	default:
		return MapChildren(e, func(c Expr) Expr {
			return RenameVariableUses(oldName, rewrite, c)
		})
	}
}

func patternBinds(p Pattern, name string) bool {
	for _, bound := range PatternBoundNames(p) {
		if bound == name {
			return true
		}
	}
	return false
}
