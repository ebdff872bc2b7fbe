package expr

// Children returns the direct expression children of e in the deterministic
// order used by all traversals (the order fields are declared).
func Children(e Expr) []Expr {
	switch n := e.(type) {
	case *Let:
		return []Expr{n.RHS, n.Body}
	case *If:
		return []Expr{n.Cond, n.Then, n.Else}
	case *BinOp:
		return []Expr{n.LHS, n.RHS}
	case *Call:
		return append([]Expr(nil), n.Args...)
	case *Lambda:
		return []Expr{n.Body}
	case *FieldAccess:
		return []Expr{n.Target}
	case *ListLiteral:
		return append([]Expr(nil), n.Items...)
	case *RecordLiteral:
		out := make([]Expr, 0, len(n.Fields))
		for _, f := range n.Fields {
			out = append(out, f.Value)
		}
		return out
	case *Pipeline:
		return append([]Expr(nil), n.Segments...)
	case *Constructor:
		return append([]Expr(nil), n.Args...)
	case *Match:
		out := make([]Expr, 0, len(n.Arms)+1)
		out = append(out, n.Subject)
		for _, arm := range n.Arms {
			out = append(out, arm.Expr)
		}
		return out
	case *FeatureFlag:
		return []Expr{n.Cond, n.CaseA, n.CaseB}
	case *Partial:
		return []Expr{n.Wrapped}
	case *RightPartial:
		return []Expr{n.Wrapped}
	default:
		return nil
	}
}

// FindNode locates the node with the given id by pre-order search.
func FindNode(id ID, e Expr) (Expr, bool) {
	if e == nil {
		return nil, false
	}
	if e.NodeID() == id {
		return e, true
	}
	for _, c := range Children(e) {
		if found, ok := FindNode(id, c); ok {
			return found, true
		}
	}
	return nil, false
}

// FindParent locates the direct parent of the node with the given id.
// The root has no parent.
func FindParent(id ID, e Expr) (Expr, bool) {
	if e == nil || e.NodeID() == id {
		return nil, false
	}
	for _, c := range Children(e) {
		if c != nil && c.NodeID() == id {
			return e, true
		}
		if p, ok := FindParent(id, c); ok {
			return p, true
		}
	}
	return nil, false
}

// MapChildren applies f to every direct expression child of e and returns a
// node with the results in place. Non-child fields are copied unchanged.
// All recursive rewrites in this package are built on it.
func MapChildren(e Expr, f func(Expr) Expr) Expr {
	switch n := e.(type) {
	case *Let:
		out := *n
		out.RHS = f(n.RHS)
		out.Body = f(n.Body)
		return &out
	case *If:
		out := *n
		out.Cond = f(n.Cond)
		out.Then = f(n.Then)
		out.Else = f(n.Else)
		return &out
	case *BinOp:
		out := *n
		out.LHS = f(n.LHS)
		out.RHS = f(n.RHS)
		return &out
	case *Call:
		out := *n
		out.Args = mapExprs(n.Args, f)
		return &out
	case *Lambda:
		out := *n
		out.Params = append([]LambdaParam(nil), n.Params...)
		out.Body = f(n.Body)
		return &out
	case *FieldAccess:
		out := *n
		out.Target = f(n.Target)
		return &out
	case *ListLiteral:
		out := *n
		out.Items = mapExprs(n.Items, f)
		return &out
	case *RecordLiteral:
		out := *n
		out.Fields = make([]RecordField, len(n.Fields))
		for i, fld := range n.Fields {
			fld.Value = f(fld.Value)
			out.Fields[i] = fld
		}
		return &out
	case *Pipeline:
		out := *n
		out.Segments = mapExprs(n.Segments, f)
		return &out
	case *Constructor:
		out := *n
		out.Args = mapExprs(n.Args, f)
		return &out
	case *Match:
		out := *n
		out.Subject = f(n.Subject)
		out.Arms = make([]MatchArm, len(n.Arms))
		for i, arm := range n.Arms {
			arm.Expr = f(arm.Expr)
			out.Arms[i] = arm
		}
		return &out
	case *FeatureFlag:
		out := *n
		out.Cond = f(n.Cond)
		out.CaseA = f(n.CaseA)
		out.CaseB = f(n.CaseB)
		return &out
	case *Partial:
		out := *n
		out.Wrapped = f(n.Wrapped)
		return &out
	case *RightPartial:
		out := *n
		out.Wrapped = f(n.Wrapped)
		return &out
	default:
		// Leaves have no expression children.
		return e
	}
}

func mapExprs(in []Expr, f func(Expr) Expr) []Expr {
	out := make([]Expr, len(in))
	for i, e := range in {
		out[i] = f(e)
	}
	return out
}

// ReplaceNode returns a tree with the node carrying id swapped for with.
// An unknown id returns the tree unchanged: concurrent edits may race a
// stale id against a newer snapshot, and that must not be an error.
func ReplaceNode(id ID, with Expr, e Expr) Expr {
	if e == nil {
		return e
	}
	if e.NodeID() == id {
		return with
	}
	return MapChildren(e, func(c Expr) Expr {
		return ReplaceNode(id, with, c)
	})
}

// Walk calls visit for every node in pre-order. Returning false stops the
// descent below that node.
func Walk(e Expr, visit func(Expr) bool) {
	if e == nil {
		return
	}
	if !visit(e) {
		return
	}
	for _, c := range Children(e) {
		Walk(c, visit)
	}
}
