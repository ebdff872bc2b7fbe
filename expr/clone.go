package expr

// CloneFresh deep-copies e, minting a new id for every node. Reconstructed
// or pasted subtrees must never reuse ids already present in the
// destination tree.
func CloneFresh(g *Gen, e Expr) Expr {
	if e == nil {
		return nil
	}
	switch n := e.(type) {
	case *Blank:
		return &Blank{ID: g.Next()}
	case *IntLiteral:
		return &IntLiteral{ID: g.Next(), Value: n.Value}
	case *FloatLiteral:
		return &FloatLiteral{ID: g.Next(), Whole: n.Whole, Fraction: n.Fraction}
	case *StringLiteral:
		return &StringLiteral{ID: g.Next(), Value: n.Value}
	case *BoolLiteral:
		return &BoolLiteral{ID: g.Next(), Value: n.Value}
	case *NullLiteral:
		return &NullLiteral{ID: g.Next()}
	case *Variable:
		return &Variable{ID: g.Next(), Name: n.Name}
	case *Let:
		return &Let{
			ID:      g.Next(),
			LHSID:   g.Next(),
			LHSName: n.LHSName,
			RHS:     CloneFresh(g, n.RHS),
			Body:    CloneFresh(g, n.Body),
		}
	case *If:
		return &If{
			ID:   g.Next(),
			Cond: CloneFresh(g, n.Cond),
			Then: CloneFresh(g, n.Then),
			Else: CloneFresh(g, n.Else),
		}
	case *BinOp:
		return &BinOp{
			ID:   g.Next(),
			Op:   n.Op,
			LHS:  CloneFresh(g, n.LHS),
			RHS:  CloneFresh(g, n.RHS),
			Rail: n.Rail,
		}
	case *Call:
		return &Call{ID: g.Next(), Name: n.Name, Args: cloneExprs(g, n.Args), Rail: n.Rail}
	case *Lambda:
		params := make([]LambdaParam, len(n.Params))
		for i, p := range n.Params {
			params[i] = LambdaParam{ID: g.Next(), Name: p.Name}
		}
		return &Lambda{ID: g.Next(), Params: params, Body: CloneFresh(g, n.Body)}
	case *FieldAccess:
		return &FieldAccess{
			ID:        g.Next(),
			Target:    CloneFresh(g, n.Target),
			FieldID:   g.Next(),
			FieldName: n.FieldName,
		}
	case *ListLiteral:
		return &ListLiteral{ID: g.Next(), Items: cloneExprs(g, n.Items)}
	case *RecordLiteral:
		fields := make([]RecordField, len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = RecordField{ID: g.Next(), Name: f.Name, Value: CloneFresh(g, f.Value)}
		}
		return &RecordLiteral{ID: g.Next(), Fields: fields}
	case *Pipeline:
		return &Pipeline{ID: g.Next(), Segments: cloneExprs(g, n.Segments)}
	case *PipeTarget:
		return &PipeTarget{ID: g.Next()}
	case *Constructor:
		return &Constructor{ID: g.Next(), Name: n.Name, Args: cloneExprs(g, n.Args)}
	case *Match:
		matchID := g.Next()
		arms := make([]MatchArm, len(n.Arms))
		for i, arm := range n.Arms {
			arms[i] = MatchArm{
				Pat:  ClonePatternFresh(g, matchID, arm.Pat),
				Expr: CloneFresh(g, arm.Expr),
			}
		}
		return &Match{ID: matchID, Subject: CloneFresh(g, n.Subject), Arms: arms}
	case *FeatureFlag:
		return &FeatureFlag{
			ID:    g.Next(),
			Name:  n.Name,
			Cond:  CloneFresh(g, n.Cond),
			CaseA: CloneFresh(g, n.CaseA),
			CaseB: CloneFresh(g, n.CaseB),
		}
	case *Partial:
		return &Partial{ID: g.Next(), Text: n.Text, Wrapped: CloneFresh(g, n.Wrapped)}
	case *RightPartial:
		return &RightPartial{ID: g.Next(), Text: n.Text, Wrapped: CloneFresh(g, n.Wrapped)}
	default:
		return e
	}
}

// ClonePatternFresh deep-copies p with fresh ids, re-homed under matchID.
func ClonePatternFresh(g *Gen, matchID ID, p Pattern) Pattern {
	switch pat := p.(type) {
	case *PBlank:
		return &PBlank{Match: matchID, ID: g.Next()}
	case *PVariable:
		return &PVariable{Match: matchID, ID: g.Next(), Name: pat.Name}
	case *PInteger:
		return &PInteger{Match: matchID, ID: g.Next(), Value: pat.Value}
	case *PFloat:
		return &PFloat{Match: matchID, ID: g.Next(), Whole: pat.Whole, Fraction: pat.Fraction}
	case *PBool:
		return &PBool{Match: matchID, ID: g.Next(), Value: pat.Value}
	case *PString:
		return &PString{Match: matchID, ID: g.Next(), Value: pat.Value}
	case *PNull:
		return &PNull{Match: matchID, ID: g.Next()}
	case *PConstructor:
		args := make([]Pattern, len(pat.Args))
		for i, sub := range pat.Args {
			args[i] = ClonePatternFresh(g, matchID, sub)
		}
		return &PConstructor{Match: matchID, ID: g.Next(), Name: pat.Name, Args: args}
	default:
		return p
	}
}

func cloneExprs(g *Gen, in []Expr) []Expr {
	out := make([]Expr, len(in))
	for i, e := range in {
		out[i] = CloneFresh(g, e)
	}
	return out
}
