package expr

// Pattern is the match-arm analog of Expr. Every pattern carries both its
// own id and the id of the enclosing Match, so edits inside an arm can find
// their way back without a parent search.
type Pattern interface {
	PatternID() ID
	MatchID() ID
	isPattern()
}

type PBlank struct {
	Match ID
	ID    ID
}

type PVariable struct {
	Match ID
	ID    ID
	Name  string
}

type PInteger struct {
	Match ID
	ID    ID
	Value string
}

type PFloat struct {
	Match    ID
	ID       ID
	Whole    string
	Fraction string
}

type PBool struct {
	Match ID
	ID    ID
	Value bool
}

type PString struct {
	Match ID
	ID    ID
	Value string
}

type PNull struct {
	Match ID
	ID    ID
}

type PConstructor struct {
	Match ID
	ID    ID
	Name  string
	Args  []Pattern
}

func (p *PBlank) PatternID() ID       { return p.ID }
func (p *PVariable) PatternID() ID    { return p.ID }
func (p *PInteger) PatternID() ID     { return p.ID }
func (p *PFloat) PatternID() ID       { return p.ID }
func (p *PBool) PatternID() ID        { return p.ID }
func (p *PString) PatternID() ID      { return p.ID }
func (p *PNull) PatternID() ID        { return p.ID }
func (p *PConstructor) PatternID() ID { return p.ID }

func (p *PBlank) MatchID() ID       { return p.Match }
func (p *PVariable) MatchID() ID    { return p.Match }
func (p *PInteger) MatchID() ID     { return p.Match }
func (p *PFloat) MatchID() ID       { return p.Match }
func (p *PBool) MatchID() ID        { return p.Match }
func (p *PString) MatchID() ID      { return p.Match }
func (p *PNull) MatchID() ID        { return p.Match }
func (p *PConstructor) MatchID() ID { return p.Match }

func (*PBlank) isPattern()       {}
func (*PVariable) isPattern()    {}
func (*PInteger) isPattern()     {}
func (*PFloat) isPattern()       {}
func (*PBool) isPattern()        {}
func (*PString) isPattern()      {}
func (*PNull) isPattern()        {}
func (*PConstructor) isPattern() {}

// ReplacePattern swaps the pattern carrying id for with, wherever it sits
// inside any Match arm. An unknown id returns the tree unchanged.
func ReplacePattern(id ID, with Pattern, tree Expr) Expr {
	if tree == nil {
		return tree
	}
	if m, ok := tree.(*Match); ok {
		out := *m
		out.Arms = make([]MatchArm, len(m.Arms))
		for i, arm := range m.Arms {
			arm.Pat = replaceInPattern(id, with, arm.Pat)
			arm.Expr = ReplacePattern(id, with, arm.Expr)
			out.Arms[i] = arm
		}
		out.Subject = ReplacePattern(id, with, m.Subject)
		return &out
	}
	return MapChildren(tree, func(c Expr) Expr {
		return ReplacePattern(id, with, c)
	})
}

func replaceInPattern(id ID, with Pattern, p Pattern) Pattern {
	if p == nil {
		return p
	}
	if p.PatternID() == id {
		return with
	}
	if pc, ok := p.(*PConstructor); ok {
		out := *pc
		out.Args = make([]Pattern, len(pc.Args))
		for i, sub := range pc.Args {
			out.Args[i] = replaceInPattern(id, with, sub)
		}
		return &out
	}
	return p
}

// PatternBoundNames returns the variable names bound by p, in declaration
// order.
func PatternBoundNames(p Pattern) []string {
	switch pat := p.(type) {
	case *PVariable:
		return []string{pat.Name}
	case *PConstructor:
		var names []string
		for _, sub := range pat.Args {
			names = append(names, PatternBoundNames(sub)...)
		}
		return names
	default:
		return nil
	}
}
