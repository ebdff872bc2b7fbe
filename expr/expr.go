package expr

// Expr is the tagged expression node. Every variant is a pointer struct with
// an immutable ID field; the marker method keeps the set closed so consuming
// switches stay exhaustive.
type Expr interface {
	NodeID() ID
	isExpr()
}

// Blank is a placeholder with no value yet.
type Blank struct {
	ID ID
}

// IntLiteral holds its digits as text so partial entry ("-", leading zeros
// mid-edit) round-trips exactly.
type IntLiteral struct {
	ID    ID
	Value string
}

// FloatLiteral keeps whole and fraction as separate digit strings; either
// side may be empty mid-edit, the point is implied.
type FloatLiteral struct {
	ID       ID
	Whole    string
	Fraction string
}

type StringLiteral struct {
	ID    ID
	Value string
}

type BoolLiteral struct {
	ID    ID
	Value bool
}

type NullLiteral struct {
	ID ID
}

type Variable struct {
	ID   ID
	Name string
}

// Let binds LHSName for Body. LHSID identifies the binding site itself so
// renames can target it independently of the Let node.
type Let struct {
	ID      ID
	LHSID   ID
	LHSName string
	RHS     Expr
	Body    Expr
}

type If struct {
	ID   ID
	Cond Expr
	Then Expr
	Else Expr
}

// BinOp is an infix operator application. Rail marks error-rail diversion.
type BinOp struct {
	ID    ID
	Op    string
	LHS   Expr
	RHS   Expr
	Rail  bool
}

type Call struct {
	ID   ID
	Name string
	Args []Expr
	Rail bool
}

// LambdaParam is one bound parameter of a Lambda.
type LambdaParam struct {
	ID   ID
	Name string
}

type Lambda struct {
	ID     ID
	Params []LambdaParam
	Body   Expr
}

type FieldAccess struct {
	ID        ID
	Target    Expr
	FieldID   ID
	FieldName string
}

type ListLiteral struct {
	ID    ID
	Items []Expr
}

// RecordField is one (name, value) pair of a RecordLiteral; the id belongs
// to the field name token.
type RecordField struct {
	ID    ID
	Name  string
	Value Expr
}

type RecordLiteral struct {
	ID     ID
	Fields []RecordField
}

// Pipeline chains transformations. Segment 0 is the seed; each later
// segment receives the previous result through a PipeTarget sentinel in its
// first argument slot.
type Pipeline struct {
	ID       ID
	Segments []Expr
}

// PipeTarget is only legal as the first argument inside a pipeline segment.
type PipeTarget struct {
	ID ID
}

type Constructor struct {
	ID   ID
	Name string
	Args []Expr
}

// MatchArm pairs a pattern with its result expression.
type MatchArm struct {
	Pat  Pattern
	Expr Expr
}

type Match struct {
	ID      ID
	Subject Expr
	Arms    []MatchArm
}

type FeatureFlag struct {
	ID    ID
	Name  string
	Cond  Expr
	CaseA Expr
	CaseB Expr
}

// Partial is an in-progress edit: Text is what the user has typed so far,
// Wrapped is the node being replaced so the edit can be aborted back to it.
type Partial struct {
	ID      ID
	Text    string
	Wrapped Expr
}

// RightPartial is in-progress infix-operator entry appended after a complete
// expression; Wrapped is that expression.
type RightPartial struct {
	ID      ID
	Text    string
	Wrapped Expr
}

func (e *Blank) NodeID() ID         { return e.ID }
func (e *IntLiteral) NodeID() ID    { return e.ID }
func (e *FloatLiteral) NodeID() ID  { return e.ID }
func (e *StringLiteral) NodeID() ID { return e.ID }
func (e *BoolLiteral) NodeID() ID   { return e.ID }
func (e *NullLiteral) NodeID() ID   { return e.ID }
func (e *Variable) NodeID() ID      { return e.ID }
func (e *Let) NodeID() ID           { return e.ID }
func (e *If) NodeID() ID            { return e.ID }
func (e *BinOp) NodeID() ID         { return e.ID }
func (e *Call) NodeID() ID          { return e.ID }
func (e *Lambda) NodeID() ID        { return e.ID }
func (e *FieldAccess) NodeID() ID   { return e.ID }
func (e *ListLiteral) NodeID() ID   { return e.ID }
func (e *RecordLiteral) NodeID() ID { return e.ID }
func (e *Pipeline) NodeID() ID      { return e.ID }
func (e *PipeTarget) NodeID() ID    { return e.ID }
func (e *Constructor) NodeID() ID   { return e.ID }
func (e *Match) NodeID() ID         { return e.ID }
func (e *FeatureFlag) NodeID() ID   { return e.ID }
func (e *Partial) NodeID() ID       { return e.ID }
func (e *RightPartial) NodeID() ID  { return e.ID }

func (*Blank) isExpr()         {}
func (*IntLiteral) isExpr()    {}
func (*FloatLiteral) isExpr()  {}
func (*StringLiteral) isExpr() {}
func (*BoolLiteral) isExpr()   {}
func (*NullLiteral) isExpr()   {}
func (*Variable) isExpr()      {}
func (*Let) isExpr()           {}
func (*If) isExpr()            {}
func (*BinOp) isExpr()         {}
func (*Call) isExpr()          {}
func (*Lambda) isExpr()        {}
func (*FieldAccess) isExpr()   {}
func (*ListLiteral) isExpr()   {}
func (*RecordLiteral) isExpr() {}
func (*Pipeline) isExpr()      {}
func (*PipeTarget) isExpr()    {}
func (*Constructor) isExpr()   {}
func (*Match) isExpr()         {}
func (*FeatureFlag) isExpr()   {}
func (*Partial) isExpr()       {}
func (*RightPartial) isExpr()  {}

// NewBlank mints a fresh placeholder.
func NewBlank(g *Gen) *Blank { return &Blank{ID: g.Next()} }

// IsBlank reports whether e is a Blank.
func IsBlank(e Expr) bool {
	_, ok := e.(*Blank)
	return ok
}

// ChildrenAllBlank reports whether every direct expression child of e is a
// Blank. Keyword deletion may only collapse constructs for which this holds.
func ChildrenAllBlank(e Expr) bool {
	all := true
	for _, c := range Children(e) {
		if !IsBlank(c) {
			all = false
			break
		}
	}
	return all
}
