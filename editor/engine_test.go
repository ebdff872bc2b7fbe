package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/chisel/expr"
	"github.com/iw2rmb/chisel/token"
)

type stubProvider struct {
	items []Suggestion
}

func (p stubProvider) Suggestions(SuggestContext) []Suggestion { return p.items }

func (p stubProvider) HighlightedIndex() (int, bool) { return 0, len(p.items) > 0 }

func (p stubProvider) ToExpr(s Suggestion, g *expr.Gen) (expr.Expr, int) {
	args := make([]expr.Expr, len(s.Params))
	for i := range args {
		args[i] = expr.NewBlank(g)
	}
	return &expr.Call{ID: g.Next(), Name: s.Name, Args: args}, len(s.Name)
}

func newTestEngine() *Engine {
	return NewEngine(Config{IDs: expr.Seed(1000)})
}

func TestDispatchScenarios(t *testing.T) {
	intParams := []token.Parameter{{Name: "a", Type: "Int"}, {Name: "b", Type: "Int"}}

	tests := []struct {
		name      string
		tree      func() expr.Expr
		caret     int
		events    []Event
		wantText  string
		wantCaret int
	}{
		{
			name:      "digit splices into integer",
			tree:      func() expr.Expr { return &expr.IntLiteral{ID: 1, Value: "12"} },
			caret:     1,
			events:    []Event{Insert('5')},
			wantText:  "152",
			wantCaret: 2,
		},
		{
			name:      "point splits integer into float",
			tree:      func() expr.Expr { return &expr.IntLiteral{ID: 1, Value: "12"} },
			caret:     1,
			events:    []Event{Insert('.')},
			wantText:  "1.2",
			wantCaret: 2,
		},
		{
			name: "identifier starts a partial on a blank",
			tree: func() expr.Expr { return &expr.Blank{ID: 1} },
			events: []Event{
				Insert('r'),
				Insert('x'),
			},
			wantText:  "rx",
			wantCaret: 2,
		},
		{
			name: "space commits an identifier partial to a variable",
			tree: func() expr.Expr { return &expr.Blank{ID: 1} },
			events: []Event{
				Insert('r'),
				Insert(' '),
			},
			wantText:  "r",
			wantCaret: 1,
		},
		{
			name:  "operator after a variable opens and commits an infix",
			tree:  func() expr.Expr { return &expr.Variable{ID: 1, Name: "ab"} },
			caret: 2,
			events: []Event{
				Insert('+'),
				Insert(' '),
			},
			wantText:  "ab + ___",
			wantCaret: 5,
		},
		{
			name: "backspace on the pipe removes the following segment",
			tree: func() expr.Expr {
				return &expr.Pipeline{ID: 1, Segments: []expr.Expr{
					&expr.Call{ID: 2, Name: "List::head", Args: []expr.Expr{&expr.Variable{ID: 3, Name: "xs"}}},
					&expr.Call{ID: 4, Name: "Int::add", Args: []expr.Expr{&expr.PipeTarget{ID: 5}, &expr.IntLiteral{ID: 6, Value: "1"}}},
				}}
			},
			caret:     16,
			events:    []Event{Key(EventBackspace)},
			wantText:  "List::head xs",
			wantCaret: 10,
		},
		{
			name: "empty let collapses to a blank",
			tree: func() expr.Expr {
				return &expr.Let{ID: 1, LHSID: 2, RHS: &expr.Blank{ID: 3}, Body: &expr.Blank{ID: 4}}
			},
			caret:     3,
			events:    []Event{Key(EventBackspace)},
			wantText:  "___",
			wantCaret: 0,
		},
		{
			name: "filled let refuses to collapse",
			tree: func() expr.Expr {
				return &expr.Let{ID: 1, LHSID: 2, LHSName: "x", RHS: &expr.IntLiteral{ID: 3, Value: "5"}, Body: &expr.Blank{ID: 4}}
			},
			caret:     3,
			events:    []Event{Key(EventBackspace)},
			wantText:  "let x = 5\n___",
			wantCaret: 0,
		},
		{
			name: "backspace emptying a partial reverts to the blank",
			tree: func() expr.Expr {
				return &expr.Partial{ID: 1, Text: "r", Wrapped: &expr.Blank{ID: 2}}
			},
			caret:     1,
			events:    []Event{Key(EventBackspace)},
			wantText:  "___",
			wantCaret: 0,
		},
		{
			name: "tab jumps to the next blank",
			tree: func() expr.Expr {
				return &expr.Let{ID: 1, LHSID: 2, LHSName: "x", RHS: &expr.Blank{ID: 3}, Body: &expr.Blank{ID: 4}}
			},
			caret:     0,
			events:    []Event{Key(EventTab)},
			wantText:  "let x = ___\n___",
			wantCaret: 8,
		},
		{
			name: "left jumps over an atomic keyword",
			tree: func() expr.Expr {
				return &expr.Let{ID: 1, LHSID: 2, LHSName: "x", RHS: &expr.IntLiteral{ID: 3, Value: "5"}, Body: &expr.Blank{ID: 4}}
			},
			caret:     3,
			events:    []Event{Key(EventLeft)},
			wantText:  "let x = 5\n___",
			wantCaret: 0,
		},
		{
			name: "backspace on the float point fuses the halves",
			tree: func() expr.Expr {
				return &expr.FloatLiteral{ID: 1, Whole: "12", Fraction: "5"}
			},
			caret:     3,
			events:    []Event{Key(EventBackspace)},
			wantText:  "125",
			wantCaret: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine()
			tree := tt.tree()
			cs := CursorState{Caret: tt.caret}
			for _, ev := range tt.events {
				tree, cs = e.Dispatch(tree, cs, ev)
			}
			assert.Equal(t, tt.wantText, e.Stream(tree).Text())
			assert.Equal(t, tt.wantCaret, cs.Caret)
			assert.Empty(t, e.Diagnostics())
		})
	}

	t.Run("commit realigns filled arguments by declared slot", func(t *testing.T) {
		e := NewEngine(Config{
			IDs: expr.Seed(1000),
			Provider: stubProvider{items: []Suggestion{
				{Name: "Int::add", Params: intParams},
			}},
			Params: func(string) []token.Parameter { return intParams },
		})

		filled := &expr.IntLiteral{ID: 11, Value: "5"}
		tree := expr.Expr(&expr.Partial{
			ID:   100,
			Text: "Int::add",
			Wrapped: &expr.Call{ID: 10, Name: "Int::sub", Args: []expr.Expr{
				filled,
				&expr.Blank{ID: 12},
			}},
		})

		tree, cs := e.Dispatch(tree, CursorState{Caret: 8}, Key(EventTab))
		require.Empty(t, e.Diagnostics())

		got, ok := expr.FindNode(11, tree)
		require.True(t, ok, "filled argument dropped during commit")
		assert.Equal(t, filled, got)
		assert.Equal(t, "Int::add 5 b: Int", e.Stream(tree).Text())
		assert.Equal(t, 8, cs.Caret)
	})
}

func TestDispatchIsTotal(t *testing.T) {
	e := newTestEngine()
	tree := expr.Expr(&expr.IntLiteral{ID: 1, Value: "7"})

	// Dead-end keystrokes leave the tree untouched.
	tree2, cs := e.Dispatch(tree, CursorState{Caret: 0}, Insert('!'))
	if tree2 != tree {
		t.Fatalf("dead-end insert changed the tree")
	}
	if cs.Caret != 0 {
		t.Fatalf("caret=%d, want 0", cs.Caret)
	}
}

func TestVerticalMovementKeepsColumn(t *testing.T) {
	e := newTestEngine()
	tree := expr.Expr(&expr.Let{
		ID: 1, LHSID: 2, LHSName: "x",
		RHS:  &expr.IntLiteral{ID: 3, Value: "12"},
		Body: &expr.Blank{ID: 4},
	})
	// "let x = 12\n___"

	cs := CursorState{Caret: 8}
	_, cs = e.Dispatch(tree, cs, Key(EventDown))
	if !cs.HasUpDownCol || cs.UpDownCol != 8 {
		t.Fatalf("column memory = (%d,%v), want (8,true)", cs.UpDownCol, cs.HasUpDownCol)
	}
	_, cs = e.Dispatch(tree, cs, Key(EventUp))
	if cs.Caret != 8 {
		t.Fatalf("caret=%d after down+up, want 8", cs.Caret)
	}
}

func TestInsertReplacesSelection(t *testing.T) {
	e := newTestEngine()
	tree := expr.Expr(&expr.Call{ID: 10, Name: "f", Args: []expr.Expr{
		&expr.IntLiteral{ID: 11, Value: "1"},
		&expr.IntLiteral{ID: 12, Value: "25"},
	}})
	// "f 1 25", second argument selected before typing.

	cs := CursorState{Caret: 6, Anchor: 4, HasAnchor: true}
	tree, cs = e.Dispatch(tree, cs, Insert('7'))
	if got := e.Stream(tree).Text(); got != "f 1 7" {
		t.Fatalf("text=%q, want %q", got, "f 1 7")
	}
	if cs.Caret != 5 {
		t.Fatalf("caret=%d, want 5", cs.Caret)
	}
}

func TestSelectionCollapseOnArrow(t *testing.T) {
	e := newTestEngine()
	tree := expr.Expr(&expr.Variable{ID: 1, Name: "abcd"})

	cs := CursorState{Caret: 3, Anchor: 1, HasAnchor: true}
	_, cs = e.Dispatch(tree, cs, Key(EventLeft))
	if cs.Caret != 1 || cs.HasAnchor {
		t.Fatalf("caret=%d anchor=%v, want caret 1 with no anchor", cs.Caret, cs.HasAnchor)
	}
}

func TestInsertRowBelowInList(t *testing.T) {
	e := newTestEngine()
	tree := expr.Expr(&expr.ListLiteral{ID: 1, Items: []expr.Expr{
		&expr.IntLiteral{ID: 2, Value: "1"},
		&expr.IntLiteral{ID: 3, Value: "2"},
	}})
	// "[1, 2]", caret on the first element.

	tree, cs := e.InsertRowBelow(tree, CursorState{Caret: 1})
	got := e.Stream(tree).Text()
	if got != "[1, ___, 2]" {
		t.Fatalf("text=%q, want %q", got, "[1, ___, 2]")
	}
	if cs.Caret != 4 {
		t.Fatalf("caret=%d, want 4", cs.Caret)
	}
}
