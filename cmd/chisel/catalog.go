package main

import (
	"sort"
	"strings"

	"github.com/iw2rmb/chisel/editor"
	"github.com/iw2rmb/chisel/expr"
	"github.com/iw2rmb/chisel/token"
)

// catalog is the demo's built-in function table: signatures drive
// placeholder labels, lambda pre-fill, and commit realignment.
var catalog = map[string][]token.Parameter{
	"Int::add":       {{Name: "a", Type: "Int"}, {Name: "b", Type: "Int"}},
	"Int::subtract":  {{Name: "a", Type: "Int"}, {Name: "b", Type: "Int"}},
	"Int::mod":       {{Name: "a", Type: "Int"}, {Name: "b", Type: "Int"}},
	"List::head":     {{Name: "list", Type: "List"}},
	"List::length":   {{Name: "list", Type: "List"}},
	"List::map":      {{Name: "list", Type: "List"}, {Name: "fn", Type: "Block", BlockArgs: []string{"item"}}},
	"List::filter":   {{Name: "list", Type: "List"}, {Name: "fn", Type: "Block", BlockArgs: []string{"item"}}},
	"String::length": {{Name: "s", Type: "String"}},
	"String::append": {{Name: "s", Type: "String"}, {Name: "other", Type: "String"}},
}

var infixOps = []string{"+", "-", "*", "/", "%", "==", "!=", "<", ">", "<=", ">=", "&&", "||", "|>"}

func catalogParams(fn string) []token.Parameter {
	return catalog[fn]
}

// catalogProvider ranks catalog entries by prefix match. It is the demo's
// stand-in for a real language-aware suggestion source.
type catalogProvider struct{}

func (catalogProvider) Suggestions(ctx editor.SuggestContext) []editor.Suggestion {
	var out []editor.Suggestion
	if ctx.RightSide {
		for _, op := range infixOps {
			if strings.HasPrefix(op, ctx.Query) {
				out = append(out, editor.Suggestion{Name: op})
			}
		}
		return out
	}

	query := strings.ToLower(ctx.Query)
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if strings.HasPrefix(strings.ToLower(name), query) {
			out = append(out, editor.Suggestion{Name: name, Params: catalog[name]})
		}
	}
	return out
}

func (catalogProvider) HighlightedIndex() (int, bool) { return 0, true }

func (catalogProvider) ToExpr(s editor.Suggestion, g *expr.Gen) (expr.Expr, int) {
	caret := len(s.Name)
	if len(s.Params) == 0 {
		return &expr.Variable{ID: g.Next(), Name: s.Name}, caret
	}
	args := make([]expr.Expr, len(s.Params))
	for i := range args {
		args[i] = expr.NewBlank(g)
	}
	return &expr.Call{ID: g.Next(), Name: s.Name, Args: args}, caret
}

// sampleTree builds the document the demo and tooling commands open with.
func sampleTree(g *expr.Gen) expr.Expr {
	return &expr.Let{
		ID: g.Next(), LHSID: g.Next(), LHSName: "scores",
		RHS: &expr.ListLiteral{ID: g.Next(), Items: []expr.Expr{
			&expr.IntLiteral{ID: g.Next(), Value: "12"},
			&expr.IntLiteral{ID: g.Next(), Value: "40"},
			&expr.IntLiteral{ID: g.Next(), Value: "7"},
		}},
		Body: &expr.Pipeline{ID: g.Next(), Segments: []expr.Expr{
			&expr.Variable{ID: g.Next(), Name: "scores"},
			&expr.Call{ID: g.Next(), Name: "List::map", Args: []expr.Expr{
				&expr.PipeTarget{ID: g.Next()},
				&expr.Blank{ID: g.Next()},
			}},
			&expr.Call{ID: g.Next(), Name: "List::head", Args: []expr.Expr{
				&expr.PipeTarget{ID: g.Next()},
			}},
		}},
	}
}
