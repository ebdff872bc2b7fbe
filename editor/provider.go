package editor

import (
	"github.com/iw2rmb/chisel/expr"
	"github.com/iw2rmb/chisel/token"
)

// Suggestion is one candidate completion. The provider ranks and filters;
// the engine only moves the highlight and commits.
type Suggestion struct {
	// Name is the committed identifier (function, constructor, variable,
	// or keyword form).
	Name string

	// Params are the declared parameters when Name resolves to a call.
	Params []token.Parameter
}

// SuggestContext is the cursor context handed to the provider.
type SuggestContext struct {
	// Query is the partial's typed text.
	Query string

	// TargetID is the node being completed.
	TargetID expr.ID

	// RightSide marks a RightPartial (infix entry) query.
	RightSide bool
}

// Provider is the ranked-suggestion generator the engine consumes. All
// methods must be side-effect free with respect to the tree.
type Provider interface {
	// Suggestions returns candidates best-first. An empty slice means no
	// completion applies and commit falls back to literal interpretation.
	Suggestions(ctx SuggestContext) []Suggestion

	// HighlightedIndex reports the provider's default highlight, used when
	// the cursor state carries no explicit autocomplete index.
	HighlightedIndex() (int, bool)

	// ToExpr renders a suggestion as the committed expression plus the
	// caret offset within that expression's rendering.
	ToExpr(s Suggestion, g *expr.Gen) (expr.Expr, int)
}

func clampSuggestionIndex(idx, count int) int {
	if count <= 0 {
		return 0
	}
	if idx < 0 {
		return 0
	}
	if idx >= count {
		return count - 1
	}
	return idx
}
