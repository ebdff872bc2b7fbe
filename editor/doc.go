// Package editor implements the structural edit engine: a keystroke state
// machine over an expression tree and its rendered token stream.
//
// Every public operation is a total function from (tree, cursor, event) to
// (tree, cursor). Trees are never mutated; the caller threads the returned
// pair into the next call. The package dispatches input against the token
// neighborhood of the caret, commits or aborts in-progress partials,
// reconstructs subtrees from selections, and merges clipboard payloads.
// Suggestion ranking, rendering, and input capture belong to the host.
package editor
