// Package expr implements the pure expression tree edited by chisel.
//
// Trees are persistent values: every operation returns a new tree and never
// mutates its input. Node identity is carried by expr.ID and survives edits
// unless a node is structurally replaced.
package expr
