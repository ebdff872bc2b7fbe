// Package token compiles an expression tree into the linear token stream
// the editor presents, and indexes the laid-out stream by text offset and
// (row, col) grid position.
//
// The pipeline is Tokenize -> Reflow -> Layout. Tokenize is a pure
// recursive-descent rendering of the tree; Reflow materializes indentation
// and is idempotent; Layout assigns offsets and grid coordinates. Offsets
// and columns are counted in grapheme clusters, matching caret positions.
package token
