package editor

import "fmt"

// recordError captures an invariant violation as diagnostic text. The
// engine never raises: the offending operation returns its input unchanged
// and the session continues.
func (e *Engine) recordError(format string, args ...any) {
	e.diags = append(e.diags, fmt.Sprintf(format, args...))
}

// Diagnostics returns captured internal errors, oldest first.
func (e *Engine) Diagnostics() []string {
	return append([]string(nil), e.diags...)
}
