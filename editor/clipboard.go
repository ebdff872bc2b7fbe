package editor

// Clipboard provides host-level clipboard integration for embedding UIs.
//
// Errors must not crash the editing session; callers ignore failures and
// keep the in-memory payload authoritative.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(s string) error
}
