package grapheme

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Split returns grapheme clusters for text in visual order.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len([]rune(text)))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Count returns the number of grapheme clusters in text.
func Count(text string) int {
	if text == "" {
		return 0
	}
	g := uniseg.NewGraphemes(text)
	n := 0
	for g.Next() {
		n++
	}
	return n
}

// Slice returns the grapheme-safe substring for [start, end).
func Slice(text string, start, end int) string {
	if text == "" {
		return ""
	}
	if start < 0 {
		start = 0
	}
	if end < start {
		end = start
	}

	g := uniseg.NewGraphemes(text)
	idx := 0
	var sb strings.Builder
	for g.Next() {
		if idx >= end {
			break
		}
		if idx >= start {
			sb.WriteString(g.Str())
		}
		idx++
	}
	if start >= idx {
		return ""
	}
	return sb.String()
}

// Insert splices ins into text at grapheme index at, clamped into bounds.
func Insert(text string, at int, ins string) string {
	n := Count(text)
	if at < 0 {
		at = 0
	}
	if at > n {
		at = n
	}
	return Slice(text, 0, at) + ins + Slice(text, at, n)
}

// Delete removes the grapheme cluster at index at. Out-of-range indices
// return text unchanged.
func Delete(text string, at int) string {
	n := Count(text)
	if at < 0 || at >= n {
		return text
	}
	return Slice(text, 0, at) + Slice(text, at+1, n)
}
