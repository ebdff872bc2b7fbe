package grapheme

import "testing"

func TestSplitAndCount_MultiRuneGraphemes(t *testing.T) {
	text := "a" + "é" + "👨‍👩‍👧‍👦" + "b"
	got := Split(text)
	if len(got) != 4 {
		t.Fatalf("split len=%d, want %d", len(got), 4)
	}
	if got[1] != "é" {
		t.Fatalf("split[1]=%q, want %q", got[1], "é")
	}
	if got[2] != "👨‍👩‍👧‍👦" {
		t.Fatalf("split[2]=%q, want family emoji", got[2])
	}
	if c := Count(text); c != 4 {
		t.Fatalf("count=%d, want %d", c, 4)
	}
}

func TestSlice_GraphemeSafe(t *testing.T) {
	text := "a" + "é" + "👨‍👩‍👧‍👦" + "b"
	if got, want := Slice(text, 1, 3), "é👨‍👩‍👧‍👦"; got != want {
		t.Fatalf("slice=%q, want %q", got, want)
	}
	if got := Slice(text, 5, 6); got != "" {
		t.Fatalf("slice past end=%q, want empty", got)
	}
}

func TestInsert_ClampsAndSplices(t *testing.T) {
	if got, want := Insert("ab", 1, "X"), "aXb"; got != want {
		t.Fatalf("insert=%q, want %q", got, want)
	}
	if got, want := Insert("ab", 99, "X"), "abX"; got != want {
		t.Fatalf("insert past end=%q, want %q", got, want)
	}
	if got, want := Insert("éb", 1, "X"), "éXb"; got != want {
		t.Fatalf("insert after cluster=%q, want %q", got, want)
	}
}

func TestDelete_RemovesOneCluster(t *testing.T) {
	if got, want := Delete("aXb", 1), "ab"; got != want {
		t.Fatalf("delete=%q, want %q", got, want)
	}
	if got, want := Delete("ab", 5), "ab"; got != want {
		t.Fatalf("delete out of range=%q, want unchanged", got)
	}
	if got, want := Delete("aéb", 1), "ab"; got != want {
		t.Fatalf("delete cluster=%q, want %q", got, want)
	}
}
