// Package textx contains tests for the text utilities.
package textx

import "testing"

func TestSanitizeText(t *testing.T) {
	in := "he\x00llo\nwo\x7frld\t!"
	got := SanitizeText(in)
	if got != "hello\nworld\t!" {
		t.Fatalf("unexpected: %q", got)
	}
}

func TestSplitSentences(t *testing.T) {
	got := SplitSentences("One. Two!  Three? ")
	if len(got) != 3 {
		t.Fatalf("expected 3 sentences, got %d: %v", len(got), got)
	}
	if got[0] != "One" || got[1] != "Two" || got[2] != "Three" {
		t.Fatalf("unexpected segments: %v", got)
	}
}

func TestWordCount(t *testing.T) {
	if n := WordCount("  a   b c "); n != 3 {
		t.Fatalf("expected 3 words, got %d", n)
	}
	if n := WordCount(""); n != 0 {
		t.Fatalf("expected 0 words, got %d", n)
	}
}
