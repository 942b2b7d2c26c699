package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	if err := WriteFile(path, []byte("hello")); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("expected %q, got %q", "hello", string(data))
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := TruncateRunes("short", 10); got != "short" {
		t.Fatalf("expected unchanged string, got %q", got)
	}
	if got := TruncateRunes("abcdefgh", 4); got != "abcd…" {
		t.Fatalf("expected truncated string with ellipsis, got %q", got)
	}
	if got := TruncateRunes("héllo wörld", 5); got != "héllo…" {
		t.Fatalf("expected rune-aware truncation, got %q", got)
	}
}

func TestTruncateToWidth(t *testing.T) {
	in := "short\nthis line is definitely too long"
	out := TruncateToWidth(in, 10)
	want := "short\nthis line …"
	if out != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
}

func TestMinMax(t *testing.T) {
	if Min(3, 7) != 3 || Min(7, 3) != 3 {
		t.Fatal("Min returned wrong value")
	}
	if Max(3, 7) != 7 || Max(7, 3) != 7 {
		t.Fatal("Max returned wrong value")
	}
}
