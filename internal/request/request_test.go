package request

import (
	"errors"
	"testing"
)

func TestNormalize_QueryOnly(t *testing.T) {
	r, err := Normalize("What does 'however' mean?", "", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.QueryText != "What does 'however' mean?" {
		t.Fatalf("unexpected query: %q", r.QueryText)
	}
	if r.OCRText != "" || r.HasImage {
		t.Fatal("expected no OCR text and no image")
	}
}

func TestNormalize_OCROnly(t *testing.T) {
	r, err := Normalize("", "I have went to school yesterday.", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.OCRText != "I have went to school yesterday." {
		t.Fatalf("unexpected OCR text: %q", r.OCRText)
	}
	if !r.HasImage {
		t.Fatal("expected HasImage to be true")
	}
}

func TestNormalize_TrimsWhitespace(t *testing.T) {
	r, err := Normalize("  fix this  \n", "\t sentence \n", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.QueryText != "fix this" {
		t.Fatalf("expected trimmed query, got %q", r.QueryText)
	}
	if r.OCRText != "sentence" {
		t.Fatalf("expected trimmed OCR text, got %q", r.OCRText)
	}
}

func TestNormalize_BothEmpty(t *testing.T) {
	_, err := Normalize("", "", false)
	if !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got: %v", err)
	}
}

func TestNormalize_WhitespaceOnlyIsEmpty(t *testing.T) {
	_, err := Normalize("   \n\t ", "  ", true)
	if !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got: %v", err)
	}
}

func TestFoldReply_AppendsToQuery(t *testing.T) {
	prior := NormalizedRequest{
		QueryText: "fix this",
		OCRText:   "I have went to school yesterday.",
		HasImage:  true,
	}
	next, err := FoldReply(prior, "grammar only")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.QueryText != "fix this\ngrammar only" {
		t.Fatalf("unexpected folded query: %q", next.QueryText)
	}
	if next.OCRText != prior.OCRText {
		t.Fatal("expected OCR text to carry over")
	}
	if !next.HasImage {
		t.Fatal("expected image flag to carry over")
	}
}

func TestFoldReply_EmptyReply(t *testing.T) {
	prior := NormalizedRequest{QueryText: "fix this"}
	_, err := FoldReply(prior, "   ")
	if !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got: %v", err)
	}
}

func TestFoldReply_PriorDoesNotChange(t *testing.T) {
	prior := NormalizedRequest{QueryText: "original"}
	_, err := FoldReply(prior, "more detail")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prior.QueryText != "original" {
		t.Fatal("prior request mutated")
	}
}
