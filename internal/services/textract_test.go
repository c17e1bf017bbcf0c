package services

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestTextExtractorPlainText(t *testing.T) {
	t.Parallel()

	extractor := NewTextExtractorService()
	dir := t.TempDir()

	t.Run("reads txt files", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(dir, "resume.txt")
		if err := os.WriteFile(path, []byte("Experienced in Python\n\n\nand Docker\n"), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}

		text, err := extractor.ExtractText(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if text != "Experienced in Python\nand Docker" {
			t.Fatalf("unexpected text: %q", text)
		}
	})

	t.Run("rejects invalid utf8", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(dir, "broken.txt")
		if err := os.WriteFile(path, []byte{0xff, 0xfe, 0x41}, 0644); err != nil {
			t.Fatalf("write: %v", err)
		}

		if _, err := extractor.ExtractText(path); !errors.Is(err, ErrInputDecoding) {
			t.Fatalf("expected ErrInputDecoding, got %v", err)
		}
	})

	t.Run("missing file fails", func(t *testing.T) {
		t.Parallel()

		if _, err := extractor.ExtractText(filepath.Join(dir, "nope.txt")); err == nil {
			t.Fatalf("expected error for missing file")
		}
	})
}

func TestCleanText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "strips blank lines",
			input:  "a\n\n\nb\n",
			expect: "a\nb",
		},
		{
			name:   "trims line whitespace",
			input:  "  hello  \n   world ",
			expect: "hello\nworld",
		},
		{
			name:   "empty input",
			input:  "   ",
			expect: "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := CleanText(tt.input); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}
