package utils

import (
	"testing"
)

func TestStringToInt(t *testing.T) {
	if got := StringToInt("42"); got != 42 {
		t.Errorf("Expected 42, got %d", got)
	}
	if got := StringToInt("abc"); got != 0 {
		t.Errorf("Expected 0 for non-numeric input, got %d", got)
	}
	if got := StringToInt(""); got != 0 {
		t.Errorf("Expected 0 for empty input, got %d", got)
	}
}

func TestExtractTrailingID(t *testing.T) {
	cases := []struct {
		ref  string
		want uint
	}{
		{"42", 42},
		{"https://example.com/post/42", 42},
		{"https://example.com/post/42/", 42},
		{"/post/7?ref=home", 7},
		{"post-123", 123},
	}
	for _, tc := range cases {
		got, err := ExtractTrailingID(tc.ref)
		if err != nil {
			t.Errorf("ExtractTrailingID(%q) returned error: %v", tc.ref, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ExtractTrailingID(%q) = %d, want %d", tc.ref, got, tc.want)
		}
	}
}

func TestExtractTrailingIDNoDigits(t *testing.T) {
	for _, ref := range []string{"", "no-id-here", "https://example.com/about"} {
		if _, err := ExtractTrailingID(ref); err != ErrNoID {
			t.Errorf("ExtractTrailingID(%q) error = %v, want ErrNoID", ref, err)
		}
	}
}
