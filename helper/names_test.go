package helper

import "testing"

func TestFileSlug(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Said", "said"},
		{"Pak Nugroho", "pak_nugroho"},
		{"  M. Harun ", "m_harun"},
		{"a/b\\c", "a_b_c"},
		{"Jiří Novák", "jiri_novak"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := FileSlug(tt.input); got != tt.expected {
				t.Errorf("FileSlug(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
