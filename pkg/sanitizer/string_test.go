package sanitizer

import "testing"

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain name", "Maja Gran", "Maja Gran"},
		{"leading and trailing whitespace", "  Maja Gran  ", "Maja Gran"},
		{"collapsed inner whitespace", "Maja \t  Gran", "Maja Gran"},
		{"control characters stripped", "Maja\x00Gran", "MajaGran"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeName(tt.input); got != tt.expected {
				t.Errorf("SanitizeName(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercased", "Maja@Example.COM", "maja@example.com"},
		{"trimmed", "  maja@example.com ", "maja@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeEmail(tt.input); got != tt.expected {
				t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
