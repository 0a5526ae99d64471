package utils

import "testing"

func TestNormalizeWord(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Cat", "cat"},
		{"  Dog  ", "dog"},
		{"café", "cafe"},
		{"naïve", "naive"},
		{"run!", "run"},
		{"well-known", "wellknown"},
		{"猫", "猫"},
		{"ネコ。", "ネコ"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeWord(tt.in); got != tt.want {
			t.Errorf("NormalizeWord(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
