package core

import "testing"

func TestColorNames(t *testing.T) {
	tests := []struct {
		c        Color
		expected string
	}{
		{ColorDefault, "default"},
		{ColorBrightYellow, "bright-yellow"},
		{ColorBrown, "brown"},
		{Color(99), "default"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.expected {
			t.Errorf("Color(%d).String() = %q, expected %q", tt.c, got, tt.expected)
		}
	}
	if Color(99).Valid() || !ColorPink.Valid() {
		t.Error("Valid() disagrees with the palette")
	}
}
