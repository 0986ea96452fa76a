package util

import (
	"math"
	"testing"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{12, "12"},
		{-3.5, "-3.5"},
		{0.1, "0.1"},
		{1e21, "1e+21"},
		{math.Inf(1), "Infinity"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Fatalf("FormatNumber(%v): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestFormatPair(t *testing.T) {
	if got := FormatPair(20.5, 100); got != "20.5 100" {
		t.Fatalf("expected %q, got %q", "20.5 100", got)
	}
}
