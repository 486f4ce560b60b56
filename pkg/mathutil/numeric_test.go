package mathutil

import (
	"math"
	"testing"
)

func TestPositivePart(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Positive passes through", 0.35, 0.35},
		{"Zero stays zero", 0.0, 0.0},
		{"Negative truncates", -0.4, 0.0},
		{"Large positive", 1e9, 1e9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := PositivePart(tt.input)
			if result != tt.expected {
				t.Errorf("PositivePart(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestIsFinite(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected bool
	}{
		{"Zero", 0, true},
		{"Negative", -3.5, true},
		{"NaN", math.NaN(), false},
		{"Positive infinity", math.Inf(1), false},
		{"Negative infinity", math.Inf(-1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFinite(tt.input); got != tt.expected {
				t.Errorf("IsFinite(%v) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}

	if !AllFinite(1, 2, 3) {
		t.Errorf("AllFinite should accept finite values")
	}
	if AllFinite(1, math.NaN()) {
		t.Errorf("AllFinite should reject NaN")
	}
}

func TestSign(t *testing.T) {
	tests := []struct {
		name     string
		val      float64
		expected float64
	}{
		{"Negative", -0.3, -1},
		{"Zero", 0, 1},
		{"Positive", 2.5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sign(tt.val); got != tt.expected {
				t.Errorf("Sign(%v) = %v, expected %v", tt.val, got, tt.expected)
			}
		})
	}
}
