package utils

import (
	"math"
	"testing"
)

func TestEaseOutCubic(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"起点", 0.0, 0.0},
		{"终点", 1.0, 1.0},
		{"中点", 0.5, 0.875}, // 1 - (1-0.5)^3
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EaseOutCubic(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("EaseOutCubic(%v) = %v, 期望 %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestFadeOut(t *testing.T) {
	tests := []struct {
		name       string
		remaining  int
		fadeFrames int
		expected   float64
	}{
		{"已结束", 0, 30, 0},
		{"负数", -5, 30, 0},
		{"淡出前", 100, 30, 1},
		{"刚开始淡出", 30, 30, 1},
		{"淡出一半", 15, 30, 0.875},
		{"无淡出区间", 1, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FadeOut(tt.remaining, tt.fadeFrames)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("FadeOut(%d, %d) = %v, 期望 %v", tt.remaining, tt.fadeFrames, result, tt.expected)
			}
		})
	}
}
